package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	otp "github.com/pgagudelom/otp-secret-messages"
)

var alphabetCmd = &cobra.Command{
	Use:   "alphabet",
	Short: "Print the cipher alphabet and its index positions",
	RunE: func(cmd *cobra.Command, args []string) error {
		alphabet := otp.DefaultAlphabet()
		fmt.Printf("%d symbols:\n", alphabet.Size())
		for i := 0; i < alphabet.Size(); i++ {
			fmt.Printf("%3d  %q\n", i, alphabet.SymbolAt(i))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alphabetCmd)
}
