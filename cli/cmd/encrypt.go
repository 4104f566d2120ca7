package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	encryptOutPad    string
	encryptOutCipher string
	encryptArmorPass string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt [message]",
	Short: "Encrypt a message with a freshly generated one-time pad",
	Long: `Normalizes the message onto the cipher alphabet, generates a random pad
of matching length and prints both the pad and the ciphertext. The pad is
shown exactly once: without it the ciphertext is unrecoverable, and using
it for a second message destroys the cipher's secrecy.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncrypt,
}

func init() {
	encryptCmd.Flags().StringVar(&encryptOutPad, "out-pad", "", "write the pad to this file instead of only printing it")
	encryptCmd.Flags().StringVar(&encryptOutCipher, "out-cipher", "", "write the ciphertext to this file")
	encryptCmd.Flags().StringVar(&encryptArmorPass, "passphrase", "", "armor exported files with this passphrase")

	rootCmd.AddCommand(encryptCmd)
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	message, err := readInput(args)
	if err != nil {
		return err
	}

	session.ChooseEncryptMode()
	if err = session.Encrypt(message); err != nil {
		return err
	}

	fmt.Printf("Message (normalized): %s\n", session.Message())
	fmt.Printf("Pad:                  %s\n", session.Pad())
	fmt.Printf("Ciphertext:           %s\n", session.Ciphertext())

	if encryptOutPad != "" {
		if err = exportText(encryptOutPad, session.Pad(), encryptArmorPass); err != nil {
			return fmt.Errorf("failed to export pad: %w", err)
		}
		fmt.Printf("Pad written to %s\n", encryptOutPad)
	}
	if encryptOutCipher != "" {
		if err = exportText(encryptOutCipher, session.Ciphertext(), encryptArmorPass); err != nil {
			return fmt.Errorf("failed to export ciphertext: %w", err)
		}
		fmt.Printf("Ciphertext written to %s\n", encryptOutCipher)
	}

	return nil
}
