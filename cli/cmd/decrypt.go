package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	otp "github.com/pgagudelom/otp-secret-messages"
)

var (
	decryptPad       string
	decryptPadFile   string
	decryptCipher    string
	decryptFile      string
	decryptArmorPass string
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Recover a message from its ciphertext and pad",
	Long: `Decodes a ciphertext against the pad it was encrypted with. Pad and
ciphertext can be given inline or read from files written by encrypt
(armored files need the same passphrase). Lengths must match exactly.`,
	RunE: runDecrypt,
}

func init() {
	decryptCmd.Flags().StringVar(&decryptPad, "pad", "", "the pad text")
	decryptCmd.Flags().StringVar(&decryptPadFile, "pad-file", "", "read the pad from this file")
	decryptCmd.Flags().StringVar(&decryptCipher, "cipher", "", "the ciphertext")
	decryptCmd.Flags().StringVar(&decryptFile, "cipher-file", "", "read the ciphertext from this file")
	decryptCmd.Flags().StringVar(&decryptArmorPass, "passphrase", "", "passphrase for armored input files")

	rootCmd.AddCommand(decryptCmd)
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	pad, err := resolveInput(decryptPad, decryptPadFile, decryptArmorPass)
	if err != nil {
		return fmt.Errorf("pad: %w", err)
	}
	cipher, err := resolveInput(decryptCipher, decryptFile, decryptArmorPass)
	if err != nil {
		return fmt.Errorf("ciphertext: %w", err)
	}

	session.ChooseDecryptMode()
	if err = session.AcceptPad(pad); err != nil {
		return err
	}

	plaintext, err := session.Decrypt(cipher)
	if err != nil {
		var mismatch *otp.LengthMismatchError
		if errors.As(err, &mismatch) {
			return fmt.Errorf("ciphertext has %d symbols but the pad has %d; they must match exactly",
				mismatch.TextLen, mismatch.PadLen)
		}
		return err
	}

	fmt.Printf("Message: %s\n", plaintext)
	fmt.Printf("(a running session erases this plaintext after %d seconds)\n", otp.SecretLifetime)

	return nil
}
