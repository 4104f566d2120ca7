package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pgagudelom/otp-secret-messages/internal/armor"
)

// readInput returns the message from the argument list or, when absent,
// from stdin.
func readInput(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// resolveInput prefers the inline value and falls back to a file, opening
// armored files when a passphrase is given.
func resolveInput(inline, file, passphrase string) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if file == "" {
		return "", fmt.Errorf("value required (inline or file)")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}

	if passphrase != "" {
		data, err = armor.Open(data, passphrase)
		if err != nil {
			return "", fmt.Errorf("failed to open armored file %s: %w", file, err)
		}
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}

// exportText writes value to path, armored when a passphrase is given.
// Files are owner-readable only.
func exportText(path, value, passphrase string) error {
	data := []byte(value)

	if passphrase != "" {
		sealed, err := armor.Seal(data, passphrase)
		if err != nil {
			return err
		}
		data = sealed
	}

	return os.WriteFile(path, data, 0600)
}
