// Package armor protects exported pad and ciphertext files with a
// passphrase. An armored file is salt || nonce || sealed payload, where the
// key is derived with PBKDF2-SHA256 and the payload sealed with
// ChaCha20-Poly1305. The cipher core knows nothing about files; armoring is
// strictly a collaborator concern on the export path.
package armor

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 32
	nonceSize  = chacha20poly1305.NonceSize
	iterations = 100000
	keySize    = chacha20poly1305.KeySize
)

// Seal encrypts data under a passphrase-derived key.
func Seal(data []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := memguard.NewBufferFromBytes(pbkdf2.Key([]byte(passphrase), salt, iterations, keySize, sha256.New))
	defer key.Destroy()

	aead, err := chacha20poly1305.New(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, data, nil)

	out := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// Open decrypts data produced by Seal with the same passphrase.
func Open(armored []byte, passphrase string) ([]byte, error) {
	if len(armored) < saltSize+nonceSize+chacha20poly1305.Overhead {
		return nil, errors.New("armored data too short")
	}

	salt := armored[:saltSize]
	nonce := armored[saltSize : saltSize+nonceSize]
	sealed := armored[saltSize+nonceSize:]

	key := memguard.NewBufferFromBytes(pbkdf2.Key([]byte(passphrase), salt, iterations, keySize, sha256.New))
	defer key.Destroy()

	aead, err := chacha20poly1305.New(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	data, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return data, nil
}
