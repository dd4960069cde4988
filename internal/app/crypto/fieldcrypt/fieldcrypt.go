// Package fieldcrypt encrypts individual string fields at rest.
//
// Each call derives a fresh AES-256 key from the master secret with
// PBKDF2-SHA512 and a random salt, then seals the value with AES-GCM.
// The result is "hex(salt):hex(iv):hex(tag):hex(ciphertext)".
package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"strings"

	customErrors "github.com/Miraines/bankr/api-service/internal/domain/auth/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltLength = 64
	IVLength   = 16
	TagLength  = 16
	KeyLength  = 32
	Iterations = 100_000
)

type Cipher struct {
	secret []byte
}

// New fails with ErrMissingEncryptionKey when the master secret is empty.
func New(masterSecret string) (*Cipher, error) {
	if masterSecret == "" {
		return nil, customErrors.ErrMissingEncryptionKey
	}
	return &Cipher{secret: []byte(masterSecret)}, nil
}

func (c *Cipher) Encrypt(plaintext string) (string, error) {
	salt := make([]byte, SaltLength)
	iv := make([]byte, IVLength)
	if _, err := rand.Read(salt); err != nil {
		return "", customErrors.WrapInternal(err, "generate salt")
	}
	if _, err := rand.Read(iv); err != nil {
		return "", customErrors.WrapInternal(err, "generate iv")
	}

	aead, err := c.aead(salt)
	if err != nil {
		return "", err
	}

	// Seal возвращает ciphertext||tag
	sealed := aead.Seal(nil, iv, []byte(plaintext), nil)
	ct, tag := sealed[:len(sealed)-TagLength], sealed[len(sealed)-TagLength:]

	return strings.Join([]string{
		hex.EncodeToString(salt),
		hex.EncodeToString(iv),
		hex.EncodeToString(tag),
		hex.EncodeToString(ct),
	}, ":"), nil
}

func (c *Cipher) Decrypt(envelope string) (string, error) {
	parts := strings.Split(envelope, ":")
	if len(parts) != 4 {
		return "", customErrors.ErrInvalidEnvelope
	}

	var raw [4][]byte
	for i, p := range parts {
		b, err := hex.DecodeString(p)
		if err != nil {
			return "", customErrors.ErrInvalidEnvelope
		}
		raw[i] = b
	}
	salt, iv, tag, ct := raw[0], raw[1], raw[2], raw[3]
	if len(salt) != SaltLength || len(iv) != IVLength || len(tag) != TagLength {
		return "", customErrors.ErrInvalidEnvelope
	}

	aead, err := c.aead(salt)
	if err != nil {
		return "", err
	}

	pt, err := aead.Open(nil, iv, append(ct, tag...), nil)
	if err != nil {
		return "", customErrors.ErrDecryptionFailed
	}
	return string(pt), nil
}

func (c *Cipher) aead(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(c.secret, salt, Iterations, KeyLength, sha512.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "aes cipher")
	}
	aead, err := cipher.NewGCMWithNonceSize(block, IVLength)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "gcm")
	}
	return aead, nil
}
