// Package password deriva y verifica hashes PBKDF2-SHA256 con sal por usuario.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	Iterations = 100000
	KeyLength  = 32
	SaltBytes  = 16
)

// NewSalt genera 16 bytes aleatorios codificados en hex.
func NewSalt() (string, error) {
	b := make([]byte, SaltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generar sal: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Hash deriva el hash hex. La sal se usa tal cual (texto hex) como entrada de PBKDF2,
// igual que los registros existentes en la colección de usuarios.
func Hash(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), Iterations, KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// Verify compara en tiempo constante el hash recalculado con el almacenado.
func Verify(password, salt, expectedHash string) bool {
	if salt == "" || expectedHash == "" {
		return false
	}
	actual := Hash(password, salt)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(expectedHash)) == 1
}
