package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashSenha gera um hash bcrypt para a senha informada.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// VerificarSenha compara a senha em texto com o valor armazenado no cadastro
// de usuários. Registros antigos do webhook guardam a senha em texto puro;
// registros novos guardam hash bcrypt.
func VerificarSenha(armazenada, senha string) bool {
	if strings.HasPrefix(armazenada, "$2a$") || strings.HasPrefix(armazenada, "$2b$") || strings.HasPrefix(armazenada, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(armazenada), []byte(senha)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(armazenada), []byte(senha)) == 1
}

// GerarSenhaTemporaria gera uma senha aleatória segura de 12 caracteres.
func GerarSenhaTemporaria() (string, error) {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	length := 12
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		result[i] = chars[num.Int64()]
	}
	return string(result), nil
}
