package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// CarregarSegredo lê JWT_SECRET do ambiente. Deve ser chamada uma vez na
// subida do serviço, antes de emitir ou validar tokens.
func CarregarSegredo() error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET não definida")
	}
	jwtSecret = []byte(secret)
	return nil
}

type Claims struct {
	UserID int    `json:"user_id"`
	Papel  string `json:"papel"`
	jwt.RegisteredClaims
}

// GerarToken gera um JWT com validade de 24h carregando id e papel do
// usuário autenticado
func GerarToken(userID int, papel string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Papel:  papel,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidarToken valida o token e retorna as claims
func ValidarToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("não foi possível extrair claims")
	}
	return claims, nil
}
