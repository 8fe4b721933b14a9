package services

import (
	"fmt"
	"time"

	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/go-chi/jwtauth/v5"
)

// Identity - проверка токенов, выданных сервисом аутентификации.
// Токен несёт идентификатор пользователя (sub) и его роль (role).
type Identity struct {
	JWTAuth *jwtauth.JWTAuth
}

const (
	TokenSecretAlgo     = "HS256"
	TokenExpirationTime = 24 * time.Hour

	ClaimSubject = "sub"
	ClaimRole    = "role"
)

// Создание сервиса
func NewIdentity(secret string) *Identity {
	return &Identity{JWTAuth: jwtauth.New(TokenSecretAlgo, []byte(secret), nil)}
}

// GenerateJWT - токен для пользователя, подписанный тем же секретом
func (i *Identity) GenerateJWT(actor models.Actor) (string, error) {
	if _, ok := models.ParseRole(string(actor.Role)); !ok {
		return "", fmt.Errorf("unknown role %q", actor.Role)
	}
	claims := map[string]interface{}{
		ClaimSubject: actor.ID,
		ClaimRole:    string(actor.Role),
	}
	jwtauth.SetExpiryIn(claims, TokenExpirationTime)
	_, tokenString, err := i.JWTAuth.Encode(claims)
	return tokenString, err
}

// Возвращаем указатель на JWTAuth (chi)
func (i *Identity) GetTokenAuth() *jwtauth.JWTAuth {
	return i.JWTAuth
}
