package helpers

import (
	"context"
	"errors"
	"fmt"

	"github.com/denmor86/ya-laundry/internal/logger"
	"github.com/denmor86/ya-laundry/internal/models"
	"github.com/denmor86/ya-laundry/internal/validators"
	"github.com/go-chi/jwtauth/v5"
)

var ErrUndefinedActor = errors.New("undefined user in token")

// GetActor - извлекает идентификатор и роль пользователя из контекста JWT токена
func GetActor(ctx context.Context) (models.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return models.Actor{}, fmt.Errorf("%w: %w", ErrUndefinedActor, err)
	}
	id, ok := claims["sub"].(string)
	if !ok || !validators.CheckUserID(id) {
		logger.Warnw("undefined user id in token", "sub", claims["sub"])
		return models.Actor{}, ErrUndefinedActor
	}
	value, _ := claims["role"].(string)
	role, ok := models.ParseRole(value)
	if !ok {
		logger.Warnw("undefined role in token", "user", id, "role", claims["role"])
		return models.Actor{}, ErrUndefinedActor
	}
	return models.Actor{ID: id, Role: role}, nil
}
