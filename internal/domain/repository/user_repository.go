package repository

import (
	"context"

	"github.com/eymenelneccar/ewf/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (auth).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
