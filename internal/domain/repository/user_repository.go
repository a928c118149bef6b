package repository

import (
	"context"

	"github.com/itamind/descongela-api/internal/domain/entity"
)

// UserRepository define o porte de persistência para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
