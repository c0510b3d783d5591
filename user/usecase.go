package user

import (
	"context"
	"strings"
)

type Service interface {
	Register(ctx context.Context, r Registration) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

// Repository returns ErrUserNotFound for missing users and
// ErrUserAlreadyExists on duplicate username or email.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Usecase struct {
	r      Repository
	hasher PasswordHasher
}

func NewUsecase(r Repository, h PasswordHasher) *Usecase {
	return &Usecase{
		r:      r,
		hasher: h,
	}
}

func (uc *Usecase) Register(ctx context.Context, r Registration) (User, error) {
	if err := r.Validate(); err != nil {
		return User{}, err
	}

	hashed, err := uc.hasher.Hash(r.Password)
	if err != nil {
		return User{}, err
	}

	return uc.r.Create(ctx, User{
		Username:     strings.TrimSpace(r.Username),
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		PasswordHash: hashed,
	})
}

func (uc *Usecase) GetByID(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrInvalidUserID
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) GetByUsername(ctx context.Context, username string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrInvalidUsername
	}
	return uc.r.GetByUsername(ctx, username)
}
