package service

import (
	"context"
	"fmt"

	"bazaar-orders/internal/domain"
	"bazaar-orders/internal/repo"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type authService struct {
	userRepo repo.UserRepo
}

func NewAuthService(userRepo repo.UserRepo) AuthService {
	return &authService{userRepo: userRepo}
}

// Login checks the credential and returns the user. Unknown usernames and
// wrong passwords fail the same way so the response does not leak which
// accounts exist.
func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password != password {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	return user, nil
}
