package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/temirovuz/library/internal/domain"
	"github.com/temirovuz/library/internal/repository"
)

type userService struct {
	users   repository.UserRepository
	rentals repository.RentalRepository
}

func NewUserService(users repository.UserRepository, rentals repository.RentalRepository) UserService {
	return &userService{users: users, rentals: rentals}
}

func (s *userService) Profile(ctx context.Context, userID int64) (*domain.User, decimal.Decimal, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	debt, err := s.rentals.ActiveDebt(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return user, debt, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}
