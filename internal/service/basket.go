package service

import (
	"context"

	"github.com/temirovuz/library/internal/domain"
	"github.com/temirovuz/library/internal/repository"
)

type basketService struct {
	baskets repository.BasketRepository
	books   repository.BookRepository
}

func NewBasketService(baskets repository.BasketRepository, books repository.BookRepository) BasketService {
	return &basketService{baskets: baskets, books: books}
}

func (s *basketService) Add(ctx context.Context, userID, bookID int64) (*domain.BasketItem, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	exists, err := s.baskets.Exists(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateBasketItem
	}

	item := &domain.BasketItem{UserID: userID, BookID: bookID}
	if err := s.baskets.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *basketService) List(ctx context.Context, userID int64) ([]domain.BasketItem, error) {
	return s.baskets.ListByUser(ctx, userID)
}

func (s *basketService) Remove(ctx context.Context, userID, bookID int64) error {
	return s.baskets.Remove(ctx, userID, bookID)
}
