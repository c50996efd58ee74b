package domain

import "github.com/shopspring/decimal"

type Book struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	AuthorID        int64           `json:"author_id"`
	GenreID         int64           `json:"genre_id"`
	DailyPrice      decimal.Decimal `json:"daily_price"`
	AvailableCopies int32           `json:"available_copies"`
	IsAvailable     bool            `json:"is_available"`
}

type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
