package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/temirovuz/library/internal/domain"
	"github.com/temirovuz/library/internal/service"
)

type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type bookRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	AuthorID        int64  `json:"author_id"`
	GenreID         int64  `json:"genre_id"`
	DailyPrice      string `json:"daily_price"`
	AvailableCopies int32  `json:"available_copies"`
}

func (req *bookRequest) toDomain(w http.ResponseWriter) (*domain.Book, bool) {
	if req.Name == "" || req.AuthorID <= 0 || req.GenreID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name, author_id and genre_id are required"})
		return nil, false
	}
	price, err := decimal.NewFromString(req.DailyPrice)
	if err != nil || price.IsNegative() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid daily_price"})
		return nil, false
	}
	if req.AvailableCopies < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "available_copies must not be negative"})
		return nil, false
	}
	return &domain.Book{
		Name:            req.Name,
		Description:     req.Description,
		AuthorID:        req.AuthorID,
		GenreID:         req.GenreID,
		DailyPrice:      price,
		AvailableCopies: req.AvailableCopies,
	}, true
}

// HandleAddBook handles POST /books
func (h *CatalogHandler) HandleAddBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	book, ok := req.toDomain(w)
	if !ok {
		return
	}

	if err := h.catalog.AddBook(r.Context(), book); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

// HandleGetBook handles GET /books/{id}
func (h *CatalogHandler) HandleGetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	book, err := h.catalog.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// HandleUpdateBook handles PUT /books/{id}
func (h *CatalogHandler) HandleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req bookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	book, ok := req.toDomain(w)
	if !ok {
		return
	}
	book.ID = id

	if err := h.catalog.UpdateBook(r.Context(), book); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

// HandleDeleteBook handles DELETE /books/{id}
func (h *CatalogHandler) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteBook(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// HandleListBooks handles GET /books?page=&page_size=
func (h *CatalogHandler) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	books, total, err := h.catalog.ListBooks(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"books": books, "total": total})
}

// HandleSearch handles GET /search?q=
func (h *CatalogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "q is required"})
		return
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	books, total, err := h.catalog.SearchBooks(r.Context(), query, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"books": books, "total": total})
}

type nameRequest struct {
	Name string `json:"name"`
}

// HandleAddAuthor handles POST /authors
func (h *CatalogHandler) HandleAddAuthor(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	author := &domain.Author{Name: req.Name}
	if err := h.catalog.AddAuthor(r.Context(), author); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, author)
}

// HandleListAuthors handles GET /authors
func (h *CatalogHandler) HandleListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.catalog.ListAuthors(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authors)
}

// HandleAuthorBooks handles GET /authors/{id}
func (h *CatalogHandler) HandleAuthorBooks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	author, books, err := h.catalog.AuthorBooks(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"author": author, "books": books})
}

// HandleAddGenre handles POST /genres
func (h *CatalogHandler) HandleAddGenre(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	genre := &domain.Genre{Name: req.Name}
	if err := h.catalog.AddGenre(r.Context(), genre); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, genre)
}

// HandleListGenres handles GET /genres
func (h *CatalogHandler) HandleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalog.ListGenres(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

// HandleGenreBooks handles GET /genres/{id}
func (h *CatalogHandler) HandleGenreBooks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	genre, books, err := h.catalog.GenreBooks(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"genre": genre, "books": books})
}
