package http

import (
	"net/http"

	"github.com/temirovuz/library/internal/service"
)

type ReviewHandler struct {
	reviews service.ReviewService
	baskets service.BasketService
}

func NewReviewHandler(reviews service.ReviewService, baskets service.BasketService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, baskets: baskets}
}

type reviewRequest struct {
	UserID  int64  `json:"user_id"`
	BookID  int64  `json:"book_id"`
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

// HandleSubmitReview handles POST /reviews. Submitting a review completes
// the return of the user's active rental of the book.
func (h *ReviewHandler) HandleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if !decodeBody(w, r, &req) {
		return
	}

	review, err := h.reviews.Submit(r.Context(), req.UserID, req.BookID, req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// HandleListReviews handles GET /books/{id}/reviews
func (h *ReviewHandler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.reviews.ListByBook(r.Context(), bookID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

type basketRequest struct {
	UserID int64 `json:"user_id"`
	BookID int64 `json:"book_id"`
}

// HandleAddToBasket handles POST /basket
func (h *ReviewHandler) HandleAddToBasket(w http.ResponseWriter, r *http.Request) {
	var req basketRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.baskets.Add(r.Context(), req.UserID, req.BookID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// HandleListBasket handles GET /basket?user_id=
func (h *ReviewHandler) HandleListBasket(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	items, err := h.baskets.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// HandleRemoveFromBasket handles DELETE /basket/{id}?user_id= where {id} is
// the book id.
func (h *ReviewHandler) HandleRemoveFromBasket(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	if err := h.baskets.Remove(r.Context(), userID, bookID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
