package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/temirovuz/library/internal/service"
)

// RentalHandler exposes the rental lifecycle operations. Caller identity
// arrives as a user_id request field; authentication is the outer layer's
// concern.
type RentalHandler struct {
	rentals service.RentalService
}

func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type reserveRequest struct {
	UserID int64 `json:"user_id"`
	BookID int64 `json:"book_id"`
}

// HandleReserve handles POST /rentals
func (h *RentalHandler) HandleReserve(w http.ResponseWriter, r *http.Request) {
	var req reserveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rental, err := h.rentals.Reserve(r.Context(), req.UserID, req.BookID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

type pickUpRequest struct {
	UserID     int64 `json:"user_id"`
	RentalDays int32 `json:"rental_days"`
}

// HandlePickUp handles POST /rentals/{id}/pickup
func (h *RentalHandler) HandlePickUp(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req pickUpRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rental, err := h.rentals.PickUp(r.Context(), req.UserID, rentalID, req.RentalDays)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

type cancelRequest struct {
	UserID int64 `json:"user_id"`
}

// HandleCancel handles POST /rentals/{id}/cancel
func (h *RentalHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req cancelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rental, err := h.rentals.Cancel(r.Context(), req.UserID, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// HandleReturn handles POST /rentals/{id}/return
func (h *RentalHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req cancelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rental, err := h.rentals.CompleteReturn(r.Context(), req.UserID, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// HandleGet handles GET /rentals/{id}?user_id=
func (h *RentalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	rental, err := h.rentals.GetRental(r.Context(), userID, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// HandleList handles GET /rentals?user_id=&status=&page=
func (h *RentalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	status := r.URL.Query().Get("status")

	rentals, total, err := h.rentals.ListRentals(r.Context(), userID, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rentals": rentals,
		"total":   total,
	})
}

// HandleDebt handles GET /users/{id}/debt
func (h *RentalHandler) HandleDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	debt, err := h.rentals.Debt(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"debt": debt.StringFixed(2)})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid user_id"})
		return 0, false
	}
	return id, true
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 32)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}
