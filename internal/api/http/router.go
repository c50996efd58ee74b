package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all handlers onto a mux router.
func NewRouter(rentals *RentalHandler, catalog *CatalogHandler, reviews *ReviewHandler, users *UserHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Rentals
	r.HandleFunc("/rentals", rentals.HandleReserve).Methods(http.MethodPost)
	r.HandleFunc("/rentals", rentals.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/rentals/{id:[0-9]+}", rentals.HandleGet).Methods(http.MethodGet)
	r.HandleFunc("/rentals/{id:[0-9]+}/pickup", rentals.HandlePickUp).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id:[0-9]+}/cancel", rentals.HandleCancel).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id:[0-9]+}/return", rentals.HandleReturn).Methods(http.MethodPost)
	r.HandleFunc("/users/{id:[0-9]+}/debt", rentals.HandleDebt).Methods(http.MethodGet)

	// Users
	r.HandleFunc("/users/{id:[0-9]+}", users.HandleGetUser).Methods(http.MethodGet)
	r.HandleFunc("/users", users.HandleLookupUser).Methods(http.MethodGet)

	// Catalog
	r.HandleFunc("/books", catalog.HandleAddBook).Methods(http.MethodPost)
	r.HandleFunc("/books", catalog.HandleListBooks).Methods(http.MethodGet)
	r.HandleFunc("/books/{id:[0-9]+}", catalog.HandleGetBook).Methods(http.MethodGet)
	r.HandleFunc("/books/{id:[0-9]+}", catalog.HandleUpdateBook).Methods(http.MethodPut)
	r.HandleFunc("/books/{id:[0-9]+}", catalog.HandleDeleteBook).Methods(http.MethodDelete)
	r.HandleFunc("/books/{id:[0-9]+}/reviews", reviews.HandleListReviews).Methods(http.MethodGet)
	r.HandleFunc("/authors", catalog.HandleAddAuthor).Methods(http.MethodPost)
	r.HandleFunc("/authors", catalog.HandleListAuthors).Methods(http.MethodGet)
	r.HandleFunc("/authors/{id:[0-9]+}", catalog.HandleAuthorBooks).Methods(http.MethodGet)
	r.HandleFunc("/genres", catalog.HandleAddGenre).Methods(http.MethodPost)
	r.HandleFunc("/genres", catalog.HandleListGenres).Methods(http.MethodGet)
	r.HandleFunc("/genres/{id:[0-9]+}", catalog.HandleGenreBooks).Methods(http.MethodGet)
	r.HandleFunc("/search", catalog.HandleSearch).Methods(http.MethodGet)

	// Reviews and basket
	r.HandleFunc("/reviews", reviews.HandleSubmitReview).Methods(http.MethodPost)
	r.HandleFunc("/basket", reviews.HandleAddToBasket).Methods(http.MethodPost)
	r.HandleFunc("/basket", reviews.HandleListBasket).Methods(http.MethodGet)
	r.HandleFunc("/basket/{id:[0-9]+}", reviews.HandleRemoveFromBasket).Methods(http.MethodDelete)

	return r
}
