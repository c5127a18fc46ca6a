package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Statistics holds app stats exposed by the status endpoint.
type Statistics struct {
	version string
	started time.Time
	called  uint64
}

// NewStatistics provides runtime statistics starting now.
func NewStatistics(version string) *Statistics {
	return &Statistics{version: version, started: time.Now()}
}

// APIHandler defines the API handler.
type APIHandler struct {
	logger  *zap.Logger
	config  *Config
	stats   *Statistics
	library LibraryServiceProvider
}

// NewAPIHandler provides a new instance of APIHandler.
func NewAPIHandler(logger *zap.Logger, config *Config, stats *Statistics, ls LibraryServiceProvider) *APIHandler {
	return &APIHandler{logger: logger, config: config, stats: stats, library: ls}
}

// fail logs the failure and sends the `{message}` error payload.
func (api *APIHandler) fail(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	api.logger.Error(message, zap.String("request.id", requestID), zap.Error(err))
	if werr := WriteMessage(w, status, message); werr != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(werr))
	}
}

// send writes a success payload and logs any transport failure.
func (api *APIHandler) send(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	if err := WriteJSON(w, status, v); err != nil {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// Index provides same details like `Status` handler by redirecting the request.
func (api *APIHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/status", http.StatusSeeOther)
}

// Status provides basics details about the application to the public users.
func (api *APIHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	api.send(w, r, http.StatusOK, map[string]interface{}{
		"requestid": GetValueFromContext(r.Context(), RequestIDContextKey),
		"status":    fmt.Sprintf("up & running since %.0f mins", time.Since(api.stats.started).Minutes()),
		"message":   "Hello. The book catalogue api is available. Enjoy :)",
	})
}

// Login checks the submitted credentials against the configured users
// and hands out the api key bound to the authenticated user.
func (api *APIHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req LoginRequest
	if err := DecodeRequestBody(r, &req); err != nil {
		api.fail(w, r, http.StatusBadRequest, "Invalid login request body", err)
		return
	}

	password, ok := api.config.Auth.Users[req.Username]
	if !ok || password != req.Password {
		api.fail(w, r, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	var apiKey string
	for key, user := range api.config.Auth.APIKeys {
		if user == req.Username {
			apiKey = key
			break
		}
	}
	if apiKey == "" {
		api.fail(w, r, http.StatusInternalServerError, "No API Key found for this user/configuration", nil)
		return
	}

	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	api.logger.Info("user logged in", zap.String("request.id", requestID), zap.String("user", req.Username))
	api.send(w, r, http.StatusOK, LoginResponse{Message: "Login successful", APIKey: apiKey})
}

// bookID parses the :id route parameter. The contract treats a non
// numeric id like a missing record.
func bookID(ps httprouter.Params) (int, bool) {
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// GetBooks lists the collection, filtered by the optional query parameters.
func (api *APIHandler) GetBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	filter := CollectionFilter{
		Query:        strings.TrimSpace(q.Get("query")),
		SearchBy:     q.Get("search_by"),
		Proprietaire: q.Get("proprietaire"),
		Statut:       q.Get("statut"),
	}

	books, stats, err := api.library.Collection(r.Context(), filter)
	if err != nil {
		api.fail(w, r, http.StatusInternalServerError, "Failed to fetch the collection", err)
		return
	}
	api.send(w, r, http.StatusOK, BooksResponse{Books: books, Stats: stats})
}

// GetBook fetches one collection record by id.
func (api *APIHandler) GetBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := bookID(ps)
	if !ok {
		api.fail(w, r, http.StatusNotFound, "Book not found in collection", nil)
		return
	}
	book, err := api.library.CollectionBook(r.Context(), id)
	if err == ErrBookNotFound {
		api.fail(w, r, http.StatusNotFound, "Book not found in collection", nil)
		return
	}
	if err != nil {
		api.fail(w, r, http.StatusInternalServerError, "Failed to fetch the book", err)
		return
	}
	api.send(w, r, http.StatusOK, book)
}

// CreateBook adds a record to the collection.
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var book Book
	if err := DecodeRequestBody(r, &book); err != nil {
		api.fail(w, r, http.StatusBadRequest, "Invalid book payload", err)
		return
	}
	if err := ValidateBookPayload(&book); err != nil {
		api.fail(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	id, err := api.library.AddCollectionBook(r.Context(), book)
	if err != nil {
		api.fail(w, r, http.StatusInternalServerError, "Failed to add the book", err)
		return
	}
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	api.logger.Info("book added to collection", zap.String("request.id", requestID), zap.Int("book.id", id))
	if err = WriteCreated(w, "Book added to the collection.", id); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateBook updates one collection record by id.
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := bookID(ps)
	if !ok {
		api.fail(w, r, http.StatusNotFound, "Book not found in collection", nil)
		return
	}
	var book Book
	if err := DecodeRequestBody(r, &book); err != nil {
		api.fail(w, r, http.StatusBadRequest, "Invalid book payload", err)
		return
	}
	if err := ValidateBookPayload(&book); err != nil {
		api.fail(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	err := api.library.UpdateCollectionBook(r.Context(), id, book)
	if err == ErrBookNotFound {
		api.fail(w, r, http.StatusNotFound, "Book not found in collection", nil)
		return
	}
	if err != nil {
		api.fail(w, r, http.StatusInternalServerError, "Failed to update the book", err)
		return
	}
	api.send(w, r, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Book %d updated in the collection.", id)})
}

// DeleteBook removes one collection record by id.
func (api *APIHandler) DeleteBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := bookID(ps)
	if !ok {
		api.fail(w, r, http.StatusNotFound, "Book not found in collection", nil)
		return
	}
	book, err := api.library.DeleteCollectionBook(r.Context(), id)
	if err == ErrBookNotFound {
		api.fail(w, r, http.StatusNotFound, "Book not found in collection", nil)
		return
	}
	if err != nil {
		api.fail(w, r, http.StatusInternalServerError, "Failed to delete the book", err)
		return
	}
	api.send(w, r, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Book %q removed from the collection.", book.Titre)})
}

// GetWishlist lists the wishlist, filtered by the optional search parameters.
func (api *APIHandler) GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	books, stats, err := api.library.Wishlist(r.Context(), strings.TrimSpace(q.Get("query")), q.Get("search_by"))
	if err != nil {
		api.fail(w, r, http.StatusInternalServerError, "Failed to fetch the wishlist", err)
		return
	}
	api.send(w, r, http.StatusOK, WishlistResponse{WishlistBooks: books, Stats: stats})
}

// GetWishlistBook fetches one wishlist record by id.
func (api *APIHandler) GetWishlistBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := bookID(ps)
	if !ok {
		api.fail(w, r, http.StatusNotFound, "Book not found in wishlist", nil)
		return
	}
	book, err := api.library.WishlistBook(r.Context(), id)
	if err == ErrBookNotFound {
		api.fail(w, r, http.StatusNotFound, "Book not found in wishlist", nil)
		return
	}
	if err != nil {
		api.fail(w, r, http.StatusInternalServerError, "Failed to fetch the book", err)
		return
	}
	api.send(w, r, http.StatusOK, book)
}

// CreateWishlistBook adds a record to the wishlist.
func (api *APIHandler) CreateWishlistBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var book Book
	if err := DecodeRequestBody(r, &book); err != nil {
		api.fail(w, r, http.StatusBadRequest, "Invalid book payload", err)
		return
	}
	if err := ValidateBookPayload(&book); err != nil {
		api.fail(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	id, err := api.library.AddWishlistBook(r.Context(), book)
	if err != nil {
		api.fail(w, r, http.StatusInternalServerError, "Failed to add the book", err)
		return
	}
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	api.logger.Info("book added to wishlist", zap.String("request.id", requestID), zap.Int("book.id", id))
	if err = WriteCreated(w, "Book added to the wishlist.", id); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateWishlistBook updates one wishlist record by id.
func (api *APIHandler) UpdateWishlistBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := bookID(ps)
	if !ok {
		api.fail(w, r, http.StatusNotFound, "Book not found in wishlist", nil)
		return
	}
	var book Book
	if err := DecodeRequestBody(r, &book); err != nil {
		api.fail(w, r, http.StatusBadRequest, "Invalid book payload", err)
		return
	}
	if err := ValidateBookPayload(&book); err != nil {
		api.fail(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	err := api.library.UpdateWishlistBook(r.Context(), id, book)
	if err == ErrBookNotFound {
		api.fail(w, r, http.StatusNotFound, "Book not found in wishlist", nil)
		return
	}
	if err != nil {
		api.fail(w, r, http.StatusInternalServerError, "Failed to update the book", err)
		return
	}
	api.send(w, r, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Book %d updated in the wishlist.", id)})
}

// DeleteWishlistBook removes one wishlist record by id.
func (api *APIHandler) DeleteWishlistBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := bookID(ps)
	if !ok {
		api.fail(w, r, http.StatusNotFound, "Book not found in wishlist", nil)
		return
	}
	book, err := api.library.DeleteWishlistBook(r.Context(), id)
	if err == ErrBookNotFound {
		api.fail(w, r, http.StatusNotFound, "Book not found in wishlist", nil)
		return
	}
	if err != nil {
		api.fail(w, r, http.StatusInternalServerError, "Failed to delete the book", err)
		return
	}
	api.send(w, r, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Book %q removed from the wishlist.", book.Titre)})
}

// MoveToCollection transfers one wishlist record into the collection.
func (api *APIHandler) MoveToCollection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := bookID(ps)
	if !ok {
		api.fail(w, r, http.StatusNotFound, "Book not found in wishlist", nil)
		return
	}
	book, err := api.library.MoveToCollection(r.Context(), id)
	if err == ErrBookNotFound {
		api.fail(w, r, http.StatusNotFound, "Book not found in wishlist", nil)
		return
	}
	if err != nil {
		api.fail(w, r, http.StatusInternalServerError, "Failed to move the book", err)
		return
	}
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	api.logger.Info("book moved to collection", zap.String("request.id", requestID), zap.Int("book.id", id))
	api.send(w, r, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Book %q added to your collection!", book.Titre)})
}
