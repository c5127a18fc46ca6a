package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// SetupRoutes enforces the api routes. Login and the status banner are
// public, everything else requires a bearer api key.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/", m.public.Chain(api.Index))
	router.GET("/status", m.public.Chain(api.Status))

	router.POST("/api/v1/login", m.public.Chain(api.Login))

	router.GET("/api/v1/books", m.protected.Chain(api.GetBooks))
	router.POST("/api/v1/books", m.protected.Chain(api.CreateBook))
	router.GET("/api/v1/books/:id", m.protected.Chain(api.GetBook))
	router.PUT("/api/v1/books/:id", m.protected.Chain(api.UpdateBook))
	router.DELETE("/api/v1/books/:id", m.protected.Chain(api.DeleteBook))

	router.GET("/api/v1/wishlist", m.protected.Chain(api.GetWishlist))
	router.POST("/api/v1/wishlist", m.protected.Chain(api.CreateWishlistBook))
	router.GET("/api/v1/wishlist/:id", m.protected.Chain(api.GetWishlistBook))
	router.PUT("/api/v1/wishlist/:id", m.protected.Chain(api.UpdateWishlistBook))
	router.DELETE("/api/v1/wishlist/:id", m.protected.Chain(api.DeleteWishlistBook))
	router.POST("/api/v1/wishlist/:id/move_to_collection", m.protected.Chain(api.MoveToCollection))

	// Unknown paths and methods answer with the same `{message}` JSON
	// body as any other failure.
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = WriteMessage(w, http.StatusNotFound, "Resource not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed for this resource")
	})
	return router
}
