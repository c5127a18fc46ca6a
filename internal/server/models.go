package server

// Book represents a catalogue record. The wire names are the French
// column names of the historical database and are shared with every
// client of the API, so they are kept as-is.
type Book struct {
	ID            int    `json:"id"`
	Titre         string `json:"titre"`
	Auteur        string `json:"auteur"`
	Note          int    `json:"note"`
	Proprietaire  string `json:"proprietaire"`
	StatutLecture string `json:"statut_lecture"`
	EstWishlist   int    `json:"est_wishlist"`
}

// WishlistBook is the reduced projection returned by wishlist listings.
type WishlistBook struct {
	ID           int    `json:"id"`
	Titre        string `json:"titre"`
	Auteur       string `json:"auteur"`
	Proprietaire string `json:"proprietaire"`
}

// CollectionStats aggregates the whole collection, never the filtered
// subset of a listing request.
type CollectionStats struct {
	Total       int      `json:"total"`
	MesLivres   int      `json:"mes_livres"`
	LivresK     int      `json:"livres_k"`
	ALire       int      `json:"a_lire"`
	EnCours     int      `json:"en_cours"`
	Lus         int      `json:"lus"`
	NoteMoyenne *float64 `json:"note_moyenne"`
}

// WishlistStats aggregates the whole wishlist.
type WishlistStats struct {
	Total       int `json:"total"`
	MesSouhaits int `json:"mes_souhaits"`
	SouhaitsK   int `json:"souhaits_k"`
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the api key granted to a logged-in user.
type LoginResponse struct {
	Message string `json:"message"`
	APIKey  string `json:"api_key"`
}

// MessageResponse is the generic outcome payload. ID is set on
// creation responses only.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id,omitempty"`
}

// BooksResponse is the collection listing payload.
type BooksResponse struct {
	Books []Book          `json:"books"`
	Stats CollectionStats `json:"stats"`
}

// WishlistResponse is the wishlist listing payload.
type WishlistResponse struct {
	WishlistBooks []WishlistBook `json:"wishlist_books"`
	Stats         WishlistStats  `json:"stats"`
}
