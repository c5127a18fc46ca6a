package client

// Book is a catalogue record as the API exchanges it. Wire names are
// the French column names of the remote service. Zero-valued optional
// fields stay off the wire so that wishlist payloads carry only the
// fields the wishlist knows about.
type Book struct {
	ID            int    `json:"id,omitempty"`
	Titre         string `json:"titre"`
	Auteur        string `json:"auteur"`
	Note          int    `json:"note,omitempty"`
	Proprietaire  string `json:"proprietaire"`
	StatutLecture string `json:"statut_lecture,omitempty"`
	EstWishlist   int    `json:"est_wishlist,omitempty"`
}

// Stats is the loosely-typed aggregate payload attached to listing
// responses. The key set is not part of the contract: readers must
// treat any missing key as zero.
type Stats map[string]interface{}

// Float reads a numeric stat, zero when absent or not a number.
func (s Stats) Float(key string) float64 {
	v, ok := s[key]
	if !ok {
		return 0
	}
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return f
}

// Int reads a numeric stat truncated to int, zero when absent.
func (s Stats) Int(key string) int {
	return int(s.Float(key))
}

// LoginResponse carries the api key granted by the login endpoint.
type LoginResponse struct {
	Message string `json:"message"`
	APIKey  string `json:"api_key"`
}

// MessageResponse is the generic outcome payload of mutating calls.
// ID is set on creation responses only.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id,omitempty"`
}

// BooksResponse is the collection listing payload.
type BooksResponse struct {
	Books []Book `json:"books"`
	Stats Stats  `json:"stats"`
}

// WishlistResponse is the wishlist listing payload.
type WishlistResponse struct {
	WishlistBooks []Book `json:"wishlist_books"`
	Stats         Stats  `json:"stats"`
}
