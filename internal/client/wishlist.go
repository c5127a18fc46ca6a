package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Wishlist lists the wishlist. Only the text search filters apply to
// this list; owner and status filtering are collection-only.
func (c *Client) Wishlist(ctx context.Context, params url.Values) (WishlistResponse, error) {
	endpoint := "/wishlist"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	var result WishlistResponse
	if err := c.call(ctx, http.MethodGet, endpoint, nil, &result, true); err != nil {
		return WishlistResponse{}, err
	}
	return result, nil
}

// WishlistBook fetches one wishlist record by id.
func (c *Client) WishlistBook(ctx context.Context, id int) (Book, error) {
	var result Book
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/wishlist/%d", id), nil, &result, true); err != nil {
		return Book{}, err
	}
	return result, nil
}

// AddWishlistBook creates a wishlist record. Only title, author and
// owner travel; the wishlist flag is always set here so callers cannot
// accidentally file the record in the collection.
func (c *Client) AddWishlistBook(ctx context.Context, book Book) (MessageResponse, error) {
	payload := Book{
		Titre:        book.Titre,
		Auteur:       book.Auteur,
		Proprietaire: book.Proprietaire,
		EstWishlist:  1,
	}
	var result MessageResponse
	if err := c.call(ctx, http.MethodPost, "/wishlist", payload, &result, true); err != nil {
		return MessageResponse{}, err
	}
	return result, nil
}

// UpdateWishlistBook replaces the three editable fields of a wishlist
// record. Rating and reading status never appear in the payload.
func (c *Client) UpdateWishlistBook(ctx context.Context, id int, book Book) (MessageResponse, error) {
	payload := Book{
		Titre:        book.Titre,
		Auteur:       book.Auteur,
		Proprietaire: book.Proprietaire,
	}
	var result MessageResponse
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/wishlist/%d", id), payload, &result, true); err != nil {
		return MessageResponse{}, err
	}
	return result, nil
}

// DeleteWishlistBook removes a wishlist record.
func (c *Client) DeleteWishlistBook(ctx context.Context, id int) (MessageResponse, error) {
	var result MessageResponse
	if err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/wishlist/%d", id), nil, &result, true); err != nil {
		return MessageResponse{}, err
	}
	return result, nil
}

// MoveToCollection promotes a wishlist record into the collection.
// The server resets its reading status to "to read".
func (c *Client) MoveToCollection(ctx context.Context, id int) (MessageResponse, error) {
	var result MessageResponse
	if err := c.call(ctx, http.MethodPost, fmt.Sprintf("/wishlist/%d/move_to_collection", id), nil, &result, true); err != nil {
		return MessageResponse{}, err
	}
	return result, nil
}
