package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Books lists the collection. params carries the server-side filters
// (query, search_by, proprietaire, statut); pass nil for no filtering.
func (c *Client) Books(ctx context.Context, params url.Values) (BooksResponse, error) {
	endpoint := "/books"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	var result BooksResponse
	if err := c.call(ctx, http.MethodGet, endpoint, nil, &result, true); err != nil {
		return BooksResponse{}, err
	}
	return result, nil
}

// Book fetches one collection record by id.
func (c *Client) Book(ctx context.Context, id int) (Book, error) {
	var result Book
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/books/%d", id), nil, &result, true); err != nil {
		return Book{}, err
	}
	return result, nil
}

// AddBook creates a collection record and returns its assigned id.
func (c *Client) AddBook(ctx context.Context, book Book) (MessageResponse, error) {
	book.ID = 0
	book.EstWishlist = 0
	var result MessageResponse
	if err := c.call(ctx, http.MethodPost, "/books", book, &result, true); err != nil {
		return MessageResponse{}, err
	}
	return result, nil
}

// UpdateBook replaces the editable fields of a collection record.
func (c *Client) UpdateBook(ctx context.Context, id int, book Book) (MessageResponse, error) {
	book.ID = 0
	book.EstWishlist = 0
	var result MessageResponse
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/books/%d", id), book, &result, true); err != nil {
		return MessageResponse{}, err
	}
	return result, nil
}

// DeleteBook removes a collection record.
func (c *Client) DeleteBook(ctx context.Context, id int) (MessageResponse, error) {
	var result MessageResponse
	if err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", id), nil, &result, true); err != nil {
		return MessageResponse{}, err
	}
	return result, nil
}
