package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gofrs/uuid"
)

const (
	RequestIDPrefix     string     = "r"
	RequestIDContextKey ContextKey = "request.id"
	APIUserContextKey   ContextKey = "request.user"
)

var ErrBookNotFound = errors.New("book not found")

type (
	ContextKey        string
	missingFieldError string
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// GenerateID provides a random uid.
func GenerateID(prefix string) string {
	id, _ := uuid.NewV4()
	return prefix + ":" + id.String()
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// DecodeRequestBody reads a JSON request body into dst.
func DecodeRequestBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("invalid request body")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// ValidateBookPayload checks the fields every creation or update
// request must carry, whatever the target list.
func ValidateBookPayload(book *Book) error {
	if len(strings.TrimSpace(book.Titre)) == 0 {
		return missingFieldError("titre")
	}

	if len(strings.TrimSpace(book.Auteur)) == 0 {
		return missingFieldError("auteur")
	}

	if book.Note < 0 || book.Note > 5 {
		return errors.New("note must be between 0 and 5")
	}

	return nil
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}
