package server

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// MiddlewareFunc is a custom type for ease of use.
type MiddlewareFunc func(httprouter.Handle) httprouter.Handle

// Middlewares is a custom type to represent a stack of
// middleware functions used to build a single chain.
type Middlewares []MiddlewareFunc

// MiddlewareMap contains the middleware chains for the public
// endpoints (login, status) and the bearer-protected ones.
type MiddlewareMap struct {
	public    *Middlewares
	protected *Middlewares
}

// MiddlewaresStacks builds both middleware chains. The protected one
// is the public one plus the api key check.
func (api *APIHandler) MiddlewaresStacks() *MiddlewareMap {
	public := Middlewares{
		api.PanicRecoveryMiddleware,
		api.RequestsCounterMiddleware,
		api.RequestIDMiddleware,
		CORSMiddleware,
		api.CoreMiddleware,
	}
	protected := append(Middlewares{}, public...)
	protected = append(protected, api.APIKeyAuthMiddleware)
	return &MiddlewareMap{public: &public, protected: &protected}
}

// CoreMiddleware setup the duration measurement for each request and logs its result.
func (api *APIHandler) CoreMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)

		api.logger.Info(
			"request",
			zap.String("request.id", requestID),
			zap.String("request.method", r.Method),
			zap.String("request.path", r.URL.Path),
			zap.String("request.ip", GetRequestSourceIP(r)),
			zap.String("request.agent", r.UserAgent()),
		)

		next(w, r, ps)
		api.logger.Info(
			"request",
			zap.String("request.id", requestID),
			zap.String("request.method", r.Method),
			zap.String("request.path", r.URL.Path),
			zap.Duration("request.duration", time.Since(start)),
		)
	}
}

// RequestsCounterMiddleware increments the number of received requests statistics.
func (api *APIHandler) RequestsCounterMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		atomic.AddUint64(&api.stats.called, 1)
		next(w, r, ps)
	}
}

// RequestIDMiddleware generates and add a unique id to the request context.
func (api *APIHandler) RequestIDMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := GenerateID(RequestIDPrefix)
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
		r = r.WithContext(ctx)
		next(w, r, ps)
	}
}

// CORSMiddleware intercepts each incoming HTTP calls then apply cors headers on it.
// The browser client is served from another origin.
func CORSMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, User-Agent, Accept-Language, Referer, Connection, Pragma, Cache-Control")
		next(w, r, ps)
	}
}

// PanicRecoveryMiddleware catches any panic during the request lifecycle and produces
// an error log for further analysis. It sends a failure response to the client with 500.
func (api *APIHandler) PanicRecoveryMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		recovery := func() {
			if err := recover(); err != nil {
				requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
				api.logger.Error("panic occurred", zap.String("request.id", requestID), zap.Any("error", err))
				if werr := WriteMessage(w, http.StatusInternalServerError, "failed to process the request"); werr != nil {
					api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(werr))
				}
			}
		}
		defer recovery()
		next(w, r, ps)
	}
}

// APIKeyAuthMiddleware enforces the `Authorization: Bearer <api_key>`
// scheme on protected endpoints. The username bound to the key is set
// in the request context for logging.
func (api *APIHandler) APIKeyAuthMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			api.reject(w, requestID, "Authorization header is missing")
			return
		}

		scheme, key, found := strings.Cut(authHeader, " ")
		if !found {
			api.reject(w, requestID, `Invalid Authorization header format. Expected "Bearer <api_key>"`)
			return
		}
		if !strings.EqualFold(scheme, "Bearer") {
			api.reject(w, requestID, "Invalid authorization scheme. Use Bearer.")
			return
		}

		user, ok := api.config.Auth.APIKeys[strings.TrimSpace(key)]
		if !ok {
			api.reject(w, requestID, "Invalid API Key")
			return
		}

		ctx := context.WithValue(r.Context(), APIUserContextKey, user)
		next(w, r.WithContext(ctx), ps)
	}
}

func (api *APIHandler) reject(w http.ResponseWriter, requestID, message string) {
	api.logger.Info("unauthorized request", zap.String("request.id", requestID), zap.String("reason", message))
	if err := WriteMessage(w, http.StatusUnauthorized, message); err != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// Chain wraps a given httprouter.Handle with a list of middlewares.
// It does by starting from the last middleware from the list.
func (m *Middlewares) Chain(h httprouter.Handle) httprouter.Handle {
	if len(*m) == 0 {
		return h
	}
	lg := len(*m)
	handle := (*m)[lg-1](h)

	for i := lg - 2; i >= 0; i-- {
		handle = (*m)[i](handle)
	}

	return handle
}
