package middleware

import "net/http"

// Chain wraps h with the given middlewares, outermost last.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
