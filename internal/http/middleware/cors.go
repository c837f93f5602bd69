package middleware

import (
	"net/http"
	"strings"
)

const corsAllowedHeaders = "Content-Type, X-Request-ID"

// CORSConfig scopes cross-origin access to specific origins and routes.
type CORSConfig struct {
	// AllowedOrigins may contain "*" to echo any Origin back.
	AllowedOrigins []string
	// Routes maps a path to the single method browsers may use cross-origin.
	Routes map[string]string
}

// CORS answers preflights for the configured routes and tags allowed
// cross-origin responses. Preflights from unlisted origins get 403 and
// preflights for another method get 405, both without CORS headers.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	allowAny := false
	allow := map[string]struct{}{}
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
		case "*":
			allowAny = true
		default:
			allow[origin] = struct{}{}
		}
	}
	originAllowed := func(origin string) bool {
		if allowAny {
			return true
		}
		_, ok := allow[origin]
		return ok
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			method, routed := cfg.Routes[routePath(r.URL.Path)]
			if origin == "" || !routed {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Origin")

			requested := r.Header.Get("Access-Control-Request-Method")
			if r.Method == http.MethodOptions && requested != "" {
				w.Header().Add("Vary", "Access-Control-Request-Method")
				switch {
				case !originAllowed(origin):
					w.WriteHeader(http.StatusForbidden)
				case !strings.EqualFold(requested, method):
					w.WriteHeader(http.StatusMethodNotAllowed)
				default:
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Methods", method)
					w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
					w.Header().Set("Access-Control-Max-Age", "600")
					w.WriteHeader(http.StatusNoContent)
				}
				return
			}

			if originAllowed(origin) && r.Method == method {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func routePath(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}
	return path
}
