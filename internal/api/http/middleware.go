package http

import (
	"net/http"
	"strings"
	"time"

	"skillswap-backend/internal/config"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/security"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	userCookie      = "skillswap_session"
	adminCookie     = "skillswap_admin_session"
	requestIDHeader = "X-Request-ID"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := logger.WithContext(r.Context(), logger.Get().With("request_id", id))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		route := ""
		if cur := mux.CurrentRoute(r); cur != nil {
			route = cur.GetName()
		}
		logger.InfoContext(ctx, "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func sessionToken(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
			return strings.TrimSpace(h[7:])
		}
		return ""
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// authenticate attaches the caller's principal and enforces the route's
// security level. On the admin router every non-public route is admin-only.
func (s *Server) authenticate(adminRouter bool) mux.MiddlewareFunc {
	cookieName := userCookie
	if adminRouter {
		cookieName = adminCookie
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := ""
			if route := mux.CurrentRoute(r); route != nil {
				name = route.GetName()
			}
			level := config.GetSecurityLevel(name)
			if adminRouter && level != config.SecurityPublic {
				level = config.SecurityAdmin
			}

			var principal security.Principal = security.Anonymous{}
			if token := sessionToken(r, cookieName); token != "" {
				claims, err := s.tokens.ValidateToken(token)
				switch {
				case err == nil:
					principal = claims.Principal()
				case level != config.SecurityPublic:
					writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid or expired session"})
					return
				}
			}

			switch level {
			case config.SecurityUser:
				if _, ok := principal.(security.UserPrincipal); !ok {
					denied(w, principal)
					return
				}
			case config.SecurityAdmin:
				if _, ok := principal.(security.AdminPrincipal); !ok {
					denied(w, principal)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(security.WithPrincipal(r.Context(), principal)))
		})
	}
}

func denied(w http.ResponseWriter, p security.Principal) {
	if _, anon := p.(security.Anonymous); anon {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return
	}
	writeJSON(w, http.StatusForbidden, errorBody{Error: "permission denied"})
}

// caller returns the signed-in participant. The middleware has already
// guaranteed one exists on user routes.
func caller(r *http.Request) security.UserPrincipal {
	u, _ := security.UserFrom(r.Context())
	return u
}

func callerAdmin(r *http.Request) security.AdminPrincipal {
	a, _ := security.AdminFrom(r.Context())
	return a
}

func (s *Server) setSessionCookie(w http.ResponseWriter, name, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
