package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sessionKey struct{}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("requestID", middleware.GetReqID(r.Context())))
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// withSession attaches the browsing session id, issuing a new cookie when the request has none.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(h.opts.SessionCookie); err == nil {
			if id, err := uuid.Parse(c.Value); err == nil {
				sessionID = id.String()
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		// refreshed on every request so the cookie outlives the session by at most one TTL
		h.setSessionCookie(w, sessionID, int(h.opts.SessionTTL.Seconds()))

		next.ServeHTTP(w, withSessionID(r, sessionID))
	})
}

// setSessionCookie replaces any session cookie already queued on w. A negative maxAge expires it.
func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string, maxAge int) {
	cookies := w.Header().Values("Set-Cookie")
	w.Header().Del("Set-Cookie")
	prefix := h.opts.SessionCookie + "="
	for _, c := range cookies {
		if !strings.HasPrefix(c, prefix) {
			w.Header().Add("Set-Cookie", c)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// withSessionID points the rest of the request at a new session id.
func withSessionID(r *http.Request, sessionID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionKey{}, sessionID))
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}
