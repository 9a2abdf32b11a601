package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/Simplici0/blindquote/internal/quote"
)

const quoteCookieName = "blindquote_quote"

type quoteSessionKey struct{}

// quoteSessionMiddleware attaches the caller's quoting session to the request, starting a new
// one when the cookie is missing or the session has expired.
func (s *server) quoteSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *quote.Session
		if cookie, err := r.Cookie(quoteCookieName); err == nil {
			sess, _ = s.sessions.Get(cookie.Value)
		}

		if sess == nil {
			var id string
			id, sess = s.sessions.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     quoteCookieName,
				Value:    id,
				Path:     "/quote",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), quoteSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func quoteSessionFrom(r *http.Request) *quote.Session {
	sess, _ := r.Context().Value(quoteSessionKey{}).(*quote.Session)
	return sess
}

func clearQuoteCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     quoteCookieName,
		Value:    "",
		Path:     "/quote",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

const eventBuffer = 16

// handleEvents streams the session's state changes as server-sent events so other open tabs
// can refresh.
func (s *server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	diffs, unsubscribe := quoteSessionFrom(r).Subscribe(eventBuffer)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case diff, ok := <-diffs:
			if !ok {
				return
			}
			data, err := json.Marshal(diff)
			if err != nil {
				log.Printf("encode quote diff: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", diff.Kind, data)
			flusher.Flush()
		}
	}
}
