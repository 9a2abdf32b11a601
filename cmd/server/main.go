package main

import (
	"context"
	"database/sql"
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/blindquote/internal/archive"
	"github.com/Simplici0/blindquote/internal/config"
	"github.com/Simplici0/blindquote/internal/db"
	"github.com/Simplici0/blindquote/internal/export"
	"github.com/Simplici0/blindquote/internal/migrations"
	"github.com/Simplici0/blindquote/internal/notify"
	"github.com/Simplici0/blindquote/internal/pricing"
	"github.com/Simplici0/blindquote/internal/quote"
	"github.com/Simplici0/blindquote/internal/seed"
	"github.com/Simplici0/blindquote/internal/storage"
)

const (
	sessionIdleTimeout = 12 * time.Hour
	pruneInterval      = 10 * time.Minute
	sendTimeout        = 45 * time.Second
)

//go:embed templates/*.html
var templateFS embed.FS

// pdfUploader stores a generated PDF and returns where it can be fetched.
type pdfUploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// quoteMailer e-mails a quotation to the customer.
type quoteMailer interface {
	Enabled() bool
	Send(msg notify.Message) error
}

type server struct {
	auth     *authService
	db       *sql.DB
	sessions *quote.Store
	archive  *archive.Archive
	webhook  *export.Dispatcher
	uploader pdfUploader
	mailer   quoteMailer
	now      func() time.Time
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type loginViewData struct {
	baseViewData
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}

	stats, err := seed.Run(database, seed.Config{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	log.Printf("seed complete: %d inserts", stats.Inserts)

	srv := &server{
		auth:     newAuthService(database, cfg.SessionSecret),
		db:       database,
		sessions: quote.NewStore(),
		archive:  archive.New(database),
		webhook:  export.NewDispatcher(cfg.WebhookURL, cfg.WebhookMaxRetries),
		mailer: notify.NewMailer(notify.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}),
		now: time.Now,
	}

	if cfg.StorageEnabled() {
		r2, err := storage.NewR2Client(context.Background(), storage.Config{
			Endpoint:      cfg.R2.Endpoint,
			AccessKey:     cfg.R2.AccessKey,
			SecretKey:     cfg.R2.SecretKey,
			Bucket:        cfg.R2.Bucket,
			PublicBaseURL: cfg.R2.PublicBaseURL,
		})
		if err != nil {
			log.Fatalf("failed to create r2 client: %v", err)
		}
		srv.uploader = r2
	}

	log.Printf("integrations: webhook=%t storage=%t mail=%t", cfg.WebhookEnabled(), cfg.StorageEnabled(), cfg.MailEnabled())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.pruneSessions(ctx)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.authMiddleware)

	r.Get("/", s.handleHome)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Route("/quote", func(r chi.Router) {
		r.Use(s.quoteSessionMiddleware)
		r.Get("/", s.handleQuote)
		r.Post("/customer", s.handleCustomerSubmit)
		r.Post("/items", s.handleItemSubmit)
		r.Post("/items/cancel", s.handleItemCancel)
		r.Post("/items/{index}/edit", s.handleItemEdit)
		r.Post("/items/{index}/delete", s.handleItemDelete)
		r.Post("/step", s.handleStep)
		r.Post("/view", s.handleViewMode)
		r.Get("/preview", s.handlePreview)
		r.Get("/events", s.handleEvents)
		r.Get("/download/{format}", s.handleDownload)
		r.Post("/send", s.handleSend)
		r.Post("/reset", s.handleReset)
	})

	r.Get("/quotes", s.handleQuotesList)
	r.Get("/quotes/{id}", s.handleQuoteDetail)
	r.Get("/quotes/{id}/text", s.handleQuoteText)

	r.Get("/admin/business", s.handleAdminBusinessForm)
	r.Post("/admin/business", s.handleAdminBusinessSubmit)

	r.Get("/api/products", s.handleProducts)

	return r
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/quote", http.StatusSeeOther)
}

func (s *server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if isAuthenticated(r, s.auth) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderTemplate(w, "login.html", loginViewData{})
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	valid, err := s.auth.validateCredentials(email, password)
	if err != nil {
		http.Error(w, "authentication error", http.StatusInternalServerError)
		return
	}
	if !valid {
		w.WriteHeader(http.StatusUnauthorized)
		s.renderTemplate(w, "login.html", loginViewData{baseViewData: baseViewData{ErrorMessage: "Invalid email or password. Please try again."}})
		return
	}

	s.auth.setSessionCookie(w, email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	clearQuoteCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

var templateFuncs = template.FuncMap{
	"aud":  pricing.FormatAUD,
	"ago":  humanize.Time,
	"date": formatDateTime,
}

func formatDateTime(t time.Time) string {
	return t.Local().Format("02/01/2006 15:04")
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(
		templateFS,
		"templates/layout.html",
		"templates/"+page,
	)
	if err != nil {
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			next.ServeHTTP(w, r)
			return
		}

		if !isAuthenticated(r, s.auth) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isAuthenticated(r *http.Request, auth *authService) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return false
	}

	_, ok := auth.verifySessionValue(cookie.Value)
	return ok
}

func (s *server) pruneSessions(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Prune(sessionIdleTimeout); n > 0 {
				log.Printf("pruned %d idle quote sessions, %d live", n, s.sessions.Len())
			}
		}
	}
}
