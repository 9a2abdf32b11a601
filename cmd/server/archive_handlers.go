package main

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/blindquote/internal/archive"
	"github.com/Simplici0/blindquote/internal/business"
	"github.com/Simplici0/blindquote/internal/quote"
	"github.com/Simplici0/blindquote/internal/render"
)

type quotesViewData struct {
	baseViewData
	Query  string
	Quotes []archive.Summary
}

type quoteDetailViewData struct {
	baseViewData
	Record    archive.Record
	Internal  bool
	Quotation template.HTML
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.archive.List(r.Context(), query)
	if err != nil {
		log.Printf("list quotes: %v", err)
		http.Error(w, "failed to load quotes", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "quotes.html", quotesViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Query:  query,
		Quotes: quotes,
	})
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	record, ok := s.loadArchivedQuote(w, r)
	if !ok {
		return
	}

	doc, err := s.archivedDocument(record, r.URL.Query().Get("view"))
	if err != nil {
		http.Error(w, "failed to load business profile", http.StatusInternalServerError)
		return
	}
	fragment, err := render.Fragment(doc)
	if err != nil {
		http.Error(w, "failed to render quotation", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "quote_detail.html", quoteDetailViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Record:    record,
		Internal:  doc.Internal(),
		Quotation: fragment,
	})
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	record, ok := s.loadArchivedQuote(w, r)
	if !ok {
		return
	}

	doc, err := s.archivedDocument(record, r.URL.Query().Get("view"))
	if err != nil {
		http.Error(w, "failed to load business profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := render.Text(w, doc); err != nil {
		log.Printf("render text for quote %d: %v", record.ID, err)
	}
}

func (s *server) loadArchivedQuote(w http.ResponseWriter, r *http.Request) (archive.Record, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid quote id", http.StatusBadRequest)
		return archive.Record{}, false
	}

	record, err := s.archive.Get(r.Context(), id)
	if errors.Is(err, archive.ErrNotFound) {
		http.NotFound(w, r)
		return archive.Record{}, false
	}
	if err != nil {
		log.Printf("load quote %d: %v", id, err)
		http.Error(w, "failed to load quote", http.StatusInternalServerError)
		return archive.Record{}, false
	}
	return record, true
}

// archivedDocument renders a stored quote with its saved totals and date. The business profile
// is the current one.
func (s *server) archivedDocument(record archive.Record, view string) (render.Document, error) {
	profile, err := business.Get(s.db)
	if err != nil {
		return render.Document{}, err
	}

	mode, err := quote.ParseViewMode(view)
	if err != nil {
		mode = quote.ViewCustomer
	}

	return render.Document{
		Business:    profile,
		Customer:    record.Customer,
		Items:       record.Items,
		Totals:      record.Totals,
		QuoteNumber: record.QuoteNumber,
		Date:        record.CreatedAt,
		ViewMode:    mode,
	}, nil
}
