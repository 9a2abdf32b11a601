package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/blindquote/internal/archive"
	"github.com/Simplici0/blindquote/internal/business"
	"github.com/Simplici0/blindquote/internal/export"
	"github.com/Simplici0/blindquote/internal/notify"
	"github.com/Simplici0/blindquote/internal/pricing"
	"github.com/Simplici0/blindquote/internal/quote"
	"github.com/Simplici0/blindquote/internal/render"
	"github.com/Simplici0/blindquote/internal/storage"
)

const (
	statusSent     = "sent"
	statusFailed   = "failed"
	statusDisabled = "disabled"
	statusSkipped  = "skipped"
)

var downloadTypes = map[string]string{
	"pdf":  "application/pdf",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"html": "text/html; charset=utf-8",
	"txt":  "text/plain; charset=utf-8",
}

func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	contentType, ok := downloadTypes[format]
	if !ok {
		http.Error(w, "unknown download format", http.StatusNotFound)
		return
	}

	st, err := quoteSessionFrom(r).Snapshot()
	if err != nil {
		http.Error(w, "failed to load quote", http.StatusInternalServerError)
		return
	}
	if len(st.Items) == 0 || !st.Customer.Complete() {
		redirectWithError(w, r, quote.ErrNoItems)
		return
	}

	profile, err := business.Get(s.db)
	if err != nil {
		http.Error(w, "failed to load business profile", http.StatusInternalServerError)
		return
	}
	doc := render.FromState(profile, st, s.now())

	body, err := renderDocument(doc, format)
	if err != nil {
		log.Printf("render %s for %s: %v", format, st.QuoteNumber, err)
		http.Error(w, "failed to render quotation", http.StatusInternalServerError)
		return
	}

	fileName := render.FileName(st.Customer.Name, st.QuoteNumber) + "." + format
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	_, _ = w.Write(body)
}

func renderDocument(doc render.Document, format string) ([]byte, error) {
	switch format {
	case "pdf":
		return render.PDF(doc)
	case "xlsx":
		return render.XLSX(doc)
	case "html":
		var buf bytes.Buffer
		err := render.Page(&buf, doc)
		return buf.Bytes(), err
	case "txt":
		var buf bytes.Buffer
		err := render.Text(&buf, doc)
		return buf.Bytes(), err
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// sendResult records what happened to each delivery channel.
type sendResult struct {
	webhook string
	upload  string
	mail    string
	pdfURL  string
}

func (s *server) handleSend(w http.ResponseWriter, r *http.Request) {
	st, err := quoteSessionFrom(r).Snapshot()
	if err != nil {
		http.Error(w, "failed to load quote", http.StatusInternalServerError)
		return
	}
	if !st.Customer.Complete() {
		redirectWithError(w, r, quote.ErrCustomerRequired)
		return
	}
	if len(st.Items) == 0 {
		redirectWithError(w, r, quote.ErrNoItems)
		return
	}

	profile, err := business.Get(s.db)
	if err != nil {
		http.Error(w, "failed to load business profile", http.StatusInternalServerError)
		return
	}

	now := s.now()
	doc := render.FromState(profile, st, now)
	doc.ViewMode = quote.ViewCustomer

	ctx, cancel := context.WithTimeout(r.Context(), sendTimeout)
	defer cancel()

	result, sendErr := s.deliver(ctx, st, doc)
	if sendErr != nil {
		log.Printf("[send] %s: %v", st.QuoteNumber, sendErr)
	}

	id, err := s.archive.Save(r.Context(), archive.Record{
		QuoteNumber:   st.QuoteNumber,
		CreatedAt:     now,
		Customer:      st.Customer,
		Items:         st.Items,
		Totals:        doc.Totals,
		PDFURL:        result.pdfURL,
		WebhookStatus: result.webhook,
	})
	if err != nil {
		log.Printf("[send] archive %s: %v", st.QuoteNumber, err)
		http.Error(w, "failed to archive quote", http.StatusInternalServerError)
		return
	}

	msg := fmt.Sprintf("Quote %s saved (webhook: %s, upload: %s, email: %s)", st.QuoteNumber, result.webhook, result.upload, result.mail)
	param := "success"
	if sendErr != nil {
		param = "error"
	}
	http.Redirect(w, r, fmt.Sprintf("/quotes/%d?%s=%s", id, param, url.QueryEscape(msg)), http.StatusSeeOther)
}

// deliver runs the webhook post, the PDF upload and the customer e-mail in parallel. Each
// channel reports its own status; the returned error joins every failure.
func (s *server) deliver(ctx context.Context, st quote.State, doc render.Document) (sendResult, error) {
	result := sendResult{webhook: statusDisabled, upload: statusDisabled, mail: statusDisabled}

	pdf, err := render.PDF(doc)
	if err != nil {
		return sendResult{webhook: statusSkipped, upload: statusSkipped, mail: statusSkipped}, fmt.Errorf("render pdf: %w", err)
	}
	fileName := render.FileName(st.Customer.Name, st.QuoteNumber) + ".pdf"

	var webhookErr, uploadErr, mailErr error
	var g errgroup.Group

	if s.webhook != nil && s.webhook.Enabled() {
		g.Go(func() error {
			webhookErr = s.webhook.Send(ctx, export.NewPayload(st.Customer, st.Items, doc.Totals, st.QuoteNumber, doc.Date))
			result.webhook = status(webhookErr)
			return nil
		})
	}

	if s.uploader != nil {
		g.Go(func() error {
			result.pdfURL, uploadErr = s.uploader.Upload(ctx, storage.QuoteKey(st.QuoteNumber, fileName), pdf, "application/pdf")
			result.upload = status(uploadErr)
			return nil
		})
	}

	if s.mailer != nil && s.mailer.Enabled() {
		if st.Customer.Email == "" {
			result.mail = statusSkipped
		} else {
			g.Go(func() error {
				mailErr = s.mailer.Send(notify.Message{
					To:           st.Customer.Email,
					CustomerName: st.Customer.Name,
					QuoteNumber:  st.QuoteNumber,
					Total:        pricing.FormatAUD(doc.Totals.Total),
					FileName:     fileName,
					PDF:          pdf,
				})
				result.mail = status(mailErr)
				return nil
			})
		}
	}

	_ = g.Wait()
	return result, errors.Join(wrapIf("webhook", webhookErr), wrapIf("upload", uploadErr), wrapIf("email", mailErr))
}

func status(err error) string {
	if err != nil {
		return statusFailed
	}
	return statusSent
}

func wrapIf(channel string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", channel, err)
}
