package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Simplici0/blindquote/internal/quote"
)

func sampleState(t *testing.T, email string) quote.State {
	t.Helper()

	item, err := quote.BuildItem(quote.ItemInput{
		Location: "Kitchen", Product: "Roller Blinds", Category: "Blockout", Group: "1",
		Width: "700", Drop: "1000", Quantity: "2", Mounting: "Recess",
	})
	if err != nil {
		t.Fatalf("BuildItem: %v", err)
	}
	s := quote.NewState("QU123456")
	s.Customer = quote.Customer{Name: "Jo Smith", Address: "1 High St", Phone: "0400 000 000", Email: email}
	s.Items = []quote.LineItem{item}
	return s
}

func TestPayloadFieldNames(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 30, 0, 0, time.FixedZone("AEDT", 11*3600))
	raw, err := json.Marshal(FromState(sampleState(t, ""), now))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got["quoteNumber"] != "QU123456" {
		t.Fatalf("unexpected quoteNumber %v", got["quoteNumber"])
	}
	if got["date"] != "2024-03-04T23:30:00Z" {
		t.Fatalf("date should be RFC 3339 UTC, got %v", got["date"])
	}

	customer := got["customer"].(map[string]any)
	if email, ok := customer["email"]; !ok || email != nil {
		t.Fatalf("missing email should be null, got %v (present=%v)", email, ok)
	}

	item := got["items"].([]any)[0].(map[string]any)
	for _, key := range []string{"location", "product", "category", "group", "recess", "width", "drop", "widthBand", "dropBand", "quantity", "unitPrice", "totalPrice"} {
		if _, ok := item[key]; !ok {
			t.Fatalf("item is missing %q: %v", key, item)
		}
	}
	if item["group"] != "1" || item["recess"] != "Recess" || item["widthBand"] != float64(760) || item["totalPrice"] != float64(110) {
		t.Fatalf("unexpected item values: %v", item)
	}

	totals := got["totals"].(map[string]any)
	for _, key := range []string{"subtotal", "gst", "total", "deposit", "balance"} {
		if _, ok := totals[key]; !ok {
			t.Fatalf("totals is missing %q", key)
		}
	}
	if totals["total"] != float64(121) || totals["deposit"] != 60.5 {
		t.Fatalf("unexpected totals %v", totals)
	}

	meta := got["metadata"].(map[string]any)
	if meta["currency"] != "AUD" || meta["gstRate"] != 0.1 || meta["depositRate"] != 0.5 {
		t.Fatalf("unexpected metadata %v", meta)
	}
}

func TestPayloadKeepsEmail(t *testing.T) {
	p := FromState(sampleState(t, "jo@example.com"), time.Now())
	if p.Customer.Email == nil || *p.Customer.Email != "jo@example.com" {
		t.Fatalf("unexpected email %v", p.Customer.Email)
	}
}

func TestDispatcher_Disabled(t *testing.T) {
	d := NewDispatcher("", 3)
	if d.Enabled() {
		t.Fatal("dispatcher without URL should be disabled")
	}
	if err := d.Send(context.Background(), Payload{}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestDispatcher_PostsJSON(t *testing.T) {
	var received Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, 0)
	if err := d.Send(context.Background(), FromState(sampleState(t, ""), time.Now())); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if received.QuoteNumber != "QU123456" || len(received.Items) != 1 {
		t.Fatalf("unexpected payload received: %+v", received)
	}
}

func TestDispatcher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "try later", http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, 3, WithBackoff(time.Millisecond))
	if err := d.Send(context.Background(), Payload{QuoteNumber: "QU000001"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestDispatcher_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, 2, WithBackoff(time.Millisecond))
	err := d.Send(context.Background(), Payload{QuoteNumber: "QU000001"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected a 500 StatusError, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 1 attempt plus 2 retries, got %d", calls.Load())
	}
}

func TestDispatcher_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, 5, WithBackoff(time.Millisecond))
	err := d.Send(context.Background(), Payload{})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadRequest || statusErr.Body != "bad payload" {
		t.Fatalf("expected a 400 StatusError, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("4xx should not be retried, got %d attempts", calls.Load())
	}
}
