package archive

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Simplici0/blindquote/internal/db"
	"github.com/Simplici0/blindquote/internal/migrations"
	"github.com/Simplici0/blindquote/internal/pricing"
	"github.com/Simplici0/blindquote/internal/quote"
)

func newTestArchive(t *testing.T) (*Archive, *sql.DB) {
	t.Helper()

	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return New(database), database
}

func sampleRecord(t *testing.T, number, customer string, at time.Time) Record {
	t.Helper()

	item, err := quote.BuildItem(quote.ItemInput{
		Location: "Kitchen", Product: "Roller Blinds", Category: "Screen", Group: "2",
		Width: "700", Drop: "1000", Quantity: "2", Mounting: "Recess",
	})
	if err != nil {
		t.Fatalf("BuildItem: %v", err)
	}
	items := []quote.LineItem{item}
	return Record{
		QuoteNumber: number,
		CreatedAt:   at,
		Customer:    quote.Customer{Name: customer, Address: "1 High St", Phone: "0400 000 000"},
		Items:       items,
		Totals:      quote.Totals(items),
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	a, _ := newTestArchive(t)
	ctx := context.Background()

	at := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	rec := sampleRecord(t, "QU123456", "Jo Smith", at)
	rec.Customer.Email = "jo@example.com"
	rec.PDFURL = "https://cdn.example.com/q.pdf"
	rec.WebhookStatus = "sent"

	id, err := a.Save(ctx, rec)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := a.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got.QuoteNumber != "QU123456" || !got.CreatedAt.Equal(at) {
		t.Fatalf("unexpected header: %+v", got)
	}
	if got.Customer != rec.Customer {
		t.Fatalf("customer mismatch: %+v vs %+v", got.Customer, rec.Customer)
	}
	if got.Totals != rec.Totals {
		t.Fatalf("totals mismatch: %+v vs %+v", got.Totals, rec.Totals)
	}
	if len(got.Items) != 1 || got.Items[0] != rec.Items[0] {
		t.Fatalf("items mismatch: %+v vs %+v", got.Items, rec.Items)
	}
	if got.PDFURL != rec.PDFURL || got.WebhookStatus != "sent" {
		t.Fatalf("delivery fields not stored: %+v", got)
	}
}

func TestGetReturnsSnapshotWithoutRecalculation(t *testing.T) {
	a, database := newTestArchive(t)
	ctx := context.Background()

	id, err := a.Save(ctx, sampleRecord(t, "QU000001", "Jo Smith", time.Now()))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := database.Exec(`UPDATE quotes SET totals_json = ? WHERE id = ?`, `{"subtotal":1,"gst":2,"total":999.99,"deposit":4,"balance":5}`, id); err != nil {
		t.Fatalf("tamper totals: %v", err)
	}

	got, err := a.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Totals.Total != 999.99 {
		t.Fatalf("expected stored total 999.99, got %.2f", got.Totals.Total)
	}
}

func TestGetMissing(t *testing.T) {
	a, _ := newTestArchive(t)
	if _, err := a.Get(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmailStoredAsNull(t *testing.T) {
	a, database := newTestArchive(t)
	id, err := a.Save(context.Background(), sampleRecord(t, "QU000002", "Jo Smith", time.Now()))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	var email sql.NullString
	if err := database.QueryRow(`SELECT customer_email FROM quotes WHERE id = ?`, id).Scan(&email); err != nil {
		t.Fatalf("query email: %v", err)
	}
	if email.Valid {
		t.Fatalf("expected NULL email, got %q", email.String)
	}
}

func TestSaveRejectsInvalidRecords(t *testing.T) {
	a, database := newTestArchive(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Record)
	}{
		{name: "bad quote number", mutate: func(r *Record) { r.QuoteNumber = "123" }},
		{name: "no items", mutate: func(r *Record) { r.Items = nil }},
		{name: "no customer phone", mutate: func(r *Record) { r.Customer.Phone = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord(t, "QU000003", "Jo Smith", time.Now())
			tt.mutate(&rec)
			if _, err := a.Save(ctx, rec); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM quotes`).Scan(&count); err != nil {
		t.Fatalf("count quotes: %v", err)
	}
	if count != 0 {
		t.Fatalf("invalid records were stored: %d", count)
	}
}

func TestListFiltersAndOrdersNewestFirst(t *testing.T) {
	a, _ := newTestArchive(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)

	for i, c := range []struct{ number, name string }{
		{"QU000010", "Alice Brown"},
		{"QU000020", "Bob Green"},
		{"QU000030", "Alice Cooper"},
	} {
		if _, err := a.Save(ctx, sampleRecord(t, c.number, c.name, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := a.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].QuoteNumber != "QU000030" || all[2].QuoteNumber != "QU000010" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if all[0].ItemCount != 1 || all[0].Total != pricing.RoundCents(all[0].Total) || all[0].Total <= 0 {
		t.Fatalf("unexpected summary: %+v", all[0])
	}
	if !all[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("unexpected created at %v", all[0].CreatedAt)
	}

	alices, err := a.List(ctx, " alice ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(alices) != 2 {
		t.Fatalf("expected 2 matches for alice, got %d", len(alices))
	}

	byNumber, err := a.List(ctx, "QU000020")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byNumber) != 1 || byNumber[0].CustomerName != "Bob Green" {
		t.Fatalf("unexpected number search: %+v", byNumber)
	}
}
