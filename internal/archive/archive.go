// Package archive keeps a copy of every quotation that was sent, exactly as it was priced at
// the time.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Simplici0/blindquote/internal/bands"
	"github.com/Simplici0/blindquote/internal/pricing"
	"github.com/Simplici0/blindquote/internal/quote"
)

var ErrNotFound = errors.New("quote not found")

const timeLayout = "2006-01-02 15:04:05"

var quoteNumberPattern = regexp.MustCompile(`^QU\d{6}$`)

// Record is a stored quotation.
type Record struct {
	ID            int64
	QuoteNumber   string
	CreatedAt     time.Time
	Customer      quote.Customer
	Items         []quote.LineItem
	Totals        pricing.Totals
	PDFURL        string
	WebhookStatus string
}

// Validate checks a record before it is stored.
func (r Record) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.QuoteNumber, validation.Required, validation.Match(quoteNumberPattern)),
		validation.Field(&r.Items, validation.Required.Error("a quotation needs at least one item")),
	); err != nil {
		return err
	}
	if err := r.Customer.Validate(); err != nil {
		return fmt.Errorf("customer: %w", err)
	}
	return nil
}

// Summary is one row of the archive list.
type Summary struct {
	ID           int64
	QuoteNumber  string
	CustomerName string
	CreatedAt    time.Time
	ItemCount    int
	Total        float64
}

// Archive stores quotations in SQLite.
type Archive struct {
	db  *sql.DB
	now func() time.Time
}

// New returns an archive over db. The schema comes from the migrations package.
func New(db *sql.DB) *Archive {
	return &Archive{db: db, now: time.Now}
}

// Save stores r and its items in one transaction and returns the new id. A zero CreatedAt is
// set to the current time.
func (a *Archive) Save(ctx context.Context, r Record) (int64, error) {
	r.Customer = r.Customer.Normalize()
	if err := r.Validate(); err != nil {
		return 0, err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = a.now()
	}

	totalsJSON, err := json.Marshal(r.Totals)
	if err != nil {
		return 0, fmt.Errorf("encode totals: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin archive transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var email sql.NullString
	if r.Customer.Email != "" {
		email = sql.NullString{String: r.Customer.Email, Valid: true}
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO quotes (
			quote_number,
			created_at,
			customer_name,
			customer_address,
			customer_phone,
			customer_email,
			totals_json,
			pdf_url,
			webhook_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.QuoteNumber,
		r.CreatedAt.UTC().Format(timeLayout),
		r.Customer.Name,
		r.Customer.Address,
		r.Customer.Phone,
		email,
		string(totalsJSON),
		r.PDFURL,
		r.WebhookStatus,
	)
	if err != nil {
		return 0, fmt.Errorf("insert quote: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read quote id: %w", err)
	}

	for i, item := range r.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO quote_items (
				quote_id,
				position,
				location,
				product,
				category,
				pricing_group,
				mounting,
				width_mm,
				drop_mm,
				width_band,
				drop_band,
				quantity,
				unit_price,
				total_price
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			id,
			i,
			item.Location,
			item.Product,
			item.Category,
			int(item.Group),
			string(item.Mounting),
			item.Width,
			item.Drop,
			item.WidthBand,
			item.DropBand,
			item.Quantity,
			item.UnitPrice,
			item.TotalPrice,
		); err != nil {
			return 0, fmt.Errorf("insert quote item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit archive transaction: %w", err)
	}
	return id, nil
}

// List returns stored quotations newest first. A non-empty query filters on quote number or
// customer name.
func (a *Archive) List(ctx context.Context, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"

	rows, err := a.db.QueryContext(ctx, `
		SELECT
			q.id,
			q.quote_number,
			q.customer_name,
			strftime('%Y-%m-%d %H:%M:%S', q.created_at),
			q.totals_json,
			(SELECT COUNT(*) FROM quote_items i WHERE i.quote_id = q.id)
		FROM quotes q
		WHERE (? = '' OR q.quote_number LIKE ? OR q.customer_name LIKE ?)
		ORDER BY datetime(q.created_at) DESC, q.id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		var createdAt, totalsJSON string
		if err := rows.Scan(&s.ID, &s.QuoteNumber, &s.CustomerName, &createdAt, &totalsJSON, &s.ItemCount); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		s.CreatedAt = parseTime(createdAt)
		s.Total = extractTotal(totalsJSON)
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return out, nil
}

// Get loads a stored quotation as it was saved. Nothing is recomputed.
func (a *Archive) Get(ctx context.Context, id int64) (Record, error) {
	var r Record
	var createdAt, totalsJSON string
	var email sql.NullString

	err := a.db.QueryRowContext(ctx, `
		SELECT
			id,
			quote_number,
			strftime('%Y-%m-%d %H:%M:%S', created_at),
			customer_name,
			customer_address,
			customer_phone,
			customer_email,
			totals_json,
			pdf_url,
			webhook_status
		FROM quotes
		WHERE id = ?
	`, id).Scan(
		&r.ID,
		&r.QuoteNumber,
		&createdAt,
		&r.Customer.Name,
		&r.Customer.Address,
		&r.Customer.Phone,
		&email,
		&totalsJSON,
		&r.PDFURL,
		&r.WebhookStatus,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("query quote %d: %w", id, err)
	}

	r.CreatedAt = parseTime(createdAt)
	r.Customer.Email = email.String
	if err := json.Unmarshal([]byte(totalsJSON), &r.Totals); err != nil {
		return Record{}, fmt.Errorf("decode totals for quote %d: %w", id, err)
	}

	items, err := a.items(ctx, id)
	if err != nil {
		return Record{}, err
	}
	r.Items = items
	return r, nil
}

func (a *Archive) items(ctx context.Context, quoteID int64) ([]quote.LineItem, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT
			location,
			product,
			category,
			pricing_group,
			mounting,
			width_mm,
			drop_mm,
			width_band,
			drop_band,
			quantity,
			unit_price,
			total_price
		FROM quote_items
		WHERE quote_id = ?
		ORDER BY position
	`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("query quote items: %w", err)
	}
	defer rows.Close()

	items := make([]quote.LineItem, 0)
	for rows.Next() {
		var it quote.LineItem
		var group int
		var mounting string
		if err := rows.Scan(
			&it.Location,
			&it.Product,
			&it.Category,
			&group,
			&mounting,
			&it.Width,
			&it.Drop,
			&it.WidthBand,
			&it.DropBand,
			&it.Quantity,
			&it.UnitPrice,
			&it.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		it.Group = bands.Group(group)
		it.Mounting = quote.Mounting(mounting)
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quote items: %w", err)
	}
	return items, nil
}

func parseTime(s string) time.Time {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

func extractTotal(totalsJSON string) float64 {
	var t pricing.Totals
	if err := json.Unmarshal([]byte(totalsJSON), &t); err != nil {
		return 0
	}
	return t.Total
}
