package business

import (
	"database/sql"
	"testing"

	"github.com/Simplici0/blindquote/internal/db"
	"github.com/Simplici0/blindquote/internal/migrations"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestDefaultProfileIsValid(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("default profile invalid: %v", err)
	}
	if p.ABN != "86 658 409 548" {
		t.Fatalf("unexpected ABN %q", p.ABN)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{name: "default", mutate: func(*Profile) {}},
		{name: "blank trading name", mutate: func(p *Profile) { p.TradingName = "   " }, wantErr: true},
		{name: "blank legal name", mutate: func(p *Profile) { p.LegalName = "" }, wantErr: true},
		{name: "bad email", mutate: func(p *Profile) { p.Email = "not-an-email" }, wantErr: true},
		{name: "empty email", mutate: func(p *Profile) { p.Email = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestTermLines(t *testing.T) {
	p := Profile{Terms: "ETA: Blinds 2-3 wks\n\nPlain note\r\nQuote: valid: 14 days"}
	p = p.Normalize()

	got := p.TermLines()
	want := []Term{
		{Label: "ETA", Value: "Blinds 2-3 wks"},
		{Value: "Plain note"},
		{Label: "Quote", Value: "valid: 14 days"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d terms, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("term %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if n := len(Default().TermLines()); n != 9 {
		t.Fatalf("expected 9 default terms, got %d", n)
	}
}

func TestStore_EnsureGetUpdate(t *testing.T) {
	database := newTestDB(t)

	inserted, err := Ensure(database, Default())
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !inserted {
		t.Fatal("expected first Ensure to insert")
	}
	if inserted, err = Ensure(database, Default()); err != nil || inserted {
		t.Fatalf("second Ensure inserted=%v err=%v", inserted, err)
	}

	p, err := Get(database)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p != Default().Normalize() {
		t.Fatalf("unexpected stored profile: %+v", p)
	}

	p.Phone = " 02 9000 0000 "
	p.BSB = "062-000"
	if err := Update(database, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := Get(database)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Phone != "02 9000 0000" || got.BSB != "062-000" {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestStore_UpdateRejectsInvalid(t *testing.T) {
	database := newTestDB(t)

	p := Default()
	p.TradingName = ""
	if err := Update(database, p); err == nil {
		t.Fatal("expected validation error")
	}

	got, err := Get(database)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TradingName != Default().TradingName {
		t.Fatalf("invalid update was persisted: %+v", got)
	}
}

func TestGetCreatesDefaultWhenMissing(t *testing.T) {
	database := newTestDB(t)

	p, err := Get(database)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.LegalName != "SP Interior Solutions Pty Ltd" {
		t.Fatalf("unexpected legal name %q", p.LegalName)
	}
}
