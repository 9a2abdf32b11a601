package business

import (
	"database/sql"
	"errors"
	"fmt"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Ensure inserts p as the singleton profile when none exists. It reports whether a row was
// inserted.
func Ensure(q Querier, p Profile) (bool, error) {
	p = p.Normalize()
	result, err := q.Exec(`
		INSERT INTO business_profile (
			id,
			trading_name,
			legal_name,
			phone,
			email,
			website,
			facebook,
			abn,
			account_name,
			bsb,
			account_number,
			terms
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		p.TradingName,
		p.LegalName,
		p.Phone,
		p.Email,
		p.Website,
		p.Facebook,
		p.ABN,
		p.AccountName,
		p.BSB,
		p.AccountNumber,
		p.Terms,
	)
	if err != nil {
		return false, fmt.Errorf("insert default business_profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert default business_profile: %w", err)
	}
	return affected > 0, nil
}

// Get loads the profile, creating the default one if the table is empty.
func Get(q Querier) (Profile, error) {
	if _, err := Ensure(q, Default()); err != nil {
		return Profile{}, err
	}

	var p Profile
	err := q.QueryRow(`
		SELECT trading_name, legal_name, phone, email, website, facebook, abn, account_name, bsb, account_number, terms
		FROM business_profile
		WHERE id = 1
	`).Scan(
		&p.TradingName,
		&p.LegalName,
		&p.Phone,
		&p.Email,
		&p.Website,
		&p.Facebook,
		&p.ABN,
		&p.AccountName,
		&p.BSB,
		&p.AccountNumber,
		&p.Terms,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, fmt.Errorf("business_profile singleton not found")
		}
		return Profile{}, fmt.Errorf("query business_profile: %w", err)
	}
	return p, nil
}

// Update validates p and overwrites the singleton.
func Update(q Querier, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p = p.Normalize()

	if _, err := Ensure(q, Default()); err != nil {
		return err
	}

	_, err := q.Exec(`
		UPDATE business_profile
		SET
			trading_name = ?,
			legal_name = ?,
			phone = ?,
			email = ?,
			website = ?,
			facebook = ?,
			abn = ?,
			account_name = ?,
			bsb = ?,
			account_number = ?,
			terms = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		p.TradingName,
		p.LegalName,
		p.Phone,
		p.Email,
		p.Website,
		p.Facebook,
		p.ABN,
		p.AccountName,
		p.BSB,
		p.AccountNumber,
		p.Terms,
	)
	if err != nil {
		return fmt.Errorf("update business_profile: %w", err)
	}

	return nil
}
