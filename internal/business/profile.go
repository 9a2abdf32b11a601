// Package business stores the trading details printed on every quotation.
package business

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Profile is the business header, bank details and terms of a quotation.
type Profile struct {
	TradingName   string
	LegalName     string
	Phone         string
	Email         string
	Website       string
	Facebook      string
	ABN           string
	AccountName   string
	BSB           string
	AccountNumber string
	Terms         string
}

// Term is one label/value line of the terms and conditions block.
type Term struct {
	Label string
	Value string
}

const defaultTerms = `Roller Blind Fabric: Blockout: Group 03- TBC
Roller Blind Fabric -: SCREEN: Group 03- TBC
Roller Blind Mounted: Face Fit / Recess Fit
Surcharge on Group 2 & 3: Approx 5-10% increase for Group 02 and 15-25% increase for Group 03
Roller Blinds Blockout fabric: Blockout fabric
Fabric colours: May differ slightly from batch to batch from sample shown
Confirmation: 50% deposit
ETA: Blinds 2-3 wks
Quote: Price is for the above quantities and valid for 14 days only. Price includes supply and installation`

// Default is the profile seeded on first boot.
func Default() Profile {
	return Profile{
		TradingName:   "SP Interior Solutions",
		LegalName:     "SP Interior Solutions Pty Ltd",
		Phone:         "0449 736 429",
		Email:         "info@spisolutions.com.au",
		Website:       "www.spisolutions.com.au",
		Facebook:      "fb.com/spinteriorsolutions",
		ABN:           "86 658 409 548",
		AccountName:   "SP INTERIOR SOLUTIONS PTY LTD",
		BSB:           "xxx-xxx",
		AccountNumber: "xxxxxx / xxxxxx",
		Terms:         defaultTerms,
	}
}

// Normalize trims every field and normalises line endings in Terms.
func (p Profile) Normalize() Profile {
	p.TradingName = strings.TrimSpace(p.TradingName)
	p.LegalName = strings.TrimSpace(p.LegalName)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = strings.TrimSpace(p.Email)
	p.Website = strings.TrimSpace(p.Website)
	p.Facebook = strings.TrimSpace(p.Facebook)
	p.ABN = strings.TrimSpace(p.ABN)
	p.AccountName = strings.TrimSpace(p.AccountName)
	p.BSB = strings.TrimSpace(p.BSB)
	p.AccountNumber = strings.TrimSpace(p.AccountNumber)
	p.Terms = strings.TrimSpace(strings.ReplaceAll(p.Terms, "\r\n", "\n"))
	return p
}

// Validate checks the trimmed profile.
func (p Profile) Validate() error {
	n := p.Normalize()
	return validation.ValidateStruct(&n,
		validation.Field(&n.TradingName, validation.Required.Error("trading name is required"), validation.Length(1, 200)),
		validation.Field(&n.LegalName, validation.Required.Error("legal name is required"), validation.Length(1, 200)),
		validation.Field(&n.Phone, validation.Length(0, 50)),
		validation.Field(&n.Email, is.EmailFormat.Error("email is not a valid address")),
		validation.Field(&n.ABN, validation.Length(0, 20)),
		validation.Field(&n.Terms, validation.Length(0, 5000)),
	)
}

// TermLines splits Terms into label/value pairs. A line without a ": " separator is a value
// with no label.
func (p Profile) TermLines() []Term {
	var out []Term
	for _, line := range strings.Split(p.Terms, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		label, value, ok := strings.Cut(line, ": ")
		if !ok {
			out = append(out, Term{Value: line})
			continue
		}
		out = append(out, Term{Label: strings.TrimSpace(label), Value: strings.TrimSpace(value)})
	}
	return out
}
