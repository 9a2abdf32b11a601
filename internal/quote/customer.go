package quote

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Customer is the person the quotation is addressed to.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Normalize trims every field.
func (c Customer) Normalize() Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Address: strings.TrimSpace(c.Address),
		Phone:   strings.TrimSpace(c.Phone),
		Email:   strings.TrimSpace(c.Email),
	}
}

// Validate checks the required fields on the trimmed record. Email is optional.
func (c Customer) Validate() error {
	n := c.Normalize()
	return validation.ValidateStruct(&n,
		validation.Field(&n.Name, validation.Required.Error("name is required"), validation.Length(1, 200)),
		validation.Field(&n.Address, validation.Required.Error("address is required"), validation.Length(1, 500)),
		validation.Field(&n.Phone, validation.Required.Error("phone is required"), validation.Length(1, 50)),
		validation.Field(&n.Email, is.EmailFormat.Error("email is not a valid address")),
	)
}

// Complete reports whether the record passes Validate.
func (c Customer) Complete() bool {
	return c.Validate() == nil
}
