// Package checkout validates customer order forms against the shop's
// format rules and the live stock levels.
package checkout

import (
	"fmt"

	"tndshop/internal/cart"
	"tndshop/internal/model"
)

// Form is the raw customer-supplied checkout form. Email and Notes are
// optional; everything else is required.
type Form struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Governorate string `json:"governorate"`
	PostalCode  string `json:"postalCode"`
	Notes       string `json:"notes"`
}

// Validator applies the checkout rules. The digit counts are configuration,
// not invariants.
type Validator struct {
	MinPhoneDigits   int
	PostalCodeLength int
}

// NewValidator creates a checkout validator from the configured constants.
func NewValidator(minPhoneDigits, postalCodeLength int) Validator {
	return Validator{
		MinPhoneDigits:   minPhoneDigits,
		PostalCodeLength: postalCodeLength,
	}
}

// Validate checks the form and the materialized cart, fail-fast: rules are
// applied in a fixed order and the first failure is returned as a single
// human-readable validation error. On success it returns the customer
// record to snapshot into the order; nothing is mutated either way.
func (v Validator) Validate(form Form, lines []cart.Line) (model.Customer, error) {
	var none model.Customer

	if form.FullName == "" || form.Phone == "" || form.Address == "" ||
		form.City == "" || form.PostalCode == "" || form.Governorate == "" {
		return none, model.NewValidationError("Please fill in all required fields.")
	}

	if countDigits(form.Phone) < v.MinPhoneDigits {
		return none, model.NewValidationError(
			fmt.Sprintf("Please provide a valid phone number (at least %d digits).", v.MinPhoneDigits))
	}

	if !isDigitString(form.PostalCode, v.PostalCodeLength) {
		return none, model.NewValidationError(
			fmt.Sprintf("Postal code should be %d digits.", v.PostalCodeLength))
	}

	if len(lines) == 0 {
		return none, model.NewValidationError("Your cart is empty.")
	}

	for _, line := range lines {
		if line.Product.Stock < line.Quantity {
			return none, model.NewValidationError(
				fmt.Sprintf("Not enough stock for %s.", line.Product.Name))
		}
	}

	return model.Customer{
		FullName:    form.FullName,
		Phone:       form.Phone,
		Email:       form.Email,
		Address:     form.Address,
		City:        form.City,
		Governorate: form.Governorate,
		PostalCode:  form.PostalCode,
		Notes:       form.Notes,
	}, nil
}

// countDigits counts the ASCII digits in s, ignoring every other character.
func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

// isDigitString reports whether s is exactly length ASCII digits.
func isDigitString(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Governorates returns the Tunisian governorates offered at checkout.
func Governorates() []string {
	return []string{
		"Tunis", "Ariana", "Ben Arous", "Manouba", "Bizerte", "Nabeul",
		"Zaghouan", "Beja", "Jendouba", "Kef", "Siliana", "Sousse",
		"Monastir", "Mahdia", "Sfax", "Kairouan", "Kasserine", "Sidi Bouzid",
		"Gabes", "Medenine", "Tataouine", "Gafsa", "Tozeur", "Kebili",
	}
}
