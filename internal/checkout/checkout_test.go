package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tndshop/internal/cart"
	"tndshop/internal/model"
)

func validForm() Form {
	return Form{
		FullName:    "Amine Ben Salah",
		Phone:       "22 345 678",
		Email:       "amine@example.tn",
		Address:     "12 Rue de Marseille",
		City:        "Tunis",
		Governorate: "Tunis",
		PostalCode:  "1001",
		Notes:       "Call before delivery",
	}
}

func stockedLines() []cart.Line {
	return []cart.Line{
		{
			Product: model.Product{
				ID:    "p1",
				Name:  "Ceramic Mug",
				Price: decimal.RequireFromString("19.5"),
				Stock: 10,
			},
			Quantity: 2,
		},
	}
}

func TestValidate_Success(t *testing.T) {
	v := NewValidator(8, 4)

	customer, err := v.Validate(validForm(), stockedLines())
	require.NoError(t, err)
	assert.Equal(t, "Amine Ben Salah", customer.FullName)
	assert.Equal(t, "22 345 678", customer.Phone)
	assert.Equal(t, "1001", customer.PostalCode)
	assert.Equal(t, "Call before delivery", customer.Notes)
}

func TestValidate_RequiredFields(t *testing.T) {
	v := NewValidator(8, 4)

	tests := []struct {
		name   string
		mutate func(*Form)
	}{
		{"Missing full name", func(f *Form) { f.FullName = "" }},
		{"Missing phone", func(f *Form) { f.Phone = "" }},
		{"Missing address", func(f *Form) { f.Address = "" }},
		{"Missing city", func(f *Form) { f.City = "" }},
		{"Missing postal code", func(f *Form) { f.PostalCode = "" }},
		{"Missing governorate", func(f *Form) { f.Governorate = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := v.Validate(form, stockedLines())
			require.Error(t, err)
			assert.EqualError(t, err, "Please fill in all required fields.")
		})
	}
}

func TestValidate_OptionalFields(t *testing.T) {
	v := NewValidator(8, 4)

	form := validForm()
	form.Email = ""
	form.Notes = ""

	_, err := v.Validate(form, stockedLines())
	assert.NoError(t, err)
}

func TestValidate_Phone(t *testing.T) {
	v := NewValidator(8, 4)

	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"Too few digits", "12345", true},
		{"Exactly eight digits", "12345678", false},
		{"Digits with separators", "12-345-678", false},
		{"Seven digits among noise", "1a2b3c4d5e6f7", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.Phone = tt.phone

			_, err := v.Validate(form, stockedLines())
			if tt.wantErr {
				assert.EqualError(t, err, "Please provide a valid phone number (at least 8 digits).")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_PostalCode(t *testing.T) {
	v := NewValidator(8, 4)

	tests := []struct {
		name       string
		postalCode string
		wantErr    bool
	}{
		{"Three digits", "123", true},
		{"Four digits", "1234", false},
		{"Five digits", "12345", true},
		{"Letters", "12ab", true},
		{"Digits with space", "12 4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.PostalCode = tt.postalCode

			_, err := v.Validate(form, stockedLines())
			if tt.wantErr {
				assert.EqualError(t, err, "Postal code should be 4 digits.")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_ConfigurableLengths(t *testing.T) {
	v := NewValidator(10, 5)

	form := validForm()
	form.Phone = "123456789"
	_, err := v.Validate(form, stockedLines())
	assert.EqualError(t, err, "Please provide a valid phone number (at least 10 digits).")

	form = validForm()
	form.Phone = "1234567890"
	form.PostalCode = "1234"
	_, err = v.Validate(form, stockedLines())
	assert.EqualError(t, err, "Postal code should be 5 digits.")
}

func TestValidate_EmptyCart(t *testing.T) {
	v := NewValidator(8, 4)

	_, err := v.Validate(validForm(), nil)
	assert.EqualError(t, err, "Your cart is empty.")
}

func TestValidate_InsufficientStock(t *testing.T) {
	v := NewValidator(8, 4)

	lines := []cart.Line{
		{
			Product:  model.Product{ID: "p1", Name: "Ceramic Mug", Stock: 5},
			Quantity: 2,
		},
		{
			Product:  model.Product{ID: "p2", Name: "Notebook A5", Stock: 1},
			Quantity: 3,
		},
	}

	_, err := v.Validate(validForm(), lines)
	require.Error(t, err)
	// The first shortfall wins and names the product.
	assert.EqualError(t, err, "Not enough stock for Notebook A5.")

	var de *model.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, model.ErrCodeValidation, de.Code)
}

func TestValidate_RuleOrder(t *testing.T) {
	v := NewValidator(8, 4)

	// A form failing several rules reports the earliest one.
	form := validForm()
	form.Phone = "123"
	form.PostalCode = "99"

	_, err := v.Validate(form, nil)
	assert.EqualError(t, err, "Please provide a valid phone number (at least 8 digits).")
}

func TestGovernorates(t *testing.T) {
	govs := Governorates()
	assert.Len(t, govs, 24)
	assert.Contains(t, govs, "Tunis")
	assert.Contains(t, govs, "Kebili")
}
