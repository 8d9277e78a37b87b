// Package codec converts expenses to and from rows of the persisted ledger
// table and parses user-supplied field values.
//
// The first six columns are the historical table layout; Txn_ID was added
// to carry a stable identity. Rows written before that column existed
// decode with an empty ID.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"expenses/internal/core"
)

// Column positions in a ledger row.
const (
	ColOwner = iota
	ColDate
	ColAmount
	ColCategory
	ColMerchant
	ColCountry
	ColID
)

// Header is the first row of the ledger table.
var Header = []string{"Username", "Txn_Date", "Txn_Amount", "Txn_Category", "MerchantName", "Txn_Country", "Txn_ID"}

// LegacyColumns is the width of a row written without Txn_ID.
const LegacyColumns = ColID

// IsHeader reports whether row is a header row, with or without Txn_ID.
func IsHeader(row []string) bool {
	if len(row) != len(Header) && len(row) != LegacyColumns {
		return false
	}
	for i, v := range row {
		if strings.TrimSpace(v) != Header[i] {
			return false
		}
	}
	return true
}

// EncodeRow renders e in column order.
func EncodeRow(e core.Expense) []string {
	return []string{
		e.Owner,
		e.Date.String(),
		FormatAmount(e.Amount),
		string(e.Category),
		e.Merchant,
		e.Country,
		string(e.ID),
	}
}

// DecodeRow parses a row back into an expense. Optional fields left empty
// in the table decode as none_given.
func DecodeRow(row []string) (core.Expense, error) {
	if len(row) != len(Header) && len(row) != LegacyColumns {
		return core.Expense{}, fmt.Errorf("row has %d columns, want %d", len(row), len(Header))
	}
	date, err := ParseDate(row[ColDate])
	if err != nil {
		return core.Expense{}, err
	}
	amount, err := ParseAmount(row[ColAmount])
	if err != nil {
		return core.Expense{}, err
	}
	category, err := ParseCategory(row[ColCategory])
	if err != nil {
		return core.Expense{}, err
	}
	country, err := ParseCountry(row[ColCountry])
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{
		Owner:    row[ColOwner],
		Date:     date,
		Amount:   amount,
		Category: category,
		Merchant: ParseMerchant(row[ColMerchant]),
		Country:  country,
	}
	if len(row) > ColID {
		e.ID = core.ID(strings.TrimSpace(row[ColID]))
	}
	return e, nil
}

func ParseDate(s string) (core.Date, error) {
	return core.ParseDate(s)
}

// ParseAmount parses a signed decimal amount. Any sign is accepted.
func ParseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, &core.ValidationError{Field: core.FieldAmount.String(), Value: s, Err: core.ErrInvalidAmount}
	}
	f := d.InexactFloat64()
	if err := core.ValidateAmount(f); err != nil {
		return 0, &core.ValidationError{Field: core.FieldAmount.String(), Value: s, Err: core.ErrInvalidAmount}
	}
	return f, nil
}

// FormatAmount renders the shortest decimal string that parses back to a.
func FormatAmount(a float64) string {
	return decimal.NewFromFloat(a).String()
}

// ParseCategory accepts a menu code ("1".."11") or a category name. Names
// match case-insensitively and ignore spacing around slashes, so
// "fuel/petrol" resolves to "Fuel/ Petrol".
func ParseCategory(s string) (core.Category, error) {
	v := strings.TrimSpace(s)
	if code, err := strconv.Atoi(v); err == nil {
		if c, ok := core.CategoryByCode(code); ok {
			return c, nil
		}
		return "", &core.ValidationError{Field: core.FieldCategory.String(), Value: s, Err: core.ErrInvalidCategory}
	}
	key := categoryKey(v)
	for _, c := range core.Categories() {
		if categoryKey(string(c)) == key {
			return c, nil
		}
	}
	return "", &core.ValidationError{Field: core.FieldCategory.String(), Value: s, Err: core.ErrInvalidCategory}
}

func categoryKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.ReplaceAll(s, "/", " / ")), " "))
}

// ParseMerchant returns the trimmed name, or none_given when blank.
func ParseMerchant(s string) string {
	v := strings.TrimSpace(s)
	if v == "" {
		return core.NoneGiven
	}
	return v
}

// ParseCountry returns the trimmed name, or none_given when blank. Names
// must be letters only.
func ParseCountry(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return core.NoneGiven, nil
	}
	if err := core.ValidateCountry(v); err != nil {
		return "", err
	}
	return v, nil
}

// Normalize trims the free-text fields of e and applies the none_given
// defaults, giving the form DecodeRow returns for the stored row.
func Normalize(e core.Expense) core.Expense {
	e.Owner = strings.TrimSpace(e.Owner)
	e.Merchant = ParseMerchant(e.Merchant)
	if c := strings.TrimSpace(e.Country); c == "" {
		e.Country = core.NoneGiven
	} else {
		e.Country = c
	}
	return e
}

// ApplyField returns a copy of e with one field replaced by the parsed
// value. Owner and ID cannot be edited.
func ApplyField(e core.Expense, field core.Field, value string) (core.Expense, error) {
	switch field {
	case core.FieldDate:
		d, err := ParseDate(value)
		if err != nil {
			return e, err
		}
		e.Date = d
	case core.FieldAmount:
		a, err := ParseAmount(value)
		if err != nil {
			return e, err
		}
		e.Amount = a
	case core.FieldCategory:
		c, err := ParseCategory(value)
		if err != nil {
			return e, err
		}
		e.Category = c
	case core.FieldMerchant:
		e.Merchant = ParseMerchant(value)
	case core.FieldCountry:
		c, err := ParseCountry(value)
		if err != nil {
			return e, err
		}
		e.Country = c
	default:
		return e, &core.ValidationError{Field: "field", Value: field.String(), Err: fmt.Errorf("field is not editable")}
	}
	return e, nil
}

// NewExpense builds a validated expense from raw field values, applying the
// none_given defaults for blank optional fields.
func NewExpense(owner, date, amount, category, merchant, country string) (core.Expense, error) {
	d, err := ParseDate(date)
	if err != nil {
		return core.Expense{}, err
	}
	a, err := ParseAmount(amount)
	if err != nil {
		return core.Expense{}, err
	}
	c, err := ParseCategory(category)
	if err != nil {
		return core.Expense{}, err
	}
	co, err := ParseCountry(country)
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{
		Owner:    strings.TrimSpace(owner),
		Date:     d,
		Amount:   a,
		Category: c,
		Merchant: ParseMerchant(merchant),
		Country:  co,
	}
	return e, e.Validate()
}
