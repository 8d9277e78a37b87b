package core

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode"
)

// NoneGiven marks an optional field the user left blank.
const NoneGiven = "none_given"

// DateLayout is the ISO calendar date format used everywhere in the ledger.
const DateLayout = "2006-01-02"

type (
	// ID identifies an expense for its whole lifetime.
	ID string

	Date struct {
		time.Time
	}

	Expense struct {
		ID       ID
		Owner    string
		Date     Date
		Amount   float64
		Category Category
		Merchant string
		Country  string
	}

	// DateRange is inclusive on both ends.
	DateRange struct {
		Start Date
		End   Date
	}

	// CategorySummary aggregates the amounts of one category.
	CategorySummary struct {
		Category       Category
		Count          int
		Sum            float64
		Mean           float64
		Max            float64
		PercentOfTotal float64
	}
)

var (
	ErrEmptyOwner      = errors.New("empty owner")
	ErrInvalidDate     = errors.New("invalid date, expected yyyy-mm-dd")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidCountry  = errors.New("country must contain letters only")
	ErrInvalidRange    = errors.New("start date after end date")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day, keeping t's wall clock date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses an ISO yyyy-mm-dd date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &ValidationError{Field: FieldDate.String(), Value: s, Err: ErrInvalidDate}
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return &ValidationError{Field: FieldDate.String(), Err: ErrInvalidDate}
	}
	return nil
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool  { return d.Time.After(o.Time) }
func (d Date) Equal(o Date) bool  { return d.Time.Equal(o.Time) }

// NewDateRange builds a range, rejecting start after end.
func NewDateRange(start, end Date) (DateRange, error) {
	r := DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// SingleDay is the range covering only d.
func SingleDay(d Date) DateRange {
	return DateRange{Start: d, End: d}
}

func (r DateRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return err
	}
	if err := r.End.Validate(); err != nil {
		return err
	}
	if r.Start.After(r.End) {
		return &ValidationError{Field: "range", Value: r.String(), Err: ErrInvalidRange}
	}
	return nil
}

// Contains reports whether d falls within the range, ends included.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}

// ValidateAmount rejects NaN and infinities. Any sign is accepted:
// refunds are recorded as negative amounts.
func ValidateAmount(a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return &ValidationError{Field: FieldAmount.String(), Err: ErrInvalidAmount}
	}
	return nil
}

// ValidateCountry accepts NoneGiven or a letters-only name.
func ValidateCountry(c string) error {
	if c == NoneGiven {
		return nil
	}
	if c == "" {
		return &ValidationError{Field: FieldCountry.String(), Value: c, Err: ErrInvalidCountry}
	}
	for _, r := range c {
		if !unicode.IsLetter(r) {
			return &ValidationError{Field: FieldCountry.String(), Value: c, Err: ErrInvalidCountry}
		}
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Owner) == "" {
		return &ValidationError{Field: "owner", Err: ErrEmptyOwner}
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}
	if !e.Category.IsValid() {
		return &ValidationError{Field: FieldCategory.String(), Value: string(e.Category), Err: ErrInvalidCategory}
	}
	if strings.TrimSpace(e.Merchant) == "" {
		return &ValidationError{Field: FieldMerchant.String(), Err: errors.New("merchant must be set or none_given")}
	}
	return ValidateCountry(e.Country)
}
