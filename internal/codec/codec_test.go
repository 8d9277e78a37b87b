package codec

import (
	"errors"
	"testing"

	"expenses/internal/core"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"50", 50, true},
		{"12.34", 12.34, true},
		{" 0.10 ", 0.1, true},
		{"-20", -20, true},
		{"0", 0, true},
		{"", 0, false},
		{"12,34", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseAmount(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, core.ErrValidation) {
			t.Errorf("ParseAmount(%q) expected validation error, got %v", tc.in, err)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		50:     "50",
		12.34:  "12.34",
		0.1:    "0.1",
		-20.5:  "-20.5",
		0:      "0",
		1234.5: "1234.5",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want core.Category
	}{
		{"1", core.ChildCare},
		{"2", core.FuelPetrol},
		{"11", core.Utilities},
		{"Groceries", core.Groceries},
		{"groceries", core.Groceries},
		{"Fuel/ Petrol", core.FuelPetrol},
		{"Fuel/Petrol", core.FuelPetrol},
		{"health care / medical", core.HealthCare},
		{"Utilities (Electricity/Water/Gas)", core.Utilities},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "0", "12", "Food", "Fuel"} {
		if _, err := ParseCategory(bad); !errors.Is(err, core.ErrInvalidCategory) {
			t.Errorf("ParseCategory(%q) expected ErrInvalidCategory, got %v", bad, err)
		}
	}
}

func TestOptionalFieldDefaults(t *testing.T) {
	if got := ParseMerchant("  "); got != core.NoneGiven {
		t.Errorf("blank merchant = %q", got)
	}
	if got := ParseMerchant(" Tesco "); got != "Tesco" {
		t.Errorf("merchant = %q", got)
	}
	got, err := ParseCountry("")
	if err != nil || got != core.NoneGiven {
		t.Errorf("blank country = %q, %v", got, err)
	}
	got, err = ParseCountry("India")
	if err != nil || got != "India" {
		t.Errorf("country = %q, %v", got, err)
	}
	if _, err := ParseCountry("New Zealand"); !errors.Is(err, core.ErrInvalidCountry) {
		t.Errorf("country with space should be rejected, got %v", err)
	}
}

func TestRowRoundTrip(t *testing.T) {
	e := core.Expense{
		ID:       "id-1",
		Owner:    "alice",
		Date:     core.NewDate(2024, 1, 10),
		Amount:   20.25,
		Category: core.FuelPetrol,
		Merchant: "Shell, Main St",
		Country:  core.NoneGiven,
	}
	row := EncodeRow(e)
	want := []string{"alice", "2024-01-10", "20.25", "Fuel/ Petrol", "Shell, Main St", "none_given", "id-1"}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("column %d = %q, want %q", i, row[i], want[i])
		}
	}
	got, err := DecodeRow(row)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if got != e {
		t.Fatalf("round trip mismatch: %+v != %+v", got, e)
	}
}

func TestDecodeLegacyRow(t *testing.T) {
	got, err := DecodeRow([]string{"bob", "2024-05-01", "30.0", "Housing", "", ""})
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if got.ID != "" {
		t.Errorf("legacy row should have empty id, got %q", got.ID)
	}
	if got.Amount != 30 || got.Merchant != core.NoneGiven || got.Country != core.NoneGiven {
		t.Errorf("unexpected legacy decode: %+v", got)
	}

	if _, err := DecodeRow([]string{"bob", "2024-05-01"}); err == nil {
		t.Error("short row should fail")
	}
	if _, err := DecodeRow([]string{"bob", "yesterday", "1", "Housing", "", "", "x"}); !errors.Is(err, core.ErrValidation) {
		t.Errorf("bad date should be a validation error, got %v", err)
	}
}

func TestIsHeader(t *testing.T) {
	if !IsHeader(Header) {
		t.Error("Header should be a header")
	}
	if !IsHeader(Header[:LegacyColumns]) {
		t.Error("legacy header should be a header")
	}
	if IsHeader([]string{"alice", "2024-01-01", "1", "Housing", "x", "y", "z"}) {
		t.Error("data row is not a header")
	}
}

func TestApplyField(t *testing.T) {
	base := core.Expense{
		ID: "x", Owner: "alice", Date: core.NewDate(2024, 1, 1), Amount: 1,
		Category: core.Housing, Merchant: "m", Country: "Italy",
	}

	got, err := ApplyField(base, core.FieldDate, "2024-02-03")
	if err != nil || !got.Date.Equal(core.NewDate(2024, 2, 3)) {
		t.Fatalf("date edit: %+v, %v", got, err)
	}
	got, err = ApplyField(base, core.FieldCategory, "3")
	if err != nil || got.Category != core.Groceries {
		t.Fatalf("category edit: %+v, %v", got, err)
	}
	got, err = ApplyField(base, core.FieldMerchant, "")
	if err != nil || got.Merchant != core.NoneGiven {
		t.Fatalf("merchant edit: %+v, %v", got, err)
	}
	got, err = ApplyField(base, core.FieldAmount, "-5.5")
	if err != nil || got.Amount != -5.5 {
		t.Fatalf("amount edit: %+v, %v", got, err)
	}
	if got.ID != base.ID || got.Owner != base.Owner {
		t.Fatal("identity must not change on edit")
	}

	if _, err := ApplyField(base, core.FieldAmount, "ten"); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ApplyField(base, core.Field(99), "x"); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected validation error for unknown field, got %v", err)
	}
}

func TestNewExpense(t *testing.T) {
	e, err := NewExpense("alice", "2024-01-05", "50", "Groceries", "", "")
	if err != nil {
		t.Fatalf("NewExpense: %v", err)
	}
	if e.Merchant != core.NoneGiven || e.Country != core.NoneGiven || e.ID != "" {
		t.Fatalf("unexpected expense: %+v", e)
	}
	if _, err := NewExpense("", "2024-01-05", "50", "Groceries", "", ""); !errors.Is(err, core.ErrEmptyOwner) {
		t.Fatalf("expected empty owner error, got %v", err)
	}
}

func TestNormalizeMatchesDecode(t *testing.T) {
	e := core.Expense{
		Owner: " alice ", Date: core.NewDate(2024, 1, 2), Amount: 4,
		Category: core.Groceries, Merchant: "  Shop ", Country: "",
	}
	n := Normalize(e)
	if n.Owner != "alice" || n.Merchant != "Shop" || n.Country != core.NoneGiven {
		t.Fatalf("unexpected normalized expense: %+v", n)
	}
	back, err := DecodeRow(EncodeRow(n))
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if back.Owner != n.Owner || back.Merchant != n.Merchant || back.Country != n.Country {
		t.Errorf("decode changed normalized text: %+v vs %+v", back, n)
	}
}
