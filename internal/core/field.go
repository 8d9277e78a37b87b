package core

import (
	"errors"
	"fmt"
)

// Field names an editable attribute of an Expense.
type Field int

const (
	FieldDate Field = iota + 1
	FieldAmount
	FieldCategory
	FieldMerchant
	FieldCountry
)

var fieldNames = map[Field]string{
	FieldDate:     "date",
	FieldAmount:   "amount",
	FieldCategory: "category",
	FieldMerchant: "merchant",
	FieldCountry:  "country",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// ParseField resolves a field by name.
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, &ValidationError{Field: "field", Value: name, Err: errors.New("unknown field, expected one of date, amount, category, merchant, country")}
}
