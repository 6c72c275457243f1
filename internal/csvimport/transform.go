package csvimport

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ToNumber parses a decimal number, accepting a comma as decimal separator.
// When both separators appear ("1.234,56") the dot is read as a thousands separator.
func ToNumber(raw string) (any, error) {
	d, err := parseDecimal(raw)
	if err != nil {
		return nil, err
	}

	return d.InexactFloat64(), nil
}

// ToInteger parses a whole number, truncating any fraction.
func ToInteger(raw string) (any, error) {
	d, err := parseDecimal(raw)
	if err != nil {
		return nil, err
	}

	whole := d.Truncate(0)
	if whole.GreaterThan(maxInt) || whole.LessThan(minInt) {
		return nil, fmt.Errorf("%q is out of range", raw)
	}

	return int(whole.IntPart()), nil
}

var (
	maxInt = decimal.NewFromInt(math.MaxInt)
	minInt = decimal.NewFromInt(math.MinInt)
)

// ToBoolean reports whether raw is one of true, yes, 1 or ja. It never fails.
func ToBoolean(raw string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1", "ja":
		return true, nil
	}

	return false, nil
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
	"2006/01/02",
	"02.01.2006",
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ToDate parses common date notations and normalises them to YYYY-MM-DD.
// Day-first forms follow Dutch convention.
func ToDate(raw string) (any, error) {
	s := strings.TrimSpace(raw)

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Format(time.DateOnly), nil
		}
	}

	return nil, fmt.Errorf("%q is not a valid date", raw)
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")

	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}

		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q is not a number", raw)
	}

	return d, nil
}

// Transforms lists the named transforms accepted in mapping files.
var Transforms = map[string]func(string) (any, error){
	"number":  ToNumber,
	"integer": ToInteger,
	"boolean": ToBoolean,
	"date":    ToDate,
}
