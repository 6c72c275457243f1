package numbering

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownType = errors.New("unknown document type")

type DocumentType string

const (
	TypeGeneral   DocumentType = "general"
	TypeFactuur   DocumentType = "factuur"
	TypeOfferte   DocumentType = "offerte"
	TypeWerkorder DocumentType = "werkorder"
)

// Types lists every document type in display order.
var Types = []DocumentType{TypeGeneral, TypeFactuur, TypeOfferte, TypeWerkorder}

var prefixes = map[DocumentType]string{
	TypeGeneral:   "",
	TypeFactuur:   "F-",
	TypeOfferte:   "O-",
	TypeWerkorder: "W-",
}

func ParseDocumentType(s string) (DocumentType, error) {
	dt := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := prefixes[dt]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownType, s)
	}

	return dt, nil
}

// Counters is the persisted record for one year. General advances with
// every issued number, whatever its type.
type Counters struct {
	Year      int `json:"year"`
	General   int `json:"general"`
	Factuur   int `json:"factuur"`
	Offerte   int `json:"offerte"`
	Werkorder int `json:"werkorder"`
}

func (c *Counters) field(dt DocumentType) *int {
	switch dt {
	case TypeFactuur:
		return &c.Factuur
	case TypeOfferte:
		return &c.Offerte
	case TypeWerkorder:
		return &c.Werkorder
	default:
		return &c.General
	}
}

// Format renders a counter value as e.g. F-2026-0007. Values past 9999 widen.
func Format(dt DocumentType, year, n int) string {
	return fmt.Sprintf("%s%d-%04d", prefixes[dt], year, n)
}

func counterKey(year int) string {
	return fmt.Sprintf("document-counters:%d", year)
}
