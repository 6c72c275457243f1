package csvimport

import (
	"fmt"
	"regexp"
	"strings"
)

// Mapping binds a CSV header to a field of the imported record.
type Mapping struct {
	CSVColumn   string
	TargetField string
	Required    bool
	// Transform converts the trimmed cell value. A nil Transform stores the string as-is.
	Transform func(raw string) (any, error)
}

// Record is a single imported row keyed by target field.
type Record map[string]any

// Result summarises a parse run. ValidRows+InvalidRows always equals TotalRows.
type Result struct {
	Success     bool     `json:"success"`
	Data        []Record `json:"data"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	TotalRows   int      `json:"total_rows"`
	ValidRows   int      `json:"valid_rows"`
	InvalidRows int      `json:"invalid_rows"`
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// ParseCSV turns comma-separated text into records using the given mappings.
// The first non-empty line is the header. Row-level problems never abort the
// run; they are collected in Errors with 1-based line numbers (header = row 1).
// A required column missing from the header aborts before any row is read.
func ParseCSV(content string, mappings []Mapping) *Result {
	result := &Result{
		Data:     []Record{},
		Errors:   []string{},
		Warnings: []string{},
	}

	lines := nonEmptyLines(content)
	if len(lines) == 0 {
		result.Errors = append(result.Errors, "CSV file is empty")
		return result
	}

	cols := indexColumns(splitLine(lines[0]), mappings)

	for _, m := range mappings {
		if _, ok := cols[m.TargetField]; ok {
			continue
		}

		if m.Required {
			result.Errors = append(result.Errors, fmt.Sprintf("Required column %q not found in CSV", m.CSVColumn))
			return result
		}

		result.Warnings = append(result.Warnings, fmt.Sprintf("Optional column %q not found in CSV", m.CSVColumn))
	}

	for i, line := range lines[1:] {
		rowNum := i + 2 // 1-based, header is row 1

		record, rowErrs := parseRow(splitLine(line), mappings, cols, rowNum)

		result.TotalRows++

		if len(rowErrs) > 0 {
			result.InvalidRows++
			result.Errors = append(result.Errors, rowErrs...)

			continue
		}

		result.ValidRows++
		result.Data = append(result.Data, record)
	}

	result.Success = result.ValidRows > 0

	return result
}

// parseRow applies the mappings to one split line.
func parseRow(values []string, mappings []Mapping, cols map[string]int, rowNum int) (Record, []string) {
	record := make(Record, len(mappings))

	var errs []string

	for _, m := range mappings {
		idx, ok := cols[m.TargetField]
		if !ok {
			continue
		}

		raw := cellValue(values, idx)

		if raw == "" {
			if m.Required {
				errs = append(errs, fmt.Sprintf("Row %d: Required field %q is empty", rowNum, m.TargetField))
			}

			continue
		}

		if m.Transform == nil {
			record[m.TargetField] = raw
			continue
		}

		v, err := m.Transform(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid value for %q: %v", rowNum, m.TargetField, err))
			continue
		}

		record[m.TargetField] = v
	}

	return record, errs
}

// indexColumns maps each mapping's target field to the position of its header cell.
func indexColumns(header []string, mappings []Mapping) map[string]int {
	cols := make(map[string]int, len(mappings))

	for _, m := range mappings {
		want := strings.ToLower(strings.TrimSpace(m.CSVColumn))

		for i, cell := range header {
			if strings.ToLower(strings.TrimSpace(cell)) == want {
				cols[m.TargetField] = i
				break
			}
		}
	}

	return cols
}

func nonEmptyLines(content string) []string {
	var lines []string

	for _, line := range lineBreak.Split(content, -1) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lines = append(lines, line)
	}

	return lines
}

// splitLine splits a single CSV line on commas. A double quote toggles quoting,
// a doubled quote inside quotes is a literal quote and commas inside quotes are
// kept as data.
func splitLine(line string) []string {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case c == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			field.WriteByte('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}

	return append(fields, field.String())
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
