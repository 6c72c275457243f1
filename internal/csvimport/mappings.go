package csvimport

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type mappingFile struct {
	Mappings map[string][]mappingEntry `yaml:"mappings"`
}

type mappingEntry struct {
	Column    string `yaml:"column"`
	Field     string `yaml:"field"`
	Required  bool   `yaml:"required"`
	Transform string `yaml:"transform"`
}

// LoadMappings reads named mapping tables from YAML:
//
//	mappings:
//	  suppliers:
//	    - column: Naam
//	      field: name
//	      required: true
//	    - column: Betaaltermijn
//	      field: paymentTermDays
//	      transform: integer
func LoadMappings(r io.Reader) (map[string][]Mapping, error) {
	var f mappingFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding mappings: %w", err)
	}

	out := make(map[string][]Mapping, len(f.Mappings))

	for name, entries := range f.Mappings {
		seen := make(map[string]bool, len(entries))
		mappings := make([]Mapping, 0, len(entries))

		for i, e := range entries {
			if e.Column == "" {
				return nil, fmt.Errorf("mapping %s[%d]: column is required", name, i)
			}

			field := e.Field
			if field == "" {
				field = e.Column
			}

			if seen[field] {
				return nil, fmt.Errorf("mapping %s: duplicate target field %q", name, field)
			}

			seen[field] = true

			m := Mapping{CSVColumn: e.Column, TargetField: field, Required: e.Required}

			if e.Transform != "" {
				fn, ok := Transforms[e.Transform]
				if !ok {
					return nil, fmt.Errorf("mapping %s[%d]: unknown transform %q", name, i, e.Transform)
				}

				m.Transform = fn
			}

			mappings = append(mappings, m)
		}

		out[name] = mappings
	}

	return out, nil
}
