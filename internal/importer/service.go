package importer

import (
	"fmt"
	"io"
	"slices"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/csvimport"
	enc "github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/encoding"
)

type Service struct {
	mappings map[Kind][]csvimport.Mapping
}

func NewService() *Service {
	return &Service{
		mappings: map[Kind][]csvimport.Mapping{
			KindInventory: inventoryMappings,
			KindCustomers: customerMappings,
		},
	}
}

// Register adds or replaces the mapping table for kind.
func (s *Service) Register(kind Kind, mappings []csvimport.Mapping) {
	s.mappings[kind] = mappings
}

// LoadMappings registers every table found in a YAML mapping file.
func (s *Service) LoadMappings(r io.Reader) error {
	tables, err := csvimport.LoadMappings(r)
	if err != nil {
		return err
	}

	for name, mappings := range tables {
		s.Register(Kind(name), mappings)
	}

	return nil
}

// Kinds lists the registered import kinds in sorted order.
func (s *Service) Kinds() []Kind {
	kinds := make([]Kind, 0, len(s.mappings))
	for k := range s.mappings {
		kinds = append(kinds, k)
	}

	slices.Sort(kinds)

	return kinds
}

func (s *Service) Import(kind Kind, r io.Reader) (*csvimport.Result, error) {
	mappings, ok := s.mappings[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return csvimport.ParseCSV(string(content), mappings), nil
}
