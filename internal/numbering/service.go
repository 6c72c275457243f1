package numbering

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=numbering
type Store interface {
	// Get decodes the value under key into dst and reports whether it existed.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

type Service struct {
	store Store
	now   func() time.Time

	// mu serialises read-modify-write cycles within this process only.
	mu sync.Mutex
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Init creates the current year's counters if they do not exist yet.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.load(ctx, s.now().Year())

	return err
}

// Counters returns the current year's record, creating it when missing.
func (s *Service) Counters(ctx context.Context) (Counters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx, s.now().Year())
}

func (s *Service) NextGeneralNumber(ctx context.Context) (string, error) {
	return s.Next(ctx, TypeGeneral)
}

func (s *Service) NextFactuurNumber(ctx context.Context) (string, error) {
	return s.Next(ctx, TypeFactuur)
}

func (s *Service) NextOfferteNumber(ctx context.Context) (string, error) {
	return s.Next(ctx, TypeOfferte)
}

func (s *Service) NextWerkorderNumber(ctx context.Context) (string, error) {
	return s.Next(ctx, TypeWerkorder)
}

// Next increments the counter for dt and the shared general counter, persists
// both and returns the formatted number.
func (s *Service) Next(ctx context.Context, dt DocumentType) (string, error) {
	if _, ok := prefixes[dt]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownType, dt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	year := s.now().Year()

	c, err := s.load(ctx, year)
	if err != nil {
		return "", err
	}

	if dt != TypeGeneral {
		*c.field(dt)++
	}

	c.General++

	if err := s.store.Set(ctx, counterKey(year), c); err != nil {
		return "", fmt.Errorf("saving counters: %w", err)
	}

	n := *c.field(dt)
	number := Format(dt, year, n)

	slog.Debug("issued document number", "type", dt, "number", number)

	return number, nil
}

func (s *Service) load(ctx context.Context, year int) (Counters, error) {
	key := counterKey(year)

	var c Counters

	found, err := s.store.Get(ctx, key, &c)
	if err != nil {
		return Counters{}, fmt.Errorf("loading counters: %w", err)
	}

	if found {
		return c, nil
	}

	c = Counters{Year: year}
	if err := s.store.Set(ctx, key, c); err != nil {
		return Counters{}, fmt.Errorf("initialising counters: %w", err)
	}

	return c, nil
}
