package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/paypulse/backend/internal/domain"
	"github.com/paypulse/backend/internal/session"
)

// ErrUnknownCaseStudy is returned for a slug outside the catalog.
var ErrUnknownCaseStudy = errors.New("service: unknown case study")

// PulseService composes store aggregates, boundary geometry, and session
// state into renderable views
type PulseService struct {
	repo     PulseRepository
	boundary *domain.FeatureCollection
	sessions session.Store

	mu      sync.Mutex
	catalog *domain.PeriodCatalog
}

// NewPulseService creates a new pulse service
func NewPulseService(
	repo PulseRepository,
	boundary *domain.FeatureCollection,
	sessions session.Store,
) *PulseService {
	return &PulseService{
		repo:     repo,
		boundary: boundary,
		sessions: sessions,
	}
}

// Health checks store connectivity
func (s *PulseService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

// PeriodCatalog returns the reporting calendar. The store is asked once;
// the result is cached for the life of the process. An empty store falls
// back to 2021 with all four quarters so the views stay renderable.
func (s *PulseService) PeriodCatalog(ctx context.Context) (domain.PeriodCatalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog != nil {
		return *s.catalog, nil
	}
	periods, err := s.repo.Periods(ctx)
	if err != nil {
		return domain.PeriodCatalog{}, err
	}
	catalog := buildPeriodCatalog(periods)
	s.catalog = &catalog
	return catalog, nil
}

func buildPeriodCatalog(periods []domain.Period) domain.PeriodCatalog {
	if len(periods) == 0 {
		return domain.PeriodCatalog{
			Years:    []int{2021},
			Quarters: map[int][]int{2021: {1, 2, 3, 4}},
		}
	}
	quarters := make(map[int][]int)
	var years []int
	for _, p := range periods {
		if _, seen := quarters[p.Year]; !seen {
			years = append(years, p.Year)
		}
		quarters[p.Year] = append(quarters[p.Year], p.Quarter)
	}
	sort.Ints(years)
	for _, qs := range quarters {
		sort.Ints(qs)
	}
	return domain.PeriodCatalog{Years: years, Quarters: quarters}
}

// resolvePeriod fills a missing year with the latest one and a missing
// quarter with the latest quarter of the chosen year.
func (s *PulseService) resolvePeriod(ctx context.Context, year, quarter int) (domain.Period, error) {
	catalog, err := s.PeriodCatalog(ctx)
	if err != nil {
		return domain.Period{}, err
	}
	if year == 0 {
		year = catalog.Latest().Year
	}
	if quarter == 0 {
		qs := catalog.QuartersFor(year)
		quarter = qs[len(qs)-1]
	}
	return domain.Period{Year: year, Quarter: quarter}, nil
}
