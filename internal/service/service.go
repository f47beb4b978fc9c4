package service

import (
	"github.com/paypulse/backend/internal/domain"
)

// PulseRepository is re-exported from domain for convenience
type PulseRepository = domain.PulseRepository
