package rates

import (
	"context"
	"errors"
	"fmt"
	"go-currency-converter/domain"
)

// fallbackService decorates a Service with a mirror that is asked once when the primary fails
type fallbackService struct {
	primary Service
	mirror  Service
}

// NewFallbackService returns a Service that reads from primary and, when it fails with ErrFetch, from mirror.
func NewFallbackService(primary Service, mirror Service) Service {
	return &fallbackService{
		primary: primary,
		mirror:  mirror,
	}
}

func (s *fallbackService) Latest(ctx context.Context, base domain.Currency) (domain.Snapshot, error) {
	snapshot, err := s.primary.Latest(ctx, base)
	if err == nil {
		return snapshot, nil
	}
	// cancellation belongs to the caller, not to the primary source
	if ctx.Err() != nil || !errors.Is(err, ErrFetch) {
		return domain.Snapshot{}, err
	}

	snapshot, mirrorErr := s.mirror.Latest(ctx, base)
	if mirrorErr != nil {
		return domain.Snapshot{}, fmt.Errorf("primary: %v; mirror: %w", err, mirrorErr)
	}
	return snapshot, nil
}
