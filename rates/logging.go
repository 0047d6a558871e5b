package rates

import (
	"context"
	"github.com/go-kit/log"
	"go-currency-converter/domain"
	"time"
)

// loggingService decorates a rates.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService return a new logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Latest(ctx context.Context, base domain.Currency) (snapshot domain.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Log(
			"method", "latest",
			"base", base,
			"date", snapshot.Date,
			"currencies", len(snapshot.Rates),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Latest(ctx, base)
}
