package pricing

import (
	"log/slog"
	"time"
)

// Service handles exchange price business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// UpsertPrice records a quoted price, replacing any earlier quote for the
// same commodity, grade and day.
func (s *Service) UpsertPrice(dto *UpsertPriceDTO, userID int64) (*Price, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("price validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	price := &Price{
		Commodity: dto.Commodity,
		Grade:     dto.Grade,
		Currency:  dto.Currency,
		UnitPrice: dto.UnitPrice,
		PriceDate: dto.PriceDate.Truncate(24 * time.Hour),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if existing, err := s.repo.GetByCommodityAndDate(dto.Commodity, dto.Grade, price.PriceDate); err == nil && existing != nil {
		price.ID = existing.ID
		price.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Upsert(price); err != nil {
		s.logger.Error("failed to upsert price", "error", err, "commodity", dto.Commodity)
		return nil, err
	}

	s.logger.Info("price recorded",
		"price_id", price.ID,
		"commodity", price.Commodity,
		"grade", price.Grade,
		"unit_price", price.UnitPrice,
		"user_id", userID)

	return price, nil
}

// LatestPrices returns the most recent quotes, optionally filtered by
// commodity.
func (s *Service) LatestPrices(commodity string, limit int) ([]*Price, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	prices, err := s.repo.GetLatest(commodity, limit)
	if err != nil {
		s.logger.Error("failed to list prices", "error", err, "commodity", commodity)
		return nil, err
	}
	return prices, nil
}
