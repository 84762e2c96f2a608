package postgres

import (
	"errors"
	"time"

	appErrors "github.com/frahmantamala/jobcard-management/internal"
	"github.com/frahmantamala/jobcard-management/internal/pricing"
	"gorm.io/gorm"
)

// PriceRepository implements the pricing.Repository interface using GORM.
type PriceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) pricing.Repository {
	return &PriceRepository{db: db}
}

func (r *PriceRepository) Upsert(price *pricing.Price) error {
	price.UpdatedAt = time.Now()
	return r.db.Save(price).Error
}

func (r *PriceRepository) GetLatest(commodity string, limit int) ([]*pricing.Price, error) {
	var prices []*pricing.Price
	query := r.db.Order("price_date DESC, commodity ASC, grade ASC").Limit(limit)
	if commodity != "" {
		query = query.Where("commodity = ?", commodity)
	}
	err := query.Find(&prices).Error
	return prices, err
}

func (r *PriceRepository) GetByCommodityAndDate(commodity, grade string, date time.Time) (*pricing.Price, error) {
	var price pricing.Price
	err := r.db.Where("commodity = ? AND grade = ? AND price_date = ?", commodity, grade, date).
		First(&price).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrPriceNotFound
		}
		return nil, err
	}
	return &price, nil
}
