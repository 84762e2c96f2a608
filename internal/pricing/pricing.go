package pricing

import "time"

// Price is one quoted unit price for a commodity grade on an exchange day.
// Prices are stored in minor units to avoid float arithmetic.
type Price struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Commodity string    `json:"commodity"`
	Grade     string    `json:"grade"`
	Currency  string    `json:"currency"`
	UnitPrice int64     `json:"unit_price"`
	PriceDate time.Time `json:"price_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Price) TableName() string { return "prices" }

// Repository defines the data access methods for exchange prices.
type Repository interface {
	Upsert(price *Price) error
	GetLatest(commodity string, limit int) ([]*Price, error)
	GetByCommodityAndDate(commodity, grade string, date time.Time) (*Price, error)
}
