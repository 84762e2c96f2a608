package pricing

import (
	"time"

	errors "github.com/frahmantamala/jobcard-management/internal"
	"github.com/frahmantamala/jobcard-management/internal/core/common/validation"
)

// UpsertPriceDTO records or replaces a quoted price for one exchange day.
type UpsertPriceDTO struct {
	Commodity string    `json:"commodity"`
	Grade     string    `json:"grade"`
	Currency  string    `json:"currency"`
	UnitPrice int64     `json:"unit_price"`
	PriceDate time.Time `json:"price_date"`
}

func (d UpsertPriceDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("commodity", d.Commodity).Required()
	v.Field("currency", d.Currency).Required().MinLength(3).MaxLength(3)
	v.Field("unit_price", d.UnitPrice).Required().Positive()
	v.Field("price_date", d.PriceDate).NotFuture()
	if err := v.Validate(); err != nil {
		return err
	}
	if d.PriceDate.IsZero() {
		return errors.NewValidationFieldError("price_date", "price_date is required", errors.ErrCodeInvalidDate)
	}
	return nil
}
