package jobcard

import (
	errors "github.com/frahmantamala/jobcard-management/internal"
	"github.com/frahmantamala/jobcard-management/internal/core/common/validation"
)

// CreateJobCardDTO is the transport shape for opening a new job card.
type CreateJobCardDTO struct {
	Reference  string `json:"reference"`
	ExporterID int64  `json:"exporter_id"`
	Commodity  string `json:"commodity"`
	Grade      string `json:"grade"`
	QuantityKG int64  `json:"quantity_kg"`
	Notes      string `json:"notes"`
}

func (d CreateJobCardDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("reference", d.Reference).Required()
	v.Field("commodity", d.Commodity).Required()
	v.Field("exporter_id", d.ExporterID).Required()
	v.Field("quantity_kg", d.QuantityKG).Required().Positive()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateJobCardDTO carries the mutable fields of an open job card.
type UpdateJobCardDTO struct {
	Grade      *string `json:"grade,omitempty"`
	QuantityKG *int64  `json:"quantity_kg,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (d UpdateJobCardDTO) Validate() error {
	if d.QuantityKG != nil && *d.QuantityKG <= 0 {
		return errors.NewValidationFieldError("quantity_kg", "quantity must be positive", errors.ErrCodeInvalidQuantity)
	}
	return nil
}
