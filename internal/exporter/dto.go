package exporter

import (
	"github.com/frahmantamala/jobcard-management/internal/core/common/validation"
)

// CreateExporterDTO registers a new licensed exporter.
type CreateExporterDTO struct {
	Name         string `json:"name"`
	LicenseNo    string `json:"license_no"`
	ContactEmail string `json:"contact_email"`
}

func (d CreateExporterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(200)
	v.Field("license_no", d.LicenseNo).Required().MinLength(3).MaxLength(64)
	v.Field("contact_email", d.ContactEmail).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateExporterDTO carries the mutable fields of an exporter record.
type UpdateExporterDTO struct {
	Name         *string `json:"name,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
