package exporter

import "time"

// Exporter is a licensed buyer registered with the exchange.
type Exporter struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	LicenseNo    string    `gorm:"uniqueIndex" json:"license_no"`
	ContactEmail string    `json:"contact_email"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Exporter) TableName() string { return "exporters" }

// Repository defines the data access methods for exporters.
type Repository interface {
	Create(exp *Exporter) error
	GetByID(id int64) (*Exporter, error)
	GetByLicense(licenseNo string) (*Exporter, error)
	GetAll(limit, offset int) ([]*Exporter, error)
	Update(exp *Exporter) error
}
