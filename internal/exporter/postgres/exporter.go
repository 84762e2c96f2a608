package postgres

import (
	"errors"
	"time"

	appErrors "github.com/frahmantamala/jobcard-management/internal"
	"github.com/frahmantamala/jobcard-management/internal/exporter"
	"gorm.io/gorm"
)

// ExporterRepository implements the exporter.Repository interface using GORM.
type ExporterRepository struct {
	db *gorm.DB
}

func NewExporterRepository(db *gorm.DB) exporter.Repository {
	return &ExporterRepository{db: db}
}

func (r *ExporterRepository) Create(exp *exporter.Exporter) error {
	return r.db.Create(exp).Error
}

func (r *ExporterRepository) GetByID(id int64) (*exporter.Exporter, error) {
	var exp exporter.Exporter
	err := r.db.Where("id = ?", id).First(&exp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrExporterNotFound
		}
		return nil, err
	}
	return &exp, nil
}

func (r *ExporterRepository) GetByLicense(licenseNo string) (*exporter.Exporter, error) {
	var exp exporter.Exporter
	err := r.db.Where("license_no = ?", licenseNo).First(&exp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrExporterNotFound
		}
		return nil, err
	}
	return &exp, nil
}

func (r *ExporterRepository) GetAll(limit, offset int) ([]*exporter.Exporter, error) {
	var exporters []*exporter.Exporter
	err := r.db.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&exporters).Error
	return exporters, err
}

func (r *ExporterRepository) Update(exp *exporter.Exporter) error {
	exp.UpdatedAt = time.Now()
	return r.db.Save(exp).Error
}
