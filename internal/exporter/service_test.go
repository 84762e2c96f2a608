package exporter_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	apperrors "github.com/frahmantamala/jobcard-management/internal"
	"github.com/frahmantamala/jobcard-management/internal/exporter"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestExporterService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Exporter Service Suite")
}

// MockRepository implements exporter.Repository for testing
type MockRepository struct {
	exporters  map[int64]*exporter.Exporter
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		exporters: make(map[int64]*exporter.Exporter),
		nextID:    1,
	}
}

func (m *MockRepository) Create(exp *exporter.Exporter) error {
	if m.shouldFail {
		return m.failError
	}
	exp.ID = m.nextID
	m.nextID++
	m.exporters[exp.ID] = exp
	return nil
}

func (m *MockRepository) GetByID(id int64) (*exporter.Exporter, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	exp, ok := m.exporters[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return exp, nil
}

func (m *MockRepository) GetByLicense(licenseNo string) (*exporter.Exporter, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, exp := range m.exporters {
		if exp.LicenseNo == licenseNo {
			return exp, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockRepository) GetAll(limit, offset int) ([]*exporter.Exporter, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*exporter.Exporter
	for _, exp := range m.exporters {
		result = append(result, exp)
	}
	return result, nil
}

func (m *MockRepository) Update(exp *exporter.Exporter) error {
	if m.shouldFail {
		return m.failError
	}
	m.exporters[exp.ID] = exp
	return nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

var _ = Describe("Exporter Service", func() {
	var (
		mockRepo *MockRepository
		service  *exporter.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = exporter.NewService(mockRepo, logger)
	})

	Describe("CreateExporter", func() {
		validDTO := func() *exporter.CreateExporterDTO {
			return &exporter.CreateExporterDTO{
				Name:         "Highland Produce Ltd",
				LicenseNo:    "EXP-001",
				ContactEmail: "ops@highlandproduce.example",
			}
		}

		It("should register the exporter as active", func() {
			exp, err := service.CreateExporter(validDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.ID).To(BeNumerically(">", 0))
			Expect(exp.IsActive).To(BeTrue())
		})

		It("should refuse a duplicate license number", func() {
			_, err := service.CreateExporter(validDTO())
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateExporter(validDTO())
			Expect(err).To(MatchError(apperrors.ErrDuplicateLicense))
		})

		It("should reject a missing license number", func() {
			dto := validDTO()
			dto.LicenseNo = ""

			_, err := service.CreateExporter(dto)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateExporter", func() {
		BeforeEach(func() {
			_, err := service.CreateExporter(&exporter.CreateExporterDTO{
				Name:         "Coastline Traders",
				LicenseNo:    "EXP-002",
				ContactEmail: "desk@coastline.example",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should apply partial updates", func() {
			email := "newdesk@coastline.example"

			exp, err := service.UpdateExporter(1, &exporter.UpdateExporterDTO{ContactEmail: &email})
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.ContactEmail).To(Equal(email))
			Expect(exp.Name).To(Equal("Coastline Traders"))
		})

		It("should deactivate an exporter", func() {
			inactive := false

			exp, err := service.UpdateExporter(1, &exporter.UpdateExporterDTO{IsActive: &inactive})
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.IsActive).To(BeFalse())
		})

		It("should return a not-found error for a missing exporter", func() {
			name := "x"

			_, err := service.UpdateExporter(99, &exporter.UpdateExporterDTO{Name: &name})
			Expect(err).To(MatchError(apperrors.ErrExporterNotFound))
		})
	})

	Describe("IsActive", func() {
		It("should report the current flag", func() {
			exp, err := service.CreateExporter(&exporter.CreateExporterDTO{
				Name:         "Savannah Exports",
				LicenseNo:    "EXP-003",
				ContactEmail: "admin@savannah.example",
			})
			Expect(err).NotTo(HaveOccurred())

			active, err := service.IsActive(exp.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(BeTrue())

			inactive := false
			_, err = service.UpdateExporter(exp.ID, &exporter.UpdateExporterDTO{IsActive: &inactive})
			Expect(err).NotTo(HaveOccurred())

			active, err = service.IsActive(exp.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(BeFalse())
		})

		It("should error for an unknown exporter", func() {
			_, err := service.IsActive(404)
			Expect(err).To(HaveOccurred())
		})
	})
})
