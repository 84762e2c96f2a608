package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/jobcard-management/internal/jobcard"
	jobcardPostgres "github.com/frahmantamala/jobcard-management/internal/jobcard/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestJobCardRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "JobCard Repository Suite")
}

// SQLiteJobCard is a SQLite-compatible model for testing
type SQLiteJobCard struct {
	ID         int64      `gorm:"primaryKey"`
	Reference  string     `gorm:"column:reference;uniqueIndex;not null"`
	ExporterID int64      `gorm:"column:exporter_id"`
	Commodity  string     `gorm:"column:commodity"`
	Grade      string     `gorm:"column:grade"`
	QuantityKG int64      `gorm:"column:quantity_kg"`
	Status     string     `gorm:"column:status"`
	Notes      string     `gorm:"column:notes"`
	CreatedBy  int64      `gorm:"column:created_by"`
	ApprovedBy *int64     `gorm:"column:approved_by"`
	ApprovedAt *time.Time `gorm:"column:approved_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (SQLiteJobCard) TableName() string {
	return "job_cards"
}

var _ = Describe("JobCard Repository", func() {
	var (
		db   *gorm.DB
		repo jobcard.Repository
	)

	newCard := func(ref, status string, createdAt time.Time) *jobcard.JobCard {
		return &jobcard.JobCard{
			Reference:  ref,
			ExporterID: 1,
			Commodity:  "tea",
			Grade:      "BP1",
			QuantityKG: 1000,
			Status:     status,
			CreatedBy:  1,
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteJobCard{})
		Expect(err).NotTo(HaveOccurred())

		repo = jobcardPostgres.NewJobCardRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("should persist and read back a card", func() {
			card := newCard("JC-2026-001", jobcard.StatusOpen, time.Now())
			Expect(repo.Create(card)).To(Succeed())
			Expect(card.ID).To(BeNumerically(">", 0))

			stored, err := repo.GetByID(card.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Reference).To(Equal("JC-2026-001"))
			Expect(stored.Status).To(Equal(jobcard.StatusOpen))
		})

		It("should fail on a duplicate reference", func() {
			Expect(repo.Create(newCard("JC-2026-001", jobcard.StatusOpen, time.Now()))).To(Succeed())
			Expect(repo.Create(newCard("JC-2026-001", jobcard.StatusOpen, time.Now()))).NotTo(Succeed())
		})

		It("should return a not-found error for an unknown id", func() {
			_, err := repo.GetByID(12345)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetPendingApprovals", func() {
		It("should return pending cards oldest first", func() {
			base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
			Expect(repo.Create(newCard("JC-3", jobcard.StatusPendingApproval, base.Add(2*time.Hour)))).To(Succeed())
			Expect(repo.Create(newCard("JC-1", jobcard.StatusPendingApproval, base))).To(Succeed())
			Expect(repo.Create(newCard("JC-2", jobcard.StatusOpen, base.Add(time.Hour)))).To(Succeed())

			cards, err := repo.GetPendingApprovals(10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(cards).To(HaveLen(2))
			Expect(cards[0].Reference).To(Equal("JC-1"))
			Expect(cards[1].Reference).To(Equal("JC-3"))
		})
	})

	Describe("UpdateStatus", func() {
		It("should stamp approver and time together with the status", func() {
			card := newCard("JC-9", jobcard.StatusPendingApproval, time.Now())
			Expect(repo.Create(card)).To(Succeed())

			approvedAt := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
			Expect(repo.UpdateStatus(card.ID, jobcard.StatusApproved, 7, approvedAt)).To(Succeed())

			stored, err := repo.GetByID(card.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal(jobcard.StatusApproved))
			Expect(stored.ApprovedBy).NotTo(BeNil())
			Expect(*stored.ApprovedBy).To(Equal(int64(7)))
			Expect(stored.ApprovedAt).NotTo(BeNil())
		})
	})
})
