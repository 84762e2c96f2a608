package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/jobcard-management/internal/auth"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			for _, table := range []string{"audit_entries", "job_cards", "prices", "exporters", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Email string
			Name  string
			Role  auth.Role
		}{
			{"amina@mail.com", "Amina Admin", auth.RoleAdmin},
			{"joseph@mail.com", "Joseph Manager", auth.RoleManager},
			{"grace@mail.com", "Grace Clerk", auth.RoleClerk},
			{"viewer@mail.com", "Read Only", auth.RoleViewer},
		}

		for _, u := range users {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}

			if err := db.Exec(
				"INSERT INTO users (email, name, password_hash, role, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
				u.Email, u.Name, string(hash), string(u.Role),
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
		}

		exporters := []struct {
			Name    string
			License string
			Email   string
		}{
			{"Highland Produce Ltd", "EXP-001", "ops@highlandproduce.example"},
			{"Coastline Traders", "EXP-002", "desk@coastline.example"},
			{"Savannah Exports", "EXP-003", "admin@savannah.example"},
		}

		for _, e := range exporters {
			var exists int
			row := db.Raw("SELECT 1 FROM exporters WHERE license_no = ?", e.License).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO exporters (name, license_no, contact_email, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
				e.Name, e.License, e.Email,
			).Error; err != nil {
				log.Fatalf("failed to insert exporter %s: %v", e.License, err)
			}
			fmt.Printf("Seeded exporter: %s\n", e.Name)
		}

		priceDate := time.Now().Truncate(24 * time.Hour)
		prices := []struct {
			Commodity string
			Grade     string
			Currency  string
			UnitPrice int64
		}{
			{"tea", "BP1", "USD", 312},
			{"tea", "PF1", "USD", 288},
			{"coffee", "AA", "USD", 542},
			{"coffee", "AB", "USD", 486},
		}

		for _, p := range prices {
			var exists int
			row := db.Raw(
				"SELECT 1 FROM prices WHERE commodity = ? AND grade = ? AND price_date = ?",
				p.Commodity, p.Grade, priceDate,
			).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO prices (commodity, grade, currency, unit_price, price_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
				p.Commodity, p.Grade, p.Currency, p.UnitPrice, priceDate,
			).Error; err != nil {
				log.Fatalf("failed to insert price %s/%s: %v", p.Commodity, p.Grade, err)
			}
			fmt.Printf("Seeded price: %s %s %d\n", p.Commodity, p.Grade, p.UnitPrice)
		}

		fmt.Println("Seeding complete")
	},
}
