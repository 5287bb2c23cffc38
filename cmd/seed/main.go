// Command seed loads administrators, GRCs, accounts and rewards from a YAML
// file into a development database. Re-running it skips rows that exist.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"skillswap-backend/internal/config"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository/postgres"
	"skillswap-backend/internal/security"

	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"
)

type Admin struct {
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	Privilege string `yaml:"privilege"`
}

type User struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Verified bool   `yaml:"verified"`
	Points   int32  `yaml:"points"`
}

type Reward struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	PointsCost    int32  `yaml:"points_cost"`
	TotalQuantity *int32 `yaml:"total_quantity"`
}

type SeedData struct {
	GRCs    []string `yaml:"grcs"`
	Admins  []Admin  `yaml:"admins"`
	Users   []User   `yaml:"users"`
	Rewards []Reward `yaml:"rewards"`
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	seedPath := flag.String("data", "config/seed.dev.yaml", "Path to seed data file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	data, err := readSeedFile(*seedPath)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	if err := populate(ctx, db, data); err != nil {
		log.Fatalf("Failed to populate data: %v", err)
	}
	logger.Info("Seed data loaded", "grcs", len(data.GRCs), "admins", len(data.Admins), "users", len(data.Users), "rewards", len(data.Rewards))
}

func readSeedFile(filename string) (*SeedData, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func populate(ctx context.Context, db *sql.DB, data *SeedData) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range data.GRCs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO grcs (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return fmt.Errorf("failed to create GRC %s: %w", name, err)
		}
	}

	for _, a := range data.Admins {
		hash, err := security.HashPassword(a.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", a.Email, err)
		}
		privilege := a.Privilege
		if privilege == "" {
			privilege = "standard"
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO admins (name, email, password_hash, privilege)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO NOTHING`,
			a.Name, a.Email, hash, privilege); err != nil {
			return fmt.Errorf("failed to create admin %s: %w", a.Email, err)
		}
	}

	for _, u := range data.Users {
		hash, err := security.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.Email, err)
		}
		status := "pending"
		if u.Verified {
			status = "verified"
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users (name, email, password_hash, role, verification_status, total_points)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (email) DO NOTHING`,
			u.Name, u.Email, hash, u.Role, status, u.Points); err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
	}

	for _, r := range data.Rewards {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO rewards (name, description, points_cost, total_quantity)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM rewards WHERE name = $1)`,
			r.Name, r.Description, r.PointsCost, r.TotalQuantity); err != nil {
			return fmt.Errorf("failed to create reward %s: %w", r.Name, err)
		}
	}

	return tx.Commit()
}
