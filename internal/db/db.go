package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/saludplus/consultas-backend/internal/auth"
	"github.com/saludplus/consultas-backend/internal/consultation"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&consultation.Customer{},
		&consultation.Category{},
		&consultation.Consultation{},
		&consultation.Interaction{},
		&consultation.Agent{},
	)
}

// SeedCategories inserts the fixed 8-row category reference table. Existing
// rows are left untouched.
func SeedCategories(ctx context.Context, gdb *gorm.DB) error {
	for _, cat := range consultation.SeedCategories() {
		c := cat
		res := gdb.WithContext(ctx).FirstOrCreate(&c, consultation.Category{ID: cat.ID})
		if res.Error != nil {
			return fmt.Errorf("seed category %q: %w", cat.Name, res.Error)
		}
	}
	return nil
}

// SeedAgent creates the configured staff account if it does not exist yet.
// A blank email or password disables seeding.
func SeedAgent(ctx context.Context, gdb *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	repo := consultation.NewRepo(gdb)
	if err := repo.CreateAgentIfAbsent(ctx, &consultation.Agent{
		Name:         "Agente de soporte",
		Email:        email,
		PasswordHash: hash,
	}); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("staff account seeded")
	return nil
}
