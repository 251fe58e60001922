// Package seed fills a development database with fake users and listings.
package seed

import (
	"fmt"

	"classifieds/internal/models"

	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "password123"

// PasswordHasher hashes the shared seed password.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Options configuration for the seeder
type Options struct {
	NumUsers int
	NumAds   int
	Clean    bool
}

// Seeder writes generated data through a GORM handle.
type Seeder struct {
	db      *gorm.DB
	hasher  PasswordHasher
	factory *Factory
}

// NewSeeder creates a seeder. seed feeds the faker; 0 means random.
func NewSeeder(db *gorm.DB, hasher PasswordHasher, seed int64) *Seeder {
	return &Seeder{db: db, hasher: hasher, factory: NewFactory(seed)}
}

// Run applies opts: optional cleanup, then users, then listings spread over them.
func (s *Seeder) Run(opts Options) error {
	if opts.Clean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}
	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	_, err = s.SeedAdvertisements(users, opts.NumAds)
	return err
}

// ClearAll removes every listing and user.
func (s *Seeder) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Advertisement{}).Error; err != nil {
			return fmt.Errorf("clear advertisements: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		return nil
	})
}

// SeedUsers creates n users sharing DefaultPassword. The hash is computed once.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	if n <= 0 {
		return nil, nil
	}
	hash, err := s.hasher.Hash(DefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	var existing int64
	if err := s.db.Model(&models.User{}).Count(&existing).Error; err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := range n {
		users = append(users, s.factory.BuildUser(int(existing)+i+1, hash))
	}
	if err := s.db.CreateInBatches(users, 100).Error; err != nil {
		return nil, fmt.Errorf("create users: %w", err)
	}
	return users, nil
}

// SeedAdvertisements creates n listings assigned round-robin to owners.
func (s *Seeder) SeedAdvertisements(owners []*models.User, n int) ([]*models.Advertisement, error) {
	if n <= 0 || len(owners) == 0 {
		return nil, nil
	}
	ads := make([]*models.Advertisement, 0, n)
	for i := range n {
		ads = append(ads, s.factory.BuildAdvertisement(owners[i%len(owners)]))
	}
	if err := s.db.CreateInBatches(ads, 100).Error; err != nil {
		return nil, fmt.Errorf("create advertisements: %w", err)
	}
	return ads, nil
}
