package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// PasswordConfig holds the admin password hash and the bcrypt settings used to check it.
type PasswordConfig struct {
	BcryptCost int
	// AdminHash is the bcrypt hash of the admin password (ADMIN_PASSWORD_HASH).
	AdminHash string
}

// NewPasswordConfig reads BCRYPT_COST (default: 12) and ADMIN_PASSWORD_HASH (required).
func NewPasswordConfig() (*PasswordConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	config := &PasswordConfig{
		BcryptCost: cost,
		AdminHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	if c.AdminHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required but not set")
	}
	if _, err := bcrypt.Cost([]byte(c.AdminHash)); err != nil {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
	}
	return nil
}

// HashPassword hashes a password using bcrypt. Used by `portfolio hash-password`.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyAdmin reports whether pw is the admin password.
func (c *PasswordConfig) VerifyAdmin(pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.AdminHash), []byte(pw)) == nil
}
