package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/andrewpaige1/thoughtcatcher-api/auth"
	"github.com/andrewpaige1/thoughtcatcher-api/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type sampleUser struct {
	Username string
	Email    string
	Password string
}

// Development-only accounts.
var sampleUsers = []sampleUser{
	{Username: "john_doe", Email: "john@example.com", Password: "password123"},
	{Username: "jane_smith", Email: "jane@example.com", Password: "mypass456"},
}

func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create sample users for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap("")
			if err != nil {
				return err
			}
			defer a.close()
			if !a.cfg.IsDevelopment() {
				return errors.New("seed only runs with APP_ENV=development")
			}
			return seedUsers(cmd.Context(), a.db, cmd.OutOrStdout())
		},
	}
}

// seedUsers creates each sample user unless its email is already taken.
func seedUsers(ctx context.Context, db *gorm.DB, out io.Writer) error {
	for _, su := range sampleUsers {
		var count int64
		if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", su.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			fmt.Fprintf(out, "User %s already exists, skipping\n", su.Email)
			continue
		}

		hash, err := auth.HashPassword(su.Password)
		if err != nil {
			return err
		}
		user := models.User{
			Username:    su.Username,
			Email:       su.Email,
			Password:    hash,
			Preferences: models.DefaultPreferences(),
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			return fmt.Errorf("create %s: %w", su.Email, err)
		}
		fmt.Fprintf(out, "Created user: %s (%s)\n", su.Username, su.Email)
	}
	return nil
}
