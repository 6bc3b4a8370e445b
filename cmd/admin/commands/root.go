// Package commands implements the admin CLI.
package commands

import (
	"fmt"
	"strconv"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Inkwell account administration",
	Long: `Manage Inkwell accounts directly against the database.

Examples:
  admin create-user --email ann@example.com --username ann --password s3cret --staff
  admin set-staff 12 --revoke
  admin delete-user 12`,
	SilenceUsage: true,
}

// userServiceFactory is swapped in tests.
var userServiceFactory = connectUserService

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func connectUserService() (*service.UserService, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewUserService(repository.NewUserRepository(db)), nil
}

func parseUserID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return uint(id), nil
}
