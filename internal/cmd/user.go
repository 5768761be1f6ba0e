package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sadisms/stack-radar/internal/adapter/repository"
	"github.com/Sadisms/stack-radar/internal/security"
)

var (
	userEmail    string
	userPassword string
	userFullName string
	userIsAdmin  bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User management",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create new user",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		defer db.Close(log)

		ctx := context.Background()
		users := repository.NewRepositories(db, log).User

		exists, err := users.EmailExists(ctx, userEmail)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("user with email %s already exists", userEmail)
		}

		hash, err := security.HashPassword(userPassword)
		if err != nil {
			return err
		}

		var fullName *string
		if userFullName != "" {
			fullName = &userFullName
		}
		user, err := users.Create(ctx, userEmail, hash, fullName, userIsAdmin, true)
		if err != nil {
			return err
		}

		role := "User"
		if user.IsAdmin {
			role = "Admin"
		}
		name := "N/A"
		if user.FullName != nil {
			name = *user.FullName
		}
		fmt.Printf("\n[OK] User created successfully:\n")
		fmt.Printf("    ID: %d\n", user.ID)
		fmt.Printf("    Email: %s\n", user.Email)
		fmt.Printf("    Name: %s\n", name)
		fmt.Printf("    Role: %s\n", role)
		return nil
	},
}

var userSetPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Set a new password for an existing user",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()
		defer db.Close(log)

		ctx := context.Background()
		users := repository.NewRepositories(db, log).User

		user, err := users.GetByEmail(ctx, userEmail)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("no active user with email %s", userEmail)
		}

		hash, err := security.HashPassword(userPassword)
		if err != nil {
			return err
		}
		if err := users.UpdatePassword(ctx, user.ID, hash); err != nil {
			return err
		}

		fmt.Printf("[OK] Password updated for %s\n", user.Email)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "User email")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "User password")
	userCreateCmd.Flags().StringVar(&userFullName, "name", "", "User full name")
	userCreateCmd.Flags().BoolVar(&userIsAdmin, "admin", false, "Create admin user")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("password")

	userSetPasswordCmd.Flags().StringVar(&userEmail, "email", "", "User email")
	userSetPasswordCmd.Flags().StringVar(&userPassword, "password", "", "New password")
	userSetPasswordCmd.MarkFlagRequired("email")
	userSetPasswordCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userSetPasswordCmd)
	rootCmd.AddCommand(userCmd)
}
