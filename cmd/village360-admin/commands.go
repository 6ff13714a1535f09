package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Uvais-khan078/village360/database"
	"github.com/Uvais-khan078/village360/entities"
	"github.com/Uvais-khan078/village360/pkg/auth/service"
	"github.com/Uvais-khan078/village360/pkg/auth/serviceImp"
	"github.com/Uvais-khan078/village360/pkg/storage"
	"github.com/Uvais-khan078/village360/pkg/storage/storageImp"
)

type opener func() (*gorm.DB, error)

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "village360-admin",
		Short:         "Maintenance commands for the Village 360 database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newMigrateCmd(open), newCreateUserCmd(open), newResetPasswordCmd(open))
	return root
}

// store opens and migrates the database so every command works on a fresh install.
func store(open opener) (storage.Storage, error) {
	db, err := open()
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, errors.New("DB_DRIVER=memory has nothing to maintain")
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return storageImp.NewGorm(db), nil
}

func authService(st storage.Storage) service.AuthService {
	// tokens are never issued from the CLI
	return serviceImp.New(st, serviceImp.NewTokenIssuer(""))
}

func newMigrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := store(open); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func newCreateUserCmd(open opener) *cobra.Command {
	var in service.RegisterInput
	var role string
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user with any role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := store(open)
			if err != nil {
				return err
			}
			in.Role = entities.Role(role)
			in.ConfirmPassword = in.Password
			u, err := authService(st).CreateUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) id=%s\n", u.Username, u.Role, u.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Username, "username", "", "login name")
	f.StringVar(&in.Email, "email", "", "email address")
	f.StringVar(&in.Password, "password", "", "initial password")
	f.StringVar(&role, "role", string(entities.RolePublicViewer), "admin|district_officer|block_officer|public_viewer")
	f.StringVar(&in.District, "district", "", "district")
	f.StringVar(&in.Block, "block", "", "block")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newResetPasswordCmd(open opener) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := store(open)
			if err != nil {
				return err
			}
			if err := authService(st).ResetPassword(cmd.Context(), username, password); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return fmt.Errorf("user %q not found", username)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
