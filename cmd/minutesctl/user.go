package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/auth"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

func newCreateUserCommand() *cobra.Command {
	var in auth.CreateUserInput
	var role string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account",
		Long: `Create a user account that can sign in with email and password.

Example:
  minutesctl create-user --email admin@example.com --name 管理者 --password 's3cret-pass' --role admin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Role = entities.UserRole(role)
			if !in.Role.IsValid() {
				return fmt.Errorf("--role must be admin, manager or member")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.NewPostgresDB(cfg)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
			svc := auth.NewAuthService(repository.NewUserRepository(db), nil, jwtManager, newLogger())

			user, err := svc.CreateUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s user %s (%s)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (min 8 characters)")
	cmd.Flags().StringVar(&role, "role", string(entities.RoleMember), "Role: admin, manager, member")
	for _, name := range []string{"email", "name", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
