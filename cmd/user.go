package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CarWashService/internal/service/auth"
)

func newUserCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUserCreateCmd(configPath))
	return cmd
}

func newUserCreateCmd(configPath *string) *cobra.Command {
	var (
		email    string
		password string
		isAdmin  bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account (operators and admins)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}

			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			db, err := openDB(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			hash, err := auth.HashPassword(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			id, err := userRepo.NewRepository(db).Create(cmd.Context(), &domain.User{
				Email:        email,
				PasswordHash: hash,
				IsAdmin:      isAdmin,
			})
			if err != nil {
				return err
			}

			log.Info("User created: id=%d, admin=%t", id, isAdmin)
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "grant admin rights")

	return cmd
}
