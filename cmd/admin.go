package main

import (
	"fmt"

	"github.com/spf13/cobra"

	profileRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/profile"
	servicesRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/services"
	vendorProfileRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorprofile"
	profilesService "github.com/m04kA/SMC-MarketplaceService/internal/service/profiles"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/jwt"
	"github.com/m04kA/SMC-MarketplaceService/pkg/txmanager"
)

// newCreateAdminCommand создает администратора или повышает существующий профиль
// Первого администратора нельзя назначить через API
func newCreateAdminCommand() *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Создать администратора или выдать роль admin существующему пользователю",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Close()

			db, err := openDB(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			// роль могла быть закэширована, поэтому кэш нужен для ее сброса
			appCache, rdb, err := openCache(cmd.Context(), cfg.Redis, log)
			if err != nil {
				return err
			}
			if rdb != nil {
				defer rdb.Close()
			}

			wrappedDB := dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
			profileSvc := profilesService.NewService(
				profileRepo.NewRepository(wrappedDB),
				vendorProfileRepo.NewRepository(wrappedDB),
				servicesRepo.NewRepository(wrappedDB),
				txmanager.NewTransactionManager(wrappedDB),
				appCache,
				log,
			)

			admin, err := profileSvc.EnsureAdmin(cmd.Context(), email, name)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin id=%d email=%s\n", admin.ID, admin.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email администратора")
	cmd.Flags().StringVar(&name, "name", "", "имя администратора")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// newTokenCommand печатает подписанный JWT для локальной отладки
func newTokenCommand() *cobra.Command {
	var userID int64

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Выпустить JWT для пользователя",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user-id must be positive")
			}

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Close()

			token, err := jwt.GenerateToken(userID, cfg.Auth.JWTSecret, cfg.Auth.TokenExpireHours)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "ID пользователя")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
