package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bbh-hotel/lavanderia/internal/application/auth"
	"github.com/bbh-hotel/lavanderia/internal/application/catalog"
	"github.com/bbh-hotel/lavanderia/internal/infrastructure/legacy"
	"github.com/bbh-hotel/lavanderia/internal/infrastructure/postgres"
)

func (a *app) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL",
	}
	run := func(name string, fn func(*postgres.Migrator) error) *cobra.Command {
		return &cobra.Command{
			Use:  name,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) (err error) {
				m, err := postgres.NewMigrator(a.cfg.DB.ConnectionString(), a.log.Component("migrate"))
				if err != nil {
					return err
				}
				defer func() {
					err = errors.Join(err, m.Close())
				}()
				return fn(m)
			},
		}
	}
	up := run("up", func(m *postgres.Migrator) error { return m.Up() })
	up.Short = "Aplica las migraciones pendientes"
	down := run("down", func(m *postgres.Migrator) error { return m.Down() })
	down.Short = "Revierte todas las migraciones"
	version := run("version", func(m *postgres.Migrator) error {
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("versión %d (dirty=%t)\n", v, dirty)
		return nil
	})
	version.Short = "Muestra la versión aplicada"
	cmd.AddCommand(up, down, version)
	return cmd
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Crea el usuario admin y el catálogo de ítems por defecto (idempotente)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, a.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()
			authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{Secret: a.cfg.JWT.Secret})
			created, err := authUC.EnsureAdmin(ctx, a.cfg.Bootstrap.AdminPassword)
			if err != nil {
				return err
			}
			a.log.Info().Bool("created", created).Str("username", auth.AdminUsername).Msg("usuario admin")

			res, err := catalog.NewCatalogUseCase(postgres.NewItemRepository(pool)).SeedDefaults(ctx)
			if err != nil {
				return err
			}
			a.log.Info().Int("created", res.Created).Msg("catálogo por defecto")
			return nil
		},
	}
}

func (a *app) importLegacyCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "import-legacy",
		Short: "Importa ítems y movimientos de la base SQLite anterior",
		Long: "Copia ítems y movimientos de la base SQLite anterior en una sola transacción.\n" +
			"Los usuarios no se importan: se recrean con el admin inicial.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, err := legacy.Open(path)
			if err != nil {
				return err
			}
			defer src.Close()

			pool, err := postgres.NewPool(ctx, a.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			rep, err := legacy.NewImporter(src, postgres.NewTxRunner(pool), a.log.Component("legacy")).Import(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		},
	}
	cmd.Flags().StringVar(&path, "sqlite", "", "ruta del archivo SQLite")
	_ = cmd.MarkFlagRequired("sqlite")
	return cmd
}
