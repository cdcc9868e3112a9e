// lavctl tareas de operación de la base de lavandería: migraciones, catálogo
// por defecto e importación de la base SQLite anterior.
//
// Uso:
//
//	lavctl migrate up|down|version
//	lavctl seed
//	lavctl import-legacy --sqlite lavanderia.db
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bbh-hotel/lavanderia/pkg/config"
	"github.com/bbh-hotel/lavanderia/pkg/logger"
)

type app struct {
	cfg *config.Config
	log *logger.Logger
}

func main() {
	a := &app{}
	root := &cobra.Command{
		Use:           "lavctl",
		Short:         "Operación de la base de lavandería",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.AddCommand(a.migrateCmd(), a.seedCmd(), a.importLegacyCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
