package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liqma/backend/config"
	"github.com/liqma/backend/internal/app"
	"github.com/liqma/backend/internal/logging"
	"github.com/liqma/backend/internal/seed"
)

var (
	count    int
	seedFlag uint64
)

var rootCmd = &cobra.Command{
	Use:   "seed_recipes",
	Short: "Load the demo recipe catalog",
	Long: `seed_recipes writes the demo authors and a generated recipe catalog to the
configured database. The same --seed always produces the same catalog, and
records that already exist are left untouched.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if count <= 0 {
			return fmt.Errorf("--count must be positive, got %d", count)
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		logger, err := logging.New(cfg.Env)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		stores, err := app.OpenStores(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer stores.Close()

		st, err := seed.Load(cmd.Context(), seed.NewGenerator(seedFlag), stores.Users, stores.Recipes, count)
		if err != nil {
			return err
		}
		logger.Info("seeded demo data",
			zap.Int("users", st.Users),
			zap.Int("recipes", st.Recipes),
			zap.Int("skipped", st.Skipped))
		return nil
	},
}

func init() {
	rootCmd.Flags().IntVarP(&count, "count", "n", app.DemoRecipes, "Number of recipes to generate")
	rootCmd.Flags().Uint64Var(&seedFlag, "seed", app.DemoSeed, "Generator seed")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
