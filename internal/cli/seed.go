package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"wheel-quiz-service/internal/config"
	"wheel-quiz-service/internal/infra/postgres"
)

// NewSeedCmd loads a YAML question bank and wheel into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed questions and wheel segments into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "config/seed.yaml", "path to YAML seed file")
	return cmd
}

func runSeed(ctx context.Context, configPath, seedPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	seed, err := config.LoadSeed(seedPath)
	if err != nil {
		return err
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	db := postgres.OpenBun(cfg.Postgres.URL)
	defer db.Close()

	seeder := postgres.NewSeeder(db)
	questions, err := seeder.SeedQuestions(ctx, seed.Questions)
	if err != nil {
		return err
	}
	segments := seed.Segments
	if len(segments) == 0 {
		segments = cfg.Wheel.Segments
	}
	wheel, err := seeder.SeedSegments(ctx, segments)
	if err != nil {
		return err
	}
	log.Printf("seeded %d questions and %d wheel segments", questions, wheel)
	return nil
}
