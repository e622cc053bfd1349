package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	if envPort == "" {
		envPort = "8080"
	}
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "wheel-quiz-service",
		Short: "Spinning-wheel question game served over Gorilla WebSocket",
		Long: `Runs timed question games: students spin a weighted reward wheel, answer
drawn questions and finish with a scored summary and leaderboard rank.

Storage is picked from the config file. With postgres.url set, sessions and
answers live in Postgres and questions and the wheel are read from it. Otherwise
redis.addr keeps sessions in Redis, and without either everything stays in
memory with the built-in sample questions. Redis, when configured, also caches
questions and holds the leaderboard.`,
	}

	cmd.PersistentFlags().StringVar(&port, "port", envPort, "port to listen on")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewSeedCmd(&configPath))
	return cmd
}
