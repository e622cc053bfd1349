package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"wheel-quiz-service/internal/app"
	"wheel-quiz-service/internal/config"
	"wheel-quiz-service/internal/infra/memory"
	"wheel-quiz-service/internal/infra/postgres"
	redisstore "wheel-quiz-service/internal/infra/redis"
	transport "wheel-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the wheel game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 24*time.Hour)
	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)

	var (
		sessions app.SessionRepository
		attempts app.AttemptLog
		source   memory.QuestionSource
		segments app.SegmentCatalog
	)
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		db := postgres.OpenBun(cfg.Postgres.URL)
		defer db.Close()

		sessions = postgres.NewSessionStore(db)
		attempts = postgres.NewAttemptLog(db)
		source = postgres.NewQuestionBank(pool)
		segments = memory.NewCachedSegmentCatalog(postgres.NewSegmentCatalog(pool), questionTTL)
		log.Printf("using postgres for sessions and question bank")
	case redisClient != nil:
		sessions = redisstore.NewSessionStore(redisClient, redisTTL)
		attempts = redisstore.NewAttemptLog(redisClient, redisTTL)
		log.Printf("using redis for sessions")
	default:
		sessions = memory.NewSessionStore()
		attempts = memory.NewAttemptLog()
		log.Printf("using in-memory sessions")
	}
	if source == nil {
		source = memory.NewQuestionBank(sampleQuestions())
	}
	if segments == nil {
		wheel := cfg.Wheel.Segments
		if len(wheel) == 0 {
			wheel = defaultSegments()
		}
		segments = memory.NewSegmentCatalog(wheel)
	}

	var questions app.QuestionSupply
	var leaderboard app.Leaderboard
	if redisClient != nil {
		questions = redisstore.NewQuestionCache(redisClient, source, questionTTL)
		leaderboard = redisstore.NewLeaderboard(redisClient)
	} else {
		questions = memory.NewQuestionCache(source, questionTTL)
		leaderboard = memory.NewLeaderboard()
	}

	spinner := app.NewSpinner(nil)
	if cfg.Wheel.Seed != 0 {
		spinner = app.NewSeededSpinner(cfg.Wheel.Seed)
	}

	service := app.NewGameService(sessions, attempts, questions, segments, spinner, app.WithLeaderboard(leaderboard))
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting wheel game service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
