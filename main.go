package main

import (
	"context"
	"log"
	"os"

	dstore "github.com/RSP-99/Microservice/domain/todo"
	apimod "github.com/RSP-99/Microservice/modules/api"
	todomod "github.com/RSP-99/Microservice/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	cfg := loadConfig()

	log.Println("=== Todo Microservice ===")
	log.Printf("Database: %s (transient: %t)", cfg.DatabaseURL, dstore.IsTransient(cfg.DatabaseURL))
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Request Timeout: %s", cfg.RequestTimeout)
	log.Printf("Shutdown Timeout: %s", cfg.ShutdownTimeout)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules. The api module depends on todo and receives its
	// service container before start.
	app.Register(todomod.NewModule(dstore.Config{
		Path:  cfg.DatabaseURL,
		Debug: cfg.DBDebug,
	}, app.Logger()))
	app.Register(apimod.NewModule(cfg.HTTPPort, cfg.RequestTimeout, app.Logger()))

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", cfg.HTTPPort)
	log.Println("Endpoints:")
	log.Println("  GET    /             - Liveness message")
	log.Println("  GET    /health       - Health check")
	log.Println("  POST   /todos        - Create todo")
	log.Println("  GET    /todos        - List todos")
	log.Println("  GET    /todos/:id    - Get todo")
	log.Println("  PUT    /todos/:id    - Replace todo")
	log.Println("  DELETE /todos/:id    - Delete todo")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}
