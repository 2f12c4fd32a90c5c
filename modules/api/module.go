// Package api is the HTTP driving adapter of the todo service. It serves the
// REST routes with Fiber and reaches the todo module through todo.TodoPort.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/RSP-99/Microservice/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// APIModule exposes the todo REST endpoints.
type APIModule struct {
	app            *fiber.App
	handlers       *Handlers
	port           int
	requestTimeout time.Duration
	todoPort       todo.TodoPort
	logger         types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule listening on port.
func NewModule(port int, requestTimeout time.Duration, moduleLogger types.Logger) *APIModule {
	return &APIModule{
		port:           port,
		requestTimeout: requestTimeout,
		logger:         moduleLogger.WithModule("api"),
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"todo"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "todo":
		m.todoPort = todo.NewTodoAdapter(container)
	}
}

// Start builds the Fiber app and starts listening.
func (m *APIModule) Start(_ context.Context) error {
	if m.todoPort == nil {
		return fmt.Errorf("todoPort dependency not set")
	}

	m.setupApp()

	addr := fmt.Sprintf(":%d", m.port)
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			errCh <- err
		}
	}()

	// Catch immediate startup errors such as a port already in use.
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", addr)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}

	m.logger.Info("Shutting down HTTP server")
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "server not started",
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupApp creates the Fiber app with middleware and routes.
func (m *APIModule) setupApp() {
	m.handlers = NewHandlers(m.todoPort, m.requestTimeout, m.logger)

	m.app = fiber.New(fiber.Config{
		AppName:               "Todo Microservice",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "*",
	}))

	m.setupRoutes()
}

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	m.app.Get("/", m.handlers.Root)
	m.app.Get("/health", m.handlers.HealthCheck)

	todos := m.app.Group("/todos")
	todos.Post("/", m.handlers.CreateTodo)
	todos.Get("/", m.handlers.ListTodos)
	todos.Get("/:id", m.handlers.GetTodo)
	todos.Put("/:id", m.handlers.UpdateTodo)
	todos.Delete("/:id", m.handlers.DeleteTodo)
}

// errorHandler writes every handler error as an ErrorResponse.
func (m *APIModule) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		m.logger.Error("HTTP error", "code", code, "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   errorKind(code),
		Message: message,
	})
}

func errorKind(code int) string {
	switch {
	case code == fiber.StatusUnprocessableEntity:
		return "validation_error"
	case code == fiber.StatusNotFound:
		return "not_found"
	case code == fiber.StatusMethodNotAllowed:
		return "method_not_allowed"
	case code >= fiber.StatusInternalServerError:
		return "server_error"
	default:
		return "invalid_request"
	}
}
