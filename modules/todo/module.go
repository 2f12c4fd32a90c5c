// Package todo exposes the todo store as request-reply services on the
// mono service bus, together with the TodoPort adapter other modules use
// to call them.
package todo

import (
	"context"
	"encoding/json"
	"fmt"

	dstore "github.com/RSP-99/Microservice/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// TodoModule owns the todo store and serves todo operations.
type TodoModule struct {
	cfg    dstore.Config
	store  *dstore.Store
	logger types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*TodoModule)(nil)
var _ mono.ServiceProviderModule = (*TodoModule)(nil)
var _ mono.HealthCheckableModule = (*TodoModule)(nil)

// NewModule creates a new TodoModule. The store is opened on Start.
func NewModule(cfg dstore.Config, logger types.Logger) *TodoModule {
	return &TodoModule{
		cfg:    cfg,
		logger: logger.WithModule("todo"),
	}
}

// Name returns the module name.
func (m *TodoModule) Name() string {
	return "todo"
}

// RegisterServices registers request-reply services in the service container.
func (m *TodoModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreate, json.Unmarshal, json.Marshal, m.createTodo,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGet, json.Unmarshal, json.Marshal, m.getTodo,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGet, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceList, json.Unmarshal, json.Marshal, m.listTodos,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceList, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdate, json.Unmarshal, json.Marshal, m.updateTodo,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdate, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDelete, json.Unmarshal, json.Marshal, m.deleteTodo,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDelete, err)
	}

	m.logger.Info("Registered services",
		"services", []string{ServiceCreate, ServiceGet, ServiceList, ServiceUpdate, ServiceDelete})
	return nil
}

// Start opens the store and applies the schema.
func (m *TodoModule) Start(_ context.Context) error {
	m.logger.Info("Opening SQLite store", "path", m.cfg.Path, "transient", dstore.IsTransient(m.cfg.Path))

	store, err := dstore.Open(m.cfg)
	if err != nil {
		return err
	}
	m.store = store

	m.logger.Info("Module started successfully")
	return nil
}

// Stop closes the store. A transient store loses its contents here.
// The closed store stays in place, so late requests get errors from it.
func (m *TodoModule) Stop(_ context.Context) error {
	if m.store == nil {
		return nil
	}

	if err := m.store.Close(); err != nil {
		return err
	}

	m.logger.Info("Module stopped")
	return nil
}

// Health performs a health check on the todo module.
func (m *TodoModule) Health(ctx context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "store not initialized",
		}
	}

	if err := m.store.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver":    "sqlite",
			"path":      m.store.Path(),
			"transient": m.store.Transient(),
		},
	}
}
