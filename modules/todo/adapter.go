package todo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// todoAdapter wraps ServiceContainer for type-safe cross-module communication.
type todoAdapter struct {
	container mono.ServiceContainer
}

// NewTodoAdapter creates a TodoPort backed by the todo module's services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewTodoAdapter(container mono.ServiceContainer) TodoPort {
	if container == nil {
		panic("todo adapter requires non-nil ServiceContainer")
	}
	return &todoAdapter{container: container}
}

// CreateTodo creates a todo via the create-todo service.
func (a *todoAdapter) CreateTodo(ctx context.Context, req *CreateTodoRequest) (*TodoResponse, error) {
	var resp TodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCreate,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("create-todo service call failed: %w", err)
	}
	return &resp, nil
}

// GetTodo retrieves a todo via the get-todo service.
func (a *todoAdapter) GetTodo(ctx context.Context, id int64) (*TodoResponse, error) {
	req := GetTodoRequest{ID: id}
	var resp TodoResult
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGet,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-todo service call failed: %w", err)
	}
	if !resp.Found {
		return nil, nil
	}
	return resp.Todo, nil
}

// ListTodos lists every todo via the list-todos service.
func (a *todoAdapter) ListTodos(ctx context.Context) ([]TodoResponse, error) {
	req := ListTodosRequest{}
	var resp ListTodosResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceList,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-todos service call failed: %w", err)
	}
	if resp.Todos == nil {
		return []TodoResponse{}, nil
	}
	return resp.Todos, nil
}

// UpdateTodo replaces a todo via the update-todo service.
func (a *todoAdapter) UpdateTodo(ctx context.Context, req *UpdateTodoRequest) (*TodoResponse, error) {
	var resp TodoResult
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUpdate,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("update-todo service call failed: %w", err)
	}
	if !resp.Found {
		return nil, nil
	}
	return resp.Todo, nil
}

// DeleteTodo deletes a todo via the delete-todo service.
func (a *todoAdapter) DeleteTodo(ctx context.Context, id int64) (bool, error) {
	req := DeleteTodoRequest{ID: id}
	var resp DeleteTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceDelete,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return false, fmt.Errorf("delete-todo service call failed: %w", err)
	}
	return resp.Deleted, nil
}
