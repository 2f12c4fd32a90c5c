package todo

import (
	"context"

	dstore "github.com/RSP-99/Microservice/domain/todo"
	"github.com/go-monolith/mono"
)

// createTodo handles the create-todo service request.
func (m *TodoModule) createTodo(ctx context.Context, req CreateTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	todo, err := m.store.Create(ctx, req.Title, req.Description, req.Completed)
	if err != nil {
		m.logger.Error("Failed to create todo", "error", err)
		return TodoResponse{}, err
	}

	m.logger.Debug("Todo created", "id", todo.ID)
	return toTodoResponse(todo), nil
}

// getTodo handles the get-todo service request.
func (m *TodoModule) getTodo(ctx context.Context, req GetTodoRequest, _ *mono.Msg) (TodoResult, error) {
	todo, err := m.store.Get(ctx, req.ID)
	if err != nil {
		m.logger.Error("Failed to get todo", "id", req.ID, "error", err)
		return TodoResult{}, err
	}
	if todo == nil {
		return TodoResult{Found: false}, nil
	}

	resp := toTodoResponse(todo)
	return TodoResult{Found: true, Todo: &resp}, nil
}

// listTodos handles the list-todos service request.
func (m *TodoModule) listTodos(ctx context.Context, _ ListTodosRequest, _ *mono.Msg) (ListTodosResponse, error) {
	todos, err := m.store.List(ctx)
	if err != nil {
		m.logger.Error("Failed to list todos", "error", err)
		return ListTodosResponse{}, err
	}

	resp := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		resp = append(resp, toTodoResponse(&todos[i]))
	}

	return ListTodosResponse{
		Todos: resp,
		Total: len(resp),
	}, nil
}

// updateTodo handles the update-todo service request.
// Every field is replaced; a nil description clears the stored one.
func (m *TodoModule) updateTodo(ctx context.Context, req UpdateTodoRequest, _ *mono.Msg) (TodoResult, error) {
	todo, err := m.store.Update(ctx, req.ID, req.Title, req.Description, req.Completed)
	if err != nil {
		m.logger.Error("Failed to update todo", "id", req.ID, "error", err)
		return TodoResult{}, err
	}
	if todo == nil {
		return TodoResult{Found: false}, nil
	}

	m.logger.Debug("Todo updated", "id", todo.ID)
	resp := toTodoResponse(todo)
	return TodoResult{Found: true, Todo: &resp}, nil
}

// deleteTodo handles the delete-todo service request.
func (m *TodoModule) deleteTodo(ctx context.Context, req DeleteTodoRequest, _ *mono.Msg) (DeleteTodoResponse, error) {
	deleted, err := m.store.Delete(ctx, req.ID)
	if err != nil {
		m.logger.Error("Failed to delete todo", "id", req.ID, "error", err)
		return DeleteTodoResponse{}, err
	}

	if deleted {
		m.logger.Debug("Todo deleted", "id", req.ID)
	}
	return DeleteTodoResponse{Deleted: deleted, ID: req.ID}, nil
}

func toTodoResponse(t *dstore.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
}
