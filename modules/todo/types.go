package todo

import "context"

// Service names registered in the todo module's service container.
const (
	ServiceCreate = "create-todo"
	ServiceGet    = "get-todo"
	ServiceList   = "list-todos"
	ServiceUpdate = "update-todo"
	ServiceDelete = "delete-todo"
)

// CreateTodoRequest is the request for creating a todo.
type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// GetTodoRequest is the request for getting a todo.
type GetTodoRequest struct {
	ID int64 `json:"id"`
}

// ListTodosRequest is the request for listing todos.
type ListTodosRequest struct{}

// UpdateTodoRequest is the request for replacing a todo.
type UpdateTodoRequest struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// DeleteTodoRequest is the request for deleting a todo.
type DeleteTodoRequest struct {
	ID int64 `json:"id"`
}

// TodoResponse represents a todo in responses.
type TodoResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// TodoResult carries a todo that may not exist.
// Found is false when the requested ID has no todo.
type TodoResult struct {
	Found bool          `json:"found"`
	Todo  *TodoResponse `json:"todo,omitempty"`
}

// ListTodosResponse is the response containing every todo.
type ListTodosResponse struct {
	Todos []TodoResponse `json:"todos"`
	Total int            `json:"total"`
}

// DeleteTodoResponse is the response after deleting a todo.
type DeleteTodoResponse struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}

// TodoPort defines the interface for todo operations (hexagonal port).
// Get and Update return nil and Delete returns false, all without an error,
// when the todo does not exist.
type TodoPort interface {
	CreateTodo(ctx context.Context, req *CreateTodoRequest) (*TodoResponse, error)
	GetTodo(ctx context.Context, id int64) (*TodoResponse, error)
	ListTodos(ctx context.Context) ([]TodoResponse, error)
	UpdateTodo(ctx context.Context, req *UpdateTodoRequest) (*TodoResponse, error)
	DeleteTodo(ctx context.Context, id int64) (bool, error)
}
