package api

// TodoInput is the HTTP request body for creating or replacing a todo.
// Title must be present and a string; an empty string is accepted.
type TodoInput struct {
	Title       *string `json:"title" validate:"required"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TodoResponse is the HTTP response for a single todo.
type TodoResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// MessageResponse is the HTTP response for the liveness route.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the HTTP response for health checks.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
