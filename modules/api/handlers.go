package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/RSP-99/Microservice/modules/todo"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP request handlers for todo operations.
type Handlers struct {
	todoPort       todo.TodoPort
	validate       *validator.Validate
	requestTimeout time.Duration
	logger         types.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(todoPort todo.TodoPort, requestTimeout time.Duration, logger types.Logger) *Handlers {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handlers{
		todoPort:       todoPort,
		validate:       validate,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// Root handles GET /.
func (h *Handlers) Root(c *fiber.Ctx) error {
	return c.JSON(MessageResponse{
		Message: "Todo microservice is running",
	})
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := h.callContext(c)
	defer cancel()

	// A lookup of id 0 reaches the store without scanning the table.
	if _, err := h.todoPort.GetTodo(ctx, 0); err != nil {
		h.logger.Warn("Todo service unreachable", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status: "unhealthy",
			Details: map[string]any{
				"todo": err.Error(),
			},
		})
	}

	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"todo":   "reachable",
		},
	})
}

// CreateTodo handles POST /todos.
func (h *Handlers) CreateTodo(c *fiber.Ctx) error {
	input, err := h.parseInput(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.callContext(c)
	defer cancel()

	resp, err := h.todoPort.CreateTodo(ctx, &todo.CreateTodoRequest{
		Title:       *input.Title,
		Description: input.Description,
		Completed:   input.Completed != nil && *input.Completed,
	})
	if err != nil {
		return fmt.Errorf("create todo: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTodoResponse(resp))
}

// ListTodos handles GET /todos.
func (h *Handlers) ListTodos(c *fiber.Ctx) error {
	ctx, cancel := h.callContext(c)
	defer cancel()

	todos, err := h.todoPort.ListTodos(ctx)
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}

	resp := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		resp = append(resp, toTodoResponse(&todos[i]))
	}

	return c.JSON(resp)
}

// GetTodo handles GET /todos/:id.
func (h *Handlers) GetTodo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.callContext(c)
	defer cancel()

	resp, err := h.todoPort.GetTodo(ctx, id)
	if err != nil {
		return fmt.Errorf("get todo %d: %w", id, err)
	}
	if resp == nil {
		return errTodoNotFound
	}

	return c.JSON(toTodoResponse(resp))
}

// UpdateTodo handles PUT /todos/:id.
// The body replaces every field; an omitted description is cleared.
func (h *Handlers) UpdateTodo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	input, err := h.parseInput(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.callContext(c)
	defer cancel()

	resp, err := h.todoPort.UpdateTodo(ctx, &todo.UpdateTodoRequest{
		ID:          id,
		Title:       *input.Title,
		Description: input.Description,
		Completed:   input.Completed != nil && *input.Completed,
	})
	if err != nil {
		return fmt.Errorf("update todo %d: %w", id, err)
	}
	if resp == nil {
		return errTodoNotFound
	}

	return c.JSON(toTodoResponse(resp))
}

// DeleteTodo handles DELETE /todos/:id.
func (h *Handlers) DeleteTodo(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx, cancel := h.callContext(c)
	defer cancel()

	deleted, err := h.todoPort.DeleteTodo(ctx, id)
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	if !deleted {
		return errTodoNotFound
	}

	return c.SendStatus(fiber.StatusNoContent)
}

var errTodoNotFound = fiber.NewError(fiber.StatusNotFound, "Todo not found")

// parseInput decodes and validates a TodoInput body.
// The body is always JSON; a missing Content-Type is read as JSON.
func (h *Handlers) parseInput(c *fiber.Ctx) (*TodoInput, error) {
	if !isJSONContentType(c.Get(fiber.HeaderContentType)) {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "request body must be JSON")
	}

	var input TodoInput
	if err := c.App().Config().JSONDecoder(c.Body(), &input); err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, decodeErrorMessage(err))
	}

	if err := h.validate.Struct(&input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
				fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "request body is invalid")
	}

	return &input, nil
}

func isJSONContentType(header string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(header, ";", 2)[0]))
	return mediaType == "" ||
		mediaType == fiber.MIMEApplicationJSON ||
		strings.HasSuffix(mediaType, "+json")
}

// decodeErrorMessage turns a JSON decoding error into a field-level message.
func decodeErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return "request body must be a JSON object"
		}
		return fmt.Sprintf("%s must be %s", typeErr.Field, jsonKindName(typeErr.Type))
	}
	return "request body is not valid JSON"
}

func jsonKindName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a valid value"
	}
}

// callContext bounds a call into the todo service by the request timeout.
func (h *Handlers) callContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx := c.UserContext()
	if h.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.requestTimeout)
}

func parseID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("id must be an integer, got %q", raw))
	}
	return id, nil
}

func toTodoResponse(t *todo.TodoResponse) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
}
