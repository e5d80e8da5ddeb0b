package http

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-app/internal/domain"
	"todo-app/internal/repository"
)

const (
	minTodoLen = 3
	maxTodoLen = 100
)

// TodoHandler mantiene dependencias para los endpoints de to-dos.
type TodoHandler struct {
	logger *zap.Logger
	todos  repository.TodoRepository
}

func NewTodoHandler(logger *zap.Logger, todos repository.TodoRepository) *TodoHandler {
	return &TodoHandler{
		logger: logger,
		todos:  todos,
	}
}

// CreateTodo maneja POST /todos; requiere SessionAuthMiddleware.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	user, ok := GetSessionUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "please login again", "unauthorized")
		return
	}

	var req struct {
		Todo string `json:"todo" form:"todo"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid create todo request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request", "")
		return
	}

	text := strings.TrimSpace(req.Todo)
	if text == "" {
		respondError(c, http.StatusBadRequest, "todo text is required", "missing todo")
		return
	}
	if n := utf8.RuneCountInString(text); n < minTodoLen || n > maxTodoLen {
		respondError(c, http.StatusBadRequest, "todo length should be 3-100", "invalid length")
		return
	}

	todo := domain.Todo{
		ID:        uuid.NewString(),
		UserID:    user.UserID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.todos.Create(c.Request.Context(), todo); err != nil {
		h.logger.Error("create todo failed", zap.Error(err), zap.String("user_id", user.UserID))
		respondInternal(c)
		return
	}

	respondOK(c, http.StatusCreated, "todo created successfully", todo)
}
