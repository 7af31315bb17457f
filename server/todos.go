package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/novaqhq/novaq/internal/logger"
	"github.com/novaqhq/novaq/internal/model"
)

// handleListTodos returns the user's todo items, newest first
func (s *Server) handleListTodos(c echo.Context) error {
	userID := c.Get("user_id").(string)

	rows, err := s.db.Query(`
		SELECT id, title, completed, reminder_time, created_at
		FROM todos WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		logger.Error("todo list failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	todos := []model.TodoItem{}
	for rows.Next() {
		var t model.TodoItem
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.ReminderTime, &t.CreatedAt); err != nil {
			logger.Error("todo scan failed", logger.F("error", err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		todos = append(todos, t)
	}

	return c.JSON(http.StatusOK, todos)
}

// handleSaveTodo upserts a todo by id
func (s *Server) handleSaveTodo(c echo.Context) error {
	userID := c.Get("user_id").(string)
	todoID := c.Param("id")

	var t model.TodoItem
	if err := c.Bind(&t); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if t.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title required"})
	}
	t.ID = todoID
	if t.CreatedAt == "" {
		t.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	res, err := s.db.Exec(`
		UPDATE todos SET title = $1, completed = $2, reminder_time = $3
		WHERE id = $4 AND user_id = $5`,
		t.Title, t.Completed, t.ReminderTime, todoID, userID,
	)
	if err != nil {
		logger.Error("todo update failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	if count, _ := res.RowsAffected(); count == 0 {
		_, err = s.db.Exec(`
			INSERT INTO todos (id, user_id, title, completed, reminder_time, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			todoID, userID, t.Title, t.Completed, t.ReminderTime, t.CreatedAt,
		)
		if err != nil {
			logger.Error("todo insert failed", logger.F("error", err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, t)
}

// handleDeleteTodo removes a todo
func (s *Server) handleDeleteTodo(c echo.Context) error {
	userID := c.Get("user_id").(string)
	todoID := c.Param("id")

	res, err := s.db.Exec(`
		DELETE FROM todos WHERE id = $1 AND user_id = $2`,
		todoID, userID,
	)
	if err != nil {
		logger.Error("todo delete failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "todo not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
