package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/novaqhq/novaq/internal/logger"
	"github.com/novaqhq/novaq/internal/model"
)

// handleListNotes returns the user's canvas notes
func (s *Server) handleListNotes(c echo.Context) error {
	userID := c.Get("user_id").(string)

	rows, err := s.db.Query(`
		SELECT id, content, is_highlighted, font_size, x, y, width, height
		FROM notes WHERE user_id = $1
		ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		logger.Error("note list failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Content, &n.IsHighlighted, &n.FontSize,
			&n.X, &n.Y, &n.Width, &n.Height); err != nil {
			logger.Error("note scan failed", logger.F("error", err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		notes = append(notes, n)
	}

	return c.JSON(http.StatusOK, notes)
}

// handleSaveNote upserts a note by id
func (s *Server) handleSaveNote(c echo.Context) error {
	userID := c.Get("user_id").(string)
	noteID := c.Param("id")

	var n model.Note
	if err := c.Bind(&n); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	n.ID = noteID

	res, err := s.db.Exec(`
		UPDATE notes SET content = $1, is_highlighted = $2, font_size = $3,
			x = $4, y = $5, width = $6, height = $7
		WHERE id = $8 AND user_id = $9`,
		n.Content, n.IsHighlighted, n.FontSize, n.X, n.Y, n.Width, n.Height,
		noteID, userID,
	)
	if err != nil {
		logger.Error("note update failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	if count, _ := res.RowsAffected(); count == 0 {
		_, err = s.db.Exec(`
			INSERT INTO notes (id, user_id, content, is_highlighted, font_size,
				x, y, width, height, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			noteID, userID, n.Content, n.IsHighlighted, n.FontSize,
			n.X, n.Y, n.Width, n.Height, time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			logger.Error("note insert failed", logger.F("error", err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, n)
}

// handleDeleteNote removes a note
func (s *Server) handleDeleteNote(c echo.Context) error {
	userID := c.Get("user_id").(string)
	noteID := c.Param("id")

	res, err := s.db.Exec(`
		DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		noteID, userID,
	)
	if err != nil {
		logger.Error("note delete failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "note not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
