package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/novaqhq/novaq/internal/logger"
	"github.com/novaqhq/novaq/internal/model"
)

const projectColumns = `id, name, description, background_colour, image_url, status,
	time_spent, attachments, resource_links, calendar_events, created_at`

func scanProject(row interface{ Scan(...interface{}) error }) (model.Project, error) {
	var p model.Project
	var attachments, links, events string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.BackgroundColour, &p.ImageURL,
		&p.Status, &p.TimeSpentOnProject, &attachments, &links, &events, &p.CreatedAt)
	if err != nil {
		return model.Project{}, err
	}
	// Malformed JSON in an array column degrades to an empty list rather
	// than failing the whole request.
	json.Unmarshal([]byte(attachments), &p.Attachments)
	json.Unmarshal([]byte(links), &p.ResourceLinks)
	json.Unmarshal([]byte(events), &p.CalendarEvents)
	if p.Attachments == nil {
		p.Attachments = []string{}
	}
	if p.ResourceLinks == nil {
		p.ResourceLinks = []string{}
	}
	if p.CalendarEvents == nil {
		p.CalendarEvents = []model.CalendarEvent{}
	}
	return p, nil
}

func marshalArray(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return "[]"
	}
	return string(data)
}

// handleListProjects returns the user's projects, most recent first
func (s *Server) handleListProjects(c echo.Context) error {
	userID := c.Get("user_id").(string)

	rows, err := s.db.Query(`
		SELECT `+projectColumns+` FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		logger.Error("project list failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			logger.Error("project scan failed", logger.F("error", err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		p.UserID = userID
		projects = append(projects, p)
	}

	return c.JSON(http.StatusOK, projects)
}

// handleCreateProject inserts a new project
func (s *Server) handleCreateProject(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var p model.Project
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if p.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name required"})
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = model.StatusNotStarted
	}
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	p.UserID = userID

	_, err := s.db.Exec(`
		INSERT INTO projects (id, user_id, name, description, background_colour,
			image_url, status, time_spent, attachments, resource_links,
			calendar_events, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, userID, p.Name, p.Description, p.BackgroundColour, p.ImageURL,
		p.Status, p.TimeSpentOnProject, marshalArray(p.Attachments),
		marshalArray(p.ResourceLinks), marshalArray(p.CalendarEvents), p.CreatedAt,
	)
	if err != nil {
		logger.Error("project insert failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	logger.Info("project created", logger.F("project", p.ID), logger.F("user", userID))
	return c.JSON(http.StatusOK, p)
}

// handleUpdateProject replaces a project's mutable fields. The embedded
// event array is owned by the events endpoint and left untouched here.
func (s *Server) handleUpdateProject(c echo.Context) error {
	userID := c.Get("user_id").(string)
	projectID := c.Param("id")

	var p model.Project
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if p.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name required"})
	}

	res, err := s.db.Exec(`
		UPDATE projects SET name = $1, description = $2, background_colour = $3,
			image_url = $4, status = $5, time_spent = $6, attachments = $7,
			resource_links = $8
		WHERE id = $9 AND user_id = $10`,
		p.Name, p.Description, p.BackgroundColour, p.ImageURL, p.Status,
		p.TimeSpentOnProject, marshalArray(p.Attachments),
		marshalArray(p.ResourceLinks), projectID, userID,
	)
	if err != nil {
		logger.Error("project update failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
	}

	row := s.db.QueryRow(`
		SELECT `+projectColumns+` FROM projects WHERE id = $1 AND user_id = $2`,
		projectID, userID,
	)
	stored, err := scanProject(row)
	if err != nil {
		logger.Error("project reload failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	stored.UserID = userID

	return c.JSON(http.StatusOK, stored)
}

// handleDeleteProject removes a project and its embedded events
func (s *Server) handleDeleteProject(c echo.Context) error {
	userID := c.Get("user_id").(string)
	projectID := c.Param("id")

	res, err := s.db.Exec(`
		DELETE FROM projects WHERE id = $1 AND user_id = $2`,
		projectID, userID,
	)
	if err != nil {
		logger.Error("project delete failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
	}

	logger.Info("project deleted", logger.F("project", projectID), logger.F("user", userID))
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleReplaceEvents overwrites a project's calendar event array
// wholesale. There is no merge: of two concurrent writers the later one
// wins.
func (s *Server) handleReplaceEvents(c echo.Context) error {
	userID := c.Get("user_id").(string)
	projectID := c.Param("id")

	var events []model.CalendarEvent
	if err := c.Bind(&events); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	res, err := s.db.Exec(`
		UPDATE projects SET calendar_events = $1
		WHERE id = $2 AND user_id = $3`,
		marshalArray(events), projectID, userID,
	)
	if err != nil {
		logger.Error("event replace failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
	}

	logger.Debug("events replaced",
		logger.F("project", projectID), logger.F("count", len(events)))
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
