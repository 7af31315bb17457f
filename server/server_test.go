package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/novaqhq/novaq/internal/model"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("server setup failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// doJSON performs a request against the router and decodes the JSON
// response into out when out is non-nil.
func doJSON(t *testing.T, s *Server, method, path, token string, body, out interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s %s response: %v\nbody: %s", method, path, err, rec.Body.String())
		}
	}
	return rec.Code
}

func registerUser(t *testing.T, s *Server, email string) string {
	t.Helper()
	var auth struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	code := doJSON(t, s, http.MethodPost, "/api/v1/register", "",
		map[string]string{"email": email, "password": "correct horse"}, &auth)
	if code != http.StatusOK || auth.Token == "" {
		t.Fatalf("register failed: status %d token %q", code, auth.Token)
	}
	return auth.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	var out map[string]string
	if code := doJSON(t, s, http.MethodGet, "/health", "", nil, &out); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if out["status"] != "ok" {
		t.Errorf("unexpected body %v", out)
	}
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)

	code := doJSON(t, s, http.MethodPost, "/api/v1/register", "",
		map[string]string{"email": "a@b.co", "password": "short"}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("short password: expected 400, got %d", code)
	}

	registerUser(t, s, "a@b.co")
	code = doJSON(t, s, http.MethodPost, "/api/v1/register", "",
		map[string]string{"email": "a@b.co", "password": "correct horse"}, nil)
	if code != http.StatusConflict {
		t.Errorf("duplicate email: expected 409, got %d", code)
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	registerUser(t, s, "a@b.co")

	var auth struct {
		Token string `json:"token"`
	}
	code := doJSON(t, s, http.MethodPost, "/api/v1/login", "",
		map[string]string{"email": "a@b.co", "password": "correct horse"}, &auth)
	if code != http.StatusOK || auth.Token == "" {
		t.Fatalf("login failed: status %d", code)
	}

	code = doJSON(t, s, http.MethodPost, "/api/v1/login", "",
		map[string]string{"email": "a@b.co", "password": "wrong"}, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", code)
	}

	code = doJSON(t, s, http.MethodPost, "/api/v1/login", "",
		map[string]string{"email": "nobody@b.co", "password": "correct horse"}, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("unknown email: expected 401, got %d", code)
	}
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	s := newTestServer(t)

	if code := doJSON(t, s, http.MethodGet, "/api/v1/projects", "", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", code)
	}
	if code := doJSON(t, s, http.MethodGet, "/api/v1/projects", "bogus", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("bogus token: expected 401, got %d", code)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "a@b.co")

	if code := doJSON(t, s, http.MethodPost, "/api/v1/logout", token, nil, nil); code != http.StatusOK {
		t.Fatalf("logout failed: %d", code)
	}
	if code := doJSON(t, s, http.MethodGet, "/api/v1/me", token, nil, nil); code != http.StatusUnauthorized {
		t.Errorf("revoked token should be rejected, got %d", code)
	}
}

func TestMagicLink_Flow(t *testing.T) {
	s := newTestServer(t)
	registerUser(t, s, "a@b.co")

	var issued map[string]string
	code := doJSON(t, s, http.MethodPost, "/api/v1/magic-link", "",
		map[string]string{"email": "a@b.co"}, &issued)
	if code != http.StatusOK || issued["code"] == "" {
		t.Fatalf("magic link request failed: status %d body %v", code, issued)
	}

	var auth struct {
		Token string `json:"token"`
	}
	code = doJSON(t, s, http.MethodPost, "/api/v1/magic-link/redeem", "",
		map[string]string{"email": "a@b.co", "code": issued["code"]}, &auth)
	if code != http.StatusOK || auth.Token == "" {
		t.Fatalf("redeem failed: status %d", code)
	}

	// Codes are single use.
	code = doJSON(t, s, http.MethodPost, "/api/v1/magic-link/redeem", "",
		map[string]string{"email": "a@b.co", "code": issued["code"]}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("reused code: expected 400, got %d", code)
	}
}

func TestMagicLink_UnknownEmailRevealsNothing(t *testing.T) {
	s := newTestServer(t)

	var out map[string]string
	code := doJSON(t, s, http.MethodPost, "/api/v1/magic-link", "",
		map[string]string{"email": "ghost@b.co"}, &out)
	if code != http.StatusOK {
		t.Fatalf("expected 200 for unknown email, got %d", code)
	}
	if out["code"] != "" {
		t.Error("unknown email must not receive a code")
	}

	code = doJSON(t, s, http.MethodPost, "/api/v1/magic-link/redeem", "",
		map[string]string{"email": "ghost@b.co", "code": "whatever"}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("bad redeem: expected 400, got %d", code)
	}
}

func TestProjects_CRUD(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "a@b.co")

	code := doJSON(t, s, http.MethodPost, "/api/v1/projects", token,
		map[string]string{"description": "missing name"}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("nameless project: expected 400, got %d", code)
	}

	var created model.Project
	code = doJSON(t, s, http.MethodPost, "/api/v1/projects", token,
		model.Project{Name: "Thesis", BackgroundColour: "#112233"}, &created)
	if code != http.StatusOK {
		t.Fatalf("create failed: %d", code)
	}
	if created.ID == "" || created.Status != model.StatusNotStarted || created.CreatedAt == "" {
		t.Errorf("missing defaults: %+v", created)
	}

	var listed []model.Project
	if code := doJSON(t, s, http.MethodGet, "/api/v1/projects", token, nil, &listed); code != http.StatusOK {
		t.Fatalf("list failed: %d", code)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("unexpected list %+v", listed)
	}
	if listed[0].CalendarEvents == nil {
		t.Error("events should decode as an empty list, not null")
	}
	if listed[0].Attachments == nil || listed[0].ResourceLinks == nil {
		t.Error("attachments and links should decode as empty lists, not null")
	}

	created.Name = "Thesis v2"
	created.Status = model.StatusInProgress
	var updated model.Project
	code = doJSON(t, s, http.MethodPut, "/api/v1/projects/"+created.ID, token, created, &updated)
	if code != http.StatusOK || updated.Name != "Thesis v2" || updated.Status != model.StatusInProgress {
		t.Errorf("update failed: status %d, %+v", code, updated)
	}

	code = doJSON(t, s, http.MethodPut, "/api/v1/projects/nope", token, created, nil)
	if code != http.StatusNotFound {
		t.Errorf("update of unknown project: expected 404, got %d", code)
	}

	if code := doJSON(t, s, http.MethodDelete, "/api/v1/projects/"+created.ID, token, nil, nil); code != http.StatusOK {
		t.Errorf("delete failed: %d", code)
	}
	if code := doJSON(t, s, http.MethodDelete, "/api/v1/projects/"+created.ID, token, nil, nil); code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", code)
	}
}

func TestReplaceEvents_LastWriterWins(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "a@b.co")

	var p model.Project
	doJSON(t, s, http.MethodPost, "/api/v1/projects", token, model.Project{Name: "Thesis"}, &p)

	first := []model.CalendarEvent{
		{ID: "e1", Title: "Draft", Date: "2024-06-03"},
		{ID: "e2", Title: "Review", Date: "2024-06-04"},
	}
	second := []model.CalendarEvent{
		{ID: "e3", Title: "Rewrite", Date: "2024-06-05"},
	}

	path := fmt.Sprintf("/api/v1/projects/%s/events", p.ID)
	if code := doJSON(t, s, http.MethodPut, path, token, first, nil); code != http.StatusOK {
		t.Fatalf("first write failed: %d", code)
	}
	if code := doJSON(t, s, http.MethodPut, path, token, second, nil); code != http.StatusOK {
		t.Fatalf("second write failed: %d", code)
	}

	var listed []model.Project
	doJSON(t, s, http.MethodGet, "/api/v1/projects", token, nil, &listed)
	events := listed[0].CalendarEvents
	if len(events) != 1 || events[0].ID != "e3" {
		t.Errorf("second write should fully replace the first, got %+v", events)
	}

	code := doJSON(t, s, http.MethodPut, "/api/v1/projects/nope/events", token, first, nil)
	if code != http.StatusNotFound {
		t.Errorf("replace on unknown project: expected 404, got %d", code)
	}
}

func TestProjects_ScopedPerUser(t *testing.T) {
	s := newTestServer(t)
	alice := registerUser(t, s, "alice@b.co")
	bob := registerUser(t, s, "bob@b.co")

	var p model.Project
	doJSON(t, s, http.MethodPost, "/api/v1/projects", alice, model.Project{Name: "Private"}, &p)

	var listed []model.Project
	doJSON(t, s, http.MethodGet, "/api/v1/projects", bob, nil, &listed)
	if len(listed) != 0 {
		t.Errorf("users must not see each other's projects, got %+v", listed)
	}

	path := fmt.Sprintf("/api/v1/projects/%s/events", p.ID)
	code := doJSON(t, s, http.MethodPut, path, bob, []model.CalendarEvent{{ID: "x"}}, nil)
	if code != http.StatusNotFound {
		t.Errorf("cross-user event write: expected 404, got %d", code)
	}
	code = doJSON(t, s, http.MethodDelete, "/api/v1/projects/"+p.ID, bob, nil, nil)
	if code != http.StatusNotFound {
		t.Errorf("cross-user delete: expected 404, got %d", code)
	}
}

func TestNotes_UpsertAndDelete(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "a@b.co")

	note := model.NewNote("n1", "remember the milk", 10, 20)
	if code := doJSON(t, s, http.MethodPut, "/api/v1/notes/n1", token, note, nil); code != http.StatusOK {
		t.Fatalf("insert failed: %d", code)
	}

	note.Content = "remember the oat milk"
	note.IsHighlighted = true
	if code := doJSON(t, s, http.MethodPut, "/api/v1/notes/n1", token, note, nil); code != http.StatusOK {
		t.Fatalf("update failed: %d", code)
	}

	var notes []model.Note
	doJSON(t, s, http.MethodGet, "/api/v1/notes", token, nil, &notes)
	if len(notes) != 1 {
		t.Fatalf("upsert created a duplicate: %+v", notes)
	}
	if notes[0].Content != "remember the oat milk" || !notes[0].IsHighlighted {
		t.Errorf("update not persisted: %+v", notes[0])
	}
	if notes[0].Width != 200 || notes[0].Height != 150 {
		t.Errorf("geometry not persisted: %+v", notes[0])
	}

	if code := doJSON(t, s, http.MethodDelete, "/api/v1/notes/n1", token, nil, nil); code != http.StatusOK {
		t.Errorf("delete failed: %d", code)
	}
	if code := doJSON(t, s, http.MethodDelete, "/api/v1/notes/n1", token, nil, nil); code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", code)
	}
}

func TestTodos_UpsertAndDelete(t *testing.T) {
	s := newTestServer(t)
	token := registerUser(t, s, "a@b.co")

	code := doJSON(t, s, http.MethodPut, "/api/v1/todos/t1", token,
		map[string]string{"reminderTime": "2024-06-03T09:00:00Z"}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("titleless todo: expected 400, got %d", code)
	}

	todo := model.TodoItem{Title: "water plants"}
	if code := doJSON(t, s, http.MethodPut, "/api/v1/todos/t1", token, todo, nil); code != http.StatusOK {
		t.Fatalf("insert failed: %d", code)
	}

	todo.Completed = true
	if code := doJSON(t, s, http.MethodPut, "/api/v1/todos/t1", token, todo, nil); code != http.StatusOK {
		t.Fatalf("update failed: %d", code)
	}

	var todos []model.TodoItem
	doJSON(t, s, http.MethodGet, "/api/v1/todos", token, nil, &todos)
	if len(todos) != 1 || !todos[0].Completed {
		t.Errorf("unexpected todos %+v", todos)
	}

	if code := doJSON(t, s, http.MethodDelete, "/api/v1/todos/t1", token, nil, nil); code != http.StatusOK {
		t.Errorf("delete failed: %d", code)
	}
}
