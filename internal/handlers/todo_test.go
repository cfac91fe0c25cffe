package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MrTochi/focus-backend/internal/auth"
	dom "github.com/MrTochi/focus-backend/internal/domain"
	"github.com/MrTochi/focus-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// stubTodoRepo is the minimal in-memory TodoRepo the handler tests need.
type stubTodoRepo struct {
	nextID int64
	todos  map[int64]*dom.Todo
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{nextID: 1, todos: map[int64]*dom.Todo{}}
}

func (r *stubTodoRepo) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := t
	r.todos[t.ID] = &cp
	return t, nil
}

func (r *stubTodoRepo) GetByID(_ context.Context, id int64) (dom.Todo, error) {
	if t, ok := r.todos[id]; ok {
		return *t, nil
	}
	return dom.Todo{}, pgx.ErrNoRows
}

func (r *stubTodoRepo) ListByUser(_ context.Context, userID int64) ([]dom.Todo, error) {
	var out []dom.Todo
	for _, t := range r.todos {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTodoRepo) Update(_ context.Context, id int64, patch dom.Todo) (dom.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	t.Title = patch.Title
	t.Description = patch.Description
	t.DueDate = patch.DueDate
	t.Reminder = patch.Reminder
	t.Priority = patch.Priority
	return *t, nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.todos[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.todos, id)
	return nil
}

func (r *stubTodoRepo) ToggleCompleted(_ context.Context, id int64) (dom.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	t.Completed = !t.Completed
	return *t, nil
}

func (r *stubTodoRepo) DueUnnotified(_ context.Context, _ time.Time) ([]dom.DueTodo, error) {
	return nil, nil
}

func (r *stubTodoRepo) MarkNotified(_ context.Context, _ int64) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *auth.Tokens, *stubTodoRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newStubTodoRepo()
	tokens := auth.NewTokens("test-secret", time.Hour)
	h := NewTodoHandler(service.NewTodoService(repo, nil))

	r := gin.New()
	g := r.Group("/api/todos", auth.RequireSession(tokens))
	g.POST("/create-todo", h.Create)
	g.GET("/get-todos", h.List)
	g.GET("/get-todo/:id", h.GetByID)
	g.PUT("/edit-todo/:id", h.Edit)
	g.POST("/complete-todo/:id", h.Toggle)
	g.DELETE("/delete-todo/:id", h.Delete)
	return r, tokens, repo
}

func doJSON(t *testing.T, r *gin.Engine, tokens *auth.Tokens, userID int64, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		token, err := tokens.Issue(userID, dom.RoleUser)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad envelope %q: %v", w.Body.String(), err)
	}
	return out
}

func TestTodoRoutesRequireSession(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, nil, 0, http.MethodGet, "/api/todos/get-todos", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if env := envelope(t, w); env["success"] != false {
		t.Errorf("envelope = %v", env)
	}
}

func TestCreateAndListScopedToCaller(t *testing.T) {
	r, tokens, _ := newTestRouter(t)

	w := doJSON(t, r, tokens, 1, http.MethodPost, "/api/todos/create-todo",
		`{"title":"Buy milk","description":"two liters","priority":"high"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	env := envelope(t, w)
	if env["success"] != true {
		t.Fatalf("envelope = %v", env)
	}
	todo := env["todo"].(map[string]any)
	if todo["priority"] != "high" || todo["notified"] != false {
		t.Errorf("todo = %v", todo)
	}

	// Another caller sees an empty list.
	w = doJSON(t, r, tokens, 2, http.MethodGet, "/api/todos/get-todos", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if todos := envelope(t, w)["todos"].([]any); len(todos) != 0 {
		t.Errorf("foreign list = %v", todos)
	}

	w = doJSON(t, r, tokens, 1, http.MethodGet, "/api/todos/get-todos", "")
	if todos := envelope(t, w)["todos"].([]any); len(todos) != 1 {
		t.Errorf("own list = %v", todos)
	}
}

func TestEditPartialOverHTTP(t *testing.T) {
	r, tokens, repo := newTestRouter(t)

	w := doJSON(t, r, tokens, 1, http.MethodPost, "/api/todos/create-todo",
		`{"title":"Write report","description":"numbers","dueDate":"2026-04-01","reminder":"2026-03-31T09:00:00Z"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}

	// Priority-only edit keeps everything else.
	w = doJSON(t, r, tokens, 1, http.MethodPut, "/api/todos/edit-todo/1", `{"priority":"high"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("edit status = %d: %s", w.Code, w.Body.String())
	}
	stored := repo.todos[1]
	if stored.Priority != dom.PriorityHigh {
		t.Errorf("priority = %q", stored.Priority)
	}
	if stored.Title != "Write report" || stored.DueDate == nil || stored.Reminder == nil {
		t.Errorf("other fields changed: %+v", stored)
	}

	// Explicit null clears the reminder only.
	w = doJSON(t, r, tokens, 1, http.MethodPut, "/api/todos/edit-todo/1", `{"reminder":null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("clear status = %d: %s", w.Code, w.Body.String())
	}
	if repo.todos[1].Reminder != nil {
		t.Error("reminder not cleared")
	}
	if repo.todos[1].DueDate == nil {
		t.Error("due date cleared by reminder edit")
	}
}

func TestToggleAndDelete(t *testing.T) {
	r, tokens, repo := newTestRouter(t)

	doJSON(t, r, tokens, 1, http.MethodPost, "/api/todos/create-todo",
		`{"title":"t","description":"d"}`)

	w := doJSON(t, r, tokens, 1, http.MethodPost, "/api/todos/complete-todo/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status = %d", w.Code)
	}
	if !repo.todos[1].Completed {
		t.Error("not completed after toggle")
	}

	w = doJSON(t, r, tokens, 1, http.MethodDelete, "/api/todos/delete-todo/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(t, r, tokens, 1, http.MethodGet, "/api/todos/get-todo/1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get deleted status = %d", w.Code)
	}
}
