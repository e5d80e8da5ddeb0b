package http

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestCreateTodo_RequiresSession(t *testing.T) {
	app := newTestApp(t, nil)

	rec := performRequest(app.router, http.MethodPost, "/todos", map[string]string{"todo": "buy milk"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if len(app.todos.todos) != 0 {
		t.Fatalf("no todo should be stored without a session")
	}
}

func TestCreateTodo_Validation(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := storeSession(t, app, "todo-token", true, time.Now().Add(time.Hour))

	cases := map[string]string{
		"empty":     "   ",
		"too short": "ab",
		"too long":  strings.Repeat("x", 101),
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			rec := performRequest(app.router, http.MethodPost, "/todos", map[string]string{"todo": text}, cookie)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
		})
	}
	if len(app.todos.todos) != 0 {
		t.Fatalf("invalid todos must not be stored")
	}
}

func TestCreateTodo_Success(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := storeSession(t, app, "todo-token", true, time.Now().Add(time.Hour))

	rec := performRequest(app.router, http.MethodPost, "/todos", map[string]string{"todo": "  walk the dog  "}, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if len(app.todos.todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(app.todos.todos))
	}
	got := app.todos.todos[0]
	if got.Text != "walk the dog" || got.UserID != "u-1" || got.ID == "" {
		t.Fatalf("unexpected todo %+v", got)
	}
}

func TestCreateTodo_StoreFailure(t *testing.T) {
	app := newTestApp(t, nil)
	app.todos.err = errors.New("db down")
	cookie := storeSession(t, app, "todo-token", true, time.Now().Add(time.Hour))

	rec := performRequest(app.router, http.MethodPost, "/todos", map[string]string{"todo": "walk the dog"}, cookie)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
