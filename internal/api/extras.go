package api

import (
	"context"

	"github.com/novaqhq/novaq/internal/model"
)

// Notes

func (c *Client) ListNotes(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := c.get(ctx, "/api/v1/notes", &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) SaveNote(ctx context.Context, n model.Note) (model.Note, error) {
	var out model.Note
	if err := c.put(ctx, "/api/v1/notes/"+n.ID, n, &out); err != nil {
		return model.Note{}, err
	}
	return out, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/v1/notes/"+id)
}

// Todos

func (c *Client) ListTodos(ctx context.Context) ([]model.TodoItem, error) {
	var todos []model.TodoItem
	if err := c.get(ctx, "/api/v1/todos", &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) SaveTodo(ctx context.Context, t model.TodoItem) (model.TodoItem, error) {
	var out model.TodoItem
	if err := c.put(ctx, "/api/v1/todos/"+t.ID, t, &out); err != nil {
		return model.TodoItem{}, err
	}
	return out, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/v1/todos/"+id)
}
