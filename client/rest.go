package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/unitrack/unitrack/core/note"
	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/task"
)

// RestBackend talks to a running API server. The stdlib client is enough
// here: every call is a small JSON request/response pair.
type RestBackend struct {
	baseURL string
	token   string
	httpc   *http.Client
}

var _ Backend = (*RestBackend)(nil)

func NewRestBackend(baseURL, token string) *RestBackend {
	return &RestBackend{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *RestBackend) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.httpc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return notFoundFor(path)
	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(resp.Body)
		return errors.Errorf("%s %s: %s: %s", method, path, resp.Status, bytes.TrimSpace(data))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return errors.Wrapf(json.NewDecoder(resp.Body).Decode(out), "decoding %s response", path)
}

func notFoundFor(path string) error {
	switch {
	case strings.HasPrefix(path, "/api/tasks"):
		return task.ErrNotFound
	case strings.HasPrefix(path, "/api/notes"):
		return note.ErrNotFound
	default:
		return project.ErrNotFound
	}
}

func (b *RestBackend) ListProjects(ctx context.Context) ([]project.Project, error) {
	var projects []project.Project
	err := b.do(ctx, http.MethodGet, "/api/projects", nil, &projects)
	return projects, err
}

func (b *RestBackend) GetProject(ctx context.Context, id string) (project.Project, error) {
	var prj project.Project
	err := b.do(ctx, http.MethodGet, "/api/projects/"+id, nil, &prj)
	return prj, err
}

func (b *RestBackend) CreateProject(ctx context.Context, np project.NewProject) (project.Project, error) {
	var prj project.Project
	err := b.do(ctx, http.MethodPost, "/api/projects", np, &prj)
	return prj, err
}

func (b *RestBackend) UpdateProject(ctx context.Context, id string, up project.UpdateProject) (project.Project, error) {
	var prj project.Project
	err := b.do(ctx, http.MethodPatch, "/api/projects/"+id, up, &prj)
	return prj, err
}

func (b *RestBackend) DeleteProject(ctx context.Context, id string) error {
	return b.do(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil)
}

func (b *RestBackend) ListTasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	err := b.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks)
	return tasks, err
}

func (b *RestBackend) CreateTask(ctx context.Context, nt task.NewTask) (task.Task, error) {
	var t task.Task
	err := b.do(ctx, http.MethodPost, "/api/tasks", nt, &t)
	return t, err
}

func (b *RestBackend) UpdateTask(ctx context.Context, id string, up task.UpdateTask) (task.Task, error) {
	var t task.Task
	err := b.do(ctx, http.MethodPatch, "/api/tasks/"+id, up, &t)
	return t, err
}

func (b *RestBackend) DeleteTask(ctx context.Context, id string) error {
	return b.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

func (b *RestBackend) ListNotes(ctx context.Context) ([]note.Note, error) {
	var notes []note.Note
	err := b.do(ctx, http.MethodGet, "/api/notes", nil, &notes)
	return notes, err
}

func (b *RestBackend) CreateNote(ctx context.Context, nn note.NewNote) (note.Note, error) {
	var n note.Note
	err := b.do(ctx, http.MethodPost, "/api/notes", nn, &n)
	return n, err
}

func (b *RestBackend) DeleteNote(ctx context.Context, id string) error {
	return b.do(ctx, http.MethodDelete, "/api/notes/"+id, nil, nil)
}

// SetToken swaps the bearer token used on subsequent calls (after login).
func (b *RestBackend) SetToken(token string) { b.token = token }
