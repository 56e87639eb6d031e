package ticktick

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), Config{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresToken(t *testing.T) {
	t.Setenv(EnvAccessToken, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := NewClient(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no TickTick access token")
}

func TestListProjects(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/project", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]Project{
			{ID: "project-1", Name: "Work"},
			{ID: "project-2", Name: "Home"},
		})
	}))

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Work", projects[0].Name)
}

func TestGetProjectData(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/project/project-1/data", r.URL.Path)
		_ = json.NewEncoder(w).Encode(ProjectData{
			Project: Project{ID: "project-1", Name: "Work"},
			Tasks:   []Task{{ID: "t1", ProjectID: "project-1", Title: "a"}},
		})
	}))

	data, err := client.GetProjectData(context.Background(), "project-1")
	require.NoError(t, err)
	assert.Equal(t, "Work", data.Project.Name)
	require.Len(t, data.Tasks, 1)
}

func TestGetTask(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/project/project-1/task/task-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Task{ID: "task-1", ProjectID: "project-1", Title: "Buy milk"})
	}))

	task, err := client.GetTask(context.Background(), "project-1", "task-1")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
}

func TestCreateTaskBody(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/task", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(Task{ID: "new-task", ProjectID: "project-1", Title: "Buy milk"})
	}))

	priority := PriorityHigh
	task, err := client.CreateTask(context.Background(), TaskInput{
		Title:     "Buy milk",
		ProjectID: "project-1",
		DueDate:   "2025-10-15T00:00:00+0000",
		Priority:  &priority,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-task", task.ID)

	assert.Equal(t, "Buy milk", got["title"])
	assert.Equal(t, "project-1", got["projectId"])
	assert.Equal(t, "2025-10-15T00:00:00+0000", got["dueDate"])
	assert.Equal(t, float64(5), got["priority"])
	// Unset optional fields are omitted from the payload.
	_, hasContent := got["content"]
	assert.False(t, hasContent)
}

func TestUpdateTaskBodyCarriesID(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/task/task-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(Task{ID: "task-1", ProjectID: "project-1", Title: "renamed"})
	}))

	task, err := client.UpdateTask(context.Background(), "task-1", TaskInput{
		Title:     "renamed",
		ProjectID: "project-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", task.Title)
	assert.Equal(t, "task-1", got["id"])
}

func TestCompleteAndDeleteTask(t *testing.T) {
	var paths []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.CompleteTask(context.Background(), "p1", "t1"))
	require.NoError(t, client.DeleteTask(context.Background(), "p1", "t1"))

	assert.Equal(t, []string{
		"POST /project/p1/task/t1/complete",
		"DELETE /project/p1/task/t1",
	}, paths)
}

func TestCreateProjectBody(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/project", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(Project{ID: "project-9", Name: "New List"})
	}))

	project, err := client.CreateProject(context.Background(), "New List", "#F18181", "list")
	require.NoError(t, err)
	assert.Equal(t, "project-9", project.ID)
	assert.Equal(t, "New List", got["name"])
	assert.Equal(t, "#F18181", got["color"])
	assert.Equal(t, "list", got["viewMode"])
}

func TestDeleteProject(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/project/project-1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.DeleteProject(context.Background(), "project-1"))
}

func TestAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantSub string
	}{
		{
			name:    "structured error payload",
			status:  http.StatusForbidden,
			body:    `{"errorId":"x","errorCode":"forbidden","errorMessage":"no access to project"}`,
			wantSub: "API error 403: no access to project",
		},
		{
			name:    "plain text body",
			status:  http.StatusInternalServerError,
			body:    "upstream exploded",
			wantSub: "API error 500: upstream exploded",
		},
		{
			name:    "empty body",
			status:  http.StatusNotFound,
			body:    "",
			wantSub: "API error 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.GetProject(context.Background(), "project-1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSub)
		})
	}
}
