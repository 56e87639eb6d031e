package ticktick

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityLabel(t *testing.T) {
	tests := []struct {
		priority Priority
		want     string
	}{
		{PriorityNone, "None"},
		{PriorityLow, "Low"},
		{PriorityMedium, "Medium"},
		{PriorityHigh, "High"},
		{Priority(2), "2"},
		{Priority(7), "7"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.priority.Label())
	}
}

func TestPriorityValid(t *testing.T) {
	for _, p := range []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, p.Valid(), "priority %d should be valid", p)
	}
	for _, p := range []Priority{2, 4, 6, -1} {
		assert.False(t, p.Valid(), "priority %d should be invalid", p)
	}
}

func TestStatusCompleted(t *testing.T) {
	assert.False(t, StatusActive.Completed())
	assert.True(t, StatusCompleted.Completed())
	// Unknown codes are treated as non-completed
	assert.False(t, Status(5).Completed())
}

func TestStatusDetailLabel(t *testing.T) {
	assert.Equal(t, "Active", StatusActive.DetailLabel())
	assert.Equal(t, "Completed", StatusCompleted.DetailLabel())
	assert.Equal(t, "Unknown (5)", Status(5).DetailLabel())
	assert.Equal(t, "Unknown (-1)", Status(-1).DetailLabel())
}

func TestEnsureInboxProject(t *testing.T) {
	// Absent from the listing: appended at the end.
	got := EnsureInboxProject([]Project{{ID: "p1", Name: "Work"}})
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, InboxProject(), got[1])

	// Already listed: untouched, no duplicate.
	listed := []Project{{ID: InboxProjectID, Name: "Inbox"}, {ID: "p1", Name: "Work"}}
	got = EnsureInboxProject(listed)
	require.Len(t, got, 2)
	assert.Equal(t, InboxProjectID, got[0].ID)

	// Empty listing still yields the inbox.
	got = EnsureInboxProject(nil)
	require.Len(t, got, 1)
	assert.Equal(t, InboxProject(), got[0])
}

func TestTaskURL(t *testing.T) {
	assert.Equal(t,
		"https://ticktick.com/webapp/#p/inbox/tasks/abc123",
		TaskURL("inbox", "abc123"))
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "compact offset",
			input: "2024-01-02T03:00:00+0000",
			want:  time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339",
			input: "2024-01-02T03:00:00+00:00",
			want:  time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC),
		},
		{
			name:  "zulu",
			input: "2024-01-02T03:00:00Z",
			want:  time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC),
		},
		{
			name:  "milliseconds with compact offset",
			input: "2024-01-02T03:00:00.000+0000",
			want:  time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC),
		},
		{
			name:  "non-utc offset",
			input: "2024-06-01T10:30:00+0900",
			want:  time.Date(2024, 6, 1, 1, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "ParseTime(%q) = %v, want %v", tt.input, got, tt.want)
		})
	}
}

func TestParseTimeInvalid(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "2024-01-02", "03:00:00"} {
		_, err := ParseTime(input)
		assert.Error(t, err, "ParseTime(%q) should fail", input)
	}
}

func TestNormalizeDateInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-10-15", "2025-10-15T00:00:00+0000"},
		{"2025-10-15T04:00:00Z", "2025-10-15T04:00:00Z"},
		{"2025-10-15T04:00:00+0000", "2025-10-15T04:00:00+0000"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDateInput(tt.input))
	}
}

func TestTaskJSONRoundTrip(t *testing.T) {
	raw := `{
		"id": "task-1",
		"projectId": "project-1",
		"title": "Buy milk",
		"content": "Get almond milk",
		"startDate": "2024-01-01T03:00:00.000+0000",
		"dueDate": "2024-01-02T03:00:00.000+0000",
		"tags": ["responsibility", "week1"],
		"priority": 3,
		"status": 0,
		"sortOrder": 12345,
		"items": [
			{"id": "i1", "status": 1, "title": "first", "sortOrder": 0}
		]
	}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(raw), &task))

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "project-1", task.ProjectID)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, StatusActive, task.Status)
	assert.Equal(t, "2024-01-02T03:00:00.000+0000", task.DueDate)
	require.Len(t, task.Items, 1)
	assert.Equal(t, 1, task.Items[0].Status)

	// The computed URL field must not leak into API payloads unless set.
	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"url"`)
}

func TestProjectDataUnmarshal(t *testing.T) {
	raw := `{
		"project": {"id": "project-1", "name": "Work", "viewMode": "kanban"},
		"tasks": [{"id": "t1", "projectId": "project-1", "title": "a"}],
		"columns": [{"id": "c1", "projectId": "project-1", "name": "Doing", "sortOrder": 0}]
	}`

	var data ProjectData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))

	assert.Equal(t, "Work", data.Project.Name)
	require.Len(t, data.Tasks, 1)
	require.Len(t, data.Columns, 1)
	assert.Equal(t, "Doing", data.Columns[0].Name)
}
