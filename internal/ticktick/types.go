package ticktick

import (
	"fmt"
	"strconv"
	"time"
)

// InboxProjectID is the fixed ID of the synthetic inbox project.
// The upstream project listing endpoint does not include the inbox,
// even though every account has one.
const InboxProjectID = "inbox"

// Priority is the TickTick task priority code.
type Priority int

// Priority codes used by the TickTick API.
const (
	PriorityNone   Priority = 0
	PriorityLow    Priority = 1
	PriorityMedium Priority = 3
	PriorityHigh   Priority = 5
)

// Valid reports whether p is one of the priority codes the API accepts.
func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label returns the display name for the priority. Unrecognized codes
// are rendered as their decimal value so nothing is silently dropped.
func (p Priority) Label() string {
	switch p {
	case PriorityNone:
		return "None"
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	}
	return strconv.Itoa(int(p))
}

// Status is the TickTick task status code.
type Status int

// Status codes used by the TickTick API. Other values occur in the
// wild (e.g. abandoned tasks) and are treated as non-completed.
const (
	StatusActive    Status = 0
	StatusCompleted Status = 2
)

// Completed reports whether the status code means completed.
func (s Status) Completed() bool {
	return s == StatusCompleted
}

// Label returns "Active" or "Completed". Any code other than
// StatusCompleted displays as "Active"; this is the bulk-listing
// behavior, see DetailLabel for the stricter single-task rendering.
func (s Status) Label() string {
	if s.Completed() {
		return "Completed"
	}
	return "Active"
}

// DetailLabel returns the strict display label used by the single-task
// view: codes outside {0, 2} render as "Unknown (n)" instead of
// "Active". Both renderings are part of the observed contract.
func (s Status) DetailLabel() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	}
	return fmt.Sprintf("Unknown (%d)", int(s))
}

// Project is a TickTick project (a task container).
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	Closed   *bool  `json:"closed,omitempty"`
	GroupID  string `json:"groupId,omitempty"`
	ViewMode string `json:"viewMode,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// InboxProject returns the synthetic inbox project record.
func InboxProject() Project {
	return Project{ID: InboxProjectID, Name: "Inbox"}
}

// EnsureInboxProject appends the synthetic inbox project when the
// listing does not already contain it. The listing endpoint normally
// omits the inbox, but a record with the fixed ID must never be
// duplicated.
func EnsureInboxProject(projects []Project) []Project {
	for _, p := range projects {
		if p.ID == InboxProjectID {
			return projects
		}
	}
	return append(projects, InboxProject())
}

// ChecklistItem is a subtask (checklist entry) nested under a task.
// Status is 1 for complete, 0 for incomplete.
type ChecklistItem struct {
	ID            string `json:"id"`
	Status        int    `json:"status"`
	Title         string `json:"title"`
	SortOrder     int64  `json:"sortOrder"`
	StartDate     string `json:"startDate,omitempty"`
	IsAllDay      *bool  `json:"isAllDay,omitempty"`
	TimeZone      string `json:"timeZone,omitempty"`
	CompletedTime string `json:"completedTime,omitempty"`
}

// Task is a TickTick task. Date fields keep the ISO-8601 strings the
// API returned; use ParseTime when a time.Time is needed. This keeps
// formatted output byte-identical to the upstream representation.
type Task struct {
	ID            string          `json:"id"`
	ProjectID     string          `json:"projectId"`
	Title         string          `json:"title"`
	Content       string          `json:"content,omitempty"`
	Desc          string          `json:"desc,omitempty"`
	IsAllDay      *bool           `json:"isAllDay,omitempty"`
	TimeZone      string          `json:"timeZone,omitempty"`
	RepeatFlag    string          `json:"repeatFlag,omitempty"`
	StartDate     string          `json:"startDate,omitempty"`
	DueDate       string          `json:"dueDate,omitempty"`
	Reminders     []string        `json:"reminders,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Priority      Priority        `json:"priority,omitempty"`
	Status        Status          `json:"status,omitempty"`
	CompletedTime string          `json:"completedTime,omitempty"`
	SortOrder     int64           `json:"sortOrder,omitempty"`
	Items         []ChecklistItem `json:"items,omitempty"`

	// URL is computed locally via TaskURL, never returned by the API.
	URL string `json:"url,omitempty"`
}

// Column is a kanban column within a project.
type Column struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	SortOrder int64  `json:"sortOrder"`
}

// ProjectData aggregates a project with its tasks and columns, as
// returned by the project data endpoint.
type ProjectData struct {
	Project Project  `json:"project"`
	Tasks   []Task   `json:"tasks"`
	Columns []Column `json:"columns"`
}

// TaskInput carries the fields for creating or updating a task.
// Empty strings mean "not provided"; Priority is a pointer so that
// an explicit 0 (None) can be distinguished from absent on update.
type TaskInput struct {
	Title     string    `json:"title,omitempty"`
	ProjectID string    `json:"projectId,omitempty"`
	Content   string    `json:"content,omitempty"`
	StartDate string    `json:"startDate,omitempty"`
	DueDate   string    `json:"dueDate,omitempty"`
	Priority  *Priority `json:"priority,omitempty"`
}

// TaskURL builds the web app deep link for a task.
func TaskURL(projectID, taskID string) string {
	return fmt.Sprintf("https://ticktick.com/webapp/#p/%s/tasks/%s", projectID, taskID)
}

// timeLayouts are the ISO-8601 variants the API emits: with or without
// milliseconds, with "Z", "+0000" or "+00:00" offsets.
var timeLayouts = []string{
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z0700",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
}

// ParseTime parses a TickTick date string into a time.Time.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

// NormalizeDateInput turns a bare YYYY-MM-DD date into midnight UTC in
// the format the API expects. Strings that already carry a time
// component are returned unchanged.
func NormalizeDateInput(s string) string {
	if s == "" {
		return s
	}
	for _, r := range s {
		if r == 'T' {
			return s
		}
	}
	return s + "T00:00:00+0000"
}
