package query

import (
	"context"
	"strings"
	"time"

	"ticktick-mcp/internal/logging"
	"ticktick-mcp/internal/ticktick"
)

// Status filter values accepted by Filter.Status.
const (
	StatusAny       = ""
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Source is the subset of the TickTick client the collector needs.
// *ticktick.Client satisfies it; tests substitute a fake.
type Source interface {
	ListProjects(ctx context.Context) ([]ticktick.Project, error)
	GetProjectData(ctx context.Context, projectID string) (*ticktick.ProjectData, error)
}

// Collect gathers tasks from every project (including the inbox), or
// from the single named project when projectID is non-empty. Each
// returned task carries its computed web URL.
//
// The project listing always runs first; a non-empty projectID
// restricts which listed projects are fetched. A project whose data
// fetch fails is logged and skipped so one broken project does not
// hide the rest. Only the listing itself can fail.
func Collect(ctx context.Context, src Source, projectID string, logger logging.Logger) ([]ticktick.Task, error) {
	if logger == nil {
		logger = logging.DefaultLogger()
	}

	projects, err := src.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	projects = ticktick.EnsureInboxProject(projects)

	var tasks []ticktick.Task
	for _, p := range projects {
		if projectID != "" && p.ID != projectID {
			continue
		}
		data, err := src.GetProjectData(ctx, p.ID)
		if err != nil {
			logger.Warn("skipping project during task collection",
				logging.KeyProject, p.ID,
				logging.KeyError, err.Error())
			continue
		}
		tasks = append(tasks, attachURLs(data.Tasks)...)
	}
	return tasks, nil
}

func attachURLs(tasks []ticktick.Task) []ticktick.Task {
	for i := range tasks {
		tasks[i].URL = ticktick.TaskURL(tasks[i].ProjectID, tasks[i].ID)
	}
	return tasks
}

// Filter describes the in-memory task filter pipeline. The zero value
// passes every task through.
type Filter struct {
	// Status is "", "active", or "completed". "active" keeps any task
	// whose status code is not the completed code.
	Status string

	// OverdueOnly keeps tasks whose due date is strictly before Now.
	OverdueOnly bool

	// DueInNext7Days keeps tasks due between Now and Now+7d inclusive.
	// Combines with OverdueOnly as a union.
	DueInNext7Days bool

	// Tags keeps tasks carrying at least one of these tags
	// (case-insensitive exact match).
	Tags []string

	// Keywords keeps tasks whose title or content contains at least
	// one of these strings (case-insensitive).
	Keywords []string

	// Now anchors the relative date windows. Zero means time.Now().
	Now time.Time
}

// Apply runs the filter pipeline over tasks, preserving input order.
// Stages run in a fixed order: status, relative dates, tags, keywords.
func (f Filter) Apply(tasks []ticktick.Task) []ticktick.Task {
	out := tasks

	switch f.Status {
	case StatusActive:
		out = keep(out, func(t ticktick.Task) bool { return !t.Status.Completed() })
	case StatusCompleted:
		out = keep(out, func(t ticktick.Task) bool { return t.Status.Completed() })
	}

	if f.OverdueOnly || f.DueInNext7Days {
		now := f.Now
		if now.IsZero() {
			now = time.Now().UTC()
		}
		horizon := now.Add(7 * 24 * time.Hour)
		out = keep(out, func(t ticktick.Task) bool {
			if t.Status.Completed() || t.DueDate == "" {
				return false
			}
			due, err := ticktick.ParseTime(t.DueDate)
			if err != nil {
				return false
			}
			if f.OverdueOnly && due.Before(now) {
				return true
			}
			if f.DueInNext7Days && !due.Before(now) && !due.After(horizon) {
				return true
			}
			return false
		})
	}

	if len(f.Tags) > 0 {
		want := lowered(f.Tags)
		out = keep(out, func(t ticktick.Task) bool {
			for _, tag := range t.Tags {
				if _, ok := want[strings.ToLower(tag)]; ok {
					return true
				}
			}
			return false
		})
	}

	if len(f.Keywords) > 0 {
		out = keep(out, func(t ticktick.Task) bool {
			title := strings.ToLower(t.Title)
			content := strings.ToLower(t.Content)
			for _, kw := range f.Keywords {
				kw = strings.ToLower(kw)
				if kw == "" {
					continue
				}
				if strings.Contains(title, kw) || strings.Contains(content, kw) {
					return true
				}
			}
			return false
		})
	}

	return out
}

func keep(tasks []ticktick.Task, pred func(ticktick.Task) bool) []ticktick.Task {
	out := make([]ticktick.Task, 0, len(tasks))
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

func lowered(values []string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[strings.ToLower(v)] = struct{}{}
	}
	return m
}
