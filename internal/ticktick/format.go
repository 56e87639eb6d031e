package ticktick

import (
	"fmt"
	"strings"
)

// FormatTask renders a task as a human-readable multi-line block.
// Field order is fixed; absent optional fields are omitted entirely.
// Status uses the bulk-listing rule: anything that is not completed
// displays as "Active", including unknown status codes.
func FormatTask(t Task) string {
	return formatTask(t, false)
}

// FormatTaskDetail is the single-task rendering used by get_task.
// It differs from FormatTask only in the status line: codes outside
// {0, 2} display as "Unknown (n)".
func FormatTaskDetail(t Task) string {
	return formatTask(t, true)
}

func formatTask(t Task, detail bool) string {
	var b strings.Builder

	id := t.ID
	if id == "" {
		id = "No ID"
	}
	title := t.Title
	if title == "" {
		title = "No title"
	}
	projectID := t.ProjectID
	if projectID == "" {
		projectID = "None"
	}

	fmt.Fprintf(&b, "ID: %s\n", id)
	fmt.Fprintf(&b, "Title: %s\n", title)
	fmt.Fprintf(&b, "Project ID: %s\n", projectID)
	if t.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", t.URL)
	}

	if t.StartDate != "" {
		fmt.Fprintf(&b, "Start Date: %s\n", t.StartDate)
	}
	if t.DueDate != "" {
		fmt.Fprintf(&b, "Due Date: %s\n", t.DueDate)
	}

	fmt.Fprintf(&b, "Priority: %s\n", t.Priority.Label())

	if detail {
		fmt.Fprintf(&b, "Status: %s\n", t.Status.DetailLabel())
	} else {
		fmt.Fprintf(&b, "Status: %s\n", t.Status.Label())
	}

	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(t.Tags, ", "))
	}

	if t.Content != "" {
		fmt.Fprintf(&b, "\nContent:\n%s\n", t.Content)
	}

	if len(t.Items) > 0 {
		fmt.Fprintf(&b, "\nSubtasks (%d):\n", len(t.Items))
		for i, item := range t.Items {
			box := "□"
			if item.Status == 1 {
				box = "✓"
			}
			itemTitle := item.Title
			if itemTitle == "" {
				itemTitle = "No title"
			}
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, box, itemTitle)
		}
	}

	return b.String()
}

// FormatProject renders a project as a human-readable multi-line block.
func FormatProject(p Project) string {
	var b strings.Builder

	name := p.Name
	if name == "" {
		name = "No name"
	}
	id := p.ID
	if id == "" {
		id = "No ID"
	}

	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "ID: %s\n", id)

	if p.Color != "" {
		fmt.Fprintf(&b, "Color: %s\n", p.Color)
	}
	if p.ViewMode != "" {
		fmt.Fprintf(&b, "View Mode: %s\n", p.ViewMode)
	}
	if p.Closed != nil {
		closed := "No"
		if *p.Closed {
			closed = "Yes"
		}
		fmt.Fprintf(&b, "Closed: %s\n", closed)
	}
	if p.Kind != "" {
		fmt.Fprintf(&b, "Kind: %s\n", p.Kind)
	}

	return b.String()
}
