package render

import "taskNotes/internal/models/task"

// Flash is a one-shot notification surfaced on the next rendered page.
type Flash struct {
	Level   string // "success" or "error"
	Message string
}

// TaskForm holds the user's submitted values so a failed form re-renders
// with them intact.
type TaskForm struct {
	Title       string
	Description string
}

// FormErrors maps field name to a user-facing message.
type FormErrors map[string]string

type Counts struct {
	Total     int
	Pending   int
	Completed int
}

// CountTasks computes listing counts over the (possibly filtered) task set.
func CountTasks(tasks []*task.Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}

// ListPage is the view data for the listing view.
type ListPage struct {
	Tasks       []*task.Task
	SearchQuery string
	Counts      Counts
	Form        TaskForm
	Errors      FormErrors
	Flash       *Flash
}

// EditPage is the view data for the edit view.
type EditPage struct {
	Task   *task.Task
	Form   TaskForm
	Errors FormErrors
	Flash  *Flash
}
