package types

// Task is a follow-up action on a project (send notice, call customer…).
type Task struct {
	ID        EntityID  `json:"id"`
	IsNew     bool      `json:"is_new"`
	ProjectID ProjectID `json:"project_id,omitempty"`
	Name      string    `json:"name"`
	ActionID  string    `json:"action_id,omitempty"`
	DueDate   Date      `json:"due_date"`
	Notes     string    `json:"notes,omitempty"`
	Completed bool      `json:"completed"`
}

// TaskCount is the response of GET /tasks/count.
type TaskCount struct {
	Total   int `json:"total"`
	Open    int `json:"open"`
	Overdue int `json:"overdue"`
}

// TaskFilter narrows GET /tasks.
type TaskFilter struct {
	ProjectID ProjectID
	Search    string
	Open      bool
}
