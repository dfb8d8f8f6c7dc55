package backend

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"liendesk/internal/domain"
)

func (s *Server) handleTaskCount(w http.ResponseWriter, r *http.Request) {
	owner := userFrom(r.Context())
	id := domain.ProjectID(r.URL.Query().Get("project_id"))
	today := s.today()

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out domain.TaskCount
	for _, t := range s.tasks {
		if t.owner != owner || (id != "" && t.task.ProjectID != id) {
			continue
		}
		out.Total++
		if t.task.Completed {
			continue
		}
		out.Open++
		if !t.task.DueDate.IsZero() && t.task.DueDate.Before(today) {
			out.Overdue++
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	owner := userFrom(r.Context())
	q := r.URL.Query()
	id := domain.ProjectID(q.Get("project_id"))
	search := strings.ToLower(q.Get("search"))
	open := q.Get("open") == "true"

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Task{}
	for _, t := range s.tasks {
		switch {
		case t.owner != owner,
			id != "" && t.task.ProjectID != id,
			open && t.task.Completed,
			search != "" && !strings.Contains(strings.ToLower(t.task.Name+" "+t.task.Notes), search):
			continue
		}
		out = append(out, t.task)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	owner := userFrom(r.Context())
	id := domain.EntityID(chi.URLParam(r, "id"))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.owner == owner && t.task.ID == id {
			writeJSON(w, http.StatusOK, t.task)
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Task not found.")
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var t domain.Task
	if !decode(w, r, &t) {
		return
	}
	fields := map[string][]string{}
	if strings.TrimSpace(t.Name) == "" {
		fields["name"] = []string{"The name field is required."}
	}
	if t.DueDate.IsZero() {
		fields["due_date"] = []string{"The due date field is required."}
	}
	if len(fields) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, fields)
		return
	}
	owner := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedProject(owner, t.ProjectID); !ok {
		writeMessage(w, http.StatusNotFound, "Project not found.")
		return
	}
	t.ID, t.IsNew = domain.EntityID(uuid.NewString()), false
	s.tasks = append(s.tasks, taskRecord{owner: owner, task: t})
	writeJSON(w, http.StatusOK, t)
}
