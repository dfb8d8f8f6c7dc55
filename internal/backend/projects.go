package backend

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"liendesk/internal/domain"
)

// ---------- Projects ----------

// ownedProject returns the caller's project. Callers hold s.mu.
func (s *Server) ownedProject(owner string, id domain.ProjectID) (*projectRecord, bool) {
	rec, ok := s.projects[id]
	if !ok || rec.owner != owner {
		return nil, false
	}
	return rec, true
}

func (s *Server) handleProjectInfo(w http.ResponseWriter, r *http.Request) {
	owner := userFrom(r.Context())
	id := domain.ProjectID(r.URL.Query().Get("project_id"))

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.ownedProject(owner, id)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Project not found.")
		return
	}
	p := rec.project
	for _, c := range s.contacts {
		switch {
		case c.customer && c.contact.ID == p.CustomerID:
			cust := c.contact
			p.Customer = &cust
		case !c.customer && c.projectID == id:
			p.Contacts = append(p.Contacts, c.contact)
		}
	}
	p.Documents = append([]domain.Document(nil), s.documents[id]...)
	for _, t := range s.tasks {
		if t.task.ProjectID == id {
			p.Tasks = append(p.Tasks, t.task)
		}
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSaveProject(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Unreadable body.")
		return
	}
	if fields := s.project.Validate(body); len(fields) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, fields)
		return
	}
	var p domain.Project
	if err := json.Unmarshal(body, &p); err != nil {
		writeMessage(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}
	if fields := s.checkProject(p); len(fields) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, fields)
		return
	}
	// Totals are recomputed; the client's derived values are not trusted.
	p.Contract = domain.NewContractTotals(p.Contract.ContractSection)
	p.Customer, p.Contacts, p.Documents, p.Tasks = nil, nil, nil, nil

	owner := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID != "" {
		if _, ok := s.ownedProject(owner, p.ID); !ok {
			writeMessage(w, http.StatusNotFound, "Project not found.")
			return
		}
	} else {
		p.ID = domain.ProjectID(uuid.NewString())
	}
	s.projects[p.ID] = &projectRecord{owner: owner, project: p}
	s.logger.Info("project saved", "project_id", p.ID.String(), "user_id", owner)
	writeJSON(w, http.StatusOK, p)
}

// checkProject applies the rules the schema cannot express.
func (s *Server) checkProject(p domain.Project) map[string][]string {
	fields := map[string][]string{}
	if !s.seed.hasState(p.Details.StateID) {
		fields["details.state_id"] = []string{"The selected state is invalid."}
	}
	if types, ok := s.seed.customerTypes(p.Details.RoleID, p.Details.ProjectTypeID); !ok {
		fields["details.role_id"] = []string{"The selected role is invalid."}
	} else if domain.NameOf(types, p.Details.CustomerTypeID) == p.Details.CustomerTypeID {
		fields["details.customer_type_id"] = []string{"The selected customer type is not allowed for this role."}
	}
	d := p.Dates
	if !d.StartDate.IsZero() && !d.EndDate.IsZero() && d.EndDate.Before(d.StartDate) {
		fields["dates.end_date"] = []string{"The end date must be after the start date."}
	}
	if !d.FirstFurnishingDate.IsZero() && !d.LastFurnishingDate.IsZero() && d.LastFurnishingDate.Before(d.FirstFurnishingDate) {
		fields["dates.last_furnishing_date"] = []string{"The last furnishing date must be after the first furnishing date."}
	}
	return fields
}

// ---------- Wizard drafts ----------

func (s *Server) handleSaveStep(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveStepRequest
	if !decode(w, r, &req) {
		return
	}
	if !req.Step.Valid() {
		writeFieldErrors(w, http.StatusUnprocessableEntity, map[string][]string{"step": {"The step must be between 1 and 11."}})
		return
	}
	owner := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.DraftID != "" {
		if prev, ok := s.drafts[req.DraftID]; !ok || prev.owner != owner {
			writeMessage(w, http.StatusNotFound, "Draft not found.")
			return
		}
	} else {
		req.DraftID = uuid.NewString()
	}
	s.drafts[req.DraftID] = draftRecord{owner: owner, req: req, saved: s.now()}
	writeJSON(w, http.StatusOK, domain.SaveStepResponse{DraftID: req.DraftID})
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	owner := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.drafts[id]
	if !ok || rec.owner != owner {
		writeMessage(w, http.StatusNotFound, "Draft not found.")
		return
	}
	delete(s.drafts, id)
	w.WriteHeader(http.StatusNoContent)
}

// ---------- Contacts ----------

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	owner := userFrom(r.Context())
	id := domain.ProjectID(r.URL.Query().Get("project_id"))

	s.mu.RLock()
	defer s.mu.RUnlock()
	if id != "" {
		if _, ok := s.ownedProject(owner, id); !ok {
			writeMessage(w, http.StatusNotFound, "Project not found.")
			return
		}
	}
	out := []domain.Contact{}
	for _, c := range s.contacts {
		if c.owner != owner {
			continue
		}
		if id == "" || c.projectID == id {
			out = append(out, c.contact)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func checkContact(c domain.Contact, requireCompany bool) map[string][]string {
	fields := map[string][]string{}
	if requireCompany && strings.TrimSpace(c.Company) == "" {
		fields["company"] = []string{"The company field is required."}
	}
	if c.Name() == "" {
		fields["name"] = []string{"The contact needs a name or a company."}
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		fields["email"] = []string{"The email must be a valid email address."}
	}
	return fields
}

func (s *Server) handleSaveCustomer(w http.ResponseWriter, r *http.Request) {
	var c domain.Contact
	if !decode(w, r, &c) {
		return
	}
	if fields := checkContact(c, true); len(fields) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, fields)
		return
	}
	c.ID, c.IsNew = domain.EntityID(uuid.NewString()), false
	s.mu.Lock()
	s.contacts = append(s.contacts, contactRecord{owner: userFrom(r.Context()), customer: true, contact: c})
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleSaveProjectContact(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveProjectContactRequest
	if !decode(w, r, &req) {
		return
	}
	if fields := checkContact(req.Contact, false); len(fields) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, fields)
		return
	}
	owner := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedProject(owner, req.ProjectID); !ok {
		writeMessage(w, http.StatusNotFound, "Project not found.")
		return
	}
	c := req.Contact
	c.ID, c.IsNew = domain.EntityID(uuid.NewString()), false
	s.contacts = append(s.contacts, contactRecord{owner: owner, projectID: req.ProjectID, contact: c})
	writeJSON(w, http.StatusOK, c)
}
