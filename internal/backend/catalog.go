package backend

import (
	"net/http"

	"liendesk/internal/domain"
)

// ---------- Master data ----------

func (s *Server) handleCountries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.seed.countries())
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	var req domain.StatesRequest
	if !decode(w, r, &req) {
		return
	}
	if req.CountryID == "" {
		writeFieldErrors(w, http.StatusUnprocessableEntity, map[string][]string{"country_id": {"The country id field is required."}})
		return
	}
	writeJSON(w, http.StatusOK, s.seed.states(req.CountryID))
}

func (s *Server) handleProjectTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.seed.projectTypes())
}

func (s *Server) handleProjectRoles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.seed.roles())
}

func (s *Server) handleRoleCustomers(w http.ResponseWriter, r *http.Request) {
	var req domain.RoleCustomersRequest
	if !decode(w, r, &req) {
		return
	}
	opts, ok := s.seed.customerTypes(req.RoleID, req.ProjectTypeID)
	if !ok {
		writeFieldErrors(w, http.StatusUnprocessableEntity, map[string][]string{"role_id": {"The selected role id is invalid."}})
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// ---------- Remedies ----------

func (s *Server) handleRemedyDates(w http.ResponseWriter, r *http.Request) {
	var req domain.RemedyDatesRequest
	if !decode(w, r, &req) {
		return
	}
	if !s.seed.hasState(req.State) {
		writeFieldErrors(w, http.StatusUnprocessableEntity, map[string][]string{"state": {"The selected state is invalid."}})
		return
	}
	writeJSON(w, http.StatusOK, s.seed.remedyFields(req.State))
}

func (s *Server) handleDeadlineInfo(w http.ResponseWriter, r *http.Request) {
	var req domain.DeadlineRequest
	if !decode(w, r, &req) {
		return
	}
	if !s.seed.hasState(req.State) {
		writeFieldErrors(w, http.StatusUnprocessableEntity, map[string][]string{"state": {"The selected state is invalid."}})
		return
	}
	writeJSON(w, http.StatusOK, s.seed.deadlines(req, s.today()))
}

func (s *Server) handleTaskActions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.seed.taskActions())
}
