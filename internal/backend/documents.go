package backend

import (
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"liendesk/internal/domain"
)

// multipartOverhead is allowed on top of the per-file limit for headers and
// form fields.
const multipartOverhead = 1 << 20

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	owner := userFrom(r.Context())
	id := domain.ProjectID(r.URL.Query().Get("project_id"))
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.ownedProject(owner, id); !ok {
		writeMessage(w, http.StatusNotFound, "Project not found.")
		return
	}
	out := append([]domain.Document{}, s.documents[id]...)
	writeJSON(w, http.StatusOK, out)
}

// handleUpload accepts multipart/form-data with a project_id field and one
// documents[] part per file. File contents are counted and discarded.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Expected multipart/form-data.")
		return
	}
	var (
		projectID domain.ProjectID
		docs      []domain.Document
		fields    = map[string][]string{}
	)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Malformed multipart body.")
			return
		}
		switch part.FormName() {
		case "project_id":
			raw, _ := io.ReadAll(io.LimitReader(part, 256))
			projectID = domain.ProjectID(raw)
		case "documents[]":
			n, err := io.Copy(io.Discard, io.LimitReader(part, s.cfg.MaxUploadBytes+1))
			if err != nil {
				writeMessage(w, http.StatusBadRequest, "Malformed multipart body.")
				return
			}
			if n > s.cfg.MaxUploadBytes {
				fields["documents"] = append(fields["documents"],
					fmt.Sprintf("The file %s may not be greater than %d kilobytes.", part.FileName(), s.cfg.MaxUploadBytes/1024))
				continue
			}
			id := uuid.NewString()
			docs = append(docs, domain.Document{
				ID:   domain.EntityID(id),
				Name: part.FileName(),
				Size: n,
				Type: part.Header.Get("Content-Type"),
				URL:  "/files/" + id,
			})
		}
		_ = part.Close()
	}
	if projectID == "" {
		fields["project_id"] = []string{"The project id field is required."}
	}
	if len(docs) == 0 && len(fields) == 0 {
		fields["documents"] = []string{"At least one document is required."}
	}
	if len(fields) > 0 {
		writeFieldErrors(w, http.StatusUnprocessableEntity, fields)
		return
	}

	owner := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedProject(owner, projectID); !ok {
		writeMessage(w, http.StatusNotFound, "Project not found.")
		return
	}
	s.documents[projectID] = append(s.documents[projectID], docs...)
	s.logger.Info("documents uploaded", "project_id", projectID.String(), "count", len(docs))
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	var req domain.DeleteDocumentRequest
	if !decode(w, r, &req) {
		return
	}
	owner := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedProject(owner, req.ProjectID); !ok {
		writeMessage(w, http.StatusNotFound, "Project not found.")
		return
	}
	docs := s.documents[req.ProjectID]
	for i, d := range docs {
		if d.ID == req.DocumentID {
			s.documents[req.ProjectID] = append(docs[:i:i], docs[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Document not found.")
}
