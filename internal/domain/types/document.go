package types

// Document is a file attached to a project. New documents reference a local
// path that is uploaded on submission; persisted ones carry a backend URL.
type Document struct {
	ID    EntityID `json:"id"`
	IsNew bool     `json:"is_new"`
	Name  string   `json:"name"`
	Path  string   `json:"path,omitempty"`
	Size  int64    `json:"size"`
	Type  string   `json:"type,omitempty"`
	URL   string   `json:"url,omitempty"`
}

// DeleteDocumentRequest is the body of POST /document/delete.
type DeleteDocumentRequest struct {
	ProjectID  ProjectID `json:"project_id"`
	DocumentID EntityID  `json:"document_id"`
}
