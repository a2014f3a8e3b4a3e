package workspace

import "time"

// ProjectStatus tracks where a reconciliation project sits in its life.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// Project is the bookkeeping record for one reconciliation effort: which
// files were loaded, how many transactions each side holds, and how far
// along the matching is.
type Project struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Description          string        `json:"description,omitempty"`
	Status               ProjectStatus `json:"status"`
	BankFileCount        int           `json:"bankFileCount"`
	GLFileCount          int           `json:"glFileCount"`
	BankTransactionCount int           `json:"bankTransactionCount"`
	GLTransactionCount   int           `json:"glTransactionCount"`
	MatchGroupCount      int           `json:"matchGroupCount"`
	MatchRate            float64       `json:"matchRate"`
	CreatedAt            time.Time     `json:"createdAt"`
	LastActivity         time.Time     `json:"lastActivity"`
}

// StartProject attaches a fresh project record to the workspace and returns
// it. Any prior project is replaced; loaded transactions are kept.
func (w *Workspace) StartProject(name, description string) Project {
	now := w.now()
	w.project = &Project{
		ID:                   w.newID(),
		Name:                 name,
		Description:          description,
		Status:               ProjectActive,
		BankTransactionCount: len(w.bank),
		GLTransactionCount:   len(w.gl),
		MatchGroupCount:      len(w.groups),
		CreatedAt:            now,
		LastActivity:         now,
	}
	w.log.WithField("project", name).Info("Started reconciliation project")
	return *w.project
}

// Project returns a copy of the current project record, if any.
func (w *Workspace) Project() (Project, bool) {
	if w.project == nil {
		return Project{}, false
	}
	return *w.project, true
}

// CompleteProject marks the project finished. The transaction collections
// are untouched so reports can still be produced.
func (w *Workspace) CompleteProject() {
	if w.project == nil {
		return
	}
	w.project.Status = ProjectCompleted
	w.project.LastActivity = w.now()
}

// touchProject refreshes the derived project fields after any state change.
func (w *Workspace) touchProject() {
	if w.project == nil {
		return
	}
	stats := w.Stats()
	w.project.BankTransactionCount = len(w.bank)
	w.project.GLTransactionCount = len(w.gl)
	w.project.MatchGroupCount = len(w.groups)
	w.project.MatchRate = stats.MatchedRate
	w.project.LastActivity = w.now()
}
