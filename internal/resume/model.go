// ABOUTME: Client-side résumé data model
// ABOUTME: snake_case field names used by views, exports, and JSON output

package resume

import "time"

// Resume is a generated résumé as the client sees it
type Resume struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Title      string    `json:"title"`
	TargetRole string    `json:"target_role"`
	Summary    string    `json:"summary"`
	Projects   []Project `json:"projects"`
	Skills     []string  `json:"skills"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Project is one repository featured on a résumé.
// Only RepoName and URL are always present.
type Project struct {
	RepoName    string   `json:"repo_name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Stars       int      `json:"stars"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
	Highlights  []string `json:"highlights"`
	Position    int      `json:"position"`
}

// DisplayTitle falls back when the service left the title empty
func (r *Resume) DisplayTitle() string {
	if r.Title == "" {
		return "Untitled Resume"
	}
	return r.Title
}

// DisplayRole falls back when no target role was recorded
func (r *Resume) DisplayRole() string {
	if r.TargetRole == "" {
		return "No role specified"
	}
	return r.TargetRole
}

// UpdateRequest carries a partial update. Only non-nil fields are sent.
type UpdateRequest struct {
	Title      *string
	TargetRole *string
	Summary    *string
	Projects   *[]Project
	Skills     *[]string
	IsDefault  *bool
}

// Empty reports whether the request sets no fields
func (u UpdateRequest) Empty() bool {
	return u.Title == nil && u.TargetRole == nil && u.Summary == nil &&
		u.Projects == nil && u.Skills == nil && u.IsDefault == nil
}

// Merge returns a request carrying every mutable field of r, overridden by u.
// Useful against backends that replace the whole record on PUT.
func (u UpdateRequest) Merge(r *Resume) UpdateRequest {
	title, role, summary := r.Title, r.TargetRole, r.Summary
	projects, skills, isDefault := r.Projects, r.Skills, r.IsDefault
	full := UpdateRequest{
		Title:      &title,
		TargetRole: &role,
		Summary:    &summary,
		Projects:   &projects,
		Skills:     &skills,
		IsDefault:  &isDefault,
	}
	if u.Title != nil {
		full.Title = u.Title
	}
	if u.TargetRole != nil {
		full.TargetRole = u.TargetRole
	}
	if u.Summary != nil {
		full.Summary = u.Summary
	}
	if u.Projects != nil {
		full.Projects = u.Projects
	}
	if u.Skills != nil {
		full.Skills = u.Skills
	}
	if u.IsDefault != nil {
		full.IsDefault = u.IsDefault
	}
	return full
}
