// ABOUTME: Mapping between the backend's PascalCase wire format and the client model
// ABOUTME: Every résumé read passes through Normalize before leaving this package

package resume

import "time"

// apiResume mirrors the backend's untagged Go struct, so keys arrive PascalCase
type apiResume struct {
	ID         int64        `json:"ID"`
	UserID     int64        `json:"UserID"`
	Title      *string      `json:"Title"`
	TargetRole *string      `json:"TargetRole"`
	Summary    *string      `json:"Summary"`
	Projects   []apiProject `json:"Projects"`
	Skills     []string     `json:"Skills"`
	IsDefault  bool         `json:"IsDefault"`
	CreatedAt  *time.Time   `json:"CreatedAt"`
	UpdatedAt  *time.Time   `json:"UpdatedAt"`
}

type apiProject struct {
	RepoName    string   `json:"RepoName"`
	Description *string  `json:"Description"`
	URL         string   `json:"URL"`
	Stars       *int     `json:"Stars"`
	Language    *string  `json:"Language"`
	Topics      []string `json:"Topics"`
	Highlights  []string `json:"Highlights"`
	Position    int      `json:"Position"`
}

// apiUpdate is the PUT body; omitted fields stay out of the payload
type apiUpdate struct {
	Title      *string       `json:"Title,omitempty"`
	TargetRole *string       `json:"TargetRole,omitempty"`
	Summary    *string       `json:"Summary,omitempty"`
	Projects   *[]apiProject `json:"Projects,omitempty"`
	Skills     *[]string     `json:"Skills,omitempty"`
	IsDefault  *bool         `json:"IsDefault,omitempty"`
}

// Normalize maps one backend résumé onto the client model.
// It is total and pure: each backend field feeds exactly one client field.
func Normalize(a apiResume) Resume {
	r := Resume{
		ID:         a.ID,
		UserID:     a.UserID,
		Title:      deref(a.Title),
		TargetRole: deref(a.TargetRole),
		Summary:    deref(a.Summary),
		Skills:     copyStrings(a.Skills),
		IsDefault:  a.IsDefault,
		CreatedAt:  derefTime(a.CreatedAt),
		UpdatedAt:  derefTime(a.UpdatedAt),
	}
	if a.Projects != nil {
		r.Projects = make([]Project, len(a.Projects))
		for i, p := range a.Projects {
			r.Projects[i] = NormalizeProject(p)
		}
	}
	return r
}

// NormalizeProject maps one backend project onto the client model
func NormalizeProject(a apiProject) Project {
	stars := 0
	if a.Stars != nil {
		stars = *a.Stars
	}
	return Project{
		RepoName:    a.RepoName,
		Description: deref(a.Description),
		URL:         a.URL,
		Stars:       stars,
		Language:    deref(a.Language),
		Topics:      copyStrings(a.Topics),
		Highlights:  copyStrings(a.Highlights),
		Position:    a.Position,
	}
}

// normalizeAll keeps list order
func normalizeAll(in []apiResume) []Resume {
	out := make([]Resume, len(in))
	for i, a := range in {
		out[i] = Normalize(a)
	}
	return out
}

// denormalizeProject is the inverse of NormalizeProject for outgoing updates
func denormalizeProject(p Project) apiProject {
	stars := p.Stars
	desc, lang := p.Description, p.Language
	return apiProject{
		RepoName:    p.RepoName,
		Description: &desc,
		URL:         p.URL,
		Stars:       &stars,
		Language:    &lang,
		Topics:      copyStrings(p.Topics),
		Highlights:  copyStrings(p.Highlights),
		Position:    p.Position,
	}
}

func denormalizeUpdate(u UpdateRequest) apiUpdate {
	out := apiUpdate{
		Title:      u.Title,
		TargetRole: u.TargetRole,
		Summary:    u.Summary,
		Skills:     u.Skills,
		IsDefault:  u.IsDefault,
	}
	if u.Projects != nil {
		projects := make([]apiProject, len(*u.Projects))
		for i, p := range *u.Projects {
			projects[i] = denormalizeProject(p)
		}
		out.Projects = &projects
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// copyStrings keeps nil as nil so "unset" survives the mapping
func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
