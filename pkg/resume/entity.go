package resume

// Profile holds the contact block of a resume. All fields default to the
// empty string; there is one profile per document.
type Profile struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
}

// ExperienceEntry is one role at one company. Start/end are free-text date
// tokens, not validated calendar dates. Bullet order is significant.
type ExperienceEntry struct {
	ID      string   `json:"id"`
	Company string   `json:"company"`
	Role    string   `json:"role"`
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Bullets []string `json:"bullets"`
}

type ProjectEntry struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Tech    string   `json:"tech"`
	Bullets []string `json:"bullets"`
}

type EducationEntry struct {
	ID     string `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Period string `json:"period"`
	GPA    string `json:"gpa"`
}

type SkillCategory struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type SkillsBlock struct {
	ID         string          `json:"id"`
	Categories []SkillCategory `json:"categories"`
}

// Document is the aggregate passed across the pipeline boundary. Once it
// leaves the parsing or tailoring boundary every entry carries a non-empty
// id unique within the document.
type Document struct {
	Profile     Profile          `json:"profile"`
	Experiences []ExperienceEntry `json:"experiences"`
	Projects    []ProjectEntry   `json:"projects"`
	Education   []EducationEntry `json:"education"`
	Skills      SkillsBlock      `json:"skills"`
}
