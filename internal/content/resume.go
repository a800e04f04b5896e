package content

// ResumeDocument is the structured, language-specific data behind the CV.
type ResumeDocument struct {
	PersonalInfo        PersonalInfo    `json:"personalInfo" validate:"required"`
	ProfessionalSummary string          `json:"professionalSummary"`
	Education           []Education     `json:"education" validate:"dive"`
	Experience          []Experience    `json:"experience" validate:"dive"`
	Projects            []Project       `json:"projects" validate:"dive"`
	Skills              Skills          `json:"skills"`
	Certifications      []Certification `json:"certifications" validate:"dive"`
	Interests           []Interest      `json:"interests" validate:"dive"`
	CareerObjective     string          `json:"careerObjective,omitempty"`
	Availability        Availability    `json:"availability"`
}

// PersonalInfo holds identity and contact channels.
type PersonalInfo struct {
	FullName  string           `json:"fullName" validate:"required"`
	Title     string           `json:"title"`
	Tagline   string           `json:"tagline"`
	Location  string           `json:"location"`
	Phone     string           `json:"phone,omitempty"`
	Email     string           `json:"email" validate:"required,email"`
	Website   string           `json:"website,omitempty" validate:"omitempty,url"`
	LinkedIn  string           `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub    string           `json:"github,omitempty" validate:"omitempty,url"`
	Languages []SpokenLanguage `json:"languages" validate:"dive"`
}

// SpokenLanguage is a language the person speaks and how well.
type SpokenLanguage struct {
	Name  string `json:"name" validate:"required"`
	Level string `json:"level"`
}

// Education is a degree or diploma entry.
type Education struct {
	Institution    string   `json:"institution" validate:"required"`
	Degree         string   `json:"degree" validate:"required"`
	Specialization string   `json:"specialization,omitempty"`
	StartDate      string   `json:"startDate,omitempty" validate:"omitempty,calendardate"`
	EndDate        *string  `json:"endDate" validate:"omitempty,calendardate"`
	Current        bool     `json:"current"`
	Location       string   `json:"location,omitempty"`
	Description    string   `json:"description,omitempty"`
	Achievements   []string `json:"achievements"`
	Courses        []string `json:"courses,omitempty"`
}

// Experience is a position held at an organization.
type Experience struct {
	Company          string   `json:"company" validate:"required"`
	Position         string   `json:"position" validate:"required"`
	EmploymentType   string   `json:"employmentType,omitempty"`
	StartDate        string   `json:"startDate" validate:"required,calendardate"`
	EndDate          *string  `json:"endDate" validate:"omitempty,calendardate"`
	Current          bool     `json:"current"`
	Location         string   `json:"location,omitempty"`
	Description      string   `json:"description,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements"`
	Technologies     []string `json:"technologies"`
}

// Project is a CV project entry. ID is optional and only drives manual ordering.
type Project struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name" validate:"required"`
	Role             string   `json:"role,omitempty"`
	StartDate        string   `json:"startDate" validate:"required,calendardate"`
	EndDate          *string  `json:"endDate" validate:"omitempty,calendardate"`
	Current          bool     `json:"current"`
	ShortDescription string   `json:"shortDescription"`
	Technologies     []string `json:"technologies"`
	Features         []string `json:"features,omitempty"`
}

// Skills groups technical skills by category alongside soft skills.
type Skills struct {
	Technical []SkillCategory `json:"technical" validate:"dive"`
	Soft      []SoftSkill     `json:"soft,omitempty"`
}

// SkillCategory is an ordered group of skills under one label.
type SkillCategory struct {
	Category string  `json:"category" validate:"required"`
	Skills   []Skill `json:"skills" validate:"dive"`
}

// Skill is a single skill with its proficiency.
type Skill struct {
	Name              string  `json:"name" validate:"required"`
	Level             string  `json:"level,omitempty"`
	YearsOfExperience float64 `json:"yearsOfExperience,omitempty" validate:"gte=0"`
}

// SoftSkill is a non-technical skill.
type SoftSkill struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CertificationStatus is the lifecycle state of a certification.
type CertificationStatus string

// Certification statuses.
const (
	StatusCompleted  CertificationStatus = "completed"
	StatusInProgress CertificationStatus = "in-progress"
	StatusActive     CertificationStatus = "active"
)

// Certification is a credential issued by an external body.
type Certification struct {
	Name        string              `json:"name" validate:"required"`
	Issuer      string              `json:"issuer"`
	IssueDate   string              `json:"issueDate,omitempty" validate:"omitempty,calendardate"`
	Status      CertificationStatus `json:"status,omitempty" validate:"omitempty,oneof=completed in-progress active"`
	Description string              `json:"description,omitempty"`
}

// Interest is a personal interest shown in the sidebar.
type Interest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// Availability describes the internship the person is looking for.
type Availability struct {
	InternshipStart    string   `json:"internshipStart,omitempty"`
	InternshipDuration string   `json:"internshipDuration,omitempty"`
	PreferredLocations []string `json:"preferredLocations,omitempty"`
	WillingToRelocate  bool     `json:"willingToRelocate"`
	RemoteWork         string   `json:"remoteWork,omitempty"`
}

// End returns the end date, or "" for an ongoing entry.
func (e Experience) End() string { return deref(e.EndDate) }

// End returns the end date, or "" for an ongoing entry.
func (e Education) End() string { return deref(e.EndDate) }

// End returns the end date, or "" for an ongoing entry.
func (p Project) End() string { return deref(p.EndDate) }

// ProjectID returns the manual-ordering identifier of the project.
// It lets the formatter sort projects without knowing this type.
func (p Project) ProjectID() string { return p.ID }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
