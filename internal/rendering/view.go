package rendering

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/Amorizz/portfolio/internal/content"
	"github.com/Amorizz/portfolio/internal/format"
)

// CVView is the CV document shaped for templates. Both renderers consume it so
// that section order, date ranges, and empty-state rules are decided once.
// Values are raw; each template escapes for its own output format.
type CVView struct {
	Lang   content.Lang
	Labels *format.Labels

	FullName string
	Title    string
	Tagline  string
	Summary  string

	Contacts  []ContactRow
	Skills    []SkillGroup
	Languages []content.SpokenLanguage
	Certs     []CertRow
	Interests []string

	Experience []EntryRow
	Education  []EntryRow
	Projects   []EntryRow

	Footer      string
	PrintMode   bool
	PDFURL      string
	PDFFilename string
	Avatar      string
}

// ContactRow is one sidebar contact line.
type ContactRow struct {
	Kind string // email, phone, location, website, linkedin, github
	Href string
	Text string
}

// SkillGroup is a titled list of skills.
type SkillGroup struct {
	Category string
	Skills   []SkillItem
}

// SkillItem is one skill; Level is only set when it should be displayed.
type SkillItem struct {
	Name  string
	Level string
}

// CertRow is one certification. Status is the localized label, empty when absent.
type CertRow struct {
	Name   string
	Issuer string
	Status string
}

// EntryRow is an experience, education, or project entry ready for display.
type EntryRow struct {
	Heading     string
	Role        string
	Dates       string
	Subheading  string
	Location    string
	Description []format.Segment
	Detail      string
	Bullets     []string
	Tags        string
}

// Options controls the on-screen renderer.
type Options struct {
	// PrintMode suppresses interactive chrome and fixes the page to one A4 sheet.
	PrintMode bool
	// PDFURL is the download target offered in screen mode.
	PDFURL string
	// Avatar is the photo URL (HTML) or file path (LaTeX). Empty omits the photo.
	Avatar string
	// Now sets the year used in the download filename. Zero means time.Now().
	Now time.Time
	// ProjectPriority overrides format.DefaultProjectPriority.
	ProjectPriority map[string]int
}

// visibleLevels are the skill levels worth printing next to a skill name.
var visibleLevels = map[string]bool{"Base": true, "Basic": true}

// BuildCVView shapes a ResumeDocument for rendering in lang.
func BuildCVView(doc *content.ResumeDocument, lang content.Lang, opts Options) *CVView {
	labels := format.For(lang)
	info := doc.PersonalInfo

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	priority := opts.ProjectPriority
	if priority == nil {
		priority = format.DefaultProjectPriority
	}

	v := &CVView{
		Lang:        lang,
		Labels:      labels,
		FullName:    info.FullName,
		Title:       info.Title,
		Tagline:     info.Tagline,
		Summary:     doc.ProfessionalSummary,
		Languages:   info.Languages,
		Footer:      labels.Availability,
		PrintMode:   opts.PrintMode,
		PDFURL:      opts.PDFURL,
		PDFFilename: format.PDFFilename(lang, now.Year()),
		Avatar:      opts.Avatar,
	}

	v.Contacts = contactRows(info)

	for _, cat := range doc.Skills.Technical {
		group := SkillGroup{Category: cat.Category}
		for _, s := range cat.Skills {
			item := SkillItem{Name: s.Name}
			if visibleLevels[s.Level] {
				item.Level = s.Level
			}
			group.Skills = append(group.Skills, item)
		}
		v.Skills = append(v.Skills, group)
	}

	for _, c := range doc.Certifications {
		v.Certs = append(v.Certs, CertRow{Name: c.Name, Issuer: c.Issuer, Status: labels.Status(c.Status)})
	}

	for _, i := range doc.Interests {
		v.Interests = append(v.Interests, i.Name)
	}

	for _, e := range doc.Experience {
		v.Experience = append(v.Experience, EntryRow{
			Heading:     e.Position,
			Dates:       format.FormatRange(e.StartDate, e.End(), e.Current, lang),
			Subheading:  e.Company,
			Location:    e.Location,
			Description: format.Emphasize(e.Description),
			Bullets:     e.Achievements,
			Tags:        format.JoinTags(e.Technologies),
		})
	}

	for _, e := range doc.Education {
		v.Education = append(v.Education, EntryRow{
			Heading:    e.Degree,
			Dates:      format.FormatRange(e.StartDate, e.End(), e.Current, lang),
			Subheading: e.Institution,
			Location:   e.Location,
			Detail:     e.Specialization,
			Bullets:    e.Achievements,
		})
	}

	for _, p := range format.SortByPriority(doc.Projects, priority) {
		v.Projects = append(v.Projects, EntryRow{
			Heading:     p.Name,
			Role:        p.Role,
			Dates:       format.FormatRange(p.StartDate, p.End(), p.Current, lang),
			Description: format.Emphasize(p.ShortDescription),
			Tags:        format.JoinTags(p.Technologies),
		})
	}

	return v
}

func contactRows(info content.PersonalInfo) []ContactRow {
	rows := []ContactRow{{Kind: "email", Href: "mailto:" + info.Email, Text: info.Email}}
	if info.Phone != "" {
		rows = append(rows, ContactRow{Kind: "phone", Href: "tel:" + strings.ReplaceAll(info.Phone, " ", ""), Text: info.Phone})
	}
	if info.Location != "" {
		rows = append(rows, ContactRow{Kind: "location", Text: info.Location})
	}
	if info.Website != "" {
		rows = append(rows, ContactRow{Kind: "website", Href: info.Website, Text: format.DisplayURL(info.Website)})
	}
	if info.LinkedIn != "" {
		rows = append(rows, ContactRow{Kind: "linkedin", Href: info.LinkedIn, Text: format.Handle(info.LinkedIn)})
	}
	if info.GitHub != "" {
		rows = append(rows, ContactRow{Kind: "github", Href: info.GitHub, Text: format.Handle(info.GitHub)})
	}
	return rows
}

// texPath makes a file path usable inside \includegraphics.
func texPath(p string) string {
	return filepath.ToSlash(p)
}
