package content

import "sort"

// Site is the content behind the marketing pages (home, about, contact).
type Site struct {
	Profile      Profile         `json:"profile" validate:"required"`
	SocialLinks  []SocialLink    `json:"socialLinks" validate:"dive"`
	AboutCards   []AboutCard     `json:"aboutCards" validate:"dive"`
	Timeline     []TimelineEntry `json:"timeline" validate:"dive"`
	Skills       []SiteSkill     `json:"skills" validate:"dive"`
	VisionQuotes []VisionQuote   `json:"visionQuotes,omitempty" validate:"dive"`
}

// Profile is the short personal presentation used by the hero and about pages.
type Profile struct {
	Name      string `json:"name" validate:"required"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	Avatar    string `json:"avatar"`
	AvatarAlt string `json:"avatarAlt"`
	Location  string `json:"location,omitempty"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
}

// SocialLink is an outbound profile link.
type SocialLink struct {
	Platform string `json:"platform" validate:"required,oneof=linkedin github instagram twitter email"`
	URL      string `json:"url" validate:"required"`
	Label    string `json:"label"`
	Order    int    `json:"order"`
	Enabled  bool   `json:"enabled"`
}

// AboutCard is a titled paragraph on the about page.
type AboutCard struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Enabled     bool   `json:"enabled"`
}

// TimelineEntry is a milestone on the about page.
type TimelineEntry struct {
	Period      string `json:"period" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Enabled     bool   `json:"enabled"`
}

// SiteSkill is a skill badge on the home and about pages.
type SiteSkill struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category"`
	Order    int    `json:"order"`
	Enabled  bool   `json:"enabled"`
}

// VisionQuote is a rotating quote.
type VisionQuote struct {
	ID      string `json:"id" validate:"required"`
	Quote   string `json:"quote" validate:"required"`
	Author  string `json:"author,omitempty"`
	Order   int    `json:"order"`
	Enabled bool   `json:"enabled"`
}

// ShowcaseProject is a project on the projects pages.
type ShowcaseProject struct {
	ID                  string   `json:"id" validate:"required"`
	Title               string   `json:"title" validate:"required"`
	ShortDescription    string   `json:"shortDescription"`
	DetailedDescription string   `json:"detailedDescription"`
	Image               string   `json:"image,omitempty"`
	ImageAlt            string   `json:"imageAlt,omitempty"`
	Technologies        []string `json:"technologies"`
	GitHubURL           string   `json:"githubUrl,omitempty" validate:"omitempty,url"`
	LiveURL             string   `json:"liveUrl,omitempty" validate:"omitempty,url"`
	Featured            bool     `json:"featured"`
	Order               int      `json:"order"`
}

// EnabledSocialLinks returns the enabled links sorted by Order.
func (s *Site) EnabledSocialLinks() []SocialLink {
	return enabledByOrder(s.SocialLinks, func(l SocialLink) (bool, int) { return l.Enabled, l.Order })
}

// EnabledAboutCards returns the enabled cards sorted by Order.
func (s *Site) EnabledAboutCards() []AboutCard {
	return enabledByOrder(s.AboutCards, func(c AboutCard) (bool, int) { return c.Enabled, c.Order })
}

// EnabledTimeline returns the enabled milestones sorted by Order.
func (s *Site) EnabledTimeline() []TimelineEntry {
	return enabledByOrder(s.Timeline, func(e TimelineEntry) (bool, int) { return e.Enabled, e.Order })
}

// EnabledSkills returns the enabled skills sorted by Order.
func (s *Site) EnabledSkills() []SiteSkill {
	return enabledByOrder(s.Skills, func(k SiteSkill) (bool, int) { return k.Enabled, k.Order })
}

// EnabledQuotes returns the enabled quotes sorted by Order.
func (s *Site) EnabledQuotes() []VisionQuote {
	return enabledByOrder(s.VisionQuotes, func(q VisionQuote) (bool, int) { return q.Enabled, q.Order })
}

// SortShowcase orders projects by their explicit Order field, keeping file order on ties.
func SortShowcase(projects []ShowcaseProject) []ShowcaseProject {
	out := make([]ShowcaseProject, len(projects))
	copy(out, projects)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// FeaturedShowcase returns the featured projects in display order.
func FeaturedShowcase(projects []ShowcaseProject) []ShowcaseProject {
	var featured []ShowcaseProject
	for _, p := range SortShowcase(projects) {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

// FindShowcase returns the project with the given slug.
func FindShowcase(projects []ShowcaseProject, slug string) (ShowcaseProject, bool) {
	for _, p := range projects {
		if p.ID == slug {
			return p, true
		}
	}
	return ShowcaseProject{}, false
}

func enabledByOrder[T any](items []T, key func(T) (bool, int)) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if enabled, _ := key(item); enabled {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		_, oi := key(out[i])
		_, oj := key(out[j])
		return oi < oj
	})
	return out
}
