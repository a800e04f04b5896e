package format

import (
	"fmt"

	"github.com/Amorizz/portfolio/internal/content"
)

// Labels holds every fixed UI string for one language.
type Labels struct {
	Lang content.Lang

	// CV sections
	Contact        string
	Skills         string
	Languages      string
	Interests      string
	Certifications string
	Profile        string
	Experience     string
	Education      string
	Projects       string
	Present        string
	Download       string
	// Availability is the CV footer line. The LaTeX variant uses its own wording.
	Availability      string
	AvailabilityLaTeX string

	// Navigation
	NavHome     string
	NavAbout    string
	NavProjects string
	NavContact  string
	NavCV       string

	// Pages
	HomeSkillsTitle      string
	HomeFeaturedTitle    string
	HomeCredentialsTitle string
	HomeCallToAction     string
	AboutWhoIAm          string
	AboutJourney         string
	AboutViewCV          string
	ProjectsTitle        string
	ProjectsFeatured     string
	ProjectsBack         string
	ProjectsSource       string
	ProjectsLive         string
	ContactTitle         string
	ContactName          string
	ContactEmail         string
	ContactSubject       string
	ContactMessage       string
	ContactSend          string
	ContactSent          string
	NotFound             string
	LanguageSwitch       string

	// Form validation, Form{TooShort,TooLong} take the length bound.
	FormRequired    string
	FormEmail       string
	FormTooShort    string
	FormTooLong     string
	LoginFailed     string
	TooManyRequests string

	statuses map[content.CertificationStatus]string
}

var labels = map[content.Lang]*Labels{
	content.English: {
		Lang:              content.English,
		Contact:           "Contact",
		Skills:            "Skills",
		Languages:         "Languages",
		Interests:         "Interests",
		Certifications:    "Certifications",
		Profile:           "Profile",
		Experience:        "Experience",
		Education:         "Education",
		Projects:          "Projects",
		Present:           "Present",
		Download:          "Download CV",
		Availability:      "Available for internship | Summer 2026 | National & international mobility | Driving license",
		AvailabilityLaTeX: "Available for 6-month internship --- September 2026 --- National & international mobility --- Driving license",

		NavHome:     "Home",
		NavAbout:    "About",
		NavProjects: "Projects",
		NavContact:  "Contact",
		NavCV:       "CV",

		HomeSkillsTitle:      "What I work with",
		HomeFeaturedTitle:    "Featured projects",
		HomeCredentialsTitle: "Credentials",
		HomeCallToAction:     "Let's build something together",
		AboutWhoIAm:          "Who I am",
		AboutJourney:         "My journey",
		AboutViewCV:          "View my CV",
		ProjectsTitle:        "Projects",
		ProjectsFeatured:     "Featured",
		ProjectsBack:         "Back to projects",
		ProjectsSource:       "View source code",
		ProjectsLive:         "Live demo",
		ContactTitle:         "Get in touch",
		ContactName:          "Name",
		ContactEmail:         "Email",
		ContactSubject:       "Subject",
		ContactMessage:       "Message",
		ContactSend:          "Send message",
		ContactSent:          "Thank you for your message! I'll get back to you soon.",
		NotFound:             "Page not found.",
		LanguageSwitch:       "Français",

		FormRequired:    "This field is required.",
		FormEmail:       "Please enter a valid email address.",
		FormTooShort:    "Please write at least %s characters.",
		FormTooLong:     "Please keep this under %s characters.",
		LoginFailed:     "Invalid password.",
		TooManyRequests: "Too many attempts. Please try again later.",

		statuses: map[content.CertificationStatus]string{
			content.StatusCompleted:  "Completed",
			content.StatusInProgress: "In Progress",
			content.StatusActive:     "Active",
		},
	},
	content.French: {
		Lang:              content.French,
		Contact:           "Contact",
		Skills:            "Compétences",
		Languages:         "Langues",
		Interests:         "Intérêts",
		Certifications:    "Certifications",
		Profile:           "Profil",
		Experience:        "Expérience",
		Education:         "Formation",
		Projects:          "Projets",
		Present:           "Présent",
		Download:          "Télécharger le CV",
		Availability:      "Disponible pour stage | Été 2026 | Mobilité nationale et internationale | Permis B",
		AvailabilityLaTeX: "Disponible pour stage de 6 mois --- Septembre 2026 --- Mobilité nationale et internationale --- Permis B",

		NavHome:     "Accueil",
		NavAbout:    "À propos",
		NavProjects: "Projets",
		NavContact:  "Contact",
		NavCV:       "CV",

		HomeSkillsTitle:      "Mes outils",
		HomeFeaturedTitle:    "Projets phares",
		HomeCredentialsTitle: "Certifications",
		HomeCallToAction:     "Construisons quelque chose ensemble",
		AboutWhoIAm:          "Qui je suis",
		AboutJourney:         "Mon parcours",
		AboutViewCV:          "Voir mon CV",
		ProjectsTitle:        "Projets",
		ProjectsFeatured:     "À la une",
		ProjectsBack:         "Retour aux projets",
		ProjectsSource:       "Voir le code source",
		ProjectsLive:         "Démo en ligne",
		ContactTitle:         "Me contacter",
		ContactName:          "Nom",
		ContactEmail:         "E-mail",
		ContactSubject:       "Sujet",
		ContactMessage:       "Message",
		ContactSend:          "Envoyer",
		ContactSent:          "Merci pour votre message ! Je vous répondrai rapidement.",
		NotFound:             "Page introuvable.",
		LanguageSwitch:       "English",

		FormRequired:    "Ce champ est obligatoire.",
		FormEmail:       "Veuillez saisir une adresse e-mail valide.",
		FormTooShort:    "Veuillez écrire au moins %s caractères.",
		FormTooLong:     "Veuillez rester sous %s caractères.",
		LoginFailed:     "Mot de passe incorrect.",
		TooManyRequests: "Trop de tentatives. Veuillez réessayer plus tard.",

		statuses: map[content.CertificationStatus]string{
			content.StatusCompleted:  "Terminé",
			content.StatusInProgress: "En cours",
			content.StatusActive:     "Actif",
		},
	},
}

// For returns the labels of lang, or of the default language for anything unsupported.
func For(lang content.Lang) *Labels {
	if l, ok := labels[lang]; ok {
		return l
	}
	return labels[content.DefaultLang]
}

// Status returns the localized certification status, or "" when the status is absent.
func (l *Labels) Status(s content.CertificationStatus) string {
	if s == "" {
		return ""
	}
	if label, ok := l.statuses[s]; ok {
		return label
	}
	return string(s)
}

// OtherLang is the language the switcher offers.
func (l *Labels) OtherLang() content.Lang {
	if l.Lang == content.French {
		return content.English
	}
	return content.French
}

// PDFFilename is the suggested download name for the CV PDF.
func PDFFilename(lang content.Lang, year int) string {
	if lang == content.French {
		return fmt.Sprintf("CV_Amaury_Dufrenot_%d.pdf", year)
	}
	return fmt.Sprintf("Resume_Amaury_Dufrenot_%d.pdf", year)
}
