package rendering

import "github.com/Amorizz/portfolio/internal/content"

func strPtr(s string) *string { return &s }

func testResume() *content.ResumeDocument {
	return &content.ResumeDocument{
		PersonalInfo: content.PersonalInfo{
			FullName: "Jane Doe",
			Title:    "Network & Systems Student",
			Tagline:  "Builder of 100% reliable things",
			Location: "Paris, France",
			Phone:    "+33 6 00 00 00 00",
			Email:    "jane@example.com",
			Website:  "https://www.example.com/",
			LinkedIn: "https://linkedin.com/in/jane",
			GitHub:   "https://github.com/jane",
			Languages: []content.SpokenLanguage{
				{Name: "French", Level: "Native"},
				{Name: "English", Level: "C1"},
			},
		},
		ProfessionalSummary: "Student in R&D with a taste for low_level code.",
		Experience: []content.Experience{{
			Company:      "Acme",
			Position:     "CTO",
			StartDate:    "2023-06-01",
			Current:      true,
			Location:     "Remote",
			Description:  "Built a TCP server in Go.",
			Achievements: []string{"Shipped v1"},
			Technologies: []string{"Go", "Docker"},
		}},
		Education: []content.Education{{
			Institution:    "EFREI",
			Degree:         "MSc Networks",
			Specialization: "Cybersecurity",
			StartDate:      "2021-09",
			EndDate:        strPtr("2026-06"),
			Location:       "Villejuif",
		}},
		Projects: []content.Project{
			{ID: "tiny-habits", Name: "Tiny Habits", Role: "Lead", StartDate: "2024-01", EndDate: strPtr("2024-03"), ShortDescription: "Habit tracker"},
			{ID: "archive-server", Name: "Archive Server", StartDate: "2023-01", EndDate: strPtr("2023-05"), ShortDescription: "Java client-server archive"},
		},
		Skills: content.Skills{Technical: []content.SkillCategory{{
			Category: "Languages",
			Skills: []content.Skill{
				{Name: "Go", Level: "Advanced"},
				{Name: "C#", Level: "Base"},
			},
		}}},
		Certifications: []content.Certification{
			{Name: "CCNA", Issuer: "Cisco"},
			{Name: "AWS Cloud", Issuer: "Amazon"},
		},
		Interests: []content.Interest{{Name: "Tennis"}},
	}
}

func emptyResume() *content.ResumeDocument {
	return &content.ResumeDocument{
		PersonalInfo: content.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com"},
	}
}
