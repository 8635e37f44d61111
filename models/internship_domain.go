package models

// InternshipDomain is a static catalog entry. The catalog is read-only and ships
// with the binary; enrollments denormalize the selected titles into a single
// comma-joined string.
type InternshipDomain struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Icon        string   `json:"icon"`
	Price       int      `json:"price"`
	Recommended bool     `json:"recommended"`
	Features    []string `json:"features"`
	Subcourses  []string `json:"subcourses"`
}

var internshipDomains = []InternshipDomain{
	{
		ID:          "frontend",
		Title:       "Frontend Development",
		Subtitle:    "Professional Web UI Training",
		Icon:        "Code",
		Price:       2500,
		Recommended: true,
		Features: []string{
			"Live Project Work",
			"Practical Skills",
			"Internship Certificate",
			"Job Ready Training",
		},
		Subcourses: []string{
			"HTML",
			"CSS",
			"JavaScript",
			"Responsive Design",
			"UI Basics",
		},
	},
	{
		ID:       "backend",
		Title:    "Backend & Database",
		Subtitle: "Server-Side & Data Systems",
		Icon:     "Database",
		Price:    3500,
		Features: []string{
			"Live Project Work",
			"Practical Skills",
			"Internship Certificate",
			"Job Ready Training",
		},
		Subcourses: []string{
			"Backend Fundamentals",
			"API Basics",
			"Database Concepts",
			"SQL",
			"Server-Side Logic",
		},
	},
}

func InternshipDomains() []InternshipDomain {
	return internshipDomains
}

func FindDomain(id string) (InternshipDomain, bool) {
	for _, d := range internshipDomains {
		if d.ID == id {
			return d, true
		}
	}
	return InternshipDomain{}, false
}

func TotalPrice(domains []InternshipDomain) int {
	total := 0
	for _, d := range domains {
		total += d.Price
	}
	return total
}
