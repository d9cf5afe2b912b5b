package models

type Link struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type PersonalInformation struct {
	FullName string `json:"full_name"`
	JobTitle string `json:"job_title"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Links    Link   `json:"links"`
}

type Experience struct {
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
}

type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationYear string `json:"graduation_year"`
}

// ParsedResume is the structured content an upstream parser extracted from a
// resume file. The core never produces it, it only stores and returns it.
type ParsedResume struct {
	PersonalInformation PersonalInformation `json:"personal_information"`
	Summary             string              `json:"summary,omitempty"`
	Skills              []string            `json:"skills,omitempty"`
	Experience          []Experience        `json:"experience,omitempty"`
	Education           []Education         `json:"education,omitempty"`
}
