package models

import "time"

// Category classifies a scientific activity.
type Category string

const (
	CategoryResearch              Category = "RESEARCH"
	CategoryExtension             Category = "EXTENSION"
	CategoryInnovation            Category = "INNOVATION"
	CategoryScientificEvent       Category = "SCIENTIFIC_EVENT"
	CategoryScientificPublication Category = "SCIENTIFIC_PUBLICATION"
	CategoryPostgraduate          Category = "POSTGRADUATE"
	CategoryCooperation           Category = "COOPERATION"
	CategoryTraining              Category = "TRAINING"
)

// Categories lists every accepted category.
var Categories = []Category{
	CategoryResearch,
	CategoryExtension,
	CategoryInnovation,
	CategoryScientificEvent,
	CategoryScientificPublication,
	CategoryPostgraduate,
	CategoryCooperation,
	CategoryTraining,
}

// ValidCategory reports whether c is a member of the category enum.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

var categoryLabels = map[Category]string{
	CategoryResearch:              "Pesquisa",
	CategoryExtension:             "Extensão",
	CategoryInnovation:            "Inovação",
	CategoryScientificEvent:       "Evento Científico",
	CategoryScientificPublication: "Publicação Científica",
	CategoryPostgraduate:          "Pós-graduação",
	CategoryCooperation:           "Cooperação",
	CategoryTraining:              "Formação",
}

// Label returns the pt-PT display name used in reports.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Period is the quarter or annual bucket an activity is reported under.
type Period string

const (
	PeriodT1     Period = "T1"
	PeriodT2     Period = "T2"
	PeriodT3     Period = "T3"
	PeriodT4     Period = "T4"
	PeriodAnnual Period = "ANNUAL"
)

// ValidPeriod reports whether p is a member of the period enum.
func ValidPeriod(p Period) bool {
	switch p {
	case PeriodT1, PeriodT2, PeriodT3, PeriodT4, PeriodAnnual:
		return true
	}
	return false
}

// Label returns the pt-PT display name used in reports.
func (p Period) Label() string {
	if p == PeriodAnnual {
		return "Anual"
	}
	return string(p)
}

// Activity is a single recorded scientific action tied to a faculty and year.
// Start and end dates are free calendar-date strings with no enforced
// ordering between them.
type Activity struct {
	ID            string         `json:"id"`
	Year          int            `json:"year"`
	FacultyID     string         `json:"faculty_id"`
	Category      Category       `json:"category"`
	Period        Period         `json:"period"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	StartDate     string         `json:"start_date,omitempty"`
	EndDate       string         `json:"end_date,omitempty"`
	EvidenceLinks []string       `json:"evidence_links"`
	Status        ActivityStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ActivityDraft carries caller-supplied fields for a new activity.
// State is optional; when empty the edition's initial state applies.
type ActivityDraft struct {
	Year          int
	FacultyID     string
	Category      Category
	Period        Period
	Title         string
	Description   string
	StartDate     string
	EndDate       string
	EvidenceLinks []string
	State         State
}

// ActivityFilter narrows listings. Zero values mean "no filter"; both
// criteria are optional and independently applicable.
type ActivityFilter struct {
	Year      int
	FacultyID string
}
