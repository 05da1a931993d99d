package dto

// ActivityListFilter captures query parameters for listing activities.
type ActivityListFilter struct {
	Year      int
	FacultyID string
}
