package models

// Faculty is an organizational unit owning activities. Static reference
// data: seeded once, never created, updated, or deleted afterwards.
type Faculty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
