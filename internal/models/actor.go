package models

// ActorProfile identifies the declared role of the caller. Profiles are
// self-declared per request; there is no authentication behind them.
type ActorProfile string

const (
	// ActorFaculty is faculty staff maintaining their own records.
	ActorFaculty ActorProfile = "FACULTY"
	// ActorDirection is the central scientific-direction office.
	ActorDirection ActorProfile = "DIRECTION"
)

// ValidActorProfile reports whether p is a known profile.
func ValidActorProfile(p ActorProfile) bool {
	return p == ActorFaculty || p == ActorDirection
}

// Actor is the declared identity attached to a request.
type Actor struct {
	Profile   ActorProfile
	FacultyID string
}

// IsDirection reports whether the actor is the direction office.
func (a Actor) IsDirection() bool {
	return a.Profile == ActorDirection
}

// OwnsFaculty reports whether a faculty actor may touch records of the
// given faculty. A faculty actor with no declared faculty id owns none.
func (a Actor) OwnsFaculty(facultyID string) bool {
	return a.Profile == ActorFaculty && a.FacultyID != "" && a.FacultyID == facultyID
}
