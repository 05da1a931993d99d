package models

// Document is the persisted collection: the whole stored state, always
// read and written as one unit.
type Document struct {
	Faculties  []Faculty  `json:"faculties"`
	Activities []Activity `json:"activities"`
}

// Clone returns a deep copy so callers can never alias stored data.
func (d *Document) Clone() *Document {
	out := &Document{
		Faculties:  make([]Faculty, len(d.Faculties)),
		Activities: make([]Activity, len(d.Activities)),
	}
	copy(out.Faculties, d.Faculties)
	for i, a := range d.Activities {
		links := make([]string, len(a.EvidenceLinks))
		copy(links, a.EvidenceLinks)
		a.EvidenceLinks = links
		out.Activities[i] = a
	}
	return out
}

// Faculty returns the referenced faculty, if seeded.
func (d *Document) Faculty(id string) (Faculty, bool) {
	for _, f := range d.Faculties {
		if f.ID == id {
			return f, true
		}
	}
	return Faculty{}, false
}
