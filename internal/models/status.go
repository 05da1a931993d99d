package models

// WorkflowEdition selects which lifecycle shape activities carry. The
// repository historically shipped two incompatible editions of the same
// entity; here the edition is a tagged variant fixed once per deployment.
type WorkflowEdition string

const (
	EditionValidation WorkflowEdition = "validation"
	EditionExecution  WorkflowEdition = "execution"
)

// State is one lifecycle state within an edition's enum.
type State string

// Validation edition states.
const (
	StatePending   State = "PENDING"
	StateValidated State = "VALIDATED"
	StateRejected  State = "REJECTED"
)

// Execution edition states.
const (
	StatePlanned     State = "PLANNED"
	StateExecuted    State = "EXECUTED"
	StateCancelled   State = "CANCELLED"
	StateNotExecuted State = "NOT_EXECUTED"
)

// ActivityStatus is the tagged status variant. Comment is meaningful in
// the validation edition; ExecutedOn in the execution edition (empty
// string means "unset").
type ActivityStatus struct {
	Edition    WorkflowEdition `json:"edition"`
	State      State           `json:"state"`
	Comment    string          `json:"comment,omitempty"`
	ExecutedOn string          `json:"executed_on,omitempty"`
}

// InitialState returns the state a new activity starts in.
func (e WorkflowEdition) InitialState() State {
	if e == EditionExecution {
		return StatePlanned
	}
	return StatePending
}

// States returns the edition's full state enum.
func (e WorkflowEdition) States() []State {
	if e == EditionExecution {
		return []State{StatePlanned, StateExecuted, StateCancelled, StateNotExecuted}
	}
	return []State{StatePending, StateValidated, StateRejected}
}

// ValidState reports whether s belongs to the edition's enum.
func (e WorkflowEdition) ValidState(s State) bool {
	for _, known := range e.States() {
		if s == known {
			return true
		}
	}
	return false
}

// NewStatus builds the status an activity persists with. An absent
// (empty) state collapses to the edition's initial value.
func (e WorkflowEdition) NewStatus(s State) ActivityStatus {
	if s == "" {
		s = e.InitialState()
	}
	return ActivityStatus{Edition: e, State: s}
}

var stateLabels = map[State]string{
	StatePending:     "Pendente",
	StateValidated:   "Validada",
	StateRejected:    "Rejeitada",
	StatePlanned:     "Planificada",
	StateExecuted:    "Executada",
	StateCancelled:   "Cancelada",
	StateNotExecuted: "Não executada",
}

// Label returns the fixed display string used in generated reports.
func (s State) Label() string {
	if label, ok := stateLabels[s]; ok {
		return label
	}
	return string(s)
}
