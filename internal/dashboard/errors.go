package dashboard

import "errors"

// Category groups fetches for error clearing, in-flight tracking and metrics.
type Category string

const (
	CategoryRegistry   Category = "registry"
	CategoryStatus     Category = "status"
	CategoryPolicy     Category = "policy"
	CategorySimulation Category = "simulation"
)

// Categories lists every fetch category in refresh order.
var Categories = []Category{CategoryRegistry, CategoryStatus, CategoryPolicy, CategorySimulation}

// User-facing failure messages, one per category.
const (
	MsgRegistryFailed   = "Failed to connect to backend. Is the server running?"
	MsgStatusFailed     = "Failed to fetch sector status"
	MsgPolicyFailed     = "Failed to fetch policy"
	MsgSimulationFailed = "Failed to simulate policy"
)

// Intents the orchestrator refuses return one of these.
var (
	ErrNoSelection       = errors.New("no sector selected")
	ErrNoPolicy          = errors.New("no policy recommendation for the selected sector")
	ErrSimulationRunning = errors.New("a simulation is already running")
)

func failureMessage(c Category) string {
	switch c {
	case CategoryRegistry:
		return MsgRegistryFailed
	case CategoryStatus:
		return MsgStatusFailed
	case CategoryPolicy:
		return MsgPolicyFailed
	default:
		return MsgSimulationFailed
	}
}

// ErrorSurface holds the single user-visible error. A newer error replaces
// an older one; only a success of the same category clears it.
type ErrorSurface struct {
	message  string
	category Category
}

func (e *ErrorSurface) Set(c Category, message string) {
	e.category = c
	e.message = message
}

// Clear empties the slot if the current error belongs to c.
func (e *ErrorSurface) Clear(c Category) {
	if e.message != "" && e.category == c {
		e.message = ""
		e.category = ""
	}
}

func (e *ErrorSurface) Message() string    { return e.message }
func (e *ErrorSurface) Category() Category { return e.category }
