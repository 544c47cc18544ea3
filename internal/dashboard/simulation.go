package dashboard

import "github.com/jask/airwatch/internal/airquality"

// SimulationState is the lifecycle of the single what-if request.
type SimulationState int

const (
	SimulationIdle SimulationState = iota
	SimulationRunning
	SimulationComplete
	SimulationFailed
)

func (s SimulationState) String() string {
	switch s {
	case SimulationRunning:
		return "running"
	case SimulationComplete:
		return "complete"
	case SimulationFailed:
		return "failed"
	default:
		return "idle"
	}
}

// SimulationToken scopes a request to the selection generation it was
// issued under. Seq is never zero for an issued token.
type SimulationToken struct {
	Generation uint64
	Seq        uint64
}

// SimulationController runs at most one simulation at a time. Complete and
// Failed are terminal outcomes of the last run and accept a new Begin like
// Idle does.
type SimulationController struct {
	state    SimulationState
	token    SimulationToken
	seq      uint64
	result   *airquality.SimulationResult
	sectorID int
}

func (c *SimulationController) Begin(generation uint64, sectorID int) (SimulationToken, error) {
	if c.state == SimulationRunning {
		return SimulationToken{}, ErrSimulationRunning
	}
	c.seq++
	c.token = SimulationToken{Generation: generation, Seq: c.seq}
	c.state = SimulationRunning
	c.sectorID = sectorID
	return c.token, nil
}

// Complete stores result if tok is the running request. A false return means
// the request was superseded and its result must be dropped.
func (c *SimulationController) Complete(tok SimulationToken, result airquality.SimulationResult) bool {
	if !c.owns(tok) {
		return false
	}
	c.result = &result
	c.state = SimulationComplete
	return true
}

// Fail ends the running request, keeping any earlier result.
func (c *SimulationController) Fail(tok SimulationToken) bool {
	if !c.owns(tok) {
		return false
	}
	c.state = SimulationFailed
	return true
}

// Reset discards the result and abandons a running request.
func (c *SimulationController) Reset() {
	c.result = nil
	c.state = SimulationIdle
	c.token = SimulationToken{}
}

func (c *SimulationController) owns(tok SimulationToken) bool {
	return c.state == SimulationRunning && tok.Seq != 0 && tok == c.token
}

func (c *SimulationController) State() SimulationState { return c.state }
func (c *SimulationController) Running() bool          { return c.state == SimulationRunning }

func (c *SimulationController) Result() *airquality.SimulationResult {
	return copySimulation(c.result)
}
