// Package dashboard holds the state the terminal dashboard renders and the
// rules that decide when to fetch and which results to keep.
//
// The Orchestrator is not safe for concurrent use. It is driven from a
// single update loop: intents and ticks return Effects, the caller runs the
// requested fetches elsewhere with Execute, and feeds each Result back
// through Apply on the same loop.
package dashboard

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/airwatch/internal/airquality"
)

// Effects is the work an operation asks the view layer to perform.
type Effects struct {
	Fetches []Request
	// Sequential asks for Fetches to run one after another in order.
	Sequential bool
	Timer      *Timer
}

func (e Effects) Empty() bool { return len(e.Fetches) == 0 && e.Timer == nil }

func (e *Effects) merge(o Effects) {
	e.Fetches = append(e.Fetches, o.Fetches...)
	if o.Timer != nil {
		e.Timer = o.Timer
	}
}

// Recorder observes orchestration events. A nil Recorder is allowed.
type Recorder interface {
	StaleResponse(c Category)
	SkippedRefresh(c Category)
	HistorySize(n int)
}

// Options configure an Orchestrator. Zero values pick defaults.
type Options struct {
	InitialSector   int
	Interval        time.Duration
	HistoryCapacity int
	TimeFormat      string
	NewID           func() string
	Recorder        Recorder
	Logger          *slog.Logger
}

// Orchestrator owns all dashboard state and is its only mutator.
type Orchestrator struct {
	opts Options

	errors     ErrorSurface
	registry   SectorRegistryCache
	history    *MetricsHistoryBuffer
	selection  SelectionController
	simulation SimulationController
	scroll     ScrollPositionGuard
	poller     *PollingScheduler
	viewport   Viewport

	status      *airquality.SectorStatus
	policy      *airquality.Policy
	policyGen   uint64
	loading     int
	lastUpdate  time.Time
	registrySeq uint64
}

func New(opts Options) *Orchestrator {
	if opts.TimeFormat == "" {
		opts.TimeFormat = "15:04:05"
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Orchestrator{
		opts:    opts,
		history: NewMetricsHistoryBuffer(opts.HistoryCapacity),
		poller:  NewPollingScheduler(opts.Interval),
	}
}

// AttachViewport sets the surface kept steady across refreshes.
func (o *Orchestrator) AttachViewport(v Viewport) {
	o.viewport = v
}

// Start loads the registry, selects the initial sector and arms the timer.
func (o *Orchestrator) Start() Effects {
	var eff Effects
	eff.Fetches = append(eff.Fetches, o.registryRequest(false))
	if o.opts.InitialSector > 0 {
		eff.merge(o.SelectSector(o.opts.InitialSector))
	} else {
		t := o.poller.Rearm()
		eff.Timer = &t
	}
	return eff
}

// SelectSector makes id the active sector. It always starts a new
// generation, drops any simulation, refreshes status and policy in the
// foreground and restarts the poll timer.
func (o *Orchestrator) SelectSector(id int) Effects {
	gen := o.selection.Select(id)
	o.simulation.Reset()
	o.opts.Logger.Debug("sector selected", "sector", id, "generation", gen)

	t := o.poller.Rearm()
	return Effects{
		Fetches: []Request{
			o.sectorRequest(CategoryStatus, id, gen, true),
			o.sectorRequest(CategoryPolicy, id, gen, true),
		},
		Timer: &t,
	}
}

// SelectAdjacent moves the selection delta rows through the registry.
func (o *Orchestrator) SelectAdjacent(delta int) (Effects, error) {
	id, _ := o.selection.Current()
	next, ok := o.registry.Neighbor(id, delta)
	if !ok {
		return Effects{}, ErrNoSelection
	}
	return o.SelectSector(next), nil
}

// RequestSimulation runs policyName against the current selection. An empty
// name uses the recommended policy.
func (o *Orchestrator) RequestSimulation(policyName string) (Effects, error) {
	id, ok := o.selection.Current()
	if !ok {
		return Effects{}, ErrNoSelection
	}
	gen := o.selection.Generation()
	if o.policyGen != gen || !o.policy.Actionable() {
		return Effects{}, ErrNoPolicy
	}
	if strings.TrimSpace(policyName) == "" {
		policyName = o.policy.Policy.Name
	}
	tok, err := o.simulation.Begin(gen, id)
	if err != nil {
		return Effects{}, err
	}

	ticket := o.scroll.Capture(o.viewport)
	req := o.sectorRequest(CategorySimulation, id, gen, true)
	req.PolicyName = policyName
	req.Token = tok
	req.ticket = ticket
	o.scroll.Attach(ticket)
	return Effects{Fetches: []Request{req}}, nil
}

// RequestRefresh refreshes the selected sector's status in the foreground,
// or the registry when nothing is selected.
func (o *Orchestrator) RequestRefresh() Effects {
	id, ok := o.selection.Current()
	if !ok {
		return Effects{Fetches: []Request{o.registryRequest(true)}}
	}
	return Effects{Fetches: []Request{o.sectorRequest(CategoryStatus, id, o.selection.Generation(), true)}}
}

// Tick handles a poll timer firing. Ticks from a torn-down timer do nothing.
func (o *Orchestrator) Tick(epoch uint64) Effects {
	if !o.poller.Accept(epoch) {
		return Effects{}
	}
	next := o.poller.Next()
	eff := Effects{Sequential: true, Timer: &next}

	if o.acquireBackground(CategoryRegistry) {
		eff.Fetches = append(eff.Fetches, o.newRegistryRequest(false))
	}
	if id, ok := o.selection.Current(); ok {
		gen := o.selection.Generation()
		for _, c := range []Category{CategoryStatus, CategoryPolicy} {
			if o.acquireBackground(c) {
				eff.Fetches = append(eff.Fetches, o.newSectorRequest(c, id, gen, false))
			}
		}
	}
	// Nothing issued means nothing to guard; a capture here would only
	// undo scrolling done before the next commit.
	if len(eff.Fetches) == 0 {
		return eff
	}
	ticket := o.scroll.Capture(o.viewport)
	for i := range eff.Fetches {
		eff.Fetches[i].ticket = ticket
		o.scroll.Attach(ticket)
	}
	return eff
}

// Apply commits a resolved fetch, or drops it when it is stale. Follow-up
// work, such as selecting the first sector of a fresh registry, is returned.
func (o *Orchestrator) Apply(res Result) Effects {
	req := res.Request
	o.poller.Release(req.Category)
	if req.Foreground && o.loading > 0 {
		o.loading--
	}
	o.scroll.Resolve(req.ticket)

	switch req.Category {
	case CategoryRegistry:
		return o.applyRegistry(res)
	case CategoryStatus:
		o.applyStatus(res)
	case CategoryPolicy:
		o.applyPolicy(res)
	case CategorySimulation:
		o.applySimulation(res)
	}
	return Effects{}
}

// Committed must be called once the view reflects the latest state. It
// restores scroll offsets whose refresh has fully resolved.
func (o *Orchestrator) Committed() {
	o.scroll.Restore(o.viewport)
}

func (o *Orchestrator) applyRegistry(res Result) Effects {
	req := res.Request
	if !o.registry.Accept(req.Seq) {
		o.stale(req)
		return Effects{}
	}
	if res.Err != nil {
		o.fail(req, res.Err)
		return Effects{}
	}
	o.registry.Replace(req.Seq, res.Sectors)
	o.errors.Clear(CategoryRegistry)
	o.lastUpdate = res.At

	if len(res.Sectors) == 0 {
		return Effects{}
	}
	id, ok := o.selection.Current()
	if ok && o.registry.Known(id) {
		return Effects{}
	}
	o.opts.Logger.Info("selection not in registry, selecting first sector", "sector", id, "first", res.Sectors[0].ID)
	return o.SelectSector(res.Sectors[0].ID)
}

func (o *Orchestrator) applyStatus(res Result) {
	req := res.Request
	if !o.selection.Matches(req.Generation) {
		o.stale(req)
		return
	}
	if res.Err != nil || res.Status == nil {
		o.fail(req, res.Err)
		return
	}
	o.status = copyStatus(res.Status)
	o.history.Append(HistoryEntry{
		Time:     res.At.Format(o.opts.TimeFormat),
		At:       res.At,
		PM25:     res.Status.Readings.PM25,
		PM10:     res.Status.Readings.PM10,
		NO2:      res.Status.Readings.NO2,
		CO:       res.Status.Readings.CO,
		SectorID: res.Status.SectorID,
		Sector:   res.Status.SectorName,
	})
	if o.opts.Recorder != nil {
		o.opts.Recorder.HistorySize(o.history.Len())
	}
	o.errors.Clear(CategoryStatus)
	o.lastUpdate = res.At
}

func (o *Orchestrator) applyPolicy(res Result) {
	req := res.Request
	if !o.selection.Matches(req.Generation) {
		o.stale(req)
		return
	}
	if res.Err != nil || res.Policy == nil {
		o.fail(req, res.Err)
		return
	}
	o.policy = copyPolicy(res.Policy)
	o.policyGen = req.Generation
	o.errors.Clear(CategoryPolicy)
}

func (o *Orchestrator) applySimulation(res Result) {
	req := res.Request
	if res.Err != nil || res.Simulation == nil {
		if !o.simulation.Fail(req.Token) {
			o.stale(req)
			return
		}
		o.fail(req, res.Err)
		return
	}
	if !o.simulation.Complete(req.Token, *res.Simulation) {
		o.stale(req)
		return
	}
	o.errors.Clear(CategorySimulation)
}

func (o *Orchestrator) fail(req Request, err error) {
	o.errors.Set(req.Category, failureMessage(req.Category))
	o.opts.Logger.Warn("fetch failed",
		"category", string(req.Category),
		"sector", req.SectorID,
		"request_id", req.ID,
		"foreground", req.Foreground,
		"status", airquality.StatusCode(err),
		"error", err,
	)
}

func (o *Orchestrator) stale(req Request) {
	o.opts.Logger.Debug("dropping stale response",
		"category", string(req.Category),
		"sector", req.SectorID,
		"request_id", req.ID,
		"generation", req.Generation,
	)
	if o.opts.Recorder != nil {
		o.opts.Recorder.StaleResponse(req.Category)
	}
}

func (o *Orchestrator) acquireBackground(c Category) bool {
	if o.poller.TryAcquire(c) {
		return true
	}
	o.opts.Logger.Debug("refresh skipped, previous still in flight", "category", string(c))
	if o.opts.Recorder != nil {
		o.opts.Recorder.SkippedRefresh(c)
	}
	return false
}

// registryRequest and sectorRequest are for intents: they always issue.
func (o *Orchestrator) registryRequest(foreground bool) Request {
	o.poller.Acquire(CategoryRegistry)
	return o.newRegistryRequest(foreground)
}

func (o *Orchestrator) sectorRequest(c Category, id int, gen uint64, foreground bool) Request {
	o.poller.Acquire(c)
	return o.newSectorRequest(c, id, gen, foreground)
}

func (o *Orchestrator) newRegistryRequest(foreground bool) Request {
	o.registrySeq++
	if foreground {
		o.loading++
	}
	return Request{ID: o.opts.NewID(), Category: CategoryRegistry, Seq: o.registrySeq, Foreground: foreground}
}

func (o *Orchestrator) newSectorRequest(c Category, id int, gen uint64, foreground bool) Request {
	if foreground {
		o.loading++
	}
	return Request{ID: o.opts.NewID(), Category: c, SectorID: id, Generation: gen, Foreground: foreground}
}

// Snapshot returns a copy of the current state for rendering.
func (o *Orchestrator) Snapshot() Snapshot {
	id, selected := o.selection.Current()
	return Snapshot{
		Sectors:         o.registry.Sectors(),
		SectorsLoaded:   o.registry.Loaded(),
		SelectedID:      id,
		HasSelection:    selected,
		Generation:      o.selection.Generation(),
		Status:          copyStatus(o.status),
		Policy:          copyPolicy(o.policy),
		PolicyCurrent:   o.policy != nil && o.policyGen == o.selection.Generation(),
		Simulation:      o.simulation.Result(),
		SimulationState: o.simulation.State(),
		History:         o.history.Entries(),
		Loading:         o.loading > 0,
		Error:           o.errors.Message(),
		ErrorCategory:   o.errors.Category(),
		LastUpdate:      o.lastUpdate,
		Interval:        o.poller.Interval(),
	}
}
