package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/onnwee/stream-tracker/telemetry"
)

// Notifier posts a line of text to the output channel. Implementations must
// swallow delivery errors; a failed report never aborts a tracking cycle.
type Notifier interface {
	Send(text string)
}

// Joiner joins and leaves a stream's chat on the chat platform.
type Joiner interface {
	Join(stream string)
	Depart(stream string)
}

// LiveChecker reports the current viewer count for a stream, with live=false
// when the stream is offline.
type LiveChecker interface {
	ViewerCount(ctx context.Context, stream string) (count int, live bool, err error)
}

// Exclusions filters known automated accounts out of reports.
type Exclusions interface {
	IsExcluded(identity string) bool
	Reload(ctx context.Context) int
}

// session bundles the state owned by one tracking run. Each session gets its
// own observer, tally and raid ledger, so concurrent sessions never commingle
// counts.
type session struct {
	id        uuid.UUID
	stream    string
	observer  *Observer
	tally     *Tally
	raids     *RaidLedger
	cancel    context.CancelFunc
	startedAt time.Time
}

// Coordinator is the session registry: it owns every running tracking
// session, keyed by stream name, and enforces at most one session per stream.
type Coordinator struct {
	out      Notifier
	chat     Joiner
	live     LiveChecker
	bots     Exclusions
	clock    clockwork.Clock
	interval time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

// NewCoordinator wires a registry from its collaborators. interval is the
// pause between reporting cycles (the classic value is 1200s).
func NewCoordinator(out Notifier, chat Joiner, live LiveChecker, bots Exclusions, clock clockwork.Clock, interval time.Duration) *Coordinator {
	return &Coordinator{
		out:      out,
		chat:     chat,
		live:     live,
		bots:     bots,
		clock:    clock,
		interval: interval,
		sessions: make(map[string]*session),
	}
}

// Start begins tracking stream. It is a no-op (returning false) when the
// stream is already tracked. Otherwise it announces the start, joins the
// stream's chat and spawns the reporting loop, which runs until Stop.
func (c *Coordinator) Start(ctx context.Context, stream string) bool {
	c.mu.Lock()
	if _, ok := c.sessions[stream]; ok {
		c.mu.Unlock()
		return false
	}
	sctx, cancel := context.WithCancel(ctx)
	s := &session{
		id:        uuid.New(),
		stream:    stream,
		observer:  NewObserver(),
		tally:     NewTally(),
		raids:     NewRaidLedger(),
		cancel:    cancel,
		startedAt: c.clock.Now(),
	}
	c.sessions[stream] = s
	n := len(c.sessions)
	c.mu.Unlock()

	telemetry.CountSessionStart()
	telemetry.SetActiveSessions(n)
	slog.Info("tracking started", slog.String("stream", stream), slog.String("session", s.id.String()))
	c.out.Send(fmt.Sprintf("Started tracking %s.", stream))
	c.chat.Join(stream)
	go c.run(sctx, s)
	return true
}

// Stop ends the tracking session for stream, if one exists. It cancels the
// loop, announces the stop, leaves the stream's chat, reloads the exclusion
// list, emits the end-of-session summary and clears the session state.
// Returns false (with no side effects) when the stream was not tracked.
func (c *Coordinator) Stop(ctx context.Context, stream string) bool {
	c.mu.Lock()
	s, ok := c.sessions[stream]
	if !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.sessions, stream)
	n := len(c.sessions)
	c.mu.Unlock()

	s.cancel()
	telemetry.CountSessionStop()
	telemetry.SetActiveSessions(n)
	c.out.Send(fmt.Sprintf("Stopped tracking %s as the link was removed.", stream))
	c.chat.Depart(stream)
	size := c.bots.Reload(ctx)
	slog.Info("exclusion list reloaded", slog.Int("size", size))
	c.summarize(s)
	s.tally.Clear()
	s.raids.Clear()
	slog.Info("tracking stopped", slog.String("stream", stream), slog.String("session", s.id.String()))
	return true
}

// Observe records a chat message author against the stream's session. Events
// for untracked streams are dropped.
func (c *Coordinator) Observe(stream, identity string) {
	c.mu.Lock()
	s, ok := c.sessions[stream]
	c.mu.Unlock()
	if !ok {
		return
	}
	s.observer.Record(identity)
	telemetry.CountChatMessage()
	slog.Debug("chat user detected", slog.String("stream", stream), slog.String("user", identity))
}

// RecordRaid adds a raider to the stream's ledger and thanks them on the
// output channel. Repeat raids by the same raider are acknowledged again but
// appear once in the summary.
func (c *Coordinator) RecordRaid(stream, raider string, viewers int) {
	c.mu.Lock()
	s, ok := c.sessions[stream]
	c.mu.Unlock()
	if !ok {
		return
	}
	if s.raids.Add(raider) {
		telemetry.CountRaid()
	}
	slog.Info("raid detected", slog.String("stream", stream), slog.String("raider", raider), slog.Int("viewers", viewers))
	c.out.Send(fmt.Sprintf("Thanks %s for the raid with %d viewers!", raider, viewers))
}

// Active returns the currently tracked streams, sorted.
func (c *Coordinator) Active() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.sessions))
	for stream := range c.sessions {
		out = append(out, stream)
	}
	sort.Strings(out)
	return out
}

// StopAll ends every running session (shutdown path).
func (c *Coordinator) StopAll(ctx context.Context) {
	for _, stream := range c.Active() {
		c.Stop(ctx, stream)
	}
}

// run is the tracking loop: one report immediately, then one per interval,
// until the session is cancelled. The loop has no internal exit condition.
func (c *Coordinator) run(ctx context.Context, s *session) {
	for {
		c.reportOnce(ctx, s)
		select {
		case <-ctx.Done():
			return
		case <-c.clock.After(c.interval):
		}
	}
}

// reportOnce executes a single reporting cycle: drain the observer, filter
// exclusions, report who chatted, update the tally, then report the live
// viewer count.
func (c *Coordinator) reportOnce(ctx context.Context, s *session) {
	drained := s.observer.DrainAndClear()
	kept := make([]string, 0, len(drained))
	for _, u := range drained {
		if !c.bots.IsExcluded(u) {
			kept = append(kept, u)
		}
	}

	switch {
	case len(kept) > 0:
		c.out.Send(fmt.Sprintf("Active users interacting in %s: %s", s.stream, strings.Join(kept, ", ")))
		for _, u := range kept {
			s.tally.Increment(u)
		}
	case len(drained) > 0:
		c.out.Send(fmt.Sprintf("No non-bot chat users detected for %s.", s.stream))
	default:
		c.out.Send(fmt.Sprintf("No active chat users detected for %s.", s.stream))
	}

	count, live, err := c.live.ViewerCount(ctx, s.stream)
	if err != nil {
		// Metadata failures are reported as offline, never fatal.
		slog.Warn("stream metadata fetch failed", slog.String("stream", s.stream), slog.Any("err", err))
		live = false
	}
	if live {
		c.out.Send(fmt.Sprintf("%s currently has %d viewers.", s.stream, count))
	} else {
		c.out.Send(fmt.Sprintf("%s is not currently live.", s.stream))
	}

	// Defensive second clear, distinct from the drain: anything recorded
	// during this cycle's sends belongs to nobody.
	s.observer.Clear()
	telemetry.CountReportCycle()
}

// summarize renders the end-of-session report: identities that appeared in
// exactly one cycle, identities that appeared in several, then raiders. Each
// empty partition gets an explicit "none" line.
func (c *Coordinator) summarize(s *session) {
	once, multi := s.tally.Partition()
	if len(once) > 0 {
		c.out.Send(fmt.Sprintf("Users who appeared in only one list: %s", strings.Join(once, ", ")))
	} else {
		c.out.Send("No users appeared in only one list.")
	}
	if len(multi) > 0 {
		c.out.Send(fmt.Sprintf("Users who appeared in multiple lists: %s", strings.Join(multi, ", ")))
	} else {
		c.out.Send("No users appeared in more than one list.")
	}
	if raiders := s.raids.Names(); len(raiders) > 0 {
		c.out.Send(fmt.Sprintf("Users who raided the channel: %s", strings.Join(raiders, ", ")))
	} else {
		c.out.Send("No users raided the channel.")
	}
}
