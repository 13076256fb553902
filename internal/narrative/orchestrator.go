package narrative

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/elemental-vibe/internal/llm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMinDuration is the default floor on a Run's total elapsed time.
const DefaultMinDuration = 4 * time.Second

// State is a step of the per-submission state machine:
// idle -> requesting -> (retrying -> requesting)* -> succeeded | failed.
type State string

// Orchestrator states
const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateRetrying   State = "retrying"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Orchestrator requests a narrative for an already decided reading. One
// Orchestrator may serve concurrent Runs; each Run owns its own state.
type Orchestrator struct {
	client      llm.Client
	tier        llm.ModelTier
	variant     Variant
	policy      RetryPolicy
	minDuration time.Duration
	sleep       Sleeper
	logger      *zap.Logger
	metrics     *Metrics
	observer    func(State)
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithTier selects the model tier (default llm.TierLite).
func WithTier(tier llm.ModelTier) Option {
	return func(o *Orchestrator) { o.tier = tier }
}

// WithVariant selects the response shape (default VariantFull).
func WithVariant(v Variant) Option {
	return func(o *Orchestrator) { o.variant = v }
}

// WithRetryPolicy overrides DefaultRetryPolicy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithMinDuration overrides DefaultMinDuration. Zero disables the floor.
func WithMinDuration(d time.Duration) Option {
	return func(o *Orchestrator) { o.minDuration = d }
}

// WithSleeper replaces the real-time sleeper used for backoff and the floor.
func WithSleeper(s Sleeper) Option {
	return func(o *Orchestrator) { o.sleep = s }
}

// WithLogger sets the structured logger (default no-op).
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithMetrics records attempts, retries and outcomes.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithStateObserver is called on every state transition of every Run.
func WithStateObserver(fn func(State)) Option {
	return func(o *Orchestrator) { o.observer = fn }
}

// New creates an Orchestrator calling client.
func New(client llm.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:      client,
		tier:        llm.TierLite,
		variant:     VariantFull,
		policy:      DefaultRetryPolicy(),
		minDuration: DefaultMinDuration,
		sleep:       SleepContext,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run tracks the state of a single Run. Transitions happen on the request
// goroutine and, after the join, on the caller's goroutine, never concurrently.
type run struct {
	state    State
	observer func(State)
}

func (r *run) set(s State) {
	r.state = s
	if r.observer != nil {
		r.observer(s)
	}
}

// Run requests the narrative for in. The collaborator call (with retries) and the
// minimum-duration floor run concurrently; Run returns only after both are done.
// On failure it returns a *Failure and no Outcome.
func (o *Orchestrator) Run(ctx context.Context, in Input) (*Outcome, error) {
	start := time.Now()
	r := &run{state: StateIdle, observer: o.observer}

	var (
		g        errgroup.Group
		outcome  *Outcome
		attempts int
		reqErr   error
	)
	g.Go(func() error {
		return o.sleep(ctx, o.minDuration)
	})
	g.Go(func() error {
		prompt, err := BuildPrompt(in, o.variant)
		if err != nil {
			reqErr = fmt.Errorf("failed to build prompt: %w", err)
			return reqErr
		}
		outcome, attempts, reqErr = o.request(ctx, r, prompt, ResponseSchema(o.variant))
		return reqErr
	})
	waitErr := g.Wait()

	switch {
	case reqErr != nil:
		return nil, o.finish(r, start, &Failure{Attempts: attempts, Cause: reqErr})
	case waitErr != nil:
		// request succeeded but the floor was interrupted
		return nil, o.finish(r, start, &Failure{Attempts: attempts, Cause: waitErr})
	}

	outcome.Attempts = attempts
	outcome.Elapsed = time.Since(start)
	r.set(StateSucceeded)
	o.metrics.observeRun(StateSucceeded, outcome.Elapsed)
	o.logger.Info("Narrative ready",
		zap.String("archetype", in.Archetype.Name),
		zap.Int("attempts", attempts),
		zap.Duration("elapsed", outcome.Elapsed))
	return outcome, nil
}

// finish records a terminal failure
func (o *Orchestrator) finish(r *run, start time.Time, f *Failure) error {
	elapsed := time.Since(start)
	r.set(StateFailed)
	o.metrics.observeRun(StateFailed, elapsed)
	o.logger.Error("Narrative unavailable",
		zap.Int("attempts", f.Attempts),
		zap.Duration("elapsed", elapsed),
		zap.Error(f.Cause))
	return f
}

// request performs the sequential attempt loop. It returns the number of attempts made.
func (o *Orchestrator) request(ctx context.Context, r *run, prompt string, schema *llm.Schema) (*Outcome, int, error) {
	maxAttempts := o.policy.MaxAttempts()
	for attempt := 1; ; attempt++ {
		r.set(StateRequesting)
		o.metrics.observeAttempt()

		text, err := o.client.GenerateStructured(ctx, prompt, schema, o.tier)
		if err == nil {
			outcome, perr := ParseResult(text, o.variant)
			if perr != nil {
				return nil, attempt, perr
			}
			return outcome, attempt, nil
		}

		if !IsTransient(err) || attempt >= maxAttempts {
			return nil, attempt, err
		}

		delay := o.policy.Delay(attempt - 1)
		r.set(StateRetrying)
		o.metrics.observeRetry()
		o.logger.Warn("Collaborator rate limited, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Duration("delay", delay),
			zap.Error(err))

		if err := o.sleep(ctx, delay); err != nil {
			return nil, attempt, err
		}
	}
}
