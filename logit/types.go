// Package logit defines configuration options and sentinel errors for
// the QRE correspondence tracer.
package logit

import "errors"

// Corrector and step-control constants of the continuation method.
// These are properties of the algorithm, not user knobs.
const (
	// corrTol is the corrector convergence tolerance: a step is accepted
	// once the Newton correction distance falls to this value.
	corrTol = 1.0e-4

	// maxDist is the largest corrector distance before the whole
	// predictor step is rejected.
	maxDist = 0.4

	// maxContr is the largest tolerated contraction rate between
	// consecutive corrector iterations.
	maxContr = 0.6

	// contrEta perturbs the contraction-rate denominator to avoid
	// cancellation when the previous distance is tiny.
	contrEta = 0.1

	// minStep is the smallest usable step length; collapsing to it ends
	// the branch (or pops an active likelihood search).
	minStep = 1.0e-5

	// logThreshold is the probability cutoff for the coordinate policy:
	// probabilities below it are carried as logarithms.
	logThreshold = 1.0e-3
)

// Defaults for the user-tunable options.
const (
	// DefaultStepInitial is the predictor step length at the start of a trace.
	DefaultStepInitial = 0.03

	// DefaultMaxDecel is the maximum per-step deceleration factor.
	DefaultMaxDecel = 1.1

	// DefaultMaxLambda is the λ bound at which tracing stops.
	DefaultMaxLambda = 1.0e6

	// DefaultDecimals is the fixed-point output precision.
	DefaultDecimals = 6
)

// Sentinel errors returned by Trace.
var (
	// ErrNilGame indicates that a nil game was passed to Trace.
	ErrNilGame = errors.New("logit: game is nil")

	// ErrNilWriter indicates that a nil record writer was passed to Trace.
	ErrNilWriter = errors.New("logit: record writer is nil")

	// ErrBadObservations indicates an observation vector whose length does
	// not match the game's profile length.
	ErrBadObservations = errors.New("logit: observation vector length mismatch")

	// ErrOracleFault indicates that the payoff oracle produced a
	// non-finite value during tracing.
	ErrOracleFault = errors.New("logit: payoff oracle returned a non-finite value")

	// ErrBadStepInitial indicates a non-positive initial step option.
	ErrBadStepInitial = errors.New("logit: StepInitial must be positive")

	// ErrBadMaxDecel indicates a deceleration bound not greater than 1.
	ErrBadMaxDecel = errors.New("logit: MaxDecel must be greater than 1")

	// ErrBadMaxLambda indicates a non-positive λ bound.
	ErrBadMaxLambda = errors.New("logit: MaxLambda must be positive")

	// ErrBadDecimals indicates a negative output precision.
	ErrBadDecimals = errors.New("logit: Decimals must be non-negative")
)

// Options configures one invocation of Trace.
//
// StepInitial  - predictor step length at the start (must be > 0).
// MaxDecel     - maximum deceleration factor per step (must be > 1).
// MaxLambda    - stop once λ reaches this bound (must be > 0).
// StartLambda  - λ at the starting centroid (normally 0).
// TerminalOnly - emit only the final NE record instead of every step.
// Decimals     - fixed-point digits in emitted records.
// Observations - observed play frequencies of profile length; non-nil
// enables maximum-likelihood estimation along the branch.
type Options struct {
	StepInitial  float64   // initial predictor step length
	MaxDecel     float64   // maximum deceleration factor
	MaxLambda    float64   // λ bound terminating the trace
	StartLambda  float64   // starting λ
	TerminalOnly bool      // emit terminal record only
	Decimals     int       // output precision
	Observations []float64 // observed frequencies; nil disables MLE
}

// Option represents a functional option for configuring Trace.
type Option func(*Options)

// WithStepInitial sets the initial predictor step length.
// Must be positive; non-positive values cause ErrBadStepInitial.
func WithStepInitial(h float64) Option {
	if h <= 0 {
		// Panic to signal invalid configuration early.
		panic(ErrBadStepInitial.Error())
	}

	return func(o *Options) {
		o.StepInitial = h
	}
}

// WithMaxDecel sets the maximum deceleration factor applied to the step
// length after a difficult corrector phase.
// Must be greater than 1; other values cause ErrBadMaxDecel.
func WithMaxDecel(a float64) Option {
	if a <= 1 {
		panic(ErrBadMaxDecel.Error())
	}

	return func(o *Options) {
		o.MaxDecel = a
	}
}

// WithMaxLambda sets the λ bound at which tracing stops.
// Must be positive; other values cause ErrBadMaxLambda.
func WithMaxLambda(m float64) Option {
	if m <= 0 {
		panic(ErrBadMaxLambda.Error())
	}

	return func(o *Options) {
		o.MaxLambda = m
	}
}

// WithStartLambda sets the λ of the starting point. The start profile is
// always the centroid, so values other than 0 only make sense when the
// centroid is (close to) a QRE at that λ.
func WithStartLambda(l float64) Option {
	return func(o *Options) {
		o.StartLambda = l
	}
}

// WithTerminalOnly switches emission to a single terminal record marked
// NE, produced when the trace reaches MaxLambda.
func WithTerminalOnly() Option {
	return func(o *Options) {
		o.TerminalOnly = true
	}
}

// WithDecimals sets the fixed-point precision of emitted records.
// Must be non-negative; negative values cause ErrBadDecimals.
func WithDecimals(d int) Option {
	if d < 0 {
		panic(ErrBadDecimals.Error())
	}

	return func(o *Options) {
		o.Decimals = d
	}
}

// WithObservations enables maximum-likelihood estimation against the
// given observed-frequency vector. The vector length must equal the
// game's profile length; Trace validates this and returns
// ErrBadObservations otherwise.
func WithObservations(obs []float64) Option {
	return func(o *Options) {
		o.Observations = obs
	}
}

// DefaultOptions returns an Options struct initialized with the
// documented defaults. Use this as a starting point for further
// functional-option overrides.
func DefaultOptions() Options {
	return Options{
		StepInitial:  DefaultStepInitial,
		MaxDecel:     DefaultMaxDecel,
		MaxLambda:    DefaultMaxLambda,
		StartLambda:  0,
		TerminalOnly: false,
		Decimals:     DefaultDecimals,
		Observations: nil,
	}
}
