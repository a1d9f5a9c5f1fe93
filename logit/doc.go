// Package logit traces the logistic quantal response equilibrium (QRE)
// correspondence of a finite normal-form game.
//
// The correspondence is the set of profiles σ with
//
//	σ(i, s) ∝ exp(λ · u(i, s; σ))
//
// for every player i, a one-dimensional manifold in (σ, λ)-space that
// starts at the uniform (centroid) profile at λ = 0 and approaches a
// Nash equilibrium as λ → ∞. Trace follows one branch of it with a
// predictor-corrector continuation method, in the spirit of Allgower and
// Georg's Numerical Continuation Methods: a tangent predictor step, a
// Newton corrector back onto the curve, adaptive step-length control
// driven by corrector distance and contraction rate, and a simple
// flip-the-orientation policy at bifurcations.
//
// Probabilities along the branch often decay exponentially in λ.
// Negative probabilities make the defining equations ill-defined, so
// coordinates below a cutoff are carried as logarithms and coordinates
// above it as plain probabilities, with per-strategy switching between
// the two representations as the trace proceeds.
//
// When an observed-frequency vector is supplied, the tracer additionally
// locates local maxima of the log-likelihood Σ oₖ·log σₖ along the
// branch: a sign change of the likelihood's directional derivative
// between consecutive points triggers a secant search in the step length
// (Newton-on-tangent mode), after which the saved trace state is
// restored and normal continuation resumes.
//
// Options:
//
//	- WithStepInitial(h):   initial step length (default 0.03).
//	- WithMaxDecel(a):      maximum deceleration per step (default 1.1).
//	- WithMaxLambda(m):     stop once λ reaches m (default 1e6).
//	- WithStartLambda(l):   starting λ (default 0).
//	- WithTerminalOnly():   emit a single NE record instead of every step.
//	- WithDecimals(d):      output precision (default 6).
//	- WithObservations(o):  enable maximum-likelihood estimation.
//
// Errors (sentinel):
//
//	- ErrNilGame       if the game is nil.
//	- ErrNilWriter     if the record writer is nil.
//	- ErrBadObservations if the observation vector length ≠ profile length.
//	- ErrOracleFault   if a payoff query returns a non-finite value.
//
// Step-length collapse without an active likelihood search is a normal
// end of the branch, not an error: Trace returns nil.
package logit
