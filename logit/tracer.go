package logit

import (
	"io"
	"math"

	"github.com/katalvlaran/logitcr/matrix"
	"github.com/katalvlaran/logitcr/nfg"
)

// Trace follows one branch of the logit QRE correspondence of g,
// starting at the centroid profile, and writes records to w.
//
// Stage 1 (Validate): build Options from opts, check the game, writer
// and observation vector.
// Stage 2 (Prepare): choose the starting coordinate policy from the
// centroid, assemble the state vector, factor the initial Jacobian.
// Stage 3 (Execute): run the predictor-corrector loop until λ reaches
// MaxLambda or the step length collapses.
//
// Returns nil on both normal termination and step-length collapse;
// ErrOracleFault if a payoff query produces a non-finite value.
func Trace(g *nfg.Game, w io.Writer, opts ...Option) error {
	// 1) Build and validate Options
	cfg := DefaultOptions()
	var opt Option
	for _, opt = range opts { // apply each functional option
		opt(&cfg)
	}

	// 2) Validate the game
	if g == nil {
		return ErrNilGame
	}

	// 3) Validate the writer
	if w == nil {
		return ErrNilWriter
	}

	// 4) Validate the observation vector, when present
	if cfg.Observations != nil && len(cfg.Observations) != g.ProfileLength() {
		return ErrBadObservations
	}

	tr := newTracer(g, w, cfg)

	return tr.run()
}

// tracer owns the full state of one Trace invocation: the state vector,
// coordinate policy, tangent, linear-algebra workspace, and the MLE
// push/pop slot. Nothing survives the invocation.
type tracer struct {
	game *nfg.Game
	cfg  Options
	sys  *system
	out  *recordWriter

	n int // profile length L; the state vector has n+1 entries

	x     matrix.Vector // current point on the curve, λ last
	u     matrix.Vector // predictor/corrector iterate
	t     matrix.Vector // unit tangent at x
	newT  matrix.Vector // tangent workspace at u
	y     matrix.Vector // residual workspace, length n
	b     *matrix.Dense // Jacobian storage, (n+1)×n
	q     *matrix.Dense // orthogonal accumulator, (n+1)×(n+1)
	isLog []bool        // coordinate policy, one flag per strategy

	omega      float64 // orientation of traversal, ±1
	h          float64 // current step length
	newton     bool    // Newton-on-tangent (MLE secant) mode active
	restarting bool    // first step after popping out of Newton mode
	save       mleSave // MLE push/pop slot
}

// newTracer allocates the tracer workspace for g.
func newTracer(g *nfg.Game, w io.Writer, cfg Options) *tracer {
	n := g.ProfileLength()
	b, _ := matrix.NewDense(n+1, n)
	q, _ := matrix.NewDense(n+1, n+1)

	return &tracer{
		game:  g,
		cfg:   cfg,
		sys:   newSystem(g),
		out:   newRecordWriter(w, g, cfg.Decimals, cfg.Observations),
		n:     n,
		x:     matrix.NewVector(n + 1),
		u:     matrix.NewVector(n + 1),
		t:     matrix.NewVector(n + 1),
		newT:  matrix.NewVector(n + 1),
		y:     matrix.NewVector(n),
		b:     b,
		q:     q,
		isLog: make([]bool, n),
		omega: 1.0,
		h:     cfg.StepInitial,
	}
}

// refactor recomputes the Jacobian at p and its QR factorization.
func (tr *tracer) refactor(p matrix.Vector) error {
	if err := tr.sys.jacobian(p, tr.isLog, tr.b); err != nil {
		return err
	}

	return matrix.QRDecomp(tr.b, tr.q)
}

// tangent extracts the current tangent (last row of q) into dst.
func (tr *tracer) tangent(dst matrix.Vector) {
	_ = tr.q.Row(tr.q.Rows(), dst)
}

// popSearch leaves Newton-on-tangent mode: restore the saved trace
// state, refactor at it, and flag the next step as a restart so the
// extremum is not immediately re-bracketed.
func (tr *tracer) popSearch() error {
	tr.h = tr.save.pop(tr.x, tr.isLog)
	tr.newton = false
	tr.restarting = true

	if err := tr.refactor(tr.x); err != nil {
		return err
	}
	tr.tangent(tr.t)

	return nil
}

// run executes the predictor-corrector loop.
func (tr *tracer) run() error {
	// Starting coordinate policy from the centroid profile.
	start := tr.game.Centroid()
	for k := 1; k <= tr.n; k++ {
		tr.isLog[k-1] = start.AtFlat(k) < logThreshold
	}

	// State vector: centroid in the starting chart, λ last.
	for k := 1; k <= tr.n; k++ {
		if tr.isLog[k-1] {
			tr.x.SetAt(k, math.Log(start.AtFlat(k)))
		} else {
			tr.x.SetAt(k, start.AtFlat(k))
		}
	}
	tr.x.SetAt(tr.n+1, tr.cfg.StartLambda)

	if !tr.cfg.TerminalOnly {
		if err := tr.out.emit(tr.x, tr.isLog, false); err != nil {
			return err
		}
	}

	// Initial factorization and tangent.
	if err := tr.refactor(tr.x); err != nil {
		return err
	}
	tr.tangent(tr.t)

	for tr.x.At(tr.n+1) >= 0.0 && tr.x.At(tr.n+1) < tr.cfg.MaxLambda {
		if math.Abs(tr.h) <= minStep {
			// Step length collapsed. In an active likelihood search this is
			// convergence of the secant iteration: pop and resume tracing.
			// Otherwise the branch ends here.
			if tr.newton {
				if err := tr.popSearch(); err != nil {
					return err
				}

				continue
			}

			return nil
		}

		// Predictor step along the oriented tangent.
		for k := 1; k <= tr.n+1; k++ {
			tr.u.SetAt(k, tr.x.At(k)+tr.h*tr.omega*tr.t.At(k))
		}

		decel := 1.0 / tr.cfg.MaxDecel // deceleration factor for this step
		if err := tr.refactor(tr.u); err != nil {
			return err
		}

		// Corrector: Newton iteration back onto the curve, monitoring the
		// correction distance and the contraction rate between iterations.
		accept := true
		iter := 1
		disto := 0.0
		for {
			if err := tr.sys.lhs(tr.u, tr.isLog, tr.y); err != nil {
				return err
			}
			dist := matrix.NewtonStep(tr.q, tr.b, tr.u, tr.y)
			if dist >= maxDist {
				accept = false

				break
			}

			decel = math.Max(decel, math.Sqrt(dist/maxDist)*tr.cfg.MaxDecel)
			if iter >= 2 {
				contr := dist / (disto + corrTol*contrEta)
				if contr > maxContr {
					accept = false

					break
				}
				decel = math.Max(decel, math.Sqrt(contr/maxContr)*tr.cfg.MaxDecel)
			}

			if dist <= corrTol {
				break // corrector converged
			}
			disto = dist
			iter++
		}

		if !accept {
			// Step rejected: shrink and retry, or end the branch (popping an
			// active likelihood search first, as above).
			tr.h /= tr.cfg.MaxDecel
			if math.Abs(tr.h) <= minStep {
				if tr.newton {
					if err := tr.popSearch(); err != nil {
						return err
					}

					continue
				}

				return nil
			}

			continue
		}

		if decel > tr.cfg.MaxDecel {
			decel = tr.cfg.MaxDecel
		}

		if tr.cfg.Observations != nil {
			// The last row of the current factorization's Q, computed at
			// the predicted point, serves as the tangent at the corrected
			// point.
			tr.tangent(tr.newT)

			if !tr.restarting &&
				diffLogLike(tr.cfg.Observations, tr.x, tr.isLog, tr.t)*
					diffLogLike(tr.cfg.Observations, tr.u, tr.isLog, tr.newT) < 0.0 {
				// The likelihood's directional derivative changed sign across
				// this step: a local extremum lies between x and u. Save the
				// trace state and switch to secant iteration in h.
				tr.save.push(tr.x, tr.h, tr.isLog)
				tr.newton = true
			}
		}

		if tr.newton {
			// Secant step in the step length toward the zero of the
			// directional derivative.
			tr.tangent(tr.newT)
			dllU := diffLogLike(tr.cfg.Observations, tr.u, tr.isLog, tr.newT)
			dllX := diffLogLike(tr.cfg.Observations, tr.x, tr.isLog, tr.t)
			tr.h *= -dllU / (dllU - dllX)
		} else {
			// Standard step-length adaptation.
			tr.h = math.Abs(tr.h / decel)
		}

		tr.restarting = false

		// Commit the corrected point.
		tr.x.CopyFrom(tr.u)

		if !tr.cfg.TerminalOnly {
			if err := tr.out.emit(tr.x, tr.isLog, false); err != nil {
				return err
			}
		}

		// Coordinate policy: probabilities crossing the threshold switch
		// representation; any switch invalidates the factorization.
		recompute := false
		for k := 1; k <= tr.n; k++ {
			if !tr.isLog[k-1] && tr.x.At(k) < logThreshold {
				tr.x.SetAt(k, math.Log(tr.x.At(k)))
				tr.isLog[k-1] = true
				recompute = true
			} else if tr.isLog[k-1] && math.Exp(tr.x.At(k)) > logThreshold {
				tr.x.SetAt(k, math.Exp(tr.x.At(k)))
				tr.isLog[k-1] = false
				recompute = true
			}
		}
		if recompute {
			if err := tr.refactor(tr.x); err != nil {
				return err
			}
		}

		// Tangent update with bifurcation check: a reversed tangent means
		// the curve's orientation flipped at a simple fold, so flip ω and
		// keep traversing. Someday this deserves a real branch analysis.
		tr.tangent(tr.newT)
		if tr.t.Dot(tr.newT) < 0.0 {
			tr.omega = -tr.omega
		}
		tr.t.CopyFrom(tr.newT)
	}

	if tr.cfg.TerminalOnly {
		return tr.out.emit(tr.x, tr.isLog, true)
	}

	return nil
}
