package logit

import (
	"math"

	"github.com/katalvlaran/logitcr/matrix"
	"github.com/katalvlaran/logitcr/nfg"
)

// system evaluates the QRE defining equations F(x, λ) = 0 and their
// Jacobian for one game, under the current coordinate policy.
//
// For each player i with lead strategy 1:
//
//	row(i, 1):   Σ_s σ(i, s) − 1 = 0                       (sum-to-one)
//	row(i, s>1): log σ(i, s) − log σ(i, 1)
//	             − λ·(u(i, s; σ) − u(i, 1; σ)) = 0          (ratio)
//
// L equations in L+1 unknowns (the profile plus λ).
//
// The coordinate policy isLog marks, per strategy, whether the state
// vector carries the probability itself or its logarithm. Both the
// residual and the Jacobian reconstruct σ and log σ from the state
// before evaluating, so policy switches never change the equations, only
// the chart they are written in.
type system struct {
	game  *nfg.Game
	lead  int         // reference strategy per player; fixed at 1
	probs nfg.Profile // reconstructed probabilities, reused across calls
	logs  nfg.Profile // reconstructed log-probabilities, reused across calls
}

// newSystem builds the equation evaluator for g with workspace profiles.
func newSystem(g *nfg.Game) *system {
	return &system{game: g, lead: 1, probs: g.NewProfile(), logs: g.NewProfile()}
}

// reconstruct fills the probability and log-probability workspaces from
// the state vector x under policy isLog. Entry k of x is log σₖ when
// isLog[k-1] and σₖ otherwise.
func (s *system) reconstruct(x matrix.Vector, isLog []bool) {
	for k := 1; k <= s.game.ProfileLength(); k++ {
		if isLog[k-1] {
			s.probs.SetFlat(k, math.Exp(x.At(k)))
			s.logs.SetFlat(k, x.At(k))
		} else {
			s.probs.SetFlat(k, x.At(k))
			s.logs.SetFlat(k, math.Log(x.At(k)))
		}
	}
}

// payoff queries the expected-payoff oracle and validates finiteness.
func (s *system) payoff(pl, st int) (float64, error) {
	v := s.game.Payoff(pl, st, s.probs)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrOracleFault
	}

	return v, nil
}

// payoffDeriv queries the second-order oracle and validates finiteness.
func (s *system) payoffDeriv(pl, st, pl2, st2 int) (float64, error) {
	v := s.game.PayoffDeriv(pl, st, pl2, st2, s.probs)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrOracleFault
	}

	return v, nil
}

// lhs fills y with the residual F(x) of length L.
// Stage 1 (Prepare): reconstruct σ and log σ from the state.
// Stage 2 (Execute): one row per strategy; the lead strategy of each
// player gets the sum-to-one equation, every other one a ratio equation.
// Complexity: O(L·Πmᵢ) dominated by the payoff queries.
func (s *system) lhs(x matrix.Vector, isLog []bool, y matrix.Vector) error {
	s.reconstruct(x, isLog)
	lambda := x.At(x.Len())

	row := 0
	for pl := 1; pl <= s.game.NumPlayers(); pl++ {
		for st := 1; st <= s.game.NumStrategies(pl); st++ {
			row++
			if st == s.lead {
				// Sum-to-one equation
				sum := -1.0
				for j := 1; j <= s.game.NumStrategies(pl); j++ {
					sum += s.probs.At(pl, j)
				}
				y.SetAt(row, sum)

				continue
			}

			// Ratio equation
			uSt, err := s.payoff(pl, st)
			if err != nil {
				return err
			}
			uLead, err := s.payoff(pl, s.lead)
			if err != nil {
				return err
			}
			y.SetAt(row, s.logs.At(pl, st)-s.logs.At(pl, s.lead)-lambda*(uSt-uLead))
		}
	}

	return nil
}

// jacobian fills b with the derivative of F at x. b is stored transposed
// relative to the analytic Jacobian: b(col, row) holds ∂F_row/∂x_col, so
// b has L+1 rows (one per unknown, λ last) and L columns (one per
// equation). The QR factorization and the Newton step both consume this
// orientation, and the last row of the resulting Q spans the tangent.
//
// Per-entry cases follow the two equation kinds:
//
//	sum-to-one row: ∂/∂x(i, m) is σ(i, m) under a log coordinate
//	(chain rule through exp) and 1 under a linear one; ∂/∂λ = 0.
//	ratio row (i, s): own-player entries ±1 (log) or ±1/σ (linear) at
//	the lead and at s; cross-player entries −λ·(∂u(i,s)−∂u(i,lead)),
//	further scaled by σ·log σ under a log coordinate; ∂/∂λ is
//	u(i, lead; σ) − u(i, s; σ).
//
// Complexity: O(L²·Πmᵢ) dominated by the second-order payoff queries.
func (s *system) jacobian(x matrix.Vector, isLog []bool, b *matrix.Dense) error {
	s.reconstruct(x, isLog)
	lambda := x.At(x.Len())

	b.Zero()

	row := 0
	for pl := 1; pl <= s.game.NumPlayers(); pl++ {
		for st := 1; st <= s.game.NumStrategies(pl); st++ {
			row++
			if st == s.lead {
				// Sum-to-one equation: own-block entries only.
				col := 0
				for pl2 := 1; pl2 <= s.game.NumPlayers(); pl2++ {
					for m := 1; m <= s.game.NumStrategies(pl2); m++ {
						col++
						if pl2 != pl {
							continue
						}
						if isLog[col-1] {
							_ = b.Set(col, row, s.probs.At(pl2, m))
						} else {
							_ = b.Set(col, row, 1.0)
						}
					}
				}
				// ∂/∂λ stays zero.

				continue
			}

			// Ratio equation.
			col := 0
			for pl2 := 1; pl2 <= s.game.NumPlayers(); pl2++ {
				for m := 1; m <= s.game.NumStrategies(pl2); m++ {
					col++
					if pl2 == pl {
						switch m {
						case s.lead:
							if isLog[col-1] {
								_ = b.Set(col, row, -1.0)
							} else {
								_ = b.Set(col, row, -1.0/s.probs.At(pl2, m))
							}
						case st:
							if isLog[col-1] {
								_ = b.Set(col, row, 1.0)
							} else {
								_ = b.Set(col, row, 1.0/s.probs.At(pl2, m))
							}
						}

						continue
					}

					// Cross-player payoff-derivative entry.
					dSt, err := s.payoffDeriv(pl, st, pl2, m)
					if err != nil {
						return err
					}
					dLead, err := s.payoffDeriv(pl, s.lead, pl2, m)
					if err != nil {
						return err
					}
					entry := -lambda * (dSt - dLead)
					if isLog[col-1] {
						entry *= s.probs.At(pl2, m) * s.logs.At(pl2, m)
					}
					_ = b.Set(col, row, entry)
				}
			}

			// ∂/∂λ column entry.
			uLead, err := s.payoff(pl, s.lead)
			if err != nil {
				return err
			}
			uSt, err := s.payoff(pl, st)
			if err != nil {
				return err
			}
			_ = b.Set(b.Rows(), row, uLead-uSt)
		}
	}

	return nil
}
