package logit

import (
	"math"

	"github.com/katalvlaran/logitcr/matrix"
	"github.com/katalvlaran/logitcr/nfg"
)

// logLike returns the log-likelihood Σₖ oₖ·log σₖ of the observed
// frequencies obs under the mixed profile p.
func logLike(obs []float64, p nfg.Profile) float64 {
	var sum float64
	for k := 1; k <= p.Length(); k++ {
		sum += obs[k-1] * math.Log(p.AtFlat(k))
	}

	return sum
}

// diffLogLike returns the directional derivative of the log-likelihood
// along the tangent t at the state x, in current coordinates: a log
// coordinate contributes oₖ·tₖ directly (d log σ = dx), a linear one
// contributes oₖ·tₖ/σₖ.
//
// A sign change of this value between consecutive trace points brackets
// a local extremum of the likelihood along the branch.
func diffLogLike(obs []float64, x matrix.Vector, isLog []bool, t matrix.Vector) float64 {
	var sum float64
	for k := 1; k <= len(obs); k++ {
		if isLog[k-1] {
			sum += obs[k-1] * t.At(k)
		} else {
			sum += obs[k-1] * t.At(k) / x.At(k)
		}
	}

	return sum
}

// mleSave is the push/pop slot for Newton-on-tangent mode: the trace
// state captured when a likelihood extremum is bracketed, restored once
// the secant search in the step length has converged.
type mleSave struct {
	x     matrix.Vector // state vector at push time
	h     float64       // step length at push time
	isLog []bool        // coordinate policy at push time
}

// push captures the current state into the slot.
func (m *mleSave) push(x matrix.Vector, h float64, isLog []bool) {
	m.x = x.Clone()
	m.h = h
	m.isLog = append(m.isLog[:0], isLog...)
}

// pop restores the captured state into the given targets and returns the
// saved step length.
func (m *mleSave) pop(x matrix.Vector, isLog []bool) float64 {
	x.CopyFrom(m.x)
	copy(isLog, m.isLog)

	return m.h
}
