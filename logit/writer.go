package logit

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/logitcr/matrix"
	"github.com/katalvlaran/logitcr/nfg"
)

// recordWriter emits one comma-separated line per trace record:
// λ first, then the L probabilities in player-major order (always as
// linear values; log coordinates are exponentiated), then the
// log-likelihood when MLE is active. Terminal records replace λ with the
// literal NE marker.
//
// Lines are assembled whole and written with a single Write call, so a
// consumer never observes a partial record.
type recordWriter struct {
	w        io.Writer
	decimals int         // fixed-point precision
	obs      []float64   // nil unless MLE is active
	probs    nfg.Profile // workspace for likelihood evaluation
}

// newRecordWriter builds a writer for g's profiles over w.
func newRecordWriter(w io.Writer, g *nfg.Game, decimals int, obs []float64) *recordWriter {
	return &recordWriter{w: w, decimals: decimals, obs: obs, probs: g.NewProfile()}
}

// fixed formats v in fixed-point notation at the configured precision.
func (rw *recordWriter) fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', rw.decimals, 64)
}

// emit writes one record for the state x under policy isLog. Terminal
// records carry the NE marker in place of λ.
func (rw *recordWriter) emit(x matrix.Vector, isLog []bool, terminal bool) error {
	var sb strings.Builder

	// λ field (or the NE marker)
	if terminal {
		sb.WriteString("NE")
	} else {
		sb.WriteString(rw.fixed(x.At(x.Len())))
	}

	// Probability fields, reconstructed to linear values.
	var k int
	var p float64
	for k = 1; k < x.Len(); k++ {
		if isLog[k-1] {
			p = math.Exp(x.At(k))
		} else {
			p = x.At(k)
		}
		rw.probs.SetFlat(k, p)
		sb.WriteByte(',')
		sb.WriteString(rw.fixed(p))
	}

	// Log-likelihood field when MLE is active.
	if rw.obs != nil {
		sb.WriteByte(',')
		sb.WriteString(rw.fixed(logLike(rw.obs, rw.probs)))
	}

	sb.WriteByte('\n')
	_, err := io.WriteString(rw.w, sb.String())

	return err
}
