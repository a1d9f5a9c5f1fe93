package nfg_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/logitcr/nfg"
)

const penniesNFG = `NFG 1 R "Matching Pennies" { "Player 1" "Player 2" } { 2 2 }

1 -1 -1 1 -1 1 1 -1
`

// TestReadGame_Pennies verifies the happy path: prologue, labels, counts
// and the contingency-major payoff body.
func TestReadGame_Pennies(t *testing.T) {
	g, err := nfg.ReadGame(strings.NewReader(penniesNFG))
	require.NoError(t, err)

	assert.Equal(t, "Matching Pennies", g.Title())
	assert.Equal(t, 2, g.NumPlayers())
	assert.Equal(t, 2, g.NumStrategies(1))
	assert.Equal(t, 2, g.NumStrategies(2))
	assert.Equal(t, 4, g.ProfileLength())

	// Pure profile (2,1): a mismatch, so player 2 collects.
	p := g.NewProfile()
	p.Set(1, 2, 1.0)
	p.Set(2, 1, 1.0)
	assert.InDelta(t, -1.0, g.Payoff(1, 2, p), 1e-15, "contingency (2,1) pays player 1 −1")
	assert.InDelta(t, 1.0, g.Payoff(2, 1, p), 1e-15, "contingency (2,1) pays player 2 +1")
}

// TestReadGame_Rationals verifies a/b payoff tokens and tokenization with
// braces abutting words.
func TestReadGame_Rationals(t *testing.T) {
	in := `NFG 1 R "Thirds" { "A" "B" } {2 2}
1/3 -1/3 2/4 0 0 1 1 0`
	g, err := nfg.ReadGame(strings.NewReader(in))
	require.NoError(t, err)

	p := g.NewProfile()
	p.Set(1, 1, 1.0)
	p.Set(2, 1, 1.0)
	assert.InDelta(t, 1.0/3.0, g.Payoff(1, 1, p), 1e-15)
	assert.InDelta(t, -1.0/3.0, g.Payoff(2, 1, p), 1e-15)
}

// TestReadGame_Malformed verifies the error taxonomy on bad inputs.
func TestReadGame_Malformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty input", "", nfg.ErrBadHeader},
		{"wrong magic", `GFN 1 R "x" { "A" } { 1 } 0`, nfg.ErrBadHeader},
		{"wrong version", `NFG 2 R "x" { "A" } { 1 } 0`, nfg.ErrBadHeader},
		{"outcome format", `NFG 1 D "x" { "A" } { 1 } 0`, nfg.ErrUnsupportedFormat},
		{"missing title", `NFG 1 R { "A" } { 1 } 0`, nfg.ErrBadHeader},
		{"unterminated title", `NFG 1 R "x`, nfg.ErrBadHeader},
		{"no players", `NFG 1 R "x" { } { } `, nfg.ErrNoPlayers},
		{"count mismatch", `NFG 1 R "x" { "A" "B" } { 2 } 0 0`, nfg.ErrBadHeader},
		{"zero strategies", `NFG 1 R "x" { "A" } { 0 }`, nfg.ErrBadHeader},
		{"short body", `NFG 1 R "x" { "A" "B" } { 2 2 } 1 2 3`, nfg.ErrBadPayoffCount},
		{"bad payoff token", `NFG 1 R "x" { "A" } { 1 } zap`, nfg.ErrBadNumber},
		{"zero denominator", `NFG 1 R "x" { "A" } { 1 } 1/0`, nfg.ErrBadNumber},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := nfg.ReadGame(strings.NewReader(tc.in))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestReadObservations verifies the single-record comma format, the
// trailing-field discard, and the length guard.
func TestReadObservations(t *testing.T) {
	obs, err := nfg.ReadObservations(strings.NewReader("0.5, 0.5, 0.25, 0.75\n"), 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5, 0.25, 0.75}, obs)

	// Extra fields beyond the profile length are discarded.
	obs, err = nfg.ReadObservations(strings.NewReader("1,2,3,extra\n"), 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, obs)

	// Rationals are accepted, and a missing trailing newline is fine.
	obs, err = nfg.ReadObservations(strings.NewReader("1/2,1/2"), 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, obs)

	_, err = nfg.ReadObservations(strings.NewReader("1,2\n"), 3)
	assert.ErrorIs(t, err, nfg.ErrShortObservations)

	_, err = nfg.ReadObservations(strings.NewReader(""), 1)
	assert.ErrorIs(t, err, nfg.ErrShortObservations)

	_, err = nfg.ReadObservations(strings.NewReader("1,zap\n"), 2)
	assert.ErrorIs(t, err, nfg.ErrBadNumber)
}
