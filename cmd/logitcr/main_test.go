package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/logitcr/logit"
	"github.com/katalvlaran/logitcr/nfg"
)

const penniesNFG = `NFG 1 R "Matching Pennies" { "Player 1" "Player 2" } { 2 2 }

1 -1 -1 1 -1 1 1 -1
`

// run executes the command against the given stdin and arguments,
// returning stdout, stderr and the execution error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

// TestRootCmd_TerminalQuiet verifies the single-record terminal mode with
// the banner suppressed.
func TestRootCmd_TerminalQuiet(t *testing.T) {
	out, errOut, err := run(t, penniesNFG, "-q", "-e", "-m", "50")
	require.NoError(t, err)

	assert.Empty(t, errOut, "quiet mode suppresses the banner")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1, "terminal mode emits one record")
	assert.True(t, strings.HasPrefix(lines[0], "NE,"), "record %q", lines[0])
}

// TestRootCmd_Banner verifies that the banner goes to stderr by default.
func TestRootCmd_Banner(t *testing.T) {
	_, errOut, err := run(t, penniesNFG, "-m", "1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "logit equilibrium correspondence")
}

// TestRootCmd_FullBranch verifies default emission of the whole branch
// with the configured precision.
func TestRootCmd_FullBranch(t *testing.T) {
	out, _, err := run(t, penniesNFG, "-q", "-m", "5", "-d", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1, "a branch has more than one record")
	assert.Equal(t, "0.000,0.500,0.500,0.500,0.500", lines[0])
}

// TestRootCmd_BadFlags verifies that out-of-range flag values surface as
// tracer sentinel errors rather than panics.
func TestRootCmd_BadFlags(t *testing.T) {
	_, _, err := run(t, penniesNFG, "-q", "-s", "0")
	assert.ErrorIs(t, err, logit.ErrBadStepInitial)

	_, _, err = run(t, penniesNFG, "-q", "-a", "1.0")
	assert.ErrorIs(t, err, logit.ErrBadMaxDecel)

	_, _, err = run(t, penniesNFG, "-q", "-m", "-1")
	assert.ErrorIs(t, err, logit.ErrBadMaxLambda)

	_, _, err = run(t, penniesNFG, "-q", "-d", "-1")
	assert.ErrorIs(t, err, logit.ErrBadDecimals)

	_, _, err = run(t, penniesNFG, "--no-such-flag")
	assert.Error(t, err, "unknown flags must be rejected")

	_, _, err = run(t, penniesNFG, "-q", "stray")
	assert.Error(t, err, "positional arguments must be rejected")
}

// TestRootCmd_MalformedGame verifies that parser errors propagate.
func TestRootCmd_MalformedGame(t *testing.T) {
	_, _, err := run(t, "this is not a game", "-q")
	assert.ErrorIs(t, err, nfg.ErrBadHeader)
}

const coordinationNFG = `NFG 1 R "Coordination" { "A" "B" } { 2 2 }

2 2 0 0 0 0 1 1
`

// TestRootCmd_Likelihood verifies the observation-file path: records gain
// the trailing log-likelihood field.
func TestRootCmd_Likelihood(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obs.csv")
	require.NoError(t, os.WriteFile(path, []byte("60,40,60,40\n"), 0o644))

	out, _, err := run(t, coordinationNFG, "-q", "-m", "5", "-L", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Len(t, strings.Split(line, ","), 6,
			"λ, four probabilities and a likelihood: %q", line)
	}
}

// TestRootCmd_LikelihoodFileErrors verifies missing and short files.
func TestRootCmd_LikelihoodFileErrors(t *testing.T) {
	_, _, err := run(t, penniesNFG, "-q", "-L", filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "short.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n"), 0o644))
	_, _, err = run(t, penniesNFG, "-q", "-L", path)
	assert.ErrorIs(t, err, nfg.ErrShortObservations)
}
