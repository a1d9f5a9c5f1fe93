package nfg

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by Game construction and profile access.
var (
	// ErrNoPlayers indicates that a game was built with an empty player list.
	ErrNoPlayers = errors.New("nfg: game must have at least one player")

	// ErrBadStrategyCount indicates a player with fewer than one strategy.
	ErrBadStrategyCount = errors.New("nfg: every player needs at least one strategy")

	// ErrBadPayoffCount indicates that the payoff table length does not match
	// the number of contingencies.
	ErrBadPayoffCount = errors.New("nfg: payoff table length mismatch")
)

// Game is a finite normal-form game: a list of players, a strategy count
// per player, and one payoff per player per pure-strategy contingency.
//
// Contingencies are stored in the standard NFG order: the first player's
// strategy varies fastest. strides[i] is the contingency-index stride of
// player i+1, so a pure profile (s₁,…,s_N) maps to index
// Σ (sᵢ-1)·strides[i].
//
// Players and strategies are 1-based throughout, matching the tracer.
type Game struct {
	title   string
	players []string    // player labels, informational only
	dims    []int       // dims[i] = number of strategies of player i+1
	strides []int       // contingency strides, strides[0] == 1
	offsets []int       // offsets[i] = flat profile offset of player i+1's block
	length  int         // Σ dims, the flat profile length
	total   int         // Π dims, the number of contingencies
	payoffs [][]float64 // payoffs[i][c] = payoff to player i+1 in contingency c
}

// NewGame builds a Game from a title, player labels, strategy counts and a
// per-player payoff table in contingency order.
// Stage 1 (Validate): player list non-empty, all dims ≥ 1, payoff rows
// match players and every row covers all contingencies.
// Stage 2 (Prepare): compute strides, flat offsets, profile length.
// Stage 3 (Finalize): copy payoff rows so the Game owns its table.
// Complexity: O(N·Πmᵢ).
func NewGame(title string, players []string, dims []int, payoffs [][]float64) (*Game, error) {
	// Validate player list
	n := len(players)
	if n == 0 {
		return nil, ErrNoPlayers
	}
	if len(dims) != n || len(payoffs) != n {
		return nil, fmt.Errorf("nfg: %d players, %d strategy counts, %d payoff rows: %w",
			n, len(dims), len(payoffs), ErrBadPayoffCount)
	}

	// Validate strategy counts and derive sizes
	total := 1
	length := 0
	strides := make([]int, n)
	offsets := make([]int, n)
	for i, m := range dims {
		if m < 1 {
			return nil, ErrBadStrategyCount
		}
		strides[i] = total
		offsets[i] = length
		total *= m
		length += m
	}

	// Validate and copy the payoff table
	table := make([][]float64, n)
	for i, row := range payoffs {
		if len(row) != total {
			return nil, fmt.Errorf("nfg: player %d has %d payoffs, want %d: %w",
				i+1, len(row), total, ErrBadPayoffCount)
		}
		table[i] = append([]float64(nil), row...)
	}

	return &Game{
		title:   title,
		players: append([]string(nil), players...),
		dims:    append([]int(nil), dims...),
		strides: strides,
		offsets: offsets,
		length:  length,
		total:   total,
		payoffs: table,
	}, nil
}

// Title returns the game's title string.
func (g *Game) Title() string { return g.title }

// NumPlayers returns the number of players N.
func (g *Game) NumPlayers() int { return len(g.players) }

// NumStrategies returns the number of strategies of player pl (1-based).
func (g *Game) NumStrategies(pl int) int { return g.dims[pl-1] }

// ProfileLength returns L = Σ mᵢ, the flat mixed-profile length.
func (g *Game) ProfileLength() int { return g.length }

// StrategyOffset returns the flat-profile offset of player pl's block:
// strategy st of player pl lives at flat index StrategyOffset(pl)+st.
func (g *Game) StrategyOffset(pl int) int { return g.offsets[pl-1] }

// strategyAt decodes player pl's strategy from contingency index c.
func (g *Game) strategyAt(c, pl int) int {
	return (c/g.strides[pl-1])%g.dims[pl-1] + 1
}

// Payoff returns the expected payoff to player pl of playing pure
// strategy st while every other player follows the mixed profile p.
//
// The sum runs over all contingencies in which player pl plays st,
// weighting the tabled payoff by the product of the other players'
// probabilities.
// Complexity: O(N·Πmᵢ).
func (g *Game) Payoff(pl, st int, p Profile) float64 {
	var sum float64
	for c := 0; c < g.total; c++ {
		if g.strategyAt(c, pl) != st {
			continue // contingency inconsistent with the fixed strategy
		}
		w := 1.0
		for j := 1; j <= len(g.dims); j++ {
			if j == pl {
				continue // own slot is held fixed, not weighted
			}
			w *= p.At(j, g.strategyAt(c, j))
		}
		sum += g.payoffs[pl-1][c] * w
	}

	return sum
}

// PayoffDeriv returns ∂Payoff(pl, st; p)/∂p(pl2, st2): the derivative of
// player pl's expected payoff for pure strategy st with respect to the
// probability that player pl2 plays st2. The derivative with respect to
// one's own probabilities is zero, since Payoff holds player pl's slot
// fixed.
// Complexity: O(N·Πmᵢ).
func (g *Game) PayoffDeriv(pl, st, pl2, st2 int, p Profile) float64 {
	if pl == pl2 {
		return 0.0
	}

	var sum float64
	for c := 0; c < g.total; c++ {
		if g.strategyAt(c, pl) != st || g.strategyAt(c, pl2) != st2 {
			continue // contingency inconsistent with the two fixed strategies
		}
		w := 1.0
		for j := 1; j <= len(g.dims); j++ {
			if j == pl || j == pl2 {
				continue // the fixed slots carry no probability weight
			}
			w *= p.At(j, g.strategyAt(c, j))
		}
		sum += g.payoffs[pl-1][c] * w
	}

	return sum
}

// Profile is a mixed-strategy profile over a Game, stored as one flat
// player-major vector: player pl's block starts at StrategyOffset(pl).
type Profile struct {
	game  *Game
	probs []float64 // flat storage, length == game.ProfileLength()
}

// NewProfile allocates a zeroed Profile for g.
func (g *Game) NewProfile() Profile {
	return Profile{game: g, probs: make([]float64, g.length)}
}

// Centroid returns the uniform profile: every strategy of player pl gets
// probability 1/mᵢ.
func (g *Game) Centroid() Profile {
	p := g.NewProfile()
	for pl := 1; pl <= len(g.dims); pl++ {
		for st := 1; st <= g.dims[pl-1]; st++ {
			p.Set(pl, st, 1.0/float64(g.dims[pl-1]))
		}
	}

	return p
}

// Length returns the flat length of the profile.
func (p Profile) Length() int { return len(p.probs) }

// At returns the probability of player pl playing strategy st (1-based).
func (p Profile) At(pl, st int) float64 {
	return p.probs[p.game.offsets[pl-1]+st-1]
}

// Set assigns the probability of player pl playing strategy st (1-based).
func (p Profile) Set(pl, st int, v float64) {
	p.probs[p.game.offsets[pl-1]+st-1] = v
}

// AtFlat returns the probability at flat index k (1-based).
func (p Profile) AtFlat(k int) float64 { return p.probs[k-1] }

// SetFlat assigns the probability at flat index k (1-based).
func (p Profile) SetFlat(k int, v float64) { p.probs[k-1] = v }
