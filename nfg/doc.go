// Package nfg models finite normal-form games and the expected-payoff
// oracle consumed by the correspondence tracer.
//
// The nfg package provides:
//
//   - Game, an immutable payoff table over N players with finitely many
//     pure strategies each, indexed 1-based by (player, strategy).
//   - Profile, a mixed-strategy profile stored as one flat vector in
//     player-major order, the layout the tracer's state vector uses.
//   - The two payoff queries the tracer needs: Payoff, the expected
//     payoff to a player of a pure strategy against a mixed profile, and
//     PayoffDeriv, its derivative with respect to one opponent
//     probability.
//   - ReadGame, a reader for the NFG payoff text representation, and
//     ReadObservations, a reader for comma-separated frequency vectors.
//
// Payoff evaluation enumerates pure-strategy contingencies directly,
// which is O(Πmᵢ) per query. Games this module targets are small; the
// tracer dominates total cost.
package nfg
