// Package matcher links entities across the two providers using only
// free-text names and coarse team affiliation.
//
// Steps:
//   - Resolve team titles first (exact, known variant, then similarity)
//   - Narrow each source entity's candidates to targets on a resolved team
//   - Score names by normalized edit-distance similarity in [0, 1]
//   - Accept a unique best score at or above the threshold
//
// Everything else goes to a Resolver. The default rejects; PromptResolver
// asks on a terminal. The result is not a bijection: two sources may pick
// the same target, which is logged and reported by MatchTable.Duplicates.
package matcher
