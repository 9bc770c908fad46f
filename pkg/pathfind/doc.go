// Package pathfind discovers sign-consistent causal paths from perturbed
// source genes to target genes with an observed state.
//
// The search is a depth-bounded recursion over the forward adjacency index.
// It keeps no visited set: a node may be entered again on another branch,
// or on the same branch through a cycle, and only the depth counter bounds
// the walk. Branching therefore grows with the out-degree raised to
// MaxDepth, so callers should keep MaxDepth small (3 to 5 in practice).
//
// Along each branch the action of the source is propagated edge by edge:
//
//   - component edges (sign 0) are never followed
//   - activating edges (+1) keep the action
//   - inactivating edges (-1) leave the action undefined, unless
//     Options.NegateInhibitory is set, in which case they negate it
//
// An undefined action never matches a target, so without NegateInhibitory
// nothing downstream of an inactivating edge is discovered.
//
// When an edge reaches a target whose state equals the propagated action,
// the edge and every unvalidated linker edge on the branch are committed to
// the discovered set, and the target is recorded as a true path (only
// canonical edges so far) or a false path (a rewired edge was used somewhere
// on the branch). Transcriptional edges end the branch after this check.
package pathfind
