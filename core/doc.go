// Package core implements the handle table of the forge RHI: typed
// versioned handles, slot storage with generation validation, and the
// hub mapping every handle kind to its backend object.
//
// A handle packs a 32-bit slot index with a 32-bit generation. Freeing
// an object releases the slot with a bumped generation, so stale
// handles — use-after-free, double destruction — fail lookup with
// ErrGenerationMismatch instead of resolving to an unrelated object.
// Handle kind confusion is prevented at compile time by the marker
// type parameter.
package core
