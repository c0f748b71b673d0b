// Package matching implements the rules of the visual matching game: building
// a shuffled board of image and term tiles from a deck's cards, and evaluating
// a player's attempt to pair two tiles.
//
// Both operations are pure functions over domain values. Generate takes its
// randomness source as a parameter so boards can be reproduced in tests, and
// Evaluate mutates only the session it is given, which the caller is expected
// to hold exclusively (see store.SessionStore.Update).
package matching
