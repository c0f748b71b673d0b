// Package domain contains the core entities of the visual matching game:
// cards as supplied by a deck, the image/term tiles derived from them, and
// the game sessions that track a player's progress. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
