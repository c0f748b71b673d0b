// Package visual implements the lifecycle of visual matching game sessions:
// starting a board from a deck, checking pairing moves and ending a session.
//
// All session state lives in a store.SessionStore. The service holds no
// session data of its own, so any number of requests may call it concurrently.
package visual
