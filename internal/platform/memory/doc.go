// Package memory provides an in-process implementation of store.SessionStore.
//
// Sessions live only as long as the process. Each session carries its own
// mutex, so updates to one session are serialized while different sessions
// proceed in parallel; the index lock is held only for map lookups.
package memory
