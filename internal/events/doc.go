// Package events publishes game session lifecycle events to registered
// handlers. The visual service emits an event when a session starts, when a
// move completes the board and when a session ends; handlers such as the
// structured log handler consume them without the service knowing about them.
package events
