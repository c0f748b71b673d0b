// Package sqlite reads decks from a SQLite flashcard database, such as the
// flashcards.db file kept by the flashcard web app, so the matching game can
// run without PostgreSQL.
package sqlite
