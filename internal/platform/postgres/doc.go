// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package: the durable game
// session store and the card source over the decks and cards tables. It also
// embeds the schema migrations applied with goose.
package postgres
