// Package store is the relational boundary of tsvenn.
//
// A store accepts arbitrary SQL text and returns either an error carrying the
// engine's message or the result rows, every value converted to text with
// NULL reported as "NULL". The only implementation is SQLite, backed by the
// pure-Go modernc.org/sqlite driver.
//
// A store pins a single connection and runs everything inside one
// transaction that spans the whole session: bulk inserts of thousands of
// rows are orders of magnitude slower when every statement commits on its
// own. Close commits; Abort marks the session so Close rolls back instead.
//
// Usage:
//
//	s, err := store.Open(ctx, "survey.db")
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	rows, err := s.Query(ctx, `SELECT name FROM sqlite_master`)
package store
