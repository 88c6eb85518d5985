package store

import "encoding/json"

// Keys of the persisted documents. Each key holds one whole collection.
const (
	UsersKey      = "portfolio:users"
	PortfoliosKey = "portfolio:portfolios"
	SessionKey    = "portfolio:current_user"
)

// DocumentStore persists a whole collection of records under a fixed key.
//
// LoadAll returns the records, whether the key has ever been written, and an
// I/O error if any. An absent key is not an error. A malformed persisted
// payload reads as an empty collection instead of failing the caller, so a
// corrupt store never bricks the application.
//
// SaveAll replaces the persisted collection in a single write; readers never
// observe a partial collection.
type DocumentStore interface {
	LoadAll(key string) ([]json.RawMessage, bool, error)
	SaveAll(key string, docs []json.RawMessage) error
}
