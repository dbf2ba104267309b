package eco

import (
	"fmt"
	"sort"

	"github.com/lgbarn/opening-insight-go/internal/errors"
)

// Database is an immutable catalog of opening entries indexed by canonical
// position key. It is safe for concurrent readers.
type Database struct {
	byKey map[string][]*OpeningEntry
	byID  map[string]*OpeningEntry
	ids   []string
}

// NewDatabase validates and indexes entries. The input slice is not retained.
func NewDatabase(entries []OpeningEntry) (*Database, error) {
	db := &Database{
		byKey: make(map[string][]*OpeningEntry, len(entries)),
		byID:  make(map[string]*OpeningEntry, len(entries)),
	}
	for i := range entries {
		e := entries[i]
		e.Mainline = append([]string(nil), e.Mainline...)
		if err := e.prepare(); err != nil {
			return nil, err
		}
		if _, dup := db.byID[e.ID]; dup {
			return nil, fmt.Errorf("opening id %q: %w", e.ID, errors.ErrDuplicateOpening)
		}
		entry := &e
		db.byID[e.ID] = entry
		db.byKey[e.Key] = append(db.byKey[e.Key], entry)
		db.ids = append(db.ids, e.ID)
	}
	sort.Strings(db.ids)
	return db, nil
}

// Len returns the number of entries.
func (db *Database) Len() int {
	if db == nil {
		return 0
	}
	return len(db.byID)
}

// Positions returns the number of distinct positions covered.
func (db *Database) Positions() int {
	if db == nil {
		return 0
	}
	return len(db.byKey)
}

// Lookup returns every entry keyed to the position, or nil.
func (db *Database) Lookup(key string) []*OpeningEntry {
	if db == nil {
		return nil
	}
	return db.byKey[key]
}

// Entry returns the entry with the given id.
func (db *Database) Entry(id string) (*OpeningEntry, bool) {
	if db == nil {
		return nil, false
	}
	e, ok := db.byID[id]
	return e, ok
}

// Entries returns all entries ordered by id.
func (db *Database) Entries() []*OpeningEntry {
	if db == nil {
		return nil
	}
	out := make([]*OpeningEntry, len(db.ids))
	for i, id := range db.ids {
		out[i] = db.byID[id]
	}
	return out
}
