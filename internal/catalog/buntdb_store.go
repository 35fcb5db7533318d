package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/buntdb"
)

const keyPrefix = "activity:"

// storedActivity wraps an Activity with the monotonic sequence number that
// pins its catalog position. The seq field rides along in the stored JSON so
// the buntdb index can order on it.
type storedActivity struct {
	Seq int64 `json:"seq"`
	Activity
}

// BuntStore implements Store on top of a buntdb database. The default DSN is
// ":memory:"; buntdb serializes writers, which gives signup/unregister their
// atomic check-then-act for free.
type BuntStore struct {
	db   *buntdb.DB
	next int64
}

// OpenBuntStore opens (or creates) a buntdb database at path and prepares the
// catalog-order index.
func OpenBuntStore(path string) (*BuntStore, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog db: %w", err)
	}
	if err := db.CreateIndex("seq", keyPrefix+"*", buntdb.IndexJSON("seq")); err != nil && err != buntdb.ErrIndexExists {
		db.Close()
		return nil, fmt.Errorf("creating seq index: %w", err)
	}

	s := &BuntStore{db: db}

	// Resume the sequence counter when opening a non-empty database.
	err = db.View(func(tx *buntdb.Tx) error {
		return tx.Descend("seq", func(key, value string) bool {
			var rec storedActivity
			if json.Unmarshal([]byte(value), &rec) == nil {
				s.next = rec.Seq
			}
			return false
		})
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("reading catalog db: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *BuntStore) Close() error {
	return s.db.Close()
}

func (s *BuntStore) Put(_ context.Context, a Activity) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		rec := storedActivity{Activity: a}

		// Replacing an existing activity keeps its catalog position.
		if prev, err := tx.Get(keyPrefix + a.ID); err == nil {
			var old storedActivity
			if err := json.Unmarshal([]byte(prev), &old); err != nil {
				return fmt.Errorf("decoding activity %s: %w", a.ID, err)
			}
			rec.Seq = old.Seq
		} else {
			s.next++
			rec.Seq = s.next
		}

		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding activity %s: %w", a.ID, err)
		}
		_, _, err = tx.Set(keyPrefix+a.ID, string(raw), nil)
		return err
	})
}

func (s *BuntStore) Get(_ context.Context, id string) (Activity, error) {
	var a Activity
	err := s.db.View(func(tx *buntdb.Tx) error {
		raw, err := tx.Get(keyPrefix + id)
		if err == buntdb.ErrNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return decode(raw, &a)
	})
	return a, err
}

func (s *BuntStore) GetByName(_ context.Context, name string) (Activity, error) {
	var a Activity
	found := false
	err := s.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend("seq", func(key, value string) bool {
			var cand Activity
			if decode(value, &cand) == nil && cand.Name == name {
				a = cand
				found = true
				return false
			}
			return true
		})
	})
	if err != nil {
		return Activity{}, err
	}
	if !found {
		return Activity{}, ErrNotFound
	}
	return a, nil
}

func (s *BuntStore) List(_ context.Context) ([]Activity, error) {
	var out []Activity
	err := s.db.View(func(tx *buntdb.Tx) error {
		var decodeErr error
		iterErr := tx.Ascend("seq", func(key, value string) bool {
			var a Activity
			if decodeErr = decode(value, &a); decodeErr != nil {
				return false
			}
			out = append(out, a)
			return true
		})
		if decodeErr != nil {
			return decodeErr
		}
		return iterErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BuntStore) Signup(_ context.Context, id, email string) (Activity, error) {
	return s.mutateRoster(id, func(a *Activity) error {
		for _, p := range a.Participants {
			if p == email {
				return ErrAlreadyRegistered
			}
		}
		if !a.Available() {
			return ErrFull
		}
		a.Participants = append(a.Participants, email)
		return nil
	})
}

func (s *BuntStore) Unregister(_ context.Context, id, email string) (Activity, error) {
	return s.mutateRoster(id, func(a *Activity) error {
		for i, p := range a.Participants {
			if p == email {
				a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
				return nil
			}
		}
		return ErrNotRegistered
	})
}

// mutateRoster runs a check-then-act roster edit inside a single write
// transaction.
func (s *BuntStore) mutateRoster(id string, mutate func(*Activity) error) (Activity, error) {
	var out Activity
	err := s.db.Update(func(tx *buntdb.Tx) error {
		raw, err := tx.Get(keyPrefix + id)
		if err == buntdb.ErrNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var rec storedActivity
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return fmt.Errorf("decoding activity %s: %w", id, err)
		}
		if err := mutate(&rec.Activity); err != nil {
			return err
		}
		updated, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding activity %s: %w", id, err)
		}
		if _, _, err := tx.Set(keyPrefix+id, string(updated), nil); err != nil {
			return err
		}
		out = rec.Activity
		return nil
	})
	return out, err
}

func decode(raw string, a *Activity) error {
	var rec storedActivity
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return fmt.Errorf("decoding activity record: %w", err)
	}
	*a = rec.Activity
	return nil
}

// compile-time interface check
var _ Store = (*BuntStore)(nil)

// memoryDSN is the DSN for a non-persistent database.
const memoryDSN = ":memory:"

// NormalizeDSN maps an empty path to the in-memory DSN.
func NormalizeDSN(path string) string {
	if strings.TrimSpace(path) == "" {
		return memoryDSN
	}
	return path
}
