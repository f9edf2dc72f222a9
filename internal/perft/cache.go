package perft

import (
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"chesskernel/internal/board"
)

// Cache memoizes Count results keyed by (FEN, depth), backed by BadgerDB
// so counts survive across process runs. Perft trees at a fixed depth are
// identical every time they're computed, which makes this an easy win for
// repeated analysis of the same test positions.
type Cache struct {
	db *badger.DB
}

// OpenCache opens (creating if necessary) a badger-backed cache rooted at
// dir. Badger's own logger is disabled; callers that want diagnostics log
// through their own logger around cache calls instead.
func OpenCache(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("perft: opening cache at %s: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func cacheKey(fen string, depth int) []byte {
	return []byte(fmt.Sprintf("%s|%d", fen, depth))
}

// Get looks up a previously cached node count for fen at depth.
func (c *Cache) Get(fen string, depth int) (nodes int64, ok bool, err error) {
	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(fen, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("perft: corrupt cache entry for %q depth %d", fen, depth)
			}
			nodes = int64(binary.BigEndian.Uint64(val))
			ok = true
			return nil
		})
	})
	return nodes, ok, err
}

// Set stores the node count for fen at depth.
func (c *Cache) Set(fen string, depth int, nodes int64) error {
	var val [8]byte
	binary.BigEndian.PutUint64(val[:], uint64(nodes))
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cacheKey(fen, depth), val[:])
	})
}

// CountCached behaves like Count, consulting and populating cache around
// the computation so repeated calls for the same (fen, depth) pair after
// the first are a single key lookup.
func CountCached(cache *Cache, pos *board.Position, depth int) (int64, error) {
	fen := pos.ToFEN()
	if nodes, ok, err := cache.Get(fen, depth); err != nil {
		return 0, err
	} else if ok {
		return nodes, nil
	}

	nodes := Count(pos, depth)
	if err := cache.Set(fen, depth, nodes); err != nil {
		return 0, err
	}
	return nodes, nil
}
