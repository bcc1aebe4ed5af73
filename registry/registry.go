/*
Package registry records which source file produced each generated symbol.

Sanitizing names is lossy so two different images can end up competing for
the same symbol, and the linker would only notice after both have been
compiled. The registry is a small sqlite database shared between runs that
rejects a symbol claimed by a second source file.
*/
package registry

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // register sqlite3
	"github.com/pkg/errors"
)

// ErrSymbolCollision is returned when a symbol already belongs to another
// source file
var ErrSymbolCollision = errors.New("registry: symbol already claimed by another source")

// Registry is an open symbol database.
type Registry struct {
	db *sql.DB
}

// Open opens or creates the database stored in file.
func Open(file string) (*Registry, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS symbol (name TEXT PRIMARY KEY NOT NULL, source TEXT NOT NULL, sha1 TEXT NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Registry{
		db: db,
	}, nil
}

// Close closes the database
func (r *Registry) Close() error {
	return r.db.Close()
}

// Claim records that source, with content hash sum, generates the symbol
// name. Claiming a symbol again from the same source updates the hash.
// Concurrent claims are decided by the database, exactly one source wins.
func (r *Registry) Claim(name, source, sum string) error {
	result, err := r.db.Exec("INSERT INTO symbol (name, source, sha1) VALUES (?, ?, ?) ON CONFLICT (name) DO UPDATE SET sha1 = excluded.sha1 WHERE source = excluded.source", name, source, sum)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// The row exists and belongs to another source
	owner, _, _, err := r.Lookup(name)
	if err != nil {
		return err
	}

	return errors.Wrapf(ErrSymbolCollision, "%s is generated by %s, not %s", name, owner, source)
}

// Lookup returns the source and hash recorded for name. ok is false if
// nothing has claimed it.
func (r *Registry) Lookup(name string) (source, sum string, ok bool, err error) {
	switch err := r.db.QueryRow("SELECT source, sha1 FROM symbol WHERE name = ?", name).Scan(&source, &sum); err {
	case sql.ErrNoRows:
		return "", "", false, nil
	case nil:
		return source, sum, true, nil
	default:
		return "", "", false, err
	}
}
