package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/viant/kbvec/engine"
	"github.com/viant/kbvec/index"
	"github.com/viant/kbvec/vector"
)

// Option configures an Index.
type Option func(*Index)

// WithDSN sets the database to open on Build; defaults to ":memory:".
func WithDSN(dsn string) Option {
	return func(i *Index) { i.dsn = dsn }
}

// WithDB uses an already opened database; the caller keeps ownership.
func WithDB(db *sql.DB) Option {
	return func(i *Index) { i.db = db }
}

// WithTable overrides the vector table name.
func WithTable(table string) Option {
	return func(i *Index) {
		if table != "" {
			i.table = table
		}
	}
}

// Index implements index.Index over a SQLite table.
type Index struct {
	dsn   string
	table string
	db    *sql.DB
	owned bool
	query string
	size  int
	dim   int
}

// New returns an unbuilt SQLite index.
func New(opts ...Option) *Index {
	ret := &Index{dsn: ":memory:", table: defaultTable}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Build creates the schema and inserts all items in a single transaction.
func (i *Index) Build(items []index.Item) error {
	dim, err := index.Dimension(items)
	if err != nil {
		return err
	}
	if strings.ContainsAny(i.table, " ;'\"") {
		return fmt.Errorf("sqlite: invalid table name %q", i.table)
	}
	if err := engine.RegisterVectorFunctions(i.db); err != nil {
		return err
	}
	if i.db == nil {
		db, err := engine.Open(i.dsn)
		if err != nil {
			return fmt.Errorf("sqlite: open %q: %w", i.dsn, err)
		}
		i.db, i.owned = db, true
	}
	if err := EnsureSchema(i.db, i.table); err != nil {
		return fmt.Errorf("sqlite: ensure schema: %w", err)
	}

	tx, err := i.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", i.table)); err != nil {
		return err
	}
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s(position, embedding) VALUES(?, ?)", i.table))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, item := range items {
		blob, err := vector.EncodeEmbedding(item.Vector)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(item.Position, blob); err != nil {
			return fmt.Errorf("sqlite: insert position %d: %w", item.Position, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	i.query = fmt.Sprintf("SELECT position, vec_l2(embedding, ?) AS distance FROM %s ORDER BY distance, position LIMIT ?", i.table)
	i.size = len(items)
	i.dim = dim
	return nil
}

// Search ranks all rows by vec_l2 and returns the first k.
func (i *Index) Search(query []float32, k int) ([]index.Neighbor, error) {
	if k <= 0 {
		return nil, nil
	}
	if i.size == 0 {
		return index.Pad(nil, k), nil
	}
	if err := index.CheckQuery(query, i.dim); err != nil {
		return nil, err
	}
	blob, err := vector.EncodeEmbedding(query)
	if err != nil {
		return nil, err
	}
	rows, err := i.db.Query(i.query, blob, k)
	if err != nil {
		return nil, fmt.Errorf("sqlite: search: %w", err)
	}
	defer rows.Close()

	out := make([]index.Neighbor, 0, k)
	for rows.Next() {
		var n index.Neighbor
		if err := rows.Scan(&n.Position, &n.Distance); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return index.Pad(out, k), nil
}

// Len returns the number of stored vectors.
func (i *Index) Len() int { return i.size }

// Dimension returns the vector dimension.
func (i *Index) Dimension() int { return i.dim }

// Close releases the database when the index opened it.
func (i *Index) Close() error {
	if i.db == nil || !i.owned {
		return nil
	}
	err := i.db.Close()
	i.db = nil
	return err
}

var _ index.Index = (*Index)(nil)
