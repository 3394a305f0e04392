package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/udisondev/tactica/internal/component"
)

// EntityRepository stores the skill and item trees owned by a unit.
type EntityRepository struct {
	db *DB
}

// NewEntityRepository creates an EntityRepository.
func NewEntityRepository(db *DB) *EntityRepository {
	return &EntityRepository{db: db}
}

// Save replaces everything stored for owner with recs in one transaction.
func (r *EntityRepository) Save(ctx context.Context, owner string, recs []component.EntityRecord) error {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// Rollback after commit is expected to fail.
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, r.db.rebind(
		`DELETE FROM components WHERE entity_uid IN (SELECT uid FROM entities WHERE owner = ?)`), owner); err != nil {
		return fmt.Errorf("deleting components of %s: %w", owner, err)
	}
	if _, err := tx.ExecContext(ctx, r.db.rebind(`DELETE FROM entities WHERE owner = ?`), owner); err != nil {
		return fmt.Errorf("deleting entities of %s: %w", owner, err)
	}

	for i, rec := range recs {
		if err := r.insert(ctx, tx, owner, nil, i, rec); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entities of %s: %w", owner, err)
	}
	return nil
}

func (r *EntityRepository) insert(ctx context.Context, tx *sql.Tx, owner string, parent *string, pos int, rec component.EntityRecord) error {
	if _, err := tx.ExecContext(ctx, r.db.rebind(
		`INSERT INTO entities (uid, owner, parent_uid, position, class, nid, name) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		rec.UID, owner, parent, pos, string(rec.Class), rec.Nid, rec.Name,
	); err != nil {
		return fmt.Errorf("inserting entity %s: %w", rec.Nid, err)
	}

	for i, p := range rec.Components {
		value, err := json.Marshal(p.Value)
		if err != nil {
			return fmt.Errorf("encoding %s.%s: %w", rec.Nid, p.Nid, err)
		}
		var data *string
		if len(p.Data) > 0 {
			s := string(p.Data)
			data = &s
		}
		if _, err := tx.ExecContext(ctx, r.db.rebind(
			`INSERT INTO components (entity_uid, position, nid, value, data) VALUES (?, ?, ?, ?, ?)`),
			rec.UID, i, p.Nid, string(value), data,
		); err != nil {
			return fmt.Errorf("inserting component %s.%s: %w", rec.Nid, p.Nid, err)
		}
	}

	uid := rec.UID
	for i, child := range rec.Children {
		if err := r.insert(ctx, tx, owner, &uid, i, child); err != nil {
			return err
		}
	}
	return nil
}

type entityRow struct {
	rec    component.EntityRecord
	parent sql.NullString
}

// Load returns the trees stored for owner in saved order.
func (r *EntityRepository) Load(ctx context.Context, owner string) ([]component.EntityRecord, error) {
	rows, err := r.db.sql.QueryContext(ctx, r.db.rebind(
		`SELECT uid, parent_uid, class, nid, name FROM entities WHERE owner = ? ORDER BY position, uid`), owner)
	if err != nil {
		return nil, fmt.Errorf("querying entities of %s: %w", owner, err)
	}
	var all []*entityRow
	index := make(map[string]*entityRow)
	for rows.Next() {
		var e entityRow
		var class string
		if err := rows.Scan(&e.rec.UID, &e.parent, &class, &e.rec.Nid, &e.rec.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning entity row: %w", err)
		}
		e.rec.Class = component.Class(class)
		all = append(all, &e)
		index[e.rec.UID] = &e
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity rows: %w", err)
	}

	if err := r.loadComponents(ctx, owner, index); err != nil {
		return nil, err
	}

	// Siblings come back in position order, so appending keeps saved order.
	children := make(map[string][]string)
	var roots []string
	for _, e := range all {
		if e.parent.Valid {
			children[e.parent.String] = append(children[e.parent.String], e.rec.UID)
			continue
		}
		roots = append(roots, e.rec.UID)
	}
	var build func(uid string) component.EntityRecord
	build = func(uid string) component.EntityRecord {
		rec := index[uid].rec
		for _, child := range children[uid] {
			rec.Children = append(rec.Children, build(child))
		}
		return rec
	}

	out := make([]component.EntityRecord, 0, len(roots))
	for _, uid := range roots {
		out = append(out, build(uid))
	}
	return out, nil
}

func (r *EntityRepository) loadComponents(ctx context.Context, owner string, index map[string]*entityRow) error {
	rows, err := r.db.sql.QueryContext(ctx, r.db.rebind(
		`SELECT c.entity_uid, c.nid, c.value, c.data
		 FROM components c JOIN entities e ON e.uid = c.entity_uid
		 WHERE e.owner = ?
		 ORDER BY c.entity_uid, c.position`), owner)
	if err != nil {
		return fmt.Errorf("querying components of %s: %w", owner, err)
	}
	defer rows.Close()

	for rows.Next() {
		var uid string
		var p component.Persisted
		var value, data sql.NullString
		if err := rows.Scan(&uid, &p.Nid, &value, &data); err != nil {
			return fmt.Errorf("scanning component row: %w", err)
		}
		if p.Value, err = decodeValue(value); err != nil {
			return fmt.Errorf("decoding %s value: %w", p.Nid, err)
		}
		if data.Valid && data.String != "" {
			p.Data = json.RawMessage(data.String)
		}
		e, ok := index[uid]
		if !ok {
			continue
		}
		e.rec.Components = append(e.rec.Components, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating component rows: %w", err)
	}
	return nil
}

func decodeValue(raw sql.NullString) (any, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(raw.String))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
