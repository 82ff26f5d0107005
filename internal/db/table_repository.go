package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/buildcalc/internal/data"
	"github.com/udisondev/buildcalc/internal/model"
)

// TableRepository reads and replaces the lookup tables stored in PostgreSQL.
type TableRepository struct {
	pool *pgxpool.Pool
}

func NewTableRepository(pool *pgxpool.Pool) *TableRepository {
	return &TableRepository{pool: pool}
}

// LoadTables reads the three tables concurrently. An empty archetype table
// keeps the builtin archetypes.
func (r *TableRepository) LoadTables(ctx context.Context) (*data.Tables, error) {
	t := data.BuiltinTables()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := r.LoadArchetypes(ctx)
		if err != nil {
			return err
		}
		if a.Len() == 0 {
			slog.Info("no archetypes in database, using builtin table")
			return nil
		}
		t.Archetypes = a
		return nil
	})
	g.Go(func() error {
		m, err := r.LoadModifierTables(ctx)
		if err != nil {
			return err
		}
		t.Modifiers = m
		return nil
	})
	g.Go(func() error {
		c, err := r.LoadEnhancements(ctx)
		if err != nil {
			return err
		}
		t.Enhancements = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("lookup tables loaded from database",
		"archetypes", t.Archetypes.Len(),
		"modifier_tables", t.Modifiers.Names(),
		"enhancements", t.Enhancements.Len())
	return t, nil
}

// LoadArchetypes reads every archetype row.
func (r *TableRepository) LoadArchetypes(ctx context.Context) (*data.Archetypes, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, display_name, column_index, damage_cap, resistance_cap,
		       defense_display_cap, recharge_cap, recovery_cap, regeneration_cap,
		       hp_cap, base_hp, perception_cap
		FROM archetypes
		ORDER BY column_index, name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying archetypes: %w", err)
	}
	defer rows.Close()

	caps := make([]data.ArchetypeCaps, 0, 16)
	for rows.Next() {
		var c data.ArchetypeCaps
		if err := rows.Scan(&c.Name, &c.DisplayName, &c.Column, &c.DamageCap, &c.ResistanceCap,
			&c.DefenseDisplayCap, &c.RechargeCap, &c.RecoveryCap, &c.RegenerationCap,
			&c.HPCap, &c.BaseHP, &c.PerceptionCap); err != nil {
			return nil, fmt.Errorf("scanning archetype row: %w", err)
		}
		caps = append(caps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archetype rows: %w", err)
	}

	a, err := data.NewArchetypes(caps)
	if err != nil {
		return nil, fmt.Errorf("archetypes in database: %w", err)
	}
	return a, nil
}

// LoadModifierTables reassembles the level × column grids from their cells.
// A table missing cells fails validation.
func (r *TableRepository) LoadModifierTables(ctx context.Context) (*data.ModifierTables, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT table_name, level, column_index, value
		FROM modifier_values
		ORDER BY table_name, level, column_index
	`)
	if err != nil {
		return nil, fmt.Errorf("querying modifier values: %w", err)
	}
	defer rows.Close()

	var (
		defs []data.ModifierTableDef
		cur  *data.ModifierTableDef
	)
	for rows.Next() {
		var (
			name          string
			level, column int
			value         float64
		)
		if err := rows.Scan(&name, &level, &column, &value); err != nil {
			return nil, fmt.Errorf("scanning modifier row: %w", err)
		}
		if level < 1 || level > data.ModifierLevels {
			return nil, fmt.Errorf("modifier table %q: level %d out of range", name, level)
		}
		if cur == nil || cur.Name != name {
			defs = append(defs, data.ModifierTableDef{Name: name, Rows: make([][]float64, data.ModifierLevels)})
			cur = &defs[len(defs)-1]
		}
		row := cur.Rows[level-1]
		if column != len(row) {
			return nil, fmt.Errorf("modifier table %q level %d: gap before column %d", name, level, column)
		}
		cur.Rows[level-1] = append(row, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating modifier rows: %w", err)
	}

	m, err := data.NewModifierTables(defs)
	if err != nil {
		return nil, fmt.Errorf("modifier tables in database: %w", err)
	}
	return m, nil
}

// LoadEnhancements reads the catalog with its boosts.
func (r *TableRepository) LoadEnhancements(ctx context.Context) (*data.EnhancementCatalog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.name, e.set_name, b.attribute, b.mez_type, b.value
		FROM enhancements e
		LEFT JOIN enhancement_boosts b ON b.enhancement_id = e.id
		ORDER BY e.id, b.position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying enhancements: %w", err)
	}
	defer rows.Close()

	var entries []data.Enhancement
	for rows.Next() {
		var (
			id, name, set string
			attr, mez     *string
			value         *float64
		)
		if err := rows.Scan(&id, &name, &set, &attr, &mez, &value); err != nil {
			return nil, fmt.Errorf("scanning enhancement row: %w", err)
		}
		if len(entries) == 0 || entries[len(entries)-1].ID != id {
			entries = append(entries, data.Enhancement{ID: id, Name: name, SetName: set})
		}
		if attr == nil {
			continue
		}

		b := data.Boost{}
		if b.Attribute, err = model.ParseAttribute(*attr); err != nil {
			return nil, fmt.Errorf("enhancement %q: %w", id, err)
		}
		if mez != nil {
			if b.MezType, err = model.ParseMezType(*mez); err != nil {
				return nil, fmt.Errorf("enhancement %q: %w", id, err)
			}
		}
		if value != nil {
			b.Value = *value
		}
		e := &entries[len(entries)-1]
		e.Boosts = append(e.Boosts, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enhancement rows: %w", err)
	}

	c, err := data.NewEnhancementCatalog(entries)
	if err != nil {
		return nil, fmt.Errorf("enhancements in database: %w", err)
	}
	return c, nil
}

// ImportTables replaces the stored tables with t in one transaction.
func (r *TableRepository) ImportTables(ctx context.Context, t *data.Tables) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	if _, err := tx.Exec(ctx, `TRUNCATE archetypes, modifier_values, enhancement_boosts, enhancements`); err != nil {
		return fmt.Errorf("clearing tables: %w", err)
	}

	batch := &pgx.Batch{}
	for _, c := range t.Archetypes.All() {
		batch.Queue(`
			INSERT INTO archetypes (name, display_name, column_index, damage_cap, resistance_cap,
			    defense_display_cap, recharge_cap, recovery_cap, regeneration_cap, hp_cap, base_hp, perception_cap)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			c.Name, c.DisplayName, c.Column, c.DamageCap, c.ResistanceCap,
			c.DefenseDisplayCap, c.RechargeCap, c.RecoveryCap, c.RegenerationCap, c.HPCap, c.BaseHP, c.PerceptionCap)
	}
	for _, e := range t.Enhancements.All() {
		batch.Queue(`INSERT INTO enhancements (id, name, set_name) VALUES ($1, $2, $3)`, e.ID, e.Name, e.SetName)
		for i, b := range e.Boosts {
			batch.Queue(`
				INSERT INTO enhancement_boosts (enhancement_id, position, attribute, mez_type, value)
				VALUES ($1, $2, $3, $4, $5)`,
				e.ID, i, b.Attribute.String(), b.MezType.String(), b.Value)
		}
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting archetypes and enhancements: %w", err)
	}

	var cells [][]any
	for _, def := range t.Modifiers.Defs() {
		for l, row := range def.Rows {
			for c, v := range row {
				cells = append(cells, []any{def.Name, l + 1, c, v})
			}
		}
	}
	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"modifier_values"},
		[]string{"table_name", "level", "column_index", "value"},
		pgx.CopyFromRows(cells))
	if err != nil {
		return fmt.Errorf("copying modifier values: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing tables: %w", err)
	}
	slog.Info("lookup tables imported",
		"archetypes", t.Archetypes.Len(),
		"enhancements", t.Enhancements.Len(),
		"modifier_cells", n)
	return nil
}
