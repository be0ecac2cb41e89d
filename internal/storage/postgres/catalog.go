package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/nyanko/internal/game/unit"
)

// ErrInvalidUnit is returned when the database rejects a unit row.
var ErrInvalidUnit = errors.New("invalid unit row")

const unitColumns = `code, name, image, growth_tier, rarity, targets, obtained_from,
		hp, attack, dps, attack_speed, initial_delay, movement_speed, attack_range,
		hit_back, cost, cooldown, after_delay, finish_time, forms`

// CatalogRepository stores and reads catalog records in the cat_units table.
// It satisfies catalog.Source.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a CatalogRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Records returns every unit in catalog order.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CatalogRepository) Records(ctx context.Context) ([]*unit.Record, error) {
	rows, err := r.db.Query(ctx, `SELECT `+unitColumns+` FROM cat_units ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}
	defer rows.Close()

	recs := make([]*unit.Record, 0)
	for rows.Next() {
		rec, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning unit row: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Count returns the number of stored units.
func (r *CatalogRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cat_units`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting units: %w", err)
	}
	return n, nil
}

// ReplaceAll atomically replaces the stored catalog with recs, keeping their order.
//
// Precondition: recs must have unique codes.
// Postcondition: On success the table holds exactly recs; on error it is unchanged.
func (r *CatalogRepository) ReplaceAll(ctx context.Context, recs []*unit.Record) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM cat_units`); err != nil {
		return fmt.Errorf("clearing units: %w", err)
	}

	batch := &pgx.Batch{}
	for i, rec := range recs {
		queueInsert(batch, i, rec)
	}
	results := tx.SendBatch(ctx, batch)
	for _, rec := range recs {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			if isCheckViolation(err) {
				return fmt.Errorf("%w %q: %v", ErrInvalidUnit, rec.Code, err)
			}
			return fmt.Errorf("inserting unit %q: %w", rec.Code, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("closing batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	return nil
}

func queueInsert(b *pgx.Batch, position int, rec *unit.Record) {
	s := rec.BaseStats
	targets := make([]string, len(rec.Targets))
	for i, t := range rec.Targets {
		targets[i] = string(t)
	}
	forms := rec.Forms
	if forms == nil {
		forms = []unit.Form{}
	}
	b.Queue(`
		INSERT INTO cat_units
			(code, position, name, image, growth_tier, rarity, targets, obtained_from,
			 hp, attack, dps, attack_speed, initial_delay, movement_speed, attack_range,
			 hit_back, cost, cooldown, after_delay, finish_time, forms)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		rec.Code, position, rec.Name, rec.Image, string(rec.Tier), string(rec.Rarity), targets,
		rec.ObtainedFrom,
		s.HP, s.Attack, s.DPS, s.AttackSpeed, s.InitialDelay, s.MovementSpeed, s.Range,
		s.HitBack, s.Cost, s.Cooldown, s.AfterDelay, s.FinishTime, forms,
	)
}

func scanUnit(row pgx.Row) (*unit.Record, error) {
	var (
		rec     unit.Record
		tier    string
		rarity  string
		targets []string
	)
	s := &rec.BaseStats
	err := row.Scan(
		&rec.Code, &rec.Name, &rec.Image, &tier, &rarity, &targets, &rec.ObtainedFrom,
		&s.HP, &s.Attack, &s.DPS, &s.AttackSpeed, &s.InitialDelay, &s.MovementSpeed, &s.Range,
		&s.HitBack, &s.Cost, &s.Cooldown, &s.AfterDelay, &s.FinishTime, &rec.Forms,
	)
	if err != nil {
		return nil, err
	}
	rec.Tier = unit.Tier(tier)
	rec.Rarity = unit.Rarity(rarity)
	if len(targets) > 0 {
		rec.Targets = make([]unit.Target, len(targets))
		for i, t := range targets {
			rec.Targets[i] = unit.Target(t)
		}
	}
	if len(rec.Forms) == 0 {
		rec.Forms = nil
	}
	return &rec, nil
}
