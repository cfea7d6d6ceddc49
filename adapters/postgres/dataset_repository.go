package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"gohappy/domain/core"
	"gohappy/domain/happiness"
	"gohappy/domain/snapshot"
	"gohappy/internal"
	"gohappy/ports"

	"github.com/jmoiron/sqlx"
)

var logger = internal.DefaultLogger.With("DatasetRepository")

// insertBatchSize keeps a batch well below the PostgreSQL bind parameter limit
const insertBatchSize = 500

// datasetRepository implements the DatasetRepository interface
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

// recordRow is the happiness_records row layout
type recordRow struct {
	SnapshotID     core.ID         `db:"snapshot_id"`
	CountryName    string          `db:"country_name"`
	CountryCode    sql.NullString  `db:"country_code"`
	Region         sql.NullString  `db:"region"`
	Year           int             `db:"year"`
	LifeLadder     sql.NullFloat64 `db:"life_ladder"`
	LogGDP         sql.NullFloat64 `db:"log_gdp"`
	SocialSupport  sql.NullFloat64 `db:"social_support"`
	LifeExpectancy sql.NullFloat64 `db:"life_expectancy"`
	Freedom        sql.NullFloat64 `db:"freedom"`
	Generosity     sql.NullFloat64 `db:"generosity"`
	Corruption     sql.NullFloat64 `db:"corruption"`
	PositiveAffect sql.NullFloat64 `db:"positive_affect"`
	NegativeAffect sql.NullFloat64 `db:"negative_affect"`
}

// values returns the feature columns in feature order
func (r *recordRow) values() [happiness.FeatureCount]*sql.NullFloat64 {
	return [happiness.FeatureCount]*sql.NullFloat64{
		&r.LifeLadder, &r.LogGDP, &r.SocialSupport, &r.LifeExpectancy, &r.Freedom,
		&r.Generosity, &r.Corruption, &r.PositiveAffect, &r.NegativeAffect,
	}
}

func toRow(id core.ID, rec happiness.Record) recordRow {
	row := recordRow{
		SnapshotID:  id,
		CountryName: rec.CountryName,
		CountryCode: sql.NullString{String: rec.CountryCode, Valid: rec.CountryCode != ""},
		Region:      sql.NullString{String: rec.Region, Valid: rec.Region != ""},
		Year:        rec.Year,
	}
	for i, col := range row.values() {
		v := rec.Values[i]
		*col = sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v)}
	}
	return row
}

func (r recordRow) toRecord() happiness.Record {
	rec := happiness.NewRecord(r.CountryName, r.Year)
	rec.CountryCode = r.CountryCode.String
	rec.Region = r.Region.String
	for i, col := range r.values() {
		if col.Valid {
			rec.Values[i] = col.Float64
		}
	}
	return rec
}

const insertRecordSQL = `INSERT INTO happiness_records (
	snapshot_id, country_name, country_code, region, year,
	life_ladder, log_gdp, social_support, life_expectancy, freedom,
	generosity, corruption, positive_affect, negative_affect
) VALUES (
	:snapshot_id, :country_name, :country_code, :region, :year,
	:life_ladder, :log_gdp, :social_support, :life_expectancy, :freedom,
	:generosity, :corruption, :positive_affect, :negative_affect
)`

const snapshotColumns = `id, name, source, checksum, record_count, country_count, first_year, last_year, created_at`

// SaveSnapshot stores the snapshot row and its records in one transaction
func (r *datasetRepository) SaveSnapshot(ctx context.Context, snap *snapshot.Snapshot, ds *happiness.Dataset) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `INSERT INTO dataset_snapshots (`+snapshotColumns+`)
		VALUES (:id, :name, :source, :checksum, :record_count, :country_count, :first_year, :last_year, :created_at)`, snap)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	records := ds.Records()
	for start := 0; start < len(records); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := make([]recordRow, 0, end-start)
		for _, rec := range records[start:end] {
			batch = append(batch, toRow(snap.ID, rec))
		}
		if _, err := tx.NamedExecContext(ctx, insertRecordSQL, batch); err != nil {
			return fmt.Errorf("failed to insert records %d-%d: %w", start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	logger.Info("saved snapshot %s (%d records, %s)", snap.ID, len(records), snap.Span())
	return nil
}

// LatestSnapshot returns the most recently created snapshot and its records
func (r *datasetRepository) LatestSnapshot(ctx context.Context) (*snapshot.Snapshot, []happiness.Record, error) {
	var snap snapshot.Snapshot
	err := r.db.GetContext(ctx, &snap, `SELECT `+snapshotColumns+`
		FROM dataset_snapshots ORDER BY created_at DESC, id DESC LIMIT 1`)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, core.ErrSnapshotNotFound
		}
		return nil, nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	records, err := r.loadRecords(ctx, snap.ID)
	if err != nil {
		return nil, nil, err
	}
	return &snap, records, nil
}

// GetSnapshot retrieves a snapshot by its ID together with its records
func (r *datasetRepository) GetSnapshot(ctx context.Context, id core.ID) (*snapshot.Snapshot, []happiness.Record, error) {
	var snap snapshot.Snapshot
	err := r.db.GetContext(ctx, &snap, `SELECT `+snapshotColumns+` FROM dataset_snapshots WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, fmt.Errorf("%w: %s", core.ErrSnapshotNotFound, id)
		}
		return nil, nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	records, err := r.loadRecords(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &snap, records, nil
}

// ListSnapshots returns snapshots newest first
func (r *datasetRepository) ListSnapshots(ctx context.Context, limit int) ([]*snapshot.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	var snaps []*snapshot.Snapshot
	err := r.db.SelectContext(ctx, &snaps, `SELECT `+snapshotColumns+`
		FROM dataset_snapshots ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snaps, nil
}

func (r *datasetRepository) loadRecords(ctx context.Context, id core.ID) ([]happiness.Record, error) {
	var rows []recordRow
	err := r.db.SelectContext(ctx, &rows, `SELECT
		snapshot_id, country_name, country_code, region, year,
		life_ladder, log_gdp, social_support, life_expectancy, freedom,
		generosity, corruption, positive_affect, negative_affect
	FROM happiness_records WHERE snapshot_id = $1
	ORDER BY year, country_name`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	records := make([]happiness.Record, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}
	return records, nil
}
