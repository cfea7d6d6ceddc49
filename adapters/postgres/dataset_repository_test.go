package postgres

import (
	"context"
	"math"
	"os"
	"testing"

	"gohappy/domain/core"
	"gohappy/domain/happiness"
	"gohappy/domain/snapshot"
	"gohappy/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRow_Conversion(t *testing.T) {
	rec := happiness.NewRecord("Switzerland", 2020)
	rec.CountryCode = "CHE"
	rec.Values[happiness.LifeLadder] = 7.508
	rec.Values[happiness.NegativeAffect] = 0.197

	id := core.NewID()
	row := toRow(id, rec)
	assert.Equal(t, id, row.SnapshotID)
	assert.True(t, row.CountryCode.Valid)
	assert.False(t, row.Region.Valid)
	assert.True(t, row.LifeLadder.Valid)
	assert.Equal(t, 7.508, row.LifeLadder.Float64)
	assert.False(t, row.Generosity.Valid)
	assert.Equal(t, 0.197, row.NegativeAffect.Float64)

	back := row.toRecord()
	assert.Equal(t, "Switzerland", back.CountryName)
	assert.Equal(t, "CHE", back.CountryCode)
	assert.Equal(t, 2020, back.Year)
	assert.Equal(t, 7.508, back.Value(happiness.LifeLadder))
	assert.True(t, math.IsNaN(back.Value(happiness.Generosity)))
}

// openTestDB connects to TEST_DATABASE_URL or skips
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.NewRunner().Run(context.Background(), db))
	return db
}

func TestDatasetRepository_SnapshotLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewDatasetRepository(db)
	ctx := context.Background()

	swiss := happiness.NewRecord("Switzerland", 2020)
	swiss.CountryCode = "CHE"
	swiss.Values[happiness.LifeLadder] = 7.508
	denmark := happiness.NewRecord("Denmark", 2020)
	denmark.Values[happiness.LifeLadder] = 7.515

	ds, err := happiness.NewDataset([]happiness.Record{swiss, denmark})
	require.NoError(t, err)

	snap := snapshot.New("test", "memory", core.NewChecksum([]byte(t.Name())), ds)
	require.NoError(t, repo.SaveSnapshot(ctx, snap, ds))
	t.Cleanup(func() {
		db.ExecContext(context.Background(), `DELETE FROM dataset_snapshots WHERE id = $1`, snap.ID)
	})

	got, records, err := repo.GetSnapshot(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.Name, got.Name)
	assert.Equal(t, 2, got.RecordCount)
	require.Len(t, records, 2)
	assert.Equal(t, "Denmark", records[0].CountryName)
	assert.Equal(t, "CHE", records[1].CountryCode)
	assert.True(t, math.IsNaN(records[1].Value(happiness.Generosity)))

	latest, _, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, latest.ID)

	list, err := repo.ListSnapshots(ctx, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	_, _, err = repo.GetSnapshot(ctx, core.NewID())
	assert.True(t, core.IsNotFoundError(err))
}
