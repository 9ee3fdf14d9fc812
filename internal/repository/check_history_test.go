package repository

import (
	"context"
	"testing"
	"time"

	"gumroad-relay/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) CheckHistoryRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.CheckRecord{}))

	return NewCheckHistoryRepository(db)
}

func TestRecordAndRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, active := range []bool{true, false, true} {
		err := repo.Record(ctx, &model.CheckRecord{
			Email:      "x@y.com",
			ProductID:  "p1",
			Active:     active,
			TotalSales: i + 1,
			CheckedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	records, err := repo.Recent(ctx, 2)
	require.NoError(t, err)

	require.Len(t, records, 2)
	// newest first
	assert.Equal(t, 3, records[0].TotalSales)
	assert.Equal(t, 2, records[1].TotalSales)
}

func TestRecentEmpty(t *testing.T) {
	repo := newTestRepo(t)

	records, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
