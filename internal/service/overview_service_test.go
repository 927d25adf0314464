package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
	"github.com/thilanga24/dropout-prevention-api/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.SignalSnapshot{},
		&models.RiskSnapshot{},
		&models.Recommendation{},
		&models.Intervention{},
	))
	return db
}

func TestRiskOverviewServiceOrderingAndCaching(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	db := setupTestDB(t)

	high := models.Student{Code: "S-400", FullName: "Nadia Silva"}
	low := models.Student{Code: "S-401", FullName: "Kasun Jay"}
	require.NoError(t, db.Create(&high).Error)
	require.NoError(t, db.Create(&low).Error)

	now := time.Now().UTC().Truncate(time.Second)
	rows := []models.RiskSnapshot{
		{StudentID: high.ID, AsOf: now, Score: 75, Level: models.RiskLevelHigh},
		{StudentID: low.ID, AsOf: now, Score: 20, Level: models.RiskLevelLow},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	svc := NewRiskOverviewService(repository.NewRiskRepository(db), redisClient, time.Minute, zerolog.Nop())

	ctx := context.Background()
	first, err := svc.GetOverview(ctx, 50)
	require.NoError(t, err)
	require.Len(t, first.Entries, 2)
	require.Equal(t, "S-400", first.Entries[0].StudentCode)
	require.Equal(t, 75, first.Entries[0].Score)
	require.Equal(t, "S-401", first.Entries[1].StudentCode)

	// A new snapshot does not surface until the cache expires.
	fresh := models.RiskSnapshot{StudentID: low.ID, AsOf: now.Add(time.Hour), Score: 90, Level: models.RiskLevelHigh}
	require.NoError(t, db.Create(&fresh).Error)

	cached, err := svc.GetOverview(ctx, 50)
	require.NoError(t, err)
	require.Len(t, cached.Entries, 2)
	require.Equal(t, "S-401", cached.Entries[1].StudentCode)
	require.Equal(t, 20, cached.Entries[1].Score)

	mini.FastForward(2 * time.Minute)

	refreshed, err := svc.GetOverview(ctx, 50)
	require.NoError(t, err)
	require.Equal(t, "S-401", refreshed.Entries[0].StudentCode)
	require.Equal(t, 90, refreshed.Entries[0].Score)
}
