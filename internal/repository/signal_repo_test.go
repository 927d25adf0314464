package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
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

func createStudent(t *testing.T, db *gorm.DB, code string) models.Student {
	t.Helper()
	student := models.Student{Code: code, FullName: "Student " + code, Program: "CS"}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func TestSignalRepositoryLatestPrefersNewestRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSignalRepository(db)
	student := createStudent(t, db, "S-001")

	asOf := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	older := models.SignalSnapshot{StudentID: student.ID, AsOf: asOf.Add(-time.Hour), CurrentGPA: 3.5, AttendancePct: 90}
	require.NoError(t, repo.Append(context.Background(), &older))

	// Two rows share an as_of; the later insertion wins.
	first := models.SignalSnapshot{StudentID: student.ID, AsOf: asOf, CurrentGPA: 3.0, AttendancePct: 80}
	second := models.SignalSnapshot{StudentID: student.ID, AsOf: asOf, CurrentGPA: 2.5, AttendancePct: 70}
	require.NoError(t, repo.Append(context.Background(), &first))
	require.NoError(t, repo.Append(context.Background(), &second))

	latest, err := repo.LatestForStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, latest.ID)
	require.Equal(t, 2.5, latest.CurrentGPA)
}

func TestSignalRepositoryListLatestOnePerStudent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSignalRepository(db)
	alice := createStudent(t, db, "S-010")
	bob := createStudent(t, db, "S-011")

	now := time.Now().UTC().Truncate(time.Second)
	rows := []models.SignalSnapshot{
		{StudentID: alice.ID, AsOf: now.Add(-2 * time.Hour), CurrentGPA: 3.0, AttendancePct: 85},
		{StudentID: alice.ID, AsOf: now, CurrentGPA: 2.5, AttendancePct: 55},
		{StudentID: bob.ID, AsOf: now.Add(-time.Hour), CurrentGPA: 3.8, AttendancePct: 95},
	}
	for i := range rows {
		require.NoError(t, repo.Append(context.Background(), &rows[i]))
	}

	latest, err := repo.ListLatest(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, latest, 2)

	byStudent := map[uint]models.SignalSnapshot{}
	for _, snapshot := range latest {
		byStudent[snapshot.StudentID] = snapshot
		require.NotEmpty(t, snapshot.Student.Code, "expected student preloaded")
	}
	require.Equal(t, 2.5, byStudent[alice.ID].CurrentGPA)
	require.Equal(t, 3.8, byStudent[bob.ID].CurrentGPA)
}

func TestSignalRepositoryHistoryAscending(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSignalRepository(db)
	student := createStudent(t, db, "S-020")

	base := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	// Insert out of chronological order.
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		snapshot := models.SignalSnapshot{StudentID: student.ID, AsOf: base.Add(offset), CurrentGPA: 3.0, AttendancePct: 80}
		require.NoError(t, repo.Append(context.Background(), &snapshot))
	}

	history, err := repo.History(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i := 1; i < len(history); i++ {
		require.False(t, history[i].AsOf.Before(history[i-1].AsOf))
	}
}
