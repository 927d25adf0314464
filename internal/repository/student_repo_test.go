package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
)

func TestStudentRepositoryUpsertKeepsExistingValues(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	year := 2
	original := models.Student{Code: "S-100", FullName: "Amara Perera", Program: "Engineering", YearLevel: &year}
	require.NoError(t, repo.Upsert(context.Background(), &original))
	require.NotZero(t, original.ID)

	// Blank fields on a second upsert must not clobber the profile.
	update := models.Student{Code: "S-100", Program: "Computer Science"}
	require.NoError(t, repo.Upsert(context.Background(), &update))
	require.Equal(t, original.ID, update.ID)

	stored, err := repo.GetByCode(context.Background(), "S-100")
	require.NoError(t, err)
	require.Equal(t, "Amara Perera", stored.FullName)
	require.Equal(t, "Computer Science", stored.Program)
	require.NotNil(t, stored.YearLevel)
	require.Equal(t, 2, *stored.YearLevel)
}

func TestStudentRepositoryGetByCodeMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	_, err := repo.GetByCode(context.Background(), "missing")
	require.Error(t, err)
}
