package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
)

func TestInterventionRepositoryUpdateTouchesOnlyWorkflowFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInterventionRepository(db)
	student := createStudent(t, db, "S-300")

	asOf := time.Date(2025, 4, 2, 14, 0, 0, 0, time.UTC)
	intervention := models.Intervention{
		StudentID: student.ID,
		AsOf:      asOf,
		Kind:      "advisor_meeting",
		Notes:     "initial outreach",
		Status:    models.InterventionStatusProposed,
	}
	require.NoError(t, repo.Create(context.Background(), &intervention))

	outcome := "student attended"
	updated, err := repo.Update(context.Background(), intervention.ID, InterventionUpdate{
		Status:  models.InterventionStatusInProgress,
		Outcome: &outcome,
	})
	require.NoError(t, err)
	require.Equal(t, models.InterventionStatusInProgress, updated.Status)
	require.Equal(t, "student attended", updated.Outcome)
	require.Equal(t, "advisor_meeting", updated.Kind)
	require.Equal(t, "initial outreach", updated.Notes)
	require.True(t, updated.AsOf.Equal(asOf))
}

func TestInterventionRepositoryUpdateMissingRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInterventionRepository(db)

	_, err := repo.Update(context.Background(), 9999, InterventionUpdate{Status: models.InterventionStatusCompleted})
	require.Error(t, err)
}
