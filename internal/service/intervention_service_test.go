package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/thilanga24/dropout-prevention-api/internal/dto"
	"github.com/thilanga24/dropout-prevention-api/internal/models"
	"github.com/thilanga24/dropout-prevention-api/internal/repository"
)

func TestInterventionServiceWorkflow(t *testing.T) {
	db := setupTestDB(t)
	student := models.Student{Code: "S-500", FullName: "Ishara Fernando"}
	require.NoError(t, db.Create(&student).Error)

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewInterventionService(
		repository.NewStudentRepository(db),
		repository.NewInterventionRepository(db),
		validate,
		zerolog.Nop(),
	)

	ctx := context.Background()
	created, err := svc.Create(ctx, "S-500", dto.InterventionCreateRequest{
		Kind:  "advisor_meeting",
		Notes: "reach out about attendance",
	})
	require.NoError(t, err)
	require.Equal(t, models.InterventionStatusProposed, created.Status)

	inProgress, err := svc.Update(ctx, created.ID, dto.InterventionUpdateRequest{Status: models.InterventionStatusInProgress})
	require.NoError(t, err)
	require.Equal(t, models.InterventionStatusInProgress, inProgress.Status)

	outcome := "met, study plan agreed"
	completed, err := svc.Update(ctx, created.ID, dto.InterventionUpdateRequest{
		Status:  models.InterventionStatusCompleted,
		Outcome: &outcome,
	})
	require.NoError(t, err)
	require.Equal(t, models.InterventionStatusCompleted, completed.Status)
	require.Equal(t, outcome, completed.Outcome)

	// Completed is terminal.
	_, err = svc.Update(ctx, created.ID, dto.InterventionUpdateRequest{Status: models.InterventionStatusInProgress})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestInterventionServiceRejectsSkippedStates(t *testing.T) {
	db := setupTestDB(t)
	student := models.Student{Code: "S-501"}
	require.NoError(t, db.Create(&student).Error)

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewInterventionService(
		repository.NewStudentRepository(db),
		repository.NewInterventionRepository(db),
		validate,
		zerolog.Nop(),
	)

	ctx := context.Background()
	created, err := svc.Create(ctx, "S-501", dto.InterventionCreateRequest{Kind: "tutoring_referral"})
	require.NoError(t, err)

	// proposed -> completed skips the workflow.
	_, err = svc.Update(ctx, created.ID, dto.InterventionUpdateRequest{Status: models.InterventionStatusCompleted})
	require.ErrorIs(t, err, ErrInvalidTransition)
}
