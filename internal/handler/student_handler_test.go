package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thilanga24/dropout-prevention-api/internal/config"
	"github.com/thilanga24/dropout-prevention-api/internal/models"
	"github.com/thilanga24/dropout-prevention-api/internal/repository"
	"github.com/thilanga24/dropout-prevention-api/internal/service"
	"github.com/thilanga24/dropout-prevention-api/internal/utils"
)

func newTestApp(t *testing.T) *fiber.App {
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

	students := repository.NewStudentRepository(db)
	signals := repository.NewSignalRepository(db)
	risks := repository.NewRiskRepository(db)
	recommendations := repository.NewRecommendationRepository(db)
	interventions := repository.NewInterventionRepository(db)

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.Nop()

	signalService := service.NewSignalService(students, signals, config.DefaultRuleThresholds(), validate, logger)
	timelineService := service.NewTimelineService(students, signals, risks, recommendations, interventions, logger)

	app := fiber.New()
	studentHandler := NewStudentHandler(signalService, timelineService, logger)
	studentHandler.Register(app.Group("/api/v1/students"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) utils.APIResponse {
	t.Helper()
	var envelope utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestStudentEndpointsHappyPath(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/students", map[string]interface{}{
		"code":      "S-700",
		"full_name": "Dinithi Perera",
		"program":   "BSc Software Engineering",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	require.True(t, envelope.Success)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/students/S-700/signals", map[string]interface{}{
		"current_gpa":          2.8,
		"previous_gpa":         3.4,
		"attendance_pct":       55,
		"lms_last_active_days": 20,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/students/S-700/signals/latest", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	envelope = decodeEnvelope(t, resp)
	require.True(t, envelope.Success)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/students/S-700/timeline", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStudentEndpointsErrorMapping(t *testing.T) {
	app := newTestApp(t)

	// Unknown students map to 404.
	resp := doJSON(t, app, http.MethodGet, "/api/v1/students/missing", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/students", map[string]interface{}{
		"code": "S-701",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Attendance above 100 fails struct validation.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/students/S-701/signals", map[string]interface{}{
		"current_gpa":    3.0,
		"attendance_pct": 130,
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	require.False(t, envelope.Success)

	// GPA above the configured scale is an invalid signal.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/students/S-701/signals", map[string]interface{}{
		"current_gpa":    4.9,
		"attendance_pct": 80,
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
