package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/registration-system/models"
	"github.com/Dosada05/registration-system/repositories"
)

type statusFixture struct {
	service     *StatusService
	choreoRepo  *fakeChoreographyRepo
	coachRepo   *fakeCoachRepo
	judgeRepo   *fakeJudgeRepo
	broadcaster *fakeBroadcaster
}

func newStatusFixture(t *testing.T) *statusFixture {
	t.Helper()
	choreoRepo := newFakeChoreographyRepo()
	coachRepo := newFakeCoachRepo()
	judgeRepo := newFakeJudgeRepo()
	broadcaster := &fakeBroadcaster{}
	return &statusFixture{
		service:     NewStatusService(choreoRepo, coachRepo, judgeRepo, broadcaster, testLogger()),
		choreoRepo:  choreoRepo,
		coachRepo:   coachRepo,
		judgeRepo:   judgeRepo,
		broadcaster: broadcaster,
	}
}

func (fx *statusFixture) seedCoach(t *testing.T, figID, country, tournamentID string) *models.Coach {
	t.Helper()
	coach := &models.Coach{FigID: figID, Country: country, TournamentID: tournamentID}
	require.NoError(t, fx.coachRepo.Create(context.Background(), coach))
	return coach
}

func (fx *statusFixture) seedChoreography(t *testing.T, name, country, tournamentID string) *models.Choreography {
	t.Helper()
	c := &models.Choreography{
		Name:         name,
		Country:      country,
		Category:     models.CategorySenior,
		Type:         models.TypeTrio,
		GymnastCount: 3,
		TournamentID: tournamentID,
	}
	require.NoError(t, fx.choreoRepo.Create(context.Background(), nil, c))
	return c
}

func TestUpdateStatusSearchesAllKinds(t *testing.T) {
	fx := newStatusFixture(t)
	coach := fx.seedCoach(t, "COACH-1", "BRA", "t-1")

	updated, err := fx.service.UpdateStatus(context.Background(), coach.ID, models.StatusSubmitted, nil)
	require.NoError(t, err)
	assert.True(t, updated)

	stored, err := fx.coachRepo.FindByID(context.Background(), coach.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, stored.Status)

	events := fx.broadcaster.Events()
	require.Len(t, events, 1)
	assert.Equal(t, models.KindCoach, events[0].Kind)
	assert.Equal(t, coach.ID, events[0].ID)
	assert.Equal(t, models.StatusSubmitted, events[0].Status)
}

func TestUpdateStatusUnknownIDReturnsFalse(t *testing.T) {
	fx := newStatusFixture(t)

	updated, err := fx.service.UpdateStatus(context.Background(), "missing-id", models.StatusSubmitted, nil)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Empty(t, fx.broadcaster.Events())
}

func TestUpdateStatusRejectsInvalidStatus(t *testing.T) {
	fx := newStatusFixture(t)
	_, err := fx.service.UpdateStatus(context.Background(), "any", models.RegistrationStatus("APPROVED"), nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusByIDsCollectsMissing(t *testing.T) {
	fx := newStatusFixture(t)
	coach := fx.seedCoach(t, "COACH-1", "BRA", "t-1")
	choreo := fx.seedChoreography(t, "Trio One", "BRA", "t-1")

	outcome, err := fx.service.UpdateStatusByIDs(context.Background(),
		[]string{coach.ID, "missing-id", choreo.ID}, models.StatusRegistered, nil)
	require.NoError(t, err)

	assert.False(t, outcome.Success)
	assert.Equal(t, 2, outcome.Updated)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "missing-id")
	assert.Len(t, fx.broadcaster.Events(), 2)
}

func TestUpdateStatusBatchFiltersPrecisely(t *testing.T) {
	fx := newStatusFixture(t)

	// Три программы BRA на t-1, одна ARG, одна BRA на другом турнире.
	for i := 0; i < 3; i++ {
		fx.seedChoreography(t, "BRA program", "BRA", "t-1")
	}
	fx.seedChoreography(t, "ARG program", "ARG", "t-1")
	fx.seedChoreography(t, "BRA elsewhere", "BRA", "t-2")

	country := "BRA"
	tournamentID := "t-1"
	affected, err := fx.service.UpdateStatusBatch(context.Background(),
		models.KindChoreography, models.StatusPending, models.StatusSubmitted,
		&country, &tournamentID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	assert.Len(t, fx.broadcaster.Events(), 3)

	// Повторный запуск из того же статуса ничего не находит.
	affected, err = fx.service.UpdateStatusBatch(context.Background(),
		models.KindChoreography, models.StatusPending, models.StatusSubmitted,
		&country, &tournamentID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	// Не затронутые фильтром записи остались в PENDING.
	pending := models.StatusPending
	remaining, err := fx.choreoRepo.List(context.Background(), repositories.ListRegistrationsFilter{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestUpdateStatusBatchUnknownKind(t *testing.T) {
	fx := newStatusFixture(t)
	_, err := fx.service.UpdateStatusBatch(context.Background(),
		models.RegistrationKind("team"), models.StatusPending, models.StatusSubmitted, nil, nil, nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestFindByStatusRejectsInvalidStatus(t *testing.T) {
	fx := newStatusFixture(t)
	_, err := fx.service.FindCoachesByStatus(context.Background(), "APPROVED", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestFindCoachesByStatus(t *testing.T) {
	fx := newStatusFixture(t)
	coach := fx.seedCoach(t, "COACH-1", "BRA", "t-1")
	fx.seedCoach(t, "COACH-2", "ARG", "t-1")

	_, err := fx.service.UpdateStatus(context.Background(), coach.ID, models.StatusSubmitted, nil)
	require.NoError(t, err)

	submitted, err := fx.service.FindCoachesByStatus(context.Background(), models.StatusSubmitted, nil, nil)
	require.NoError(t, err)
	require.Len(t, submitted, 1)
	assert.Equal(t, "COACH-1", submitted[0].FigID)
}
