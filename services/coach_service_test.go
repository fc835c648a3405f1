package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/registration-system/models"
)

func coachTestTournaments() (*models.Tournament, *models.Tournament) {
	championship := &models.Tournament{
		ID:        "b7a1f3c0-0000-4000-8000-000000000001",
		Name:      "Pan American Championship 2026",
		Kind:      models.KindChampionship,
		StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
	}
	cup := &models.Tournament{
		ID:        "b7a1f3c0-0000-4000-8000-000000000002",
		Name:      "Pan American Cup 2026",
		Kind:      models.KindCup,
		StartDate: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC),
	}
	return championship, cup
}

func TestCreateCoach(t *testing.T) {
	championship, _ := coachTestTournaments()
	service := NewCoachService(newFakeCoachRepo(), newFakeTournamentRepo(championship), testLogger())

	coach, err := service.CreateCoach(context.Background(), CreateCoachInput{
		FigID:        "COACH-1",
		FullName:     "Carlos Mendez",
		Country:      "mex",
		Level:        "L3",
		TournamentID: championship.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, coach.ID)
	assert.Equal(t, "MEX", coach.Country, "country is normalized to upper case")
	assert.Equal(t, models.StatusPending, coach.Status)
}

func TestCreateCoachEmptyFigID(t *testing.T) {
	championship, _ := coachTestTournaments()
	service := NewCoachService(newFakeCoachRepo(), newFakeTournamentRepo(championship), testLogger())

	_, err := service.CreateCoach(context.Background(), CreateCoachInput{
		FigID:        "   ",
		TournamentID: championship.ID,
	})
	assert.ErrorIs(t, err, ErrEmptyFigID)
}

func TestCreateCoachDuplicatePerTournament(t *testing.T) {
	championship, cup := coachTestTournaments()
	service := NewCoachService(newFakeCoachRepo(), newFakeTournamentRepo(championship, cup), testLogger())

	input := CreateCoachInput{
		FigID:        "COACH-1",
		FullName:     "Carlos Mendez",
		Country:      "MEX",
		TournamentID: championship.ID,
	}

	_, err := service.CreateCoach(context.Background(), input)
	require.NoError(t, err)

	// Та же пара (FIG ID, турнир) — отказ.
	_, err = service.CreateCoach(context.Background(), input)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// Тот же тренер на другом турнире — допустимо.
	input.TournamentID = cup.ID
	_, err = service.CreateCoach(context.Background(), input)
	assert.NoError(t, err)
}

func TestCreateCoachTournamentNotFound(t *testing.T) {
	service := NewCoachService(newFakeCoachRepo(), newFakeTournamentRepo(), testLogger())

	_, err := service.CreateCoach(context.Background(), CreateCoachInput{
		FigID:        "COACH-1",
		TournamentID: "b7a1f3c0-0000-4000-8000-00000000ffff",
	})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestCreateCoachesPartialFailure(t *testing.T) {
	championship, _ := coachTestTournaments()
	service := NewCoachService(newFakeCoachRepo(), newFakeTournamentRepo(championship), testLogger())

	inputs := []CreateCoachInput{
		{FigID: "COACH-1", FullName: "Carlos Mendez", Country: "MEX", TournamentID: championship.ID},
		{FigID: "", FullName: "No FIG", Country: "MEX", TournamentID: championship.ID},
		{FigID: "COACH-2", FullName: "Lucia Torres", Country: "ARG", TournamentID: championship.ID},
	}

	result := service.CreateCoaches(context.Background(), inputs)
	assert.False(t, result.Success)
	assert.Len(t, result.Results, 2)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "No FIG")
}

func TestUpdateCoachMoveToAnotherTournament(t *testing.T) {
	championship, cup := coachTestTournaments()
	service := NewCoachService(newFakeCoachRepo(), newFakeTournamentRepo(championship, cup), testLogger())

	coach, err := service.CreateCoach(context.Background(), CreateCoachInput{
		FigID:        "COACH-1",
		FullName:     "Carlos Mendez",
		Country:      "MEX",
		TournamentID: championship.ID,
	})
	require.NoError(t, err)

	updated, err := service.UpdateCoach(context.Background(), coach.ID, UpdateCoachInput{
		TournamentID: &cup.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, cup.ID, updated.TournamentID)

	missing := "b7a1f3c0-0000-4000-8000-00000000ffff"
	_, err = service.UpdateCoach(context.Background(), coach.ID, UpdateCoachInput{
		TournamentID: &missing,
	})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestDeleteCoach(t *testing.T) {
	championship, _ := coachTestTournaments()
	service := NewCoachService(newFakeCoachRepo(), newFakeTournamentRepo(championship), testLogger())

	coach, err := service.CreateCoach(context.Background(), CreateCoachInput{
		FigID:        "COACH-1",
		TournamentID: championship.ID,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteCoach(context.Background(), coach.ID))
	assert.ErrorIs(t, service.DeleteCoach(context.Background(), coach.ID), ErrCoachNotFound)
}
