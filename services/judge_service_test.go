package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJudgeDuplicatePerTournament(t *testing.T) {
	championship, cup := coachTestTournaments()
	service := NewJudgeService(newFakeJudgeRepo(), newFakeTournamentRepo(championship, cup), testLogger())

	input := CreateJudgeInput{
		FigID:               "JUDGE-1",
		FullName:            "Marta Diaz",
		Country:             "chi",
		Category:            "1",
		CategoryDescription: "International Category 1",
		TournamentID:        championship.ID,
	}

	judge, err := service.CreateJudge(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "CHI", judge.Country)

	_, err = service.CreateJudge(context.Background(), input)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	input.TournamentID = cup.ID
	_, err = service.CreateJudge(context.Background(), input)
	assert.NoError(t, err)
}

func TestCreateJudgesPartialFailure(t *testing.T) {
	championship, _ := coachTestTournaments()
	service := NewJudgeService(newFakeJudgeRepo(), newFakeTournamentRepo(championship), testLogger())

	inputs := []CreateJudgeInput{
		{FigID: "JUDGE-1", FullName: "Marta Diaz", Country: "CHI", TournamentID: championship.ID},
		{FigID: "JUDGE-1", FullName: "Marta Diaz", Country: "CHI", TournamentID: championship.ID},
		{FigID: "JUDGE-2", FullName: "Pedro Rojas", Country: "PER", TournamentID: championship.ID},
	}

	result := service.CreateJudges(context.Background(), inputs)
	assert.False(t, result.Success)
	assert.Len(t, result.Results, 2)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "JUDGE-1")
}

func TestDeleteJudge(t *testing.T) {
	championship, _ := coachTestTournaments()
	service := NewJudgeService(newFakeJudgeRepo(), newFakeTournamentRepo(championship), testLogger())

	judge, err := service.CreateJudge(context.Background(), CreateJudgeInput{
		FigID:        "JUDGE-1",
		TournamentID: championship.ID,
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteJudge(context.Background(), judge.ID))
	assert.ErrorIs(t, service.DeleteJudge(context.Background(), judge.ID), ErrJudgeNotFound)
}
