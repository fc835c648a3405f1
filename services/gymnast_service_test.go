package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/registration-system/models"
)

func TestGymnastFindByFigIDPrefersRegistry(t *testing.T) {
	registry := newFakeResolver(licensedGymnast("FIG-100", "BRA"))
	service := NewGymnastService(registry, newFakeGymnastRepo(), testLogger())

	view, err := service.FindByFigID(context.Background(), "FIG-100")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "BRA", view.Country)
	assert.False(t, view.Local)
}

func TestGymnastFindByFigIDFallsBackToLocal(t *testing.T) {
	repo := newFakeGymnastRepo()
	service := NewGymnastService(newFakeResolver(), repo, testLogger())

	created, err := service.CreateLocalGymnast(context.Background(), CreateLocalGymnastInput{
		FigID:     "LOCAL-1",
		FirstName: "Joana",
		LastName:  "Costa",
		Country:   "bra",
		BirthDate: time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, created.IsLocal)
	assert.True(t, created.LicenseValid)
	assert.Equal(t, "BRA", created.Country)

	view, err := service.FindByFigID(context.Background(), "LOCAL-1")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.True(t, view.Local)
	assert.Equal(t, "Joana Costa", view.FullName)
}

func TestGymnastFindByFigIDRegistryDownStillResolvesLocal(t *testing.T) {
	registry := newFakeResolver()
	registry.err = errors.New("registry unavailable")

	repo := newFakeGymnastRepo()
	service := NewGymnastService(registry, repo, testLogger())

	_, err := service.CreateLocalGymnast(context.Background(), CreateLocalGymnastInput{
		FigID:     "LOCAL-1",
		FirstName: "Joana",
		LastName:  "Costa",
	})
	require.NoError(t, err)

	view, err := service.FindByFigID(context.Background(), "LOCAL-1")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.True(t, view.Local)
}

func TestGymnastFindByFigIDRegistryDownWithoutLocalRecord(t *testing.T) {
	registry := newFakeResolver()
	registry.err = errors.New("registry unavailable")

	service := NewGymnastService(registry, newFakeGymnastRepo(), testLogger())

	// Сбой реестра не маскируется под отсутствие гимнаста.
	_, err := service.FindByFigID(context.Background(), "FIG-500")
	require.ErrorIs(t, err, ErrRegistryUnavailable)
}

func TestGymnastFindByFigIDRegistryDownWithCachedExternalCopy(t *testing.T) {
	registry := newFakeResolver()
	registry.err = errors.New("registry unavailable")

	repo := newFakeGymnastRepo()
	require.NoError(t, repo.UpsertByFigID(context.Background(), nil, &models.Gymnast{
		FigID:     "FIG-100",
		FirstName: "Ana",
		LastName:  "Silva",
		Country:   "BRA",
		IsLocal:   false,
	}))

	service := NewGymnastService(registry, repo, testLogger())

	// Кэшированная внешняя копия без подтверждения реестра не спасает.
	_, err := service.FindByFigID(context.Background(), "FIG-100")
	require.ErrorIs(t, err, ErrRegistryUnavailable)
}

func TestGymnastFindByFigIDUnknownReturnsNil(t *testing.T) {
	service := NewGymnastService(newFakeResolver(), newFakeGymnastRepo(), testLogger())

	view, err := service.FindByFigID(context.Background(), "FIG-404")
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestGymnastCachedExternalCopyDoesNotResolve(t *testing.T) {
	// Запись без is_local — кэшированная копия внешнего реестра;
	// без подтверждения реестра она не считается разрешением.
	repo := newFakeGymnastRepo()
	service := NewGymnastService(newFakeResolver(), repo, testLogger())

	cached := &models.Gymnast{
		FigID:        "FIG-100",
		FullName:     "Ana Silva",
		Country:      "BRA",
		LicenseValid: true,
		IsLocal:      false,
	}
	require.NoError(t, repo.UpsertByFigID(context.Background(), nil, cached))

	view, err := service.FindByFigID(context.Background(), "FIG-100")
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestCreateLocalGymnastValidation(t *testing.T) {
	service := NewGymnastService(newFakeResolver(), newFakeGymnastRepo(), testLogger())

	_, err := service.CreateLocalGymnast(context.Background(), CreateLocalGymnastInput{FigID: " "})
	assert.ErrorIs(t, err, ErrEmptyFigID)

	_, err = service.CreateLocalGymnast(context.Background(), CreateLocalGymnastInput{FigID: "LOCAL-1"})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestCreateLocalGymnastDuplicateFigID(t *testing.T) {
	service := NewGymnastService(newFakeResolver(), newFakeGymnastRepo(), testLogger())

	input := CreateLocalGymnastInput{FigID: "LOCAL-1", FirstName: "Joana", LastName: "Costa"}
	_, err := service.CreateLocalGymnast(context.Background(), input)
	require.NoError(t, err)

	_, err = service.CreateLocalGymnast(context.Background(), input)
	assert.ErrorIs(t, err, ErrGymnastFigIDConflict)
}
