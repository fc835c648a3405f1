package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/registration-system/models"
)

func TestStrategyResolver(t *testing.T) {
	resolver := NewStrategyResolver()

	championship, err := resolver.Resolve(models.KindChampionship)
	require.NoError(t, err)
	assert.Equal(t, 2, championship.MaxPerCountryPerCategory())

	cup, err := resolver.Resolve(models.KindCup)
	require.NoError(t, err)
	assert.Equal(t, 4, cup.MaxPerCountryPerCategory())

	_, err = resolver.Resolve(models.TournamentKind("FRIENDLY"))
	assert.ErrorIs(t, err, ErrStrategyNotConfigured)
}

func TestChampionshipStrategyValidate(t *testing.T) {
	strategy := championshipStrategy{}

	base := CreateChoreographyInput{
		Country:       "BRA",
		Category:      models.CategorySenior,
		GymnastFigIDs: []string{"FIG-1"},
	}

	tests := []struct {
		name          string
		mutate        func(*CreateChoreographyInput)
		existingCount int
		wantErr       error
	}{
		{name: "allows first registration", existingCount: 0},
		{name: "allows second registration", existingCount: 1},
		{
			name:          "rejects at quota",
			existingCount: 2,
			wantErr:       ErrQuotaExceeded,
		},
		{
			name:    "rejects empty gymnast list",
			mutate:  func(in *CreateChoreographyInput) { in.GymnastFigIDs = nil },
			wantErr: ErrNoGymnastsProvided,
		},
		{
			name:    "rejects non pan-american country",
			mutate:  func(in *CreateChoreographyInput) { in.Country = "FRA" },
			wantErr: ErrCountryNotEligible,
		},
		{
			name:   "country code is case insensitive",
			mutate: func(in *CreateChoreographyInput) { in.Country = "bra" },
		},
		{
			name:    "cup observers are not eligible for championships",
			mutate:  func(in *CreateChoreographyInput) { in.Country = "ESP" },
			wantErr: ErrCountryNotEligible,
		},
		{
			name:          "quota is checked before eligibility",
			mutate:        func(in *CreateChoreographyInput) { in.Country = "FRA" },
			existingCount: 2,
			wantErr:       ErrQuotaExceeded,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := base
			input.GymnastFigIDs = append([]string(nil), base.GymnastFigIDs...)
			if tc.mutate != nil {
				tc.mutate(&input)
			}
			err := strategy.Validate(input, tc.existingCount)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCupStrategyValidate(t *testing.T) {
	strategy := cupStrategy{}

	input := CreateChoreographyInput{
		Country:       "JPN",
		Category:      models.CategoryJunior,
		GymnastFigIDs: []string{"FIG-1"},
	}

	// Наблюдатели допускаются на кубки.
	assert.NoError(t, strategy.Validate(input, 0))
	assert.NoError(t, strategy.Validate(input, 3))
	assert.ErrorIs(t, strategy.Validate(input, 4), ErrQuotaExceeded)

	input.Country = "GER"
	assert.ErrorIs(t, strategy.Validate(input, 0), ErrCountryNotEligible)
}

func TestRequiredGymnastCounts(t *testing.T) {
	counts := map[models.ChoreographyType]int{
		models.TypeMensIndividual:   1,
		models.TypeWomensIndividual: 1,
		models.TypeMixedPair:        2,
		models.TypeTrio:             3,
		models.TypeGroup:            5,
		models.TypeDance:            8,
	}
	for choreoType, want := range counts {
		assert.Equal(t, want, choreoType.RequiredGymnastCount(), "type %s", choreoType)
	}
	assert.Equal(t, 0, models.ChoreographyType("SOLO").RequiredGymnastCount())
	assert.False(t, models.ChoreographyType("SOLO").IsValid())
}
