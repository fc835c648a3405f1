package services

import (
	"fmt"
	"strings"

	"github.com/Dosada05/registration-system/models"
)

// RegistrationStrategy — правила допуска и квот для одного вида турнира.
// Чистое решение без побочных эффектов: все данные приходят аргументами.
type RegistrationStrategy interface {
	MaxPerCountryPerCategory() int
	EligibleCountries() []string
	Validate(input CreateChoreographyInput, existingCount int) error
}

// panAmericanFederations — федерации региона, допущенные на чемпионаты.
var panAmericanFederations = []string{
	"ARG", "ARU", "BOL", "BRA", "CAN", "CHI", "COL", "CRC", "CUB", "DOM",
	"ECU", "ESA", "GUA", "HON", "MEX", "PAN", "PAR", "PER", "PUR", "TTO",
	"URU", "USA", "VEN",
}

// cupObserverFederations — дополнительные федерации-наблюдатели,
// допускаемые только на кубки.
var cupObserverFederations = []string{"AZE", "ESP", "ITA", "JPN", "POR"}

type championshipStrategy struct{}

func (championshipStrategy) MaxPerCountryPerCategory() int { return 2 }

func (championshipStrategy) EligibleCountries() []string {
	return panAmericanFederations
}

func (s championshipStrategy) Validate(input CreateChoreographyInput, existingCount int) error {
	return validateAgainstStrategy(s, input, existingCount)
}

type cupStrategy struct{}

func (cupStrategy) MaxPerCountryPerCategory() int { return 4 }

func (cupStrategy) EligibleCountries() []string {
	countries := make([]string, 0, len(panAmericanFederations)+len(cupObserverFederations))
	countries = append(countries, panAmericanFederations...)
	countries = append(countries, cupObserverFederations...)
	return countries
}

func (s cupStrategy) Validate(input CreateChoreographyInput, existingCount int) error {
	return validateAgainstStrategy(s, input, existingCount)
}

// validateAgainstStrategy — общая последовательность проверок:
// квота, непустой список гимнастов, допуск страны.
func validateAgainstStrategy(s RegistrationStrategy, input CreateChoreographyInput, existingCount int) error {
	maxAllowed := s.MaxPerCountryPerCategory()
	if existingCount >= maxAllowed {
		return fmt.Errorf("%w: country %s already has %d of %d allowed choreographies in category %s",
			ErrQuotaExceeded, input.Country, existingCount, maxAllowed, input.Category)
	}
	if len(input.GymnastFigIDs) == 0 {
		return ErrNoGymnastsProvided
	}
	if !countryEligible(s.EligibleCountries(), input.Country) {
		return fmt.Errorf("%w: %s", ErrCountryNotEligible, input.Country)
	}
	return nil
}

func countryEligible(eligible []string, country string) bool {
	for _, c := range eligible {
		if strings.EqualFold(c, country) {
			return true
		}
	}
	return false
}

// StrategyResolver — закрытая карта вид турнира -> стратегия.
// Новый вид турнира требует нового элемента карты, места вызова не меняются.
type StrategyResolver struct {
	strategies map[models.TournamentKind]RegistrationStrategy
}

func NewStrategyResolver() *StrategyResolver {
	return &StrategyResolver{
		strategies: map[models.TournamentKind]RegistrationStrategy{
			models.KindChampionship: championshipStrategy{},
			models.KindCup:          cupStrategy{},
		},
	}
}

// Resolve возвращает стратегию для вида турнира. Отсутствие стратегии —
// фатальная ошибка конфигурации, а не пользовательская.
func (r *StrategyResolver) Resolve(kind models.TournamentKind) (RegistrationStrategy, error) {
	strategy, ok := r.strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStrategyNotConfigured, kind)
	}
	return strategy, nil
}
