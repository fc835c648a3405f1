package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrNotFound             = errors.New("requested resource not found")
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrGymnastNotFound      = errors.New("gymnast not found")
	ErrChoreographyNotFound = errors.New("choreography not found")
	ErrCoachNotFound        = errors.New("coach not found")
	ErrJudgeNotFound        = errors.New("judge not found")
	ErrRegistrationNotFound = errors.New("registration not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed      = errors.New("validation failed")
	ErrQuotaExceeded         = errors.New("country choreography quota exceeded")
	ErrCountryNotEligible    = errors.New("country is not eligible for this tournament")
	ErrNoGymnastsProvided    = errors.New("at least one gymnast FIG ID is required")
	ErrEmptyFigID            = errors.New("gymnast FIG ID must not be empty")
	ErrDuplicateFigIDs       = errors.New("duplicate gymnast FIG IDs in request")
	ErrFigIDLooksInternal    = errors.New("FIG ID looks like an internal database key")
	ErrTypeCountMismatch     = errors.New("gymnast count does not match choreography type")
	ErrGymnastNotLicensed    = errors.New("gymnast license is not valid")
	ErrInvalidCategory       = errors.New("invalid choreography category")
	ErrInvalidType           = errors.New("invalid choreography type")
	ErrInvalidStatus         = errors.New("invalid registration status")
	ErrInvalidTournamentKind = errors.New("invalid tournament kind")
	ErrGymnastFigIDConflict  = errors.New("gymnast with this FIG ID already exists")

	// Ошибки конфликтов
	ErrAlreadyRegistered      = errors.New("already registered for this tournament")
	ErrTournamentNameConflict = errors.New("tournament name already exists")

	// Ошибки турниров
	ErrTournamentNameRequired     = errors.New("tournament name is required")
	ErrTournamentDatesRequired    = errors.New("tournament start and end dates are required")
	ErrTournamentInvalidDateRange = errors.New("tournament end date must be after start date")
	ErrTournamentInUse            = errors.New("tournament has registrations and cannot be deleted")

	// Ошибка конфигурации: вид турнира без стратегии. Это ошибка программиста,
	// а не пользователя — enum видов и карта стратегий должны меняться вместе.
	ErrStrategyNotConfigured = errors.New("no registration strategy configured for tournament kind")

	ErrRegistryUnavailable = errors.New("FIG registry is unavailable")
)
