package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/registration-system/models"
	"github.com/Dosada05/registration-system/repositories"
)

// CreateCoachInput — запрос на регистрацию тренера.
type CreateCoachInput struct {
	FigID            string  `json:"figId"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	FullName         string  `json:"fullName"`
	Gender           string  `json:"gender"`
	Country          string  `json:"country"`
	Level            string  `json:"level"`
	LevelDescription string  `json:"levelDescription"`
	TournamentID     string  `json:"tournamentId"`
	Notes            *string `json:"notes,omitempty"`
}

// UpdateCoachInput — частичное обновление тренера. Перенос на другой турнир
// повторно проверяет существование турнира.
type UpdateCoachInput struct {
	FirstName        *string `json:"firstName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	FullName         *string `json:"fullName,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	Country          *string `json:"country,omitempty"`
	Level            *string `json:"level,omitempty"`
	LevelDescription *string `json:"levelDescription,omitempty"`
	TournamentID     *string `json:"tournamentId,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// CoachBatchResult — результат регистрации массива тренеров: частичный успех
// это не исключение, а форма ответа.
type CoachBatchResult struct {
	Success bool           `json:"success"`
	Results []models.Coach `json:"results"`
	Errors  []string       `json:"errors,omitempty"`
}

// CoachService инкапсулирует регистрацию тренеров на турнир.
type CoachService struct {
	repo           repositories.CoachRepository
	tournamentRepo repositories.TournamentRepository
	logger         *slog.Logger
}

func NewCoachService(
	repo repositories.CoachRepository,
	tournamentRepo repositories.TournamentRepository,
	logger *slog.Logger,
) *CoachService {
	return &CoachService{
		repo:           repo,
		tournamentRepo: tournamentRepo,
		logger:         logger,
	}
}

// CreateCoach регистрирует одного тренера: турнир должен существовать,
// пара (FIG ID, турнир) — не повторяться.
func (s *CoachService) CreateCoach(ctx context.Context, input CreateCoachInput) (*models.Coach, error) {
	if strings.TrimSpace(input.FigID) == "" {
		return nil, ErrEmptyFigID
	}

	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	existing, err := s.repo.FindByFigAndTournament(ctx, input.FigID, input.TournamentID)
	if err != nil && !errors.Is(err, repositories.ErrCoachNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: coach with FIG ID %s", ErrAlreadyRegistered, input.FigID)
	}

	coach := &models.Coach{
		FigID:            strings.TrimSpace(input.FigID),
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		FullName:         input.FullName,
		Gender:           input.Gender,
		Country:          strings.ToUpper(input.Country),
		Level:            input.Level,
		LevelDescription: input.LevelDescription,
		TournamentID:     input.TournamentID,
		Notes:            input.Notes,
	}

	if err := s.repo.Create(ctx, coach); err != nil {
		if errors.Is(err, repositories.ErrCoachConflict) {
			return nil, fmt.Errorf("%w: coach with FIG ID %s", ErrAlreadyRegistered, input.FigID)
		}
		return nil, err
	}
	return coach, nil
}

// CreateCoaches регистрирует список по одному: ошибка элемента записывается
// и обработка продолжается со следующего.
func (s *CoachService) CreateCoaches(ctx context.Context, inputs []CreateCoachInput) *CoachBatchResult {
	result := &CoachBatchResult{Results: make([]models.Coach, 0, len(inputs))}
	for _, input := range inputs {
		coach, err := s.CreateCoach(ctx, input)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("coach %s (%s): %v", input.FullName, input.FigID, err))
			continue
		}
		result.Results = append(result.Results, *coach)
	}
	result.Success = len(result.Errors) == 0
	return result
}

func (s *CoachService) GetCoachByID(ctx context.Context, id string) (*models.Coach, error) {
	coach, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCoachNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	return coach, nil
}

func (s *CoachService) FindAllCoaches(ctx context.Context, country, tournamentID *string) ([]models.Coach, error) {
	return s.repo.List(ctx, repositories.ListRegistrationsFilter{
		Country:      country,
		TournamentID: tournamentID,
	})
}

func (s *CoachService) UpdateCoach(ctx context.Context, id string, input UpdateCoachInput) (*models.Coach, error) {
	coach, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCoachNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}

	if input.TournamentID != nil && *input.TournamentID != coach.TournamentID {
		if _, err := s.tournamentRepo.GetByID(ctx, *input.TournamentID); err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return nil, ErrTournamentNotFound
			}
			return nil, err
		}
		coach.TournamentID = *input.TournamentID
	}
	if input.FirstName != nil {
		coach.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		coach.LastName = *input.LastName
	}
	if input.FullName != nil {
		coach.FullName = *input.FullName
	}
	if input.Gender != nil {
		coach.Gender = *input.Gender
	}
	if input.Country != nil {
		coach.Country = strings.ToUpper(*input.Country)
	}
	if input.Level != nil {
		coach.Level = *input.Level
	}
	if input.LevelDescription != nil {
		coach.LevelDescription = *input.LevelDescription
	}
	if input.Notes != nil {
		coach.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, coach); err != nil {
		if errors.Is(err, repositories.ErrCoachConflict) {
			return nil, fmt.Errorf("%w: coach with FIG ID %s", ErrAlreadyRegistered, coach.FigID)
		}
		return nil, err
	}
	return coach, nil
}

func (s *CoachService) DeleteCoach(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrCoachNotFound) {
		return ErrCoachNotFound
	}
	return err
}
