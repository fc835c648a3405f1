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

// CreateJudgeInput — запрос на регистрацию судьи.
type CreateJudgeInput struct {
	FigID               string  `json:"figId"`
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	FullName            string  `json:"fullName"`
	Gender              string  `json:"gender"`
	Country             string  `json:"country"`
	Category            string  `json:"category"`
	CategoryDescription string  `json:"categoryDescription"`
	TournamentID        string  `json:"tournamentId"`
	Notes               *string `json:"notes,omitempty"`
}

// UpdateJudgeInput — частичное обновление судьи.
type UpdateJudgeInput struct {
	FirstName           *string `json:"firstName,omitempty"`
	LastName            *string `json:"lastName,omitempty"`
	FullName            *string `json:"fullName,omitempty"`
	Gender              *string `json:"gender,omitempty"`
	Country             *string `json:"country,omitempty"`
	Category            *string `json:"category,omitempty"`
	CategoryDescription *string `json:"categoryDescription,omitempty"`
	TournamentID        *string `json:"tournamentId,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

// JudgeBatchResult — результат регистрации массива судей.
type JudgeBatchResult struct {
	Success bool           `json:"success"`
	Results []models.Judge `json:"results"`
	Errors  []string       `json:"errors,omitempty"`
}

// JudgeService инкапсулирует регистрацию судей на турнир.
type JudgeService struct {
	repo           repositories.JudgeRepository
	tournamentRepo repositories.TournamentRepository
	logger         *slog.Logger
}

func NewJudgeService(
	repo repositories.JudgeRepository,
	tournamentRepo repositories.TournamentRepository,
	logger *slog.Logger,
) *JudgeService {
	return &JudgeService{
		repo:           repo,
		tournamentRepo: tournamentRepo,
		logger:         logger,
	}
}

func (s *JudgeService) CreateJudge(ctx context.Context, input CreateJudgeInput) (*models.Judge, error) {
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
	if err != nil && !errors.Is(err, repositories.ErrJudgeNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: judge with FIG ID %s", ErrAlreadyRegistered, input.FigID)
	}

	judge := &models.Judge{
		FigID:               strings.TrimSpace(input.FigID),
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		FullName:            input.FullName,
		Gender:              input.Gender,
		Country:             strings.ToUpper(input.Country),
		Category:            input.Category,
		CategoryDescription: input.CategoryDescription,
		TournamentID:        input.TournamentID,
		Notes:               input.Notes,
	}

	if err := s.repo.Create(ctx, judge); err != nil {
		if errors.Is(err, repositories.ErrJudgeConflict) {
			return nil, fmt.Errorf("%w: judge with FIG ID %s", ErrAlreadyRegistered, input.FigID)
		}
		return nil, err
	}
	return judge, nil
}

func (s *JudgeService) CreateJudges(ctx context.Context, inputs []CreateJudgeInput) *JudgeBatchResult {
	result := &JudgeBatchResult{Results: make([]models.Judge, 0, len(inputs))}
	for _, input := range inputs {
		judge, err := s.CreateJudge(ctx, input)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("judge %s (%s): %v", input.FullName, input.FigID, err))
			continue
		}
		result.Results = append(result.Results, *judge)
	}
	result.Success = len(result.Errors) == 0
	return result
}

func (s *JudgeService) GetJudgeByID(ctx context.Context, id string) (*models.Judge, error) {
	judge, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrJudgeNotFound) {
			return nil, ErrJudgeNotFound
		}
		return nil, err
	}
	return judge, nil
}

func (s *JudgeService) FindAllJudges(ctx context.Context, country, tournamentID *string) ([]models.Judge, error) {
	return s.repo.List(ctx, repositories.ListRegistrationsFilter{
		Country:      country,
		TournamentID: tournamentID,
	})
}

func (s *JudgeService) UpdateJudge(ctx context.Context, id string, input UpdateJudgeInput) (*models.Judge, error) {
	judge, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrJudgeNotFound) {
			return nil, ErrJudgeNotFound
		}
		return nil, err
	}

	if input.TournamentID != nil && *input.TournamentID != judge.TournamentID {
		if _, err := s.tournamentRepo.GetByID(ctx, *input.TournamentID); err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return nil, ErrTournamentNotFound
			}
			return nil, err
		}
		judge.TournamentID = *input.TournamentID
	}
	if input.FirstName != nil {
		judge.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		judge.LastName = *input.LastName
	}
	if input.FullName != nil {
		judge.FullName = *input.FullName
	}
	if input.Gender != nil {
		judge.Gender = *input.Gender
	}
	if input.Country != nil {
		judge.Country = strings.ToUpper(*input.Country)
	}
	if input.Category != nil {
		judge.Category = *input.Category
	}
	if input.CategoryDescription != nil {
		judge.CategoryDescription = *input.CategoryDescription
	}
	if input.Notes != nil {
		judge.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, judge); err != nil {
		if errors.Is(err, repositories.ErrJudgeConflict) {
			return nil, fmt.Errorf("%w: judge with FIG ID %s", ErrAlreadyRegistered, judge.FigID)
		}
		return nil, err
	}
	return judge, nil
}

func (s *JudgeService) DeleteJudge(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrJudgeNotFound) {
		return ErrJudgeNotFound
	}
	return err
}
