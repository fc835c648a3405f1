package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/registration-system/models"
	"github.com/Dosada05/registration-system/repositories"
)

// CreateTournamentInput — запрос администратора на создание турнира.
type CreateTournamentInput struct {
	Name      string                `json:"name"`
	ShortName string                `json:"short_name"`
	Kind      models.TournamentKind `json:"kind"`
	StartDate time.Time             `json:"start_date"`
	EndDate   time.Time             `json:"end_date"`
	Location  *string               `json:"location,omitempty"`
	IsActive  bool                  `json:"is_active"`
}

// TournamentService инкапсулирует администрирование турниров.
// Ядро регистрации турниры не мутирует, только читает.
type TournamentService struct {
	repo       repositories.TournamentRepository
	strategies *StrategyResolver
}

func NewTournamentService(repo repositories.TournamentRepository, strategies *StrategyResolver) *TournamentService {
	return &TournamentService{repo: repo, strategies: strategies}
}

func (s *TournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	if err := s.validateKind(input.Kind); err != nil {
		return nil, err
	}
	if err := validateTournamentDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:      input.Name,
		ShortName: input.ShortName,
		Kind:      input.Kind,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Location:  input.Location,
		IsActive:  input.IsActive,
	}
	if err := s.repo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) GetTournamentByID(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) ListTournaments(ctx context.Context, activeOnly bool) ([]models.Tournament, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *TournamentService) UpdateTournament(ctx context.Context, id string, input CreateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		tournament.Name = input.Name
	}
	if input.ShortName != "" {
		tournament.ShortName = input.ShortName
	}
	if input.Kind != "" {
		if err := s.validateKind(input.Kind); err != nil {
			return nil, err
		}
		tournament.Kind = input.Kind
	}
	if !input.StartDate.IsZero() {
		tournament.StartDate = input.StartDate
	}
	if !input.EndDate.IsZero() {
		tournament.EndDate = input.EndDate
	}
	if input.Location != nil {
		tournament.Location = input.Location
	}
	tournament.IsActive = input.IsActive

	if err := validateTournamentDates(tournament.StartDate, tournament.EndDate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, tournament); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		}
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) DeleteTournament(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentInUse):
		return ErrTournamentInUse
	}
	return err
}

// validateKind дополнительно сверяет вид со стратегиями: турнир с видом
// без стратегии зарегистрировать заявку не сможет.
func (s *TournamentService) validateKind(kind models.TournamentKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTournamentKind, kind)
	}
	if _, err := s.strategies.Resolve(kind); err != nil {
		return err
	}
	return nil
}

func validateTournamentDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrTournamentDatesRequired
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: start date (%s) must be before end date (%s)",
			ErrTournamentInvalidDateRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}
