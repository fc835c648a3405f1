package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/registration-system/models"
	"github.com/Dosada05/registration-system/repositories"
)

// StatusEvent — событие смены статуса, публикуемое подписчикам.
type StatusEvent struct {
	Kind   models.RegistrationKind   `json:"kind"`
	ID     string                    `json:"id"`
	Status models.RegistrationStatus `json:"status"`
}

// StatusBroadcaster доставляет события смены статуса подключённым клиентам.
type StatusBroadcaster interface {
	BroadcastStatusEvent(event StatusEvent)
}

// StatusBatchOutcome — результат смены статуса по списку идентификаторов.
type StatusBatchOutcome struct {
	Success bool     `json:"success"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

// StatusService управляет жизненным циклом заявок PENDING -> SUBMITTED ->
// REGISTERED. Ядро не запрещает ни один переход, включая откат из
// REGISTERED; монотонность — ответственность вызывающего.
type StatusService struct {
	choreoRepo repositories.ChoreographyRepository
	coachRepo  repositories.CoachRepository
	judgeRepo  repositories.JudgeRepository
	broadcast  StatusBroadcaster
	logger     *slog.Logger
}

func NewStatusService(
	choreoRepo repositories.ChoreographyRepository,
	coachRepo repositories.CoachRepository,
	judgeRepo repositories.JudgeRepository,
	broadcast StatusBroadcaster,
	logger *slog.Logger,
) *StatusService {
	return &StatusService{
		choreoRepo: choreoRepo,
		coachRepo:  coachRepo,
		judgeRepo:  judgeRepo,
		broadcast:  broadcast,
		logger:     logger,
	}
}

// FindChoreographiesByStatus — фильтрованное чтение программ.
func (s *StatusService) FindChoreographiesByStatus(ctx context.Context, status models.RegistrationStatus, country, tournamentID *string) ([]models.Choreography, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.choreoRepo.List(ctx, repositories.ListRegistrationsFilter{
		Status:       &status,
		Country:      country,
		TournamentID: tournamentID,
	})
}

// FindCoachesByStatus — фильтрованное чтение тренеров.
func (s *StatusService) FindCoachesByStatus(ctx context.Context, status models.RegistrationStatus, country, tournamentID *string) ([]models.Coach, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.coachRepo.List(ctx, repositories.ListRegistrationsFilter{
		Status:       &status,
		Country:      country,
		TournamentID: tournamentID,
	})
}

// FindJudgesByStatus — фильтрованное чтение судей.
func (s *StatusService) FindJudgesByStatus(ctx context.Context, status models.RegistrationStatus, country, tournamentID *string) ([]models.Judge, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.judgeRepo.List(ctx, repositories.ListRegistrationsFilter{
		Status:       &status,
		Country:      country,
		TournamentID: tournamentID,
	})
}

// UpdateStatus переводит одну заявку в новый статус. Возвращает false,
// а не ошибку, когда идентификатор не найден: при массовой сверке
// отсутствующий ID — ожидаемый исход, не исключение.
func (s *StatusService) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus, notes *string) (bool, error) {
	if !status.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	kinds := []struct {
		kind   models.RegistrationKind
		update func() (int64, error)
	}{
		{models.KindChoreography, func() (int64, error) { return s.choreoRepo.UpdateStatusByIDs(ctx, []string{id}, status, notes) }},
		{models.KindCoach, func() (int64, error) { return s.coachRepo.UpdateStatusByIDs(ctx, []string{id}, status, notes) }},
		{models.KindJudge, func() (int64, error) { return s.judgeRepo.UpdateStatusByIDs(ctx, []string{id}, status, notes) }},
	}

	for _, k := range kinds {
		affected, err := k.update()
		if err != nil {
			return false, err
		}
		if affected > 0 {
			s.publish(StatusEvent{Kind: k.kind, ID: id, Status: status})
			return true, nil
		}
	}
	return false, nil
}

// UpdateStatusByIDs применяет переход к каждому идентификатору и собирает
// поэлементные исходы, не прерываясь на ненайденных.
func (s *StatusService) UpdateStatusByIDs(ctx context.Context, ids []string, status models.RegistrationStatus, notes *string) (*StatusBatchOutcome, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	outcome := &StatusBatchOutcome{}
	for _, id := range ids {
		updated, err := s.UpdateStatus(ctx, id, status, notes)
		if err != nil {
			return nil, err
		}
		if !updated {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("registration %s not found", id))
			continue
		}
		outcome.Updated++
	}
	outcome.Success = len(outcome.Errors) == 0
	return outcome, nil
}

// UpdateStatusBatch загружает все заявки вида в статусе from по фильтрам,
// и переписывает их статус одним запросом. Чтение и запись не изолированы
// друг от друга: параллельный писатель может вмешаться между ними.
func (s *StatusService) UpdateStatusBatch(ctx context.Context, kind models.RegistrationKind, from, to models.RegistrationStatus, country, tournamentID *string, notes *string) (int64, error) {
	if !from.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, from)
	}
	if !to.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	filter := repositories.ListRegistrationsFilter{
		Status:       &from,
		Country:      country,
		TournamentID: tournamentID,
	}

	var ids []string
	switch kind {
	case models.KindChoreography:
		choreographies, err := s.choreoRepo.List(ctx, filter)
		if err != nil {
			return 0, err
		}
		for _, c := range choreographies {
			ids = append(ids, c.ID)
		}
	case models.KindCoach:
		coaches, err := s.coachRepo.List(ctx, filter)
		if err != nil {
			return 0, err
		}
		for _, c := range coaches {
			ids = append(ids, c.ID)
		}
	case models.KindJudge:
		judges, err := s.judgeRepo.List(ctx, filter)
		if err != nil {
			return 0, err
		}
		for _, j := range judges {
			ids = append(ids, j.ID)
		}
	default:
		return 0, fmt.Errorf("%w: unknown registration kind %q", ErrValidationFailed, kind)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	var affected int64
	var err error
	switch kind {
	case models.KindChoreography:
		affected, err = s.choreoRepo.UpdateStatusByIDs(ctx, ids, to, notes)
	case models.KindCoach:
		affected, err = s.coachRepo.UpdateStatusByIDs(ctx, ids, to, notes)
	case models.KindJudge:
		affected, err = s.judgeRepo.UpdateStatusByIDs(ctx, ids, to, notes)
	}
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		s.publish(StatusEvent{Kind: kind, ID: id, Status: to})
	}
	s.logger.InfoContext(ctx, "registration statuses updated in bulk",
		slog.String("kind", string(kind)),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.Int64("affected", affected))
	return affected, nil
}

func (s *StatusService) publish(event StatusEvent) {
	if s.broadcast != nil {
		s.broadcast.BroadcastStatusEvent(event)
	}
}
