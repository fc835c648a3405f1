package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/registration-system/models"
	"github.com/Dosada05/registration-system/repositories"
	"golang.org/x/sync/errgroup"
)

// ChoreographyRegistrar, CoachRegistrar и JudgeRegistrar — конвейеры,
// которые оркестратор вызывает поэлементно.
type ChoreographyRegistrar interface {
	CreateChoreography(ctx context.Context, input CreateChoreographyInput) (*models.Choreography, error)
}

type CoachRegistrar interface {
	CreateCoach(ctx context.Context, input CreateCoachInput) (*models.Coach, error)
}

type JudgeRegistrar interface {
	CreateJudge(ctx context.Context, input CreateJudgeInput) (*models.Judge, error)
}

// TournamentRef — ссылка на турнир, общая для всего батча. Клиенты часто
// отправляют обратно полный объект турнира, поэтому принимаем и его
// описательные поля; оркестратору нужен только ID.
type TournamentRef struct {
	ID        string                `json:"id"`
	Name      string                `json:"name,omitempty"`
	ShortName string                `json:"short_name,omitempty"`
	Kind      models.TournamentKind `json:"kind,omitempty"`
	StartDate *time.Time            `json:"start_date,omitempty"`
	EndDate   *time.Time            `json:"end_date,omitempty"`
	Location  *string               `json:"location,omitempty"`
	IsActive  *bool                 `json:"is_active,omitempty"`
}

// BatchPayload — смешанный набор заявок одной делегации на один турнир.
type BatchPayload struct {
	Choreographies []CreateChoreographyInput `json:"choreographies,omitempty"`
	Coaches        []CreateCoachInput        `json:"coaches,omitempty"`
	Judges         []CreateJudgeInput        `json:"judges,omitempty"`
	Tournament     TournamentRef             `json:"tournament"`
	Country        string                    `json:"country"`
}

// BatchResults — то, что фактически сохранилось. Источник истины для
// вызывающего: из запроса состав восстанавливать нельзя.
type BatchResults struct {
	Choreographies []models.Choreography `json:"choreographies"`
	Coaches        []models.Coach        `json:"coaches"`
	Judges         []models.Judge        `json:"judges"`
}

// BatchResult — агрегат с частичным успехом: success=true только когда
// ни один элемент не упал.
type BatchResult struct {
	Success bool         `json:"success"`
	Results BatchResults `json:"results"`
	Errors  []string     `json:"errors,omitempty"`
}

// SummaryTotals — итоги по видам заявок.
type SummaryTotals struct {
	Choreographies int `json:"choreographies"`
	Coaches        int `json:"coaches"`
	Judges         int `json:"judges"`
	All            int `json:"all"`
}

// RegistrationSummary — текущее состояние заявок страны на турнире,
// для сверки клиентского состояния с серверным.
type RegistrationSummary struct {
	Country        string                `json:"country"`
	TournamentID   string                `json:"tournament_id"`
	Choreographies []models.Choreography `json:"choreographies"`
	Coaches        []models.Coach        `json:"coaches"`
	Judges         []models.Judge        `json:"judges"`
	Totals         SummaryTotals         `json:"totals"`
}

// BatchService регистрирует смешанный набор заявок за один вызов.
// Батч не транзакционен: успешные элементы остаются сохранёнными,
// даже если последующие падают.
type BatchService struct {
	choreographies ChoreographyRegistrar
	coaches        CoachRegistrar
	judges         JudgeRegistrar
	choreoRepo     repositories.ChoreographyRepository
	coachRepo      repositories.CoachRepository
	judgeRepo      repositories.JudgeRepository
	logger         *slog.Logger
}

func NewBatchService(
	choreographies ChoreographyRegistrar,
	coaches CoachRegistrar,
	judges JudgeRegistrar,
	choreoRepo repositories.ChoreographyRepository,
	coachRepo repositories.CoachRepository,
	judgeRepo repositories.JudgeRepository,
	logger *slog.Logger,
) *BatchService {
	return &BatchService{
		choreographies: choreographies,
		coaches:        coaches,
		judges:         judges,
		choreoRepo:     choreoRepo,
		coachRepo:      coachRepo,
		judgeRepo:      judgeRepo,
		logger:         logger,
	}
}

// ProcessBatch обрабатывает виды в фиксированном порядке (программы,
// тренеры, судьи), внутри вида — по одному элементу. Ошибка элемента
// записывается, обработка продолжается со следующего.
func (s *BatchService) ProcessBatch(ctx context.Context, payload BatchPayload) *BatchResult {
	result := &BatchResult{
		Results: BatchResults{
			Choreographies: make([]models.Choreography, 0, len(payload.Choreographies)),
			Coaches:        make([]models.Coach, 0, len(payload.Coaches)),
			Judges:         make([]models.Judge, 0, len(payload.Judges)),
		},
	}

	for _, input := range payload.Choreographies {
		if input.TournamentID == "" {
			input.TournamentID = payload.Tournament.ID
		}
		if input.Country == "" {
			input.Country = payload.Country
		}
		choreography, err := s.choreographies.CreateChoreography(ctx, input)
		if err != nil {
			s.logger.WarnContext(ctx, "batch: choreography registration failed",
				slog.String("name", input.Name), slog.Any("error", err))
			result.Errors = append(result.Errors, fmt.Sprintf("choreography %q: %v", input.Name, err))
			continue
		}
		result.Results.Choreographies = append(result.Results.Choreographies, *choreography)
	}

	for _, input := range payload.Coaches {
		if input.TournamentID == "" {
			input.TournamentID = payload.Tournament.ID
		}
		if input.Country == "" {
			input.Country = payload.Country
		}
		coach, err := s.coaches.CreateCoach(ctx, input)
		if err != nil {
			s.logger.WarnContext(ctx, "batch: coach registration failed",
				slog.String("fig_id", input.FigID), slog.Any("error", err))
			result.Errors = append(result.Errors, fmt.Sprintf("coach %s (%s): %v", input.FullName, input.FigID, err))
			continue
		}
		result.Results.Coaches = append(result.Results.Coaches, *coach)
	}

	for _, input := range payload.Judges {
		if input.TournamentID == "" {
			input.TournamentID = payload.Tournament.ID
		}
		if input.Country == "" {
			input.Country = payload.Country
		}
		judge, err := s.judges.CreateJudge(ctx, input)
		if err != nil {
			s.logger.WarnContext(ctx, "batch: judge registration failed",
				slog.String("fig_id", input.FigID), slog.Any("error", err))
			result.Errors = append(result.Errors, fmt.Sprintf("judge %s (%s): %v", input.FullName, input.FigID, err))
			continue
		}
		result.Results.Judges = append(result.Results.Judges, *judge)
	}

	result.Success = len(result.Errors) == 0
	return result
}

// GetRegistrationSummary возвращает текущие заявки страны на турнире.
// Три независимых чтения выполняются параллельно; конвейеры записи
// это не затрагивает.
func (s *BatchService) GetRegistrationSummary(ctx context.Context, country, tournamentID string) (*RegistrationSummary, error) {
	summary := &RegistrationSummary{
		Country:      country,
		TournamentID: tournamentID,
	}
	filter := repositories.ListRegistrationsFilter{
		Country:      &country,
		TournamentID: &tournamentID,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		choreographies, err := s.choreoRepo.List(gctx, filter)
		if err != nil {
			return err
		}
		summary.Choreographies = choreographies
		return nil
	})
	g.Go(func() error {
		coaches, err := s.coachRepo.List(gctx, filter)
		if err != nil {
			return err
		}
		summary.Coaches = coaches
		return nil
	})
	g.Go(func() error {
		judges, err := s.judgeRepo.List(gctx, filter)
		if err != nil {
			return err
		}
		summary.Judges = judges
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load registration summary: %w", err)
	}

	summary.Totals = SummaryTotals{
		Choreographies: len(summary.Choreographies),
		Coaches:        len(summary.Coaches),
		Judges:         len(summary.Judges),
	}
	summary.Totals.All = summary.Totals.Choreographies + summary.Totals.Coaches + summary.Totals.Judges
	return summary, nil
}
