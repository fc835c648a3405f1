package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/registration-system/fig"
	"github.com/Dosada05/registration-system/models"
	"github.com/Dosada05/registration-system/repositories"
	"github.com/google/uuid"
)

// GymnastResolver разрешает гимнаста по FIG ID. Возвращает (nil, nil),
// если гимнаст не известен ни реестру, ни локальным записям.
type GymnastResolver interface {
	FindByFigID(ctx context.Context, figID string) (*fig.GymnastView, error)
}

// CreateChoreographyInput — запрос на регистрацию программы.
type CreateChoreographyInput struct {
	Name             string                      `json:"name"`
	Country          string                      `json:"country"`
	Category         models.ChoreographyCategory `json:"category"`
	Type             models.ChoreographyType     `json:"type"`
	GymnastCount     int                         `json:"gymnastCount"`
	OldestGymnastAge int                         `json:"oldestGymnastAge"`
	GymnastFigIDs    []string                    `json:"gymnastFigIds"`
	Notes            *string                     `json:"notes,omitempty"`
	TournamentID     string                      `json:"tournamentId"`
}

// UpdateChoreographyInput — частичное обновление программы. Поля-указатели
// со значением nil не трогаются; nil-список гимнастов означает «не менять».
type UpdateChoreographyInput struct {
	Name             *string                      `json:"name,omitempty"`
	Category         *models.ChoreographyCategory `json:"category,omitempty"`
	Type             *models.ChoreographyType     `json:"type,omitempty"`
	GymnastCount     *int                         `json:"gymnastCount,omitempty"`
	OldestGymnastAge *int                         `json:"oldestGymnastAge,omitempty"`
	GymnastFigIDs    []string                     `json:"gymnastFigIds,omitempty"`
	Notes            *string                      `json:"notes,omitempty"`
}

// ChoreographyService — конвейер регистрации программ: валидация
// идентификаторов, стратегия квот, сверка тип/состав, разрешение гимнастов
// и транзакционное сохранение.
type ChoreographyService struct {
	tx             repositories.TxRunner
	repo           repositories.ChoreographyRepository
	gymnastRepo    repositories.GymnastRepository
	tournamentRepo repositories.TournamentRepository
	gymnasts       GymnastResolver
	strategies     *StrategyResolver
	logger         *slog.Logger
}

func NewChoreographyService(
	tx repositories.TxRunner,
	repo repositories.ChoreographyRepository,
	gymnastRepo repositories.GymnastRepository,
	tournamentRepo repositories.TournamentRepository,
	gymnasts GymnastResolver,
	strategies *StrategyResolver,
	logger *slog.Logger,
) *ChoreographyService {
	return &ChoreographyService{
		tx:             tx,
		repo:           repo,
		gymnastRepo:    gymnastRepo,
		tournamentRepo: tournamentRepo,
		gymnasts:       gymnasts,
		strategies:     strategies,
		logger:         logger,
	}
}

// CreateChoreography проводит запрос через весь конвейер. Либо проходит вся
// цепочка и пишется строка программы вместе со связями, либо не пишется ничего.
func (s *ChoreographyService) CreateChoreography(ctx context.Context, input CreateChoreographyInput) (*models.Choreography, error) {
	if err := validateFigIDList(input.GymnastFigIDs); err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	if !input.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, input.Category)
	}
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, input.Type)
	}

	country := strings.ToUpper(input.Country)

	strategy, err := s.strategies.Resolve(tournament.Kind)
	if err != nil {
		return nil, err
	}

	// Подсчёт и последующая вставка не изолированы от параллельных
	// регистраций той же страны; гонка известна и принята.
	existingCount, err := s.repo.CountByCountryCategoryAndTournament(ctx, country, input.Category, tournament.ID)
	if err != nil {
		return nil, err
	}
	if err := strategy.Validate(input, existingCount); err != nil {
		return nil, err
	}

	if err := validateTypeAgainstCount(input.Type, input.GymnastCount, len(input.GymnastFigIDs)); err != nil {
		return nil, err
	}

	resolved, err := s.resolveGymnasts(ctx, input.GymnastFigIDs)
	if err != nil {
		return nil, err
	}

	choreography := &models.Choreography{
		Name:             input.Name,
		Country:          country,
		Category:         input.Category,
		Type:             input.Type,
		GymnastCount:     input.GymnastCount,
		OldestGymnastAge: input.OldestGymnastAge,
		Notes:            input.Notes,
		TournamentID:     tournament.ID,
	}

	err = s.tx.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		gymnastIDs, err := s.upsertGymnasts(ctx, exec, resolved)
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, exec, choreography); err != nil {
			return err
		}
		return s.repo.AttachGymnasts(ctx, exec, choreography.ID, gymnastIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "choreography registered",
		slog.String("choreography_id", choreography.ID),
		slog.String("country", country),
		slog.String("type", string(input.Type)),
		slog.String("tournament_id", tournament.ID))

	// Перечитываем с отношениями: ответ отражает ровно то, что посчитала БД
	// (в том числе статус по умолчанию).
	return s.repo.GetWithRelations(ctx, choreography.ID)
}

// UpdateChoreography повторяет проверки стратегии и разрешение гимнастов
// только если изменился набор FIG ID; остальные поля просто сливаются.
func (s *ChoreographyService) UpdateChoreography(ctx context.Context, id string, input UpdateChoreographyInput) (*models.Choreography, error) {
	existing, err := s.repo.GetWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChoreographyNotFound) {
			return nil, ErrChoreographyNotFound
		}
		return nil, err
	}

	storedCategory := existing.Category

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, *input.Category)
		}
		existing.Category = *input.Category
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidType, *input.Type)
		}
		existing.Type = *input.Type
	}
	if input.GymnastCount != nil {
		existing.GymnastCount = *input.GymnastCount
	}
	if input.OldestGymnastAge != nil {
		existing.OldestGymnastAge = *input.OldestGymnastAge
	}
	if input.Notes != nil {
		existing.Notes = input.Notes
	}

	figIDsChanged := input.GymnastFigIDs != nil && !sameFigIDSet(existing.Gymnasts, input.GymnastFigIDs)

	if !figIDsChanged {
		if err := validateTypeAgainstCount(existing.Type, existing.GymnastCount, len(existing.Gymnasts)); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, nil, existing); err != nil {
			return nil, err
		}
		return s.repo.GetWithRelations(ctx, id)
	}

	if err := validateFigIDList(input.GymnastFigIDs); err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, existing.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	strategy, err := s.strategies.Resolve(tournament.Kind)
	if err != nil {
		return nil, err
	}
	existingCount, err := s.repo.CountByCountryCategoryAndTournament(ctx, existing.Country, existing.Category, tournament.ID)
	if err != nil {
		return nil, err
	}
	// Сама обновляемая программа входит в подсчёт только если её сохранённая
	// категория совпадает с новой; при смене категории место не освобождается.
	if storedCategory == existing.Category && existingCount > 0 {
		existingCount--
	}

	strategyInput := CreateChoreographyInput{
		Name:          existing.Name,
		Country:       existing.Country,
		Category:      existing.Category,
		Type:          existing.Type,
		GymnastFigIDs: input.GymnastFigIDs,
		TournamentID:  tournament.ID,
	}
	if err := strategy.Validate(strategyInput, existingCount); err != nil {
		return nil, err
	}

	if err := validateTypeAgainstCount(existing.Type, existing.GymnastCount, len(input.GymnastFigIDs)); err != nil {
		return nil, err
	}

	resolved, err := s.resolveGymnasts(ctx, input.GymnastFigIDs)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		gymnastIDs, err := s.upsertGymnasts(ctx, exec, resolved)
		if err != nil {
			return err
		}
		if err := s.repo.Update(ctx, exec, existing); err != nil {
			return err
		}
		return s.repo.ReplaceGymnasts(ctx, exec, existing.ID, gymnastIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetWithRelations(ctx, id)
}

func (s *ChoreographyService) DeleteChoreography(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrChoreographyNotFound) {
		return ErrChoreographyNotFound
	}
	return err
}

func (s *ChoreographyService) GetChoreographyByID(ctx context.Context, id string) (*models.Choreography, error) {
	c, err := s.repo.GetWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChoreographyNotFound) {
			return nil, ErrChoreographyNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *ChoreographyService) ListChoreographies(ctx context.Context, country, tournamentID *string) ([]models.Choreography, error) {
	return s.repo.List(ctx, repositories.ListRegistrationsFilter{
		Country:      country,
		TournamentID: tournamentID,
	})
}

// resolveGymnasts разрешает каждый FIG ID и проверяет лицензии. Лицензия
// локальных гимнастов не проверяется.
func (s *ChoreographyService) resolveGymnasts(ctx context.Context, figIDs []string) ([]*fig.GymnastView, error) {
	resolved := make([]*fig.GymnastView, 0, len(figIDs))
	for _, figID := range figIDs {
		view, err := s.gymnasts.FindByFigID(ctx, figID)
		if err != nil {
			return nil, err
		}
		if view == nil {
			return nil, fmt.Errorf("%w: FIG ID %s", ErrGymnastNotFound, figID)
		}
		if !view.Local && !view.LicenseValid {
			return nil, fmt.Errorf("%w: %s (FIG ID %s)", ErrGymnastNotLicensed, view.FullName, view.FigID)
		}
		resolved = append(resolved, view)
	}
	return resolved, nil
}

// upsertGymnasts синхронизирует локальные строки гимнастов со свежими
// данными разрешения и возвращает их внутренние ключи.
func (s *ChoreographyService) upsertGymnasts(ctx context.Context, exec repositories.SQLExecutor, resolved []*fig.GymnastView) ([]string, error) {
	gymnastIDs := make([]string, 0, len(resolved))
	for _, view := range resolved {
		gymnast := &models.Gymnast{
			FigID:        view.FigID,
			FirstName:    view.FirstName,
			LastName:     view.LastName,
			FullName:     view.FullName,
			Gender:       view.Gender,
			Country:      view.Country,
			BirthDate:    view.BirthDate,
			LicenseValid: view.LicenseValid,
			IsLocal:      view.Local,
		}
		if err := s.gymnastRepo.UpsertByFigID(ctx, exec, gymnast); err != nil {
			return nil, err
		}
		gymnastIDs = append(gymnastIDs, gymnast.ID)
	}
	return gymnastIDs, nil
}

// validateFigIDList проверяет идентификаторы до любого I/O: непустые,
// без дубликатов, не похожие на внутренние UUID-ключи БД.
func validateFigIDList(figIDs []string) error {
	seen := make(map[string]struct{}, len(figIDs))
	for _, id := range figIDs {
		if strings.TrimSpace(id) == "" {
			return ErrEmptyFigID
		}
		if _, err := uuid.Parse(id); err == nil {
			return fmt.Errorf("%w: %q", ErrFigIDLooksInternal, id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateFigIDs, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func validateTypeAgainstCount(choreoType models.ChoreographyType, gymnastCount, figIDCount int) error {
	required := choreoType.RequiredGymnastCount()
	if gymnastCount != required {
		return fmt.Errorf("%w: type %s requires exactly %d gymnasts, got %d",
			ErrTypeCountMismatch, choreoType, required, gymnastCount)
	}
	if figIDCount != gymnastCount {
		return fmt.Errorf("%w: %d FIG IDs provided for declared gymnast count %d",
			ErrTypeCountMismatch, figIDCount, gymnastCount)
	}
	return nil
}

func sameFigIDSet(gymnasts []models.Gymnast, figIDs []string) bool {
	if len(gymnasts) != len(figIDs) {
		return false
	}
	existing := make(map[string]struct{}, len(gymnasts))
	for _, g := range gymnasts {
		existing[g.FigID] = struct{}{}
	}
	for _, id := range figIDs {
		if _, ok := existing[id]; !ok {
			return false
		}
	}
	return true
}
