package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/registration-system/fig"
	"github.com/Dosada05/registration-system/models"
	"github.com/Dosada05/registration-system/repositories"
)

// GymnastService отвечает за разрешение гимнастов: объединяет кэшируемый
// внешний реестр FIG с локально созданными записями.
type GymnastService struct {
	registry fig.Registry
	repo     repositories.GymnastRepository
	logger   *slog.Logger
}

func NewGymnastService(
	registry fig.Registry,
	repo repositories.GymnastRepository,
	logger *slog.Logger,
) *GymnastService {
	return &GymnastService{
		registry: registry,
		repo:     repo,
		logger:   logger,
	}
}

// FindByFigID разрешает гимнаста: сначала внешний реестр, затем локально
// созданные записи. Возвращает (nil, nil), если FIG ID никому не известен.
func (s *GymnastService) FindByFigID(ctx context.Context, figID string) (*fig.GymnastView, error) {
	view, registryErr := s.registry.FindByFigID(ctx, figID)
	if registryErr != nil {
		// Реестр недоступен: локально созданные гимнасты всё равно
		// должны разрешаться.
		s.logger.WarnContext(ctx, "FIG registry lookup failed, falling back to local records",
			slog.String("fig_id", figID), slog.Any("error", registryErr))
	}
	if view != nil {
		return view, nil
	}

	local, err := s.repo.FindByFigID(ctx, figID)
	if err != nil {
		if errors.Is(err, repositories.ErrGymnastNotFound) {
			// Без локальной записи сбой реестра нельзя выдавать за
			// отсутствие гимнаста.
			if registryErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrRegistryUnavailable, registryErr)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve gymnast %s locally: %w", figID, err)
	}
	if !local.IsLocal {
		if registryErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrRegistryUnavailable, registryErr)
		}
		// Кэшированная копия внешней записи без подтверждения реестра
		// не считается разрешением.
		return nil, nil
	}
	return gymnastToView(local), nil
}

// CreateLocalGymnastInput — данные для ручного создания гимнаста,
// отсутствующего во внешнем реестре.
type CreateLocalGymnastInput struct {
	FigID     string    `json:"fig_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Gender    string    `json:"gender"`
	Country   string    `json:"country"`
	BirthDate time.Time `json:"birth_date"`
}

// CreateLocalGymnast создаёт гимнаста вручную. Лицензия локального гимнаста
// считается действительной, пока её не исправят.
func (s *GymnastService) CreateLocalGymnast(ctx context.Context, input CreateLocalGymnastInput) (*models.Gymnast, error) {
	if strings.TrimSpace(input.FigID) == "" {
		return nil, ErrEmptyFigID
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, fmt.Errorf("%w: gymnast first and last name are required", ErrValidationFailed)
	}

	gymnast := &models.Gymnast{
		FigID:        strings.TrimSpace(input.FigID),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		FullName:     input.FirstName + " " + input.LastName,
		Gender:       input.Gender,
		Country:      strings.ToUpper(input.Country),
		BirthDate:    input.BirthDate,
		LicenseValid: true,
		IsLocal:      true,
	}

	if err := s.repo.Create(ctx, gymnast); err != nil {
		if errors.Is(err, repositories.ErrGymnastFigIDConflict) {
			return nil, fmt.Errorf("%w: %s", ErrGymnastFigIDConflict, gymnast.FigID)
		}
		return nil, err
	}
	return gymnast, nil
}

func gymnastToView(g *models.Gymnast) *fig.GymnastView {
	return &fig.GymnastView{
		FigID:        g.FigID,
		FirstName:    g.FirstName,
		LastName:     g.LastName,
		FullName:     g.FullName,
		Gender:       g.Gender,
		Country:      g.Country,
		BirthDate:    g.BirthDate,
		LicenseValid: g.LicenseValid,
		Local:        g.IsLocal,
	}
}
