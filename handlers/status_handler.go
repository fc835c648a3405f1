package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/registration-system/models"
	"github.com/Dosada05/registration-system/services"
)

type StatusHandler struct {
	statusService *services.StatusService
}

func NewStatusHandler(ss *services.StatusService) *StatusHandler {
	return &StatusHandler{statusService: ss}
}

// FindByStatus godoc
// @Summary Заявки в заданном статусе
// @Tags registrations
// @Param kind query string true "Вид заявки (choreography|coach|judge)"
// @Param status query string true "Статус (PENDING|SUBMITTED|REGISTERED)"
// @Param country query string false "Фильтр по стране"
// @Param tournamentId query string false "Фильтр по турниру"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /registrations [get]
func (h *StatusHandler) FindByStatus(w http.ResponseWriter, r *http.Request) {
	kind := models.RegistrationKind(r.URL.Query().Get("kind"))
	status := models.RegistrationStatus(r.URL.Query().Get("status"))
	country := queryStringPtr(r, "country")
	tournamentID := queryStringPtr(r, "tournamentId")

	switch kind {
	case models.KindChoreography:
		choreographies, err := h.statusService.FindChoreographiesByStatus(r.Context(), status, country, tournamentID)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"choreographies": choreographies}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
	case models.KindCoach:
		coaches, err := h.statusService.FindCoachesByStatus(r.Context(), status, country, tournamentID)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"coaches": coaches}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
	case models.KindJudge:
		judges, err := h.statusService.FindJudgesByStatus(r.Context(), status, country, tournamentID)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"judges": judges}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
	default:
		badRequestResponse(w, r, errors.New("kind query parameter must be choreography, coach or judge"))
	}
}

// UpdateStatusByIDs godoc
// @Summary Сменить статус по списку идентификаторов
// @Tags registrations
// @Description Ненайденный ID — ожидаемый исход, он попадает в errors, остальные переходы выполняются.
// @Accept json
// @Produce json
// @Success 200 {object} services.StatusBatchOutcome
// @Failure 400 {object} map[string]string
// @Router /registrations/status [patch]
func (h *StatusHandler) UpdateStatusByIDs(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RegistrationIDs []string                  `json:"registrationIds"`
		Status          models.RegistrationStatus `json:"status"`
		Notes           *string                   `json:"notes,omitempty"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.RegistrationIDs) == 0 {
		badRequestResponse(w, r, errors.New("registrationIds must not be empty"))
		return
	}

	outcome, err := h.statusService.UpdateStatusByIDs(r.Context(), input.RegistrationIDs, input.Status, input.Notes)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, outcome, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateStatusBatch godoc
// @Summary Массовый перевод статуса по фильтру
// @Tags registrations
// @Description Загружает все заявки вида в статусе fromStatus и переписывает их статус одной операцией. Возвращает число затронутых.
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /registrations/status/bulk [patch]
func (h *StatusHandler) UpdateStatusBatch(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Kind         models.RegistrationKind   `json:"kind"`
		FromStatus   models.RegistrationStatus `json:"fromStatus"`
		ToStatus     models.RegistrationStatus `json:"toStatus"`
		Country      *string                   `json:"country,omitempty"`
		TournamentID *string                   `json:"tournamentId,omitempty"`
		Notes        *string                   `json:"notes,omitempty"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	updated, err := h.statusService.UpdateStatusBatch(r.Context(), input.Kind, input.FromStatus, input.ToStatus, input.Country, input.TournamentID, input.Notes)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "updated": updated}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
