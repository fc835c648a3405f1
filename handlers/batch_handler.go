package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/registration-system/services"
)

type BatchHandler struct {
	batchService *services.BatchService
}

func NewBatchHandler(bs *services.BatchService) *BatchHandler {
	return &BatchHandler{batchService: bs}
}

// ProcessBatch godoc
// @Summary Зарегистрировать смешанный набор заявок за один вызов
// @Tags registrations
// @Description Обрабатывает программы, тренеров и судей последовательно. Батч не транзакционен: при частичном успехе success=false, но всё успешное остаётся сохранённым.
// @Accept json
// @Produce json
// @Param body body services.BatchPayload true "Смешанный набор заявок"
// @Success 200 {object} services.BatchResult
// @Failure 400 {object} map[string]string "Некорректное тело запроса"
// @Router /registrations/batch [post]
func (h *BatchHandler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	var payload services.BatchPayload
	if err := readJSON(w, r, &payload); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if payload.Tournament.ID == "" {
		badRequestResponse(w, r, errors.New("tournament reference is required"))
		return
	}

	result := h.batchService.ProcessBatch(r.Context(), payload)

	// Частичная неудача — форма результата, а не HTTP-ошибка.
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSummary godoc
// @Summary Текущие заявки страны на турнире
// @Tags registrations
// @Description Возвращает сохранённые программы, тренеров и судей с итогами — для сверки клиентского состояния с серверным.
// @Produce json
// @Param country query string true "Страна"
// @Param tournamentId query string true "Tournament ID"
// @Success 200 {object} services.RegistrationSummary
// @Failure 400 {object} map[string]string
// @Router /registrations/summary [get]
func (h *BatchHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	country := r.URL.Query().Get("country")
	tournamentID := r.URL.Query().Get("tournamentId")
	if country == "" || tournamentID == "" {
		badRequestResponse(w, r, errors.New("country and tournamentId query parameters are required"))
		return
	}

	summary, err := h.batchService.GetRegistrationSummary(r.Context(), country, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
