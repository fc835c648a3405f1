package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/Dosada05/registration-system/services"
	"github.com/go-chi/chi/v5"
)

type CoachHandler struct {
	coachService *services.CoachService
}

func NewCoachHandler(cs *services.CoachService) *CoachHandler {
	return &CoachHandler{coachService: cs}
}

// Create godoc
// @Summary Зарегистрировать тренера или список тренеров
// @Tags coaches
// @Description Принимает один объект или массив. Ошибки элементов собираются, обработка не прерывается.
// @Accept json
// @Produce json
// @Success 201 {object} services.CoachBatchResult "Все элементы созданы"
// @Success 200 {object} services.CoachBatchResult "Частичный успех: success=false и список ошибок"
// @Failure 400 {object} map[string]string "Некорректное тело запроса"
// @Router /coaches [post]
func (h *CoachHandler) Create(w http.ResponseWriter, r *http.Request) {
	inputs, err := decodeCoachInputs(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result := h.coachService.CreateCoaches(r.Context(), inputs)

	status := http.StatusCreated
	if !result.Success {
		// Частичный успех — всё равно HTTP-успех; у вызывающего есть
		// список ошибок и фактически созданные записи.
		status = http.StatusOK
	}
	if err := writeJSON(w, status, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// decodeCoachInputs принимает как один объект, так и массив объектов.
func decodeCoachInputs(w http.ResponseWriter, r *http.Request) ([]services.CreateCoachInput, error) {
	var raw json.RawMessage
	if err := readJSON(w, r, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var inputs []services.CreateCoachInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, err
		}
		return inputs, nil
	}

	var input services.CreateCoachInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, err
	}
	return []services.CreateCoachInput{input}, nil
}

// List godoc
// @Summary Список тренеров
// @Tags coaches
// @Param country query string false "Фильтр по стране"
// @Param tournamentId query string false "Фильтр по турниру"
// @Success 200 {object} map[string]interface{}
// @Router /coaches [get]
func (h *CoachHandler) List(w http.ResponseWriter, r *http.Request) {
	country := queryStringPtr(r, "country")
	tournamentID := queryStringPtr(r, "tournamentId")

	coaches, err := h.coachService.FindAllCoaches(r.Context(), country, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"coaches": coaches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CoachHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	coach, err := h.coachService.GetCoachByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"coach": coach}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update godoc
// @Summary Обновить тренера
// @Tags coaches
// @Description Перенос на другой турнир повторно проверяет его существование.
// @Accept json
// @Produce json
// @Param id path string true "Coach ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /coaches/{id} [put]
func (h *CoachHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input services.UpdateCoachInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	coach, err := h.coachService.UpdateCoach(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"coach": coach}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CoachHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.coachService.DeleteCoach(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
