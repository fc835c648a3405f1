package handlers

import (
	"net/http"

	"github.com/Dosada05/registration-system/services"
	"github.com/go-chi/chi/v5"
)

type ChoreographyHandler struct {
	choreographyService *services.ChoreographyService
}

func NewChoreographyHandler(cs *services.ChoreographyService) *ChoreographyHandler {
	return &ChoreographyHandler{choreographyService: cs}
}

// Create godoc
// @Summary Зарегистрировать программу
// @Tags choreographies
// @Description Проводит запрос через полный конвейер: валидация FIG ID, квоты страны, сверка тип/состав, лицензии гимнастов.
// @Accept json
// @Produce json
// @Param body body services.CreateChoreographyInput true "Данные программы"
// @Success 201 {object} map[string]interface{} "Программа создана"
// @Failure 400 {object} map[string]string "Ошибка валидации, квоты или допуска"
// @Failure 404 {object} map[string]string "Турнир или гимнаст не найден"
// @Router /choreographies [post]
func (h *ChoreographyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateChoreographyInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	choreography, err := h.choreographyService.CreateChoreography(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"choreography": choreography}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update godoc
// @Summary Обновить программу
// @Tags choreographies
// @Description Замена набора гимнастов повторно запускает проверки стратегии и лицензий.
// @Accept json
// @Produce json
// @Param id path string true "Choreography ID"
// @Param body body services.UpdateChoreographyInput true "Изменяемые поля"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /choreographies/{id} [put]
func (h *ChoreographyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input services.UpdateChoreographyInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	choreography, err := h.choreographyService.UpdateChoreography(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"choreography": choreography}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Удалить программу
// @Tags choreographies
// @Param id path string true "Choreography ID"
// @Success 204 "Удалена"
// @Failure 404 {object} map[string]string
// @Router /choreographies/{id} [delete]
func (h *ChoreographyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.choreographyService.DeleteChoreography(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChoreographyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	choreography, err := h.choreographyService.GetChoreographyByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"choreography": choreography}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary Список программ
// @Tags choreographies
// @Param country query string false "Фильтр по стране"
// @Param tournamentId query string false "Фильтр по турниру"
// @Success 200 {object} map[string]interface{}
// @Router /choreographies [get]
func (h *ChoreographyHandler) List(w http.ResponseWriter, r *http.Request) {
	country := queryStringPtr(r, "country")
	tournamentID := queryStringPtr(r, "tournamentId")

	choreographies, err := h.choreographyService.ListChoreographies(r.Context(), country, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"choreographies": choreographies}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
