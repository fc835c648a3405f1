package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/registration-system/services"
	"github.com/Dosada05/registration-system/utils"
)

type GymnastHandler struct {
	gymnastService *services.GymnastService
}

func NewGymnastHandler(gs *services.GymnastService) *GymnastHandler {
	return &GymnastHandler{gymnastService: gs}
}

// FindByFigID godoc
// @Summary Поиск гимнаста по FIG ID
// @Tags gymnasts
// @Description Сначала опрашивается реестр FIG, затем локальные записи. В ответ добавляется расчётная возрастная категория.
// @Produce json
// @Param figId path string true "FIG ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /gymnasts/{figId} [get]
func (h *GymnastHandler) FindByFigID(w http.ResponseWriter, r *http.Request) {
	figID := chi.URLParam(r, "figId")

	view, err := h.gymnastService.FindByFigID(r.Context(), figID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if view == nil {
		notFoundResponse(w, r, fmt.Errorf("gymnast with FIG ID %s not found", figID))
		return
	}

	age := utils.AgeAt(view.BirthDate, time.Now())
	payload := jsonResponse{
		"gymnast":  view,
		"age":      age,
		"category": utils.CategoryForAge(age),
	}
	if err := writeJSON(w, http.StatusOK, payload, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateLocal godoc
// @Summary Создать локального гимнаста
// @Tags gymnasts
// @Description Для гимнастов, отсутствующих в реестре FIG. Запись помечается как локальная и считается лицензированной.
// @Accept json
// @Produce json
// @Success 201 {object} models.Gymnast
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /gymnasts/local [post]
func (h *GymnastHandler) CreateLocal(w http.ResponseWriter, r *http.Request) {
	var input services.CreateLocalGymnastInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	gymnast, err := h.gymnastService.CreateLocalGymnast(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, gymnast, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
