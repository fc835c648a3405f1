package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/Dosada05/registration-system/services"
	"github.com/go-chi/chi/v5"
)

type JudgeHandler struct {
	judgeService *services.JudgeService
}

func NewJudgeHandler(js *services.JudgeService) *JudgeHandler {
	return &JudgeHandler{judgeService: js}
}

// Create godoc
// @Summary Зарегистрировать судью или список судей
// @Tags judges
// @Description Принимает один объект или массив. Ошибки элементов собираются, обработка не прерывается.
// @Accept json
// @Produce json
// @Success 201 {object} services.JudgeBatchResult "Все элементы созданы"
// @Success 200 {object} services.JudgeBatchResult "Частичный успех"
// @Failure 400 {object} map[string]string "Некорректное тело запроса"
// @Router /judges [post]
func (h *JudgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	inputs, err := decodeJudgeInputs(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result := h.judgeService.CreateJudges(r.Context(), inputs)

	status := http.StatusCreated
	if !result.Success {
		status = http.StatusOK
	}
	if err := writeJSON(w, status, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func decodeJudgeInputs(w http.ResponseWriter, r *http.Request) ([]services.CreateJudgeInput, error) {
	var raw json.RawMessage
	if err := readJSON(w, r, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var inputs []services.CreateJudgeInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, err
		}
		return inputs, nil
	}

	var input services.CreateJudgeInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, err
	}
	return []services.CreateJudgeInput{input}, nil
}

func (h *JudgeHandler) List(w http.ResponseWriter, r *http.Request) {
	country := queryStringPtr(r, "country")
	tournamentID := queryStringPtr(r, "tournamentId")

	judges, err := h.judgeService.FindAllJudges(r.Context(), country, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"judges": judges}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	judge, err := h.judgeService.GetJudgeByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"judge": judge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input services.UpdateJudgeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	judge, err := h.judgeService.UpdateJudge(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"judge": judge}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.judgeService.DeleteJudge(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
