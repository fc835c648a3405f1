package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/registration-system/services"
	"github.com/Dosada05/registration-system/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(ds *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// CountryDashboard godoc
// @Summary Сводка страны по всем видам заявок
// @Tags dashboard
// @Produce json
// @Param country query string true "Код федерации (например, BRA)"
// @Success 200 {object} services.CountryDashboard
// @Failure 400 {object} map[string]string
// @Router /dashboard [get]
func (h *DashboardHandler) CountryDashboard(w http.ResponseWriter, r *http.Request) {
	country := utils.NormalizeCountry(r.URL.Query().Get("country"))
	if country == "" {
		badRequestResponse(w, r, errors.New("country query parameter is required"))
		return
	}

	dashboard, err := h.dashboardService.CountryDashboard(r.Context(), country)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, dashboard, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ChoreographyStats godoc
// @Summary Число программ страны по категориям
// @Tags dashboard
// @Produce json
// @Param country path string true "Код федерации"
// @Success 200 {object} map[string]interface{}
// @Router /choreographies/stats/{country} [get]
func (h *DashboardHandler) ChoreographyStats(w http.ResponseWriter, r *http.Request) {
	country := utils.NormalizeCountry(chi.URLParam(r, "country"))

	stats, err := h.dashboardService.ChoreographyCountryStats(r.Context(), country)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"country": country, "stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CoachStats godoc
// @Summary Число тренеров страны по турнирам
// @Tags dashboard
// @Produce json
// @Param country path string true "Код федерации"
// @Success 200 {object} map[string]interface{}
// @Router /coaches/stats/{country} [get]
func (h *DashboardHandler) CoachStats(w http.ResponseWriter, r *http.Request) {
	country := utils.NormalizeCountry(chi.URLParam(r, "country"))

	stats, err := h.dashboardService.CoachCountryStats(r.Context(), country)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"country": country, "stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// JudgeStats godoc
// @Summary Число судей страны по турнирам и судейским категориям
// @Tags dashboard
// @Produce json
// @Param country path string true "Код федерации"
// @Success 200 {object} map[string]interface{}
// @Router /judges/stats/{country} [get]
func (h *DashboardHandler) JudgeStats(w http.ResponseWriter, r *http.Request) {
	country := utils.NormalizeCountry(chi.URLParam(r, "country"))

	stats, err := h.dashboardService.JudgeCountryStats(r.Context(), country)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"country": country, "stats": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
