package fig

import (
	"context"
	"time"
)

// GymnastView — представление гимнаста, которое видит ядро регистрации.
// Собирается из внешнего реестра FIG либо из локально созданной записи.
type GymnastView struct {
	FigID        string    `json:"fig_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FullName     string    `json:"full_name"`
	Gender       string    `json:"gender"`
	Country      string    `json:"country"`
	BirthDate    time.Time `json:"birth_date"`
	LicenseValid bool      `json:"license_valid"`
	// Local: запись создана вручную, внешний реестр о ней не знает.
	Local bool `json:"local"`
}

// Registry абстрагирует внешний реестр федерации. Возвращает (nil, nil),
// если гимнаст с таким FIG ID реестру не известен.
type Registry interface {
	FindByFigID(ctx context.Context, figID string) (*GymnastView, error)
}
