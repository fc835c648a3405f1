package models

import "time"

// TournamentKind определяет, какая стратегия квот применяется к турниру.
// Закрытый enum: новое значение требует новой стратегии в services.
type TournamentKind string

const (
	KindChampionship TournamentKind = "CHAMPIONSHIP"
	KindCup          TournamentKind = "CUP"
)

func (k TournamentKind) IsValid() bool {
	switch k {
	case KindChampionship, KindCup:
		return true
	}
	return false
}

// Tournament представляет турнир.
type Tournament struct {
	ID        string         `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	ShortName string         `json:"short_name" db:"short_name"`
	Kind      TournamentKind `json:"kind" db:"kind"`
	StartDate time.Time      `json:"start_date" db:"start_date"`
	EndDate   time.Time      `json:"end_date" db:"end_date"`
	Location  *string        `json:"location,omitempty" db:"location"`
	IsActive  bool           `json:"is_active" db:"is_active"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`

	// Обратная коллекция, заполняется только при детальном чтении.
	Choreographies []Choreography `json:"choreographies,omitempty" db:"-"`
}
