package models

import "time"

// Coach представляет тренера, заявленного на конкретный турнир.
// Пара (fig_id, tournament_id) уникальна.
type Coach struct {
	ID               string             `json:"id" db:"id"`
	FigID            string             `json:"fig_id" db:"fig_id"`
	FirstName        string             `json:"first_name" db:"first_name"`
	LastName         string             `json:"last_name" db:"last_name"`
	FullName         string             `json:"full_name" db:"full_name"`
	Gender           string             `json:"gender" db:"gender"`
	Country          string             `json:"country" db:"country"`
	Level            string             `json:"level" db:"level"`
	LevelDescription string             `json:"level_description" db:"level_description"`
	TournamentID     string             `json:"tournament_id" db:"tournament_id"`
	Status           RegistrationStatus `json:"status" db:"status"`
	Notes            *string            `json:"notes,omitempty" db:"notes"`
	CreatedAt        time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" db:"updated_at"`

	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
}
