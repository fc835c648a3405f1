package models

import "time"

// Gymnast представляет гимнаста. Естественный ключ — FIG ID внешнего реестра;
// внутренний UUID используется только для связей.
type Gymnast struct {
	ID           string    `json:"id" db:"id"`
	FigID        string    `json:"fig_id" db:"fig_id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	FullName     string    `json:"full_name" db:"full_name"`
	Gender       string    `json:"gender" db:"gender"`
	Country      string    `json:"country" db:"country"`
	BirthDate    time.Time `json:"birth_date" db:"birth_date"`
	LicenseValid bool      `json:"license_valid" db:"license_valid"`
	// IsLocal: гимнаст создан вручную, а не получен из внешнего реестра.
	// Лицензия локальных гимнастов считается действительной до исправления.
	IsLocal   bool      `json:"is_local" db:"is_local"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
