package models

import "time"

// ChoreographyCategory — возрастная категория программы.
type ChoreographyCategory string

const (
	CategoryYouth  ChoreographyCategory = "YOUTH"
	CategoryJunior ChoreographyCategory = "JUNIOR"
	CategorySenior ChoreographyCategory = "SENIOR"
)

func (c ChoreographyCategory) IsValid() bool {
	switch c {
	case CategoryYouth, CategoryJunior, CategorySenior:
		return true
	}
	return false
}

// ChoreographyType — код состава программы. Каждый тип жёстко фиксирует
// количество гимнастов.
type ChoreographyType string

const (
	TypeMensIndividual   ChoreographyType = "MIND"
	TypeWomensIndividual ChoreographyType = "WIND"
	TypeMixedPair        ChoreographyType = "MXP"
	TypeTrio             ChoreographyType = "TRIO"
	TypeGroup            ChoreographyType = "GRP"
	TypeDance            ChoreographyType = "DNCE"
)

// typeGymnastCounts — обязательное число гимнастов для каждого типа.
var typeGymnastCounts = map[ChoreographyType]int{
	TypeMensIndividual:   1,
	TypeWomensIndividual: 1,
	TypeMixedPair:        2,
	TypeTrio:             3,
	TypeGroup:            5,
	TypeDance:            8,
}

func (t ChoreographyType) IsValid() bool {
	_, ok := typeGymnastCounts[t]
	return ok
}

// RequiredGymnastCount возвращает обязательное число гимнастов для типа.
// Для неизвестного типа возвращает 0.
func (t ChoreographyType) RequiredGymnastCount() int {
	return typeGymnastCounts[t]
}

// Choreography представляет зарегистрированную программу.
type Choreography struct {
	ID               string               `json:"id" db:"id"`
	Name             string               `json:"name" db:"name"`
	Country          string               `json:"country" db:"country"`
	Category         ChoreographyCategory `json:"category" db:"category"`
	Type             ChoreographyType     `json:"type" db:"type"`
	GymnastCount     int                  `json:"gymnast_count" db:"gymnast_count"`
	OldestGymnastAge int                  `json:"oldest_gymnast_age" db:"oldest_gymnast_age"`
	Notes            *string              `json:"notes,omitempty" db:"notes"`
	Status           RegistrationStatus   `json:"status" db:"status"`
	TournamentID     string               `json:"tournament_id" db:"tournament_id"`
	CreatedAt        time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at" db:"updated_at"`

	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
	Gymnasts   []Gymnast   `json:"gymnasts,omitempty" db:"-"`
}
