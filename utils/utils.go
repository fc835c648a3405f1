package utils

import (
	"strings"
	"time"

	"github.com/Dosada05/registration-system/models"
)

// AgeAt возвращает полное число лет на дату at.
func AgeAt(birthDate, at time.Time) int {
	age := at.Year() - birthDate.Year()
	anniversary := birthDate.AddDate(age, 0, 0)
	if anniversary.After(at) {
		age--
	}
	return age
}

// CategoryForAge относит возраст к возрастной категории:
// до 15 лет — YOUTH, до 18 — JUNIOR, дальше SENIOR.
func CategoryForAge(age int) models.ChoreographyCategory {
	switch {
	case age < 15:
		return models.CategoryYouth
	case age < 18:
		return models.CategoryJunior
	default:
		return models.CategorySenior
	}
}

// NormalizeCountry приводит код федерации к верхнему регистру без пробелов.
func NormalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
