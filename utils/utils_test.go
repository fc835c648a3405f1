package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Dosada05/registration-system/models"
)

func TestAgeAt(t *testing.T) {
	birth := time.Date(2010, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 16, AgeAt(birth, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)), "birthday counts")
	assert.Equal(t, 15, AgeAt(birth, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)), "day before birthday")
	assert.Equal(t, 15, AgeAt(birth, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 14, AgeAt(birth, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)))
}

func TestCategoryForAge(t *testing.T) {
	tests := []struct {
		age  int
		want models.ChoreographyCategory
	}{
		{10, models.CategoryYouth},
		{14, models.CategoryYouth},
		{15, models.CategoryJunior},
		{17, models.CategoryJunior},
		{18, models.CategorySenior},
		{30, models.CategorySenior},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CategoryForAge(tc.age), "age %d", tc.age)
	}
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "BRA", NormalizeCountry(" bra "))
	assert.Equal(t, "", NormalizeCountry("   "))
}
