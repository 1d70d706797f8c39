package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoise_Deterministic(t *testing.T) {
	// Один сид — одинаковые значения шума между экземплярами
	n1 := NewNoise(42)
	n2 := NewNoise(42)

	for i := 0; i < 50; i++ {
		x, y := float64(i)*0.13, float64(i)*0.07
		assert.Equal(t, n1.Sample2D(x, y), n2.Sample2D(x, y),
			"Шум с одним сидом должен совпадать в точке (%f, %f)", x, y)
	}
}

func TestNoise_NormRange(t *testing.T) {
	// Нормированный шум остаётся в диапазоне [0, 1]
	n := NewNoise(7)

	for i := -50; i <= 50; i++ {
		v := n.Sample2DNorm(float64(i)*0.31, float64(-i)*0.17)
		assert.GreaterOrEqual(t, v, 0.0, "Нормированный шум не может быть отрицательным")
		assert.LessOrEqual(t, v, 1.0, "Нормированный шум не может превышать единицу")
	}
}

func TestNoise_SeedsDiffer(t *testing.T) {
	// Разные сиды дают разный шум хотя бы в одной точке выборки
	n1 := NewNoise(1)
	n2 := NewNoise(99)

	differs := false
	for i := 0; i < 32 && !differs; i++ {
		x, y := float64(i)*0.41, float64(i)*0.23
		if n1.Sample2D(x, y) != n2.Sample2D(x, y) {
			differs = true
		}
	}
	assert.True(t, differs, "Шум с разными сидами должен отличаться")
}
