package util

import (
	"github.com/aquilax/go-perlin"
)

// Noise оборачивает генератор шума Перлина с фиксированным сидом.
// Один экземпляр на генератор мира: одинаковый сид всегда даёт
// одинаковую поверхность, что требуется для детерминированного стриминга.
type Noise struct {
	p *perlin.Perlin
}

// NewNoise создаёт генератор шума с указанным сидом
func NewNoise(seed int64) *Noise {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &Noise{p: perlin.NewPerlin(alpha, beta, n, seed)}
}

// Sample2D возвращает значение 2D-шума в диапазоне [-1, 1]
func (n *Noise) Sample2D(x, y float64) float64 {
	return n.p.Noise2D(x, y)
}

// Sample2DNorm возвращает значение 2D-шума, приведённое к диапазону [0, 1]
func (n *Noise) Sample2DNorm(x, y float64) float64 {
	return (n.p.Noise2D(x, y) + 1.0) / 2.0
}
