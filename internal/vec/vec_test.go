package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_ToChunkCoords(t *testing.T) {
	// Деление с округлением к минус бесконечности: отрицательные
	// мировые координаты попадают в отрицательные чанки
	cases := []struct {
		pos  Vec3
		want Vec3
	}{
		{Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 0}},
		{Vec3{X: 15, Y: 15, Z: 15}, Vec3{X: 0, Y: 0, Z: 0}},
		{Vec3{X: 16, Y: 32, Z: 48}, Vec3{X: 1, Y: 2, Z: 3}},
		{Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: -1, Y: -1, Z: -1}},
		{Vec3{X: -16, Y: -17, Z: -32}, Vec3{X: -1, Y: -2, Z: -2}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.pos.ToChunkCoords(), "Чанк для позиции %v", c.pos)
	}
}

func TestVec3_LocalInChunk(t *testing.T) {
	// Локальные координаты всегда в [0, 16), включая отрицательные позиции
	local := Vec3{X: -1, Y: 17, Z: 35}.LocalInChunk()
	assert.Equal(t, Vec3{X: 15, Y: 1, Z: 3}, local, "Локальные координаты должны обернуться")

	roundTrip := Vec3{X: -1, Y: 17, Z: 35}
	chunk := roundTrip.ToChunkCoords()
	assert.Equal(t, roundTrip, Vec3{
		X: chunk.X*16 + local.X,
		Y: chunk.Y*16 + local.Y,
		Z: chunk.Z*16 + local.Z,
	}, "Чанк и локальные координаты должны восстанавливать позицию")
}

func TestVec2_ChebyshevTo(t *testing.T) {
	// Метрика Чебышёва — максимум модулей разностей
	origin := Vec2{X: 0, Z: 0}

	assert.Equal(t, 0, origin.ChebyshevTo(origin), "Расстояние до себя равно нулю")
	assert.Equal(t, 3, origin.ChebyshevTo(Vec2{X: 3, Z: 1}), "Доминирует разность по X")
	assert.Equal(t, 5, origin.ChebyshevTo(Vec2{X: -2, Z: -5}), "Модули учитывают знак")
	assert.Equal(t, 4, (Vec2{X: -2, Z: 3}).ChebyshevTo(Vec2{X: 2, Z: 3}), "Смещение начала не меняет метрику")
}

func TestVec3Float_ToVec3Floor(t *testing.T) {
	// Воксель дробной позиции определяется округлением вниз,
	// а не усечением: важно для отрицательных координат
	assert.Equal(t, Vec3{X: 0, Y: 0, Z: 0}, (Vec3Float{X: 0.9, Y: 0.1, Z: 0.5}).ToVec3())
	assert.Equal(t, Vec3{X: -1, Y: -1, Z: -3}, (Vec3Float{X: -0.1, Y: -0.9, Z: -2.5}).ToVec3())
}

func TestVec3Float_Normalized(t *testing.T) {
	n := (Vec3Float{X: 3, Y: 0, Z: 4}).Normalized()
	assert.InDelta(t, 1.0, n.Length(), 1e-9, "Нормированный вектор должен иметь единичную длину")

	zero := (Vec3Float{}).Normalized()
	assert.Equal(t, 0.0, zero.Length(), "Нулевой вектор остаётся нулевым")
}
