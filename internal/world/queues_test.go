package world

import (
	"testing"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
	"github.com/stretchr/testify/assert"
)

func TestDirtyQueue_MarkIdempotent(t *testing.T) {
	// Повторная отметка колонны не создаёт дубликатов
	dq := NewDirtyQueue()
	column := vec.Vec2{X: 3, Z: -2}

	dq.Mark(column)
	dq.Mark(column)
	dq.Mark(column)

	assert.Equal(t, 1, dq.Len(), "Колонна должна быть отмечена один раз")
	assert.True(t, dq.Contains(column), "Отмеченная колонна должна находиться в очереди")
}

func TestDirtyQueue_DrainClears(t *testing.T) {
	// Drain возвращает все отмеченные колонны и очищает очередь
	dq := NewDirtyQueue()
	dq.Mark(vec.Vec2{X: 0, Z: 0})
	dq.Mark(vec.Vec2{X: 1, Z: 1})

	drained := dq.Drain()
	assert.Len(t, drained, 2, "Drain должен вернуть обе колонны")
	assert.Equal(t, 0, dq.Len(), "После Drain очередь должна быть пустой")
	assert.Empty(t, dq.Drain(), "Повторный Drain должен вернуть пустой срез")
}

func TestEditQueue_PreservesOrder(t *testing.T) {
	// Правки применяются в порядке отправки, включая повторы одной позиции
	eq := NewEditQueue()
	pos := vec.Vec3{X: 1, Y: 2, Z: 3}

	eq.Submit(pos, block.StoneBlockID)
	eq.Submit(vec.Vec3{X: 4, Y: 5, Z: 6}, block.DirtBlockID)
	eq.Submit(pos, block.AirBlockID)

	drained := eq.Drain()
	assert.Len(t, drained, 3, "Очередь должна сохранить все правки")
	assert.Equal(t, block.StoneBlockID, drained[0].BlockID, "Первая правка должна быть первой")
	assert.Equal(t, block.AirBlockID, drained[2].BlockID, "Последняя правка по позиции должна идти последней")
	assert.Equal(t, 0, eq.Len(), "После Drain очередь должна быть пустой")
}
