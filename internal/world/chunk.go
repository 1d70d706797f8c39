package world

import (
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// Размеры чанка фиксированы на весь срок жизни мира
const (
	ChunkSize   = 16                                // Длина ребра чанка в вокселях
	ChunkArea   = ChunkSize * ChunkSize             // 256
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize // 4096
)

// ChunkData представляет чанк 16x16x16 вокселей.
// Сетка хранится одним плоским массивом: индексная арифметика
// дешевле вложенных массивов и дружелюбнее к кэшу при мешинге.
type ChunkData struct {
	Coords vec.Vec3 // Координаты чанка в чанк-пространстве
	Blocks [ChunkVolume]block.BlockID
	LOD    uint8 // Уровень детализации; всегда 0, зарезервировано
}

// NewChunkData создаёт пустой чанк с указанными координатами
func NewChunkData(coords vec.Vec3) *ChunkData {
	return &ChunkData{Coords: coords}
}

// BlockIndex возвращает индекс вокселя в плоском массиве.
// Порядок: x растёт быстрее всего, затем z, затем y.
func BlockIndex(x, y, z int) int {
	return x + z*ChunkSize + y*ChunkArea
}

// GetBlock возвращает ID блока по локальным координатам
func (c *ChunkData) GetBlock(x, y, z int) block.BlockID {
	return c.Blocks[BlockIndex(x, y, z)]
}

// SetBlock устанавливает блок по локальным координатам
func (c *ChunkData) SetBlock(x, y, z int, id block.BlockID) {
	c.Blocks[BlockIndex(x, y, z)] = id
}

// InChunk проверяет, что локальные координаты лежат внутри чанка
func InChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// Column возвращает координаты колонны, которой принадлежит чанк
func (c *ChunkData) Column() vec.Vec2 {
	return c.Coords.Column()
}
