package world

import (
	"testing"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
	"github.com/stretchr/testify/assert"
)

func TestWorldGenerator_Deterministic(t *testing.T) {
	// Один сид — побайтово одинаковые чанки при повторной генерации
	gen1 := NewWorldGenerator(42, 0.01, 40, 100)
	gen2 := NewWorldGenerator(42, 0.01, 40, 100)

	coords := vec.Vec3{X: 3, Y: 2, Z: -5}
	chunk1 := gen1.GenerateChunk(coords)
	chunk2 := gen2.GenerateChunk(coords)

	assert.Equal(t, chunk1.Blocks, chunk2.Blocks, "Чанки с одним сидом должны совпадать")

	// Повторная генерация тем же генератором тоже детерминирована
	chunk3 := gen1.GenerateChunk(coords)
	assert.Equal(t, chunk1.Blocks, chunk3.Blocks, "Повторная генерация должна давать тот же чанк")
}

func TestWorldGenerator_SeedChangesTerrain(t *testing.T) {
	// Разные сиды дают разный рельеф
	gen1 := NewWorldGenerator(1, 0.01, 40, 100)
	gen2 := NewWorldGenerator(777, 0.01, 40, 100)

	differs := false
	for x := 0; x < 64 && !differs; x += 4 {
		for z := 0; z < 64 && !differs; z += 4 {
			if gen1.TerrainHeight(x, z) != gen2.TerrainHeight(x, z) {
				differs = true
			}
		}
	}
	assert.True(t, differs, "Рельеф с разными сидами должен отличаться")
}

func TestWorldGenerator_HeightBounds(t *testing.T) {
	// Высота поверхности остаётся в пределах [MinHeight, MaxHeight]
	gen := NewWorldGenerator(9, 0.05, 40, 100)

	for x := -32; x <= 32; x += 3 {
		for z := -32; z <= 32; z += 3 {
			h := gen.TerrainHeight(x, z)
			assert.GreaterOrEqual(t, h, 40, "Высота не может быть ниже MinHeight")
			assert.LessOrEqual(t, h, 100, "Высота не может быть выше MaxHeight")
		}
	}
}

func TestWorldGenerator_Stratification(t *testing.T) {
	// Проверяем послойную структуру колонны: воздух над поверхностью,
	// поверхностный слой, подпочва, камень в глубине
	gen := NewWorldGenerator(42, 0.01, 40, 100)

	worldX, worldZ := 7, 11
	surface := gen.TerrainHeight(worldX, worldZ)

	chunkY := surface / ChunkSize
	chunk := gen.GenerateChunk(vec.Vec3{X: 0, Y: chunkY, Z: 0})
	localX, localZ := worldX, worldZ
	localSurface := surface - chunkY*ChunkSize

	// Поверхностный воксель — трава или песок
	top := chunk.GetBlock(localX, localSurface, localZ)
	assert.Contains(t, []block.BlockID{block.GrassBlockID, block.SandBlockID}, top,
		"Поверхность должна быть травой или песком")

	// Над поверхностью воздух
	if localSurface+1 < ChunkSize {
		assert.Equal(t, block.AirBlockID, chunk.GetBlock(localX, localSurface+1, localZ),
			"Над поверхностью должен быть воздух")
	}

	// Сразу под поверхностью подпочва
	if localSurface-1 >= 0 {
		assert.Equal(t, block.DirtBlockID, chunk.GetBlock(localX, localSurface-1, localZ),
			"Под поверхностью должна быть земля")
	}

	// Глубокие слои — камень
	deep := gen.GenerateChunk(vec.Vec3{X: 0, Y: 0, Z: 0})
	assert.Equal(t, block.StoneBlockID, deep.GetBlock(localX, 0, localZ),
		"На дне мира должен быть камень")
}

func TestWorldGenerator_SwappedBounds(t *testing.T) {
	// Перепутанные границы высот нормализуются конструктором
	gen := NewWorldGenerator(1, 0.01, 100, 40)
	assert.Equal(t, 40, gen.MinHeight, "Меньшая граница должна стать MinHeight")
	assert.Equal(t, 100, gen.MaxHeight, "Большая граница должна стать MaxHeight")
}
