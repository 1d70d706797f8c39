package world

import (
	"math"

	"github.com/annel0/voxel-world/internal/util"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// WorldGenerator генерирует рельеф мира по шуму Перлина.
// Генерация — чистая функция координат чанка и сида: повторная
// генерация выгруженного чанка даёт побайтово тот же результат.
type WorldGenerator struct {
	Seed       int64   // Сид для генерации шума
	NoiseScale float64 // Масштаб шума по горизонтали (обратная длина волны)
	MinHeight  int     // Нижняя граница высоты рельефа в вокселях
	MaxHeight  int     // Верхняя граница высоты рельефа в вокселях

	noise *util.Noise
}

// NewWorldGenerator создаёт новый генератор мира с указанным сидом
func NewWorldGenerator(seed int64, noiseScale float64, minHeight, maxHeight int) *WorldGenerator {
	if maxHeight < minHeight {
		minHeight, maxHeight = maxHeight, minHeight
	}
	return &WorldGenerator{
		Seed:       seed,
		NoiseScale: noiseScale,
		MinHeight:  minHeight,
		MaxHeight:  maxHeight,
		noise:      util.NewNoise(seed),
	}
}

// TerrainHeight возвращает высоту поверхности для мировой колонны (x, z).
// Шум из диапазона [-1, 1] линейно отображается на [MinHeight, MaxHeight].
func (wg *WorldGenerator) TerrainHeight(worldX, worldZ int) int {
	n := wg.noise.Sample2DNorm(float64(worldX)*wg.NoiseScale, float64(worldZ)*wg.NoiseScale)
	span := float64(wg.MaxHeight - wg.MinHeight)
	return wg.MinHeight + int(math.Round(n*span))
}

// GenerateChunk генерирует чанк по его координатам в чанк-пространстве
func (wg *WorldGenerator) GenerateChunk(coords vec.Vec3) *ChunkData {
	chunk := NewChunkData(coords)

	baseX := coords.X * ChunkSize
	baseY := coords.Y * ChunkSize
	baseZ := coords.Z * ChunkSize

	for z := 0; z < ChunkSize; z++ {
		for x := 0; x < ChunkSize; x++ {
			height := wg.TerrainHeight(baseX+x, baseZ+z)
			for y := 0; y < ChunkSize; y++ {
				altitude := baseY + y
				if altitude > height {
					break // Выше поверхности только воздух
				}
				chunk.SetBlock(x, y, z, wg.blockForDepth(height, altitude))
			}
		}
	}

	return chunk
}

// blockForDepth выбирает материал по глубине залегания под поверхностью
func (wg *WorldGenerator) blockForDepth(surface, altitude int) block.BlockID {
	depth := surface - altitude
	switch {
	case depth == 0:
		// У нижней границы рельефа поверхность песчаная, иначе травяная
		if surface <= wg.MinHeight+2 {
			return block.SandBlockID
		}
		return block.GrassBlockID
	case depth <= 3:
		return block.DirtBlockID
	default:
		return block.StoneBlockID
	}
}
