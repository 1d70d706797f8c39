package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
	"github.com/stretchr/testify/assert"
)

// testGrid — воксельная сетка для тестов мешера
type testGrid struct {
	blocks map[[3]int]block.BlockID
}

func newTestGrid() *testGrid {
	return &testGrid{blocks: make(map[[3]int]block.BlockID)}
}

func (g *testGrid) set(x, y, z int, id block.BlockID) {
	g.blocks[[3]int{x, y, z}] = id
}

func (g *testGrid) GetBlock(x, y, z int) block.BlockID {
	return g.blocks[[3]int{x, y, z}]
}

// fullGrid — полностью заполненная сетка одного материала
type fullGrid struct{ id block.BlockID }

func (g fullGrid) GetBlock(x, y, z int) block.BlockID { return g.id }

func TestGreedy_EmptyGrid(t *testing.T) {
	// Пустая сетка не даёт геометрии
	buf := Greedy(newTestGrid(), vec.Vec3{})

	assert.Equal(t, 0, buf.VertexCount(), "Пустой чанк не должен иметь вершин")
	assert.Equal(t, 0, buf.TriangleCount(), "Пустой чанк не должен иметь треугольников")
}

func TestGreedy_SingleVoxel(t *testing.T) {
	// Одиночный воксель излучает все шесть граней
	grid := newTestGrid()
	grid.set(3, 4, 5, block.StoneBlockID)

	buf := Greedy(grid, vec.Vec3{})

	assert.Equal(t, 24, buf.VertexCount(), "Шесть граней по четыре вершины")
	assert.Equal(t, 12, buf.TriangleCount(), "Шесть граней по два треугольника")

	// Геометрия занимает единичный куб в локальных координатах вокселя
	for _, pos := range buf.Positions {
		assert.GreaterOrEqual(t, pos.X(), float32(3.0), "Вершины не выходят за куб вокселя")
		assert.LessOrEqual(t, pos.X(), float32(4.0), "Вершины не выходят за куб вокселя")
		assert.GreaterOrEqual(t, pos.Y(), float32(4.0), "Вершины не выходят за куб вокселя")
		assert.LessOrEqual(t, pos.Y(), float32(5.0), "Вершины не выходят за куб вокселя")
	}
}

func TestGreedy_ChunkOffset(t *testing.T) {
	// Координаты чанка смещают геометрию в мировое пространство
	grid := newTestGrid()
	grid.set(0, 0, 0, block.StoneBlockID)

	buf := Greedy(grid, vec.Vec3{X: 2, Y: 1, Z: -1})

	minX, minY, minZ := buf.Positions[0].X(), buf.Positions[0].Y(), buf.Positions[0].Z()
	for _, pos := range buf.Positions {
		if pos.X() < minX {
			minX = pos.X()
		}
		if pos.Y() < minY {
			minY = pos.Y()
		}
		if pos.Z() < minZ {
			minZ = pos.Z()
		}
	}
	assert.Equal(t, float32(32), minX, "Смещение по X должно быть 2*16")
	assert.Equal(t, float32(16), minY, "Смещение по Y должно быть 1*16")
	assert.Equal(t, float32(-16), minZ, "Смещение по Z должно быть -1*16")
}

func TestGreedy_MergesRowAlongX(t *testing.T) {
	// Ряд вокселей одного материала сливается в одну область
	grid := newTestGrid()
	for x := 2; x <= 4; x++ {
		grid.set(x, 0, 0, block.StoneBlockID)
	}

	buf := Greedy(grid, vec.Vec3{})

	assert.Equal(t, 24, buf.VertexCount(), "Слитый ряд излучает шесть граней одной области")
	assert.Equal(t, 12, buf.TriangleCount(), "Слитый ряд даёт двенадцать треугольников")
}

func TestGreedy_FullChunkCollapsesToCube(t *testing.T) {
	// Полностью заполненный чанк сливается в один куб 16³:
	// шесть граней вместо поверхности из сотен квадов
	buf := Greedy(fullGrid{id: block.StoneBlockID}, vec.Vec3{})

	assert.Equal(t, 24, buf.VertexCount(), "Сплошной чанк должен слиться в один куб")
	assert.Equal(t, 12, buf.TriangleCount(), "Сплошной куб даёт двенадцать треугольников")

	// Куб покрывает весь чанк
	var maxX float32
	for _, pos := range buf.Positions {
		if pos.X() > maxX {
			maxX = pos.X()
		}
	}
	assert.Equal(t, float32(GridSize), maxX, "Куб должен доходить до границы чанка")
}

func TestGreedy_DifferentMaterialsDoNotMerge(t *testing.T) {
	// Соседние воксели разных материалов остаются отдельными областями,
	// а их общая грань скрыта с обеих сторон
	grid := newTestGrid()
	grid.set(3, 0, 0, block.StoneBlockID)
	grid.set(4, 0, 0, block.GrassBlockID)

	buf := Greedy(grid, vec.Vec3{})

	// По пять открытых граней на воксель
	assert.Equal(t, 40, buf.VertexCount(), "Общая грань не должна излучаться")
	assert.Equal(t, 20, buf.TriangleCount(), "По пять граней на каждый воксель")
}

func TestGreedy_HiddenVoxelEmitsNothing(t *testing.T) {
	// Воксель, закрытый со всех шести сторон тем же материалом,
	// не добавляет видимых граней к слитой области
	grid := newTestGrid()
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				grid.set(x+5, y+5, z+5, block.DirtBlockID)
			}
		}
	}

	buf := Greedy(grid, vec.Vec3{})

	// Куб 3³ сливается в одну область с шестью гранями
	assert.Equal(t, 24, buf.VertexCount(), "Куб 3x3x3 должен слиться в один параллелепипед")
}

func TestGreedy_UVCarriesTextureLayer(t *testing.T) {
	// Третья компонента UV хранит слой текстурного массива материала
	grid := newTestGrid()
	grid.set(0, 0, 0, block.GrassBlockID)

	buf := Greedy(grid, vec.Vec3{})

	layer := float32(block.TextureLayer(block.GrassBlockID))
	for _, uv := range buf.UVs {
		assert.Equal(t, layer, uv.Z(), "Слой текстуры должен соответствовать материалу")
	}
}

// faceCenter возвращает центр грани вокселя в локальных координатах чанка
func faceCenter(cell [3]int, face int) mgl32.Vec3 {
	c := mgl32.Vec3{
		float32(cell[0]) + 0.5,
		float32(cell[1]) + 0.5,
		float32(cell[2]) + 0.5,
	}
	return c.Add(faceNormals[face].Mul(0.5))
}

// quadCovers проверяет, что точка лежит внутри какого-нибудь квада
// буфера с указанной нормалью. Квады выровнены по осям, поэтому
// проверка по ограничивающему прямоугольнику точна.
func quadCovers(buf *Buffer, face int, p mgl32.Vec3) bool {
	normal := faceNormals[face]
	for q := 0; q*4 < buf.VertexCount(); q++ {
		if buf.Normals[q*4] != normal {
			continue
		}
		min, max := buf.Positions[q*4], buf.Positions[q*4]
		for i := 1; i < 4; i++ {
			v := buf.Positions[q*4+i]
			for axis := 0; axis < 3; axis++ {
				if v[axis] < min[axis] {
					min[axis] = v[axis]
				}
				if v[axis] > max[axis] {
					max[axis] = v[axis]
				}
			}
		}
		if p.X() >= min.X() && p.X() <= max.X() &&
			p.Y() >= min.Y() && p.Y() <= max.Y() &&
			p.Z() >= min.Z() && p.Z() <= max.Z() {
			return true
		}
	}
	return false
}

func TestGreedy_CoversAllExposedFaces(t *testing.T) {
	// Каждая открытая грань каждого вокселя покрыта хотя бы одним
	// излучённым квадом с той же нормалью: слияние перерисовывает
	// геометрию, но никогда не теряет видимую поверхность
	grid := newTestGrid()
	for x := 0; x < 8; x++ {
		for z := 0; z < 8; z++ {
			height := 2 + (x*3+z)%4
			for y := 0; y < height; y++ {
				grid.set(x, y, z, block.StoneBlockID)
			}
		}
	}
	// Отдельный воксель над рельефом и вкрапление другого материала
	grid.set(3, 8, 3, block.StoneBlockID)
	grid.set(5, 0, 5, block.SandBlockID)

	buf := Greedy(grid, vec.Vec3{})

	for cell, id := range grid.blocks {
		if !id.IsSolid() {
			continue
		}
		for face := 0; face < faceCount; face++ {
			n := faceNeighbors[face]
			nx, ny, nz := cell[0]+n[0], cell[1]+n[1], cell[2]+n[2]
			inside := nx >= 0 && nx < GridSize &&
				ny >= 0 && ny < GridSize &&
				nz >= 0 && nz < GridSize
			if inside && grid.GetBlock(nx, ny, nz).IsSolid() {
				continue // Грань закрыта соседом
			}
			assert.True(t, quadCovers(buf, face, faceCenter(cell, face)),
				"Открытая грань %d вокселя %v должна быть покрыта квадом", face, cell)
		}
	}
}

func TestGreedy_NeverWorseThanNaive(t *testing.T) {
	// Жадное слияние не может излучить больше граней, чем повоксельный
	// мешер со скрытием закрытых граней
	grid := newTestGrid()
	for x := 0; x < 8; x++ {
		for z := 0; z < 8; z++ {
			height := 2 + (x+z)%3
			for y := 0; y < height; y++ {
				grid.set(x, y, z, block.StoneBlockID)
			}
		}
	}

	buf := Greedy(grid, vec.Vec3{})

	// Повоксельный подсчёт открытых граней
	naiveFaces := 0
	for cell, id := range grid.blocks {
		if !id.IsSolid() {
			continue
		}
		for _, n := range faceNeighbors {
			if !grid.GetBlock(cell[0]+n[0], cell[1]+n[1], cell[2]+n[2]).IsSolid() {
				naiveFaces++
			}
		}
	}

	assert.LessOrEqual(t, buf.TriangleCount(), naiveFaces*2,
		"Жадный мешер не должен излучать больше граней, чем повоксельный")
	assert.Greater(t, buf.TriangleCount(), 0, "Рельеф должен дать видимую геометрию")
}
