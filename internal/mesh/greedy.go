package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// GridSize — длина ребра воксельной сетки одного чанка
const GridSize = 16

const gridVolume = GridSize * GridSize * GridSize

// VoxelGrid — источник вокселей для мешера.
// Локальные координаты лежат в диапазоне [0, GridSize).
type VoxelGrid interface {
	GetBlock(x, y, z int) block.BlockID
}

// cellExtent хранит накопленный размер слитой области в вокселях.
// Нулевой размер по X помечает ячейку как поглощённую соседом или пустую.
type cellExtent struct {
	dx, dy, dz int
}

func cellIndex(x, y, z int) int {
	return x + z*GridSize + y*GridSize*GridSize
}

// Greedy строит геометрию поверхности чанка жадным слиянием граней.
//
// Сначала три прохода слияния по осям X, затем Z, затем Y: соседние
// воксели одного материала складывают размеры, поглощённая ячейка
// обнуляется. Порядок осей — детерминированный выбор, не глобальный
// оптимум. Затем для каждой выжившей ячейки рассматриваются шесть
// граней; грань излучается, если сосед за ней — граница чанка или
// хотя бы один воксель её отпечатка открыт воздуху. Частично
// закрытая слитая грань излучается целиком: геометрия перерисовывается,
// но никогда не теряется.
func Greedy(grid VoxelGrid, chunkCoords vec.Vec3) *Buffer {
	var mats [gridVolume]block.BlockID
	var ext [gridVolume]cellExtent

	for y := 0; y < GridSize; y++ {
		for z := 0; z < GridSize; z++ {
			for x := 0; x < GridSize; x++ {
				i := cellIndex(x, y, z)
				mats[i] = grid.GetBlock(x, y, z)
				if mats[i].IsSolid() {
					ext[i] = cellExtent{dx: 1, dy: 1, dz: 1}
				}
			}
		}
	}

	// Проход 1: слияние вдоль X
	for y := 0; y < GridSize; y++ {
		for z := 0; z < GridSize; z++ {
			for x := 1; x < GridSize; x++ {
				i := cellIndex(x, y, z)
				prev := cellIndex(x-1, y, z)
				if !mats[i].IsSolid() || mats[i] != mats[prev] || ext[prev].dx == 0 {
					continue
				}
				ext[i].dx += ext[prev].dx
				ext[prev] = cellExtent{}
			}
		}
	}

	// Проход 2: слияние вдоль Z; требуется одинаковый размер по X
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			for z := 1; z < GridSize; z++ {
				i := cellIndex(x, y, z)
				prev := cellIndex(x, y, z-1)
				if ext[i].dx == 0 || ext[prev].dx == 0 {
					continue
				}
				if mats[i] != mats[prev] || ext[i].dx != ext[prev].dx {
					continue
				}
				ext[i].dz += ext[prev].dz
				ext[prev] = cellExtent{}
			}
		}
	}

	// Проход 3: слияние вдоль Y; требуются одинаковые размеры по X и Z
	for x := 0; x < GridSize; x++ {
		for z := 0; z < GridSize; z++ {
			for y := 1; y < GridSize; y++ {
				i := cellIndex(x, y, z)
				prev := cellIndex(x, y-1, z)
				if ext[i].dx == 0 || ext[prev].dx == 0 {
					continue
				}
				if mats[i] != mats[prev] || ext[i].dx != ext[prev].dx || ext[i].dz != ext[prev].dz {
					continue
				}
				ext[i].dy += ext[prev].dy
				ext[prev] = cellExtent{}
			}
		}
	}

	buf := NewBuffer()
	chunkOffset := mgl32.Vec3{
		float32(chunkCoords.X * GridSize),
		float32(chunkCoords.Y * GridSize),
		float32(chunkCoords.Z * GridSize),
	}

	for y := 0; y < GridSize; y++ {
		for z := 0; z < GridSize; z++ {
			for x := 0; x < GridSize; x++ {
				e := ext[cellIndex(x, y, z)]
				if e.dx == 0 {
					continue
				}
				minX, minY, minZ := x-e.dx+1, y-e.dy+1, z-e.dz+1
				layer := block.TextureLayer(mats[cellIndex(x, y, z)])
				origin := mgl32.Vec3{
					chunkOffset.X() + float32(minX),
					chunkOffset.Y() + float32(minY),
					chunkOffset.Z() + float32(minZ),
				}
				size := mgl32.Vec3{float32(e.dx), float32(e.dy), float32(e.dz)}

				for face := 0; face < faceCount; face++ {
					if regionFaceExposed(&mats, face, minX, minY, minZ, x, y, z) {
						buf.appendFace(face, origin, size, layer)
					}
				}
			}
		}
	}

	return buf
}

// regionFaceExposed сканирует отпечаток слитой области в соседней
// плоскости грани. Грань открыта, если сосед за любой ячейкой отпечатка
// лежит вне чанка либо пуст.
func regionFaceExposed(mats *[gridVolume]block.BlockID, face, minX, minY, minZ, maxX, maxY, maxZ int) bool {
	n := faceNeighbors[face]

	// Отпечаток — та сторона области, куда смотрит грань
	fromX, toX := minX, maxX
	fromY, toY := minY, maxY
	fromZ, toZ := minZ, maxZ
	switch {
	case n[0] > 0:
		fromX, toX = maxX, maxX
	case n[0] < 0:
		fromX, toX = minX, minX
	case n[1] > 0:
		fromY, toY = maxY, maxY
	case n[1] < 0:
		fromY, toY = minY, minY
	case n[2] > 0:
		fromZ, toZ = maxZ, maxZ
	case n[2] < 0:
		fromZ, toZ = minZ, minZ
	}

	for yy := fromY; yy <= toY; yy++ {
		for zz := fromZ; zz <= toZ; zz++ {
			for xx := fromX; xx <= toX; xx++ {
				nx, ny, nz := xx+n[0], yy+n[1], zz+n[2]
				if nx < 0 || nx >= GridSize || ny < 0 || ny >= GridSize || nz < 0 || nz >= GridSize {
					return true // Граница чанка всегда излучает грань
				}
				if !mats[cellIndex(nx, ny, nz)].IsSolid() {
					return true
				}
			}
		}
	}
	return false
}
