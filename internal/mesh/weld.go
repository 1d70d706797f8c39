package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// weldKey — ячейка пространственной решётки, в которую попадает вершина
type weldKey struct {
	x, y, z int
}

// Weld сливает вершины, лежащие ближе threshold друг к другу,
// и возвращает буфер с переписанными индексами. Чистый пост-процесс:
// количество и обход треугольников не меняются, меняется только
// таблица вершин и отображение индексов.
func Weld(b *Buffer, threshold float32) *Buffer {
	if threshold <= 0 || b.VertexCount() == 0 {
		return b
	}

	cell := float64(threshold)
	grid := make(map[weldKey][]uint32, b.VertexCount())
	remap := make([]uint32, b.VertexCount())

	out := &Buffer{
		Positions: make([]mgl32.Vec3, 0, b.VertexCount()),
		Normals:   make([]mgl32.Vec3, 0, b.VertexCount()),
		UVs:       make([]mgl32.Vec3, 0, b.VertexCount()),
		Indices:   make([]uint32, len(b.Indices)),
	}

	for i, pos := range b.Positions {
		key := weldKey{
			x: int(math.Floor(float64(pos.X()) / cell)),
			y: int(math.Floor(float64(pos.Y()) / cell)),
			z: int(math.Floor(float64(pos.Z()) / cell)),
		}

		// Представитель ищется в ячейке вершины и 26 соседних:
		// пара ближе порога может попасть в смежные ячейки решётки
		found := false
		for dx := -1; dx <= 1 && !found; dx++ {
			for dy := -1; dy <= 1 && !found; dy++ {
				for dz := -1; dz <= 1 && !found; dz++ {
					neighbor := weldKey{key.x + dx, key.y + dy, key.z + dz}
					for _, candidate := range grid[neighbor] {
						d := pos.Sub(out.Positions[candidate])
						if d.Len() <= threshold {
							remap[i] = candidate
							found = true
							break
						}
					}
				}
			}
		}
		if found {
			continue
		}

		idx := uint32(len(out.Positions))
		out.Positions = append(out.Positions, pos)
		out.Normals = append(out.Normals, b.Normals[i])
		out.UVs = append(out.UVs, b.UVs[i])
		grid[key] = append(grid[key], idx)
		remap[i] = idx
	}

	for i, idx := range b.Indices {
		out.Indices[i] = remap[idx]
	}
	return out
}
