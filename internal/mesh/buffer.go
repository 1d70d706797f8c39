package mesh

import "github.com/go-gl/mathgl/mgl32"

// Buffer представляет геометрию поверхности: позиции, нормали,
// текстурные координаты и список индексов треугольников.
// Третья компонента UV — слой текстурного массива материала.
type Buffer struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec3
	Indices   []uint32
}

// NewBuffer создаёт пустой буфер с запасом под типичный чанк
func NewBuffer() *Buffer {
	return &Buffer{
		Positions: make([]mgl32.Vec3, 0, 256),
		Normals:   make([]mgl32.Vec3, 0, 256),
		UVs:       make([]mgl32.Vec3, 0, 256),
		Indices:   make([]uint32, 0, 384),
	}
}

// VertexCount возвращает количество вершин в буфере
func (b *Buffer) VertexCount() int {
	return len(b.Positions)
}

// TriangleCount возвращает количество треугольников в буфере
func (b *Buffer) TriangleCount() int {
	return len(b.Indices) / 3
}

// appendFace добавляет одну прямоугольную грань: четыре вершины
// и шесть индексов, образующих два треугольника против часовой стрелки.
func (b *Buffer) appendFace(face int, origin mgl32.Vec3, size mgl32.Vec3, textureLayer uint32) {
	start := uint32(len(b.Positions))
	normal := faceNormals[face]

	for i := 0; i < 4; i++ {
		corner := faceCorners[face][i]
		b.Positions = append(b.Positions, mgl32.Vec3{
			origin.X() + float32(corner[0])*size.X(),
			origin.Y() + float32(corner[1])*size.Y(),
			origin.Z() + float32(corner[2])*size.Z(),
		})
		b.Normals = append(b.Normals, normal)
		b.UVs = append(b.UVs, mgl32.Vec3{uvCorners[i].X(), uvCorners[i].Y(), float32(textureLayer)})
	}

	b.Indices = append(b.Indices,
		start, start+1, start+2,
		start+2, start+3, start,
	)
}

// Combine объединяет меши чанков одной колонны в единый буфер.
// Позиции, нормали и UV конкатенируются по порядку, индексы каждого
// исходного буфера сдвигаются на накопленное количество вершин.
func Combine(parts []*Buffer) *Buffer {
	combined := NewBuffer()
	for _, part := range parts {
		if part == nil {
			continue
		}
		offset := uint32(len(combined.Positions))
		combined.Positions = append(combined.Positions, part.Positions...)
		combined.Normals = append(combined.Normals, part.Normals...)
		combined.UVs = append(combined.UVs, part.UVs...)
		for _, idx := range part.Indices {
			combined.Indices = append(combined.Indices, idx+offset)
		}
	}
	return combined
}
