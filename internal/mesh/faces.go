package mesh

import "github.com/go-gl/mathgl/mgl32"

// Индексы направлений граней: +x:0 +y:1 +z:2 -x:3 -y:4 -z:5
const (
	FaceRight = iota
	FaceTop
	FaceFront
	FaceLeft
	FaceBottom
	FaceBack
	faceCount
)

// faceNormals содержит единичные нормали для каждого направления
var faceNormals = [faceCount]mgl32.Vec3{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{-1, 0, 0},
	{0, -1, 0},
	{0, 0, -1},
}

// faceNeighbors содержит смещение к соседнему вокселю для каждого направления
var faceNeighbors = [faceCount][3]int{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{-1, 0, 0},
	{0, -1, 0},
	{0, 0, -1},
}

// faceCorners содержит четыре угла единичного куба на каждую грань.
// Порядок углов даёт два треугольника (0,1,2) и (2,3,0) с обходом
// против часовой стрелки при взгляде снаружи.
var faceCorners = [faceCount][4][3]uint8{
	FaceRight:  {{1, 1, 0}, {1, 1, 1}, {1, 0, 1}, {1, 0, 0}},
	FaceTop:    {{1, 1, 0}, {0, 1, 0}, {0, 1, 1}, {1, 1, 1}},
	FaceFront:  {{1, 1, 1}, {0, 1, 1}, {0, 0, 1}, {1, 0, 1}},
	FaceLeft:   {{0, 1, 1}, {0, 1, 0}, {0, 0, 0}, {0, 0, 1}},
	FaceBottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	FaceBack:   {{0, 1, 0}, {1, 1, 0}, {1, 0, 0}, {0, 0, 0}},
}

// uvCorners содержит фиксированные текстурные координаты четырёх углов грани.
// Слитые грани растягивают ту же текстуру на весь прямоугольник.
var uvCorners = [4]mgl32.Vec2{
	{0, 0},
	{1, 0},
	{1, 1},
	{0, 1},
}
