package physics

import (
	"math"

	"github.com/annel0/voxel-world/internal/vec"
)

// DefaultIterationCap ограничивает длину обхода независимо от
// геометрического условия остановки. Эвристическая страховка от
// численных зависаний, а не строгое доказательство завершения.
const DefaultIterationCap = 256

// TraverseGrid выполняет дискретный обход воксельной сетки лучом
// (алгоритм Amanatides–Woo) и возвращает координаты вокселей в порядке
// от ближнего к дальнему, начиная с вокселя источника.
//
// Параметр t нормирован на весь отрезок origin..origin+dir*maxRange:
// для каждой оси считается знак шага, параметрическая цена пересечения
// одной границы (tDelta) и параметр первого пересечения (tMax). Каждая
// итерация продвигает ось с наименьшим tMax; обход завершается, когда
// очередное tMax превышает 1.0 либо срабатывает ограничение итераций.
func TraverseGrid(origin, dir vec.Vec3Float, maxRange float64, iterationCap int) []vec.Vec3 {
	if iterationCap <= 0 {
		iterationCap = DefaultIterationCap
	}
	if maxRange <= 0 || dir.Length() == 0 {
		return nil
	}

	// Компоненты отрезка в вокселях
	seg := [3]float64{dir.X * maxRange, dir.Y * maxRange, dir.Z * maxRange}
	pos := [3]float64{origin.X, origin.Y, origin.Z}

	voxel := origin.ToVec3()
	cells := make([]vec.Vec3, 0, iterationCap)
	cells = append(cells, voxel)

	var step [3]int
	var tMax, tDelta [3]float64
	for axis := 0; axis < 3; axis++ {
		switch {
		case seg[axis] > 0:
			step[axis] = 1
			tDelta[axis] = 1 / seg[axis]
			tMax[axis] = (math.Floor(pos[axis]) + 1 - pos[axis]) / seg[axis]
		case seg[axis] < 0:
			step[axis] = -1
			tDelta[axis] = 1 / -seg[axis]
			tMax[axis] = (pos[axis] - math.Floor(pos[axis])) / -seg[axis]
		default:
			step[axis] = 0
			tDelta[axis] = math.Inf(1)
			tMax[axis] = math.Inf(1)
		}
	}

	for len(cells) < iterationCap {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}

		tMax[axis] += tDelta[axis]
		if tMax[axis] > 1.0 {
			break // Луч исчерпан по дальности
		}

		switch axis {
		case 0:
			voxel.X += step[0]
		case 1:
			voxel.Y += step[1]
		case 2:
			voxel.Z += step[2]
		}
		cells = append(cells, voxel)
	}

	return cells
}

// Hit описывает результат проверки попадания луча в твёрдый воксель
type Hit struct {
	Voxel       vec.Vec3 // Первый твёрдый воксель на пути луча (цель разрушения)
	Previous    vec.Vec3 // Последний пустой воксель перед ним (цель установки)
	HasPrevious bool     // false, если луч начался внутри твёрдого вокселя
}

// FirstHit находит первый твёрдый воксель в последовательности обхода.
// solid — проверка занятости ячейки мира; нерезидентные чанки должны
// возвращать false. Отсутствие попадания — не ошибка: луч ушёл в пустоту.
func FirstHit(cells []vec.Vec3, solid func(vec.Vec3) bool) (Hit, bool) {
	for i, cell := range cells {
		if !solid(cell) {
			continue
		}
		hit := Hit{Voxel: cell}
		if i > 0 {
			hit.Previous = cells[i-1]
			hit.HasPrevious = true
		}
		return hit, true
	}
	return Hit{}, false
}
