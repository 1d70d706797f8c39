package vec

// Vec2 представляет координаты вертикальной колонны чанков (x, z)
type Vec2 struct {
	X, Z int
}

// ChebyshevTo возвращает расстояние Чебышёва до другой колонны.
// Именно эта метрика определяет зону видимости при стриминге чанков.
func (v Vec2) ChebyshevTo(other Vec2) int {
	dx := v.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dz := v.Z - other.Z
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}
