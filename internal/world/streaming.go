package world

import (
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/vec"
)

// EnsureLoaded гарантирует существование всех чанков в квадрате
// радиуса sightRange (метрика Чебышёва по горизонтали) вокруг чанка
// наблюдателя и выгружает чанки за его пределами. Вертикаль не
// стримится: колонна всегда загружается целиком от 0 до ChunkLimitY.
func (wm *WorldManager) EnsureLoaded(observerChunk vec.Vec3, sightRange int) {
	if sightRange < 0 {
		return
	}
	observerColumn := observerChunk.Column()

	for dx := -sightRange; dx <= sightRange; dx++ {
		for dz := -sightRange; dz <= sightRange; dz++ {
			column := vec.Vec2{X: observerColumn.X + dx, Z: observerColumn.Z + dz}
			wm.ensureColumn(column)
		}
	}

	wm.evictBeyond(observerColumn, sightRange)
}

// ensureColumn генерирует отсутствующие чанки одной колонны.
// Каждый сгенерированный чанк отмечает свою колонну на перестроение.
func (wm *WorldManager) ensureColumn(column vec.Vec2) {
	for y := 0; y < wm.params.ChunkLimitY; y++ {
		coords := vec.Vec3{X: column.X, Y: y, Z: column.Z}

		wm.mu.RLock()
		_, exists := wm.chunks[coords]
		wm.mu.RUnlock()
		if exists {
			continue
		}

		chunk := wm.generator.GenerateChunk(coords)
		if wm.deltas.Apply(chunk) {
			logging.Debug("Чанк %d_%d_%d восстановлен с правками", coords.X, coords.Y, coords.Z)
		}

		wm.mu.Lock()
		wm.chunks[coords] = chunk
		wm.mu.Unlock()

		wm.dirty.Mark(column)
		if wm.metrics != nil {
			wm.metrics.ChunksGenerated.Inc()
		}
	}
	if wm.metrics != nil {
		wm.metrics.ChunksLoaded.Set(float64(wm.ChunkCount()))
	}
}

// evictBeyond выгружает чанки, чья колонна дальше sightRange от
// наблюдателя, и освобождает меши затронутых колонн. Правки выгруженных
// чанков сохраняются в слое дельт и накатываются при регенерации.
func (wm *WorldManager) evictBeyond(observerColumn vec.Vec2, sightRange int) {
	wm.mu.Lock()
	evicted := 0
	for coords, chunk := range wm.chunks {
		column := chunk.Column()
		if column.ChebyshevTo(observerColumn) <= sightRange {
			continue
		}
		delete(wm.chunks, coords)
		if cm, ok := wm.columnMeshes[column]; ok {
			delete(wm.columnMeshes, column)
			logging.Debug("Меш колонны %d_%d освобождён (%s)", column.X, column.Z, cm.ID)
		}
		evicted++
	}
	wm.mu.Unlock()

	if evicted > 0 {
		logging.Debug("Выгружено чанков: %d", evicted)
		if wm.metrics != nil {
			wm.metrics.ChunksEvicted.Add(float64(evicted))
			wm.metrics.ChunksLoaded.Set(float64(wm.ChunkCount()))
		}
	}
}
