package world

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/mesh"
	"github.com/annel0/voxel-world/internal/physics"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// Params определяет настройки движка мира
type Params struct {
	Seed                  int64   // Сид генерации
	ChunkLimitY           int     // Высота мира в чанках; колонны всегда загружаются целиком
	NoiseScale            float64 // Масштаб шума рельефа
	TerrainMinY           int     // Нижняя граница высоты рельефа
	TerrainMaxY           int     // Верхняя граница высоты рельефа
	WeldVertices          bool    // Включает слияние вершин после сборки колонны
	WeldThreshold         float64 // Порог слияния вершин в долях вокселя
	RaycastIterationCap   int     // Жёсткий предел итераций обхода луча
	DeltaCompactThreshold int     // Порог уплотнения дельты чанка в снимок
}

// DefaultParams возвращает настройки по умолчанию
func DefaultParams() Params {
	return Params{
		Seed:                  1,
		ChunkLimitY:           8,
		NoiseScale:            0.01,
		TerrainMinY:           40,
		TerrainMaxY:           100,
		WeldVertices:          false,
		WeldThreshold:         0.001,
		RaycastIterationCap:   physics.DefaultIterationCap,
		DeltaCompactThreshold: ChunkVolume / 8,
	}
}

// ColumnMesh — установленный рендер-меш одной колонны.
// ID перегенерируется при каждом перестроении: внешний рендерер
// сравнивает идентификаторы и видит замену буфера как атомарную.
type ColumnMesh struct {
	ID     uuid.UUID
	Column vec.Vec2
	Buffer *mesh.Buffer
}

// Stats — снимок счётчиков движка для отладочного API
type Stats struct {
	ChunksLoaded   int    `json:"chunks_loaded"`
	ColumnMeshes   int    `json:"column_meshes"`
	PendingEdits   int    `json:"pending_edits"`
	PendingColumns int    `json:"pending_columns"`
	DeltaChunks    int    `json:"delta_chunks"`
	CurrentCycle   uint64 `json:"current_cycle"`
}

// WorldManager владеет воксельным миром и координирует конвейер цикла:
// подгрузка/генерация чанков, выгрузка дальних, применение правок,
// перестроение мешей колонн. Единственный источник истины о вокселях.
type WorldManager struct {
	chunks       map[vec.Vec3]*ChunkData  // Резидентные чанки
	columnMeshes map[vec.Vec2]*ColumnMesh // Собранные меши колонн
	generator    *WorldGenerator          // Генератор рельефа
	deltas       *BlockDeltaManager       // Правки поверх генерации
	dirty        *DirtyQueue              // Колонны, ожидающие перестроения
	edits        *EditQueue               // Очередь правок вокселей
	params       Params
	metrics      *EngineMetrics // Опциональные метрики; nil допустим
	currentCycle uint64         // Номер цикла; доступ только через atomic
	mu           sync.RWMutex   // Мьютекс карты чанков, содержимого их сеток и мешей
}

// NewWorldManager создаёт менеджер мира с указанными настройками
func NewWorldManager(params Params) (*WorldManager, error) {
	if params.ChunkLimitY <= 0 {
		params.ChunkLimitY = DefaultParams().ChunkLimitY
	}
	if params.RaycastIterationCap <= 0 {
		params.RaycastIterationCap = physics.DefaultIterationCap
	}

	deltas, err := NewBlockDeltaManager(params.DeltaCompactThreshold)
	if err != nil {
		return nil, err
	}

	return &WorldManager{
		chunks:       make(map[vec.Vec3]*ChunkData),
		columnMeshes: make(map[vec.Vec2]*ColumnMesh),
		generator:    NewWorldGenerator(params.Seed, params.NoiseScale, params.TerrainMinY, params.TerrainMaxY),
		deltas:       deltas,
		dirty:        NewDirtyQueue(),
		edits:        NewEditQueue(),
		params:       params,
	}, nil
}

// AttachMetrics подключает счётчики Prometheus к менеджеру
func (wm *WorldManager) AttachMetrics(m *EngineMetrics) {
	wm.metrics = m
}

// Params возвращает настройки движка
func (wm *WorldManager) Params() Params {
	return wm.params
}

// Step выполняет один цикл конвейера в фиксированном порядке:
// генерация и выгрузка чанков вокруг наблюдателя, применение правок,
// перестроение отмеченных колонн. Порядок стадий гарантирует один
// пишущий этап за раз; mu защищает чтения вне цикла (отладочный API,
// лучи), идущие параллельно с ним.
func (wm *WorldManager) Step(observerChunk vec.Vec3, sightRange int) {
	atomic.AddUint64(&wm.currentCycle, 1)
	wm.EnsureLoaded(observerChunk, sightRange)
	wm.ApplyEdits()
	wm.RebuildColumns()
}

// GetChunk возвращает резидентный чанк по координатам
func (wm *WorldManager) GetChunk(coords vec.Vec3) (*ChunkData, bool) {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	chunk, ok := wm.chunks[coords]
	return chunk, ok
}

// ChunkCount возвращает количество резидентных чанков
func (wm *WorldManager) ChunkCount() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return len(wm.chunks)
}

// GetBlockAt возвращает материал вокселя по мировой позиции.
// Для нерезидентного чанка возвращается воздух.
func (wm *WorldManager) GetBlockAt(pos vec.Vec3) block.BlockID {
	wm.mu.RLock()
	defer wm.mu.RUnlock()

	chunk, ok := wm.chunks[pos.ToChunkCoords()]
	if !ok {
		return block.AirBlockID
	}
	local := pos.LocalInChunk()
	return chunk.GetBlock(local.X, local.Y, local.Z)
}

// IsSolidAt проверяет занятость вокселя по мировой позиции
func (wm *WorldManager) IsSolidAt(pos vec.Vec3) bool {
	return wm.GetBlockAt(pos).IsSolid()
}

// SubmitEdit ставит правку вокселя в очередь текущего цикла
func (wm *WorldManager) SubmitEdit(pos vec.Vec3, id block.BlockID) {
	if !block.IsValidBlockID(id) {
		logging.Warn("Правка с неизвестным материалом %d в %v отклонена", id, pos)
		return
	}
	wm.edits.Submit(pos, id)
}

// ApplyEdits применяет накопленные правки в порядке отправки.
// Правка по нерезидентному чанку молча отбрасывается: правки возможны
// только в уже отрисованной части мира. Возвращает число применённых.
func (wm *WorldManager) ApplyEdits() int {
	applied := 0
	for _, edit := range wm.edits.Drain() {
		chunkCoords := edit.Pos.ToChunkCoords()

		// Запись ячейки идёт под полной блокировкой: читатели сеток
		// (GetBlockAt, лучи из отладочного API) держат RLock
		wm.mu.Lock()
		chunk, ok := wm.chunks[chunkCoords]
		if !ok {
			wm.mu.Unlock()
			logging.Debug("Правка в %v отброшена: чанк %v не загружен", edit.Pos, chunkCoords)
			if wm.metrics != nil {
				wm.metrics.EditsDropped.Inc()
			}
			continue
		}

		local := edit.Pos.LocalInChunk()
		idx := BlockIndex(local.X, local.Y, local.Z)
		chunk.Blocks[idx] = edit.BlockID
		wm.mu.Unlock()

		wm.deltas.Record(chunk, idx, edit.BlockID)
		wm.dirty.Mark(chunkCoords.Column())
		applied++
		if wm.metrics != nil {
			wm.metrics.EditsApplied.Inc()
		}
	}
	return applied
}

// Raycast выполняет обход воксельной сетки лучом и возвращает
// последовательность ячеек от ближней к дальней
func (wm *WorldManager) Raycast(origin, dir vec.Vec3Float, maxRange float64) []vec.Vec3 {
	return physics.TraverseGrid(origin, dir, maxRange, wm.params.RaycastIterationCap)
}

// RaycastHit находит первый твёрдый воксель на пути луча.
// Второй результат false означает «цели нет», это не ошибка.
func (wm *WorldManager) RaycastHit(origin, dir vec.Vec3Float, maxRange float64) (physics.Hit, bool) {
	cells := wm.Raycast(origin, dir, maxRange)
	return physics.FirstHit(cells, wm.IsSolidAt)
}

// MarkColumnDirty отмечает колонну для перестроения меша
func (wm *WorldManager) MarkColumnDirty(column vec.Vec2) {
	wm.dirty.Mark(column)
}

// columnComplete проверяет, что все чанки колонны по высоте резидентны
func (wm *WorldManager) columnComplete(column vec.Vec2) bool {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	for y := 0; y < wm.params.ChunkLimitY; y++ {
		if _, ok := wm.chunks[vec.Vec3{X: column.X, Y: y, Z: column.Z}]; !ok {
			return false
		}
	}
	return true
}

// RebuildColumns перестраивает меши всех отмеченных колонн.
// Неполные колонны пропускаются без повторной постановки: их заново
// отметит событие, которое сделает колонну полной (генерация чанка).
// Возвращает число перестроенных колонн.
func (wm *WorldManager) RebuildColumns() int {
	rebuilt := 0
	for _, column := range wm.dirty.Drain() {
		if !wm.columnComplete(column) {
			continue
		}
		wm.rebuildColumn(column)
		rebuilt++
	}
	return rebuilt
}

// rebuildColumn строит меши всех чанков колонны снизу вверх,
// склеивает их в один буфер и атомарно устанавливает его текущим
func (wm *WorldManager) rebuildColumn(column vec.Vec2) {
	started := time.Now()

	parts := make([]*mesh.Buffer, 0, wm.params.ChunkLimitY)
	for y := 0; y < wm.params.ChunkLimitY; y++ {
		chunk, ok := wm.GetChunk(vec.Vec3{X: column.X, Y: y, Z: column.Z})
		if !ok {
			return // Колонна потеряла полноту между проверкой и сборкой
		}
		parts = append(parts, mesh.Greedy(chunk, chunk.Coords))
	}

	combined := mesh.Combine(parts)
	if wm.params.WeldVertices {
		combined = mesh.Weld(combined, float32(wm.params.WeldThreshold))
	}

	installed := &ColumnMesh{
		ID:     uuid.New(),
		Column: column,
		Buffer: combined,
	}

	wm.mu.Lock()
	wm.columnMeshes[column] = installed
	wm.mu.Unlock()

	if wm.metrics != nil {
		wm.metrics.ColumnsRebuilt.Inc()
		wm.metrics.MeshBuildSeconds.Observe(time.Since(started).Seconds())
		wm.metrics.QuadsEmitted.Add(float64(combined.VertexCount() / 4))
	}
	logging.Debug("Меш колонны %d_%d обновлён: %d вершин, %d треугольников",
		column.X, column.Z, combined.VertexCount(), combined.TriangleCount())
}

// ColumnMeshFor возвращает текущий установленный меш колонны
func (wm *WorldManager) ColumnMeshFor(column vec.Vec2) (*ColumnMesh, bool) {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	cm, ok := wm.columnMeshes[column]
	return cm, ok
}

// ColumnMeshCount возвращает количество установленных мешей колонн
func (wm *WorldManager) ColumnMeshCount() int {
	wm.mu.RLock()
	defer wm.mu.RUnlock()
	return len(wm.columnMeshes)
}

// CurrentStats возвращает снимок счётчиков движка
func (wm *WorldManager) CurrentStats() Stats {
	wm.mu.RLock()
	chunks := len(wm.chunks)
	meshes := len(wm.columnMeshes)
	wm.mu.RUnlock()

	return Stats{
		ChunksLoaded:   chunks,
		ColumnMeshes:   meshes,
		PendingEdits:   wm.edits.Len(),
		PendingColumns: wm.dirty.Len(),
		DeltaChunks:    wm.deltas.DeltaCount(),
		CurrentCycle:   atomic.LoadUint64(&wm.currentCycle),
	}
}
