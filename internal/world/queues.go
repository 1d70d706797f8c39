package world

import (
	"sync"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// DirtyQueue — множество колонн, ожидающих перестроения меша.
// Повторные отметки одной колонны схлопываются: сколько бы событий
// ни затронуло колонну за цикл, она перестраивается один раз.
type DirtyQueue struct {
	mu      sync.Mutex
	pending map[vec.Vec2]struct{}
}

// NewDirtyQueue создаёт пустую очередь отметок
func NewDirtyQueue() *DirtyQueue {
	return &DirtyQueue{pending: make(map[vec.Vec2]struct{})}
}

// Mark отмечает колонну как требующую перестроения (идемпотентно)
func (dq *DirtyQueue) Mark(column vec.Vec2) {
	dq.mu.Lock()
	dq.pending[column] = struct{}{}
	dq.mu.Unlock()
}

// Drain возвращает накопленные колонны и очищает множество.
// Очередь очищается независимо от того, какие колонны удастся
// перестроить: неполную колонну позже заново отметит породившее событие.
func (dq *DirtyQueue) Drain() []vec.Vec2 {
	dq.mu.Lock()
	defer dq.mu.Unlock()

	columns := make([]vec.Vec2, 0, len(dq.pending))
	for column := range dq.pending {
		columns = append(columns, column)
	}
	dq.pending = make(map[vec.Vec2]struct{})
	return columns
}

// Len возвращает количество отмеченных колонн
func (dq *DirtyQueue) Len() int {
	dq.mu.Lock()
	defer dq.mu.Unlock()
	return len(dq.pending)
}

// Contains проверяет, отмечена ли колонна
func (dq *DirtyQueue) Contains(column vec.Vec2) bool {
	dq.mu.Lock()
	defer dq.mu.Unlock()
	_, ok := dq.pending[column]
	return ok
}

// VoxelEdit представляет запрос на изменение одного вокселя
type VoxelEdit struct {
	Pos     vec.Vec3      // Мировая позиция вокселя
	BlockID block.BlockID // Новый материал; 0 — разрушение
}

// EditQueue — упорядоченная очередь правок вокселей.
// Правки применяются в порядке отправки; при повторной правке одной
// позиции побеждает последняя, поскольку применение перезаписывает ячейку.
type EditQueue struct {
	mu    sync.Mutex
	edits []VoxelEdit
}

// NewEditQueue создаёт пустую очередь правок
func NewEditQueue() *EditQueue {
	return &EditQueue{}
}

// Submit добавляет правку в конец очереди
func (eq *EditQueue) Submit(pos vec.Vec3, id block.BlockID) {
	eq.mu.Lock()
	eq.edits = append(eq.edits, VoxelEdit{Pos: pos, BlockID: id})
	eq.mu.Unlock()
}

// Drain возвращает накопленные правки в порядке отправки и очищает очередь
func (eq *EditQueue) Drain() []VoxelEdit {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	edits := eq.edits
	eq.edits = nil
	return edits
}

// Len возвращает количество правок в очереди
func (eq *EditQueue) Len() int {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return len(eq.edits)
}
