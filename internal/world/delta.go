package world

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// BlockDeltaManager хранит правки вокселей поверх детерминированной
// генерации. Генератор — чистая функция координат, поэтому выгрузка
// чанка без дельт теряла бы правки игрока; дельты переживают выгрузку
// и накатываются заново после регенерации.
type BlockDeltaManager struct {
	chunkDeltas      map[vec.Vec3]*ChunkDelta // Накопленные изменения по чанкам
	deltaVersion     uint64                   // Глобальная версия изменений
	compactThreshold int                      // Порог уплотнения дельты в снимок
	compressor       *zstd.Encoder
	decompressor     *zstd.Decoder
	mu               sync.RWMutex
}

// ChunkDelta содержит накопленные изменения одного чанка
type ChunkDelta struct {
	Changes     map[int]block.BlockID // Индекс в плоском массиве -> материал
	Snapshot    []byte                // Сжатый полный срез сетки, если правок слишком много
	Version     uint64                // Версия этой дельты
	LastUpdated time.Time             // Время последнего обновления
}

// NewBlockDeltaManager создаёт менеджер дельт.
// compactThreshold — число точечных правок, после которого дельта
// уплотняется в zstd-снимок всей сетки чанка.
func NewBlockDeltaManager(compactThreshold int) (*BlockDeltaManager, error) {
	compressor, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания компрессора: %w", err)
	}
	decompressor, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания декомпрессора: %w", err)
	}

	if compactThreshold <= 0 {
		compactThreshold = ChunkVolume / 8
	}

	return &BlockDeltaManager{
		chunkDeltas:      make(map[vec.Vec3]*ChunkDelta),
		compactThreshold: compactThreshold,
		compressor:       compressor,
		decompressor:     decompressor,
	}, nil
}

// Record фиксирует применённую правку. Сам воксель уже перезаписан
// вызывающей стороной; chunk передаётся ради возможного уплотнения.
func (bdm *BlockDeltaManager) Record(chunk *ChunkData, localIndex int, id block.BlockID) {
	bdm.mu.Lock()
	defer bdm.mu.Unlock()

	bdm.deltaVersion++

	delta, exists := bdm.chunkDeltas[chunk.Coords]
	if !exists {
		delta = &ChunkDelta{Changes: make(map[int]block.BlockID)}
		bdm.chunkDeltas[chunk.Coords] = delta
	}

	delta.Changes[localIndex] = id
	delta.Version = bdm.deltaVersion
	delta.LastUpdated = time.Now()

	// Когда точечных правок накопилось много, дешевле хранить
	// сжатый снимок всей сетки, чем карту отдельных ячеек
	if len(delta.Changes) >= bdm.compactThreshold {
		delta.Snapshot = bdm.compressor.EncodeAll(encodeGrid(&chunk.Blocks), nil)
		delta.Changes = make(map[int]block.BlockID)
	}
}

// Apply накатывает сохранённые правки на свежесгенерированный чанк.
// Возвращает true, если чанк был изменён.
func (bdm *BlockDeltaManager) Apply(chunk *ChunkData) bool {
	bdm.mu.RLock()
	delta, exists := bdm.chunkDeltas[chunk.Coords]
	bdm.mu.RUnlock()
	if !exists {
		return false
	}

	if len(delta.Snapshot) > 0 {
		raw, err := bdm.decompressor.DecodeAll(delta.Snapshot, nil)
		if err == nil && len(raw) == ChunkVolume*2 {
			decodeGrid(raw, &chunk.Blocks)
		}
	}
	for idx, id := range delta.Changes {
		if idx >= 0 && idx < ChunkVolume {
			chunk.Blocks[idx] = id
		}
	}
	return true
}

// HasDelta сообщает, есть ли сохранённые правки для чанка
func (bdm *BlockDeltaManager) HasDelta(coords vec.Vec3) bool {
	bdm.mu.RLock()
	defer bdm.mu.RUnlock()
	_, exists := bdm.chunkDeltas[coords]
	return exists
}

// DeltaCount возвращает количество чанков с сохранёнными правками
func (bdm *BlockDeltaManager) DeltaCount() int {
	bdm.mu.RLock()
	defer bdm.mu.RUnlock()
	return len(bdm.chunkDeltas)
}

// encodeGrid сериализует сетку чанка в little-endian байты
func encodeGrid(blocks *[ChunkVolume]block.BlockID) []byte {
	raw := make([]byte, ChunkVolume*2)
	for i, id := range blocks {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(id))
	}
	return raw
}

// decodeGrid восстанавливает сетку чанка из сериализованных байтов
func decodeGrid(raw []byte, blocks *[ChunkVolume]block.BlockID) {
	for i := range blocks {
		blocks[i] = block.BlockID(binary.LittleEndian.Uint16(raw[i*2:]))
	}
}
