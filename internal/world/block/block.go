package block

// BlockID представляет идентификатор материала вокселя.
// Ноль зарезервирован за воздухом: такой воксель не имеет геометрии.
type BlockID uint16

// Константы ID блоков
const (
	AirBlockID   BlockID = iota // 0
	StoneBlockID                // 1
	GrassBlockID                // 2
	DirtBlockID                 // 3
	SandBlockID                 // 4
)

// IsSolid возвращает true, если блок участвует в построении геометрии
func (id BlockID) IsSolid() bool {
	return id != AirBlockID
}

var textureLayers = map[BlockID]uint32{
	StoneBlockID: 0,
	GrassBlockID: 1,
	DirtBlockID:  2,
	SandBlockID:  3,
}

// TextureLayer возвращает слой текстурного массива для блока.
// Для неизвестных ID используется слой камня.
func TextureLayer(id BlockID) uint32 {
	if layer, ok := textureLayers[id]; ok {
		return layer
	}
	return 0
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	if id == AirBlockID {
		return true
	}
	_, exists := textureLayers[id]
	return exists
}
