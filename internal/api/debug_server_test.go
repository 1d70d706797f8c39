package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
)

func testServer(t *testing.T) *DebugServer {
	t.Helper()
	wm, err := world.NewWorldManager(world.Params{
		Seed:        42,
		ChunkLimitY: 2,
		NoiseScale:  0.01,
		TerrainMinY: 4,
		TerrainMaxY: 20,
	})
	assert.NoError(t, err, "Менеджер мира должен создаваться без ошибок")

	// Загружаем рельеф вокруг начала координат
	wm.Step(vec.Vec3{X: 0, Y: 0, Z: 0}, 1)

	return NewDebugServer(Config{World: wm})
}

func doRequest(ds *DebugServer, method, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, nil)
	ds.router.ServeHTTP(w, req)
	return w
}

func TestDebugServer_RaycastNormalizesDirection(t *testing.T) {
	// Длина вектора направления из запроса не должна влиять на
	// результат: дальность задаётся только параметром range
	ds := testServer(t)

	unit := doRequest(ds, http.MethodGet,
		"/api/raycast?ox=0.5&oy=30.5&oz=0.5&dx=0&dy=-1&dz=0&range=40")
	scaled := doRequest(ds, http.MethodGet,
		"/api/raycast?ox=0.5&oy=30.5&oz=0.5&dx=0&dy=-100&dz=0&range=40")

	assert.Equal(t, http.StatusOK, unit.Code, "Единичное направление должно обрабатываться")
	assert.Equal(t, http.StatusOK, scaled.Code, "Масштабированное направление должно обрабатываться")

	var a, b GenericResponse
	assert.NoError(t, json.Unmarshal(unit.Body.Bytes(), &a))
	assert.NoError(t, json.Unmarshal(scaled.Body.Bytes(), &b))

	assert.True(t, a.Success, "Луч вниз в пределах дальности должен найти поверхность")
	assert.NotNil(t, a.Data, "Попадание должно содержать данные")
	assert.Equal(t, a.Data, b.Data, "Масштаб направления не должен менять попадание")
}

func TestDebugServer_RaycastRangeNotStretched(t *testing.T) {
	// Дальности 5 из высоты 30.5 не хватает до поверхности (максимум 20):
	// растянутое направление не должно удлинять луч
	ds := testServer(t)

	w := doRequest(ds, http.MethodGet,
		"/api/raycast?ox=0.5&oy=30.5&oz=0.5&dx=0&dy=-100&dz=0&range=5")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp GenericResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success, "Промах — не ошибка")
	assert.Nil(t, resp.Data, "Короткий луч не должен дотянуться до поверхности")
}

func TestDebugServer_RaycastRejectsZeroDirection(t *testing.T) {
	// Нулевой вектор направления отклоняется на входе
	ds := testServer(t)

	w := doRequest(ds, http.MethodGet,
		"/api/raycast?ox=0.5&oy=30.5&oz=0.5&dx=0&dy=0&dz=0&range=5")

	assert.Equal(t, http.StatusBadRequest, w.Code, "Нулевое направление должно отклоняться")
}
