package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/middleware"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
)

// DebugServer отдаёт состояние движка по HTTP: статистику цикла,
// сводки мешей колонн и приём правок вокселей для отладки.
type DebugServer struct {
	router *gin.Engine
	wm     *world.WorldManager
	srv    *http.Server
	port   string
}

// Config содержит конфигурацию отладочного сервера
type Config struct {
	Port     string               // порт для запуска сервера
	World    *world.WorldManager  // менеджер мира
	Registry *prometheus.Registry // регистр метрик движка
}

// NewDebugServer создает новый отладочный HTTP сервер
func NewDebugServer(config Config) *DebugServer {
	if config.Port == "" {
		config.Port = ":8088"
	}

	// Устанавливаем режим релиза для gin
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	if config.Registry != nil {
		promMw := middleware.NewPrometheusMiddleware("debug_api", config.Registry)
		router.Use(promMw.Handler())
		promMw.RegisterMetricsEndpoint(router, config.Registry)
	}

	server := &DebugServer{
		router: router,
		wm:     config.World,
		port:   config.Port,
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает маршруты отладочного API
func (ds *DebugServer) setupRoutes() {
	api := ds.router.Group("/api")
	{
		api.GET("/stats", ds.handleStats)
		api.GET("/columns/:x/:z", ds.handleColumnMesh)
		api.POST("/edits", ds.handleSubmitEdit)
		api.GET("/raycast", ds.handleRaycast)
	}

	// Health check
	ds.router.GET("/health", ds.handleHealth)
}

// EditRequest представляет запрос на правку вокселя
type EditRequest struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Z       int    `json:"z"`
	BlockID uint16 `json:"block_id"`
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// handleStats возвращает снимок счётчиков движка
func (ds *DebugServer) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика движка получена",
		Data:    ds.wm.CurrentStats(),
	})
}

// handleColumnMesh возвращает сводку меша колонны по её координатам
func (ds *DebugServer) handleColumnMesh(c *gin.Context) {
	x, errX := strconv.Atoi(c.Param("x"))
	z, errZ := strconv.Atoi(c.Param("z"))
	if errX != nil || errZ != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Координаты колонны должны быть целыми числами",
		})
		return
	}

	cm, ok := ds.wm.ColumnMeshFor(vec.Vec2{X: x, Z: z})
	if !ok {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: "Меш колонны не построен",
		})
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Меш колонны получен",
		Data: map[string]interface{}{
			"id":        cm.ID.String(),
			"column":    map[string]int{"x": cm.Column.X, "z": cm.Column.Z},
			"vertices":  cm.Buffer.VertexCount(),
			"triangles": cm.Buffer.TriangleCount(),
		},
	})
}

// handleSubmitEdit ставит правку вокселя в очередь следующего цикла
func (ds *DebugServer) handleSubmitEdit(c *gin.Context) {
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса",
		})
		return
	}

	id := block.BlockID(req.BlockID)
	if !block.IsValidBlockID(id) {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неизвестный материал блока",
		})
		return
	}

	ds.wm.SubmitEdit(vec.Vec3{X: req.X, Y: req.Y, Z: req.Z}, id)
	c.JSON(http.StatusAccepted, GenericResponse{
		Success: true,
		Message: "Правка поставлена в очередь",
	})
}

// handleRaycast пускает луч и возвращает первый твёрдый воксель
func (ds *DebugServer) handleRaycast(c *gin.Context) {
	origin, okO := parseVec3Float(c, "ox", "oy", "oz")
	dir, okD := parseVec3Float(c, "dx", "dy", "dz")
	maxRange, errR := strconv.ParseFloat(c.DefaultQuery("range", "16"), 64)
	if !okO || !okD || errR != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Параметры луча должны быть числами: ox,oy,oz,dx,dy,dz,range",
		})
		return
	}

	if dir.Length() == 0 {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Направление луча не может быть нулевым вектором",
		})
		return
	}

	// Дальность задаётся параметром range: направление нормализуется,
	// чтобы длина вектора из запроса не растягивала луч
	hit, found := ds.wm.RaycastHit(origin, dir.Normalized(), maxRange)
	if !found {
		c.JSON(http.StatusOK, GenericResponse{
			Success: true,
			Message: "Луч не встретил твёрдых вокселей",
		})
		return
	}

	data := map[string]interface{}{
		"voxel": map[string]int{"x": hit.Voxel.X, "y": hit.Voxel.Y, "z": hit.Voxel.Z},
	}
	if hit.HasPrevious {
		data["previous"] = map[string]int{"x": hit.Previous.X, "y": hit.Previous.Y, "z": hit.Previous.Z}
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Попадание найдено",
		Data:    data,
	})
}

func parseVec3Float(c *gin.Context, kx, ky, kz string) (vec.Vec3Float, bool) {
	x, errX := strconv.ParseFloat(c.Query(kx), 64)
	y, errY := strconv.ParseFloat(c.Query(ky), 64)
	z, errZ := strconv.ParseFloat(c.Query(kz), 64)
	if errX != nil || errY != nil || errZ != nil {
		return vec.Vec3Float{}, false
	}
	return vec.Vec3Float{X: x, Y: y, Z: z}, true
}

// handleHealth возвращает состояние сервера
func (ds *DebugServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// Start запускает отладочный сервер в отдельной горутине
func (ds *DebugServer) Start() {
	ds.srv = &http.Server{Addr: ds.port, Handler: ds.router}
	go func() {
		if err := ds.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Отладочный сервер завершился с ошибкой: %v", err)
		}
	}()
	logging.Info("🌐 Отладочный API запущен на %s", ds.port)
}

// Stop останавливает отладочный сервер
func (ds *DebugServer) Stop(ctx context.Context) error {
	if ds.srv == nil {
		return nil
	}
	return ds.srv.Shutdown(ctx)
}
