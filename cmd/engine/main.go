package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/voxel-world/internal/api"
	"github.com/annel0/voxel-world/internal/config"
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию ENGINE_CONFIG)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("engine"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🌍 Запуск воксельного движка мира...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}

	params := world.DefaultParams()
	sightRange := 6
	restPort := ":8088"
	if cfg != nil {
		params = paramsFromConfig(cfg, params)
		sightRange = cfg.Streaming.GetSightRange()
		restPort = fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	}
	logging.Info("📡 Конфигурация: seed=%d, высота=%d чанков, радиус видимости=%d, REST=%s",
		params.Seed, params.ChunkLimitY, sightRange, restPort)

	// === ИНИЦИАЛИЗАЦИЯ КОМПОНЕНТОВ ===

	logging.Debug("Создание менеджера мира...")
	wm, err := world.NewWorldManager(params)
	if err != nil {
		logging.Error("❌ Ошибка создания менеджера мира: %v", err)
		log.Fatalf("❌ Ошибка создания менеджера мира: %v", err)
	}

	registry := prometheus.NewRegistry()
	wm.AttachMetrics(world.NewEngineMetrics(registry))

	logging.Debug("Запуск отладочного API...")
	debugServer := api.NewDebugServer(api.Config{
		Port:     restPort,
		World:    wm,
		Registry: registry,
	})
	debugServer.Start()

	logging.Info("✅ Движок запущен")
	logging.Info("   🌐 Отладочный API: http://localhost%s", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)
	logging.Info("💡 Примеры использования:")
	logging.Info("   curl http://localhost%s/api/stats", restPort)
	logging.Info("   curl -X POST http://localhost%s/api/edits -H 'Content-Type: application/json' -d '{\"x\":5,\"y\":60,\"z\":5,\"block_id\":0}'", restPort)

	// Канал для получения сигналов ОС
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// === ЦИКЛ ДВИЖКА ===
	// Наблюдатель медленно движется вдоль оси X, по чанку за цикл,
	// прогоняя конвейер стриминга, правок и перестроения мешей.
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	observer := vec.Vec3{X: 0, Y: 4, Z: 0}

loop:
	for {
		select {
		case sig := <-sigCh:
			logging.Info("📡 Получен сигнал %v, завершение работы...", sig)
			break loop
		case <-ticker.C:
			wm.Step(observer, sightRange)
			stats := wm.CurrentStats()
			logging.Debug("Цикл %d: чанков=%d, мешей=%d, правок в очереди=%d",
				stats.CurrentCycle, stats.ChunksLoaded, stats.ColumnMeshes, stats.PendingEdits)
			if stats.CurrentCycle%16 == 0 {
				observer.X++
			}
		}
	}

	// === GRACEFUL SHUTDOWN ===
	logging.Debug("Остановка сервисов...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := debugServer.Stop(ctx); err != nil {
		logging.Error("❌ Ошибка остановки отладочного API: %v", err)
	}

	logging.Info("👋 Движок успешно остановлен")
}

// paramsFromConfig накладывает значения из YAML на параметры по умолчанию
func paramsFromConfig(cfg *config.Config, params world.Params) world.Params {
	if cfg.World.Seed != 0 {
		params.Seed = cfg.World.Seed
	}
	if cfg.World.ChunkLimitY > 0 {
		params.ChunkLimitY = cfg.World.ChunkLimitY
	}
	if cfg.World.NoiseScale > 0 {
		params.NoiseScale = cfg.World.NoiseScale
	}
	if cfg.World.TerrainMaxY > 0 {
		params.TerrainMinY = cfg.World.TerrainMinY
		params.TerrainMaxY = cfg.World.TerrainMaxY
	}
	params.WeldVertices = cfg.World.WeldVertices
	if cfg.World.WeldThreshold > 0 {
		params.WeldThreshold = cfg.World.WeldThreshold
	}
	if cfg.Streaming.RaycastIterationCap > 0 {
		params.RaycastIterationCap = cfg.Streaming.RaycastIterationCap
	}
	if cfg.Streaming.DeltaCompactThreshold > 0 {
		params.DeltaCompactThreshold = cfg.Streaming.DeltaCompactThreshold
	}
	return params
}
