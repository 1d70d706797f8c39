package config

import (
	"io/ioutil"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации движка.
// Содержит секции мира, стриминга и серверных портов.

type Config struct {
	World     WorldConfig     `yaml:"world"`
	Streaming StreamingConfig `yaml:"streaming"`
	Server    ServerConfig    `yaml:"server"`
}

type WorldConfig struct {
	Seed          int64   `yaml:"seed"`
	ChunkLimitY   int     `yaml:"chunk_limit_y"`
	NoiseScale    float64 `yaml:"noise_scale"`
	TerrainMinY   int     `yaml:"terrain_min_y"`
	TerrainMaxY   int     `yaml:"terrain_max_y"`
	WeldVertices  bool    `yaml:"weld_vertices"`
	WeldThreshold float64 `yaml:"weld_threshold"`
}

type StreamingConfig struct {
	SightRange            int `yaml:"sight_range"`
	RaycastIterationCap   int `yaml:"raycast_iteration_cap"`
	DeltaCompactThreshold int `yaml:"delta_compact_threshold"`
}

type ServerConfig struct {
	RESTPort    int `yaml:"rest_port"`
	MetricsPort int `yaml:"metrics_port"`
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "ENGINE_REST_PORT", 8088)
}

// GetMetricsPort возвращает Prometheus метрики порт с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "ENGINE_METRICS_PORT", 2112)
}

// GetSightRange возвращает радиус видимости наблюдателя; 0 в конфиге
// означает значение по умолчанию.
func (s *StreamingConfig) GetSightRange() int {
	if s.SightRange > 0 {
		return s.SightRange
	}
	return 6
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV ENGINE_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("ENGINE_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
