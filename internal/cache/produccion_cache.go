package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"agro-service/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheStats estadísticas del caché
type CacheStats struct {
	Hits          int64
	Misses        int64
	TotalRequests int64
	TotalKeys     int
}

// ProduccionCache implementa caché multi-nivel para producciones.
// L1 en memoria local, L2 en Redis. Redis es opcional: sin cliente el
// caché opera solo en memoria.
type ProduccionCache struct {
	l1Cache map[int]*models.Produccion
	l1Mutex sync.RWMutex

	redisClient *redis.Client

	maxL1Size int
	ttl       time.Duration

	logger *zap.Logger

	statsMutex sync.RWMutex
	hits       int64
	misses     int64
}

// NewProduccionCache crea una nueva instancia del caché
func NewProduccionCache(redisClient *redis.Client, maxL1Size int, ttl time.Duration, logger *zap.Logger) *ProduccionCache {
	return &ProduccionCache{
		l1Cache:     make(map[int]*models.Produccion),
		redisClient: redisClient,
		maxL1Size:   maxL1Size,
		ttl:         ttl,
		logger:      logger,
	}
}

// GetStats retorna estadísticas del caché
func (pc *ProduccionCache) GetStats() CacheStats {
	pc.statsMutex.RLock()
	defer pc.statsMutex.RUnlock()

	pc.l1Mutex.RLock()
	totalKeys := len(pc.l1Cache)
	pc.l1Mutex.RUnlock()

	return CacheStats{
		Hits:          pc.hits,
		Misses:        pc.misses,
		TotalRequests: pc.hits + pc.misses,
		TotalKeys:     totalKeys,
	}
}

// Get busca una producción en el caché multi-nivel
func (pc *ProduccionCache) Get(ctx context.Context, id int) *models.Produccion {
	start := time.Now()

	if produccion := pc.getFromL1(id); produccion != nil {
		pc.recordHit()
		pc.logger.Debug("L1 cache hit",
			zap.Int("id_produccion", id),
			zap.Duration("latency", time.Since(start)))
		return produccion
	}

	if produccion := pc.getFromL2(ctx, id); produccion != nil {
		pc.setToL1(id, produccion)
		pc.recordHit()
		pc.logger.Debug("L2 cache hit",
			zap.Int("id_produccion", id),
			zap.Duration("latency", time.Since(start)))
		return produccion
	}

	pc.recordMiss()
	pc.logger.Debug("Cache miss",
		zap.Int("id_produccion", id),
		zap.Duration("latency", time.Since(start)))

	return nil
}

// Set almacena una producción en ambos niveles de caché
func (pc *ProduccionCache) Set(ctx context.Context, produccion *models.Produccion) {
	pc.setToL1(produccion.ID, produccion)
	pc.setToL2(ctx, produccion)
}

// Invalidate invalida una producción en ambos cachés.
// Se llama en toda mutación de la producción: update, delete, cambio de
// estado y cada registro del ledger.
func (pc *ProduccionCache) Invalidate(ctx context.Context, id int) {
	pc.l1Mutex.Lock()
	delete(pc.l1Cache, id)
	pc.l1Mutex.Unlock()

	if pc.redisClient != nil {
		if err := pc.redisClient.Del(ctx, pc.key(id)).Err(); err != nil {
			pc.logger.Warn("Error invalidando cache en Redis", zap.Int("id_produccion", id), zap.Error(err))
		}
	}
}

func (pc *ProduccionCache) recordHit() {
	pc.statsMutex.Lock()
	pc.hits++
	pc.statsMutex.Unlock()
}

func (pc *ProduccionCache) recordMiss() {
	pc.statsMutex.Lock()
	pc.misses++
	pc.statsMutex.Unlock()
}

func (pc *ProduccionCache) key(id int) string {
	return fmt.Sprintf("produccion:%d", id)
}

func (pc *ProduccionCache) getFromL1(id int) *models.Produccion {
	pc.l1Mutex.RLock()
	defer pc.l1Mutex.RUnlock()
	return pc.l1Cache[id]
}

func (pc *ProduccionCache) setToL1(id int, produccion *models.Produccion) {
	pc.l1Mutex.Lock()
	defer pc.l1Mutex.Unlock()

	if len(pc.l1Cache) >= pc.maxL1Size {
		pc.evict()
	}

	pc.l1Cache[id] = produccion
}

// evict elimina una entrada arbitraria cuando el L1 está lleno
func (pc *ProduccionCache) evict() {
	for key := range pc.l1Cache {
		delete(pc.l1Cache, key)
		break
	}
}

func (pc *ProduccionCache) getFromL2(ctx context.Context, id int) *models.Produccion {
	if pc.redisClient == nil {
		return nil
	}

	data, err := pc.redisClient.Get(ctx, pc.key(id)).Result()
	if err != nil {
		return nil
	}

	var produccion models.Produccion
	if err := json.Unmarshal([]byte(data), &produccion); err != nil {
		pc.logger.Warn("Error deserializando produccion del cache", zap.Error(err))
		return nil
	}

	return &produccion
}

func (pc *ProduccionCache) setToL2(ctx context.Context, produccion *models.Produccion) {
	if pc.redisClient == nil {
		return
	}

	data, err := json.Marshal(produccion)
	if err != nil {
		pc.logger.Warn("Error serializando produccion para el cache", zap.Error(err))
		return
	}

	if err := pc.redisClient.Set(ctx, pc.key(produccion.ID), data, pc.ttl).Err(); err != nil {
		pc.logger.Warn("Error guardando produccion en Redis", zap.Error(err))
	}
}

// Stats retorna estadísticas del caché como mapa para el endpoint de monitoring
func (pc *ProduccionCache) Stats() models.CacheMetrics {
	stats := pc.GetStats()
	hitRate := 0.0
	if stats.TotalRequests > 0 {
		hitRate = float64(stats.Hits) / float64(stats.TotalRequests)
	}
	return models.CacheMetrics{
		Hits:          stats.Hits,
		Misses:        stats.Misses,
		TotalRequests: stats.TotalRequests,
		HitRate:       hitRate,
		TotalKeys:     stats.TotalKeys,
	}
}
