// cache.go — LRU-кэш альбомов с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Andert51/P-Music-td/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pm_album_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш альбомов.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pm_album_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша альбомов.",
	})
)

// AlbumCache — LRU-кэш альбомов по ID. Потокобезопасен.
// Запись инвалидируется при изменении статуса одобрения.
type AlbumCache struct {
	cache *expirable.LRU[int64, *model.Album]
}

// NewAlbumCache создаёт кэш с максимальным размером maxSize и TTL записи ttl.
func NewAlbumCache(maxSize int, ttl time.Duration) *AlbumCache {
	return &AlbumCache{cache: expirable.NewLRU[int64, *model.Album](maxSize, nil, ttl)}
}

// Get возвращает копию альбома из кэша.
func (c *AlbumCache) Get(id int64) (*model.Album, bool) {
	a, ok := c.cache.Get(id)
	if !ok {
		cacheMissesTotal.Inc()
		return nil, false
	}
	cacheHitsTotal.Inc()
	cp := *a
	return &cp, true
}

// Set сохраняет копию альбома.
func (c *AlbumCache) Set(a *model.Album) {
	cp := *a
	c.cache.Add(a.ID, &cp)
}

// Delete удаляет альбом из кэша.
func (c *AlbumCache) Delete(id int64) {
	c.cache.Remove(id)
}

// Len возвращает количество записей.
func (c *AlbumCache) Len() int {
	return c.cache.Len()
}
