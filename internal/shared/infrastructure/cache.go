package infrastructure

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// CacheEntry représente une entrée de cache horodatée
// Expiration nulle = valide jusqu'à invalidation explicite
type CacheEntry struct {
	Key        string
	Value      interface{}
	StoredAt   time.Time
	Expiration time.Time
}

// IsExpired vérifie si l'entrée est expirée à l'instant now
func (e CacheEntry) IsExpired(now time.Time) bool {
	return !e.Expiration.IsZero() && now.After(e.Expiration)
}

// Cache interface pour l'abstraction du cache
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
	Clear()
	Has(key string) bool
	CurrentKey() string
}

// SlotCache cache à emplacement unique: une seule entrée vit à la fois.
// Un Set avec une nouvelle clé remplace l'entrée précédente en entier,
// ce qui correspond au cycle de vie "dernier fichier chargé".
type SlotCache struct {
	mu    sync.RWMutex
	entry *CacheEntry
	now   func() time.Time
}

// NewSlotCache crée un nouveau cache à emplacement unique
func NewSlotCache() *SlotCache {
	return &SlotCache{now: time.Now}
}

// Get récupère une valeur du cache
func (c *SlotCache) Get(key string) (interface{}, bool) {
	entry, ok := c.Entry(key)
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

// Entry récupère l'entrée complète (valeur + horodatage)
func (c *SlotCache) Entry(key string) (CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil || c.entry.Key != key {
		return CacheEntry{}, false
	}
	if c.entry.IsExpired(c.now()) {
		return CacheEntry{}, false
	}
	return *c.entry, true
}

// Set remplace l'emplacement par (key, value). ttl <= 0 = pas d'expiration
func (c *SlotCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	entry := &CacheEntry{
		Key:      key,
		Value:    value,
		StoredAt: now,
	}
	if ttl > 0 {
		entry.Expiration = now.Add(ttl)
	}
	c.entry = entry
}

// Delete supprime l'entrée si elle correspond à la clé
func (c *SlotCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry != nil && c.entry.Key == key {
		c.entry = nil
	}
}

// Clear vide complètement le cache
func (c *SlotCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = nil
}

// Has vérifie si une clé existe et n'est pas expirée
func (c *SlotCache) Has(key string) bool {
	_, exists := c.Get(key)
	return exists
}

// CurrentKey retourne la clé actuellement en cache ("" si vide)
func (c *SlotCache) CurrentKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil {
		return ""
	}
	return c.entry.Key
}

// CacheKeyBuilder aide à construire des clés de cache cohérentes
type CacheKeyBuilder struct {
	parts []string
}

// NewCacheKeyBuilder crée un nouveau builder de clé
func NewCacheKeyBuilder() *CacheKeyBuilder {
	return &CacheKeyBuilder{
		parts: make([]string, 0, 4),
	}
}

// Add ajoute une partie à la clé
func (b *CacheKeyBuilder) Add(part string) *CacheKeyBuilder {
	b.parts = append(b.parts, part)
	return b
}

// AddInt ajoute un entier à la clé
func (b *CacheKeyBuilder) AddInt(value int) *CacheKeyBuilder {
	b.parts = append(b.parts, strconv.Itoa(value))
	return b
}

// Build construit la clé finale
func (b *CacheKeyBuilder) Build() string {
	return strings.Join(b.parts, ":")
}
