package guest

import (
	"calltracker/internal/models"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	json "github.com/goccy/go-json"
)

// CacheStore keeps guests in a dedicated freecache instance so response
// cache pressure never evicts a login.
type CacheStore struct {
	cache *freecache.Cache
	ttl   int
}

// NewCacheStore allocates sizeMB megabytes. A zero ttl keeps entries until
// they are evicted or cleared.
func NewCacheStore(sizeMB int, ttl time.Duration) *CacheStore {
	return newCacheStore(freecache.NewCache(cacheBytes(sizeMB)), ttl)
}

func newCacheStore(cache *freecache.Cache, ttl time.Duration) *CacheStore {
	return &CacheStore{cache: cache, ttl: int(ttl.Seconds())}
}

func cacheBytes(sizeMB int) int {
	return max(sizeMB, 1) * 1024 * 1024
}

func (s *CacheStore) Load(token string) (models.Identity, error) {
	var identity models.Identity
	raw, err := s.cache.Get([]byte(entryKey(token)))
	if errors.Is(err, freecache.ErrNotFound) {
		return identity, fmt.Errorf("guest %s: %w", token, models.ErrNotFound)
	}
	if err != nil {
		return identity, err
	}
	if err := json.Unmarshal(raw, &identity); err != nil {
		return identity, fmt.Errorf("decode guest %s: %w", token, err)
	}
	return identity, nil
}

func (s *CacheStore) Save(token string, identity models.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return s.cache.Set([]byte(entryKey(token)), raw, s.ttl)
}

func (s *CacheStore) Touch(token string) error {
	err := s.cache.Touch([]byte(entryKey(token)), s.ttl)
	if errors.Is(err, freecache.ErrNotFound) {
		return fmt.Errorf("guest %s: %w", token, models.ErrNotFound)
	}
	return err
}

func (s *CacheStore) Clear(token string) error {
	s.cache.Del([]byte(entryKey(token)))
	return nil
}
