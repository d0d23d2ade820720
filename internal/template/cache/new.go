package cache

import (
	stdsync "sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"event-prep-engine/internal/template"
	"event-prep-engine/internal/template/repository"
	"event-prep-engine/pkg/log"
)

const (
	// DefaultMinConfidence is the floor below which a cached template is
	// ignored and the timeline is regenerated from patterns.
	DefaultMinConfidence = 70

	readCacheSize = 256
)

// Connectivity reports whether the remote authority is reachable.
type Connectivity interface {
	Online() bool
}

// Cache is the local-first template store. Reads prefer the in-memory
// LRU, then the durable local store, then the remote authority. Writes
// always land locally first; remote confirmation happens inline when
// online or later through the sync flush.
type Cache struct {
	l             log.Logger
	local         repository.LocalStore
	remote        repository.RemoteAuthority
	conn          Connectivity
	minConfidence int

	read *lru.Cache[string, template.CacheEntry]

	// mu serializes load-modify-save cycles against the local store.
	mu stdsync.Mutex

	now   func() time.Time
	newID func() string
}

func New(l log.Logger, local repository.LocalStore, remote repository.RemoteAuthority, conn Connectivity, minConfidence int) (*Cache, error) {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	read, err := lru.New[string, template.CacheEntry](readCacheSize)
	if err != nil {
		return nil, err
	}
	return &Cache{
		l:             l,
		local:         local,
		remote:        remote,
		conn:          conn,
		minConfidence: minConfidence,
		read:          read,
		now:           time.Now,
		newID: func() string {
			return template.TempIDPrefix + uuid.NewString()
		},
	}, nil
}
