package driver

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tileman/internal/deser"
	"tileman/internal/source"
	"tileman/internal/tiles"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит собранные каталоги на диске по ключу из хешей документов.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedSubfolder is the collected part of a SubfolderScan.
type CachedSubfolder struct {
	Name         string
	Category     tiles.TileCategory
	ErroredLines []deser.ErroredLine
}

// DiskPayload is one cached load.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema     uint16
	Key        source.Digest
	Init       deser.TileInit
	Subfolders []CachedSubfolder
	Created    time.Time
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app>, falling back
// to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key source.Digest) string {
	// подкаталог "inits" для удобства очистки
	return filepath.Join(c.dir, "inits", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key source.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	payload.Key = key
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or one written by another schema
// version is a miss, not an error.
func (c *DiskCache) Get(key source.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false, err
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Key != key {
		return false, nil
	}
	*out = payload
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, затем удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// cacheKey covers everything the assembled result depends on: decoder
// options, root path and content, and each subfolder's name, path and
// documents.
func cacheKey(root string, rootFile *source.File, scans []SubfolderScan, opts Options) source.Digest {
	parts := [][]byte{
		{byte(diskCacheSchemaVersion), boolByte(opts.Lingo.DepthAwareSplit), boolByte(opts.Subfolders)},
		[]byte(root),
		rootFile.Hash[:],
	}
	for i := range scans {
		sc := &scans[i]
		parts = append(parts, []byte(sc.Name), []byte(sc.Path), sc.initFile.Hash[:])
		if sc.colorFile != nil {
			parts = append(parts, sc.colorFile.Hash[:])
		} else {
			parts = append(parts, nil)
		}
	}
	return source.DigestOf(parts...)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// cacheable reports whether every document was read cleanly.
func cacheable(scans []SubfolderScan) bool {
	for i := range scans {
		if scans[i].Failed || len(scans[i].ErroredLines) > 0 {
			return false
		}
	}
	return true
}
