package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"wtf/internal/fix"
)

// Current schema version - increment when cacheEntry format changes
const cacheSchemaVersion uint16 = 1

// Digest identifies one file content + policy combination.
type Digest [sha256.Size]byte

// Cache хранит результаты проверки по содержимому файла на диске.
// Попадание возможно только при совпадении и содержимого, и политики.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// cacheEntry is the serialized per-file check outcome.
type cacheEntry struct {
	Schema      uint16
	Fingerprint string
	Counters    fix.Counters
	RefEOL      []byte
}

// OpenCache initializes the cache at the standard location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// OpenCacheAt places the cache in an explicit directory. Used by tests and
// the --cache-dir override.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "checks".
	return filepath.Join(c.dir, "checks", hexKey+".mp")
}

// keyFor hashes the file content together with the policy fingerprint.
func keyFor(path, fingerprint string) (Digest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Digest{}, err
	}
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	var key Digest
	copy(key[:], h.Sum(nil))
	return key, nil
}

// Lookup returns a cached Result for path under the given policy fingerprint.
func (c *Cache) Lookup(path, fingerprint string) (*Result, bool) {
	if c == nil {
		return nil, false
	}
	key, err := keyFor(path, fingerprint)
	if err != nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer func() { _ = f.Close() }()

	var entry cacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false
	}
	if entry.Schema != cacheSchemaVersion || entry.Fingerprint != fingerprint {
		return nil, false
	}
	return &Result{
		Path:     path,
		Counters: entry.Counters,
		RefEOL:   entry.RefEOL,
		Cached:   true,
	}, true
}

// Store serializes a check outcome, written via temp file + atomic rename.
func (c *Cache) Store(path, fingerprint string, res *Result) error {
	if c == nil || res == nil {
		return nil
	}
	key, err := keyFor(path, fingerprint)
	if err != nil {
		return err
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
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return
		}
	}()

	entry := cacheEntry{
		Schema:      cacheSchemaVersion,
		Fingerprint: fingerprint,
		Counters:    res.Counters,
		RefEOL:      res.RefEOL,
	}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}
