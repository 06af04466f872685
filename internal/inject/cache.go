package inject

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cleanEntry format changes
const cacheSchemaVersion uint16 = 1

// CleanCache remembers documents that are known to need no identifiers.
type CleanCache interface {
	IsClean(path, vocab string, hash [32]byte) (bool, error)
	MarkClean(path, vocab string, hash [32]byte) error
}

// DiskCache stores clean-document records on disk, one msgpack file per
// (path, vocabulary) key.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cleanEntry struct {
	Schema uint16
	Path   string
	Vocab  string
	Hash   [32]byte
}

// OpenDiskCache opens (and creates) a cache rooted at dir. An empty dir
// selects $XDG_CACHE_HOME/uiid, falling back to ~/.cache/uiid.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "uiid")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	return c.dir
}

func (c *DiskCache) pathFor(path, vocab string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha256.Sum256([]byte(filepath.ToSlash(abs) + "\x00" + vocab))
	return filepath.Join(c.dir, "clean", hex.EncodeToString(sum[:])+".mp")
}

// IsClean reports whether the document at path with the given content hash
// was recorded as needing no changes under vocab.
func (c *DiskCache) IsClean(path, vocab string, hash [32]byte) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(path, vocab))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var entry cleanEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return false, err
	}
	if entry.Schema != cacheSchemaVersion || entry.Vocab != vocab {
		return false, nil
	}
	return entry.Hash == hash, nil
}

// MarkClean records that the document at path with hash needs no changes.
func (c *DiskCache) MarkClean(path, vocab string, hash [32]byte) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(path, vocab)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	entry := cleanEntry{
		Schema: cacheSchemaVersion,
		Path:   path,
		Vocab:  vocab,
		Hash:   hash,
	}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(tmp, p)
}

// DropAll removes every cached record.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "clean"))
}
