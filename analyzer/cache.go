package analyzer

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zeebo/xxh3"

	"pyscope/analyzer/models"
)

// CacheEntry is a cached report with the file metadata used for invalidation.
type CacheEntry struct {
	Report   *models.FileReport
	FileSize int64
	ModTime  time.Time
}

// CacheManager persists analysis reports on disk so unchanged files are not
// reparsed across runs. Entries are invalidated on mtime or size change.
type CacheManager struct {
	cacheDir string
	mutex    sync.RWMutex
}

// NewCacheManager creates a cache manager. If cacheDir is empty it defaults
// to ".pyscope-cache" in the current working directory.
func NewCacheManager(cacheDir string) (*CacheManager, error) {
	if cacheDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		cacheDir = filepath.Join(cwd, ".pyscope-cache")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &CacheManager{cacheDir: cacheDir}, nil
}

// Dir returns the cache directory.
func (cm *CacheManager) Dir() string {
	return cm.cacheDir
}

// cacheKey builds the cache file name for a source path and report variant.
func (cm *CacheManager) cacheKey(path, variant string) string {
	return fmt.Sprintf("%x.cache", xxh3.HashString(path+"|"+variant))
}

// GetReportCache returns the cached report for a file when the file has not
// changed since the entry was written.
func (cm *CacheManager) GetReportCache(path, variant string) (*models.FileReport, bool) {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	data, err := os.ReadFile(filepath.Join(cm.cacheDir, cm.cacheKey(path, variant)))
	if err != nil {
		return nil, false
	}

	var entry CacheEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return nil, false
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if !info.ModTime().Equal(entry.ModTime) || info.Size() != entry.FileSize {
		return nil, false
	}
	return entry.Report, true
}

// SetReportCache stores a report together with the file's current metadata.
func (cm *CacheManager) SetReportCache(path, variant string, report *models.FileReport) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	entry := CacheEntry{
		Report:   report,
		FileSize: info.Size(),
		ModTime:  info.ModTime(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&entry); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	return os.WriteFile(filepath.Join(cm.cacheDir, cm.cacheKey(path, variant)), buf.Bytes(), 0644)
}

// Clear removes every cache entry and recreates the cache directory.
func (cm *CacheManager) Clear() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if err := os.RemoveAll(cm.cacheDir); err != nil {
		return fmt.Errorf("failed to remove cache directory: %w", err)
	}
	return os.MkdirAll(cm.cacheDir, 0755)
}

// Stats reports the number of cache files and their total size in bytes.
func (cm *CacheManager) Stats() (files int, totalSize int64, err error) {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	entries, err := os.ReadDir(cm.cacheDir)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read cache directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cache" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files++
		totalSize += info.Size()
	}
	return files, totalSize, nil
}
