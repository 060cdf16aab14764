package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nitiprint/nitiprint-api/internal/models"
	"github.com/nitiprint/nitiprint-api/pkg/config"
)

// ErrStagedMissing signals that a staging handle no longer resolves to a
// file: the upload expired, was reclaimed, or was already promoted. Order
// confirmation must fail loudly on it rather than record a dangling path.
var ErrStagedMissing = errors.New("staged file not found")

// ErrOutsideRoot signals a relative path that escapes the staging root.
var ErrOutsideRoot = errors.New("path resolves outside storage root")

// ArtifactStore owns the on-disk custody tree for uploaded documents:
// date-partitioned temporary staging, permanent order storage, and payment
// proofs. All relative handles it hands out use forward slashes.
type ArtifactStore struct {
	tempDir   string
	ordersDir string
	proofsDir string
	logger    *zap.Logger
}

// NewArtifactStore resolves the three roots to absolute paths and creates
// them if absent.
func NewArtifactStore(cfg config.StorageConfig, logger *zap.Logger) (*ArtifactStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	roots := []*string{&cfg.TempDir, &cfg.OrdersDir, &cfg.ProofsDir}
	defaults := []string{"./temp_uploads", "./orders", "./proofs"}
	for i, root := range roots {
		if *root == "" {
			*root = defaults[i]
		}
		abs, err := filepath.Abs(*root)
		if err != nil {
			return nil, fmt.Errorf("resolve storage root: %w", err)
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return nil, fmt.Errorf("create storage root: %w", err)
		}
		*root = abs
	}
	return &ArtifactStore{
		tempDir:   cfg.TempDir,
		ordersDir: cfg.OrdersDir,
		proofsDir: cfg.ProofsDir,
		logger:    logger,
	}, nil
}

// DateBucket formats the date-partition directory name for t.
func DateBucket(t time.Time) string {
	return t.Format("2006-01-02")
}

// Stage writes the original document bytes under the current date partition
// and returns the relative staging handle (<date>/<filename>).
func (s *ArtifactStore) Stage(content []byte, filename string, now time.Time) (string, error) {
	bucket := DateBucket(now)
	dir := filepath.Join(s.tempDir, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging partition: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), content, 0o644); err != nil {
		return "", fmt.Errorf("write staged file: %w", err)
	}
	return filepath.ToSlash(filepath.Join(bucket, filename)), nil
}

// Promote moves (never copies) a staged file into permanent order storage as
// orders/<date>/<orderID>-<originalName> and returns the absolute final path.
// A missing source yields ErrStagedMissing.
func (s *ArtifactStore) Promote(handle, orderID, originalName string, now time.Time) (string, error) {
	src, err := s.resolveTemp(handle)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", ErrStagedMissing
		}
		return "", fmt.Errorf("stat staged file: %w", err)
	}

	destDir := filepath.Join(s.ordersDir, DateBucket(now))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create order partition: %w", err)
	}
	dest := filepath.Join(destDir, fmt.Sprintf("%s-%s", orderID, originalName))
	if err := os.Rename(src, dest); err != nil {
		// The sweeper or an admin may have reclaimed the file between the
		// stat and the rename; promotion loses that race.
		if os.IsNotExist(err) {
			return "", ErrStagedMissing
		}
		return "", fmt.Errorf("promote staged file: %w", err)
	}
	return dest, nil
}

// StoreProof writes the payment-proof image and returns its path relative to
// the proofs root (<date>/<orderID>-proof<ext>).
func (s *ArtifactStore) StoreProof(content []byte, ext, orderID string, now time.Time) (string, error) {
	bucket := DateBucket(now)
	dir := filepath.Join(s.proofsDir, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create proof partition: %w", err)
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := fmt.Sprintf("%s-proof%s", orderID, ext)
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("write proof file: %w", err)
	}
	return filepath.ToSlash(filepath.Join(bucket, name)), nil
}

// DeleteOrderFiles removes an order's document and proof, best effort. It
// returns the number of files that could not be removed; the database record
// stays authoritative and its removal is never blocked here.
func (s *ArtifactStore) DeleteOrderFiles(filePath, proofPath string) int {
	failed := 0
	if filePath != "" {
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to delete order file", zap.String("path", filePath), zap.Error(err))
			failed++
		}
	}
	if proofPath != "" {
		full := filepath.Join(s.proofsDir, filepath.FromSlash(proofPath))
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to delete proof file", zap.String("path", full), zap.Error(err))
			failed++
		}
	}
	return failed
}

// OpenOrderFile opens a promoted order document for streaming.
func (s *ArtifactStore) OpenOrderFile(filePath string) (*os.File, error) {
	return os.Open(filePath)
}

// ListStaged enumerates every staged file across date partitions, newest
// first. A missing staging root yields an empty listing.
func (s *ArtifactStore) ListStaged() ([]models.StagedFile, error) {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.StagedFile{}, nil
		}
		return nil, fmt.Errorf("read staging root: %w", err)
	}

	files := make([]models.StagedFile, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		bucket := entry.Name()
		children, err := os.ReadDir(filepath.Join(s.tempDir, bucket))
		if err != nil {
			continue
		}
		for _, child := range children {
			info, err := child.Info()
			if err != nil {
				continue
			}
			files = append(files, models.StagedFile{
				Name:      child.Name(),
				Path:      filepath.ToSlash(filepath.Join(bucket, child.Name())),
				SizeBytes: info.Size(),
				CreatedAt: info.ModTime(),
			})
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].CreatedAt.After(files[j].CreatedAt) })
	return files, nil
}

// DeleteStaged removes the named staged files. Every path is validated to
// resolve inside the staging root before anything is touched; per-path
// failures are reported, not swallowed.
func (s *ArtifactStore) DeleteStaged(relPaths []string) (int, []string) {
	deleted := 0
	errs := make([]string, 0)
	for _, rel := range relPaths {
		full, err := s.resolveTemp(rel)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: access denied", rel))
			continue
		}
		if err := os.Remove(full); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", rel, err))
			continue
		}
		deleted++
	}
	return deleted, errs
}

// Sweep deletes staged files whose mtime is older than now-ttl and prunes
// date partitions left empty. Re-running with no new expirations is a no-op,
// and a missing staging root counts as zero work.
func (s *ArtifactStore) Sweep(now time.Time, ttl time.Duration) (int, error) {
	cutoff := now.Add(-ttl)
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read staging root: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		bucket := filepath.Join(s.tempDir, entry.Name())
		children, err := os.ReadDir(bucket)
		if err != nil {
			continue
		}
		for _, child := range children {
			info, err := child.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				path := filepath.Join(bucket, child.Name())
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					s.logger.Warn("failed to reclaim staged file", zap.String("path", path), zap.Error(err))
					continue
				}
				removed++
			}
		}
		remaining, err := os.ReadDir(bucket)
		if err == nil && len(remaining) == 0 {
			if err := os.Remove(bucket); err != nil && !os.IsNotExist(err) {
				s.logger.Warn("failed to prune empty partition", zap.String("path", bucket), zap.Error(err))
			}
		}
	}
	return removed, nil
}

// TempDir exposes the absolute staging root (used by tests and diagnostics).
func (s *ArtifactStore) TempDir() string { return s.tempDir }

func (s *ArtifactStore) resolveTemp(rel string) (string, error) {
	full := filepath.Join(s.tempDir, filepath.FromSlash(rel))
	relBack, err := filepath.Rel(s.tempDir, full)
	if err != nil || relBack == ".." || strings.HasPrefix(relBack, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return full, nil
}
