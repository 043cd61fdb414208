package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmrzaf/jsonfixture/internal/domain"
	"github.com/mmrzaf/jsonfixture/internal/logging"
	"gopkg.in/yaml.v3"
)

type Repository interface {
	List() ([]*domain.Profile, error)
	Get(name string) (*domain.Profile, error)
	GetByPath(path string) (*domain.Profile, error)
}

type FileRepository struct {
	baseDir string
	logger  *logging.Logger
}

type Option func(*FileRepository)

// WithLogger reports profile files that fail to load during List.
func WithLogger(l *logging.Logger) Option {
	return func(r *FileRepository) { r.logger = l.WithComponent("profiles") }
}

func NewFileRepository(baseDir string, opts ...Option) *FileRepository {
	r := &FileRepository{baseDir: baseDir}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func isProfileFile(name string) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func (r *FileRepository) List() ([]*domain.Profile, error) {
	if _, err := os.Stat(r.baseDir); os.IsNotExist(err) {
		return []*domain.Profile{}, nil
	}

	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, err
	}

	profiles := make([]*domain.Profile, 0)
	for _, entry := range entries {
		if entry.IsDir() || !isProfileFile(entry.Name()) {
			continue
		}

		p, err := r.loadProfile(filepath.Join(r.baseDir, entry.Name()))
		if err != nil {
			if r.logger != nil {
				r.logger.Warnw("skipping profile file", map[string]any{"file": entry.Name(), "error": err.Error()})
			}
			continue
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

// Get returns the profile called name. A file named after the profile that
// fails to parse is reported instead of "not found".
func (r *FileRepository) Get(name string) (*domain.Profile, error) {
	profiles, err := r.List()
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}

	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(r.baseDir, name+ext)
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		if _, err := r.loadProfile(path); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("profile not found: %s", name)
}

// GetByPath loads a profile file. Relative paths are resolved against the
// base directory; paths outside it are rejected.
func (r *FileRepository) GetByPath(path string) (*domain.Profile, error) {
	resolved, err := r.resolve(path)
	if err != nil {
		return nil, err
	}
	return r.loadProfile(resolved)
}

func (r *FileRepository) resolve(path string) (string, error) {
	base, err := filepath.Abs(r.baseDir)
	if err != nil {
		return "", err
	}
	target := path
	if !filepath.IsAbs(target) {
		target = filepath.Join(base, target)
	}
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("profile path escapes %s: %s", r.baseDir, path)
	}
	return target, nil
}

func (r *FileRepository) loadProfile(path string) (*domain.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	profile := domain.DefaultProfile()
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(data, profile)
	} else {
		err = yaml.Unmarshal(data, profile)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	if profile.Name == "" || profile.Name == "default" {
		profile.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return profile, nil
}
