// Package toml persists backend profiles in ~/.shopscript/profiles.toml.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	ConfigDir       = ".shopscript"
	ProfilesPathKey = "profiles.path"

	configName      = "config"
	configType      = "toml"
	profilesFile    = "profiles.toml"
	fileMode        = 0o600
	dirMode         = 0o700
	tempFilePattern = ".profiles-*.toml.tmp"
)

type Repository struct {
	path string
	mu   *sync.RWMutex
}

var (
	locksMu sync.Mutex
	locks   = map[string]*sync.RWMutex{}
)

var _ ports.ProfileRepository = (*Repository)(nil)

// NewRepository resolves the profiles file from cfg, reading
// ~/.shopscript/config.toml when present.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ConfigDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)
	cfg.SetDefault(ProfilesPathKey, filepath.Join(dir, profilesFile))

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	path := cfg.GetString(ProfilesPathKey)
	if path == "" {
		return nil, errors.New("profiles path is empty")
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve profiles path: %w", err)
	}
	path = filepath.Clean(path)

	return &Repository{path: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

// Save inserts or replaces a profile by name. The first saved profile
// becomes active.
func (r *Repository) Save(ctx context.Context, profile domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.read()
	if err != nil {
		return err
	}

	entry := toSchema(profile)
	if i, ok := file.find(profile.Name); ok {
		file.Profiles[i] = entry
	} else {
		file.Profiles = append(file.Profiles, entry)
	}
	if file.Active == "" {
		file.Active = profile.Name
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.write(file)
}

func (r *Repository) GetByName(ctx context.Context, name string) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.read()
	if err != nil {
		return domain.Profile{}, err
	}

	i, ok := file.find(name)
	if !ok {
		return domain.Profile{}, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}

	return fromSchema(file.Profiles[i]), nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.read()
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(file.Profiles))
	for _, entry := range file.Profiles {
		profiles = append(profiles, fromSchema(entry))
	}

	return profiles, nil
}

// Active returns the active profile name, or "" when none is set.
func (r *Repository) Active(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.read()
	if err != nil {
		return "", err
	}

	return file.Active, nil
}

func (r *Repository) SetActive(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := file.find(name); !ok {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}

	file.Active = name
	return r.write(file)
}

func (r *Repository) read() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return fileSchema{Version: currentSchemaVersion}, nil
	}
	if err != nil {
		return fileSchema{}, fmt.Errorf("read profiles file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode profiles file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) write(file fileSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode profiles file: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp profiles file: %w", err)
	}
	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp profiles file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp profiles file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp profiles file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace profiles file: %w", err)
	}
	renamed = true

	return nil
}

// lockForPath shares one lock between repositories opened on the same file.
func lockForPath(path string) *sync.RWMutex {
	locksMu.Lock()
	defer locksMu.Unlock()

	if mu, ok := locks[path]; ok {
		return mu
	}
	mu := &sync.RWMutex{}
	locks[path] = mu
	return mu
}
