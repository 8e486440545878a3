package toml

import (
	"fmt"
	"time"

	"github.com/bnema/shopscript-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Active   string          `toml:"active,omitempty"`
	Profiles []profileSchema `toml:"profiles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}
	return nil
}

func (s fileSchema) find(name string) (int, bool) {
	for i, entry := range s.Profiles {
		if entry.Name == name {
			return i, true
		}
	}
	return -1, false
}

type profileSchema struct {
	Name             string            `toml:"name"`
	BaseURL          string            `toml:"base_url"`
	Headers          map[string]string `toml:"headers,omitempty"`
	ConnectTimeoutMS int64             `toml:"connect_timeout_ms,omitempty"`
	ReceiveTimeoutMS int64             `toml:"receive_timeout_ms,omitempty"`
}

func toSchema(profile domain.Profile) profileSchema {
	return profileSchema{
		Name:             profile.Name,
		BaseURL:          profile.BaseURL,
		Headers:          profile.Headers,
		ConnectTimeoutMS: profile.ConnectTimeout.Milliseconds(),
		ReceiveTimeoutMS: profile.ReceiveTimeout.Milliseconds(),
	}
}

func fromSchema(entry profileSchema) domain.Profile {
	return domain.Profile{
		Name:           entry.Name,
		BaseURL:        entry.BaseURL,
		Headers:        entry.Headers,
		ConnectTimeout: time.Duration(entry.ConnectTimeoutMS) * time.Millisecond,
		ReceiveTimeout: time.Duration(entry.ReceiveTimeoutMS) * time.Millisecond,
	}
}
