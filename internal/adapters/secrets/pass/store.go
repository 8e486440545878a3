// Package pass stores session tokens in the user's pass(1) password store.
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/bnema/shopscript-cli/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

// pass prints this for show/rm on a missing entry.
const missingEntry = "is not in the password store"

type runner func(ctx context.Context, stdin string, args ...string) (stdout string, stderr string, err error)

type Store struct {
	run runner
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPass}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, stderr, err := s.run(ctx, value+"\n", "insert", "--multiline", "--force", key); err != nil {
		return commandError("insert", key, err, stderr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", key)
	if err != nil {
		if strings.Contains(stderr, missingEntry) {
			return "", fmt.Errorf("%w: %s", domain.ErrSecretNotFound, key)
		}
		return "", commandError("show", key, err, stderr)
	}

	return strings.TrimRight(stdout, "\r\n"), nil
}

// Delete treats a missing entry as already deleted.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "--force", key)
	if err != nil && !strings.Contains(stderr, missingEntry) {
		return commandError("rm", key, err, stderr)
	}

	return nil
}

func runPass(ctx context.Context, stdin string, args ...string) (string, string, error) {
	bin, err := exec.LookPath("pass")
	if errors.Is(err, exec.ErrNotFound) {
		return "", "", ErrUnavailable
	}
	if err != nil {
		return "", "", fmt.Errorf("locate pass: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func commandError(op string, key string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, key, err)
	}
	return fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
}
