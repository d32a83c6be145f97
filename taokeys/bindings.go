package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/nigeltao/taokeys/internal/config"
	"github.com/nigeltao/taokeys/keys"
)

// execAction starts cmd and returns without waiting for it to exit.
func execAction(cmd []string, logger *slog.Logger) keys.Action {
	return keys.ActionFunc(func() error {
		if len(cmd) == 0 {
			return nil
		}
		c := exec.Command(cmd[0], cmd[1:]...)
		if err := c.Start(); err != nil {
			return fmt.Errorf("could not start command %q: %w", cmd, err)
		}
		logger.Debug("started command", "cmd", cmd, "pid", c.Process.Pid)
		go func() {
			// Ignore any error from the program itself.
			c.Wait()
		}()
		return nil
	})
}

// registry is the part of *keys.Registry that a bindingSet changes.
type registry interface {
	Add(*keys.Binding) error
	Remove(*keys.Binding) error
}

// bindingSet is the configured bindings currently in a registry.
type bindingSet struct {
	reg    registry
	log    *slog.Logger
	action func(cmd []string) keys.Action

	mu      sync.Mutex
	current []*keys.Binding
}

func newBindingSet(reg registry, logger *slog.Logger) *bindingSet {
	return &bindingSet{
		reg:    reg,
		log:    logger,
		action: func(cmd []string) keys.Action { return execAction(cmd, logger) },
	}
}

// apply replaces the current bindings with cbs. The new bindings are added
// before the old ones are removed, so chords present in both stay grabbed
// throughout. A binding that cannot be built or whose keysym is not on the
// keyboard is skipped; partial grab failures are logged.
func (s *bindingSet) apply(cbs []config.Binding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]*keys.Binding, 0, len(cbs))
	seen := map[string]bool{}
	for _, cb := range cbs {
		b, err := cb.Build(s.action(cb.Exec))
		if err != nil {
			s.log.Warn("skipping binding", "chord", cb.Chord, "err", err)
			continue
		}
		if seen[b.String()] {
			s.log.Warn("chord bound twice, the later binding wins", "binding", b.String())
		}
		seen[b.String()] = true
		if err := s.reg.Add(b); err != nil {
			s.log.Warn("could not grab every mask", "binding", b.String(), "err", err)
			if !registered(err) {
				continue
			}
		}
		next = append(next, b)
	}
	for _, b := range s.current {
		if err := s.reg.Remove(b); err != nil {
			s.log.Warn("could not release binding", "binding", b.String(), "err", err)
		}
	}
	s.current = next
	s.log.Info("bindings registered", "count", len(next))
}

// registered reports whether an error from Registry.Add still left the
// binding in the registry. Only grab failures do.
func registered(err error) bool {
	return !errors.Is(err, keys.ErrUnknownKeysym)
}

func (s *bindingSet) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.current)
}
