package health

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultCheckTimeout = 2 * time.Second

// Checker reports whether a dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckFunc adapts a function to Checker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Ping(ctx context.Context) error { return f(ctx) }

// Report is the outcome of one health evaluation.
type Report struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	Checks  map[string]Checker
	Timeout time.Duration
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{Checks: map[string]Checker{}}
}

// Register adds a named dependency check. Nil checkers are ignored.
func (s *Service) Register(name string, c Checker) {
	if c == nil {
		return
	}
	if s.Checks == nil {
		s.Checks = map[string]Checker{}
	}
	s.Checks[name] = c
}

// Status runs every registered check concurrently. A service with no checks
// is healthy.
func (s *Service) Status(ctx context.Context) Report {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	names := make([]string, 0, len(s.Checks))
	for name := range s.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		mu     sync.Mutex
		report = Report{OK: true, Checks: make(map[string]string, len(names))}
		g      errgroup.Group
	)
	for _, name := range names {
		checker := s.Checks[name]
		g.Go(func() error {
			status := "ok"
			if err := checker.Ping(ctx); err != nil {
				status = "error: " + err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			report.Checks[name] = status
			if status != "ok" {
				report.OK = false
			}
			return nil
		})
	}
	_ = g.Wait()
	return report
}
