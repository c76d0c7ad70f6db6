package service

import (
	"context"
	"time"
)

// HealthService отдаёт метаданные сервиса для /health.
type HealthService struct {
	repo    HealthRepo
	name    string
	version string
	env     string
	started time.Time
	now     clock
}

// HealthStatus: состояние сервиса на момент проверки.
type HealthStatus struct {
	Service     string
	Version     string
	Environment string
	Uptime      time.Duration
	Timestamp   time.Time
	DatabaseUp  bool
}

func NewHealthService(repo HealthRepo, name, version, env string) *HealthService {
	return &HealthService{
		repo:    repo,
		name:    name,
		version: version,
		env:     env,
		started: systemClock(),
		now:     systemClock,
	}
}

// Check собирает метаданные и пингует бд. Недоступная бд не делает проверку ошибкой.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	now := s.now()
	st := HealthStatus{
		Service:     s.name,
		Version:     s.version,
		Environment: s.env,
		Uptime:      now.Sub(s.started),
		Timestamp:   now,
	}
	if s.repo != nil {
		st.DatabaseUp = s.repo.Ping(ctx) == nil
	}
	return st
}
