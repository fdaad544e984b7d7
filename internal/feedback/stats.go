package feedback

import (
	"context"
	"fmt"
)

// DashboardStats are the per-view aggregate counts. They are fetched fresh on
// every call; nothing here is cached.
type DashboardStats struct {
	Total     int
	Pending   int
	Addressed int
	Closed    int
}

// AdminStats extends the aggregates with the organization-wide user count.
type AdminStats struct {
	TotalUsers      int
	TotalFeedback   int
	PendingFeedback int
}

// UserCounter counts user profiles. Satisfied by profile.Repository.
type UserCounter interface {
	CountAll(ctx context.Context) (int, error)
}

// StatsService derives aggregate statistics from count queries. There are no
// partial results: if any count fails the whole fetch fails and the caller
// discards previously displayed numbers.
type StatsService struct {
	repo  Repository
	users UserCounter
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo Repository, users UserCounter) *StatsService {
	return &StatsService{repo: repo, users: users}
}

// Dashboard returns the total and per-status feedback counts.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	total, err := s.repo.CountByStatus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("counting feedback: %w", err)
	}

	var stats DashboardStats
	stats.Total = total

	for _, st := range []struct {
		status Status
		dest   *int
	}{
		{StatusPending, &stats.Pending},
		{StatusAddressed, &stats.Addressed},
		{StatusClosed, &stats.Closed},
	} {
		status := st.status
		n, err := s.repo.CountByStatus(ctx, &status)
		if err != nil {
			return nil, fmt.Errorf("counting %s feedback: %w", status, err)
		}
		*st.dest = n
	}

	return &stats, nil
}

// Admin returns the organization-wide counts for the admin view.
func (s *StatsService) Admin(ctx context.Context) (*AdminStats, error) {
	users, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}

	total, err := s.repo.CountByStatus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("counting feedback: %w", err)
	}

	pending := StatusPending
	pendingCount, err := s.repo.CountByStatus(ctx, &pending)
	if err != nil {
		return nil, fmt.Errorf("counting pending feedback: %w", err)
	}

	return &AdminStats{
		TotalUsers:      users,
		TotalFeedback:   total,
		PendingFeedback: pendingCount,
	}, nil
}
