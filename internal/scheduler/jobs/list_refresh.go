package jobs

import (
	"context"
	"fmt"

	"github.com/minhobin/mtt/internal/mttlist"
	"github.com/minhobin/mtt/pkg/logger"
)

// ListRefreshJob refreshes the daily MTT all-pass list after the
// upstream posts are published
type ListRefreshJob struct {
	service  *mttlist.Service
	logger   *logger.Logger
	schedule string
}

// NewListRefreshJob creates the refresh job with a cron schedule
func NewListRefreshJob(service *mttlist.Service, log *logger.Logger, schedule string) *ListRefreshJob {
	return &ListRefreshJob{
		service:  service,
		logger:   log,
		schedule: schedule,
	}
}

// Name returns the job name
func (j *ListRefreshJob) Name() string {
	return "mtt_list_refresh"
}

// Schedule returns the cron schedule expression
func (j *ListRefreshJob) Schedule() string {
	return j.schedule
}

// Run refreshes the list snapshot
func (j *ListRefreshJob) Run(ctx context.Context) error {
	snapshot, err := j.service.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh MTT list: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"date":  snapshot.Date,
		"count": len(snapshot.Entries),
	}).Info("MTT list refresh job finished")

	return nil
}
