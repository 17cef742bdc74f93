package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/zentra/paper-trader/internal/modules/analytics"
)

// SnapshotSchedule samples the portfolio value once a minute. The session
// enforces its own minimum interval, so overlap with request-driven
// sampling is harmless.
const SnapshotSchedule = "@every 60s"

// SnapshotJob periodically records the portfolio value
type SnapshotJob struct {
	analytics *analytics.Service
	log       zerolog.Logger
}

// NewSnapshotJob creates the periodic snapshot job
func NewSnapshotJob(svc *analytics.Service, log zerolog.Logger) *SnapshotJob {
	return &SnapshotJob{
		analytics: svc,
		log:       log.With().Str("job", "portfolio_snapshot").Logger(),
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "portfolio_snapshot"
}

// Run records one portfolio snapshot
func (j *SnapshotJob) Run() error {
	result := j.analytics.RecordSnapshot(time.Now())

	if result.Recorded {
		j.log.Debug().Str("value", result.Value.String()).Msg("Snapshot recorded")
	}

	return nil
}
