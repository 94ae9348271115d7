package jobs

import (
	"context"
	"time"

	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/repository"
	"go.uber.org/zap"
)

// PendingRequestsJob logs how many client requests are still awaiting an
// admin decision, so a quiet queue doesn't go unnoticed.
type PendingRequestsJob struct {
	clientRepo *repository.ClientRepository
	logger     *zap.Logger
}

func NewPendingRequestsJob(clientRepo *repository.ClientRepository, logger *zap.Logger) *PendingRequestsJob {
	return &PendingRequestsJob{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Run counts pending client requests and logs the result
func (j *PendingRequestsJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := j.clientRepo.CountByStatus(ctx, domain.ClientStatusPending)
	if err != nil {
		j.logger.Error("failed to count pending client requests", zap.Error(err))
		return
	}

	if count == 0 {
		j.logger.Info("no client requests awaiting decision")
		return
	}

	j.logger.Warn("client requests awaiting admin decision",
		zap.Int("pending_count", count))
}

// Register schedules the job for a daily morning run
func (j *PendingRequestsJob) Register(scheduler *Scheduler) error {
	return scheduler.AddJob("pending-client-requests", "0 7 * * *", j.Run)
}
