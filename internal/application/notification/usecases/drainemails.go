package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/infrastructure/email"
	"github.com/retain-hq/retain/internal/shared/logger"
)

// DefaultDrainBatchSize bounds one worker pass over the outbox.
const DefaultDrainBatchSize = 100

// DrainEmailsUseCase is the worker step that flushes the email outbox.
type DrainEmailsUseCase struct {
	queue     *email.Queue
	sender    *email.Sender
	batchSize int
	logger    logger.Interface
}

func NewDrainEmailsUseCase(queue *email.Queue, sender *email.Sender, batchSize int, logger logger.Interface) *DrainEmailsUseCase {
	if batchSize <= 0 {
		batchSize = DefaultDrainBatchSize
	}
	return &DrainEmailsUseCase{
		queue:     queue,
		sender:    sender,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Execute returns how many emails were delivered this pass.
func (uc *DrainEmailsUseCase) Execute(ctx context.Context) (int, error) {
	sent, failed, err := uc.queue.DrainPending(ctx, uc.sender, uc.batchSize)
	if err != nil {
		uc.logger.Errorw("failed to drain email queue", "error", err)
		return 0, fmt.Errorf("failed to drain email queue: %w", err)
	}
	if sent > 0 || failed > 0 {
		uc.logger.Infow("email queue drained", "sent", sent, "failed", failed)
	}
	return sent, nil
}
