package email

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/retain-hq/retain/internal/infrastructure/persistence/models"
	"github.com/retain-hq/retain/internal/shared/logger"
	"github.com/retain-hq/retain/internal/shared/tenantctx"
)

// Queue statuses for outbound email rows.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// QueuedEmail is one outbound message written by a save-flow send_email step.
type QueuedEmail struct {
	To       string
	Subject  string
	BodyHTML string
	Template string
}

// Queue is the outbox: save-flow steps enqueue, the worker drains.
type Queue struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewQueue(gormDB *gorm.DB, logger logger.Interface) *Queue {
	return &Queue{db: gormDB, logger: logger}
}

func (q *Queue) Enqueue(ctx context.Context, email QueuedEmail) error {
	tenantID, ok := tenantctx.FromContext(ctx)
	if !ok {
		return fmt.Errorf("no tenant in context")
	}

	model := models.EmailQueueModel{
		TenantID:  tenantID,
		ToAddress: email.To,
		Subject:   email.Subject,
		BodyHTML:  email.BodyHTML,
		Template:  email.Template,
		Status:    StatusPending,
	}
	if err := q.db.WithContext(ctx).Create(&model).Error; err != nil {
		q.logger.Errorw("failed to enqueue email", "to", email.To, "error", err)
		return fmt.Errorf("failed to enqueue email: %w", err)
	}

	q.logger.Debugw("email enqueued", "id", model.ID, "to", email.To, "template", email.Template)
	return nil
}

// DrainPending sends up to limit pending emails across all tenants and marks
// each row sent or failed. Delivery failures never abort the batch.
func (q *Queue) DrainPending(ctx context.Context, sender *Sender, limit int) (sent, failed int, err error) {
	var rows []models.EmailQueueModel
	if err := q.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to load pending emails: %w", err)
	}

	for i := range rows {
		row := &rows[i]
		sendErr := sender.Send(row.ToAddress, row.Subject, row.BodyHTML)

		updates := map[string]interface{}{"updated_at": time.Now().UTC()}
		if sendErr != nil {
			failed++
			msg := sendErr.Error()
			updates["status"] = StatusFailed
			updates["last_error"] = msg
			q.logger.Warnw("email delivery failed", "id", row.ID, "to", row.ToAddress, "error", sendErr)
		} else {
			sent++
			now := time.Now().UTC()
			updates["status"] = StatusSent
			updates["sent_at"] = now
		}

		if dbErr := q.db.WithContext(ctx).
			Model(&models.EmailQueueModel{}).
			Where("id = ?", row.ID).
			Updates(updates).Error; dbErr != nil {
			q.logger.Errorw("failed to update email queue row", "id", row.ID, "error", dbErr)
		}
	}

	return sent, failed, nil
}
