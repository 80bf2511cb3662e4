package usecases

import (
	"context"
	"fmt"

	"github.com/retain-hq/retain/internal/application/saveflow/dto"
	"github.com/retain-hq/retain/internal/domain/saveflow"
	"github.com/retain-hq/retain/internal/domain/subscription"
	"github.com/retain-hq/retain/internal/infrastructure/email"
	"github.com/retain-hq/retain/internal/shared/errors"
	"github.com/retain-hq/retain/internal/shared/logger"
)

type TriggerFlowCommand struct {
	SubscriptionSID string
	Event           string
}

// TriggerFlowResult carries everything the cancellation UI needs to run the
// flow: the flow's steps and offers plus the attempt to complete later.
type TriggerFlowResult struct {
	Flow    *dto.FlowDTO    `json:"flow"`
	Attempt *dto.AttemptDTO `json:"attempt"`
}

// TriggerFlowUseCase selects and starts a save flow when a customer begins
// cancelling. Selection is deterministic: highest priority enabled flow whose
// trigger event matches, ties broken by most recent creation.
type TriggerFlowUseCase struct {
	flowRepo         saveflow.Repository
	attemptRepo      saveflow.AttemptRepository
	subscriptionRepo subscription.Repository
	activityRepo     subscription.ActivityRepository
	emailQueue       *email.Queue
	renderer         *email.Renderer
	logger           logger.Interface
}

func NewTriggerFlowUseCase(
	flowRepo saveflow.Repository,
	attemptRepo saveflow.AttemptRepository,
	subscriptionRepo subscription.Repository,
	activityRepo subscription.ActivityRepository,
	emailQueue *email.Queue,
	renderer *email.Renderer,
	logger logger.Interface,
) *TriggerFlowUseCase {
	return &TriggerFlowUseCase{
		flowRepo:         flowRepo,
		attemptRepo:      attemptRepo,
		subscriptionRepo: subscriptionRepo,
		activityRepo:     activityRepo,
		emailQueue:       emailQueue,
		renderer:         renderer,
		logger:           logger,
	}
}

func (uc *TriggerFlowUseCase) Execute(ctx context.Context, cmd TriggerFlowCommand) (*TriggerFlowResult, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	flow, err := uc.selectFlow(ctx, cmd.Event)
	if err != nil {
		return nil, err
	}
	if flow == nil {
		return nil, errors.NewNotFoundError("no save flow configured for this event")
	}

	attempt, err := saveflow.NewAttempt(sub.TenantID(), flow.ID(), sub.ID())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.attemptRepo.Create(ctx, attempt); err != nil {
		uc.logger.Errorw("failed to create save attempt", "error", err, "flow_sid", flow.SID())
		return nil, fmt.Errorf("failed to create save attempt: %w", err)
	}

	if err := uc.flowRepo.IncrementTriggered(ctx, flow.ID()); err != nil {
		// The attempt row is the source of truth; a lost counter bump only
		// skews the denormalized stats.
		uc.logger.Warnw("failed to increment triggered counter", "error", err, "flow_sid", flow.SID())
	}

	recordActivity(ctx, uc.activityRepo, uc.logger, sub.TenantID(), sub.ID(),
		subscription.ActivityTypeSaveFlowEntered,
		fmt.Sprintf("entered save flow %q", flow.Name()),
		subscription.ActorCustomer,
		map[string]interface{}{"flow_sid": flow.SID(), "attempt_sid": attempt.SID()})

	uc.enqueueEmailSteps(ctx, flow, sub)

	uc.logger.Infow("save flow triggered",
		"flow_sid", flow.SID(),
		"attempt_sid", attempt.SID(),
		"subscription_sid", sub.SID())

	return &TriggerFlowResult{
		Flow:    dto.ToFlowDTO(flow),
		Attempt: dto.ToAttemptDTO(attempt),
	}, nil
}

// selectFlow returns the first enabled flow matching the event. Flows with an
// empty trigger event match any event.
func (uc *TriggerFlowUseCase) selectFlow(ctx context.Context, event string) (*saveflow.SaveFlow, error) {
	flows, err := uc.flowRepo.ListEnabledByPriority(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list enabled save flows", "error", err)
		return nil, fmt.Errorf("failed to list save flows: %w", err)
	}

	for _, flow := range flows {
		trigger := flow.Trigger()
		if trigger.Event == "" || trigger.Event == event {
			return flow, nil
		}
	}
	return nil, nil
}

// enqueueEmailSteps writes one outbox row per send_email step. Rendering or
// enqueue failures degrade to a log line so the flow itself still runs.
func (uc *TriggerFlowUseCase) enqueueEmailSteps(ctx context.Context, flow *saveflow.SaveFlow, sub *subscription.Subscription) {
	if uc.emailQueue == nil || sub.CustomerEmail() == "" {
		return
	}

	vars := map[string]string{
		"customer_name": sub.CustomerName(),
		"product_id":    sub.ProductID(),
		"price":         uc.renderer.FormatCents(sub.PriceCents(), sub.Currency()),
	}

	for _, step := range flow.Steps() {
		if step.Type != saveflow.StepSendEmail || step.SendEmail == nil {
			continue
		}

		body, err := uc.renderer.Render(step.SendEmail.Template, vars)
		if err != nil {
			uc.logger.Errorw("failed to render save-flow email", "error", err, "flow_sid", flow.SID())
			continue
		}
		queued := email.QueuedEmail{
			To:       sub.CustomerEmail(),
			Subject:  step.SendEmail.Subject,
			BodyHTML: body,
			Template: step.SendEmail.Template,
		}
		if err := uc.emailQueue.Enqueue(ctx, queued); err != nil {
			uc.logger.Errorw("failed to enqueue save-flow email", "error", err, "flow_sid", flow.SID())
		}
	}
}
