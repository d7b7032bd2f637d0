package scheduler

import (
	"context"

	"sales_portal_backend/internal/events"
	"sales_portal_backend/platform/logger"
)

// SubscribeConversionFollowUp queues account onboarding whenever a lead is
// converted.
func SubscribeConversionFollowUp(bus events.Bus, scheduler OnboardingScheduler, log *logger.Logger) {
	bus.Subscribe(events.LeadConverted{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		converted, ok := event.(events.LeadConverted)
		if !ok {
			return nil
		}

		err := scheduler.ScheduleAccountOnboarding(ctx, AccountOnboardingPayload{
			AccountID: converted.AccountID.String(),
			LeadID:    converted.LeadID.String(),
			Company:   converted.Company,
			Owner:     converted.Owner,
		})
		if err != nil {
			tasksTotal.WithLabelValues(TaskAccountOnboarding, resultEnqueueFailed).Inc()
			return err
		}

		tasksTotal.WithLabelValues(TaskAccountOnboarding, resultEnqueued).Inc()
		log.Info("account onboarding queued", "accountId", converted.AccountID, "leadId", converted.LeadID)
		return nil
	}))
}
