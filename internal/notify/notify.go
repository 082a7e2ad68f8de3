// Package notify is the boundary to the OS-level notification scheduler.
// The application only decides WHEN a daily reminder fires; delivery is the
// platform's job.
package notify

import (
	"context"
	"log/slog"
)

// Scheduler schedules or cancels the repeating daily reminder.
type Scheduler interface {
	ScheduleDaily(ctx context.Context, hour, minute int) error
	Cancel(ctx context.Context) error
}

// LogScheduler records scheduling decisions without talking to any OS
// facility. It is the shipped implementation on platforms without a
// notification daemon integration.
type LogScheduler struct{}

// ScheduleDaily logs the requested reminder time.
func (LogScheduler) ScheduleDaily(_ context.Context, hour, minute int) error {
	slog.Info("daily reminder scheduled", "hour", hour, "minute", minute)
	return nil
}

// Cancel logs the cancellation.
func (LogScheduler) Cancel(_ context.Context) error {
	slog.Info("daily reminder canceled")
	return nil
}
