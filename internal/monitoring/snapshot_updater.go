package monitoring

import (
	"fmt"
	"time"

	"github.com/campusboard/coursefeed-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SnapshotUpdater captures dashboard summary snapshots on a cron schedule,
// stores them and pushes them to connected dashboard clients.
type SnapshotUpdater struct {
	dashboardSvc services.DashboardServiceProvider
	eventSvc     services.EventServiceProvider
	hub          services.Broadcaster
	schedule     cron.Schedule
	done         chan bool
}

// NewSnapshotUpdater creates a snapshot updater. The spec is a standard cron
// expression (e.g. "@hourly" or "0 4 * * *").
func NewSnapshotUpdater(dashboardSvc services.DashboardServiceProvider, eventSvc services.EventServiceProvider, hub services.Broadcaster, spec string) (*SnapshotUpdater, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot cron expression %q: %w", spec, err)
	}
	return &SnapshotUpdater{
		dashboardSvc: dashboardSvc,
		eventSvc:     eventSvc,
		hub:          hub,
		schedule:     schedule,
		done:         make(chan bool),
	}, nil
}

// Run starts the capture loop. It blocks until Stop is called.
func (su *SnapshotUpdater) Run() {
	log.Info().Msg("Starting dashboard snapshot updater...")

	// Capture once immediately on start so a fresh deployment has data.
	su.capture()

	for {
		next := su.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-su.done:
			timer.Stop()
			log.Info().Msg("Stopping dashboard snapshot updater.")
			return
		case <-timer.C:
			su.capture()
		}
	}
}

// Stop halts the capture loop.
func (su *SnapshotUpdater) Stop() {
	su.done <- true
}

// capture computes the current summary, persists it and broadcasts it.
func (su *SnapshotUpdater) capture() {
	summary, err := su.dashboardSvc.Summary()
	if err != nil {
		log.Error().Err(err).Msg("SnapshotUpdater: Failed to compute dashboard summary")
		return
	}

	snapshot, err := su.dashboardSvc.SaveSnapshot(summary)
	if err != nil {
		log.Error().Err(err).Msg("SnapshotUpdater: Failed to store snapshot")
		return
	}

	if su.eventSvc != nil {
		msg := fmt.Sprintf("Dashboard snapshot captured (%d courses, %d feedback, %d users).",
			summary.CoursesCount, summary.FeedbackCount, summary.UsersCount)
		su.eventSvc.CreateEvent("dashboard.snapshot", "info", msg, nil)
	}
	if su.hub != nil {
		su.hub.BroadcastMessage("dashboard.snapshot", snapshot)
	}
}
