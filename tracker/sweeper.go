package tracker

import (
	"afk-sentinel/contract"
	"afk-sentinel/domain"
	"afk-sentinel/observability"
	"log/slog"
	"time"
)

type SweepReport struct {
	ExpiredSuspensions int
	PrunedWindows      int
	RemovedWindows     int
}

// Sweeper garbage-collects time-bound records: expired suspensions and stale
// rate windows. Away records and pending relocations are bounded by the number
// of participants and are left alone.
type Sweeper struct {
	log         *slog.Logger
	windows     contract.Store[domain.RateWindow]
	suspensions contract.Store[domain.SuspensionRecord]
	monitoring  *observability.MonitoringManager
	windowWidth time.Duration
}

func NewSweeper(log *slog.Logger, windows contract.Store[domain.RateWindow],
	suspensions contract.Store[domain.SuspensionRecord],
	monitoring *observability.MonitoringManager, windowWidth time.Duration) *Sweeper {
	return &Sweeper{
		log:         log,
		windows:     windows,
		suspensions: suspensions,
		monitoring:  monitoring,
		windowWidth: windowWidth,
	}
}

// SweepAt removes everything that has expired as of now.
func (s *Sweeper) SweepAt(now time.Time) SweepReport {
	var report SweepReport

	var expired []domain.ParticipantID
	err := s.suspensions.Range(func(id domain.ParticipantID, record domain.SuspensionRecord) bool {
		if record.Expired(now) {
			expired = append(expired, id)
		}
		return true
	})
	if err != nil {
		s.log.Error("Could not scan suspensions", "error", err)
		s.monitoring.Incr(observability.StoreFailures)
	}
	for _, id := range expired {
		if err := s.suspensions.Delete(id); err != nil {
			s.log.Error("Could not delete expired suspension", "participant", id, "error", err)
			s.monitoring.Incr(observability.StoreFailures)
			continue
		}
		report.ExpiredSuspensions++
	}

	pruned := make(map[domain.ParticipantID]domain.RateWindow)
	var empty []domain.ParticipantID
	err = s.windows.Range(func(id domain.ParticipantID, window domain.RateWindow) bool {
		before := window.Len()
		window.Prune(now, s.windowWidth)
		switch {
		case window.Len() == 0:
			empty = append(empty, id)
		case window.Len() != before:
			pruned[id] = window
		}
		return true
	})
	if err != nil {
		s.log.Error("Could not scan rate windows", "error", err)
		s.monitoring.Incr(observability.StoreFailures)
	}
	for id, window := range pruned {
		if err := s.windows.Set(id, window); err != nil {
			s.log.Error("Could not save pruned rate window", "participant", id, "error", err)
			s.monitoring.Incr(observability.StoreFailures)
			continue
		}
		report.PrunedWindows++
	}
	for _, id := range empty {
		if err := s.windows.Delete(id); err != nil {
			s.log.Error("Could not delete empty rate window", "participant", id, "error", err)
			s.monitoring.Incr(observability.StoreFailures)
			continue
		}
		report.RemovedWindows++
	}

	s.monitoring.Add(observability.SweptSuspensions, uint64(report.ExpiredSuspensions))
	s.monitoring.Add(observability.SweptWindows, uint64(report.RemovedWindows))
	if report != (SweepReport{}) {
		s.log.Debug("Sweep done", "expired_suspensions", report.ExpiredSuspensions,
			"pruned_windows", report.PrunedWindows, "removed_windows", report.RemovedWindows)
	}
	return report
}
