package jobs

import (
	"context"
	"time"

	"github.com/temirovuz/library/internal/logger"
)

// AccruePenalties charges overdue penalties on active rentals past their due
// date. The service is idempotent per elapsed day, so re-running after a
// crash is safe.
func (jr *JobRunner) AccruePenalties() {
	jr.runWithRecovery("AccruePenalties", func(runID string) {
		log := logger.WithJob("AccruePenalties", runID)

		accrued, err := jr.services.Rental.AccruePenalties(context.Background())
		if err != nil {
			log.Error("Penalty accrual sweep failed", "error", err)
			return
		}
		log.Info("Penalty accrual sweep finished", "rentals_penalized", accrued)
	})
}

// ExpireStaleReservations cancels reservations not picked up within the
// grace window and restores their copies to the pool.
func (jr *JobRunner) ExpireStaleReservations() {
	jr.runWithRecovery("ExpireStaleReservations", func(runID string) {
		log := logger.WithJob("ExpireStaleReservations", runID)

		expired, err := jr.services.Rental.ExpireStaleReservations(context.Background())
		if err != nil {
			log.Error("Reservation expiry sweep failed", "error", err)
			return
		}
		log.Info("Reservation expiry sweep finished", "reservations_expired", expired)
	})
}

// SendOverdueReminders emails every user holding an overdue active rental.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func(runID string) {
		ctx := context.Background()
		log := logger.WithJob("SendOverdueReminders", runID)

		rows, err := jr.store.ListOverdueForReminder(ctx, time.Now().UTC())
		if err != nil {
			log.Error("Failed to query overdue rentals", "error", err)
			return
		}

		count := 0
		for _, row := range rows {
			err := jr.services.Email.SendOverdueReminder(ctx,
				row.Email, row.FullName, row.BookName,
				row.EndDate.Format("2006-01-02"), row.Penalty)
			if err != nil {
				log.Error("Failed to send overdue reminder",
					"rental_id", row.RentalID,
					"user_id", row.UserID,
					"error", err)
				continue
			}

			count++
			log.Debug("Sent overdue reminder",
				"rental_id", row.RentalID,
				"user_id", row.UserID)
		}

		log.Info("Overdue reminders sent", "count", count)
	})
}
