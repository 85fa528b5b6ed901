package services

import (
	"database/sql"
	"log"
	"time"
)

// StartAlertScheduler runs one alert sweep immediately and then once per day
// shortly after midnight. It returns after spawning the background loop.
func StartAlertScheduler(db *sql.DB) {
	go func() {
		if n, err := SweepAlerts(db, time.Now().UTC()); err != nil {
			log.Printf("Initial alert sweep failed: %v", err)
		} else {
			log.Printf("Initial alert sweep created %d notifications", n)
		}

		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, now.Location()).AddDate(0, 0, 1)
			log.Printf("Next alert sweep scheduled for %s", next.Format(time.RFC3339))
			time.Sleep(next.Sub(now))

			if n, err := SweepAlerts(db, time.Now().UTC()); err != nil {
				log.Printf("Scheduled alert sweep failed: %v", err)
			} else {
				log.Printf("Scheduled alert sweep created %d notifications", n)
			}
		}
	}()
}
