package session

import (
	"context"
	"log"
	"time"
)

// Sweeper prunes expired sessions on a fixed interval so the store does not
// grow without bound under long uptimes.
type Sweeper struct {
	store    *Store
	interval time.Duration
}

func NewSweeper(store *Store, interval time.Duration) *Sweeper {
	return &Sweeper{store: store, interval: interval}
}

func (sw *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	log.Println("Session sweeper started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sw.store.Sweep(); removed > 0 {
				log.Printf("Swept %d expired sessions", removed)
			}
		}
	}
}
