package jobs

import (
	"log"

	"github.com/mindmesh/internship_enrollment/wizard"
)

// SweepSessions drops wizard sessions that went idle past the store TTL.
// Drafts are ephemeral; a swept session simply means the user has to start
// the funnel again.
func SweepSessions(store *wizard.Store) {
	removed := store.Sweep()
	if removed > 0 {
		log.Printf("Swept %d stale wizard session(s), %d remaining", removed, store.Len())
	}
}
