// Package itemdrawer defines the boundary between the decision core and
// whatever stocks each participant's hand at the start of a round. No
// concrete implementation lives here; randomized pool generation is the
// driver's concern, not the core's.
package itemdrawer

import "github.com/six-chamber/roulette/pkg/engine"

// ItemDrawer assigns a fresh set of items to each participant, respecting
// whatever per-item multiplicity caps and health-aware pacing the concrete
// implementation chooses.
type ItemDrawer interface {
	// GetItems returns the newly drawn items for the player and dealer
	// given the configured max health and each side's currently held
	// items (so a concrete drawer can avoid over-stocking a near-full
	// hand).
	GetItems(maxHealth uint32, playerItems, dealerItems engine.ItemSet) (newPlayerItems, newDealerItems engine.ItemSet, err error)
}
