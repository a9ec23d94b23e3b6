package engine

// RoundState is the ground truth of one shotgun round.
type RoundState uint8

const (
	RoundUnknown RoundState = iota
	RoundBlank
	RoundLive
)

// Flip returns the opposite colour, leaving Unknown unchanged. It is used
// by the inverter's one-shot semantic swap.
func (r RoundState) Flip() RoundState {
	switch r {
	case RoundBlank:
		return RoundLive
	case RoundLive:
		return RoundBlank
	default:
		return r
	}
}

// RoundSlot is one chamber of the magazine: its true state plus what each
// side knows about it. PossiblyDealerKnows is excluded from equality (and
// therefore from transposition identity), mirroring the reference engine's
// own RoundKnowledge::operator==, even though the dealer's decision filter
// reads it for the chambered round; states that differ only in this flag
// share a transposition key.
type RoundSlot struct {
	TrueState           RoundState
	PlayerKnows         bool
	DealerKnows         bool
	PossiblyDealerKnows bool
}

// roundSlotKey is the subset of a RoundSlot that participates in state
// equality and hashing.
type roundSlotKey struct {
	TrueState   RoundState
	PlayerKnows bool
	DealerKnows bool
}

func (r RoundSlot) key() roundSlotKey {
	return roundSlotKey{TrueState: r.TrueState, PlayerKnows: r.PlayerKnows, DealerKnows: r.DealerKnows}
}

// KnownTo reports what side effectively knows about this slot, honouring
// the one-shot inverter flip: when inverted is true the reported colour
// (when known) is the flip of TrueState.
func (r RoundSlot) KnownTo(isPlayer, inverted bool) RoundState {
	knows := r.PlayerKnows
	if !isPlayer {
		knows = r.DealerKnows
	}
	if !knows {
		return RoundUnknown
	}
	if inverted {
		return r.TrueState.Flip()
	}
	return r.TrueState
}
