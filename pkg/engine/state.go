package engine

import "hash/maphash"

// State is one node of the game tree: both participants, the shotgun, the
// handcuff lifecycle, the one-shot inverter flag, the pending event, and
// the probability of having arrived here from its parent.
type State struct {
	Probability  float64
	Player       Participant
	Dealer       Participant
	Shotgun      Shotgun
	Handcuffs    HandcuffState
	InverterUsed bool
	NextEvent    Event
	MaxLives     uint32
}

// magazineKey is the subset of a Magazine that participates in identity:
// PossiblyDealerKnows is intentionally excluded (see RoundSlot).
type magazineKey struct {
	Slots        [MaxSlots]roundSlotKey
	Count        int
	TotalLive    uint8
	TotalBlank   uint8
	UnknownLive  uint8
	UnknownBlank uint8
}

// StateKey is the equality/identity projection of a State. It is a plain
// comparable struct, so it can be used directly as a map key (the
// transposition cache's key type) without any hand-written hash or
// equality method. Probability and InverterUsed are excluded: the former
// is a transition weight, not state; the latter follows the reference
// engine's own equality operator. InverterUsed does change how the
// chambered round resolves until it is consumed, so two States that differ
// only in it share a key, and a transposition-cache entry, while the search
// can still reach different scores for them.
type StateKey struct {
	Player    Participant
	Dealer    Participant
	Magazine  magazineKey
	SawedOff  bool
	Handcuffs HandcuffState
	NextEvent Event
	MaxLives  uint32
}

// Key projects s onto its equality identity.
func (s State) Key() StateKey {
	var mk magazineKey
	for i := 0; i < MaxSlots; i++ {
		mk.Slots[i] = s.Shotgun.Magazine.Slots[i].key()
	}
	mk.Count = s.Shotgun.Magazine.Count
	mk.TotalLive = s.Shotgun.Magazine.TotalLive
	mk.TotalBlank = s.Shotgun.Magazine.TotalBlank
	mk.UnknownLive = s.Shotgun.Magazine.UnknownLive
	mk.UnknownBlank = s.Shotgun.Magazine.UnknownBlank

	return StateKey{
		Player:    s.Player,
		Dealer:    s.Dealer,
		Magazine:  mk,
		SawedOff:  s.Shotgun.SawedOff,
		Handcuffs: s.Handcuffs,
		NextEvent: s.NextEvent.equalKey(),
		MaxLives:  s.MaxLives,
	}
}

// Equal reports whether s and other are identical for transposition
// purposes, ignoring Probability and InverterUsed.
func (s State) Equal(other State) bool {
	return s.Key() == other.Key()
}

var hashSeed = maphash.MakeSeed()

// Hash returns an equality-consistent structural hash of s, suitable for
// log correlation and diagnostics. The transposition cache itself keys
// directly on StateKey rather than calling this, since Go map lookups on a
// comparable key are already as fast as a hash-then-compare and cannot
// suffer a collision-induced false hit.
func (s State) Hash() uint64 {
	return maphash.Comparable(hashSeed, s.Key())
}

// IsFinished reports whether the game has ended: either side out of lives,
// or the shotgun empty.
func (s State) IsFinished() bool {
	return s.Player.Dead() || s.Dealer.Dead() || s.Shotgun.Magazine.Empty()
}

// IsEvaluationPhase reports whether e represents a point where a fresh
// decision is about to be made, rather than a resolution in progress:
// either an explicit Evaluating event, or the use of one of the
// deterministic items whose effect applies immediately and hands control
// straight back to a fresh Evaluating event.
func IsEvaluationPhase(e Event) bool {
	if e.Action == ActionEvaluating {
		return true
	}
	if e.Action != ActionUseItem {
		return false
	}
	switch e.Item {
	case ItemCigarette, ItemSaw, ItemHandcuffs, ItemInverter, ItemAdrenalin:
		return true
	default:
		return false
	}
}

// MaxDepth bounds the number of plies remaining from s: twice the sum of
// both hands' item counts and the rounds left in the shotgun. It is used
// as the "deep" depth cap by the agent layer.
func (s State) MaxDepth() int {
	return 2 * (s.Player.Items.Total() + s.Dealer.Items.Total() + s.Shotgun.Magazine.Remaining())
}

// ProbabilityOfBlankRound returns the probability the chambered round is
// blank given everything currently known about the magazine, under the
// supplied inverter-use hypothesis. inverterUsed is taken as an explicit
// argument rather than read from s.InverterUsed so callers can ask "what
// if inverted" independently of the state's own flag — inverting flips
// the reported probability, the same swap Shoot/Glass/Beer resolution
// applies to the drawn colour.
func (s State) ProbabilityOfBlankRound(inverterUsed bool) float64 {
	p := s.Shotgun.Magazine.ProbabilityBlank()
	if inverterUsed {
		return 1 - p
	}
	return p
}

// active returns the participant whose turn it is; withActive returns a
// copy of s with that participant replaced.
func (s State) active() Participant {
	if s.NextEvent.IsPlayerTurn {
		return s.Player
	}
	return s.Dealer
}

func (s State) withActive(p Participant) State {
	if s.NextEvent.IsPlayerTurn {
		s.Player = p
	} else {
		s.Dealer = p
	}
	return s
}

// other returns the participant whose turn it is not.
func (s State) other() Participant {
	if s.NextEvent.IsPlayerTurn {
		return s.Dealer
	}
	return s.Player
}

func (s State) withOther(p Participant) State {
	if s.NextEvent.IsPlayerTurn {
		s.Dealer = p
	} else {
		s.Player = p
	}
	return s
}

// chamberedKnownTo resolves what the acting side effectively knows about
// the chambered round, honouring the inverter's one-shot flip.
func (s State) chamberedKnownTo(isPlayerSide bool) RoundState {
	known := s.Shotgun.Magazine.KnownColourTo(0, isPlayerSide)
	if s.InverterUsed {
		return known.Flip()
	}
	return known
}
