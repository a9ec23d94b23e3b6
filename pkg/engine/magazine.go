package engine

// MaxSlots is the largest magazine size the core supports; it backs the
// fixed-size array used for the magazine so that State remains a plain
// comparable struct.
const MaxSlots = 8

// Magazine is the ordered sequence of rounds still to be fired, index 0
// being next to the chamber. Unused trailing slots (index >= Count) are
// always the zero RoundSlot, which keeps Magazine directly comparable with
// == regardless of how many rounds remain.
type Magazine struct {
	Slots        [MaxSlots]RoundSlot
	Count        int
	TotalLive    uint8
	TotalBlank   uint8
	UnknownLive  uint8
	UnknownBlank uint8
}

// NewMagazine builds a magazine of the given rounds, all unknown to both
// sides, in the supplied order (index 0 first to fire).
func NewMagazine(rounds []RoundState) Magazine {
	var m Magazine
	m.Count = len(rounds)
	for i, r := range rounds {
		m.Slots[i] = RoundSlot{TrueState: r}
		switch r {
		case RoundLive:
			m.TotalLive++
			m.UnknownLive++
		case RoundBlank:
			m.TotalBlank++
			m.UnknownBlank++
		}
	}
	return m
}

// Remaining is the number of rounds left in the magazine.
func (m Magazine) Remaining() int {
	return m.Count
}

// Empty reports whether no rounds remain.
func (m Magazine) Empty() bool {
	return m.Count == 0
}

// Chambered returns the slot that will be fired next. On an empty magazine
// it returns the zero RoundSlot; the state machine never calls this on an
// empty magazine.
func (m Magazine) Chambered() RoundSlot {
	return m.Slots[0]
}

// ProbabilityBlank returns the probability that the chambered round is
// blank, honouring a fully-known colour (0 or 1) before falling back to the
// unknown-pool ratio.
func (m Magazine) ProbabilityBlank() float64 {
	return slotProbabilityBlank(m.Chambered(), m.UnknownLive, m.UnknownBlank)
}

func slotProbabilityBlank(slot RoundSlot, unknownLive, unknownBlank uint8) float64 {
	switch slot.TrueState {
	case RoundBlank:
		return 1
	case RoundLive:
		return 0
	}
	total := unknownLive + unknownBlank
	if total == 0 {
		return 0
	}
	return float64(unknownBlank) / float64(total)
}

// revealChambered marks the chambered slot's true colour as known to the
// given side (or both), decrementing the unknown pool the first time each
// side learns it.
func (m Magazine) revealChambered(toPlayer, toDealer bool) Magazine {
	return m.revealAt(0, toPlayer, toDealer)
}

func (m Magazine) revealAt(index int, toPlayer, toDealer bool) Magazine {
	slot := m.Slots[index]
	if toPlayer && !slot.PlayerKnows {
		slot.PlayerKnows = true
		m.decrementUnknown(slot.TrueState)
	}
	if toDealer && !slot.DealerKnows {
		slot.DealerKnows = true
		m.decrementUnknown(slot.TrueState)
	}
	m.Slots[index] = slot
	return m
}

func (m *Magazine) decrementUnknown(state RoundState) {
	switch state {
	case RoundLive:
		if m.UnknownLive > 0 {
			m.UnknownLive--
		}
	case RoundBlank:
		if m.UnknownBlank > 0 {
			m.UnknownBlank--
		}
	}
}

// markPossibleDealerKnowledge sets the possibly-known flag for a
// non-chambered slot, used by the phone item. The flag is left out of
// state identity but is read by the dealer's decision filter.
func (m Magazine) markPossibleDealerKnowledge(index int) Magazine {
	m.Slots[index].PossiblyDealerKnows = true
	return m
}

// consumeChambered removes the chambered round from the magazine, shifting
// the rest forward by one, and clears trailing state so the struct stays a
// canonical comparable value (no stale data beyond the new Count).
func (m Magazine) consumeChambered() (Magazine, error) {
	if m.Count == 0 {
		return m, &IllegalOperationError{Op: "consume chambered round", Reason: "magazine is empty"}
	}
	var out Magazine
	out.Count = m.Count - 1
	for i := 0; i < out.Count; i++ {
		out.Slots[i] = m.Slots[i+1]
	}
	out.TotalLive, out.TotalBlank = m.TotalLive, m.TotalBlank
	out.UnknownLive, out.UnknownBlank = m.UnknownLive, m.UnknownBlank
	switch m.Slots[0].TrueState {
	case RoundLive:
		out.TotalLive--
		if !m.Slots[0].PlayerKnows && !m.Slots[0].DealerKnows {
			out.UnknownLive--
		}
	case RoundBlank:
		out.TotalBlank--
		if !m.Slots[0].PlayerKnows && !m.Slots[0].DealerKnows {
			out.UnknownBlank--
		}
	}
	return out, nil
}

// setChamberedColour overrides the chambered slot's true colour, used when
// resolving a shot/glass/beer under an active inverter flip that must
// change what actually gets fired or ejected, not merely what is known.
func (m Magazine) setChamberedColour(state RoundState) Magazine {
	return setSlotColour(m, 0, state)
}

// KnownColourTo deduces what a side effectively knows about slot index,
// counting out the opposite colour among everything that side already
// knows when the flag itself is unset. isPlayer selects which side's
// knowledge flags are consulted.
func (m Magazine) KnownColourTo(index int, isPlayer bool) RoundState {
	slot := m.Slots[index]
	known := slot.PlayerKnows
	if !isPlayer {
		known = slot.DealerKnows
	}
	if known {
		return slot.TrueState
	}
	// Deduce by counting out: if every live round is already accounted
	// for among what this side knows, the rest must be blank, and vice
	// versa.
	var knownLive, knownBlank int
	for i := 0; i < m.Count; i++ {
		s := m.Slots[i]
		k := s.PlayerKnows
		if !isPlayer {
			k = s.DealerKnows
		}
		if !k {
			continue
		}
		switch s.TrueState {
		case RoundLive:
			knownLive++
		case RoundBlank:
			knownBlank++
		}
	}
	if int(m.TotalLive)-knownLive == 0 {
		return RoundBlank
	}
	if int(m.TotalBlank)-knownBlank == 0 {
		return RoundLive
	}
	return RoundUnknown
}
