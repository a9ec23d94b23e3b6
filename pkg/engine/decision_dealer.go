package engine

// dealerDecisionChildren enumerates the dealer-controlled side's legal
// choices at an Evaluating event, following the dealer's tighter,
// more-informed heuristic filter (see dealerDecisionChildrenProbing).
func dealerDecisionChildren(s State) []State {
	return dealerDecisionChildrenProbing(s, false)
}

// dealerDecisionChildrenProbing mirrors playerDecisionChildrenProbing; see
// its doc comment for the probing flag's role.
func dealerDecisionChildrenProbing(s State, probing bool) []State {
	acting := s.active()
	opponent := s.other()
	known := s.chamberedKnownTo(s.NextEvent.IsPlayerTurn)
	lastRound := s.Shotgun.Magazine.Remaining() == 1
	mayKnow := dealerMayKnowRound(s)

	var children []State
	add := func(action ActionKind, item Item) {
		next := s
		next.Probability = 1
		next.NextEvent = Event{IsPlayerTurn: s.NextEvent.IsPlayerTurn, Action: action, Item: item}
		children = append(children, next)
	}

	// Sawed-off rules out shooting self outright, independent of what the
	// dealer knows about the chambered round.
	allowShootSelf := !s.Shotgun.SawedOff && known != RoundLive
	allowShootOther := known != RoundBlank
	sawSelected := false

	if !mayKnow {
		// Without any knowledge at all, the dealer's coin flip is
		// biased by the remaining composition: cornered into the
		// colour more likely to be loaded, it strongly prefers the
		// safer of the two actions rather than flipping a fair coin.
		switch {
		case s.Shotgun.Magazine.UnknownBlank > s.Shotgun.Magazine.UnknownLive:
			allowShootOther = false
		case s.Shotgun.Magazine.UnknownLive > s.Shotgun.Magazine.UnknownBlank:
			allowShootSelf = false
		}
	}

	acting.Items.Distinct(func(item Item) {
		switch item {
		case ItemGlass:
			if known != RoundUnknown {
				return
			}
		case ItemCigarette:
			if acting.Lives >= s.MaxLives {
				return
			}
		case ItemPills:
			if acting.Lives >= s.MaxLives || acting.Items.Count(ItemCigarette) > 0 || acting.Lives == 1 {
				return
			}
		case ItemBeer:
			if !(known == RoundLive || lastRound) {
				return
			}
		case ItemHandcuffs:
			if !s.Handcuffs.AllowedToAdd() || lastRound {
				return
			}
		case ItemSaw:
			if sawSelected || s.Shotgun.SawedOff || !allowShootOther {
				return
			}
			sawSelected = true
		case ItemPhone:
			if s.Shotgun.Magazine.Remaining() <= 2 {
				return
			}
		case ItemInverter:
			// Only worth it on a round already known blank (flip it live
			// before shooting) or one merely possibly known — a round
			// already known live is never a sensible invert target.
			possiblyKnown := s.Shotgun.Magazine.Slots[0].PossiblyDealerKnows
			if s.InverterUsed || !(known == RoundBlank || possiblyKnown) {
				return
			}
		case ItemAdrenalin:
			if probing || !adrenalinHasTarget(s) {
				return
			}
		}
		add(ActionUseItem, item)
	})

	if sawSelected || mayKnow || len(children) == 0 {
		if allowShootSelf {
			add(ActionShootSelf, ItemNone)
		}
		// Selecting Saw already commits the dealer toward shooting other
		// next; offering the plain ShootOther alongside it would just be
		// a duplicate of the same intent without the saw.
		if allowShootOther && !sawSelected {
			add(ActionShootOther, ItemNone)
		}
	}

	if len(children) == 0 {
		// Every prune rule fired; fall back to the always-legal
		// shoot-other so a decision state never returns empty.
		add(ActionShootOther, ItemNone)
	}

	return children
}

// dealerMayKnowRound reports whether the dealer either knows the chambered
// round for certain or could plausibly have deduced it, honouring the
// inverter's flip the same way chamberedKnownTo does.
func dealerMayKnowRound(s State) bool {
	if s.chamberedKnownTo(false) != RoundUnknown {
		return true
	}
	return s.Shotgun.Magazine.Slots[0].PossiblyDealerKnows
}
