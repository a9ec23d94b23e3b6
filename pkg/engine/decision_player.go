package engine

// playerDecisionChildren enumerates the player-controlled side's legal
// choices at an Evaluating event: one branch per distinct item held
// (subject to the prune rules below) plus ShootSelf/ShootOther, each
// branch a decision child at probability 1.0.
func playerDecisionChildren(s State) []State {
	return playerDecisionChildrenProbing(s, false)
}

// playerDecisionChildrenProbing is the real enumeration. probing is true
// only when called from adrenalinHasTarget or resolveAdrenalin to list the
// item branches a hypothetical hand yields; in that mode Adrenalin is never itself
// offered, which breaks what would otherwise be unbounded mutual recursion
// between two sides each holding an Adrenalin.
func playerDecisionChildrenProbing(s State, probing bool) []State {
	acting := s.active()
	opponent := s.other()
	known := s.chamberedKnownTo(s.NextEvent.IsPlayerTurn)
	lastRound := s.Shotgun.Magazine.Remaining() == 1

	var children []State
	add := func(action ActionKind, item Item) {
		next := s
		next.Probability = 1
		next.NextEvent = Event{IsPlayerTurn: s.NextEvent.IsPlayerTurn, Action: action, Item: item}
		children = append(children, next)
	}

	acting.Items.Distinct(func(item Item) {
		switch item {
		case ItemGlass:
			if known != RoundUnknown {
				return
			}
		case ItemSaw:
			if opponent.Lives <= 1 || s.Shotgun.SawedOff {
				return
			}
		case ItemHandcuffs:
			if !s.Handcuffs.AllowedToAdd() || lastRound {
				return
			}
		case ItemPhone, ItemBeer:
			if lastRound {
				return
			}
		case ItemInverter:
			if s.InverterUsed {
				return
			}
		case ItemAdrenalin:
			if probing || !adrenalinHasTarget(s) {
				return
			}
		}
		add(ActionUseItem, item)
	})

	// Sawed-off doubles the damage of a live shot, so a shoot-self is
	// pruned whenever it's fitted, independent of knowledge; it is also
	// pruned whenever the round is known live and the shot would be
	// fatal outright.
	pruneShootSelf := s.Shotgun.SawedOff || (known == RoundLive && acting.Lives == 1)
	if !pruneShootSelf {
		add(ActionShootSelf, ItemNone)
	}
	add(ActionShootOther, ItemNone)

	return children
}

// adrenalinHasTarget reports whether stealing and using one of the
// opponent's items would yield at least one legal choice.
func adrenalinHasTarget(s State) bool {
	opponent := s.other()
	if opponent.Items.Total() == 0 {
		return false
	}
	hypothetical := s.withActive(Participant{Lives: s.active().Lives, Items: opponent.Items})

	var filterChildren []State
	if s.NextEvent.IsPlayerTurn {
		filterChildren = playerDecisionChildrenProbing(hypothetical, true)
	} else {
		filterChildren = dealerDecisionChildrenProbing(hypothetical, true)
	}
	for _, c := range filterChildren {
		if c.NextEvent.Action == ActionUseItem {
			return true
		}
	}
	return false
}
