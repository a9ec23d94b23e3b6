package engine

// resolveItem dispatches a UseItem action to its specific resolution. Every
// item is first removed from the acting side's hand; failure to hold it is
// an invariant violation, since the decision filters never offer an item
// that isn't held.
func (sm *StateMachine) resolveItem(s State, item Item) ([]State, error) {
	isPlayerSide := s.NextEvent.IsPlayerTurn
	actor, err := s.active().RemoveItem(item)
	if err != nil {
		return nil, &InvariantViolationError{Reason: "use-item event names an item the actor does not hold: " + err.Error()}
	}
	s = s.withActive(actor)

	switch item {
	case ItemCigarette:
		return sm.resolveCigarette(s)
	case ItemGlass:
		return sm.resolveGlass(s, isPlayerSide)
	case ItemSaw:
		return sm.resolveSaw(s)
	case ItemHandcuffs:
		return sm.resolveHandcuffs(s)
	case ItemPhone:
		return sm.resolvePhone(s, isPlayerSide)
	case ItemBeer:
		return sm.resolveBeer(s, isPlayerSide)
	case ItemPills:
		return sm.resolvePills(s)
	case ItemInverter:
		return sm.resolveInverter(s)
	case ItemAdrenalin:
		return sm.resolveAdrenalin(s, isPlayerSide)
	default:
		return nil, &InvariantViolationError{Reason: "use-item event names an unrecognized item"}
	}
}

func deterministic(s State, next Event) []State {
	s.Probability = 1
	s.NextEvent = next
	return []State{s}
}

func evaluating(isPlayerTurn bool) Event {
	return Event{IsPlayerTurn: isPlayerTurn, Action: ActionEvaluating}
}

func (sm *StateMachine) resolveCigarette(s State) ([]State, error) {
	s = s.withActive(s.active().GainLives(1, s.MaxLives))
	return deterministic(s, evaluating(s.NextEvent.IsPlayerTurn)), nil
}

func (sm *StateMachine) resolveSaw(s State) ([]State, error) {
	shotgun, err := s.Shotgun.Saw()
	if err != nil {
		return nil, err
	}
	s.Shotgun = shotgun
	return deterministic(s, evaluating(s.NextEvent.IsPlayerTurn)), nil
}

func (sm *StateMachine) resolveHandcuffs(s State) ([]State, error) {
	h, err := s.Handcuffs.Add()
	if err != nil {
		return nil, err
	}
	s.Handcuffs = h
	return deterministic(s, evaluating(s.NextEvent.IsPlayerTurn)), nil
}

func (sm *StateMachine) resolveInverter(s State) ([]State, error) {
	s.InverterUsed = true
	return deterministic(s, evaluating(s.NextEvent.IsPlayerTurn)), nil
}

func (sm *StateMachine) resolveGlass(s State, isPlayerSide bool) ([]State, error) {
	pBlank := s.Shotgun.Magazine.ProbabilityBlank()
	children := make([]State, 0, 2)
	add := func(drawn RoundState, probability float64) {
		if probability <= 0 {
			return
		}
		next := s
		next.Probability = probability
		effective := drawn
		if s.InverterUsed {
			effective = drawn.Flip()
		}
		next.Shotgun.Magazine = next.Shotgun.Magazine.setChamberedColour(effective)
		next.Shotgun.Magazine = next.Shotgun.Magazine.revealChambered(isPlayerSide, !isPlayerSide)
		next.InverterUsed = false
		next.NextEvent = evaluating(s.NextEvent.IsPlayerTurn)
		children = append(children, next)
	}
	add(RoundBlank, pBlank)
	add(RoundLive, 1-pBlank)
	if err := assertProbabilityMass(children); err != nil {
		return nil, err
	}
	return children, nil
}

func (sm *StateMachine) resolveBeer(s State, isPlayerSide bool) ([]State, error) {
	pBlank := s.Shotgun.Magazine.ProbabilityBlank()
	children := make([]State, 0, 2)
	add := func(drawn RoundState, probability float64) error {
		if probability <= 0 {
			return nil
		}
		next := s
		next.Probability = probability
		effective := drawn
		if s.InverterUsed {
			effective = drawn.Flip()
		}
		next.Shotgun.Magazine = next.Shotgun.Magazine.setChamberedColour(effective)
		shotgun, err := next.Shotgun.consumeChambered()
		if err != nil {
			return err
		}
		next.Shotgun = shotgun
		next.InverterUsed = false
		next.NextEvent = evaluating(s.NextEvent.IsPlayerTurn)
		children = append(children, next)
		return nil
	}
	if err := add(RoundBlank, pBlank); err != nil {
		return nil, err
	}
	if err := add(RoundLive, 1-pBlank); err != nil {
		return nil, err
	}
	if err := assertProbabilityMass(children); err != nil {
		return nil, err
	}
	return children, nil
}

func (sm *StateMachine) resolvePills(s State) ([]State, error) {
	lose := s
	lose.Probability = 0.5
	lose.NextEvent = evaluating(s.NextEvent.IsPlayerTurn)
	lose = lose.withActive(lose.active().LoseLife())

	gain := s
	gain.Probability = 0.5
	gain.NextEvent = evaluating(s.NextEvent.IsPlayerTurn)
	gain = gain.withActive(gain.active().GainLives(2, s.MaxLives))

	return []State{lose, gain}, nil
}

// resolvePhone enumerates, for each non-chambered remaining slot, a chance
// branch per possible colour weighted by a uniform choice of slot times
// that slot's own colour probability. A magazine with only the chambered
// round left makes the phone a no-op.
func (sm *StateMachine) resolvePhone(s State, isPlayerSide bool) ([]State, error) {
	remaining := s.Shotgun.Magazine.Remaining()
	if remaining <= 1 {
		return deterministic(s, evaluating(s.NextEvent.IsPlayerTurn)), nil
	}

	choices := remaining - 1
	children := make([]State, 0, 2*choices)
	for slot := 1; slot < remaining; slot++ {
		known := s.Shotgun.Magazine.KnownColourTo(slot, isPlayerSide)
		colourProb := map[RoundState]float64{RoundBlank: 0, RoundLive: 0}
		switch known {
		case RoundBlank:
			colourProb[RoundBlank] = 1
		case RoundLive:
			colourProb[RoundLive] = 1
		default:
			total := int(s.Shotgun.Magazine.UnknownLive) + int(s.Shotgun.Magazine.UnknownBlank)
			if total > 0 {
				colourProb[RoundBlank] = float64(s.Shotgun.Magazine.UnknownBlank) / float64(total)
				colourProb[RoundLive] = float64(s.Shotgun.Magazine.UnknownLive) / float64(total)
			}
		}
		for _, colour := range [...]RoundState{RoundBlank, RoundLive} {
			p := colourProb[colour] / float64(choices)
			if p <= 0 {
				continue
			}
			next := s
			next.Probability = p
			next.Shotgun.Magazine = setSlotColour(next.Shotgun.Magazine, slot, colour)
			if isPlayerSide {
				next.Shotgun.Magazine = next.Shotgun.Magazine.revealAt(slot, true, false)
			} else {
				next.Shotgun.Magazine = next.Shotgun.Magazine.revealAt(slot, false, true)
				next.Shotgun.Magazine = next.Shotgun.Magazine.markPossibleDealerKnowledge(slot)
			}
			next.NextEvent = evaluating(s.NextEvent.IsPlayerTurn)
			children = append(children, next)
		}
	}
	if err := assertProbabilityMass(children); err != nil {
		return nil, err
	}
	return children, nil
}

// resolveAdrenalin produces one decision branch per distinct item the
// opponent holds that would itself be a legal UseItem choice for the
// active side (borrowing the ordinary decision filter, with the active
// side's hand swapped for the opponent's, to honour the same per-item
// prune rules; shooting branches never arise because only UseItem results
// are kept). Each branch commits to stealing and using that one item: it
// leaves the opponent's hand now and is handed to the active side just
// long enough for the ordinary item resolution, invoked on the next search
// step, to consume it.
func (sm *StateMachine) resolveAdrenalin(s State, isPlayerSide bool) ([]State, error) {
	opponent := s.other()

	hypothetical := s.withActive(Participant{Lives: s.active().Lives, Items: opponent.Items})
	var filterChildren []State
	if s.NextEvent.IsPlayerTurn {
		filterChildren = playerDecisionChildrenProbing(hypothetical, true)
	} else {
		filterChildren = dealerDecisionChildrenProbing(hypothetical, true)
	}

	seen := map[Item]bool{}
	var children []State
	for _, fc := range filterChildren {
		if fc.NextEvent.Action != ActionUseItem || fc.NextEvent.Item == ItemAdrenalin {
			continue
		}
		item := fc.NextEvent.Item
		if seen[item] {
			continue
		}
		seen[item] = true

		strippedOpponent, err := opponent.RemoveItem(item)
		if err != nil {
			continue
		}
		next := s.withOther(strippedOpponent)
		next = next.withActive(next.active().AddItem(item))
		next.Probability = 1
		next.NextEvent = Event{IsPlayerTurn: s.NextEvent.IsPlayerTurn, Action: ActionUseItem, Item: item}
		children = append(children, next)
	}

	if len(children) == 0 {
		return nil, &InvariantViolationError{Reason: "adrenalin offered with no usable opponent item"}
	}
	return children, nil
}

// setSlotColour sets the true colour of an arbitrary slot, used by the
// phone resolution which addresses slots other than the chambered one.
func setSlotColour(m Magazine, index int, colour RoundState) Magazine {
	old := m.Slots[index].TrueState
	if old == colour {
		return m
	}
	m.Slots[index].TrueState = colour
	switch old {
	case RoundLive:
		m.TotalLive--
	case RoundBlank:
		m.TotalBlank--
	}
	switch colour {
	case RoundLive:
		m.TotalLive++
	case RoundBlank:
		m.TotalBlank++
	}
	return m
}
