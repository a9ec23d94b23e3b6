package engine

// Participant is one side of the game: its remaining lives and item hand.
type Participant struct {
	Lives uint32
	Items ItemSet
}

// NewParticipant builds a participant with the given lives and items.
func NewParticipant(lives uint32, items ItemSet) Participant {
	return Participant{Lives: lives, Items: items}
}

// LoseLife subtracts one life, saturating at zero.
func (p Participant) LoseLife() Participant {
	if p.Lives > 0 {
		p.Lives--
	}
	return p
}

// LoseLives subtracts n lives, saturating at zero.
func (p Participant) LoseLives(n uint32) Participant {
	if n >= p.Lives {
		p.Lives = 0
	} else {
		p.Lives -= n
	}
	return p
}

// GainLives adds n lives, capped at maxLives.
func (p Participant) GainLives(n, maxLives uint32) Participant {
	p.Lives += n
	if p.Lives > maxLives {
		p.Lives = maxLives
	}
	return p
}

// Dead reports whether this participant is out of lives.
func (p Participant) Dead() bool {
	return p.Lives == 0
}

// RemoveItem returns a copy of p with one copy of item removed, or an error
// if none are held.
func (p Participant) RemoveItem(item Item) (Participant, error) {
	items, err := p.Items.Remove(item)
	if err != nil {
		return p, err
	}
	p.Items = items
	return p, nil
}

// AddItem returns a copy of p with one more copy of item.
func (p Participant) AddItem(item Item) Participant {
	p.Items = p.Items.Add(item)
	return p
}
