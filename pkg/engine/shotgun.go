package engine

// Shotgun extends a Magazine with the sawed-off flag: a live shot fired
// while sawed off deals double damage, and the flag clears whenever a round
// leaves the magazine.
type Shotgun struct {
	Magazine Magazine
	SawedOff bool
}

// NewShotgun builds a fresh, not-sawed-off shotgun loaded with rounds.
func NewShotgun(rounds []RoundState) Shotgun {
	return Shotgun{Magazine: NewMagazine(rounds)}
}

// Saw marks the shotgun as sawed off. Illegal to call twice in a row.
func (s Shotgun) Saw() (Shotgun, error) {
	if s.SawedOff {
		return s, &IllegalOperationError{Op: "saw shotgun", Reason: "already sawed off"}
	}
	s.SawedOff = true
	return s, nil
}

// damageFor returns the lives lost by a live shot given the current
// sawed-off state.
func (s Shotgun) damageFor(round RoundState) int {
	if round != RoundLive {
		return 0
	}
	if s.SawedOff {
		return 2
	}
	return 1
}

// consumeChambered fires or ejects the chambered round, clearing sawed-off
// as every ejection does.
func (s Shotgun) consumeChambered() (Shotgun, error) {
	mag, err := s.Magazine.consumeChambered()
	if err != nil {
		return s, err
	}
	return Shotgun{Magazine: mag, SawedOff: false}, nil
}
