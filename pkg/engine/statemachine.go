package engine

import (
	"github.com/decred/slog"
)

// Epsilon bounds the floating point slack tolerated when checking that a
// chance node's child probabilities sum to one.
const Epsilon = 1e-10

// StateMachine enumerates legal successors of a State together with their
// probabilities. It carries no mutable state of its own beyond an optional
// logger; every method is a pure function of its arguments.
type StateMachine struct {
	log slog.Logger
}

// NewStateMachine builds a StateMachine. A nil logger disables logging.
func NewStateMachine(log slog.Logger) *StateMachine {
	if log == nil {
		log = slog.Disabled
	}
	return &StateMachine{log: log}
}

// IsFinished reports whether s is a terminal state.
func (StateMachine) IsFinished(s State) bool {
	return s.IsFinished()
}

// IsEvaluationPhase reports whether e represents a fresh decision point.
func (StateMachine) IsEvaluationPhase(e Event) bool {
	return IsEvaluationPhase(e)
}

// IsPlayerTurn reports whether it is the player's turn in s.
func (StateMachine) IsPlayerTurn(s State) bool {
	return s.NextEvent.IsPlayerTurn
}

// GetMaxDepth bounds the remaining plies from s.
func (StateMachine) GetMaxDepth(s State) int {
	return s.MaxDepth()
}

// ProbabilityOfBlankRound returns the probability the chambered round is
// blank under the given inverter-use hypothesis.
func (StateMachine) ProbabilityOfBlankRound(s State, inverterUsed bool) float64 {
	return s.ProbabilityOfBlankRound(inverterUsed)
}

// GetChildStates enumerates every legal successor of s along with its
// transition probability. Decision children carry probability 1.0; the
// probabilities of chance children sum to 1.0 within Epsilon.
func (sm *StateMachine) GetChildStates(s State) ([]State, error) {
	if s.IsFinished() {
		return nil, &InvariantViolationError{Reason: "get_child_states called on a finished state"}
	}

	switch s.NextEvent.Action {
	case ActionEvaluating:
		var children []State
		if s.NextEvent.IsPlayerTurn {
			children = playerDecisionChildren(s)
		} else {
			children = dealerDecisionChildren(s)
		}
		if len(children) == 0 {
			return nil, &InvariantViolationError{Reason: "decision state produced no children"}
		}
		return children, nil
	case ActionShootSelf:
		return sm.resolveShoot(s, true)
	case ActionShootOther:
		return sm.resolveShoot(s, false)
	case ActionUseItem:
		return sm.resolveItem(s, s.NextEvent.Item)
	default:
		return nil, &InvariantViolationError{Reason: "unrecognized pending action"}
	}
}

// resolveShoot resolves a ShootSelf/ShootOther action into its chance
// children, one per possible chambered colour.
func (sm *StateMachine) resolveShoot(s State, self bool) ([]State, error) {
	shooter := s.active()
	victim := shooter
	victimIsActive := self
	if !self {
		victim = s.other()
	}

	pBlank := s.Shotgun.Magazine.ProbabilityBlank()
	children := make([]State, 0, 2)

	// addOutcome hypothesizes that the chambered round's true colour is
	// drawn (probability taken from the pre-inversion belief
	// distribution). An active inverter then physically converts that
	// drawn round to its opposite before it is fired and removed, so
	// the damage dealt and the magazine's resulting live/blank totals
	// both reflect the inverted colour, not the drawn one.
	addOutcome := func(drawn RoundState, probability float64) error {
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

		damage := next.Shotgun.damageFor(effective)
		shotgun, err := next.Shotgun.consumeChambered()
		if err != nil {
			return err
		}
		next.Shotgun = shotgun
		next.InverterUsed = false

		if effective == RoundLive {
			if victimIsActive {
				next = next.withActive(victim.LoseLives(uint32(damage)))
			} else {
				next = next.withOther(victim.LoseLives(uint32(damage)))
			}
		}

		// Handcuffs tick on every shot resolution regardless of whether
		// this particular shot would naturally switch the turn; the
		// decay's suppression only matters when a switch was about to
		// happen.
		naturalSwitch := !self || effective == RoundLive
		handcuffs, suppress := next.Handcuffs.Decay()
		next.Handcuffs = handcuffs
		isPlayerTurn := next.NextEvent.IsPlayerTurn
		if naturalSwitch && !suppress {
			isPlayerTurn = !isPlayerTurn
		}
		next.NextEvent = Event{IsPlayerTurn: isPlayerTurn, Action: ActionEvaluating}

		children = append(children, next)
		return nil
	}

	if err := addOutcome(RoundBlank, pBlank); err != nil {
		return nil, err
	}
	if err := addOutcome(RoundLive, 1-pBlank); err != nil {
		return nil, err
	}
	if err := assertProbabilityMass(children); err != nil {
		return nil, err
	}
	return children, nil
}

func assertProbabilityMass(children []State) error {
	var total float64
	for _, c := range children {
		total += c.Probability
	}
	if len(children) > 1 && (total < 1-Epsilon || total > 1+Epsilon) {
		return &InvariantViolationError{Reason: "chance node probabilities do not sum to one"}
	}
	return nil
}

