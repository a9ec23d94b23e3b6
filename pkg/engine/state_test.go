package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func baseState() State {
	return State{
		Player:    NewParticipant(4, ItemSet{}),
		Dealer:    NewParticipant(4, ItemSet{}),
		Shotgun:   NewShotgun([]RoundState{RoundLive, RoundBlank, RoundBlank}),
		Handcuffs: HandcuffsNone,
		NextEvent: Event{IsPlayerTurn: true, Action: ActionEvaluating},
		MaxLives:  4,
	}
}

func TestStateKeyIgnoresProbabilityAndInverter(t *testing.T) {
	a := baseState()
	a.Probability = 0.3
	a.InverterUsed = true

	b := baseState()
	b.Probability = 0.9
	b.InverterUsed = false

	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
}

func TestStateKeyDiffersOnKnowledge(t *testing.T) {
	a := baseState()
	b := baseState()
	b.Shotgun.Magazine = b.Shotgun.Magazine.revealChambered(true, false)

	require.False(t, a.Equal(b))
	require.NotEqual(t, a.Hash(), b.Hash())
}

func TestIsFinished(t *testing.T) {
	s := baseState()
	require.False(t, s.IsFinished())

	dead := s
	dead.Player.Lives = 0
	require.True(t, dead.IsFinished())

	empty := s
	empty.Shotgun.Magazine.Count = 0
	require.True(t, empty.IsFinished())
}

// TestProbabilityOfBlankRoundInverterFlip is testable property 5: asking
// under the inverter-used hypothesis must return the complement of asking
// without it, for both a fully unknown chamber and one already revealed
// to both sides.
func TestProbabilityOfBlankRoundInverterFlip(t *testing.T) {
	s := baseState()
	s.Shotgun = NewShotgun([]RoundState{RoundLive, RoundBlank, RoundBlank})

	p := s.ProbabilityOfBlankRound(false)
	require.InDelta(t, 1-p, s.ProbabilityOfBlankRound(true), 1e-12)

	sm := NewStateMachine(nil)
	require.InDelta(t, 1-p, sm.ProbabilityOfBlankRound(s, true), 1e-12)
	require.Equal(t, p, sm.ProbabilityOfBlankRound(s, false))

	known := s
	known.Shotgun.Magazine = known.Shotgun.Magazine.revealChambered(true, true)
	kp := known.ProbabilityOfBlankRound(false)
	require.Equal(t, 0.0, kp) // chambered round is known live
	require.Equal(t, 1.0, known.ProbabilityOfBlankRound(true))
}

func TestIsEvaluationPhase(t *testing.T) {
	require.True(t, IsEvaluationPhase(Event{Action: ActionEvaluating}))
	require.True(t, IsEvaluationPhase(Event{Action: ActionUseItem, Item: ItemSaw}))
	require.False(t, IsEvaluationPhase(Event{Action: ActionUseItem, Item: ItemGlass}))
	require.False(t, IsEvaluationPhase(Event{Action: ActionShootSelf}))
}
