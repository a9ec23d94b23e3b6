package agent

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/six-chamber/roulette/pkg/engine"
	"github.com/six-chamber/roulette/pkg/search"
)

func newAgentFixtures() (*search.Engine, *engine.StateMachine) {
	machine := engine.NewStateMachine(nil)
	evaluator := engine.NewEvaluator(4)
	eng := search.New(machine, evaluator, search.Config{
		ShallowDepth:  2,
		CacheCapacity: 10_000,
		Workers:       4,
	})
	return eng, machine
}

func baseAgentState() engine.State {
	return engine.State{
		Player:    engine.NewParticipant(4, engine.ItemSet{}),
		Dealer:    engine.NewParticipant(3, engine.ItemSet{}),
		Shotgun:   engine.NewShotgun([]engine.RoundState{engine.RoundLive, engine.RoundBlank, engine.RoundBlank}),
		NextEvent: engine.Event{IsPlayerTurn: true, Action: engine.ActionEvaluating},
		MaxLives:  4,
	}
}

func TestSearchAgentPicksAnOfferedChild(t *testing.T) {
	eng, machine := newAgentFixtures()
	a := NewSearchAgent(eng, machine, nil)

	state := baseAgentState()
	children, err := machine.GetChildStates(state)
	require.NoError(t, err)

	successor, err := a.GetSuccessor(state, children)
	require.NoError(t, err)

	found := false
	for _, c := range children {
		if c.NextEvent.Equal(successor.NextEvent) {
			found = true
		}
	}
	require.True(t, found)
}

func TestSearchAgentReusesCachedLineUntilConfirmed(t *testing.T) {
	eng, machine := newAgentFixtures()
	a := NewSearchAgent(eng, machine, nil)

	state := baseAgentState()
	children, err := machine.GetChildStates(state)
	require.NoError(t, err)

	_, err = a.GetSuccessor(state, children)
	require.NoError(t, err)
	require.Nil(t, a.followUps)
	require.NotNil(t, a.pending)
	pending := a.pending

	a.Confirm()
	require.Equal(t, pending, a.followUps)
}

func TestSearchAgentResetClearsCache(t *testing.T) {
	eng, machine := newAgentFixtures()
	a := NewSearchAgent(eng, machine, nil)

	// A held Saw with a lone live round gives the two-event line
	// (UseItem Saw, ShootOther), so one event is still cached after Confirm.
	state := baseAgentState()
	state.Player = engine.NewParticipant(2, engine.ItemSet{}.Add(engine.ItemSaw))
	state.Dealer = engine.NewParticipant(2, engine.ItemSet{})
	state.Shotgun = engine.NewShotgun([]engine.RoundState{engine.RoundLive})
	children, err := machine.GetChildStates(state)
	require.NoError(t, err)

	_, err = a.GetSuccessor(state, children)
	require.NoError(t, err)
	a.Confirm()
	require.NotEmpty(t, a.followUps)

	a.Reset()
	require.Empty(t, a.followUps)
	require.Empty(t, a.pending)
}

func TestSearchAgentPredictionMissWhenExpectedEventAbsent(t *testing.T) {
	eng, machine := newAgentFixtures()
	a := NewSearchAgent(eng, machine, nil)
	a.followUps = []engine.Event{{IsPlayerTurn: true, Action: engine.ActionUseItem, Item: engine.ItemSaw}}

	state := baseAgentState()
	_, err := a.GetSuccessor(state, []engine.State{})

	var missErr *PredictionMissError
	require.ErrorAs(t, err, &missErr)
	require.Nil(t, a.followUps)
}

func TestRandomizedAgentAlwaysReturnsAnOfferedChild(t *testing.T) {
	machine := engine.NewStateMachine(nil)
	a := NewRandomizedAgent(rand.New(rand.NewSource(7)))

	state := baseAgentState()
	children, err := machine.GetChildStates(state)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		successor, err := a.GetSuccessor(state, children)
		require.NoError(t, err)
		found := false
		for _, c := range children {
			if c.NextEvent.Equal(successor.NextEvent) {
				found = true
			}
		}
		require.True(t, found)
	}
}

func TestRandomizedAgentErrorsOnNoChildren(t *testing.T) {
	a := NewRandomizedAgent(nil)
	_, err := a.GetSuccessor(engine.State{}, nil)
	require.Error(t, err)
}
