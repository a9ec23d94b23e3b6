package engine

// maxScoringEmptySlots caps how many empty magazine slots count toward the
// evaluator's empty-slot bonus, matching MAX_SLOTS - MAX_ITEM_DRAW.
const maxScoringEmptySlots = MaxSlots - 5

// itemWeight assigns each item type its contribution to the item-bonus term
// of the heuristic score.
var itemWeight = [numItems]float64{
	ItemNone:      0.015,
	ItemCigarette: 0.10,
	ItemGlass:     0.025,
	ItemSaw:       0.05,
	ItemHandcuffs: 0.05,
	ItemPhone:     0.02,
	ItemBeer:      0.01,
	ItemPills:     0.05,
	ItemInverter:  0.01,
	ItemAdrenalin: 0.075,
}

// Evaluator produces a bounded heuristic score for non-terminal states and
// converts between that score and a win probability.
type Evaluator struct {
	maxLives uint32
}

// NewEvaluator builds an Evaluator whose win/loss bounds scale with
// maxLives, matching the reference engine's LOSS_SCORE/WIN_SCORE
// definitions.
func NewEvaluator(maxLives uint32) Evaluator {
	return Evaluator{maxLives: maxLives}
}

// LossScore is the score assigned to a state where the player has lost.
func (e Evaluator) LossScore() float64 {
	return -9 * float64(1+e.maxLives)
}

// WinScore is the score assigned to a state where the dealer has lost.
func (e Evaluator) WinScore() float64 {
	return float64(1 + e.maxLives)
}

// Score returns the heuristic value of s from the player's perspective:
// the more positive, the better for the player.
func (e Evaluator) Score(s State) float64 {
	if s.Player.Dead() {
		return e.LossScore()
	}
	if s.Dealer.Dead() {
		return e.WinScore()
	}

	lifeAdvantage := float64(s.Player.Lives) - float64(s.Dealer.Lives)
	itemAdvantage := itemBonus(s.Player.Items) - itemBonus(s.Dealer.Items)
	emptySlotAdvantage := emptySlotBonus(s.Dealer.Items) - emptySlotBonus(s.Player.Items)

	return lifeAdvantage + itemAdvantage + emptySlotAdvantage
}

func itemBonus(items ItemSet) float64 {
	var total float64
	items.Distinct(func(item Item) {
		total += itemWeight[item] * float64(items.Count(item))
	})
	return total
}

// emptySlotBonus weighs a side's unused item slots, capped at
// maxScoringEmptySlots and scaled by the same weight as a None item.
func emptySlotBonus(items ItemSet) float64 {
	empty := MaxSlots - items.Total()
	if empty < 0 {
		empty = 0
	}
	if empty > maxScoringEmptySlots {
		empty = maxScoringEmptySlots
	}
	return float64(empty) * itemWeight[ItemNone]
}

// WinProbability maps a heuristic score onto [0, 1].
func (e Evaluator) WinProbability(score float64) float64 {
	p := (score - e.LossScore()) / (e.WinScore() - e.LossScore())
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// ScoreFromProbability is the inverse of WinProbability.
func (e Evaluator) ScoreFromProbability(p float64) float64 {
	return p*e.WinScore() + (1-p)*e.LossScore()
}
