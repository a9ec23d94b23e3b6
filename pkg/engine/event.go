package engine

// ActionKind classifies what a turn event represents.
type ActionKind uint8

const (
	ActionEvaluating ActionKind = iota
	ActionShootSelf
	ActionShootOther
	ActionUseItem
)

func (a ActionKind) String() string {
	switch a {
	case ActionEvaluating:
		return "evaluating"
	case ActionShootSelf:
		return "shoot-self"
	case ActionShootOther:
		return "shoot-other"
	case ActionUseItem:
		return "use-item"
	default:
		return "unknown"
	}
}

// Event is the action pending at a state: whose turn it is and what they
// are about to do. Item only carries meaning when Action is ActionUseItem;
// it is otherwise ignored by equality.
type Event struct {
	IsPlayerTurn bool
	Action       ActionKind
	Item         Item
}

// equalKey normalizes Item away when it doesn't participate in identity.
func (e Event) equalKey() Event {
	if e.Action != ActionUseItem {
		e.Item = ItemNone
	}
	return e
}

// Equal reports whether e and other represent the same pending action,
// ignoring Item when Action isn't ActionUseItem.
func (e Event) Equal(other Event) bool {
	return e.equalKey() == other.equalKey()
}
