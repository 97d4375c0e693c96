package entity

type ActionKind string

const (
	ActionTurn    ActionKind = "Turn"
	ActionGiveUp  ActionKind = "GiveUp"
	ActionRestart ActionKind = "Restart"
)

// Action - one request from the user. Pebbles is read for Turn, Config for Restart.
type Action struct {
	Kind    ActionKind  `json:"kind"`
	Pebbles int         `json:"pebbles,omitempty"`
	Config  *GameConfig `json:"config,omitempty"`
}

func TurnAction(pebbles int) Action {
	return Action{Kind: ActionTurn, Pebbles: pebbles}
}

func GiveUpAction() Action {
	return Action{Kind: ActionGiveUp}
}

// RestartAction - a nil config restarts with the previous one.
func RestartAction(config *GameConfig) Action {
	return Action{Kind: ActionRestart, Config: config}
}

type EventKind string

const (
	EventCounterTurn EventKind = "CounterTurn"
	EventWon         EventKind = "Won"
)

// Event - something that happened while an action was processed.
type Event struct {
	Kind    EventKind `json:"kind"`
	Player  Player    `json:"player"`
	Pebbles int       `json:"pebbles,omitempty"`
}

func CounterTurnEvent(pebbles int) Event {
	return Event{Kind: EventCounterTurn, Player: PlayerOpponent, Pebbles: pebbles}
}

func WonEvent(winner Player) Event {
	return Event{Kind: EventWon, Player: winner}
}
