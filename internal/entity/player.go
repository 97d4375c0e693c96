package entity

type Player string

const (
	PlayerNone     Player = ""
	PlayerUser     Player = "User"
	PlayerOpponent Player = "Opponent"
)

func (that Player) Other() Player {
	switch that {
	case PlayerUser:
		return PlayerOpponent
	case PlayerOpponent:
		return PlayerUser
	default:
		return PlayerNone
	}
}
