package model

import "strconv"

// PlayerID uniquely identifies a player within the registry
type PlayerID int

// String returns the decimal form of the id
func (id PlayerID) String() string {
	return strconv.Itoa(int(id))
}

// Valid reports whether the id could have been assigned by the registry
func (id PlayerID) Valid() bool {
	return id > 0
}

// Player is a registered participant and the unit of persistence
type Player struct {
	ID     PlayerID `json:"id"`
	Nick   string   `json:"nick"`
	Points int      `json:"points"`
	Online bool     `json:"online"`
}

// NewPlayer returns a freshly registered player: no points, online
func NewPlayer(id PlayerID, nick string) *Player {
	return &Player{
		ID:     id,
		Nick:   nick,
		Points: 0,
		Online: true,
	}
}

// Clone returns a detached copy of the player
func (p *Player) Clone() Player {
	return *p
}
