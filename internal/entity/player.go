package entity

// Connection is the send side of a participant's transport. Implementations
// must not block the caller.
type Connection interface {
	Send(msg any) error
}

type Profile struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// Participant is a registered, connected client. The connection is owned by
// the transport.
type Participant struct {
	Profile

	Robot    bool       `json:"-"`
	MaxGames int        `json:"-"`
	Conn     Connection `json:"-"`
}

func NewParticipant(id, name string, conn Connection) *Participant {
	return &Participant{
		Profile: Profile{PlayerID: id, Name: name},
		Conn:    conn,
	}
}

func NewRobot(id, name string, maxGames int, conn Connection) *Participant {
	participant := NewParticipant(id, name, conn)
	participant.Robot = true
	participant.MaxGames = maxGames

	return participant
}

// AtGameLimit reports whether a robot already plays as many matches as it accepts.
func (that *Participant) AtGameLimit(active int) bool {
	return that.Robot && that.MaxGames > 0 && active >= that.MaxGames
}
