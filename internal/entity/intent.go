package entity

type MessageType string

const (
	TypeRegisterPlayer   MessageType = "REGISTER_PLAYER"
	TypeRegisterRobot    MessageType = "REGISTER_ROBOT"
	TypeStartGame        MessageType = "START_GAME"
	TypeJoinGame         MessageType = "JOIN_GAME"
	TypeSpectateGame     MessageType = "SPECTATE_GAME"
	TypeMakeMove         MessageType = "MAKE_MOVE"
	TypePlayerDisconnect MessageType = "PLAYER_DISCONNECT"
	TypePlayerTimeout    MessageType = "PLAYER_TIMEOUT"
	TypeNotifyTime       MessageType = "NOTIFY_TIME"
	TypeGameComplete     MessageType = "GAME_COMPLETE"
	TypeError            MessageType = "ERROR"
)

// Intent is the closed set of inbound requests and clock events handled by the engine.
type Intent interface {
	Type() MessageType
	Requester() string
	Connection() Connection
}

// Envelope carries the fields every intent has. PlayerID and Conn are filled
// in by the server, never trusted from the client.
type Envelope struct {
	MessageType MessageType `json:"type"`
	PlayerID    string      `json:"playerId,omitempty"`
	Conn        Connection  `json:"-"`
}

func (that Envelope) Type() MessageType {
	return that.MessageType
}

func (that Envelope) Requester() string {
	return that.PlayerID
}

func (that Envelope) Connection() Connection {
	return that.Conn
}

type RegisterPlayer struct {
	Envelope

	Name string `json:"name"`
}

// RegisterRobot registers an automated participant that plays at most MaxGames
// unfinished matches at once; zero means no limit.
type RegisterRobot struct {
	Envelope

	Name     string `json:"name"`
	MaxGames int    `json:"maxGames"`
}

// StartGame durations are in milliseconds; zero means server default.
type StartGame struct {
	Envelope

	GameID                string `json:"gameId"`
	Name                  string `json:"name"`
	BoardSize             int    `json:"boardSize"`
	PlayerCount           int    `json:"playerCount"`
	WinningSequenceLength int    `json:"winningSequenceLength,omitempty"`
	TimePerPlayer         int64  `json:"timePerPlayer,omitempty"`
	IncrementPerPlayer    int64  `json:"incrementPerPlayer,omitempty"`
}

type JoinGame struct {
	Envelope

	GameID string `json:"gameId"`
}

type SpectateGame struct {
	Envelope

	GameID string `json:"gameId"`
}

type MakeMove struct {
	Envelope

	GameID      string `json:"gameId"`
	CoordinateX int    `json:"coordinateX"`
	CoordinateY int    `json:"coordinateY"`
}

type PlayerDisconnect struct {
	Envelope
}

type PlayerTimeout struct {
	Envelope

	GameID string `json:"gameId"`
}

type NotifyTime struct {
	Envelope

	GameID string `json:"gameId"`
}

// Unknown wraps any message whose type the server does not recognise.
type Unknown struct {
	Envelope
}

func envelope(messageType MessageType, playerID string, conn Connection) Envelope {
	return Envelope{MessageType: messageType, PlayerID: playerID, Conn: conn}
}

func NewRegisterPlayer(playerID, name string, conn Connection) RegisterPlayer {
	return RegisterPlayer{Envelope: envelope(TypeRegisterPlayer, playerID, conn), Name: name}
}

func NewRegisterRobot(playerID, name string, maxGames int, conn Connection) RegisterRobot {
	return RegisterRobot{Envelope: envelope(TypeRegisterRobot, playerID, conn), Name: name, MaxGames: maxGames}
}

func NewJoinGame(playerID, gameID string, conn Connection) JoinGame {
	return JoinGame{Envelope: envelope(TypeJoinGame, playerID, conn), GameID: gameID}
}

func NewSpectateGame(playerID, gameID string, conn Connection) SpectateGame {
	return SpectateGame{Envelope: envelope(TypeSpectateGame, playerID, conn), GameID: gameID}
}

func NewMakeMove(playerID, gameID string, x, y int, conn Connection) MakeMove {
	return MakeMove{
		Envelope:    envelope(TypeMakeMove, playerID, conn),
		GameID:      gameID,
		CoordinateX: x,
		CoordinateY: y,
	}
}

func NewPlayerDisconnect(playerID string) PlayerDisconnect {
	return PlayerDisconnect{Envelope: envelope(TypePlayerDisconnect, playerID, nil)}
}

func NewPlayerTimeout(playerID, gameID string) PlayerTimeout {
	return PlayerTimeout{Envelope: envelope(TypePlayerTimeout, playerID, nil), GameID: gameID}
}

func NewNotifyTime(playerID, gameID string) NotifyTime {
	return NotifyTime{Envelope: envelope(TypeNotifyTime, playerID, nil), GameID: gameID}
}
