package i

// PlayerInfo is the externally visible state of one registered player.
type PlayerInfo struct {
	ID        int
	Name      string
	Score     int
	Health    int
	Died      bool
	Connected bool
}

// SessionManager exposes the registered players.
type SessionManager interface {
	// Players returns every registered player ordered by id.
	Players() []PlayerInfo

	// Player returns one registered player.
	Player(id int) (PlayerInfo, error)

	// Kick closes the player's connection; the tank leaves through the
	// ordinary disconnect path.
	Kick(id int) error
}
