package game

// Entity sizes in world units.
const (
	TankSize       = 60.0
	WallThickness  = 50.0
	ProjectileSize = 30.0
	PowerupSize    = 12.0
)

// Config carries the tuning scalars of one World.
type Config struct {
	Size               int     // Side of the square world, centered on the origin
	RespawnDelay       int     // Ticks a dead tank waits before respawning
	FireRate           int     // Ticks between two main shots of one tank
	TankHealth         int     // Health a tank spawns with
	TankSpeed          float64 // Distance a moving tank covers per tick
	ProjectileSpeed    float64 // Distance a projectile covers per tick
	MaxWorldPowerups   int     // Powerups alive in the world at once
	PowerupSpawnDelay  int     // Ticks between two powerup spawns
	MaxPowerupsPerTank int     // Charges a tank can hold
	Seed               uint64  // Seed for spawn placement, 0 picks one from the clock
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Size:               2000,
		RespawnDelay:       300,
		FireRate:           80,
		TankHealth:         3,
		TankSpeed:          3,
		ProjectileSpeed:    25,
		MaxWorldPowerups:   3,
		PowerupSpawnDelay:  1650,
		MaxPowerupsPerTank: 2,
	}
}
