package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP string // Interface the game listener binds to ("" for all)

	TCPPort          int // Port for the game protocol
	GrpcPort         int // Port for the admin gRPC server, 0 disables it
	SpectatorPort    int // Port for the websocket spectator feed, 0 disables it
	ConnectTimeoutMS int // Dial timeout used by clients (in milliseconds)

	NatsURL      string // NATS server for match events, empty disables publishing
	SettingsFile string // Path to the game settings file (.xml or .yaml)

	MazeSize int // Cells per side of the generated maze used when the settings carry no walls, 0 disables it
}

// Defaults applied when a variable is missing or malformed.
const (
	DefaultTCPPort          = 11000
	DefaultGrpcPort         = 50051
	DefaultSpectatorPort    = 8080
	DefaultConnectTimeoutMS = 3000
	DefaultMazeSize         = 6
)

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("%s[APP]%s [INFO] .env file not found or could not be loaded: %v", ColorGreen, ColorReset, err)
	}

	return Config{
		HostIP: os.Getenv("HOST_IP"),

		TCPPort:          getEnvAsInt("TCP_PORT", DefaultTCPPort),
		GrpcPort:         getEnvAsInt("GRPC_PORT", DefaultGrpcPort),
		SpectatorPort:    getEnvAsInt("SPECTATOR_PORT", DefaultSpectatorPort),
		ConnectTimeoutMS: getEnvAsInt("CONNECT_TIMEOUT_MS", DefaultConnectTimeoutMS),

		NatsURL:      os.Getenv("NATS_URL"),
		SettingsFile: os.Getenv("SETTINGS_FILE"),

		MazeSize: getEnvAsInt("MAZE_SIZE", DefaultMazeSize),
	}
}

// getEnvAsInt retrieves the value of an environment variable as a non-negative integer.
// A missing or malformed value is reported and replaced by def.
func getEnvAsInt(key string, def int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return def
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		log.Printf("%s[APP]%s %s[WARNING]%s Environment variable %s must be a non-negative integer, using %d",
			ColorGreen, ColorReset, ColorYellow, ColorReset, key, def)
		return def
	}
	return value
}
