package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-arena-server/api"
	"github.com/beka-birhanu/vinom-arena-server/config"
	"github.com/beka-birhanu/vinom-arena-server/events"
	"github.com/beka-birhanu/vinom-arena-server/game"
	"github.com/beka-birhanu/vinom-arena-server/network"
	"github.com/beka-birhanu/vinom-arena-server/service"
	"github.com/beka-birhanu/vinom-arena-server/service/i"
	"github.com/beka-birhanu/vinom-arena-server/spectate"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	logger "github.com/beka-birhanu/vinom-common/log"
	"google.golang.org/grpc"
)

// Global variables for dependencies
var (
	settings        config.Settings
	world           *game.World
	eventPublisher  *events.Publisher
	spectatorHub    *spectate.Hub
	spectatorServer *http.Server
	arenaServer     *service.Server
	tcpListener     *network.Listener
	grpcServer      *grpc.Server
	appLogger       general_i.Logger
)

func initWorld() {
	settings = config.LoadSettings(config.Envs.SettingsFile, appLogger).WithMaze(config.Envs.MazeSize, appLogger)
	world = game.NewWorld(settings.GameConfig(), settings.Walls)
	appLogger.Info(fmt.Sprintf("World initialized: size %d, %d walls", world.Size(), len(settings.Walls)))
}

func initEventPublisher() {
	if config.Envs.NatsURL == "" {
		appLogger.Info("NATS_URL not set, match events are not published")
		return
	}
	eventsLogger, err := logger.New("EVENTS", config.ColorYellow, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating event publisher logger: %v", err))
		os.Exit(1)
	}
	p, err := events.Connect(config.Envs.NatsURL, eventsLogger)
	if err != nil {
		// Events are optional; the arena runs without them.
		appLogger.Warning(fmt.Sprintf("Connecting event publisher: %v", err))
		return
	}
	eventPublisher = p
	appLogger.Info(fmt.Sprintf("Publishing match events to %s", config.Envs.NatsURL))
}

func initSpectatorHub() {
	if config.Envs.SpectatorPort == 0 {
		return
	}
	spectateLogger, err := logger.New("SPECTATE", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating spectator hub logger: %v", err))
		os.Exit(1)
	}
	spectatorHub = spectate.NewHub(world.Handshake, spectateLogger)

	mux := http.NewServeMux()
	mux.Handle("GET /spectate", spectatorHub)
	spectatorServer = &http.Server{
		Addr:              net.JoinHostPort(config.Envs.HostIP, fmt.Sprint(config.Envs.SpectatorPort)),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	appLogger.Info("Spectator hub initialized")
}

func initArenaServer() {
	arenaLogger, err := logger.New("ARENA", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating arena logger: %v", err))
		os.Exit(1)
	}
	c := &service.Config{
		World:  world,
		Period: settings.TickPeriod(),
		Logger: arenaLogger,
	}
	if eventPublisher != nil {
		c.Publisher = eventPublisher
	}
	if spectatorHub != nil {
		c.Spectators = spectatorHub
	}

	server, err := service.NewServer(c)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating arena server: %v", err))
		os.Exit(1)
	}
	arenaServer = server
	appLogger.Info("Arena server initialized")
}

func initTCPListener() {
	tcpLogger, err := logger.New("TCP-SERVER", config.ColorBlue, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating tcp listener logger: %v", err))
		os.Exit(1)
	}
	l, err := network.Listen(config.Envs.HostIP, config.Envs.TCPPort, arenaServer.HandleConnection)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Listening tcp: %v", err))
		os.Exit(1)
	}
	tcpListener = l
	tcpLogger.Info(fmt.Sprintf("Accepting players at %s", l.Addr()))
}

func initSessionController(sm i.SessionManager) {
	if config.Envs.GrpcPort == 0 {
		return
	}
	grpcServer = grpc.NewServer()
	if err := api.RegisterNewSessionServer(grpcServer, sm); err != nil {
		appLogger.Error(fmt.Sprintf("Creating and Registering session controller: %v", err))
		os.Exit(1)
	}

	addr := net.JoinHostPort(config.Envs.HostIP, fmt.Sprint(config.Envs.GrpcPort))
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Listening tcp: %v", err))
		os.Exit(1)
	}
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Error(fmt.Sprintf("Serving gRPC: %v", err))
		}
	}()
	appLogger.Info(fmt.Sprintf("Serving gRPC at: %s", addr))
}

func main() {
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	initWorld()
	initEventPublisher()
	initSpectatorHub()
	initArenaServer()
	initTCPListener()
	initSessionController(arenaServer)

	if spectatorServer != nil {
		go func() {
			if err := spectatorServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error(fmt.Sprintf("Serving spectators: %v", err))
			}
		}()
		appLogger.Info(fmt.Sprintf("Serving spectators at: ws://%s/spectate", spectatorServer.Addr))
	}

	go arenaServer.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	appLogger.Info("Shutting down")

	_ = tcpListener.Close()
	arenaServer.Stop()
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if spectatorHub != nil {
		spectatorHub.Close()
		_ = spectatorServer.Close()
	}
	if eventPublisher != nil {
		_ = eventPublisher.Close()
	}
}
