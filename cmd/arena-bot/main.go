// Command arena-bot joins an arena as a headless player that wanders, aims at
// the nearest enemy and fires. It exercises the client protocol end to end.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-arena-server/client"
	"github.com/beka-birhanu/vinom-arena-server/config"
	"github.com/beka-birhanu/vinom-arena-server/game"
	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	logger "github.com/beka-birhanu/vinom-common/log"
)

const (
	framePeriod = 17 * time.Millisecond
	turnEvery   = 60 // frames between direction changes
)

var botLogger general_i.Logger

func main() {
	botLogger, _ = logger.New("BOT", config.ColorGreen, os.Stdout)

	name := "bot"
	if len(os.Args) > 1 {
		name = os.Args[1]
	}
	host := config.Envs.HostIP
	if host == "" {
		host = "127.0.0.1"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctl := client.NewController(name, client.Callbacks{
		OnConnected: func(*client.View) { botLogger.Info(fmt.Sprintf("connected as %q", name)) },
		OnError: func(err error) {
			botLogger.Warning(err.Error())
			stop()
		},
	})
	timeout := time.Duration(config.Envs.ConnectTimeoutMS) * time.Millisecond
	if err := ctl.Connect(host, config.Envs.TCPPort, timeout); err != nil {
		os.Exit(1)
	}
	defer ctl.Close()

	go steer(ctx, ctl)
	if err := ctl.Run(ctx, framePeriod); err != nil && ctx.Err() == nil {
		botLogger.Error(fmt.Sprintf("sending intents: %v", err))
	}
}

// steer changes direction now and then and keeps the turret on the nearest
// other tank, firing while one is known.
func steer(ctx context.Context, ctl *client.Controller) {
	moves := []game.Movement{game.MoveUp, game.MoveDown, game.MoveLeft, game.MoveRight}
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if frame%turnEvery == 0 {
			ctl.Release(ctl.Movement())
			ctl.Press(moves[rand.IntN(len(moves))])
		}

		target, ok := nearestEnemy(ctl.View())
		if !ok {
			ctl.ReleaseFire()
			continue
		}
		ctl.AimAt(target)
		ctl.SetFire(game.FireMain)
	}
}

func nearestEnemy(v *client.View) (game.Vector2D, bool) {
	me, ok := v.Me()
	if !ok {
		return game.Vector2D{}, false
	}
	best, found := 0.0, false
	var target game.Vector2D
	for _, t := range v.Tanks() {
		if t.ID == me.ID || t.Died {
			continue
		}
		d := t.Location.Sub(me.Location).Length()
		if !found || d < best {
			best, found, target = d, true, t.Location
		}
	}
	return target, found
}
