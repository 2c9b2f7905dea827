// Command replaytool inspects replays written to a durable sink: it loads a
// finalized game's full event log, prints per-hand/per-player analysis, or
// drives the playback Cursor event by event.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/alecthomas/kong"

	"texasholdem-server/internal/clock"
	"texasholdem-server/internal/replay"
	"texasholdem-server/internal/storage"
)

var cli struct {
	Sink        string `help:"replay sink to read from" enum:"postgres,sqlite" default:"sqlite"`
	DatabaseURL string `help:"postgres DSN (when --sink=postgres)"`
	SQLitePath  string `help:"sqlite db file path (when --sink=sqlite)" default:"pokerserver_replays.db"`

	Inspect InspectCmd `cmd:"" help:"print a replay's summary, per-player stats and interesting moments"`
	Hands   HandsCmd   `cmd:"" help:"print the events belonging to a single hand"`
	Play    PlayCmd    `cmd:"" help:"step through a replay's events at real-world pacing"`
}

type loader interface {
	Load(ctx context.Context, gameID string) (replay.ReplayData, error)
}

func openLoader() (loader, func() error, error) {
	switch cli.Sink {
	case "postgres":
		s, err := storage.OpenPostgres(cli.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		s, err := storage.OpenSQLite(cli.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("replaytool"),
		kong.Description("inspect texasholdem-server match replays"),
		kong.UsageOnError(),
	)

	switch ctx.Command() {
	case "inspect <game-id>", "inspect":
		if err := cli.Inspect.Run(); err != nil {
			log.Fatalf("[replaytool] inspect failed: %v", err)
		}
	case "hands <game-id> <hand-number>", "hands":
		if err := cli.Hands.Run(); err != nil {
			log.Fatalf("[replaytool] hands failed: %v", err)
		}
	case "play <game-id>", "play":
		if err := cli.Play.Run(); err != nil {
			log.Fatalf("[replaytool] play failed: %v", err)
		}
	default:
		log.Fatalf("[replaytool] unknown command: %s", ctx.Command())
	}
}

type InspectCmd struct {
	GameID string `arg:"" help:"gameId to load"`
}

func (cmd *InspectCmd) Run() error {
	l, closeFn, err := openLoader()
	if err != nil {
		return err
	}
	defer closeFn()

	data, err := l.Load(context.Background(), cmd.GameID)
	if err != nil {
		return err
	}

	hands := replay.AnalyzeHands(data)
	stats := replay.PlayerStatistics(data)
	moments := replay.InterestingMoments(data)
	flow := replay.GameFlowSummary(data)

	fmt.Printf("game %s: %d events, %d hands, started %s\n", data.GameID, data.Metadata.TotalEvents, len(hands), data.Metadata.StartTime.Format(time.RFC3339))
	fmt.Printf("average hand duration: %s\n", flow.AverageHandDuration)
	fmt.Println("player stats:")
	for _, s := range stats {
		fmt.Printf("  %s: hands=%d won=%d vpip=%.2f pfr=%.2f af=%.2f\n", s.PlayerID, s.HandsPlayed, s.HandsWon, s.VoluntarilyPutMoney, s.PreflopRaise, s.AggressionFactor)
	}
	if len(moments) > 0 {
		fmt.Println("interesting moments:")
		for _, m := range moments {
			fmt.Printf("  hand %d: %s\n", m.HandNumber, m.Reason)
		}
	}
	return nil
}

type HandsCmd struct {
	GameID     string `arg:"" help:"gameId to load"`
	HandNumber uint64 `arg:"" help:"hand number to print"`
}

func (cmd *HandsCmd) Run() error {
	l, closeFn, err := openLoader()
	if err != nil {
		return err
	}
	defer closeFn()

	data, err := l.Load(context.Background(), cmd.GameID)
	if err != nil {
		return err
	}

	events := replay.EventsForHand(data, cmd.HandNumber)
	if len(events) == 0 {
		return fmt.Errorf("hand %d not found in game %s", cmd.HandNumber, cmd.GameID)
	}
	for _, ev := range events {
		fmt.Printf("[%d] %s actor=%s phase=%v\n", ev.SequenceID, ev.Type, ev.ActorID, ev.Phase)
	}
	return nil
}

type PlayCmd struct {
	GameID string  `arg:"" help:"gameId to load"`
	Speed  float64 `help:"playback speed multiplier" default:"4"`
}

func (cmd *PlayCmd) Run() error {
	l, closeFn, err := openLoader()
	if err != nil {
		return err
	}
	defer closeFn()

	data, err := l.Load(context.Background(), cmd.GameID)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	var remaining int
	cursor := replay.NewCursor(data.Events, clock.NewReal(), func(ev replay.ReplayEvent) {
		fmt.Printf("[%d] %s\n", ev.SequenceID, ev.Type)
		remaining--
		if remaining <= 0 {
			close(done)
		}
	})
	remaining = len(data.Events)
	if remaining == 0 {
		fmt.Println("no events to play")
		return nil
	}
	cursor.Speed = cmd.Speed
	cursor.Play()
	<-done
	return nil
}
