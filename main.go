package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
)

func main() {
	configPath := flag.String("config", "", "visual spec yaml (embedded default when empty); watched for changes")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	count := flag.Int("count", -1, "sprite count override (negative keeps the configured count)")
	flag.Parse()

	if p := startProfile(*profileMode); p != nil {
		defer p.Stop()
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("bouncer")

	game, err := NewGame(*configPath, *debug, *count)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Print(err)
	}
}

type stopper interface{ Stop() }

func startProfile(mode string) stopper {
	switch mode {
	case "":
		return nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		log.Printf("unknown profile mode %q, profiling disabled", mode)
		return nil
	}
}
