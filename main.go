package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/bossfight/audio"
	"github.com/milk9111/bossfight/encounter"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	levelName := flag.String("level", encounter.DefaultLevel, "level name in levels/")
	seed := flag.Uint64("seed", 1, "attack selection seed")
	watch := flag.Bool("watch", false, "reload prefabs and scripts when they change on disk")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	cfg := encounter.Config{Level: *levelName, Seed: *seed, Debug: *debug}
	if !*mute {
		sink := audio.NewToneSink()
		if err := sink.Initialize(); err != nil {
			// Non-fatal, the fight runs without sound
			log.Printf("audio initialization failed: %v", err)
		} else {
			defer sink.Close()
			cfg.Audio = sink
		}
	}

	game, err := NewGame(cfg, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	lvl := game.enc.Level()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(lvl.Width, lvl.Height)
	ebiten.SetWindowTitle("bossfight: " + lvl.Name)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
