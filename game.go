package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/ecs/system"
	"github.com/milk9111/bossfight/encounter"
	"github.com/milk9111/bossfight/prefabs"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

type Game struct {
	frames int

	enc      *encounter.Encounter
	renderer *system.RenderSystem
	watcher  *prefabs.Watcher
	pauseUI  *ebitenui.UI

	debug       bool
	paused      bool
	stepOnce    bool
	showLog     bool
	clipboardOK bool
	status      string
}

func NewGame(cfg encounter.Config, watch bool) (*Game, error) {
	cfg.Input = system.NewInputSystem()
	enc, err := encounter.New(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		enc:      enc,
		renderer: system.NewRenderSystem(specPalette{enc: enc}),
		debug:    cfg.Debug,
		showLog:  cfg.Debug,
	}
	lvl := enc.Level()
	g.pauseUI = NewPauseUI(g, lvl.Width, lvl.Height)
	enc.OnSignal(func(rec encounter.SignalRecord) {
		g.status = fmt.Sprintf("%s (boss #%d, T=%d)", rec.Signal, rec.Boss, rec.Tick)
	})

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}

	if watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("prefab watcher: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++
	g.drainWatcher()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.showLog = !g.showLog
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyLog()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reload("manual")
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.enc.EndRoom()
	}

	if g.paused {
		g.pauseUI.Update()
	}

	step := !g.paused || g.stepOnce || inpututil.IsKeyJustPressed(ebiten.KeyN)
	g.stepOnce = false
	if !step || g.enc.Ended() {
		return nil
	}
	if err := g.enc.Step(1 / float64(ebiten.TPS())); err != nil {
		g.status = err.Error()
	}
	return nil
}

// drainWatcher applies prefab edits on the game goroutine. Script edits only
// drop the compiled script; spec edits rebuild the room.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change := <-g.watcher.Events:
			if change.Script {
				g.enc.InvalidateScript(change.Name())
				g.status = "script reloaded: " + change.Name()
				continue
			}
			g.reload(change.Name())
		case err := <-g.watcher.Errors:
			log.Printf("prefab watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(reason string) {
	if err := g.enc.Reload(); err != nil {
		g.status = fmt.Sprintf("reload %s: %v", reason, err)
		log.Print(g.status)
		return
	}
	g.status = "reloaded: " + reason
}

func (g *Game) copyLog() {
	if !g.clipboardOK {
		g.status = "clipboard unavailable"
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.enc.Log().Format()))
	g.status = fmt.Sprintf("copied %d log entries", g.enc.Log().Len())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	w := g.enc.World()

	system.DrawArenaDebug(w, screen)
	g.renderer.Draw(w, screen)

	hud := fmt.Sprintf("FPS: %.2f  T=%d  player hp %s", ebiten.ActualFPS(), w.Tick(), g.playerHealth())
	if g.paused {
		hud += "  [paused]"
	}
	if g.enc.Ended() {
		hud += "  [room ended, R restarts]"
	}
	if g.status != "" {
		hud += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, hud)

	if g.debug {
		system.DrawBossDebug(w, screen, 10, 40)
	}
	if g.showLog {
		ebitenutil.DebugPrintAt(screen, g.enc.Log().Tail(16), 10, 120)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) playerHealth() string {
	hp, ok := ecsHealth(g.enc)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d/%d", hp.Current, hp.Max)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	lvl := g.enc.Level()
	return lvl.Width, lvl.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func ecsHealth(enc *encounter.Encounter) (*component.Health, bool) {
	return ecs.Get(enc.World(), enc.Player(), component.HealthComponent.Kind())
}
