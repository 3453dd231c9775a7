package system

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
	"golang.org/x/image/colornames"
)

// DrawArenaDebug outlines the named arena rectangles and fills the floor.
func DrawArenaDebug(w *ecs.World, screen *ebiten.Image) {
	arena, ok := arenaOf(w)
	if !ok || screen == nil {
		return
	}

	floor := cp.BB{L: arena.Bounds.L, B: arena.FloorY, R: arena.Bounds.R, T: arena.Bounds.T}
	fillBB(screen, floor, colornames.Dimgray)
	fillBB(screen, arena.KillerWall, color.RGBA{R: 255, G: 0, B: 0, A: 48})
	strokeBB(screen, arena.KillerWall, colornames.Red)
	strokeBB(screen, arena.Front, colornames.Yellow)
	strokeBB(screen, arena.Back, colornames.Orange)
	strokeBB(screen, arena.Fly1, colornames.Lightskyblue)
	strokeBB(screen, arena.Fly2, colornames.Lightskyblue)
}

// DrawBossDebug prints BossDebugText at x, y.
func DrawBossDebug(w *ecs.World, screen *ebiten.Image, x, y int) {
	if screen == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, BossDebugText(w), x, y)
}

// BossDebugText summarizes every boss: health, director state, timers and
// children.
func BossDebugText(w *ecs.World) string {
	var sb strings.Builder
	ecs.ForEach2(w, component.BossComponent.Kind(), component.BossRuntimeComponent.Kind(), func(e ecs.Entity, boss *component.Boss, rt *component.BossRuntime) {
		hp, _ := ecs.Get(w, e, component.HealthComponent.Kind())
		cur, total := 0, 0
		if hp != nil {
			cur, total = hp.Current, hp.Max
		}

		state := "intro"
		switch {
		case rt.Defeated:
			state = "defeated"
		case rt.Laughing():
			state = "laughing"
		case rt.Ready:
			state = rt.Director.Current()
		}
		attack := string(rt.Current)
		if attack == "" {
			attack = "-"
		}

		fmt.Fprintf(&sb, "%s #%d  hp %d/%d  %s  attack %s\n", boss.Name, e, cur, total, state, attack)
		fmt.Fprintf(&sb, "  delay %.2f/%.2f  fist %.2f/%.2f  move %s\n",
			rt.AttackDelayTimer.Elapsed(), rt.AttackDelayTimer.Duration(),
			rt.FistLaunchTimer.Elapsed(), rt.FistLaunchTimer.Duration(), rt.MoveState)
		if children, ok := ecs.Get(w, e, component.ChildRegistryComponent.Kind()); ok {
			fmt.Fprintf(&sb, "  minions running %d flying %d\n",
				children.Count(component.GroupRunningMinions), children.Count(component.GroupFlyingMinions))
		}
	})
	return sb.String()
}

func fillBB(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	vector.FillRect(screen, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), clr, false)
}

func strokeBB(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	vector.StrokeRect(screen, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), 1.0, clr, false)
}
