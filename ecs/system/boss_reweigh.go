package system

import (
	"fmt"
	"path"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/bossfight/ecs"
	"github.com/milk9111/bossfight/ecs/component"
)

// ReweighContext is what reweigh rules and scripts can see.
type ReweighContext struct {
	PlayerAbove bool
	HealthRatio float64
	LiveMinions int
}

// reweigh rewrites the selector weights for the next draw: base weights,
// then every matching rule in order, then the optional script. A weight of
// zero or less removes the attack from the selector.
func (s *BossSystem) reweigh(w *ecs.World, e ecs.Entity, boss *component.Boss, rt *component.BossRuntime, hp *component.Health) {
	if len(boss.Reweigh) == 0 && boss.ReweighScript == "" {
		return
	}

	ctx := ReweighContext{HealthRatio: hp.Ratio()}
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		if player, ok := queryPlayer(w); ok {
			// BB.T is the visual bottom in screen space
			ctx.PlayerAbove = player.Bounds.T <= tr.Top()
		}
	}
	if children, ok := ecs.Get(w, e, component.ChildRegistryComponent.Kind()); ok {
		ctx.LiveMinions = children.Len()
	}

	weights := ApplyReweighRules(boss.Attacks, boss.Reweigh, ctx)
	if boss.ReweighScript != "" {
		scripted, err := s.scripts.run(boss.ReweighScript, ctx, weights)
		if err != nil {
			fmt.Printf("boss: entity=%d reweigh script %s: %v\n", e, boss.ReweighScript, err)
		} else {
			weights = scripted
		}
	}

	for _, aw := range boss.Attacks {
		weight := weights[aw.Attack]
		if weight <= 0 {
			rt.Selector.RemoveItem(aw.Attack)
			continue
		}
		_ = rt.Selector.PutItem(aw.Attack, weight)
	}
}

// ApplyReweighRules returns the weights after every rule matching ctx has
// been applied over the base weights.
func ApplyReweighRules(base []component.AttackWeight, rules []component.ReweighRule, ctx ReweighContext) map[component.BossAttack]float64 {
	weights := make(map[component.BossAttack]float64, len(base))
	for _, aw := range base {
		weights[aw.Attack] = aw.Weight
	}
	for _, rule := range rules {
		if rule.PlayerAbove != nil && *rule.PlayerAbove != ctx.PlayerAbove {
			continue
		}
		if rule.HealthBelow > 0 && ctx.HealthRatio >= rule.HealthBelow {
			continue
		}
		for attack, weight := range rule.Weights {
			if _, known := weights[attack]; known {
				weights[attack] = weight
			}
		}
	}
	return weights
}

// reweighScripts compiles each named script once and reruns it per draw.
type reweighScripts struct {
	load     func(name string) ([]byte, error)
	compiled map[string]*tengo.Compiled
}

func newReweighScripts(load func(name string) ([]byte, error)) *reweighScripts {
	return &reweighScripts{load: load, compiled: map[string]*tengo.Compiled{}}
}

func (r *reweighScripts) get(name string) (*tengo.Compiled, error) {
	if c, ok := r.compiled[name]; ok {
		return c, nil
	}
	if r.load == nil {
		return nil, fmt.Errorf("no script loader for %q", name)
	}
	src, err := r.load(name)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(src)
	_ = script.Add("weights", map[string]any{})
	_ = script.Add("player_above", false)
	_ = script.Add("health_ratio", 1.0)
	_ = script.Add("live_minions", 0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	r.compiled[name] = compiled
	return compiled, nil
}

// Invalidate drops a cached script so the next draw recompiles it. Names
// match on their base, so "scripts/tank.tengo" drops "tank.tengo".
func (r *reweighScripts) Invalidate(name string) {
	base := path.Base(name)
	for key := range r.compiled {
		if path.Base(key) == base {
			delete(r.compiled, key)
		}
	}
}

func (r *reweighScripts) run(name string, ctx ReweighContext, weights map[component.BossAttack]float64) (map[component.BossAttack]float64, error) {
	compiled, err := r.get(name)
	if err != nil {
		return nil, err
	}

	in := make(map[string]any, len(weights))
	for attack, weight := range weights {
		in[string(attack)] = weight
	}
	for key, value := range map[string]any{
		"weights":      in,
		"player_above": ctx.PlayerAbove,
		"health_ratio": ctx.HealthRatio,
		"live_minions": ctx.LiveMinions,
	} {
		if err := compiled.Set(key, value); err != nil {
			return nil, err
		}
	}
	if err := compiled.Run(); err != nil {
		return nil, err
	}

	out := make(map[component.BossAttack]float64, len(weights))
	for key, value := range compiled.Get("weights").Map() {
		attack := component.BossAttack(strings.TrimSpace(key))
		if _, known := weights[attack]; !known {
			continue
		}
		switch v := value.(type) {
		case float64:
			out[attack] = v
		case int64:
			out[attack] = float64(v)
		case int:
			out[attack] = float64(v)
		}
	}
	return out, nil
}

// InvalidateScript forces the named reweigh script to be reloaded, used when
// the prefab watcher reports a change.
func (s *BossSystem) InvalidateScript(name string) {
	s.scripts.Invalidate(name)
}
