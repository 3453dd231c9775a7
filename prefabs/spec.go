package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ScaleSpec is a pacing value at full and at empty health.
type ScaleSpec struct {
	AtFull  float64 `yaml:"at_full"`
	AtEmpty float64 `yaml:"at_empty"`
}

type AttackWeightSpec struct {
	Attack string  `yaml:"attack"`
	Weight float64 `yaml:"weight"`
}

type ReweighWhenSpec struct {
	PlayerAbove *bool   `yaml:"player_above"`
	HealthBelow float64 `yaml:"health_below"`
}

type ReweighRuleSpec struct {
	When    ReweighWhenSpec    `yaml:"when"`
	Weights map[string]float64 `yaml:"weights"`
}

type FistSpec struct {
	Offset      Vec2Spec `yaml:"offset"`
	Size        Vec2Spec `yaml:"size"`
	Health      int      `yaml:"health"`
	LaunchDelay float64  `yaml:"launch_delay"`
	LaunchSpeed float64  `yaml:"launch_speed"`
	ReturnDelay float64  `yaml:"return_delay"`
	ReturnSpeed float64  `yaml:"return_speed"`
}

type PlatformSpec struct {
	Offset Vec2Spec `yaml:"offset"`
	Size   Vec2Spec `yaml:"size"`
}

type ChunkSpec struct {
	Count     int      `yaml:"count"`
	Interval  float64  `yaml:"interval"`
	VelocityY float64  `yaml:"velocity_y"`
	Gravity   float64  `yaml:"gravity"`
	Offset    Vec2Spec `yaml:"offset"`
}

type BlastSpec struct {
	Count    int       `yaml:"count"`
	Interval ScaleSpec `yaml:"interval"`
	Speed    float64   `yaml:"speed"`
	Angles   []float64 `yaml:"angles"`
	Offset   Vec2Spec  `yaml:"offset"`
}

type WaveSpec struct {
	Cap      int     `yaml:"cap"`
	Interval float64 `yaml:"interval"`
}

type DefeatSpec struct {
	Duration          float64 `yaml:"duration"`
	ExplosionInterval float64 `yaml:"explosion_interval"`
	ExplosionSpread   float64 `yaml:"explosion_spread"`
	Orbs              int     `yaml:"orbs"`
	OrbSpeed          float64 `yaml:"orb_speed"`
}

// BossSpec is the tuning file of one boss.
type BossSpec struct {
	Name          string             `yaml:"name"`
	Debug         bool               `yaml:"debug"`
	Size          Vec2Spec           `yaml:"size"`
	Health        int                `yaml:"health"`
	ContactDamage int                `yaml:"contact_damage"`
	Attacks       []AttackWeightSpec `yaml:"attacks"`
	Reweigh       []ReweighRuleSpec  `yaml:"reweigh"`
	ReweighScript string             `yaml:"reweigh_script"`

	InitDuration  float64   `yaml:"init_duration"`
	AttackDelay   ScaleSpec `yaml:"attack_delay"`
	Speed         ScaleSpec `yaml:"speed"`
	MovementPause float64   `yaml:"movement_pause"`
	LaughDuration float64   `yaml:"laugh_duration"`

	FistLaunchDelay float64      `yaml:"fist_launch_delay"`
	Fist            FistSpec     `yaml:"fist"`
	Platform        PlatformSpec `yaml:"platform"`

	Chunk          ChunkSpec `yaml:"chunk"`
	Blast          BlastSpec `yaml:"blast"`
	RunningMinions WaveSpec  `yaml:"running_minions"`
	FlyingMinions  WaveSpec  `yaml:"flying_minions"`
	MinionOffset   Vec2Spec  `yaml:"minion_offset"`

	DamageTable     map[string]int `yaml:"damage_table"`
	Invulnerability float64        `yaml:"invulnerability"`
	Defeat          DefeatSpec     `yaml:"defeat"`

	Color *YAMLColor `yaml:"color"`
}

func LoadBossSpec(filename string) (*BossSpec, error) {
	spec, err := LoadSpec[BossSpec](filename)
	if err != nil {
		return nil, err
	}
	if len(spec.Attacks) == 0 {
		return nil, fmt.Errorf("prefabs: %s: boss has no attacks", filename)
	}
	if spec.Health <= 0 {
		return nil, fmt.Errorf("prefabs: %s: health must be positive", filename)
	}
	return &spec, nil
}

// EntitySpec describes one spawnable variant in the entity catalog.
type EntitySpec struct {
	Size         Vec2Spec   `yaml:"size"`
	Health       int        `yaml:"health"`
	Damager      string     `yaml:"damager"`
	Damage       int        `yaml:"damage"`
	FullyCharged bool       `yaml:"fully_charged"`
	DestroyOnHit bool       `yaml:"destroy_on_hit"`
	Lifetime     float64    `yaml:"lifetime"`
	Gravity      float64    `yaml:"gravity"`
	Minion       string     `yaml:"minion"`
	Speed        float64    `yaml:"speed"`
	ShotInterval float64    `yaml:"shot_interval"`
	ShotSpeed    float64    `yaml:"shot_speed"`
	Color        *YAMLColor `yaml:"color"`
}

// Catalog maps entity kind to variant name to spec.
type Catalog map[string]map[string]EntitySpec

func LoadCatalog() (Catalog, error) {
	return LoadSpec[Catalog]("entities.yaml")
}

func (c Catalog) Lookup(kind, variant string) (EntitySpec, bool) {
	spec, ok := c[kind][variant]
	return spec, ok
}

type PlayerSpec struct {
	Name         string     `yaml:"name"`
	Size         Vec2Spec   `yaml:"size"`
	Health       int        `yaml:"health"`
	MoveSpeed    float64    `yaml:"move_speed"`
	JumpSpeed    float64    `yaml:"jump_speed"`
	Gravity      float64    `yaml:"gravity"`
	ShotSpeed    float64    `yaml:"shot_speed"`
	ShotCooldown float64    `yaml:"shot_cooldown"`
	Color        *YAMLColor `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when none was set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
