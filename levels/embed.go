package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/jakecoffman/cp"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a boss room: its size in pixels and the named rectangles placed
// in it.
type Level struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	FloorY   int      `json:"floor_y"`
	Entities []Entity `json:"entities,omitempty"`
}

// Entity is a rectangle placed in the level. X and Y locate its top-left
// corner; the size comes from the "w" and "h" props.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}

// Find returns the first entity of the given type.
func (l *Level) Find(typ string) (Entity, bool) {
	for _, e := range l.Entities {
		if e.Type == typ {
			return e, true
		}
	}
	return Entity{}, false
}

// Rect returns the named rectangle, or an error when the level lacks it.
func (l *Level) Rect(typ string) (cp.BB, error) {
	e, ok := l.Find(typ)
	if !ok {
		return cp.BB{}, fmt.Errorf("level %s: missing %q", l.Name, typ)
	}
	return e.Bounds(), nil
}

func (l *Level) Bounds() cp.BB {
	return cp.BB{L: 0, B: 0, R: float64(l.Width), T: float64(l.Height)}
}

func (e Entity) Bounds() cp.BB {
	x, y := float64(e.X), float64(e.Y)
	return cp.BB{L: x, B: y, R: x + e.Float("w"), T: y + e.Float("h")}
}

// Float reads a numeric prop; JSON numbers decode as float64.
func (e Entity) Float(key string) float64 {
	if v, ok := e.Props[key].(float64); ok {
		return v
	}
	return 0
}

func (e Entity) Text(key string) string {
	if v, ok := e.Props[key].(string); ok {
		return v
	}
	return ""
}
