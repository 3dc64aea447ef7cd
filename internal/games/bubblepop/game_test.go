package bubblepop

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/bubblepop/internal/config"
	platformcore "github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/levels"
	"github.com/vovakirdan/bubblepop/internal/registry"
)

const testConfig = `
gameplay:
  booster_every: 0
difficulty:
  enabled: false
`

// Two green rows under a red anchor row. Green then red straight up clears it.
const clearLevel = `id: g01
topology: square
size:
  cols: 3
  rows: 6
layout:
  - "RRR"
  - "GG."
shots: 5
feed: [green, red]
`

// Nothing pops; the second yellow lands on the danger row.
const dangerLevel = `id: g02
topology: square
size:
  cols: 3
  rows: 4
layout:
  - "RGB"
danger_row: 2
feed: [yellow]
`

const boosterLevel = `id: g03
topology: square
size:
  cols: 3
  rows: 6
layout:
  - "RGB"
boosters: 1
feed: [yellow]
`

func setup(t *testing.T, files map[string]string, cfgYAML string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bubblepop.yaml")
	if err := os.WriteFile(path, []byte(cfgYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)

	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	SetLevels(levels.Set{levels.NewFSLoader(fsys, "test")})

	t.Cleanup(func() {
		SetConfigPath("")
		SetLevels(nil)
		SetRoundHook(nil)
	})
}

func runtimeConfig(level string) platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7, Level: level}
}

func press(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// shootAndWait fires straight ahead and steps until the round resolves.
func shootAndWait(t *testing.T, g *Game) {
	t.Helper()
	before := g.Rounds()
	g.Step(press(platformcore.ActionFire))
	for i := 0; i < 200 && g.Rounds() == before; i++ {
		g.Step(press())
	}
	if g.Rounds() == before {
		t.Fatalf("round did not resolve (flying=%v pos=%v)", g.flight.active, g.flight.pos)
	}
}

func TestGameRegistered(t *testing.T) {
	for _, id := range []string{"bubblepop", "bubblepop_endless"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestGameClearsLevel(t *testing.T) {
	setup(t, map[string]string{"g01.yaml": clearLevel}, testConfig)

	var records []RoundRecord
	SetRoundHook(func(r RoundRecord) { records = append(records, r) })

	g := New()
	g.Reset(runtimeConfig(""))
	if g.Controller() == nil {
		t.Fatalf("Controller() = nil, err %v", g.Err())
	}
	if s := g.State(); s.Level != "g01" || s.Shots != 5 {
		t.Fatalf("State() = %+v, expected level g01 with 5 shots", s)
	}

	shootAndWait(t, g)
	if g.State().Score != 30 {
		t.Errorf("score after green = %d, expected 30", g.State().Score)
	}
	if g.Controller().Graph().Len() != 3 {
		t.Errorf("bubbles after green = %d, expected 3", g.Controller().Graph().Len())
	}

	shootAndWait(t, g)
	s := g.State()
	if !s.Won || !s.GameOver {
		t.Fatalf("State() = %+v, expected won", s)
	}
	// 3 greens, 4 reds, 3 unused shots
	if s.Score != 30+40+150 {
		t.Errorf("Score = %d, expected 220", s.Score)
	}

	if len(records) != 2 {
		t.Fatalf("round hook called %d times, expected 2", len(records))
	}
	if r := records[0]; r.Level != "g01" || r.Popped != 3 || r.Outcome != "attached" || r.Round != 1 {
		t.Errorf("records[0] = %+v", r)
	}
}

func TestGameOnRoundOverridesHook(t *testing.T) {
	setup(t, map[string]string{"g01.yaml": clearLevel}, testConfig)

	global, local := 0, 0
	SetRoundHook(func(RoundRecord) { global++ })

	g := New()
	g.OnRound(func(r RoundRecord) {
		local++
		if r.GameID != "bubblepop" {
			t.Errorf("GameID = %q, expected bubblepop", r.GameID)
		}
	})
	g.Reset(runtimeConfig(""))
	shootAndWait(t, g)

	if local != 1 || global != 0 {
		t.Errorf("hooks called local=%d global=%d, expected 1 and 0", local, global)
	}
}

func TestGameDangerRow(t *testing.T) {
	setup(t, map[string]string{"g02.yaml": dangerLevel}, testConfig)

	g := New()
	g.Reset(runtimeConfig("g02"))

	shootAndWait(t, g)
	if g.State().GameOver {
		t.Fatal("game over after first shot")
	}
	shootAndWait(t, g)
	if !g.State().GameOver || g.State().Won {
		t.Errorf("State() = %+v, expected lost", g.State())
	}
	if !strings.Contains(g.message, "Danger") {
		t.Errorf("message = %q, expected danger", g.message)
	}

	// Restart brings the level back.
	g.Step(press(platformcore.ActionRestart))
	if g.State().GameOver || g.Controller().Graph().Len() != 3 {
		t.Errorf("after restart: %+v with %d bubbles", g.State(), g.Controller().Graph().Len())
	}
}

func TestGameOutOfShots(t *testing.T) {
	level := strings.Replace(dangerLevel, "danger_row: 2", "shots: 1", 1)
	setup(t, map[string]string{"g02.yaml": level}, testConfig)

	g := New()
	g.Reset(runtimeConfig(""))
	shootAndWait(t, g)

	if !g.State().GameOver || g.State().Shots != 0 {
		t.Errorf("State() = %+v, expected out of shots", g.State())
	}
}

func TestGameBooster(t *testing.T) {
	setup(t, map[string]string{"g03.yaml": boosterLevel}, testConfig)

	g := New()
	g.Reset(runtimeConfig(""))
	if g.Boosters() != 1 {
		t.Fatalf("Boosters() = %d, expected 1", g.Boosters())
	}

	g.Step(press(platformcore.ActionBooster))
	if g.Boosters() != 0 || g.Controller().Player().Booster != core.BoosterColorMatch {
		t.Fatalf("booster not loaded: stock %d, player %+v", g.Boosters(), g.Controller().Player())
	}

	// A loaded booster cannot be swapped out.
	g.Step(press(platformcore.ActionSwitch))
	if g.Controller().Player().Booster != core.BoosterColorMatch {
		t.Error("Switch replaced the booster")
	}

	shootAndWait(t, g)
	// The green and the booster node pop, plus the booster bonus.
	if g.State().Score != 2*10+2*5 {
		t.Errorf("Score = %d, expected 30", g.State().Score)
	}
	if got := core.Layout(g.Controller().Graph()); len(got) != 1 || got[0] != "R.B" {
		t.Errorf("Layout() = %v, expected [R.B]", got)
	}
	if g.Controller().Player().Color != core.ColorYellow {
		t.Errorf("next player = %v, expected the displaced yellow", g.Controller().Player().Color)
	}
}

func TestGameAimAndHint(t *testing.T) {
	setup(t, map[string]string{"g01.yaml": clearLevel}, testConfig)

	g := New()
	g.Reset(runtimeConfig(""))

	for i := 0; i < 100; i++ {
		g.Step(press(platformcore.ActionRight))
	}
	if g.Angle() != g.cfg.Physics.MaxAngle {
		t.Errorf("Angle() = %v, expected clamp at %v", g.Angle(), g.cfg.Physics.MaxAngle)
	}

	g.Step(press(platformcore.ActionHint))
	if g.hint == nil {
		t.Fatal("hint = nil")
	}
	if g.hint.Cleared() != 3 {
		t.Errorf("hint clears %d, expected 3", g.hint.Cleared())
	}
	if g.Angle() >= 0 {
		t.Errorf("Angle() = %v, expected left of center toward %v", g.Angle(), g.hint.Cell)
	}
}

func TestGamePause(t *testing.T) {
	setup(t, map[string]string{"g01.yaml": clearLevel}, testConfig)

	g := New()
	g.Reset(runtimeConfig(""))
	g.Step(press(platformcore.ActionFire))
	pos := g.flight.pos

	g.Step(press(platformcore.ActionPause))
	for i := 0; i < 10; i++ {
		g.Step(press())
	}
	if !g.State().Paused || g.flight.pos != pos {
		t.Errorf("paused = %v, flight moved from %v to %v", g.State().Paused, pos, g.flight.pos)
	}
	g.Step(press(platformcore.ActionPause))
	g.Step(press())
	if g.flight.pos == pos {
		t.Error("flight did not resume")
	}
}

func TestGameEndless(t *testing.T) {
	setup(t, nil, testConfig)

	g := NewEndless()
	g.Reset(runtimeConfig(""))
	if g.Controller() == nil {
		t.Fatalf("Controller() = nil, err %v", g.Err())
	}

	field := g.Controller().Graph()
	if field.Len() != g.cfg.Field.Cols*g.cfg.Field.FilledRows {
		t.Errorf("Len() = %d, expected %d", field.Len(), g.cfg.Field.Cols*g.cfg.Field.FilledRows)
	}
	if len(field.Colors()) > g.cfg.Gameplay.Colors {
		t.Errorf("Colors() = %v, expected at most %d", field.Colors(), g.cfg.Gameplay.Colors)
	}
	if s := g.State(); s.Level != "" || s.Shots != g.cfg.Gameplay.Shots {
		t.Errorf("State() = %+v", s)
	}
}

func TestGameMissingLevels(t *testing.T) {
	setup(t, nil, testConfig)

	g := New()
	g.Reset(runtimeConfig(""))
	if g.Err() == nil || !g.State().GameOver {
		t.Errorf("Err() = %v, expected a load error", g.Err())
	}

	s := platformcore.NewScreen(80, 24)
	g.Render(s)
	if !strings.Contains(s.String(), "Cannot start game") {
		t.Error("Render() did not report the load error")
	}
}

func TestGameRender(t *testing.T) {
	setup(t, map[string]string{"g01.yaml": clearLevel}, testConfig)

	g := New()
	g.Reset(runtimeConfig(""))

	s := platformcore.NewScreen(80, 24)
	g.Render(s)

	if !strings.HasPrefix(strings.TrimSpace(s.Row(0)), "Score: 0") {
		t.Errorf("Row(0) = %q, expected the score first", s.Row(0))
	}
	// Cell (0,0) is the top-left corner of the field.
	c := s.GetCell(g.originX, g.originY)
	if c.Rune != BubbleChar || c.Color != platformcore.ColorBrightRed {
		t.Errorf("GetCell(origin) = %+v, expected a red bubble", c)
	}
	// Launcher shows the green player bubble.
	lx, ly := g.toScreen(g.launch)
	if c := s.GetCell(lx, ly); c.Rune != BubbleChar || c.Color != platformcore.ColorBrightGreen {
		t.Errorf("launcher = %+v, expected a green bubble", c)
	}
}

func TestGameTooSmall(t *testing.T) {
	setup(t, map[string]string{"g01.yaml": clearLevel}, testConfig)

	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 5, ScreenH: 5, Seed: 1})
	g.Step(press(platformcore.ActionFire))
	if g.flight.active {
		t.Error("fired on a screen that is too small")
	}

	g.Render(platformcore.NewScreen(5, 5))

	// A resized screen lays the field out again and play resumes.
	g.Render(platformcore.NewScreen(80, 24))
	g.Step(press(platformcore.ActionFire))
	if !g.flight.active {
		t.Error("did not fire after the screen grew")
	}
}

func TestGameDeterminism(t *testing.T) {
	setup(t, nil, testConfig)

	inputs := make([]platformcore.InputFrame, 400)
	for i := range inputs {
		inputs[i] = platformcore.NewInputFrame()
		switch {
		case i%40 == 0:
			inputs[i].Set(platformcore.ActionFire)
		case i%40 < 5:
			inputs[i].Set(platformcore.ActionLeft)
		case i%40 > 35:
			inputs[i].Set(platformcore.ActionRight)
		}
	}

	run := func() Snapshot {
		g := NewEndless()
		g.Reset(runtimeConfig(""))
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("hashes differ: %d vs %d", a.Hash(), b.Hash())
	}
	if a.Rounds == 0 {
		t.Error("no rounds resolved")
	}
}

func TestRoundPointsBooster(t *testing.T) {
	field, err := core.BuildField(core.SquareGrid{}, 5, 4, []string{
		"RRBGG",
		"R.B.G",
	})
	if err != nil {
		t.Fatalf("BuildField() error = %v", err)
	}
	ctrl := core.NewController(field, core.NewSequenceFeed(core.ColorGreen), core.DefaultPolicy(), core.Pt(2.5, 5))
	if err := ctrl.LoadBooster(core.BoosterColorMatch); err != nil {
		t.Fatalf("LoadBooster() error = %v", err)
	}
	if err := ctrl.Aim(0, -1); err != nil {
		t.Fatalf("Aim() error = %v", err)
	}
	if err := ctrl.Shoot(); err != nil {
		t.Fatalf("Shoot() error = %v", err)
	}
	struck, _ := field.At(core.At(0, 1))
	res, err := ctrl.Collide(core.Pt(1.5, 1.5), struck)
	if err != nil {
		t.Fatalf("Collide() error = %v", err)
	}

	// Three reds and two blues; the spent booster node scores nothing.
	scoring := config.ScoringConfig{PopPoints: 10, DropPoints: 20, BoosterBonus: 5}
	if got := roundPoints(res, scoring); got != 5*10+5*5 {
		t.Errorf("roundPoints() = %d, expected %d", got, 5*10+5*5)
	}

	res.Booster = core.BoosterStandard
	if got := roundPoints(res, scoring); got != 50 {
		t.Errorf("roundPoints() without booster = %d, expected 50", got)
	}
}
