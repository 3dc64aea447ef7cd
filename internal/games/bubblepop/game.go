// Package bubblepop is the bubble shooter game client. It flies the player
// bubble across the field and hands every contact to the engine controller,
// then scores the round and moves between fields.
package bubblepop

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblepop/internal/audio"
	"github.com/vovakirdan/bubblepop/internal/config"
	platformcore "github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/levels"
	"github.com/vovakirdan/bubblepop/internal/registry"
)

// Mode selects how fields follow each other.
type Mode int

const (
	ModeCampaign Mode = iota // Play the level set in order
	ModeEndless              // Generated fields, harder as the score grows
)

// RoundRecord is one resolved round, reported to the round hook.
type RoundRecord struct {
	GameID  string
	Level   string
	Round   int
	Outcome string
	Booster string
	Popped  int
	Dropped int
	Score   int
}

// Package-level collaborators, set from the command line before a game starts.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	roundHook        func(RoundRecord)
	levelSet         levels.Set
)

var (
	logger = log.New(io.Discard)
	sound  = audio.Player(audio.Nop{})
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger sets the logger games report rounds to.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetAudio sets the sound player for engine events.
func SetAudio(p audio.Player) {
	if p == nil {
		p = audio.Nop{}
	}
	sound = p
}

// SetRoundHook registers a function called after every resolved round.
func SetRoundHook(fn func(RoundRecord)) {
	roundHook = fn
}

// SetLevels replaces the level set used by campaign games. nil restores the default.
func SetLevels(s levels.Set) {
	levelSet = s
}

// Levels returns the level set campaign games play.
func Levels() levels.Set {
	if levelSet == nil {
		return levels.DefaultSet()
	}
	return levelSet
}

func init() {
	registry.Register("bubblepop", func() registry.Game {
		return New()
	})
	registry.Register("bubblepop_endless", func() registry.Game {
		return NewEndless()
	})
}

// Visual timing, in ticks.
const (
	flashTicks   = 12
	messageTicks = 90
)

// flash marks a cell that just popped or dropped.
type flash struct {
	cell  core.Cell
	glyph rune
	color core.Color
	ttl   int
}

// Game implements the bubble shooter.
type Game struct {
	mode Mode

	// Configuration
	runtime    platformcore.RuntimeConfig
	cfg        config.BubblePopConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	// Campaign progress
	levels     []levels.Level
	levelIndex int
	level      *levels.Level // nil in endless mode
	fields     int           // Fields cleared this session

	// Current field
	ctrl      *core.Controller
	launch    core.Point
	dangerRow int
	flight    flight
	angle     float64 // Degrees from straight up, positive to the right
	hint      *core.Shot

	// Status
	tick     int
	score    int
	shots    int
	boosters int
	rounds   int
	won      bool
	gameOver bool
	paused   bool
	loadErr  error
	onRound  func(RoundRecord) // Overrides the package round hook

	// Presentation
	flashes    []flash
	message    string
	messageTTL int
	originX    int
	originY    int
	tooSmall   bool
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// OnRound sets a round hook for this game only. It takes precedence over
// SetRoundHook, so concurrent sessions can record rounds separately.
func (g *Game) OnRound(fn func(RoundRecord)) {
	g.onRound = fn
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "bubblepop_endless"
	}
	return "bubblepop"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Bubble Pop (Endless)"
	}
	return "Bubble Pop"
}

// Reset starts a new session.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.cfg = loadConfig()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.tick = 0
	g.score = 0
	g.boosters = 0
	g.rounds = 0
	g.fields = 0
	g.won = false
	g.gameOver = false
	g.paused = false
	g.loadErr = nil
	g.level = nil
	g.ctrl = nil
	g.message = ""
	g.messageTTL = 0

	if g.mode == ModeEndless {
		g.newEndlessField()
		return
	}

	all, err := Levels().LoadAll()
	if err == nil && len(all) == 0 {
		err = levels.ErrNotFound
	}
	if err != nil {
		g.fail(fmt.Errorf("load levels: %w", err))
		return
	}
	g.levels = all
	g.levelIndex = 0
	for i, l := range all {
		if l.ID == cfg.Level {
			g.levelIndex = i
		}
	}
	g.startLevel()
}

func loadConfig() config.BubblePopConfig {
	cfg, err := config.LoadBubblePop(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultBubblePopConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBubblePopPreset(&cfg, difficultyPreset)
	}
	return cfg
}

func (g *Game) fail(err error) {
	logger.Error("cannot start game", "game", g.ID(), "err", err)
	g.loadErr = err
	g.gameOver = true
}

func (g *Game) startLevel() {
	lvl := &g.levels[g.levelIndex]
	field, err := lvl.Field()
	if err != nil {
		g.fail(fmt.Errorf("level %s: %w", lvl.ID, err))
		return
	}
	g.level = lvl
	g.shots = lvl.Shots
	g.boosters += lvl.Boosters
	g.startField(field, lvl.NewFeed(g.rng.Int63()), lvl.DangerRow)
	g.setMessage(lvl.Name)
	logger.Debug("level started", "level", lvl.ID, "bubbles", field.Len(), "shots", g.shots)
}

func (g *Game) newEndlessField() {
	topo, ok := core.ParseTopology(g.cfg.Field.Topology)
	if !ok {
		topo = core.HexGrid{}
	}
	colors := g.difficulty.Colors(g.cfg.Gameplay.Colors, len(core.Palette()), g.score, g.tick)
	filled := g.difficulty.FilledRows(g.cfg.Field.FilledRows, g.cfg.Field.DangerRow, g.score, g.tick)

	field, err := randomField(g.rng, topo, g.cfg.Field.Cols, g.cfg.Field.Rows, filled, colors)
	if err != nil {
		g.fail(fmt.Errorf("endless field: %w", err))
		return
	}
	g.shots = g.cfg.Gameplay.Shots
	g.startField(field, core.NewRandomFeed(g.rng.Int63(), colors), g.cfg.Field.DangerRow)
	logger.Debug("field generated", "colors", colors, "rows", filled, "fields", g.fields)
}

// randomField fills the top rows of a field with random colors.
func randomField(rng *rand.Rand, topo core.Topology, cols, rows, filled, colors int) (*core.Graph, error) {
	palette := core.Palette()
	if colors <= 0 || colors > len(palette) {
		colors = len(palette)
	}
	layout := make([]string, filled)
	for r := range layout {
		var sb strings.Builder
		for c := 0; c < cols; c++ {
			sb.WriteRune(palette[rng.Intn(colors)].Char())
		}
		layout[r] = sb.String()
	}
	return core.BuildField(topo, cols, rows, layout)
}

func (g *Game) startField(field *core.Graph, feed core.Feed, dangerRow int) {
	policy := core.Policy{
		MinMatch:      g.cfg.Gameplay.MinMatch,
		GateInclusive: g.cfg.Booster.GateInclusive,
	}
	topo := field.Topology()
	g.launch = core.Pt(topo.Width(field.Cols())/2, float64(field.Rows())*topo.RowHeight()+0.5)
	g.ctrl = core.NewController(field, feed, policy, g.launch)
	g.dangerRow = dangerRow
	g.flight = flight{}
	g.angle = 0
	g.hint = nil
	g.flashes = g.flashes[:0]
	g.layout()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if in.Has(platformcore.ActionRestart) && g.gameOver {
		cfg := g.runtime
		cfg.Seed = g.rng.Int63()
		g.Reset(cfg)
		return platformcore.StepResult{State: g.State()}
	}
	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused || g.tooSmall || g.ctrl == nil {
		return platformcore.StepResult{State: g.State()}
	}

	g.tickEffects()

	rounds := 0
	if g.flight.active {
		if g.stepFlight() {
			rounds++
		}
	} else if !in.Empty() {
		g.handleAim(in)
	}
	if g.ctrl != nil {
		g.drainEvents()
	}
	return platformcore.StepResult{State: g.State(), Rounds: rounds}
}

func (g *Game) handleAim(in platformcore.InputFrame) {
	maxAngle := g.cfg.Physics.MaxAngle
	if in.Has(platformcore.ActionLeft) {
		g.angle = clampAngle(g.angle-g.cfg.Physics.AimStep, maxAngle)
	}
	if in.Has(platformcore.ActionRight) {
		g.angle = clampAngle(g.angle+g.cfg.Physics.AimStep, maxAngle)
	}
	if in.Has(platformcore.ActionSwitch) && g.ctrl.Switch() {
		g.hint = nil
	}
	if in.Has(platformcore.ActionBooster) {
		g.loadBooster()
	}
	if in.Has(platformcore.ActionHint) {
		g.showHint()
	}
	if in.Has(platformcore.ActionFire) {
		g.fire()
	}
}

func (g *Game) loadBooster() {
	if !g.cfg.Booster.Enabled || g.boosters == 0 {
		return
	}
	if g.ctrl.Player().Booster != core.BoosterStandard {
		return
	}
	if err := g.ctrl.LoadBooster(core.BoosterColorMatch); err != nil {
		logger.Debug("booster refused", "err", err)
		return
	}
	g.boosters--
	g.hint = nil
}

func (g *Game) showHint() {
	p := g.ctrl.Player()
	if p.Booster != core.BoosterStandard {
		return
	}
	shot, ok := core.BestShot(g.ctrl.Graph(), p.Color, g.ctrl.Policy().MinGroup())
	if !ok {
		return
	}
	g.hint = &shot
	g.angle = aimAt(g.launch, shot.At, g.cfg.Physics.MaxAngle)
}

func (g *Game) fire() {
	rad := g.angle * math.Pi / 180
	if err := g.ctrl.Aim(math.Sin(rad), -math.Cos(rad)); err != nil {
		logger.Debug("aim refused", "err", err)
		return
	}
	if err := g.ctrl.Shoot(); err != nil {
		logger.Debug("shot refused", "err", err)
		return
	}
	g.flight = launchFlight(g.launch, g.angle)
	g.hint = nil
	if g.shots > 0 {
		g.shots--
	}
}

// stepFlight moves the bubble in flight and resolves a contact. It reports
// whether a round finished.
func (g *Game) stepFlight() bool {
	speed := g.difficulty.Speed(g.cfg.Physics.Speed, g.score, g.tick)
	h := g.flight.advance(g.ctrl.Graph(), speed, g.cfg.Physics.CollisionFactor)

	var (
		res core.RoundResult
		err error
	)
	switch h.kind {
	case hitNone:
		if err := g.ctrl.Move(g.flight.pos); err != nil {
			logger.Debug("move refused", "err", err)
		}
		return false
	case hitBubble:
		res, err = g.ctrl.Collide(h.at, h.struck)
	case hitCeiling:
		res, err = g.ctrl.CollideCeiling(h.at)
	}
	if err != nil {
		logger.Error("collision failed", "round", g.ctrl.Round(), "err", err)
		g.flight.active = false
		return false
	}
	if res.Outcome == core.OutcomeGated {
		return false
	}

	g.flight.active = false
	g.applyRound(res)
	return true
}

// roundPoints scores the field bubbles a round cleared. A booster adds its
// bonus per cleared bubble; its own spent node is never counted.
func roundPoints(res core.RoundResult, s config.ScoringConfig) int {
	points := len(res.Popped)*s.PopPoints + len(res.Floaters)*s.DropPoints
	if res.Booster != core.BoosterStandard {
		points += res.Cleared() * s.BoosterBonus
	}
	return points
}

// applyRound scores a resolved round and checks the end conditions.
func (g *Game) applyRound(res core.RoundResult) {
	g.drainEvents()
	g.rounds++

	points := roundPoints(res, g.cfg.Scoring)
	g.score += points
	if points > 0 {
		g.setMessage(fmt.Sprintf("+%d", points))
	}

	logger.Debug("round resolved",
		"round", res.Round,
		"outcome", res.Outcome,
		"booster", res.Booster,
		"cell", res.Cell,
		"popped", len(res.Popped),
		"dropped", len(res.Floaters),
		"score", g.score,
	)
	hook := g.onRound
	if hook == nil {
		hook = roundHook
	}
	if hook != nil {
		hook(RoundRecord{
			GameID:  g.ID(),
			Level:   g.levelID(),
			Round:   res.Round,
			Outcome: res.Outcome.String(),
			Booster: res.Booster.String(),
			Popped:  len(res.Popped),
			Dropped: len(res.Floaters),
			Score:   g.score,
		})
	}

	if every := g.cfg.Gameplay.BoosterEvery; g.cfg.Booster.Enabled && every > 0 && g.rounds%every == 0 {
		g.boosters++
		g.setMessage("Booster ready [B]")
	}

	field := g.ctrl.Graph()
	switch {
	case field.IsEmpty():
		g.fieldCleared()
	case field.LowestRow() >= g.dangerRow:
		g.endGame("Danger line crossed")
	case g.shots == 0:
		g.endGame("Out of shots")
	}
}

func (g *Game) fieldCleared() {
	g.fields++
	g.score += g.shots * g.cfg.Scoring.ShotBonus
	sound.Play(audio.SoundLevelWon)
	logger.Info("field cleared", "game", g.ID(), "level", g.levelID(), "score", g.score)

	if g.mode == ModeEndless {
		g.newEndlessField()
		g.setMessage("Field cleared!")
		return
	}
	g.levelIndex++
	if g.levelIndex >= len(g.levels) {
		g.won = true
		g.gameOver = true
		g.setMessage("All levels cleared!")
		return
	}
	g.startLevel()
}

func (g *Game) endGame(reason string) {
	g.gameOver = true
	g.setMessage(reason)
	sound.Play(audio.SoundGameOver)
	logger.Info("game over", "game", g.ID(), "reason", reason, "score", g.score, "rounds", g.rounds)
}

func (g *Game) drainEvents() {
	events := g.ctrl.Events().Consume()
	audio.Drain(sound, events)
	for _, e := range events {
		switch e.Kind {
		case core.EventMatched:
			g.flashes = append(g.flashes, flash{cell: e.Cell, glyph: '*', color: e.Color, ttl: flashTicks})
		case core.EventFalling:
			g.flashes = append(g.flashes, flash{cell: e.Cell, glyph: '°', color: e.Color, ttl: flashTicks})
		}
	}
}

func (g *Game) tickEffects() {
	kept := g.flashes[:0]
	for _, f := range g.flashes {
		if f.ttl--; f.ttl > 0 {
			kept = append(kept, f)
		}
	}
	g.flashes = kept
	if g.messageTTL > 0 {
		g.messageTTL--
	}
}

func (g *Game) setMessage(msg string) {
	g.message = msg
	g.messageTTL = messageTicks
}

func (g *Game) levelID() string {
	if g.level == nil {
		return ""
	}
	return g.level.ID
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score,
		Level:    g.levelID(),
		Shots:    g.shots,
		Won:      g.won,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Controller returns the engine controller of the current field, nil before
// Reset or after a load failure.
func (g *Game) Controller() *core.Controller {
	return g.ctrl
}

// Angle returns the aim angle in degrees from straight up.
func (g *Game) Angle() float64 { return g.angle }

// Boosters returns the number of boosters in stock.
func (g *Game) Boosters() int { return g.boosters }

// Rounds returns the number of rounds resolved this session.
func (g *Game) Rounds() int { return g.rounds }

// Err returns why the game could not start, if it could not.
func (g *Game) Err() error { return g.loadErr }
