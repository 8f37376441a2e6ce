package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/slimegame/arena"
	"github.com/milk9111/slimegame/prefabs"
	"github.com/milk9111/slimegame/progression"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	ticksPerSecond = 60
	tickDelta      = time.Second / ticksPerSecond

	appName = "slimegame"
)

type screen int

const (
	screenMenu screen = iota
	screenPlaying
	screenResult
)

type Options struct {
	Level int
	Seed  uint64
	Debug bool
	Fresh bool
	Watch bool
}

type Game struct {
	opts Options

	store   *progression.Store
	shop    *progression.Shop
	data    progression.GameData
	watcher *prefabs.Watcher

	// defaults is the new-game snapshot built from game.yaml.
	defaults progression.GameData

	screen  screen
	menu    menu
	session *arena.Session
	palette palette
	result  progression.LevelResult
	notice  string
}

func NewGame(opts Options) (*Game, error) {
	shop, err := progression.LoadShop()
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:  opts,
		store: progression.OpenStore(appName),
		shop:  shop,
	}

	game, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, err
	}
	g.defaults = progression.DefaultFrom(game.Defaults)
	if opts.Fresh {
		if err := g.store.Reset(g.defaults); err != nil {
			log.Printf("reset save: %v", err)
		}
	}
	g.data = g.store.LoadOrDefault(g.defaults)

	if g.palette, err = loadPalette(game); err != nil {
		return nil, err
	}

	if opts.Watch {
		if g.watcher, err = prefabs.NewWatcher(overrideDirs()...); err != nil {
			log.Printf("watch prefabs: %v", err)
		}
	}

	g.menu = newMenu(g.shop)
	if opts.Level > 0 {
		if err := g.start(opts.Level); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// overrideDirs lists the on-disk prefab directories that exist.
func overrideDirs() []string {
	var dirs []string
	for _, d := range []string{prefabs.OverrideDir, filepath.Join(prefabs.OverrideDir, "scripts")} {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	switch g.screen {
	case screenMenu:
		g.updateMenu()
	case screenPlaying:
		g.updatePlaying()
	case screenResult:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.screen = screenMenu
		}
	}
	return nil
}

func (g *Game) updateMenu() {
	g.menu.update()
	if !g.menu.activated() {
		return
	}

	item := g.menu.selected()
	switch item.kind {
	case itemLevel:
		if err := g.start(item.level); err != nil {
			g.notice = err.Error()
		}
	case itemUpgrade:
		g.purchase(item.upgrade)
	case itemNewGame:
		if err := g.store.Reset(g.defaults); err != nil {
			g.notice = err.Error()
			return
		}
		g.data = g.defaults
		g.notice = "new game"
	}
}

func (g *Game) purchase(u progression.Upgrade) {
	err := g.shop.Purchase(&g.data, u.ID)
	switch {
	case errors.Is(err, progression.ErrInsufficientFunds):
		g.notice = fmt.Sprintf("%s costs $%d", u.Name, u.Price)
		return
	case err != nil:
		g.notice = err.Error()
		return
	}
	g.notice = "bought " + u.Name
	g.save()
}

func (g *Game) start(level int) error {
	seed := g.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	s, err := arena.NewSession(arena.Config{Level: level, Data: &g.data, Seed: seed})
	if err != nil {
		return err
	}
	g.session = s
	g.screen = screenPlaying
	g.notice = ""
	return nil
}

func (g *Game) updatePlaying() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.finish(progression.ResultLost)
		return
	}

	for _, c := range controls {
		g.session.SetInput(c.slot, c.read())
	}
	g.session.Tick(tickDelta)

	if r := g.session.Result(); r != progression.ResultNone {
		g.finish(r)
	}
}

func (g *Game) finish(r progression.LevelResult) {
	if err := progression.Apply(&g.data, r); err != nil {
		log.Printf("apply result: %v", err)
	}
	g.save()
	g.result = r
	g.screen = screenResult
}

func (g *Game) save() {
	if err := g.store.Save(g.data); err != nil {
		log.Printf("save: %v", err)
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadShop(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch prefabs: %v", err)
		default:
			return
		}
	}
}

// reloadShop picks up edited upgrade specs and scripts; level and enemy
// specs are read again on every level start anyway.
func (g *Game) reloadShop(c prefabs.Change) {
	if c.Kind != prefabs.ChangeScript && c.Name != "upgrades.yaml" {
		return
	}
	shop, err := progression.LoadShop()
	if err != nil {
		log.Printf("reload %s: %v", c.Path, err)
		return
	}
	g.shop = shop
	g.menu = newMenu(shop)
	log.Printf("reloaded %s", c.Path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.screen {
	case screenMenu:
		g.menu.draw(screen, g.data, g.notice)
	case screenPlaying:
		g.palette.drawWorld(screen, g.session.World(), g.data.CameraAnchor)
		if g.opts.Debug {
			drawPhysicsDebug(screen, g.session.Space(), g.data.CameraAnchor)
		}
		g.drawHUD(screen)
	case screenResult:
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Level %d %s\n\nmoney: $%d\nunlocked: %d\n\n[enter] menu",
			g.session.Level(), g.result, g.data.Money, g.data.Level))
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.session.Stats()
	msg := fmt.Sprintf("Level %d  %s  $%d  enemies %d", g.session.Level(), g.session.Status(), g.data.Money, st.Enemies)
	if g.opts.Debug {
		msg += fmt.Sprintf("\nFPS: %.2f  ticks %d  spawned %d  despawned %d", ebiten.ActualFPS(), st.Ticks, st.Spawned, st.Despawned)
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
