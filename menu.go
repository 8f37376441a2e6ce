package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/slimegame/prefabs"
	"github.com/milk9111/slimegame/progression"
)

type itemKind int

const (
	itemLevel itemKind = iota
	itemUpgrade
	itemNewGame
)

type menuItem struct {
	kind    itemKind
	level   int
	upgrade progression.Upgrade
}

// menu is the text overlay for level select and the upgrade shop.
type menu struct {
	items  []menuItem
	cursor int
	fired  bool
}

func newMenu(shop *progression.Shop) menu {
	var items []menuItem
	for n := 1; n <= prefabs.LevelCount; n++ {
		items = append(items, menuItem{kind: itemLevel, level: n})
	}
	for _, u := range shop.Upgrades() {
		items = append(items, menuItem{kind: itemUpgrade, upgrade: u})
	}
	items = append(items, menuItem{kind: itemNewGame})
	return menu{items: items}
}

func (m *menu) update() {
	m.fired = false
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyW):
		m.cursor = (m.cursor + len(m.items) - 1) % len(m.items)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyS):
		m.cursor = (m.cursor + 1) % len(m.items)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		m.fired = true
	}
}

func (m *menu) activated() bool {
	return m.fired
}

func (m *menu) selected() menuItem {
	return m.items[m.cursor]
}

func (m *menu) draw(screen *ebiten.Image, data progression.GameData, notice string) {
	var b strings.Builder
	fmt.Fprintf(&b, "money: $%d   unlocked level: %d\n", data.Money, data.Level)
	fmt.Fprintf(&b, "gun %.0f dmg / %.2fs   lightning %.0f dmg x%.1f   laser %.0f dps\n\n",
		data.Gun.Damage, data.Gun.Cooldown.Seconds(), data.Lightning.Damage, data.Lightning.Size, data.Laser.Damage)

	for i, it := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		switch it.kind {
		case itemLevel:
			lock := ""
			if !data.Unlocked(it.level) {
				lock = " (locked)"
			}
			fmt.Fprintf(&b, "%sPlay level %d%s\n", cursor, it.level, lock)
		case itemUpgrade:
			fmt.Fprintf(&b, "%sBuy %s  $%d\n", cursor, it.upgrade.Name, it.upgrade.Price)
		case itemNewGame:
			fmt.Fprintf(&b, "%sNew game\n", cursor)
		}
	}

	if notice != "" {
		fmt.Fprintf(&b, "\n%s\n", notice)
	}
	ebitenutil.DebugPrint(screen, b.String())
}
