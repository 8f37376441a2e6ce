package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/slimegame/common"
	"github.com/milk9111/slimegame/ecs"
	"github.com/milk9111/slimegame/ecs/component"
	"github.com/milk9111/slimegame/prefabs"
)

// palette holds the debug colors for every drawable kind.
type palette struct {
	player  color.Color
	enemies map[component.EnemyType]color.Color
}

func loadPalette(game *prefabs.GameSpec) (palette, error) {
	enemies, err := prefabs.LoadEnemySpecs()
	if err != nil {
		return palette{}, err
	}
	p := palette{
		player:  game.Player.Color,
		enemies: make(map[component.EnemyType]color.Color),
	}
	for _, e := range enemies.Enemies {
		t, err := component.ParseEnemyType(e.Type)
		if err != nil {
			return palette{}, err
		}
		p.enemies[t] = e.Color
	}
	return p, nil
}

func (p palette) enemy(t component.EnemyType) color.Color {
	if c, ok := p.enemies[t]; ok {
		return c
	}
	return colornames.Red
}

// drawWorld renders the arena centered on the camera anchor.
func (p palette) drawWorld(screen *ebiten.Image, w *ecs.World, camera common.Vec2) {
	screen.Fill(colornames.Black)
	toScreen := func(v common.Vec2) (float32, float32) {
		return float32(v.X - camera.X + baseWidth/2), float32(v.Y - camera.Y + baseHeight/2)
	}

	ecs.ForEach2(w, component.KillzoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, kz *component.Killzone, tr *component.Transform) {
		x, y := toScreen(common.Vec2{X: tr.X - kz.Width/2, Y: tr.Y - kz.Height/2})
		vector.DrawFilledRect(screen, x, y, float32(kz.Width), float32(kz.Height), color.RGBA{R: 255, A: 48}, false)
	})

	ecs.ForEach(w, component.LaserComponent.Kind(), func(_ ecs.Entity, beam *component.Laser) {
		ax, ay := toScreen(beam.A)
		bx, by := toScreen(beam.B)
		vector.StrokeLine(screen, ax, ay, bx, by, float32(2*beam.Radius), colornames.Cyan, true)
	})

	ecs.ForEach2(w, component.LightningMarkerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, m *component.LightningMarker, tr *component.Transform) {
		x, y := toScreen(tr.Pos())
		vector.StrokeCircle(screen, x, y, float32(m.Radius), 2, colornames.Yellow, true)
	})

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, en *component.Enemy, tr *component.Transform, h *component.Health) {
		c := p.enemy(en.Type)
		if h.Flashing {
			c = colornames.White
		}
		drawBody(screen, w, e, toScreen, tr, c)
	})

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, _ *component.Player, tr *component.Transform, h *component.Health) {
		c := p.player
		if h.Flashing {
			c = colornames.White
		}
		drawBody(screen, w, e, toScreen, tr, c)
		if h.Max > 0 {
			x, y := toScreen(tr.Pos())
			frac := float32(max(h.Current, 0) / h.Max)
			vector.DrawFilledRect(screen, x-16, y-24, 32*frac, 3, colornames.Lime, false)
		}
	})

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Projectile, tr *component.Transform) {
		drawBody(screen, w, e, toScreen, tr, colornames.Orange)
	})
}

func drawBody(screen *ebiten.Image, w *ecs.World, e ecs.Entity, toScreen func(common.Vec2) (float32, float32), tr *component.Transform, c color.Color) {
	r := float32(4)
	if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok && col.Radius > 0 {
		r = float32(col.Radius)
	}
	x, y := toScreen(tr.Pos())
	vector.DrawFilledCircle(screen, x, y, r, c, true)
}
