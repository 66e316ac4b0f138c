// Command walkthrough opens the showroom in a first-person raylib window.
// WASD walks, arrows look, the mouse hovers and clicks artifacts; Enter adds
// the open product card to the cart, Escape closes it. The cart is the same
// local store the showroom server serves.
package main

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"armoury-showroom/internal/audio"
	"armoury-showroom/internal/catalog"
	"armoury-showroom/internal/config"
	"armoury-showroom/internal/env"
	"armoury-showroom/internal/interact"
	"armoury-showroom/internal/locomotion"
	"armoury-showroom/internal/render"
	"armoury-showroom/internal/sceneindex"
	"armoury-showroom/internal/scenegraph"
	"armoury-showroom/internal/store"
)

const (
	windowWidth  = 1600
	windowHeight = 900
)

func main() {
	log := logrus.New()
	log.Out = os.Stdout

	_ = env.Load(".env")
	cfg := config.Load()

	ls, err := store.NewLocalStore(cfg.DataDir, log)
	if err != nil {
		log.WithError(err).Fatal("open local store")
	}
	cart := store.NewCart(ls)

	root := scenegraph.Showroom(scenegraph.DefaultShowroomOptions())
	ix := sceneindex.Build(root)
	log.WithField("artifacts", len(ix.Artifacts)).Info("scene indexed")

	spawn := locomotion.Pose{}
	if ix.Spawn != nil {
		spawn.Position = ix.Spawn.Position
		spawn.Yaw = ix.Spawn.Yaw
	}

	sink := render.NewSoundSink()
	defer sink.Close()
	steps := audio.NewPlayer(sink)

	var floor locomotion.FloorProber
	if ix.Walk != nil {
		floor = ix.Walk
	}
	ctrl := locomotion.New(spawn, ix.Bounds, floor, steps)

	state := &interact.State{}

	rl.InitWindow(windowWidth, windowHeight, "Лавка старьёвщика")
	defer rl.CloseWindow()
	rl.SetExitKey(rl.KeyNull) // ESC closes the product card, not the window
	rl.SetTargetFPS(60)

	cam := render.NewCamera()

	for !rl.WindowShouldClose() {
		dt := float64(rl.GetFrameTime())

		// The first qualifying interaction unlocks audio; failures retry on
		// the next one.
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) || rl.GetKeyPressed() != 0 {
			steps.TryUnlock()
		}

		// Pointer: hover feedback continuously, selection on click. Clicks
		// are not hit-tested while a modal covers the canvas.
		if state.NavEnabled() {
			hit := render.Pick(cam, rl.GetMousePosition(), root)
			key := interact.Resolve(hit)
			state.Hover(key)
			if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
				state.Click(key)
			}
		} else {
			if rl.IsKeyPressed(rl.KeyEnter) {
				if p, ok := catalog.ByObjectKey(state.Key()); ok {
					if err := cart.Add(store.CartItem{ID: p.ID, Title: p.Title, Price: p.Price, ObjectKey: state.Key()}); err != nil {
						log.WithError(err).Warn("add to cart failed")
					}
				}
				state.Close()
			}
			if rl.IsKeyPressed(rl.KeyEscape) {
				state.Close()
			}
		}

		ctrl.Suspended = !state.NavEnabled()
		ctrl.Step(render.ReadInput(), dt)

		if state.Mode() == interact.Hovering {
			ix.SetHover(state.Key())
		} else {
			ix.SetHover("")
		}
		ix.Animate(rl.GetTime())

		render.ApplyPose(&cam, ctrl.Pose)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		render.DrawScene(cam, root, ix)
		drawHUD(state, cart)
		rl.EndDrawing()
	}
}

func drawHUD(state *interact.State, cart *store.Cart) {
	status := "Наведи на артефакт и кликни"
	switch state.Mode() {
	case interact.Hovering:
		status = "Кликни: " + state.Key()
	case interact.ModalOpen:
		status = "Закрой карточку, чтобы продолжить"
	}
	rl.DrawText(status, 14, windowHeight-34, 20, rl.RayWhite)
	rl.DrawText("WASD — ходить • стрелки — смотреть", 14, windowHeight-64, 20, rl.Gray)
	rl.DrawText(fmt.Sprintf("Корзина: %d", cart.Count()), windowWidth-180, 14, 20, rl.RayWhite)

	if state.Mode() != interact.ModalOpen {
		return
	}
	p, ok := catalog.ByObjectKey(state.Key())
	if !ok {
		return
	}
	// Product card overlay.
	w, h := int32(560), int32(220)
	x := (int32(windowWidth) - w) / 2
	y := (int32(windowHeight) - h) / 2
	rl.DrawRectangle(0, 0, windowWidth, windowHeight, rl.NewColor(0, 0, 0, 140))
	rl.DrawRectangle(x, y, w, h, rl.NewColor(17, 17, 17, 245))
	rl.DrawRectangleLines(x, y, w, h, rl.NewColor(255, 255, 255, 40))
	rl.DrawText(p.Title, x+18, y+18, 24, rl.RayWhite)
	rl.DrawText(p.Era, x+18, y+52, 18, rl.LightGray)
	rl.DrawText(p.Price, x+18, y+84, 28, rl.RayWhite)
	rl.DrawText("Enter — в корзину • Esc — продолжить осмотр", x+18, y+h-36, 18, rl.Gray)
}
