package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	defaultWidth  = 1440
	defaultHeight = 900
	targetFPS     = 60
)

// Run opens the window and drives the main loop. Each frame it calls update
// (simulation, input), then clears the screen and calls draw inside a
// BeginDrawing/EndDrawing pair. The loop exits when the window is closed or
// done returns true; shutdown then runs with the GL context still current, so
// it is the place to dispose GPU resources, and only after it returns is the
// window released.
func Run(update, draw func(), done func() bool, shutdown func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(defaultWidth, defaultHeight, "starsystem")

	rl.SetExitKey(rl.KeyNull) // ESC toggles the console; close via window button or quit command
	rl.SetTargetFPS(targetFPS)

	finish(func() {
		for !rl.WindowShouldClose() && !done() {
			update()

			rl.BeginDrawing()
			rl.ClearBackground(rl.Black)
			draw()
			rl.EndDrawing()
		}
	}, shutdown, rl.CloseWindow)
}

// finish runs the loop, then shutdown, then release, strictly in that order:
// everything shutdown unloads needs the GL context that release destroys.
func finish(loop, shutdown, release func()) {
	loop()
	if shutdown != nil {
		shutdown()
	}
	release()
}
