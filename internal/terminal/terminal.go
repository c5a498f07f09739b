package terminal

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"starsystem/internal/commands"
	"starsystem/internal/logger"
)

const (
	barHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 12
	lineHeight       = fontSize + 4
)

var (
	// Reused every frame to avoid per-frame color allocations.
	barColor    = rl.NewColor(40, 40, 40, 255)
	lineColor   = rl.NewColor(80, 80, 80, 255)
	chatBgColor = rl.NewColor(24, 24, 24, 240)
)

// Terminal is the operator console at the bottom of the screen, toggled with
// ESC. Lines starting with "cmd " run through the command registry; anything
// else is treated as a discovery prompt and handed to OnDiscover in a
// goroutine (the request must not block the frame loop).
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool

	// OnDiscover, if set, receives non-command lines off the main thread.
	OnDiscover func(prompt string)
}

// New returns a closed console that logs lines and runs "cmd ..." through reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen reports whether the console is visible and capturing keyboard input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Update handles ESC (toggle) and, when open, typing, backspace, and enter.
// Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = !t.open
	}
	if !t.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		line := t.inputBuf
		t.inputBuf = ""
		t.log.Log(line)

		if args, isCmd := commands.Parse(line); isCmd {
			if err := t.reg.Execute(args); err != nil {
				t.log.Log(err.Error())
			}
		} else if t.OnDiscover != nil {
			go t.OnDiscover(line)
		}
	}
}

// Draw draws the input bar and recent log lines when open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := rl.GetScreenWidth()
	screenH := rl.GetScreenHeight()
	barY := screenH - barHeight

	chatHeight := maxLinesOnScreen * lineHeight
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, int32(chatY), int32(screenW), int32(chatHeight), chatBgColor)
	}
	lines := t.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := chatY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > 200 {
			line = line[:197] + "..."
		}
		rl.DrawText(line, padding, int32(y), fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), barHeight, barColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, lineColor)
	rl.DrawText(prompt+t.inputBuf+"|", padding, int32(barY+padding), fontSize, rl.White)
}
