package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"starsystem/internal/commands"
	"starsystem/internal/debug"
	"starsystem/internal/discovery"
	"starsystem/internal/engine"
	"starsystem/internal/engineconfig"
	"starsystem/internal/env"
	"starsystem/internal/graphics"
	"starsystem/internal/logger"
	"starsystem/internal/shading"
	"starsystem/internal/snapshot"
	"starsystem/internal/terminal"
	"starsystem/internal/ui"
)

const (
	snapshotPath = "assets/bodies.yaml"
	// Discovery requests run off the frame loop but should not hang forever.
	discoverTimeout = 30 * time.Second
)

type app struct {
	log      *logger.Logger
	prefs    engineconfig.Prefs
	eng      *engine.Engine
	term     *terminal.Terminal
	hud      *ui.HUD
	dbg      *debug.Debug
	agent    *discovery.Agent
	watcher  *snapshot.Watcher
	scanning bool
}

func main() {
	_ = env.Load(".env")
	log := logger.New("")

	prefs, _ := engineconfig.Load()
	a := &app{
		log:   log,
		prefs: prefs,
		eng:   engine.New(log),
		hud:   &ui.HUD{},
		dbg:   debug.New(),
	}
	a.dbg.ShowFPS = prefs.ShowFPS
	a.dbg.ShowMemAlloc = prefs.ShowMemAlloc
	a.eng.SetOrbitRingsVisible(prefs.OrbitRingsVisible)
	a.eng.SetBloomEnabled(prefs.BloomEnabled)
	a.eng.OnSelect = func(id string) { a.log.Logf("selected %s", id) }

	reg := commands.NewRegistry()
	a.registerCommands(reg)
	a.term = terminal.New(log, reg)
	a.agent = discovery.New(newLLMClient(), func() string { return a.prefs.AIModel }, snapshotPath)
	a.term.OnDiscover = a.discover

	if records, err := snapshot.Load(snapshotPath); err != nil {
		log.Logf("snapshot: %v", err)
	} else {
		a.eng.SubmitSnapshot(records)
	}
	if w, err := snapshot.Watch(snapshotPath); err != nil {
		log.Logf("snapshot watch: %v", err)
	} else {
		a.watcher = w
		w.OnError = func(err error) { log.Logf("snapshot: %v", err) }
		go func() {
			for records := range w.C {
				a.eng.SubmitSnapshot(records)
			}
		}()
	}

	// Engine teardown happens inside Run's shutdown hook, while the GL
	// context still exists; everything after Run is context-free cleanup.
	graphics.Run(a.update, a.draw, a.eng.Closing, a.eng.Close)

	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	_ = engineconfig.Save(a.prefs)
}

// newLLMClient prefers OpenAI when its key is set and falls back to Groq,
// so either key alone is enough for discovery.
func newLLMClient() discovery.Client {
	return &discovery.Fallback{
		Primary:   discovery.NewOpenAI(os.Getenv("OPENAI_API_KEY")),
		Secondary: discovery.NewGroq(os.Getenv("GROQ_API_KEY")),
	}
}

func (a *app) update() {
	a.term.Update()
	a.eng.Step()
}

func (a *app) draw() {
	a.eng.Draw()

	a.hud.Hovered, a.hud.HasHovered = a.eng.Hovered()
	a.hud.Selected, a.hud.HasSelected = a.eng.Selected()
	a.hud.State = a.eng.InteractionState()
	a.hud.Scanning = a.scanning
	a.hud.Draw()

	a.term.Draw()
	a.dbg.Draw()
}

// discover runs on its own goroutine (dispatched by the terminal); it must not
// touch engine state. The agent writes the snapshot file and the watcher
// carries the result back onto the frame loop.
func (a *app) discover(prompt string) {
	ctx, cancel := context.WithTimeout(context.Background(), discoverTimeout)
	defer cancel()
	summary, err := a.agent.Discover(ctx, prompt)
	if err != nil {
		a.log.Logf("discovery: %v", err)
		return
	}
	a.log.Log(summary)
}

func (a *app) registerCommands(reg *commands.Registry) {
	showHide := func(name string, apply func(on bool)) {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		show := fs.Bool("show", false, "enable")
		hide := fs.Bool("hide", false, "disable")
		reg.Register(name, fs, func(args []string) error {
			if *show == *hide {
				return fmt.Errorf("%s: use --show or --hide", name)
			}
			apply(*show)
			return nil
		})
	}

	showHide("fps", func(on bool) {
		a.dbg.ShowFPS = on
		a.prefs.ShowFPS = on
	})
	showHide("memalloc", func(on bool) {
		a.dbg.ShowMemAlloc = on
		a.prefs.ShowMemAlloc = on
	})
	showHide("orbits", func(on bool) {
		a.eng.SetOrbitRingsVisible(on)
		a.prefs.OrbitRingsVisible = on
	})

	onOff := func(name string, apply func(on bool)) {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		enable := fs.Bool("on", false, "enable")
		disable := fs.Bool("off", false, "disable")
		reg.Register(name, fs, func(args []string) error {
			if *enable == *disable {
				return fmt.Errorf("%s: use --on or --off", name)
			}
			apply(*enable)
			return nil
		})
	}

	onOff("bloom", func(on bool) {
		a.eng.SetBloomEnabled(on)
		a.prefs.BloomEnabled = on
	})
	onOff("scan", func(on bool) {
		a.scanning = on
		a.eng.SetScanning(on)
	})

	stateFS := flag.NewFlagSet("state", flag.ContinueOnError)
	reg.Register("state", stateFS, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: cmd state idle|listening|speaking")
		}
		switch args[0] {
		case "idle", "listening", "speaking":
		default:
			return fmt.Errorf("unknown state %q", args[0])
		}
		a.eng.SetInteractionState(shading.ParseState(args[0]))
		return nil
	})

	selectFS := flag.NewFlagSet("select", flag.ContinueOnError)
	reg.Register("select", selectFS, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: cmd select <body-id>|none")
		}
		if args[0] == "none" {
			a.eng.ClearSelection()
			return nil
		}
		a.eng.Select(args[0])
		if a.eng.SelectedID() != args[0] {
			return fmt.Errorf("no body with id %q", args[0])
		}
		return nil
	})

	micFS := flag.NewFlagSet("mic", flag.ContinueOnError)
	reg.Register("mic", micFS, func(args []string) error {
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return fmt.Errorf("usage: cmd mic on|off")
		}
		if args[0] == "off" {
			a.eng.DisableMic()
			return nil
		}
		if err := a.eng.EnableMic(); err != nil {
			return fmt.Errorf("mic: %w", err)
		}
		return nil
	})

	modelFS := flag.NewFlagSet("model", flag.ContinueOnError)
	reg.Register("model", modelFS, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: cmd model <name>")
		}
		a.prefs.AIModel = args[0]
		a.log.Logf("model set to %s", args[0])
		return nil
	})

	saveFS := flag.NewFlagSet("save", flag.ContinueOnError)
	reg.Register("save", saveFS, func(args []string) error {
		if err := engineconfig.Save(a.prefs); err != nil {
			return err
		}
		a.log.Log("preferences saved")
		return nil
	})

	helpFS := flag.NewFlagSet("help", flag.ContinueOnError)
	reg.Register("help", helpFS, func(args []string) error {
		for _, name := range reg.Names() {
			a.log.Log("  cmd " + name)
		}
		return nil
	})

	quitFS := flag.NewFlagSet("quit", flag.ContinueOnError)
	reg.Register("quit", quitFS, func(args []string) error {
		a.eng.RequestClose()
		return nil
	})
}
