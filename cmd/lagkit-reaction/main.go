package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/Zyko0/go-sdl3/bin/binsdl"
	"github.com/Zyko0/go-sdl3/bin/binttf"
	flag "github.com/spf13/pflag"

	"lagkit/engine"
)

func init() {
	// SDL3 requires the main thread for some operations.
	runtime.LockOSThread()
}

func main() {
	// Load binaries
	defer binsdl.Load().Unload()
	defer binttf.Load().Unload()

	cfg := engine.DefaultConfig()

	fs := flag.NewFlagSet("lagkit-reaction", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.SortFlags = false

	fs.IntVar(&cfg.ScreenWidth, "width", cfg.ScreenWidth, "window width")
	fs.IntVar(&cfg.ScreenHeight, "height", cfg.ScreenHeight, "window height")
	windowed := fs.Bool("windowed", false, "start windowed instead of fullscreen")
	vsync := fs.Bool("vsync", false, "enable vsync (steadier text, higher latency)")
	fs.StringVar(&cfg.FontFile, "font", "", "TTF font file")
	fs.IntVar(&cfg.FontSize, "font-size", cfg.FontSize, "overlay font size")
	fs.BoolVar(&cfg.AudioMode, "audio", false, "start with the audio stimulus")
	fs.Float64Var(&cfg.ToneHz, "tone-hz", cfg.ToneHz, "stimulus tone frequency")
	fs.Float64Var(&cfg.ToneMS, "tone-ms", cfg.ToneMS, "stimulus tone duration")
	fs.StringVar(&cfg.TriggerDevice, "trigger", "", "DLP-IO8-G serial device for TTL markers")
	fs.StringVarP(&cfg.OutputFile, "output", "o", "", "write retained samples to CSV on exit")
	textColor := fs.String("text-color", "0,255,0,255", "overlay text color (R,G,B,A)")
	verbose := fs.BoolP("verbose", "v", false, "debug logging")
	help := fs.BoolP("help", "h", false, "show this help")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "lagkit-reaction - reaction time tester")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "After a random 1.5-5s delay the screen flashes (or a tone")
		fmt.Fprintln(os.Stderr, "plays); click as fast as you can. Early clicks are called out")
		fmt.Fprintln(os.Stderr, "and discarded.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: lagkit-reaction [flags]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Runtime keys: ESC quit | SPACE clear history | F1 visual/audio")
		fmt.Fprintln(os.Stderr, "F10 fullscreen")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if *help {
		fs.Usage()
		os.Exit(0)
	}

	cfg.Fullscreen = !*windowed
	cfg.VSync = *vsync
	cfg.TextColor = engine.ParseColor(*textColor)
	engine.SetVerbose(*verbose)

	if err := engine.RunReaction(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
