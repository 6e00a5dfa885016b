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

	fs := flag.NewFlagSet("lagkit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.SortFlags = false

	fs.IntVar(&cfg.ScreenWidth, "width", cfg.ScreenWidth, "window width")
	fs.IntVar(&cfg.ScreenHeight, "height", cfg.ScreenHeight, "window height")
	windowed := fs.Bool("windowed", false, "start windowed instead of fullscreen")
	vsync := fs.Bool("vsync", false, "enable vsync (steadier overlay, higher latency)")
	fs.StringVar(&cfg.FontFile, "font", "", "TTF font file for the overlay")
	fs.IntVar(&cfg.FontSize, "font-size", cfg.FontSize, "overlay font size")
	fs.StringVar(&cfg.TriggerDevice, "trigger", "", "DLP-IO8-G serial device for TTL markers")
	fs.StringVarP(&cfg.OutputFile, "output", "o", "", "write retained log entries to CSV on exit")
	textColor := fs.String("text-color", "0,255,0,255", "overlay text color (R,G,B,A)")
	verbose := fs.BoolP("verbose", "v", false, "debug logging")
	help := fs.BoolP("help", "h", false, "show this help")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "lagkit - input-to-display latency tester")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flashes the screen on every qualifying input event so external")
		fmt.Fprintln(os.Stderr, "instruments can measure the full input-to-photon chain.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: lagkit [flags]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Runtime keys: ESC quit | F1 mouse buttons | F2 keyboard | F3 motion")
		fmt.Fprintln(os.Stderr, "F4 log | F5/F6 flash duration | F7 up events | F8 mouse Hz")
		fmt.Fprintln(os.Stderr, "F9 overlay | F10 fullscreen")
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

	if err := engine.RunLatency(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
