// Command reelplay replays a recording without opening a window and prints
// every button edge and axis change, one line per event.
//
//	reelplay -config controls.yaml boss_fight.reel
//	reelplay -config controls.yaml -watch recordings/
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/phanxgames/reel"
)

// printSink writes button edges as they happen.
type printSink struct {
	w io.Writer
}

func (s printSink) EmitButtonEvent(e reel.ButtonEvent) {
	state := "release"
	if e.Pressed {
		state = "press"
	}
	fmt.Fprintf(s.w, "%6d  %-7s %s\n", e.Tick, state, e.Name)
}

func main() {
	configPath := flag.String("config", "controls.yaml", "controller bindings (YAML)")
	watch := flag.Bool("watch", false, "keep running and replay recordings written to the directory")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: reelplay -config controls.yaml [-watch] <recording.reel | dir>")
		os.Exit(2)
	}
	target := flag.Arg(0)
	reel.SetDebugMode(*debug)

	cfg, err := reel.LoadControllerConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	dir := target
	if info, err := os.Stat(target); err != nil {
		log.Fatal(err)
	} else if !info.IsDir() {
		dir = filepath.Dir(target)
		if err := play(cfg, target, os.Stdout); err != nil {
			log.Fatal(err)
		}
	} else if !*watch {
		log.Fatalf("%s is a directory; pass a recording or -watch", target)
	}

	if !*watch {
		return
	}

	w, err := reel.NewRecordingWatcher(dir)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	log.Printf("watching %s for %s files", dir, reel.RecordingExt)
	for {
		select {
		case path := <-w.Events:
			if err := play(cfg, path, os.Stdout); err != nil {
				log.Printf("%s: %v", path, err)
			}
		case err := <-w.Errors:
			log.Printf("watch: %v", err)
		case <-interrupt:
			return
		}
	}
}

// play runs one recording to the end on a fresh controller.
func play(cfg *reel.ControllerConfig, path string, out io.Writer) error {
	rec, err := reel.ReadRecordingFile(path)
	if err != nil {
		return err
	}

	c := reel.NewControllerFromConfig(cfg, reel.NoInput{})
	c.SetEventSink(printSink{w: out})
	if err := c.PlaybackRecording(rec); err != nil {
		return err
	}

	fmt.Fprintf(out, "== %s (%d ticks)\n", path, rec.Length)
	for c.Playing() {
		tick := c.Tick()
		c.Update()
		for _, a := range c.Axes() {
			if a.Changed() {
				fmt.Fprintf(out, "%6d  axis    %s %g,%g\n", tick, a.Name, a.X(), a.Y())
			}
		}
	}
	return nil
}
