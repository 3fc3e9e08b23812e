// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command bbsterm-view replays BBS art through a dialect parser and
// shows the result, either on the host terminal or as a PNG.
//
// A capture file is fed through the selected parser into a screen; a
// live session runs a command under a pty and parses its output as it
// arrives.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/ericwq/bbsterm/screen"
	"github.com/ericwq/bbsterm/util"
)

const (
	_PACKAGE_STRING = "bbsterm"
	_COMMAND_NAME   = "bbsterm-view"
)

var BuildVersion = "0.1.0" // ready for ldflags

var usage = `Usage:
  ` + _COMMAND_NAME + ` [--version] [--help] [--colors]
  ` + _COMMAND_NAME + ` [options] FILE
  ` + _COMMAND_NAME + ` [options] -e COMMAND
Options:
  -h, --help     print this message
  -v, --version  print version information
  -c, --colors   print the number of colors of terminal
  -d, --dialect  parser dialect: ansi, rip, skypix, mode7 (default ansi)
  -e, --exec     run COMMAND under a pty instead of replaying a file
      --width    screen columns (default per dialect)
      --height   screen rows (default per dialect)
      --png      write the final frame to a PNG file and exit
      --delay    milliseconds between replay chunks (default 20)
      --utf8     parse the stream as UTF-8 instead of byte-per-cell
      --verbose  verbose log output (1 debug, 2 trace)
`

func printVersion() {
	fmt.Printf("%s (%s) [build %s]\n\n", _COMMAND_NAME, _PACKAGE_STRING, BuildVersion)
	fmt.Printf(`Copyright (c) 2026 wangqi ericwq057[AT]qq[dot]com
This is free software: you are free to change and redistribute it.
There is NO WARRANTY, to the extent permitted by law.
`)
}

func printColors() {
	value, ok := os.LookupEnv("TERM")
	switch {
	case !ok:
		fmt.Println("The TERM doesn't exist.")
	case value == "":
		fmt.Println("The TERM is empty string.")
	default:
		ti, err := lookupTerminfo(value)
		if err != nil {
			fmt.Printf("Dynamic load terminfo failed. %s Install infocmp (ncurses package) first.\n", err)
			return
		}
		fmt.Printf("%s %d\n", value, ti.Colors)
	}
}

func printUsage(hint string) {
	if hint != "" {
		fmt.Printf("Hints: %s\n%s", hint, usage)
	} else {
		fmt.Print(usage)
	}
}

// Config collects the command line. Width and height zero mean the
// dialect's native geometry.
type Config struct {
	version bool
	colors  bool
	verbose int

	dialect string
	width   int
	height  int
	pngPath string
	delayMs int
	utf8    bool
	execCmd string

	file string
}

func parseFlags(progname string, args []string) (config *Config, output string, err error) {
	flagSet := flag.NewFlagSet(progname, flag.ContinueOnError)
	var buf bytes.Buffer
	flagSet.SetOutput(&buf)

	var conf Config

	flagSet.IntVar(&conf.verbose, "verbose", 0, "verbose log output")

	flagSet.BoolVar(&conf.version, "version", false, "print version information")
	flagSet.BoolVar(&conf.version, "v", false, "print version information")

	flagSet.BoolVar(&conf.colors, "colors", false, "terminal number of colors")
	flagSet.BoolVar(&conf.colors, "c", false, "terminal number of colors")

	flagSet.StringVar(&conf.dialect, "dialect", "ansi", "parser dialect")
	flagSet.StringVar(&conf.dialect, "d", "ansi", "parser dialect")

	flagSet.StringVar(&conf.execCmd, "exec", "", "run command under a pty")
	flagSet.StringVar(&conf.execCmd, "e", "", "run command under a pty")

	flagSet.IntVar(&conf.width, "width", 0, "screen columns")
	flagSet.IntVar(&conf.height, "height", 0, "screen rows")
	flagSet.StringVar(&conf.pngPath, "png", "", "write the final frame to a PNG file")
	flagSet.IntVar(&conf.delayMs, "delay", 20, "milliseconds between replay chunks")
	flagSet.BoolVar(&conf.utf8, "utf8", false, "parse the stream as UTF-8")

	err = flagSet.Parse(args)
	if err != nil {
		return nil, buf.String(), err
	}
	if flagSet.NArg() > 0 {
		conf.file = flagSet.Arg(0)
	}
	return &conf, buf.String(), nil
}

// buildConfig validates the flag combination.
func (conf *Config) buildConfig() (string, bool) {
	if conf.version || conf.colors {
		return "", true
	}
	switch conf.dialect {
	case "ansi", "rip", "skypix", "mode7":
	default:
		return fmt.Sprintf("unknown dialect %q", conf.dialect), false
	}
	if conf.file == "" && conf.execCmd == "" {
		return "no capture file or command to run", false
	}
	if conf.file != "" && conf.execCmd != "" {
		return "either a capture file or a command, not both", false
	}
	if conf.execCmd != "" && conf.pngPath != "" {
		return "PNG output needs a capture file", false
	}
	return "", true
}

func main() {
	conf, output, err := parseFlags(os.Args[0], os.Args[1:])
	if err == flag.ErrHelp {
		printUsage("")
		return
	} else if err != nil {
		printUsage(output)
		return
	}
	if hint, ok := conf.buildConfig(); !ok {
		printUsage(hint)
		os.Exit(1)
	}

	if conf.version {
		printVersion()
		return
	}
	if conf.colors {
		printColors()
		return
	}

	util.Logger.SetOutput(os.Stderr)
	switch conf.verbose {
	case util.DebugLevel:
		util.Logger.SetLevel(slog.LevelDebug)
	case util.TraceLevel:
		util.Logger.SetLevel(util.LevelTrace)
	}

	if conf.execCmd != "" {
		err = runLive(conf)
	} else if conf.pngPath != "" {
		err = runPNG(conf)
	} else {
		err = runReplay(conf)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", _COMMAND_NAME, err)
		os.Exit(1)
	}
}

// runPNG replays the whole capture silently and writes one frame.
func runPNG(conf *Config) error {
	data, err := os.ReadFile(conf.file)
	if err != nil {
		return err
	}
	ses := newSession(conf, nil)
	ses.feed(data)
	ses.flush()

	var img *image.RGBA
	if ses.graphics {
		img = screen.RenderPixels(ses.pixels)
	} else {
		img = screen.RenderRGBA(ses.scr, nil)
	}
	f, err := os.Create(conf.pngPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// runReplay plays a capture on the host terminal, chunk by chunk, and
// waits for a key before restoring the screen.
func runReplay(conf *Config) error {
	data, err := os.ReadFile(conf.file)
	if err != nil {
		return err
	}
	disp, err := newDisplay(os.Stdout, !conf.utf8)
	if err != nil {
		return err
	}
	ses := newSession(conf, nil)

	savedTermios, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer term.Restore(int(os.Stdin.Fd()), savedTermios)

	disp.open()
	defer disp.close()

	const chunk = 1024
	delay := time.Duration(conf.delayMs) * time.Millisecond
	for len(data) > 0 {
		n := min(chunk, len(data))
		ses.feed(data[:n])
		data = data[n:]
		ses.render(disp)
		if delay > 0 && len(data) > 0 {
			time.Sleep(delay)
		}
	}
	ses.flush()
	ses.render(disp)

	// hold the frame until any key
	one := make([]byte, 1)
	if _, err := os.Stdin.Read(one); err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}
