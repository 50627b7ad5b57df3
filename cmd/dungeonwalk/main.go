// Command dungeonwalk is the operator CLI: an interactive REPL over the map
// generation core. It supports three commands - genmap, showmap, and exit -
// described in spec §6.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/dshills/dungeonwalk/pkg/config"
	"github.com/dshills/dungeonwalk/pkg/mapgen"
	"github.com/dshills/dungeonwalk/pkg/render"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file (optional)")
	verbose    = flag.Bool("verbose", false, "enable debug-level logging")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dungeonwalk: %v\n", err)
			os.Exit(1)
		}
		cfg = *loaded
	}

	code := runREPL(os.Stdin, os.Stdout, logger.WithField("component", "cli"), cfg)
	os.Exit(code)
}

func runREPL(in io.Reader, out io.Writer, logger *logrus.Entry, cfg config.Config) int {
	scanner := bufio.NewScanner(in)
	var current *mapgen.Result

	fmt.Fprintln(out, "dungeonwalk ready. commands: genmap, showmap, exit")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				logger.WithError(err).Error("reading command")
				return 1
			}
			return 0
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "exit":
			return 0
		case "genmap":
			res, err := genmap(fields[1:], cfg)
			if err != nil {
				fmt.Fprintf(out, "genmap: %v\n", err)
				continue
			}
			current = res
			for _, warn := range res.Warnings {
				logger.WithField("warning", warn).Warn("generation warning")
			}
			fmt.Fprintf(out, "generated %dx%d map, seed=%d\n", res.Grid.Width, res.Grid.Height, res.Seed)
		case "showmap":
			if current == nil {
				fmt.Fprintln(out, "showmap: no map generated yet, run genmap first")
				continue
			}
			art, err := render.Render(current.Grid, render.Options{Color: true})
			if err != nil {
				fmt.Fprintf(out, "showmap: %v\n", err)
				continue
			}
			fmt.Fprint(out, art)
		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
		}
	}
}

// genmap parses "genmap [type] [width] [height] [minRooms] [maxRooms]
// [seed]" arguments, each falling back to cfg's defaults when omitted, and
// runs the generator.
func genmap(args []string, cfg config.Config) (*mapgen.Result, error) {
	kindStr := cfg.Generation.Kind
	width, height := cfg.Generation.Width, cfg.Generation.Height
	minRooms, maxRooms := cfg.Generation.MinRooms, cfg.Generation.MaxRooms
	var seed *uint64
	if cfg.Seed != 0 {
		s := cfg.Seed
		seed = &s
	}

	get := func(i int) (string, bool) {
		if i < len(args) {
			return args[i], true
		}
		return "", false
	}

	if v, ok := get(0); ok {
		kindStr = v
	}
	if v, ok := get(1); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid width %q: %w", v, err)
		}
		width = n
	}
	if v, ok := get(2); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid height %q: %w", v, err)
		}
		height = n
	}
	if v, ok := get(3); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid minRooms %q: %w", v, err)
		}
		minRooms = n
	}
	if v, ok := get(4); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid maxRooms %q: %w", v, err)
		}
		maxRooms = n
	}
	if v, ok := get(5); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", v, err)
		}
		seed = &n
	}

	kind, err := mapgen.ParseKind(kindStr)
	if err != nil {
		return nil, err
	}

	return mapgen.Generate(mapgen.Params{
		Width: width, Height: height, Seed: seed,
		Kind: kind, MinRooms: minRooms, MaxRooms: maxRooms,
	})
}
