package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"mcrogueface/pkg/engine/fov"
	"mcrogueface/pkg/engine/input"
	"mcrogueface/pkg/engine/logger"
	"mcrogueface/pkg/engine/world"
	"mcrogueface/pkg/game/devtools"
	"mcrogueface/pkg/game/gameplay"
	"mcrogueface/pkg/game/generator"
	"mcrogueface/pkg/game/renderer/ebiten"
	"mcrogueface/pkg/game/renderer/tui"
	"mcrogueface/pkg/game/state"
)

func initGettext(localesDir, lang string) {
	gotext.Configure(localesDir, lang, "default")
}

// settingsFromFlags validates the level flags.
func settingsFromFlags(width, height int, genName, fovName string, radius int) (gameplay.Settings, error) {
	s := gameplay.DefaultSettings()
	s.Width, s.Height = width, height
	s.SightRadius = radius

	gen, err := generator.ByName(genName)
	if err != nil {
		return s, fmt.Errorf("%w (have %s)", err, strings.Join(generator.Names(), ", "))
	}
	s.Generator = gen

	alg, err := fov.ParseAlgorithm(fovName)
	if err != nil {
		return s, err
	}
	s.FOVAlgorithm = alg
	return s, nil
}

func main() {
	mode := flag.String("mode", "explore", "explore (terminal), window, dump or screenshot")
	width := flag.Int("width", 60, "map width in cells")
	height := flag.Int("height", 30, "map height in cells")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	startLevel := flag.Int("level", 1, "starting level number (for developer testing)")
	genName := flag.String("generator", "bsp", "map generator: "+strings.Join(generator.Names(), ", "))
	fovName := flag.String("fov", fov.DefaultAlgorithm.String(), "FOV algorithm: basic, diamond, shadow, permissive0..permissive8")
	radius := flag.Int("radius", world.DefaultFOVRadius, "player sight radius")
	lang := flag.String("lang", "en_US", "message language")
	localesDir := flag.String("locales", "locales", "directory holding <lang>/default.po")
	flag.Parse()

	logger.Init()
	initGettext(*localesDir, *lang)

	s, err := settingsFromFlags(*width, *height, *genName, *fovName, *radius)
	if err != nil {
		logger.Log.WithError(err).Fatal("invalid flags")
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	g, err := buildGame(*seed, *startLevel, s)
	if err != nil {
		logger.Log.WithError(err).Fatal("could not build the first level")
	}

	switch *mode {
	case "explore":
		err = runTerminal(g, s)
	case "window":
		err = ebiten.New().Run(g, s)
	case "dump":
		err = devtools.DumpMap(os.Stdout, g)
	case "screenshot":
		var name string
		name, err = devtools.SaveScreenshotHTML(g, *height, *width)
		if err == nil {
			fmt.Println(name)
		}
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"mode": *mode,
			"seed": *seed,
		}).Fatal("exited with error")
	}
}

// buildGame creates the session and skips ahead to startLevel.
func buildGame(seed int64, startLevel int, s gameplay.Settings) (*state.Game, error) {
	g, err := gameplay.BuildGame(seed, s)
	if err != nil {
		return nil, err
	}
	for g.Level < startLevel {
		if err := gameplay.AdvanceLevel(g, s); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// runTerminal plays in raw mode when stdin is a terminal, otherwise it reads
// keys from the pipe as they come.
func runTerminal(g *state.Game, s gameplay.Settings) error {
	keys := input.NewKeyReader(os.Stdin)
	if input.IsTerminal() {
		raw, restore, err := input.RawTerminal()
		if err != nil {
			return err
		}
		defer restore()
		keys = raw
	}

	// the renderer owns the screen
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	t := tui.New()
	t.Init()
	return t.Run(g, s, keys)
}
