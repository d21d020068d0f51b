// Command synthgen demonstrates the synthtext layout core: it lays out a
// line of text against a set of candidate fonts, prints the resulting
// character boxes, and persists the updated font-reliability state.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gosynth/synthtext"
	"github.com/gosynth/synthtext/palette"
	"github.com/gosynth/synthtext/reliability"
)

func main() {
	var (
		fonts     = flag.String("fonts", "", "comma-separated font file paths")
		text      = flag.String("text", "hello world", "text to lay out")
		charset   = flag.String("charset", "abcdefghijklmnopqrstuvwxyz ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", "allowed character set")
		state     = flag.String("state", "reliability.json", "reliability state file")
		seed      = flag.Uint64("seed", 42, "layout seed")
		intensity = flag.Float64("overlap", 0.0, "overlap intensity [0,1]")
		colorMode = flag.String("colors", "uniform", "color mode: uniform, per_glyph, gradient, random")
		pal       = flag.String("palette", palette.DarkRealistic, "palette name")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		synthtext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	candidates := strings.Split(*fonts, ",")
	if *fonts == "" || len(candidates) == 0 {
		log.Fatal("at least one font is required (-fonts path/a.ttf,path/b.ttf)")
	}

	store := reliability.NewStore(reliability.WithPath(*state))
	if err := store.Load(); err != nil {
		log.Fatalf("Failed to load reliability state: %v", err)
	}

	eng := synthtext.NewEngine(store,
		synthtext.WithSeed(*seed),
		synthtext.WithOverlapIntensity(*intensity),
		synthtext.WithColorMode(palette.Mode(*colorMode)),
		synthtext.WithPalette(*pal),
	)

	line, err := eng.LayoutLine(*text, candidates, *charset)
	if err != nil {
		log.Fatalf("Layout failed: %v", err)
	}

	fmt.Printf("font: %s\n", line.Font)
	fmt.Printf("extent: %.1f x %.1f, background #%02x%02x%02x\n",
		line.Width, line.Height,
		line.Background.R, line.Background.G, line.Background.B)
	for i, b := range line.Boxes {
		c := line.Colors[i]
		fmt.Printf("  %q  [%6.1f %6.1f %6.1f %6.1f]  #%02x%02x%02x\n",
			b.Char, b.MinX, b.MinY, b.MaxX, b.MaxY, c.R, c.G, c.B)
	}

	sum := store.SummaryReport()
	fmt.Printf("fonts: %d tracked, %d healthy, %d unhealthy, %d cooling down, mean score %.1f\n",
		sum.Total, sum.Healthy, sum.Unhealthy, sum.InCooldown, sum.MeanScore)

	if err := store.Save(); err != nil {
		log.Fatalf("Failed to save reliability state: %v", err)
	}
}
