package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/xonecas/inkline/internal/config"
	"github.com/xonecas/inkline/internal/scroll"
	"github.com/xonecas/inkline/internal/style"
	"github.com/xonecas/inkline/internal/styled"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AA00"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2a2a2a"))
)

const sample = `inkline styles terminal text by position: colors apply from an ` +
	`offset until the next change, effects cover half-open ranges, and "quoted ` +
	`phrases" or links like https://example.com/docs can be picked out by ` +
	`pattern. Lines wrap to the terminal width without cutting escape ` +
	`sequences or wide glyphs such as 全角文字.`

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	width := flag.Int("width", 0, "render width in columns (0 = autodetect)")
	no256 := flag.Bool("no-256", false, "disable the 256-color palette")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *no256 {
		cfg.Display.Two56 = false
	}

	cols := cfg.Display.Width
	if *width > 0 {
		cols = *width
	}
	if cols == 0 {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			cols = w
		} else {
			cols = 80
		}
	}
	log.Debug().Int("cols", cols).Bool("two56", cfg.Display.Two56).Msg("demo: resolved display settings")

	if err := run(cfg, cols); err != nil {
		fmt.Fprintf(os.Stderr, "Error running inkline: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, cols int) error {
	reg := style.New()
	reg.Set256(cfg.Display.Two56)

	title, err := reg.To256Hex("#5f87ff", nil)
	if err != nil {
		return err
	}
	quote, err := reg.DefineColor(style.Named("cyan"), style.NoGround, false)
	if err != nil {
		return err
	}

	var opts []styled.Option
	if !cfg.Display.Normalize {
		opts = append(opts, styled.WithoutNormalization())
	}

	fmt.Println(bannerStyle.Render("inkline showcase"))
	fmt.Println(ruleStyle.Render(strings.Repeat("─", cols)))

	para := styled.New(reg, sample, opts...)
	para.ColorByPattern(regexp.MustCompile(`"[^"]+"`), 0, styled.FixedColor(quote), style.Default)
	para.EffectByPattern(regexp.MustCompile(`https?://\S+`), 0, style.Underline)
	for _, line := range para.BreakLines(cols, "  ", false) {
		fmt.Println(line)
	}

	row := styled.NewJustified(reg, "styled session with a title too long to fit the row as-is", opts...)
	if err := row.InsertColor(0, title); err != nil {
		return err
	}
	row.AddIndicator("ok", style.Green, style.NoEffect)
	fmt.Println(row.Justify(cols, ' ', 3))

	buf, err := scroll.NewSuggest(cols, "echo hello world")
	if err != nil {
		return err
	}
	if err := buf.SetNonscroll("> "); err != nil {
		return err
	}
	fmt.Println(buf.Show(false))
	log.Debug().Int("cursor", buf.CursorCol()).Msg("demo: buffer cursor column")
	return nil
}
