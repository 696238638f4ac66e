package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"speedmap/internal/config"
	"speedmap/internal/log"
	"speedmap/internal/tui"
)

func main() {
	cfgPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := log.Init(cfg.Debug, cfg.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	var m tea.Model
	if flag.NArg() > 0 {
		m = tui.NewWithPath(cfg, flag.Arg(0))
	} else {
		m = tui.New(cfg)
	}
	log.Infow("starting", "config", *cfgPath, "file", flag.Arg(0))
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Errorf("program exited: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
