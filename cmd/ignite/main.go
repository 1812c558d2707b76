package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/ignite/internal/app"
	"github.com/sandeepkv93/ignite/internal/config"
	"github.com/sandeepkv93/ignite/internal/update"
)

func main() {
	writeConfig := flag.Bool("write-config", false, "write the effective config to the config file and exit")
	flag.Parse()

	if err := run(*writeConfig); err != nil {
		fmt.Fprintf(os.Stderr, "ignite failed: %v\n", err)
		os.Exit(1)
	}
}

func run(writeConfig bool) error {
	cfg, err := config.Load()
	if err != nil {
		// remaining layers still apply
		fmt.Fprintf(os.Stderr, "ignite: %v\n", err)
	}
	if writeConfig {
		path := config.FilePath()
		if err := config.SaveFile(path, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	}

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "ignite")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg, log.Default())
	if err != nil {
		return err
	}
	defer a.Close()

	model := update.NewModelWithRuntime(ctx, a.Store, cfg, update.ExecDesktopNotifier{}, nil)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
