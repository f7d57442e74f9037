package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/config"
	"github.com/sandeepkv93/taskpad/internal/storage"
	"github.com/sandeepkv93/taskpad/internal/tasks"
	"github.com/sandeepkv93/taskpad/internal/update"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "taskpad failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "taskpad")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	kv, err := storage.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return err
	}
	defer kv.Close()

	adapter, err := storage.NewTaskAdapter(kv, cfg.StorageKey)
	if err != nil {
		return err
	}
	ctx := context.Background()
	store, err := tasks.Open(ctx, adapter)
	if err != nil {
		return err
	}

	model := update.NewModel(ctx, store, update.Options{DateLayout: cfg.DateLayout})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
