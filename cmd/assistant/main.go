// Package main is the entry point for the assistant bot.
// Its sole responsibility is wiring dependencies together and running the
// interactive loop. No business logic belongs here.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/benbjohnson/clock"

	"github.com/dkovalov/addressbook/internal/book"
	"github.com/dkovalov/addressbook/internal/command"
	"github.com/dkovalov/addressbook/internal/config"
	"github.com/dkovalov/addressbook/internal/service"
	"github.com/dkovalov/addressbook/internal/store"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog with a JSON handler; the interactive output itself goes to
	// stdout through fmt, the logger only records operational events.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage and facade ----------------------------------------------
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}
	fileStore := store.NewFileStore(cfg.File)
	assistant := service.New(book.New(clock.New()), fileStore)

	// A store that has never been saved to starts the book empty;
	// anything else (corrupt file, I/O failure) is fatal.
	if err := assistant.Load(); err != nil {
		slog.Error("failed to load address book", "file", cfg.File, "error", err)
		os.Exit(1)
	}
	slog.Debug("address book loaded", "file", cfg.File)

	registry := command.NewRegistry(assistant, cfg.BirthdayDays)

	// --- Interactive loop -------------------------------------------------
	// One command at a time; the book is only ever mutated from this loop.
	fmt.Println("Welcome to the assistant bot!")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Enter a command: ")
		if !scanner.Scan() {
			break // EOF: save and leave, like an explicit close
		}
		name, args := command.Parse(scanner.Text())
		if name == "" {
			continue
		}
		fmt.Println(registry.Execute(name, args))
		if registry.IsTerminal(name) {
			break
		}
	}

	if err := assistant.Save(); err != nil {
		slog.Error("failed to save address book", "file", cfg.File, "error", err)
		os.Exit(1)
	}
	slog.Debug("address book saved", "file", cfg.File)
}
