// Command plantmon runs the plant monitoring dashboard in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/luki/plantmon/internal/config"
	"github.com/luki/plantmon/internal/logging"
	"github.com/luki/plantmon/internal/monitor"
	"github.com/luki/plantmon/internal/plant"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	envPath := flag.String("env", ".env", "path to dotenv file")
	flag.Parse()

	if err := run(*configPath, *envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, envPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadEnvFile(envPath); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	initial := plant.Reading{
		Moisture:    cfg.Initial.Moisture,
		Temperature: cfg.Initial.Temperature,
		Light:       cfg.Initial.Light,
		WaterLevel:  cfg.Initial.WaterLevel,
		LastWatered: time.Now().Format(cfg.TimestampLayout),
	}

	m := monitor.New(monitor.Options{
		Title:           cfg.Title,
		TimestampLayout: cfg.TimestampLayout,
		Initial:         &initial,
		Logger:          logger,
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run: %w", err)
	}
	if fm, ok := final.(monitor.Model); ok {
		logger.Info("monitor stopped", zap.Stringer("state", fm))
	}
	return nil
}
