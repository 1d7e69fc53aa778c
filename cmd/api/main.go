package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tlist/internal/app"
	"tlist/internal/config"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config string `short:"c" help:"Путь к файлу конфигурации" default:"config.yml" type:"path"`

	Serve      ServeCmd      `cmd:"" default:"1" help:"Запустить HTTP API"`
	Stats      StatsCmd      `cmd:"" help:"Показать статистику задач и ежедневного списка"`
	ResetDaily ResetDailyCmd `cmd:"" name:"reset-daily" help:"Снять отметки с ежедневного списка"`
}

type ServeCmd struct {
	Port string `short:"p" help:"Переопределить порт из конфигурации"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("загрузка конфигурации: %w", err)
	}
	if c.Port != "" {
		cfg.Server.Port = c.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)
	defer a.Shutdown()

	if err := a.Init(ctx); err != nil {
		return err
	}
	return a.Run(ctx)
}

type StatsCmd struct{}

func (c *StatsCmd) Run(cli *CLI) error {
	a, err := openApp(cli)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	ctx := context.Background()
	svc := a.Service()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"tasks": svc.TaskStats(ctx),
		"daily": svc.DailyStats(ctx),
	})
}

type ResetDailyCmd struct{}

func (c *ResetDailyCmd) Run(cli *CLI) error {
	a, err := openApp(cli)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	if err := a.Service().ResetDailyTasks(context.Background()); err != nil {
		return err
	}
	fmt.Println("Ежедневный список сброшен")
	return nil
}

func openApp(cli *CLI) (*app.App, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, fmt.Errorf("загрузка конфигурации: %w", err)
	}

	a := app.New(cfg)
	if err := a.Init(context.Background()); err != nil {
		a.Shutdown()
		return nil, err
	}
	return a, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tlist"),
		kong.Description("Личный список задач: API и служебные команды"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli))
}
