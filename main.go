package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	attendanceclient "officesync-ai/app/client/attendance"
	"officesync-ai/app/config"
	"officesync-ai/app/gateway"
	"officesync-ai/app/server"
	"officesync-ai/app/service/attendance"
	"officesync-ai/app/service/conversation"
	"officesync-ai/app/service/language"
	"officesync-ai/app/service/orchestrator"
	"officesync-ai/app/service/tool"
	"officesync-ai/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"github.com/tmc/langchaingo/tools"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, attendanceclient.NewClient)
	do.Provide(di, gateway.NewOpenAIGateway)
	do.Provide(di, conversation.New)
	do.Provide(di, attendance.New)
	do.Provide(di, language.New)
	do.Provide(di, buildRegistry)
	do.Provide(di, orchestrator.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	go func() {
		if err := do.MustInvoke[*server.Service](di).Run(appCtx); err != nil {
			log.Errorf("server stopped: %v", err)
			cancel()
		}
	}()

	<-appCtx.Done()
}

func buildRegistry(di *do.Injector) (*tool.Registry, error) {
	appCtx := do.MustInvoke[context.Context](di)
	cfg := do.MustInvoke[*config.Config](di)

	registry := tool.NewRegistry()

	if err := registry.Register(do.MustInvoke[*attendance.Service](di)); err != nil {
		return nil, err
	}

	if err := registry.Register(do.MustInvoke[*language.Service](di)); err != nil {
		return nil, err
	}

	calc := tool.FromLangchain(tools.Calculator{},
		"Use the `calculator` tool for any arithmetic over working hours or late minutes instead of computing yourself.")
	if err := registry.Register(calc); err != nil {
		return nil, err
	}

	for _, serverCfg := range cfg.MCP.Servers {
		mcpModule, err := tool.NewMCPModule(appCtx, serverCfg)
		if err != nil {
			return nil, err
		}

		if err = registry.Register(mcpModule); err != nil {
			return nil, err
		}
	}

	return registry, nil
}
