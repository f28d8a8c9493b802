package server

import (
	"context"
	"log/slog"
	"time"

	"officesync-ai/app/config"
	"officesync-ai/app/service/orchestrator"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

type chatRequest struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Service is the inbound HTTP surface: a single POST /chat endpoint.
// Backend faults never surface as HTTP errors; the orchestrator
// degrades them to apologetic replies.
type Service struct {
	cfg             *config.Config
	orchestratorSvc *orchestrator.Service
	app             *fiber.App
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:             do.MustInvoke[*config.Config](di),
		orchestratorSvc: do.MustInvoke[*orchestrator.Service](di),
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
		}),
	}

	s.app.Post("/chat", s.handleChat)

	return s, nil
}

func (s *Service) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	start := time.Now()
	reply := s.orchestratorSvc.HandleChat(c.UserContext(), req.UserID, req.Message)

	slog.Info("Processed chat message",
		"user_id", req.UserID,
		"duration", time.Since(start))

	return c.JSON(chatResponse{Reply: reply})
}

func (s *Service) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		if err := s.app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slog.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	slog.Info("HTTP server listening", "addr", s.cfg.Server.Addr)

	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Service) Shutdown() error {
	return nil
}
