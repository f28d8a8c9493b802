package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log        Log        `yaml:"log"`
	Server     Server     `yaml:"server"`
	OpenAI     OpenAI     `yaml:"openai"`
	Attendance Attendance `yaml:"attendance"`
	Chat       Chat       `yaml:"chat"`
	MCP        MCP        `yaml:"mcp"`
}

type OpenAI struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://generativelanguage.googleapis.com/v1beta/openai" validate:"required"`
	// API token, overridable via OPENAI_TOKEN
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// Model name
	Model string `yaml:"model" example:"gemini-2.0-flash" validate:"required"`
}

type Attendance struct {
	// Base url of the attendance service, overridable via ATTENDANCE_SERVICE_URL
	BaseURL string `yaml:"base_url" example:"http://attendance-service:8080/api/attendance" validate:"required"`
}

type Server struct {
	// Listen address of the HTTP server
	Addr string `yaml:"addr" example:":5000"`
}

type Chat struct {
	// Maximum number of tool rounds per request before forcing a text answer
	MaxToolRounds int `yaml:"max_tool_rounds" example:"8"`
	// Maximum number of stored turns replayed to the model
	HistoryWindow int `yaml:"history_window" example:"40"`
}

type MCP struct {
	// Optional MCP servers whose tools are exposed to the model
	Servers []MCPServer `yaml:"servers"`
}

type MCPServer struct {
	// Name prefix for tools from this server
	Name string `yaml:"name" example:"memory" validate:"required"`
	// Command to launch the server
	Command string `yaml:"command" example:"docker" validate:"required"`
	// Command arguments
	Args []string `yaml:"args"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if token := os.Getenv("OPENAI_TOKEN"); token != "" {
		result.OpenAI.Token = token
	}
	if url := os.Getenv("ATTENDANCE_SERVICE_URL"); url != "" {
		result.Attendance.BaseURL = url
	}

	if result.Server.Addr == "" {
		result.Server.Addr = ":5000"
	}
	if result.Chat.MaxToolRounds <= 0 {
		result.Chat.MaxToolRounds = 8
	}
	if result.Chat.HistoryWindow <= 0 {
		result.Chat.HistoryWindow = 40
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
