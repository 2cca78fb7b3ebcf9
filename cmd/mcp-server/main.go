package main

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/pubtools/gptsampler/internal/codegen"
	"github.com/pubtools/gptsampler/internal/models"
	"github.com/pubtools/gptsampler/internal/share"
)

// GenerateSampleInput describes a request for generated GPT code.
type GenerateSampleInput struct {
	Config models.SampleConfig `json:"config"`
	Kind   string              `json:"kind,omitempty"` // "script" or "document", defaults to script
}

type GenerateSampleOutput struct {
	Kind  string `json:"kind"`
	Code  string `json:"code"`
	State string `json:"state"`
}

// DecodeConfigInput carries an encoded configuration string, as found in a
// configurator URL fragment.
type DecodeConfigInput struct {
	State string `json:"state"`
}

type DecodeConfigOutput struct {
	Config *models.SampleConfig `json:"config"`
}

// SamplerServer holds the tool dependencies.
type SamplerServer struct {
	generator *codegen.Service
	logger    *zap.Logger
}

// GenerateSample implements the generate_sample tool.
func (s *SamplerServer) GenerateSample(ctx context.Context, req *mcp.CallToolRequest, input GenerateSampleInput) (*mcp.CallToolResult, GenerateSampleOutput, error) {
	kind := codegen.Kind(input.Kind)
	if input.Kind == "" {
		kind = codegen.KindScript
	}
	if !kind.Valid() {
		return nil, GenerateSampleOutput{}, fmt.Errorf("unknown kind %q", input.Kind)
	}

	code, err := s.generator.Generate(&input.Config, kind)
	if err != nil {
		return nil, GenerateSampleOutput{}, fmt.Errorf("generate sample: %w", err)
	}

	state, err := share.Encode(&input.Config)
	if err != nil {
		return nil, GenerateSampleOutput{}, fmt.Errorf("encode state: %w", err)
	}

	s.logger.Info("Generated sample",
		zap.String("kind", string(kind)),
		zap.Int("slots", len(input.Config.Slots)))

	return nil, GenerateSampleOutput{
		Kind:  string(kind),
		Code:  code,
		State: state,
	}, nil
}

// DecodeConfig implements the decode_config tool.
func (s *SamplerServer) DecodeConfig(ctx context.Context, req *mcp.CallToolRequest, input DecodeConfigInput) (*mcp.CallToolResult, DecodeConfigOutput, error) {
	cfg, err := share.Decode(input.State)
	if err != nil {
		return nil, DecodeConfigOutput{}, fmt.Errorf("decode state: %w", err)
	}
	return nil, DecodeConfigOutput{Config: cfg}, nil
}

func main() {
	// Log to stderr so stdout stays reserved for the MCP transport.
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.NameKey = "logger"
	cfg.EncoderConfig.CallerKey = "caller"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.StacktraceKey = "stacktrace"

	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger = logger.Named("gptsampler-mcp").With(zap.String("service", "gptsampler-mcp"))

	samplerServer := &SamplerServer{
		generator: codegen.NewService(logger),
		logger:    logger,
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gptsampler",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_sample",
		Description: "Generate a Google Publisher Tag code sample from a slot configuration",
	}, samplerServer.GenerateSample)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "decode_config",
		Description: "Decode a configurator share state string back into its slot configuration",
	}, samplerServer.DecodeConfig)

	logger.Info("MCP server running via stdio")

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
