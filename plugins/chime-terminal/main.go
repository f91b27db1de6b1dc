package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	chimerpc "zazen/internal/modules/chime/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *chimerpc.Empty) (*chimerpc.Metadata, error) {
	return &chimerpc.Metadata{
		Name:    "chime-terminal",
		Version: "1.0.0",
	}, nil
}

// Play rings the bell. The end-of-session cue gets a double ring so it
// stands out from the intermediate marks.
func (s *server) Play(_ context.Context, in *chimerpc.PlayRequest) (*chimerpc.Empty, error) {
	if strings.TrimSpace(in.Cue) == "" {
		return nil, fmt.Errorf("cue is required")
	}
	rings := "\a"
	if in.Cue == "session_end" {
		rings = "\a\a"
	}
	if _, err := fmt.Fprint(os.Stderr, rings); err != nil {
		return nil, fmt.Errorf("ring bell: %w", err)
	}
	return &chimerpc.Empty{}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: chimerpc.HandshakeConfig,
		Plugins:         chimerpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
