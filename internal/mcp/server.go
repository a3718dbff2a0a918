package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"posecraft/internal/config"
	"posecraft/internal/scene"
	"posecraft/internal/session"
	"posecraft/internal/snapshot"
)

type Server struct {
	profile *config.RigProfile
	scene   scene.Scene
	store   snapshot.Store
	sess    *session.Session
	mcp     *sdk.Server
}

func NewServer(profile *config.RigProfile, scn scene.Scene, store snapshot.Store, version string) *Server {
	if profile == nil {
		profile = config.DefaultRigProfile()
	}
	s := &Server{
		profile: profile,
		scene:   scn,
		store:   store,
		sess:    session.New(),
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "posecraft",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
