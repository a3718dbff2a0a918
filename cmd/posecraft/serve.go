package main

import (
	"context"

	"github.com/spf13/cobra"

	"posecraft/internal/config"
	"posecraft/internal/mcp"
	"posecraft/internal/scene"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	var scenePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(scenePath)
		},
	}
	cmd.Flags().StringVar(&scenePath, "scene", "scene.json", "Scene document path")
	return cmd
}

func runServe(scenePath string) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig("posecraft.yaml")
	if err != nil {
		return err
	}
	profile, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	scn, err := scene.OpenFile(scenePath)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	server := mcp.NewServer(profile, scn, store, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
