package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the wireframe tools registered.
func NewServer(p Pipeline, version string) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "wireframe-mcp",
		Version: version,
	}
	serverOpts := &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			slog.Info("MCP connection established")
		},
	}
	server := mcpsdk.NewServer(impl, serverOpts)
	Register(server, p)
	return server
}

// Register adds the wireframe tools to server.
func Register(server *mcpsdk.Server, p Pipeline) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name: ToolGenerateWireframe,
		Description: "Generate a wireframe document (app theme, navigation, screens and typed components) from a product description. " +
			"Pass a workflow and targetScreenIndex to generate a single screen of that workflow.",
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[GenerateWireframeParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return toolResponse(HandleGenerateWireframe(ctx, p, params.Arguments))
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolGeneratePages,
		Description: "List the screens of an app as an ordered workflow (id, title, description, position, nextScreens) from a product description.",
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[GeneratePagesParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return toolResponse(HandleGeneratePages(ctx, p, params.Arguments))
	})

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        ToolValidateWireframe,
		Description: "Validate a wireframe document (or a raw model reply containing one) and return its errors and warnings.",
	}, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[ValidateWireframeParams]) (*mcpsdk.CallToolResultFor[any], error) {
		return toolResponse(HandleValidateWireframe(ctx, p, params.Arguments))
	})
}

func toolResponse(res *ToolResult, err error) (*mcpsdk.CallToolResultFor[any], error) {
	if err != nil {
		return nil, err
	}
	if res.Error != "" {
		return &mcpsdk.CallToolResultFor[any]{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: res.Error}},
			IsError: true,
		}, nil
	}
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: res.Content}},
	}, nil
}
