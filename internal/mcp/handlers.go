package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"dynalist/internal/api"
	"dynalist/internal/errors"
	"dynalist/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	client api.Client
	dir    string
}

// NewHandlers creates a new Handlers instance. dir is the project directory
// used by the pull and status tools.
func NewHandlers(client api.Client, dir string) *Handlers {
	return &Handlers{client: client, dir: dir}
}

// Request types for each tool

// ListRequest represents the arguments for list.
type ListRequest struct {
	RootID string `json:"root_id,omitempty"`
	Sort   bool   `json:"sort,omitempty"`
}

// FindRequest represents the arguments for find.
type FindRequest struct {
	Pattern    string `json:"pattern"`
	IgnoreCase bool   `json:"ignore_case,omitempty"`
	Sort       bool   `json:"sort,omitempty"`
}

// ExportRequest represents the arguments for export.
type ExportRequest struct {
	ID         string `json:"id"`
	Dest       string `json:"dest,omitempty"`
	RootNode   bool   `json:"root_node,omitempty"`
	WithFormat bool   `json:"with_format,omitempty"`
	WithState  bool   `json:"with_state,omitempty"`
}

// Handler implementations

// HandleList handles the list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewUsage(err.Error())), nil
	}

	result, err := ops.List(ctx, h.client, ops.ListInput{
		RootID: input.RootID,
		Sort:   input.Sort,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFind handles the find tool call.
func (h *Handlers) HandleFind(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FindRequest](req)
	if err != nil {
		return errorResult(errors.NewUsage(err.Error())), nil
	}

	result, err := ops.Find(ctx, h.client, ops.FindInput{
		Pattern:    input.Pattern,
		IgnoreCase: input.IgnoreCase,
		Sort:       input.Sort,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the export tool call. Destinations resolve against
// the server's project directory, never stdout.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewUsage(err.Error())), nil
	}
	if input.Dest == "-" {
		return errorResult(errors.NewUsage("stdout destination not available over MCP")), nil
	}

	result, err := ops.Export(ctx, h.client, ops.ExportInput{
		ID:         input.ID,
		Dest:       resolveDest(h.dir, input.Dest),
		RootNode:   input.RootNode,
		WithFormat: input.WithFormat,
		WithState:  input.WithState,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePull handles the pull tool call.
func (h *Handlers) HandlePull(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Pull(ctx, h.client, ops.PullInput{Dir: h.dir})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleStatus handles the status tool call.
func (h *Handlers) HandleStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Status(ops.StatusInput{Dir: h.dir})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// resolveDest anchors relative export destinations in the project
// directory so results do not depend on the server's working directory.
func resolveDest(dir, dest string) string {
	if dest == "" {
		return dir
	}
	if filepath.IsAbs(dest) {
		return dest
	}
	return filepath.Join(dir, dest)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if dErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    dErr.Code,
			"message": dErr.Message,
		}
		// Internal errors can carry file paths or raw causes; keep their
		// details out of tool results.
		if dErr.Code != errors.ErrInternal && dErr.Details != nil {
			errorObj["details"] = dErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
