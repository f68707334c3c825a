package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"dynalist/internal/api"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"dynalist_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"dynalist_find": {
		def:     findToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFind },
	},
	"dynalist_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"dynalist_pull": {
		def:     pullToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePull },
	},
	"dynalist_status": {
		def:     statusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStatus },
	},
}

var listToolDef = mcp.NewTool("dynalist_list",
	mcp.WithDescription("List documents and folders with their full paths. Optionally scoped to a folder."),
	mcp.WithString("root_id",
		mcp.Description("Folder ID to list from. Defaults to the account root."),
	),
	mcp.WithBoolean("sort",
		mcp.Description("Sort entries alphabetically by path instead of remote order."),
	),
)

var findToolDef = mcp.NewTool("dynalist_find",
	mcp.WithDescription("Find documents and folders whose name matches a regular expression."),
	mcp.WithString("pattern",
		mcp.Required(),
		mcp.Description("Regular expression matched against item names."),
	),
	mcp.WithBoolean("ignore_case",
		mcp.Description("Match case-insensitively."),
	),
	mcp.WithBoolean("sort",
		mcp.Description("Sort matches alphabetically by path."),
	),
)

var exportToolDef = mcp.NewTool("dynalist_export",
	mcp.WithDescription("Export a document, or every document under a folder, as OPML files."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Document or folder ID to export."),
	),
	mcp.WithString("dest",
		mcp.Description("Destination file (document) or directory (folder). Relative paths resolve against the project directory."),
	),
	mcp.WithBoolean("root_node",
		mcp.Description("Wrap the document content in a root outline node named after the document."),
	),
	mcp.WithBoolean("with_format",
		mcp.Description("Include checkbox, heading, and color attributes."),
	),
	mcp.WithBoolean("with_state",
		mcp.Description("Include collapsed state attributes."),
	),
)

var pullToolDef = mcp.NewTool("dynalist_pull",
	mcp.WithDescription("Fetch every document listed in the project manifest and write each as an OPML file."),
)

var statusToolDef = mcp.NewTool("dynalist_status",
	mcp.WithDescription("Report which manifest targets already exist locally and would be overwritten by a pull."),
)

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// NewServer creates a new MCP server with Dynalist tools registered.
// dir is the project directory used by pull, status, and relative export
// destinations.
func NewServer(client api.Client, dir, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"dynalist",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(client, dir)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(client api.Client, dir, version string) error {
	s := NewServer(client, dir, version)
	return server.ServeStdio(s)
}
