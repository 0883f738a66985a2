// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the admin collections and metrics over stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/admin"
	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/store"
)

// RecordFormatURI is the resource that documents record fields.
const RecordFormatURI = "ansuz://record-format"

// Server wraps the MCP server with admin tools.
type Server struct {
	mcp *server.MCPServer
	svc *admin.Service
}

func kindNames() []string {
	out := make([]string, len(models.Kinds))
	for i, k := range models.Kinds {
		out[i] = string(k)
	}
	return out
}

// New creates a new MCP server with all admin tools registered.
func New(svc *admin.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_records",
		mcp.WithDescription("List a collection through its stored filter. "+
			"Optional search/category/status/role arguments narrow the result for this call only."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum(kindNames()...), mcp.Description("Collection name")),
		mcp.WithString("search", mcp.Description("Case-insensitive substring")),
		mcp.WithString("category", mcp.Description("Category for products and blog, or \"all\"")),
		mcp.WithString("status", mcp.Description("Status for orders and notifications, or \"all\"")),
		mcp.WithString("role", mcp.Description("Role for users, or \"all\"")),
	), s.listRecords)

	s.mcp.AddTool(mcp.NewTool("get_record",
		mcp.WithDescription("Read one record by id."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum(kindNames()...), mcp.Description("Collection name")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
	), s.getRecord)

	s.mcp.AddTool(mcp.NewTool("delete_record",
		mcp.WithDescription("Delete one record by id. Deleting an absent id is not an error."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum(kindNames()...), mcp.Description("Collection name")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
	), s.deleteRecord)

	s.mcp.AddTool(mcp.NewTool("get_dashboard_metrics",
		mcp.WithDescription("Revenue, order, stock, user, post and notification aggregates."),
	), s.getDashboard)

	s.mcp.AddTool(mcp.NewTool("get_conversion_funnel",
		mcp.WithDescription("Conversion funnel steps with conversion rate in percent."),
	), s.getFunnel)

	s.mcp.AddTool(mcp.NewTool("mark_notification_read",
		mcp.WithDescription("Mark one notification as read and return the unread count."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Notification id")),
	), s.markRead)

	s.mcp.AddTool(mcp.NewTool("mark_all_notifications_read",
		mcp.WithDescription("Mark every notification as read."),
	), s.markAllRead)

	s.mcp.AddTool(mcp.NewTool("get_record_format",
		mcp.WithDescription("Returns the field reference for every collection."),
	), s.getRecordFormat)

	s.mcp.AddResource(
		mcp.NewResource(RecordFormatURI, "Record Format",
			mcp.WithResourceDescription("Fields and enumerations of admin records."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecordFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func requireKind(req mcp.CallToolRequest) (models.Kind, error) {
	raw, err := req.RequireString("kind")
	if err != nil {
		return "", err
	}
	kind, ok := models.ParseKind(raw)
	if !ok {
		return "", fmt.Errorf("unknown kind: %s", raw)
	}
	return kind, nil
}

func (s *Server) listRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := requireKind(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	overrides := make(map[string]string)
	for _, f := range store.FilterFields(kind) {
		if v, err := req.RequireString(f); err == nil {
			overrides[f] = v
		}
	}
	page, err := s.svc.List(ctx, kind, overrides)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(page)
}

func (s *Server) getRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := requireKind(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.svc.Get(ctx, kind, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s/%s", kind, id)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(rec)
}

func (s *Server) deleteRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := requireKind(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	removed, err := s.svc.Delete(ctx, kind, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !removed {
		return mcp.NewToolResultText(fmt.Sprintf("absent: %s/%s", kind, id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s/%s", kind, id)), nil
}

func (s *Server) getDashboard(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Dashboard(ctx))
}

func (s *Server) getFunnel(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.Funnel(ctx))
}

func (s *Server) markRead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n := s.svc.MarkAsRead(ctx, id)
	return mcp.NewToolResultText(fmt.Sprintf("unread: %d", n)), nil
}

func (s *Server) markAllRead(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := s.svc.MarkAllAsRead(ctx)
	return mcp.NewToolResultText(fmt.Sprintf("unread: %d", n)), nil
}

func (s *Server) getRecordFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RecordFormatContract), nil
}

func (s *Server) readRecordFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      RecordFormatURI,
			MIMEType: "text/markdown",
			Text:     RecordFormatContract,
		},
	}, nil
}
