package mcpserver

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/ansuz/internal/admin"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/testutil"
)

func testServer(t *testing.T) (*Server, *admin.Service) {
	t.Helper()
	svc := testutil.Service(t)
	return New(svc), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// Handlers are invoked directly; mcp-go has no in-process call helper.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_records":
		result, err = srv.listRecords(ctx, req)
	case "get_record":
		result, err = srv.getRecord(ctx, req)
	case "delete_record":
		result, err = srv.deleteRecord(ctx, req)
	case "get_dashboard_metrics":
		result, err = srv.getDashboard(ctx, req)
	case "get_conversion_funnel":
		result, err = srv.getFunnel(ctx, req)
	case "mark_notification_read":
		result, err = srv.markRead(ctx, req)
	case "mark_all_notifications_read":
		result, err = srv.markAllRead(ctx, req)
	case "get_record_format":
		result, err = srv.getRecordFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestListRecords(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "list_records", map[string]any{"kind": "products", "search": "watch"})
	if r.IsError {
		t.Fatalf("list_records error: %s", resultText(r))
	}
	var page struct {
		Items []models.Product `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].Title != "Smart Watch" {
		t.Errorf("page = %+v", page)
	}
}

func TestListRecordsOverrideIsTransient(t *testing.T) {
	srv, svc := testServer(t)

	r := callTool(t, srv, "list_records", map[string]any{"kind": "products", "search": "back"})
	if r.IsError {
		t.Fatalf("list_records error: %s", resultText(r))
	}
	var page struct {
		Items []models.Product `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].Title != "Leather Backpack" {
		t.Errorf("page = %+v", page)
	}
	if got := svc.State().Products.Filter.Search; got != "" {
		t.Errorf("stored search = %q, want empty", got)
	}

	r = callTool(t, srv, "list_records", map[string]any{"kind": "products"})
	if err := json.Unmarshal([]byte(resultText(r)), &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != len(svc.State().Products.Items) {
		t.Errorf("unfiltered total = %d, want %d", page.Total, len(svc.State().Products.Items))
	}
}

func TestListRecordsUnknownKind(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "list_records", map[string]any{"kind": "widgets"})
	if !r.IsError {
		t.Error("expected error for unknown kind")
	}
	r = callTool(t, srv, "list_records", map[string]any{})
	if !r.IsError {
		t.Error("expected error for missing kind")
	}
}

func TestGetAndDeleteRecord(t *testing.T) {
	srv, svc := testServer(t)
	id := svc.State().Orders.Items[0].ID

	r := callTool(t, srv, "get_record", map[string]any{"kind": "orders", "id": id})
	if r.IsError || !strings.Contains(resultText(r), `"productName"`) {
		t.Fatalf("get_record = %q", resultText(r))
	}

	r = callTool(t, srv, "delete_record", map[string]any{"kind": "orders", "id": id})
	if got := resultText(r); got != "deleted: orders/"+id {
		t.Errorf("delete = %q", got)
	}
	r = callTool(t, srv, "delete_record", map[string]any{"kind": "orders", "id": id})
	if got := resultText(r); got != "absent: orders/"+id {
		t.Errorf("second delete = %q", got)
	}

	r = callTool(t, srv, "get_record", map[string]any{"kind": "orders", "id": id})
	if !r.IsError {
		t.Error("expected error for deleted record")
	}
}

func TestDashboardAndFunnel(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_dashboard_metrics", nil)
	var dash struct {
		TotalOrders         int `json:"totalOrders"`
		UnreadNotifications int `json:"unreadNotifications"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &dash); err != nil {
		t.Fatal(err)
	}
	if dash.TotalOrders != 3 || dash.UnreadNotifications != 2 {
		t.Errorf("dashboard = %+v", dash)
	}

	r = callTool(t, srv, "get_conversion_funnel", nil)
	var rows []struct {
		Name string  `json:"name"`
		Rate float64 `json:"rate"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 || math.Abs(rows[0].Rate-8.5) > 1e-9 {
		t.Errorf("funnel = %+v", rows)
	}
}

func TestMarkNotifications(t *testing.T) {
	srv, svc := testServer(t)

	var unreadID string
	for _, n := range svc.State().Notifications.Items {
		if n.Status == models.Unread {
			unreadID = n.ID
			break
		}
	}

	r := callTool(t, srv, "mark_notification_read", map[string]any{"id": unreadID})
	if got := resultText(r); got != "unread: 1" {
		t.Errorf("mark read = %q", got)
	}
	r = callTool(t, srv, "mark_all_notifications_read", nil)
	if got := resultText(r); got != "unread: 0" {
		t.Errorf("mark all = %q", got)
	}
}

func TestRecordFormat(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_record_format", nil)
	if !strings.Contains(resultText(r), "paymentStatus") {
		t.Error("record format missing order fields")
	}

	contents, err := srv.readRecordFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil || len(contents) != 1 {
		t.Fatalf("resource = %v, %v", contents, err)
	}
}
