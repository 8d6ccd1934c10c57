package panels

import (
	"net/http"

	"github.com/noelruault/lazyops/internal/action"
	"github.com/noelruault/lazyops/internal/auth"
	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/selection"
)

// Dashboard shows the realtime summary pushed over the dashboard channel.
var Dashboard = Panel{
	ID:       "dashboard",
	Title:    i18n.T("实时总览", "Live dashboard"),
	WebPath:  "/console",
	Realtime: true,
	Actions: []action.Descriptor{
		{
			ID:      "summary",
			Title:   i18n.T("刷新概览", "Refresh summary"),
			Method:  http.MethodGet,
			Path:    "/api/observability/summary",
			Pending: i18n.T("刷新中...", "Refreshing..."),
			Format:  action.FormatJSON,
		},
	},
}

var assetIDField = action.Field{
	Name:      "asset_id",
	Label:     i18n.T("资产 ID", "Asset ID"),
	In:        action.InPath,
	Required:  true,
	Selection: selection.AssetID,
}

// Assets is the inventory of managed hosts and devices.
var Assets = Panel{
	ID:      "assets",
	Title:   i18n.T("资产管理", "Assets"),
	WebPath: "/console/assets",
	Actions: []action.Descriptor{
		{
			ID:      "list",
			Title:   i18n.T("查询资产", "List assets"),
			Method:  http.MethodGet,
			Path:    "/api/assets",
			Pending: i18n.T("查询中...", "Loading..."),
			Fields: []action.Field{
				{Name: "type", Label: i18n.T("类型", "Type"), In: action.InQuery},
				{Name: "site", Label: i18n.T("站点", "Site"), In: action.InQuery},
				{Name: "keyword", Label: i18n.T("关键字", "Keyword"), In: action.InQuery},
			},
			Format: action.FormatLines,
			Row: func(r action.Row) string {
				return joinNonEmpty(" | ", r.Str("id"), r.Str("name"), r.StrOr("type", "-"), r.StrOr("status", "-"))
			},
			Empty: i18n.T("暂无资产记录。", "No assets."),
		},
		{
			ID:      "get",
			Title:   i18n.T("资产详情", "Asset details"),
			Method:  http.MethodGet,
			Path:    "/api/assets/{asset_id}",
			Pending: i18n.T("加载中...", "Loading..."),
			Fields:  []action.Field{assetIDField},
			Format:  action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已选中资产：%s", "Selected asset: %s"), r.StrOr("id", "-"))
			},
			Propagate: []action.Propagation{{From: "id", Key: selection.AssetID}},
		},
		{
			ID:         "create",
			Title:      i18n.T("登记资产", "Register asset"),
			Method:     http.MethodPost,
			Path:       "/api/assets",
			Capability: auth.AssetWrite,
			Pending:    i18n.T("登记中...", "Registering..."),
			Fields: []action.Field{
				{Name: "name", Label: i18n.T("名称", "Name"), Required: true},
				{Name: "type", Label: i18n.T("类型", "Type"), Required: true},
				{Name: "site", Label: i18n.T("站点", "Site")},
				{Name: "latitude", Label: i18n.T("纬度", "Latitude")},
				{Name: "longitude", Label: i18n.T("经度", "Longitude")},
				{Name: "tags", Label: i18n.T("标签（每行一个）", "Tags (one per line)"), Kind: action.Lines},
				{Name: "attributes", Label: i18n.T("属性 (JSON)", "Attributes (JSON)"), Kind: action.JSON, Default: "{}"},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已登记资产：%s", "Asset registered: %s"), r.StrOr("id", "-"))
			},
			Propagate: []action.Propagation{{From: "id", Key: selection.AssetID}},
		},
		{
			ID:         "batch-retire",
			Title:      i18n.T("批量下线", "Batch retire"),
			Method:     http.MethodPost,
			Path:       "/api/assets/{id}/retire",
			Capability: auth.AssetWrite,
			Pending:    i18n.T("下线中...", "Retiring..."),
			Fields: []action.Field{
				{Name: "assetIds", Label: i18n.T("资产 ID（每行一个）", "Asset IDs (one per line)"), Kind: action.Lines, Required: true},
				{Name: "reason", Label: i18n.T("原因", "Reason")},
			},
			Batch: &action.Batch{Field: "assetIds", Param: "id", Label: i18n.T("批量下线", "Batch retire")},
		},
	},
}

// Observability queries metrics and log search on the backend.
var Observability = Panel{
	ID:      "observability",
	Title:   i18n.T("可观测性", "Observability"),
	WebPath: "/console/observability",
	Actions: []action.Descriptor{
		{
			ID:      "metrics",
			Title:   i18n.T("指标查询", "Query metrics"),
			Method:  http.MethodGet,
			Path:    "/api/observability/metrics",
			Pending: i18n.T("查询中...", "Querying..."),
			Fields: []action.Field{
				{Name: "name", Label: i18n.T("指标名", "Metric"), In: action.InQuery, Required: true},
				{Name: "asset_id", Label: i18n.T("资产 ID", "Asset ID"), In: action.InQuery, Selection: selection.AssetID},
				{Name: "window", Label: i18n.T("时间窗口", "Window"), In: action.InQuery, Placeholder: "1h"},
			},
			Format: action.FormatLines,
			Row: func(r action.Row) string {
				return joinNonEmpty(" ", r.Str("timestamp"), r.Str("value"))
			},
			Empty: i18n.T("该时间窗口内无数据。", "No data points in window."),
		},
		{
			ID:      "logs",
			Title:   i18n.T("日志检索", "Search logs"),
			Method:  http.MethodPost,
			Path:    "/api/observability/logs/search",
			Pending: i18n.T("检索中...", "Searching..."),
			Fields: []action.Field{
				{Name: "query", Label: i18n.T("查询语句", "Query"), Required: true},
				{Name: "limit", Label: i18n.T("条数", "Limit"), Kind: action.Int, Default: "100"},
				{Name: "filters", Label: i18n.T("过滤 (JSON)", "Filters (JSON)"), Kind: action.JSON, Default: "{}"},
			},
			Format: action.FormatLines,
			Row: func(r action.Row) string {
				return joinNonEmpty(" ", r.Str("timestamp"), "["+r.StrOr("level", "info")+"]", r.Str("message"))
			},
			Empty: i18n.T("未检索到日志。", "No log lines matched."),
		},
		{
			ID:         "silence",
			Title:      i18n.T("新建静默", "Create silence"),
			Method:     http.MethodPost,
			Path:       "/api/observability/silences",
			Capability: auth.ObservabilityWrite,
			Pending:    i18n.T("创建中...", "Creating..."),
			Fields: []action.Field{
				{Name: "matchers", Label: i18n.T("匹配器 (JSON)", "Matchers (JSON)"), Kind: action.JSON, Default: "[]", Required: true},
				{Name: "duration_minutes", Label: i18n.T("时长（分钟）", "Duration (min)"), Kind: action.Int, Required: true},
				{Name: "comment", Label: i18n.T("备注", "Comment")},
			},
			Format: action.FormatJSON,
		},
	},
}

var reportIDField = action.Field{
	Name:      "report_id",
	Label:     i18n.T("报表 ID", "Report ID"),
	In:        action.InPath,
	Required:  true,
	Selection: selection.ReportID,
}

// Reporting schedules and fetches generated reports.
var Reporting = Panel{
	ID:      "reporting",
	Title:   i18n.T("报表中心", "Reporting"),
	WebPath: "/console/reporting",
	Actions: []action.Descriptor{
		{
			ID:      "list",
			Title:   i18n.T("报表列表", "List reports"),
			Method:  http.MethodGet,
			Path:    "/api/reporting/reports",
			Pending: i18n.T("查询中...", "Loading..."),
			Fields: []action.Field{
				{Name: "kind", Label: i18n.T("类型", "Kind"), In: action.InQuery},
			},
			Format: action.FormatLines,
			Row: func(r action.Row) string {
				return joinNonEmpty(" | ", r.Str("id"), r.Str("name"), r.StrOr("status", "-"), r.Str("generated_at"))
			},
			Empty: i18n.T("暂无报表。", "No reports."),
		},
		{
			ID:         "generate",
			Title:      i18n.T("生成报表", "Generate report"),
			Method:     http.MethodPost,
			Path:       "/api/reporting/reports",
			Capability: auth.ReportingWrite,
			Pending:    i18n.T("生成中...", "Generating..."),
			Fields: []action.Field{
				{Name: "kind", Label: i18n.T("类型", "Kind"), Required: true},
				{Name: "period_start", Label: i18n.T("开始日期", "Period start"), Required: true, Placeholder: "2026-01-01"},
				{Name: "period_end", Label: i18n.T("结束日期", "Period end"), Required: true, Placeholder: "2026-01-31"},
				{Name: "options", Label: i18n.T("选项 (JSON)", "Options (JSON)"), Kind: action.JSON, Default: "{}"},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已提交报表：%s（%s）", "Report queued: %s (%s)"), r.StrOr("id", "-"), r.StrOr("status", "PENDING"))
			},
			Propagate: []action.Propagation{{From: "id", Key: selection.ReportID}},
		},
		{
			ID:      "get",
			Title:   i18n.T("报表详情", "Report details"),
			Method:  http.MethodGet,
			Path:    "/api/reporting/reports/{report_id}",
			Pending: i18n.T("加载中...", "Loading..."),
			Fields:  []action.Field{reportIDField},
			Format:  action.FormatJSON,
		},
	},
}
