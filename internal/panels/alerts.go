package panels

import (
	"net/http"

	"github.com/noelruault/lazyops/internal/action"
	"github.com/noelruault/lazyops/internal/auth"
	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/selection"
)

var alertIDField = action.Field{
	Name:      "alert_id",
	Label:     i18n.T("告警 ID", "Alert ID"),
	In:        action.InPath,
	Required:  true,
	Selection: selection.AlertID,
}

var commentField = action.Field{Name: "comment", Label: i18n.T("备注", "Comment")}

func alertRow(r action.Row) string {
	return joinNonEmpty(" | ",
		r.Str("id"),
		r.StrOr("severity", "-"),
		r.StrOr("status", "-"),
		r.Str("title"),
	)
}

// Alerts covers alert triage: listing, acknowledging, closing and routing.
var Alerts = Panel{
	ID:      "alerts",
	Title:   i18n.T("告警中心", "Alerts"),
	WebPath: "/console/alerts",
	Actions: []action.Descriptor{
		{
			ID:         "list",
			Title:      i18n.T("查询告警", "List alerts"),
			Method:     http.MethodGet,
			Path:       "/api/alert/alerts",
			Capability: auth.AlertRead,
			Pending:    i18n.T("查询中...", "Loading..."),
			Fields: []action.Field{
				{Name: "status", Label: i18n.T("状态", "Status"), In: action.InQuery, Placeholder: "OPEN / ACKED / CLOSED"},
				{Name: "severity", Label: i18n.T("级别", "Severity"), In: action.InQuery},
				{Name: "keyword", Label: i18n.T("关键字", "Keyword"), In: action.InQuery},
			},
			Format: action.FormatLines,
			Row:    alertRow,
			Empty:  i18n.T("暂无告警记录。", "No alerts."),
		},
		{
			ID:         "get",
			Title:      i18n.T("告警详情", "Alert details"),
			Method:     http.MethodGet,
			Path:       "/api/alert/alerts/{alert_id}",
			Capability: auth.AlertRead,
			Pending:    i18n.T("加载中...", "Loading..."),
			Fields:     []action.Field{alertIDField},
			Format:     action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已选中告警：%s", "Selected alert: %s"), r.StrOr("id", r.Form.Get("alert_id")))
			},
			Propagate: []action.Propagation{{From: "id", Key: selection.AlertID}},
		},
		{
			ID:         "ack",
			Title:      i18n.T("确认告警", "Acknowledge"),
			Method:     http.MethodPost,
			Path:       "/api/alert/alerts/{alert_id}/ack",
			Capability: auth.AlertWrite,
			Pending:    i18n.T("确认中...", "Acknowledging..."),
			Fields:     []action.Field{alertIDField, commentField},
			Format:     action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已确认告警：%s -> %s", "Alert acknowledged: %s -> %s"), r.Form.Get("alert_id"), r.StrOr("status", "ACKED"))
			},
			Propagate: []action.Propagation{{From: "alert_id", Key: selection.AlertID}},
		},
		{
			ID:         "close",
			Title:      i18n.T("关闭告警", "Close alert"),
			Method:     http.MethodPost,
			Path:       "/api/alert/alerts/{alert_id}/close",
			Capability: auth.AlertWrite,
			Pending:    i18n.T("关闭中...", "Closing..."),
			Fields: []action.Field{
				alertIDField,
				{Name: "resolution", Label: i18n.T("处理结论", "Resolution")},
				commentField,
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已关闭告警：%s -> %s", "Alert closed: %s -> %s"), r.Form.Get("alert_id"), r.StrOr("status", "CLOSED"))
			},
		},
		{
			ID:         "batch-close",
			Title:      i18n.T("批量关闭", "Batch close"),
			Method:     http.MethodPost,
			Path:       "/api/alert/alerts/{id}/close",
			Capability: auth.AlertWrite,
			Pending:    i18n.T("批量关闭中...", "Closing..."),
			Fields: []action.Field{
				{Name: "batchCloseIds", Label: i18n.T("告警 ID（每行一个）", "Alert IDs (one per line)"), Kind: action.Lines, Required: true},
				commentField,
			},
			Batch: &action.Batch{Field: "batchCloseIds", Param: "id", Label: i18n.T("批量关闭", "Batch close")},
		},
		{
			ID:         "assign",
			Title:      i18n.T("指派处理人", "Assign"),
			Method:     http.MethodPost,
			Path:       "/api/alert/alerts/{alert_id}/assign",
			Capability: auth.AlertWrite,
			Pending:    i18n.T("指派中...", "Assigning..."),
			Fields: []action.Field{
				alertIDField,
				{Name: "assignee", Label: i18n.T("处理人", "Assignee"), Required: true, Selection: selection.UserID},
				commentField,
			},
			Success: func(r action.Result) string {
				return r.T(i18n.T("已指派告警 %s 给 %s", "Alert %s assigned to %s"), r.Form.Get("alert_id"), r.StrOr("assignee", "-"))
			},
		},
		{
			ID:         "routing-rule",
			Title:      i18n.T("新建路由规则", "Create routing rule"),
			Method:     http.MethodPost,
			Path:       "/api/alert/routing-rules",
			Capability: auth.AlertWrite,
			Pending:    i18n.T("创建中...", "Creating..."),
			Fields: []action.Field{
				{Name: "name", Label: i18n.T("规则名称", "Name"), Required: true},
				{Name: "match", Label: i18n.T("匹配条件 (JSON)", "Match (JSON)"), Kind: action.JSON, Default: "{}"},
				{Name: "channels", Label: i18n.T("通知渠道（每行一个）", "Channels (one per line)"), Kind: action.Lines},
				{Name: "escalate_after_minutes", Label: i18n.T("升级时间（分钟）", "Escalate after (min)"), Kind: action.Int},
				{Name: "enabled", Label: i18n.T("启用", "Enabled"), Kind: action.Bool, Default: "true"},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已创建路由规则：%s", "Routing rule created: %s"), r.StrOr("id", r.Form.Get("name")))
			},
		},
	},
}
