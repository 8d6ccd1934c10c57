package panels

import (
	"net/http"

	"github.com/noelruault/lazyops/internal/action"
	"github.com/noelruault/lazyops/internal/auth"
	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/selection"
)

// Compliance tracks control checks and evidence.
var Compliance = Panel{
	ID:      "compliance",
	Title:   i18n.T("合规管理", "Compliance"),
	WebPath: "/console/compliance",
	Actions: []action.Descriptor{
		{
			ID:      "controls",
			Title:   i18n.T("控制项列表", "List controls"),
			Method:  http.MethodGet,
			Path:    "/api/compliance/controls",
			Pending: i18n.T("查询中...", "Loading..."),
			Fields: []action.Field{
				{Name: "framework", Label: i18n.T("框架", "Framework"), In: action.InQuery, Placeholder: "ISO27001"},
				{Name: "status", Label: i18n.T("状态", "Status"), In: action.InQuery},
			},
			Format: action.FormatLines,
			Row: func(r action.Row) string {
				return joinNonEmpty(" | ", r.Str("code"), r.Str("title"), r.StrOr("status", "-"))
			},
			Empty: i18n.T("暂无控制项。", "No controls."),
		},
		{
			ID:         "evidence",
			Title:      i18n.T("提交证据", "Submit evidence"),
			Method:     http.MethodPost,
			Path:       "/api/compliance/controls/{control_code}/evidence",
			Capability: auth.ComplianceWrite,
			Pending:    i18n.T("提交中...", "Submitting..."),
			Fields: []action.Field{
				{Name: "control_code", Label: i18n.T("控制项编号", "Control code"), In: action.InPath, Required: true},
				{Name: "summary", Label: i18n.T("摘要", "Summary"), Required: true},
				{Name: "links", Label: i18n.T("链接（每行一个）", "Links (one per line)"), Kind: action.Lines},
				{Name: "metadata", Label: i18n.T("元数据 (JSON)", "Metadata (JSON)"), Kind: action.JSON, Default: "{}"},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已提交证据：%s", "Evidence submitted: %s"), r.StrOr("id", "-"))
			},
		},
		{
			ID:         "exception",
			Title:      i18n.T("申请豁免", "Request exception"),
			Method:     http.MethodPost,
			Path:       "/api/compliance/exceptions",
			Capability: auth.ComplianceWrite,
			Pending:    i18n.T("提交中...", "Submitting..."),
			Fields: []action.Field{
				{Name: "control_code", Label: i18n.T("控制项编号", "Control code"), Required: true},
				{Name: "justification", Label: i18n.T("理由", "Justification"), Required: true},
				{Name: "expires_on", Label: i18n.T("到期日", "Expires on"), Placeholder: "2026-12-31"},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("豁免申请已提交：%s -> %s", "Exception requested: %s -> %s"), r.StrOr("id", "-"), r.StrOr("status", "PENDING"))
			},
		},
	},
}

// Identity manages console users and roles.
var Identity = Panel{
	ID:      "identity",
	Title:   i18n.T("身份与权限", "Identity"),
	WebPath: "/console/identity",
	Actions: []action.Descriptor{
		{
			ID:      "users",
			Title:   i18n.T("用户列表", "List users"),
			Method:  http.MethodGet,
			Path:    "/api/identity/users",
			Pending: i18n.T("查询中...", "Loading..."),
			Fields: []action.Field{
				{Name: "role", Label: i18n.T("角色", "Role"), In: action.InQuery},
				{Name: "keyword", Label: i18n.T("关键字", "Keyword"), In: action.InQuery},
			},
			Format: action.FormatLines,
			Row: func(r action.Row) string {
				return joinNonEmpty(" | ", r.Str("id"), r.Str("email"), r.Str("roles"))
			},
			Empty: i18n.T("暂无用户。", "No users."),
		},
		{
			ID:         "invite",
			Title:      i18n.T("邀请用户", "Invite user"),
			Method:     http.MethodPost,
			Path:       "/api/identity/users",
			Capability: auth.IdentityWrite,
			Pending:    i18n.T("邀请中...", "Inviting..."),
			Fields: []action.Field{
				{Name: "email", Label: i18n.T("邮箱", "Email"), Required: true},
				{Name: "display_name", Label: i18n.T("姓名", "Name")},
				{Name: "roles", Label: i18n.T("角色（每行一个）", "Roles (one per line)"), Kind: action.Lines},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已邀请用户：%s", "User invited: %s"), r.StrOr("email", "-"))
			},
			Propagate: []action.Propagation{{From: "id", Key: selection.UserID}},
		},
		{
			ID:         "batch-disable",
			Title:      i18n.T("批量停用", "Batch disable"),
			Method:     http.MethodPost,
			Path:       "/api/identity/users/{id}/disable",
			Capability: auth.IdentityWrite,
			Pending:    i18n.T("停用中...", "Disabling..."),
			Fields: []action.Field{
				{Name: "userIds", Label: i18n.T("用户 ID（每行一个）", "User IDs (one per line)"), Kind: action.Lines, Required: true},
			},
			Batch: &action.Batch{Field: "userIds", Param: "id", Label: i18n.T("批量停用", "Batch disable")},
		},
	},
}

// OpenPlatform manages third-party applications and their API keys.
var OpenPlatform = Panel{
	ID:      "open-platform",
	Title:   i18n.T("开放平台", "Open platform"),
	WebPath: "/console/open-platform",
	Actions: []action.Descriptor{
		{
			ID:      "apps",
			Title:   i18n.T("应用列表", "List apps"),
			Method:  http.MethodGet,
			Path:    "/api/open-platform/apps",
			Pending: i18n.T("查询中...", "Loading..."),
			Format:  action.FormatLines,
			Row: func(r action.Row) string {
				return joinNonEmpty(" | ", r.Str("app_id"), r.Str("name"), r.StrOr("status", "-"))
			},
			Empty: i18n.T("暂无应用。", "No apps."),
		},
		{
			ID:         "create-app",
			Title:      i18n.T("创建应用", "Create app"),
			Method:     http.MethodPost,
			Path:       "/api/open-platform/apps",
			Capability: auth.OpenPlatformWrite,
			Pending:    i18n.T("创建中...", "Creating..."),
			Fields: []action.Field{
				{Name: "name", Label: i18n.T("应用名称", "Name"), Required: true},
				{Name: "callback_url", Label: i18n.T("回调地址", "Callback URL")},
				{Name: "scopes", Label: i18n.T("权限范围（每行一个）", "Scopes (one per line)"), Kind: action.Lines},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已创建应用：%s", "App created: %s"), r.StrOr("app_id", "-"))
			},
			Propagate: []action.Propagation{{From: "app_id", Key: selection.AppID}},
		},
		{
			ID:         "rotate-key",
			Title:      i18n.T("轮换密钥", "Rotate key"),
			Method:     http.MethodPost,
			Path:       "/api/open-platform/apps/{app_id}/keys/rotate",
			Capability: auth.OpenPlatformWrite,
			Pending:    i18n.T("轮换中...", "Rotating..."),
			Fields: []action.Field{
				{Name: "app_id", Label: i18n.T("应用 ID", "App ID"), In: action.InPath, Required: true, Selection: selection.AppID},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("密钥已轮换：%s", "Key rotated: %s"), r.Form.Get("app_id"))
			},
		},
	},
}
