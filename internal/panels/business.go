package panels

import (
	"net/http"

	"github.com/noelruault/lazyops/internal/action"
	"github.com/noelruault/lazyops/internal/auth"
	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/selection"
)

// Billing exposes usage, quotas and invoices.
var Billing = Panel{
	ID:      "billing",
	Title:   i18n.T("计费中心", "Billing"),
	WebPath: "/console/billing",
	Actions: []action.Descriptor{
		{
			ID:         "usage",
			Title:      i18n.T("用量查询", "Usage"),
			Method:     http.MethodGet,
			Path:       "/api/billing/usage",
			Capability: auth.BillingRead,
			Pending:    i18n.T("查询中...", "Loading..."),
			Fields: []action.Field{
				{Name: "month", Label: i18n.T("月份", "Month"), In: action.InQuery, Placeholder: "2026-10"},
			},
			Format: action.FormatJSON,
		},
		{
			ID:         "invoices",
			Title:      i18n.T("账单列表", "Invoices"),
			Method:     http.MethodGet,
			Path:       "/api/billing/invoices",
			Capability: auth.BillingRead,
			Pending:    i18n.T("查询中...", "Loading..."),
			Fields: []action.Field{
				{Name: "status", Label: i18n.T("状态", "Status"), In: action.InQuery},
			},
			Format: action.FormatLines,
			Row: func(r action.Row) string {
				return joinNonEmpty(" | ", r.Str("id"), r.Str("period"), r.Str("amount")+" "+r.Str("currency"), r.StrOr("status", "-"))
			},
			Empty: i18n.T("暂无账单。", "No invoices."),
		},
		{
			ID:         "quota",
			Title:      i18n.T("调整配额", "Update quota"),
			Method:     http.MethodPut,
			Path:       "/api/billing/quotas/{resource}",
			Capability: auth.BillingWrite,
			Pending:    i18n.T("保存中...", "Saving..."),
			Fields: []action.Field{
				{Name: "resource", Label: i18n.T("资源", "Resource"), In: action.InPath, Required: true},
				{Name: "limit", Label: i18n.T("上限", "Limit"), Kind: action.Int, Required: true},
				{Name: "hard", Label: i18n.T("硬限制", "Hard limit"), Kind: action.Bool, Default: "false"},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("配额已更新：%s = %s", "Quota updated: %s = %s"), r.Form.Get("resource"), r.StrOr("limit", "-"))
			},
		},
	},
}

var taskIDField = action.Field{
	Name:      "task_id",
	Label:     i18n.T("任务 ID", "Task ID"),
	In:        action.InPath,
	Required:  true,
	Selection: selection.TaskID,
}

// TaskCenter drives the work queue: create, claim, transition.
var TaskCenter = Panel{
	ID:      "task-center",
	Title:   i18n.T("任务中心", "Task center"),
	WebPath: "/console/tasks",
	Actions: []action.Descriptor{
		{
			ID:      "list",
			Title:   i18n.T("任务列表", "List tasks"),
			Method:  http.MethodGet,
			Path:    "/api/task-center/tasks",
			Pending: i18n.T("查询中...", "Loading..."),
			Fields: []action.Field{
				{Name: "state", Label: i18n.T("状态", "State"), In: action.InQuery},
				{Name: "assignee", Label: i18n.T("处理人", "Assignee"), In: action.InQuery, Selection: selection.UserID},
			},
			Format: action.FormatLines,
			Row: func(r action.Row) string {
				return joinNonEmpty(" | ", r.Str("id"), r.Str("title"), r.StrOr("state", "-"), r.Str("assignee"))
			},
			Empty: i18n.T("暂无任务。", "No tasks."),
		},
		{
			ID:         "create",
			Title:      i18n.T("新建任务", "Create task"),
			Method:     http.MethodPost,
			Path:       "/api/task-center/tasks",
			Capability: auth.TaskWrite,
			Pending:    i18n.T("创建中...", "Creating..."),
			Fields: []action.Field{
				{Name: "title", Label: i18n.T("标题", "Title"), Required: true},
				{Name: "description", Label: i18n.T("描述", "Description")},
				{Name: "alert_id", Label: i18n.T("关联告警", "Linked alert"), Selection: selection.AlertID},
				{Name: "due_at", Label: i18n.T("截止时间", "Due at")},
				{Name: "priority", Label: i18n.T("优先级", "Priority"), Kind: action.Int},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已创建任务：%s", "Task created: %s"), r.StrOr("id", "-"))
			},
			Propagate: []action.Propagation{{From: "id", Key: selection.TaskID}},
		},
		{
			ID:         "transition",
			Title:      i18n.T("流转任务", "Transition task"),
			Method:     http.MethodPost,
			Path:       "/api/task-center/tasks/{task_id}/transitions",
			Capability: auth.TaskWrite,
			Pending:    i18n.T("提交中...", "Submitting..."),
			Fields: []action.Field{
				taskIDField,
				{Name: "to_state", Label: i18n.T("目标状态", "To state"), Required: true, Placeholder: "IN_PROGRESS / DONE"},
				{Name: "note", Label: i18n.T("备注", "Note")},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("任务已流转：%s -> %s", "Task moved: %s -> %s"), r.Form.Get("task_id"), r.StrOr("state", r.Form.Get("to_state")))
			},
		},
		{
			ID:         "batch-claim",
			Title:      i18n.T("批量认领", "Batch claim"),
			Method:     http.MethodPost,
			Path:       "/api/task-center/tasks/{id}/claim",
			Capability: auth.TaskWrite,
			Pending:    i18n.T("认领中...", "Claiming..."),
			Fields: []action.Field{
				{Name: "taskIds", Label: i18n.T("任务 ID（每行一个）", "Task IDs (one per line)"), Kind: action.Lines, Required: true},
			},
			Batch: &action.Batch{Field: "taskIds", Param: "id", Label: i18n.T("批量认领", "Batch claim")},
		},
	},
}

var reviewIDField = action.Field{
	Name:      "review_id",
	Label:     i18n.T("评审 ID", "Review ID"),
	In:        action.InPath,
	Required:  true,
	Selection: selection.ReviewID,
}

// Outcomes is the human review queue for automated decisions.
var Outcomes = Panel{
	ID:      "outcomes",
	Title:   i18n.T("结果评审", "Outcome review"),
	WebPath: "/console/outcomes",
	Actions: []action.Descriptor{
		{
			ID:      "reviews",
			Title:   i18n.T("待评审列表", "Pending reviews"),
			Method:  http.MethodGet,
			Path:    "/api/outcomes/reviews",
			Pending: i18n.T("查询中...", "Loading..."),
			Fields: []action.Field{
				{Name: "state", Label: i18n.T("状态", "State"), In: action.InQuery, Default: "PENDING"},
			},
			Format: action.FormatLines,
			Row: func(r action.Row) string {
				return joinNonEmpty(" | ", r.Str("id"), r.Str("subject"), r.StrOr("state", "-"))
			},
			Empty: i18n.T("暂无待评审记录。", "No reviews pending."),
		},
		{
			ID:         "review",
			Title:      i18n.T("提交评审", "Submit review"),
			Method:     http.MethodPost,
			Path:       "/api/outcomes/reviews/{review_id}/actions",
			Capability: auth.OutcomesWrite,
			Pending:    i18n.T("提交中...", "Submitting..."),
			Fields: []action.Field{
				reviewIDField,
				{Name: "action_type", Label: i18n.T("动作", "Action"), Required: true, Placeholder: "approve / reject / override"},
				{Name: "note", Label: i18n.T("备注", "Note")},
				{Name: "override_payload", Label: i18n.T("覆盖内容 (JSON)", "Override payload (JSON)"), Kind: action.JSON, Default: "{}"},
				{Name: "detail", Label: i18n.T("明细 (JSON)", "Detail (JSON)"), Kind: action.JSON, Default: "{}"},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("评审已提交：%s -> %s", "Review submitted: %s -> %s"), r.Form.Get("review_id"), r.StrOr("state", r.Form.Get("action_type")))
			},
			Propagate: []action.Propagation{{From: "review_id", Key: selection.ReviewID}},
		},
	},
}
