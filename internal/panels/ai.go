package panels

import (
	"net/http"

	"github.com/noelruault/lazyops/internal/action"
	"github.com/noelruault/lazyops/internal/auth"
	"github.com/noelruault/lazyops/internal/i18n"
	"github.com/noelruault/lazyops/internal/selection"
)

var modelKeyField = action.Field{
	Name:      "model_key",
	Label:     i18n.T("模型标识", "Model key"),
	In:        action.InPath,
	Required:  true,
	Selection: selection.ModelKey,
}

// AI manages the model registry used by the assistant features.
var AI = Panel{
	ID:      "ai",
	Title:   i18n.T("AI 模型", "AI models"),
	WebPath: "/console/ai",
	Actions: []action.Descriptor{
		{
			ID:      "models",
			Title:   i18n.T("查询模型", "List models"),
			Method:  http.MethodGet,
			Path:    "/api/ai/models",
			Pending: i18n.T("查询中...", "Loading..."),
			Fields: []action.Field{
				{Name: "provider", Label: i18n.T("提供方", "Provider"), In: action.InQuery},
				{Name: "status", Label: i18n.T("状态", "Status"), In: action.InQuery},
			},
			Format: action.FormatLines,
			Row: func(r action.Row) string {
				return joinNonEmpty(" | ", r.Str("model_key"), r.StrOr("provider", "-"), r.Str("display_name"), r.StrOr("status", "-"))
			},
			Empty: i18n.T("暂无模型记录。", "No models."),
		},
		{
			ID:         "create-model",
			Title:      i18n.T("新建模型", "Create model"),
			Method:     http.MethodPost,
			Path:       "/api/ai/models",
			Capability: auth.AIWrite,
			Pending:    i18n.T("创建中...", "Creating..."),
			Fields: []action.Field{
				{Name: "model_key", Label: i18n.T("模型标识", "Model key"), Required: true},
				{Name: "provider", Label: i18n.T("提供方", "Provider"), Required: true},
				{Name: "display_name", Label: i18n.T("显示名称", "Display name")},
				{Name: "endpoint", Label: i18n.T("接口地址", "Endpoint")},
				{Name: "max_tokens", Label: i18n.T("最大 Token", "Max tokens"), Kind: action.Int},
				{Name: "params", Label: i18n.T("参数 (JSON)", "Params (JSON)"), Kind: action.JSON, Default: "{}"},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已创建模型：%s", "Model created: %s"), r.StrOr("model_key", "-"))
			},
			Propagate: []action.Propagation{{From: "model_key", Key: selection.ModelKey}},
		},
		{
			ID:         "update-model",
			Title:      i18n.T("更新模型", "Update model"),
			Method:     http.MethodPut,
			Path:       "/api/ai/models/{model_key}",
			Capability: auth.AIWrite,
			Pending:    i18n.T("保存中...", "Saving..."),
			Fields: []action.Field{
				modelKeyField,
				{Name: "display_name", Label: i18n.T("显示名称", "Display name")},
				{Name: "status", Label: i18n.T("状态", "Status"), Placeholder: "active / disabled"},
				{Name: "params", Label: i18n.T("参数 (JSON)", "Params (JSON)"), Kind: action.JSON, Default: "{}"},
			},
			Format: action.FormatJSON,
			Success: func(r action.Result) string {
				return r.T(i18n.T("已更新模型：%s", "Model updated: %s"), r.Form.Get("model_key"))
			},
		},
		{
			ID:         "evaluate",
			Title:      i18n.T("模型试运行", "Evaluate prompt"),
			Method:     http.MethodPost,
			Path:       "/api/ai/models/{model_key}/evaluate",
			Capability: auth.AIWrite,
			Pending:    i18n.T("运行中...", "Running..."),
			Fields: []action.Field{
				modelKeyField,
				{Name: "prompt", Label: i18n.T("提示词", "Prompt"), Required: true},
				{Name: "variables", Label: i18n.T("变量 (JSON)", "Variables (JSON)"), Kind: action.JSON, Default: "{}"},
			},
			Format: action.FormatJSON,
		},
	},
}
