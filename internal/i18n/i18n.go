// Package i18n holds the console's user-facing strings for the supported
// locales.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Locale selects a message catalog.
type Locale string

const (
	ZH Locale = "zh"
	EN Locale = "en"
)

var matcher = language.NewMatcher([]language.Tag{
	language.Chinese, // first entry is the fallback
	language.English,
})

// Resolve maps any BCP 47 tag (zh-CN, en_US, "") to a supported locale.
func Resolve(tag string) Locale {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return ZH
	}
	_, idx := language.MatchStrings(matcher, tag)
	if idx == 1 {
		return EN
	}
	return ZH
}

// Text is a string available in every supported locale.
type Text struct {
	ZH string
	EN string
}

// T builds a Text.
func T(zh, en string) Text { return Text{ZH: zh, EN: en} }

// In returns the text for loc, falling back to Chinese.
func (t Text) In(loc Locale) string {
	if loc == EN && t.EN != "" {
		return t.EN
	}
	if t.ZH == "" {
		return t.EN
	}
	return t.ZH
}

// Format renders the text for loc with fmt verbs.
func (t Text) Format(loc Locale, args ...any) string {
	if len(args) == 0 {
		return t.In(loc)
	}
	return fmt.Sprintf(t.In(loc), args...)
}

// IsZero reports whether no translation is set.
func (t Text) IsZero() bool { return t.ZH == "" && t.EN == "" }

// Shared messages.
var (
	RequestFailed    = T("请求失败，请稍后重试。", "request failed")
	NotReady         = T("未登录或控制台未就绪，操作已禁用。", "Console is not authenticated; actions are disabled.")
	NoPermission     = T("当前账号无权执行该操作。", "You do not have permission to perform this action.")
	RequiredField    = T("请填写：%s", "Required: %s")
	InvalidJSON      = T("%s 不是合法的 JSON：%v", "%s is not valid JSON: %v")
	InvalidInt       = T("%s 必须是整数。", "%s must be an integer.")
	InvalidBool      = T("%s 必须是 true 或 false。", "%s must be true or false.")
	Pending          = T("处理中...", "Working...")
	Busy             = T("操作进行中，请稍候。", "Action already in progress.")
	Done             = T("操作成功。", "Done.")
	BatchEmpty       = T("请至少输入一个 ID。", "Enter at least one ID.")
	BatchComplete    = T("%s完成：成功 %d/%d。", "%s complete: %d/%d succeeded.")
	BatchPartial     = T("%s部分完成：成功 %d/%d。%s", "%s partially complete: %d/%d succeeded. %s")
	Exported         = T("已导出：%s", "Exported: %s")
	ExportDisabled   = T("未配置导出存储桶。", "No export bucket configured.")
	NothingToExport  = T("没有可导出的结果。", "Nothing to export.")
	Copied           = T("已复制：%s", "Copied: %s")
	NothingSelected  = T("当前没有选中的对象。", "Nothing is selected.")
	FavoriteAdded    = T("已收藏：%s", "Added to favorites: %s")
	FavoriteRemoved  = T("已取消收藏：%s", "Removed from favorites: %s")
	DashboardOffline = T("实时通道未连接。", "Realtime channel disconnected.")
)

// ListSeparator joins per-item failure messages.
func ListSeparator(loc Locale) string {
	if loc == EN {
		return "; "
	}
	return "；"
}
