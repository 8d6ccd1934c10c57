package auth

import (
	"sort"
	"strings"
)

// Well-known capability names checked by write-class actions.
const (
	AlertRead          = "alert:read"
	AlertWrite         = "alert:write"
	AIWrite            = "ai:write"
	AssetWrite         = "asset:write"
	BillingRead        = "billing:read"
	BillingWrite       = "billing:write"
	ComplianceWrite    = "compliance:write"
	TaskWrite          = "task:write"
	ReportingWrite     = "reporting:write"
	ObservabilityWrite = "observability:write"
	OpenPlatformWrite  = "open-platform:write"
	IdentityWrite      = "identity:write"
	OutcomesWrite      = "outcomes:write"
)

// Context is the authentication state shared by every request. It is built
// once at start-up and never changes afterwards.
type Context struct {
	token     string
	csrfToken string
	tenantID  string
	caps      map[string]struct{}
}

// New builds an immutable auth context. Blank capability names are ignored.
func New(token, csrfToken, tenantID string, capabilities ...string) Context {
	caps := make(map[string]struct{}, len(capabilities))
	for _, c := range capabilities {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		caps[c] = struct{}{}
	}
	return Context{
		token:     strings.TrimSpace(token),
		csrfToken: strings.TrimSpace(csrfToken),
		tenantID:  strings.TrimSpace(tenantID),
		caps:      caps,
	}
}

func (c Context) Token() string     { return c.token }
func (c Context) CSRFToken() string { return c.csrfToken }
func (c Context) TenantID() string  { return c.tenantID }

// Ready reports whether requests can be issued at all.
func (c Context) Ready() bool {
	return c.token != ""
}

// Can reports whether the capability was granted. An empty capability is
// always allowed.
func (c Context) Can(capability string) bool {
	if capability == "" {
		return true
	}
	_, ok := c.caps[capability]
	return ok
}

// Capabilities returns the granted capabilities in sorted order.
func (c Context) Capabilities() []string {
	out := make([]string, 0, len(c.caps))
	for k := range c.caps {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
