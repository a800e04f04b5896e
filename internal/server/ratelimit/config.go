package ratelimit

import "time"

// Rule limits one method and path. A Path ending in "/" matches every path below it.
type Rule struct {
	Method string
	Path   string
	Limit  int // requests per Window
	Window time.Duration
	Burst  int // bucket capacity, Limit when 0
}

// Config holds rate limiting configuration. Requests matching no rule are not limited.
type Config struct {
	Enabled         bool
	Rules           []Rule
	CleanupInterval time.Duration
	// IdleAfter is how long an unused bucket is kept.
	IdleAfter time.Duration
	// Allowlist holds client ids that are never limited.
	Allowlist map[string]bool
}

// ForSite returns the limits of the public site: the contact form per hour
// and the admin login per minute. A zero limit disables that rule.
func ForSite(contactPerHour, loginPerMinute int) *Config {
	cfg := &Config{
		Enabled:         true,
		CleanupInterval: 5 * time.Minute,
		IdleAfter:       2 * time.Hour,
		Allowlist:       map[string]bool{},
	}
	if contactPerHour > 0 {
		cfg.Rules = append(cfg.Rules, Rule{Method: "POST", Path: "/contact", Limit: contactPerHour, Window: time.Hour})
	}
	if loginPerMinute > 0 {
		cfg.Rules = append(cfg.Rules, Rule{Method: "POST", Path: "/admin/login", Limit: loginPerMinute, Window: time.Minute})
	}
	cfg.Enabled = len(cfg.Rules) > 0
	return cfg
}

// Match returns the rule for a request, or nil. Exact paths win over prefixes.
func Match(method, path string, rules []Rule) *Rule {
	for i := range rules {
		if rules[i].Method == method && rules[i].Path == path {
			return &rules[i]
		}
	}
	for i := range rules {
		r := &rules[i]
		if r.Method == method && len(r.Path) > 1 && r.Path[len(r.Path)-1] == '/' &&
			len(path) >= len(r.Path) && path[:len(r.Path)] == r.Path {
			return r
		}
	}
	return nil
}
