package rules

// DefaultRules returns the built-in ruleset. Repository configuration can
// re-level, replace, or disable any of these by pattern, or add its own.
func DefaultRules() []Rule {
	return []Rule{
		{
			Pattern:     "master",
			Level:       Warning,
			Mode:        ModeWord,
			Suggestions: []string{"main", "primary", "leader"},
		},
		{
			Pattern:     "slave",
			Level:       Warning,
			Mode:        ModeWord,
			Suggestions: []string{"replica", "secondary", "follower"},
		},
		{
			Pattern:     "whitelist",
			Level:       Warning,
			Mode:        ModeWord,
			Suggestions: []string{"allowlist", "passlist"},
		},
		{
			Pattern:     "blacklist",
			Level:       Warning,
			Mode:        ModeWord,
			Suggestions: []string{"denylist", "blocklist"},
		},
		{
			Pattern:     `sanity[ _-]check`,
			Level:       Notice,
			Mode:        ModeSubstring,
			Suggestions: []string{"confidence check", "quick check"},
		},
		{
			Pattern:     "grandfathered",
			Level:       Notice,
			Mode:        ModeWord,
			Suggestions: []string{"legacy", "exempted"},
		},
		{
			Pattern:     "dummy",
			Level:       Notice,
			Mode:        ModeWord,
			Suggestions: []string{"placeholder", "sample"},
		},
		{
			Pattern:     `man[ _-]?hours?`,
			Level:       Notice,
			Mode:        ModeSubstring,
			Suggestions: []string{"person-hours", "engineering time"},
		},
	}
}
