// Package modelname normalizes provider model identifiers into display names.
package modelname

import (
	"regexp"
	"strings"
)

// rule pairs an identifier pattern with a display renderer. Rules are
// evaluated in order and the first match wins; specific patterns must stay
// above their generalizations (dated before undated, gpt-4o before gpt-4).
type rule struct {
	pattern *regexp.Regexp
	render  func(m []string) string
}

var rules = []rule{
	// Claude, current naming: claude-<tier>-<major>-<minor>[-<date>][-thinking]
	{
		regexp.MustCompile(`^claude-(opus|sonnet|haiku)-(\d+)-(\d+)-(\d{8})(-(?:thinking|extended))?$`),
		func(m []string) string { return claudeName(m[1], m[2], m[3], m[5]) },
	},
	{
		regexp.MustCompile(`^claude-(opus|sonnet|haiku)-(\d+)-(\d{8})(-(?:thinking|extended))?$`),
		func(m []string) string { return claudeName(m[1], m[2], "", m[4]) },
	},
	{
		regexp.MustCompile(`^claude-(opus|sonnet|haiku)-(\d+)-(\d+)(-(?:thinking|extended))?$`),
		func(m []string) string { return claudeName(m[1], m[2], m[3], m[4]) },
	},
	{
		regexp.MustCompile(`^claude-(opus|sonnet|haiku)-(\d+)(-(?:thinking|extended))?$`),
		func(m []string) string { return claudeName(m[1], m[2], "", m[3]) },
	},
	// Claude, legacy naming: claude-3-5-sonnet-20241022, claude-3-opus
	{
		regexp.MustCompile(`^claude-(\d+)-(\d+)-(opus|sonnet|haiku)(?:-\d{8})?$`),
		func(m []string) string { return claudeName(m[3], m[1], m[2], "") },
	},
	{
		regexp.MustCompile(`^claude-(\d+)-(opus|sonnet|haiku)(?:-\d{8})?$`),
		func(m []string) string { return claudeName(m[2], m[1], "", "") },
	},
	{
		regexp.MustCompile(`^claude-instant(?:-[\w.]+)?$`),
		func(m []string) string { return "Claude Instant" },
	},

	// OpenAI o-series before the gpt numeric catch-all.
	{
		regexp.MustCompile(`^o(\d)(?:-(mini|preview|pro))?(?:-\d{4}-\d{2}-\d{2})?$`),
		func(m []string) string {
			name := "o" + m[1]
			if m[2] != "" {
				name += " " + titleWord(m[2])
			}
			return name
		},
	},
	{
		regexp.MustCompile(`^(?:chat)?gpt-(\d+)o-mini(?:-[\w-]+)?$`),
		func(m []string) string { return "GPT-" + m[1] + "o Mini" },
	},
	{
		regexp.MustCompile(`^(?:chat)?gpt-(\d+)o(?:-[\w-]+)?$`),
		func(m []string) string { return "GPT-" + m[1] + "o" },
	},
	{
		regexp.MustCompile(`^gpt-(\d+)\.(\d+)(?:-(mini|nano|turbo))?(?:-[\w-]+)?$`),
		func(m []string) string { return gptName(m[1]+"."+m[2], m[3]) },
	},
	{
		regexp.MustCompile(`^gpt-(\d+)(?:-(mini|nano|turbo))?(?:-[\w-]+)?$`),
		func(m []string) string { return gptName(m[1], m[2]) },
	},

	// Gemini
	{
		regexp.MustCompile(`^gemini-(\d+)\.(\d+)-(pro|flash-lite|flash|ultra)(?:-[\w-]+)?$`),
		func(m []string) string {
			return "Gemini " + m[1] + "." + m[2] + " " + titleHyphenated(m[3])
		},
	},

	// Other families
	{
		regexp.MustCompile(`^deepseek-(chat|coder|reasoner|r1|v3)(?:-[\w-]+)?$`),
		func(m []string) string { return "DeepSeek " + titleWord(m[1]) },
	},
	{
		regexp.MustCompile(`^(?:meta-)?llama-?(\d+)(?:[.-](\d+))?(?:-(\d+)[bB])?(?:-[\w-]+)?$`),
		func(m []string) string {
			name := "Llama " + m[1]
			if m[2] != "" {
				name += "." + m[2]
			}
			if m[3] != "" {
				name += " " + m[3] + "B"
			}
			return name
		},
	},
	{
		regexp.MustCompile(`^mistral-(tiny|small|medium|large)(?:-[\w-]+)?$`),
		func(m []string) string { return "Mistral " + titleWord(m[1]) },
	},
	{
		regexp.MustCompile(`^grok-(\d+)(?:[.-](\d+))?(?:-[\w-]+)?$`),
		func(m []string) string {
			name := "Grok " + m[1]
			if m[2] != "" {
				name += "." + m[2]
			}
			return name
		},
	},
	{
		regexp.MustCompile(`^qwen-?(\d+(?:\.\d+)?)(?:-[\w-]+)?$`),
		func(m []string) string { return "Qwen " + m[1] },
	},
}

// Decorative suffixes stripped when no family rule matched, tried in order.
var cleanupSuffixes = []*regexp.Regexp{
	regexp.MustCompile(`-\d{8}$`),
	regexp.MustCompile(`-\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`-(?:preview|beta|exp|experimental|latest)$`),
	regexp.MustCompile(`-v?\d+(?:\.\d+)+$`),
}

// Provider prefixes recognized in the "<provider>/<model>" convention.
var providerPrefixes = map[string]bool{
	"anthropic":  true,
	"openai":     true,
	"google":     true,
	"meta-llama": true,
	"mistralai":  true,
	"deepseek":   true,
	"x-ai":       true,
	"qwen":       true,
	"openrouter": true,
	"bedrock":    true,
	"vertex":     true,
}

// Classify maps a raw model identifier to a stable display name. It never
// fails: identifiers matching no rule are returned unchanged after prefix
// and decorative-suffix stripping. A recognized free-tier suffix is
// reflected as a trailing marker regardless of which rule matched.
func Classify(raw string) string {
	if raw == "" {
		return ""
	}

	id := raw
	if i := strings.IndexByte(id, '/'); i > 0 && providerPrefixes[strings.ToLower(id[:i])] {
		id = id[i+1:]
	}

	free := false
	if cut, ok := strings.CutSuffix(id, ":free"); ok {
		id, free = cut, true
	} else if cut, ok := strings.CutSuffix(id, "-free"); ok {
		id, free = cut, true
	}

	name := applyRules(strings.ToLower(id))
	if name == "" {
		name = id
		for _, re := range cleanupSuffixes {
			if trimmed := re.ReplaceAllString(name, ""); trimmed != "" {
				name = trimmed
			}
		}
	}

	if free {
		name += " (free)"
	}
	return name
}

func applyRules(id string) string {
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(id); m != nil {
			return r.render(m)
		}
	}
	return ""
}

// claudeName renders a Claude tier/version pair. A bare major version 4
// with no minor displays as 4.5 for the opus tier only: early opus-4
// identifiers predate the minor-version convention and the product line
// renamed them retroactively.
func claudeName(tier, major, minor, modifier string) string {
	version := major
	switch {
	case minor != "":
		version = major + "." + minor
	case tier == "opus" && major == "4":
		version = "4.5"
	}
	name := titleWord(tier) + " " + version
	switch strings.TrimPrefix(modifier, "-") {
	case "thinking":
		name += " (Thinking)"
	case "extended":
		name += " (Extended)"
	}
	return name
}

func gptName(version, variant string) string {
	name := "GPT-" + version
	if variant != "" {
		name += " " + titleWord(variant)
	}
	return name
}

func titleWord(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func titleHyphenated(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		parts[i] = titleWord(p)
	}
	return strings.Join(parts, " ")
}
