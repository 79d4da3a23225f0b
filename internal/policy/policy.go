// Package policy filters generated candidates against target password
// composition rules, so guess lists spend no room on passwords the
// target system would never have accepted.
package policy

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// specialChars is the character set counted as "special" by the class
// requirements.
const specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?/\\`~\"' "

// Policy describes a password composition policy. The zero value
// accepts everything except the empty password.
type Policy struct {
	MinLength int `toml:"min_length"`
	MaxLength int `toml:"max_length"`

	RequireLowercase bool `toml:"require_lowercase"`
	RequireUppercase bool `toml:"require_uppercase"`
	RequireDigit     bool `toml:"require_digit"`
	RequireSpecial   bool `toml:"require_special"`

	MinLowercase int `toml:"min_lowercase"`
	MinUppercase int `toml:"min_uppercase"`
	MinDigits    int `toml:"min_digits"`
	MinSpecial   int `toml:"min_special"`

	// BlacklistWords rejects passwords containing any of these,
	// case-insensitively. BlacklistPatterns are regular expressions
	// matched case-insensitively anywhere in the password.
	BlacklistWords    []string `toml:"blacklist_words"`
	BlacklistPatterns []string `toml:"blacklist_patterns"`

	// MaxConsecutive caps runs of one repeated character; 0 disables
	// the check.
	MaxConsecutive int `toml:"max_consecutive"`

	compiled []*regexp.Regexp
}

// Compile validates and compiles the blacklist patterns. Validate
// compiles lazily, but a bad pattern then rejects every password;
// callers loading untrusted policy files should Compile up front.
func (p *Policy) Compile() error {
	compiled := make([]*regexp.Regexp, 0, len(p.BlacklistPatterns))
	for _, pat := range p.BlacklistPatterns {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			return fmt.Errorf("blacklist pattern %q: %w", pat, err)
		}
		compiled = append(compiled, re)
	}
	p.compiled = compiled
	return nil
}

// Validate reports whether the password meets the policy.
func (p *Policy) Validate(password string) bool {
	return p.Reason(password) == ""
}

// Reason returns the first policy requirement the password fails, or
// "" when it passes. Checks run cheapest first.
func (p *Policy) Reason(password string) string {
	n := len([]rune(password))
	if n < p.MinLength || n == 0 {
		return fmt.Sprintf("shorter than %d characters", max(p.MinLength, 1))
	}
	if p.MaxLength > 0 && n > p.MaxLength {
		return fmt.Sprintf("longer than %d characters", p.MaxLength)
	}

	var lower, upper, digit, special int
	for _, c := range password {
		switch {
		case unicode.IsLower(c):
			lower++
		case unicode.IsUpper(c):
			upper++
		case unicode.IsDigit(c):
			digit++
		}
		if strings.ContainsRune(specialChars, c) {
			special++
		}
	}
	switch {
	case p.RequireLowercase && lower == 0:
		return "no lowercase letter"
	case p.RequireUppercase && upper == 0:
		return "no uppercase letter"
	case p.RequireDigit && digit == 0:
		return "no digit"
	case p.RequireSpecial && special == 0:
		return "no special character"
	case lower < p.MinLowercase:
		return fmt.Sprintf("fewer than %d lowercase letters", p.MinLowercase)
	case upper < p.MinUppercase:
		return fmt.Sprintf("fewer than %d uppercase letters", p.MinUppercase)
	case digit < p.MinDigits:
		return fmt.Sprintf("fewer than %d digits", p.MinDigits)
	case special < p.MinSpecial:
		return fmt.Sprintf("fewer than %d special characters", p.MinSpecial)
	}

	folded := strings.ToLower(password)
	for _, word := range p.BlacklistWords {
		if strings.Contains(folded, strings.ToLower(word)) {
			return fmt.Sprintf("contains blacklisted word %q", word)
		}
	}

	if p.compiled == nil && len(p.BlacklistPatterns) > 0 {
		if err := p.Compile(); err != nil {
			return fmt.Sprintf("invalid blacklist pattern: %v", err)
		}
	}
	for i, re := range p.compiled {
		if re.MatchString(password) {
			return fmt.Sprintf("matches blacklisted pattern %q", p.BlacklistPatterns[i])
		}
	}

	if p.MaxConsecutive > 0 {
		run, prev := 0, rune(-1)
		for _, c := range password {
			if c == prev {
				run++
				if run > p.MaxConsecutive {
					return fmt.Sprintf("more than %d consecutive %q", p.MaxConsecutive, c)
				}
			} else {
				run = 1
				prev = c
			}
		}
	}
	return ""
}

// Filter returns the passwords that meet the policy, in input order.
func (p *Policy) Filter(passwords []string) []string {
	out := make([]string, 0, len(passwords))
	for _, pw := range passwords {
		if p.Validate(pw) {
			out = append(out, pw)
		}
	}
	return out
}

// String renders a one-line summary of the active requirements.
func (p *Policy) String() string {
	parts := []string{fmt.Sprintf("length %d-%d", p.MinLength, p.MaxLength)}
	classes := []string{}
	req := func(name string, required bool, minimum int) {
		if required || minimum > 0 {
			classes = append(classes, fmt.Sprintf("%s>=%d", name, max(minimum, 1)))
		}
	}
	req("lowercase", p.RequireLowercase, p.MinLowercase)
	req("uppercase", p.RequireUppercase, p.MinUppercase)
	req("digits", p.RequireDigit, p.MinDigits)
	req("special", p.RequireSpecial, p.MinSpecial)
	if len(classes) > 0 {
		parts = append(parts, "require "+strings.Join(classes, ", "))
	}
	if len(p.BlacklistWords) > 0 {
		parts = append(parts, fmt.Sprintf("%d blacklisted words", len(p.BlacklistWords)))
	}
	if len(p.BlacklistPatterns) > 0 {
		parts = append(parts, fmt.Sprintf("%d blacklisted patterns", len(p.BlacklistPatterns)))
	}
	if p.MaxConsecutive > 0 {
		parts = append(parts, fmt.Sprintf("max %d consecutive", p.MaxConsecutive))
	}
	return strings.Join(parts, " | ")
}

// Preset returns a named stock policy: basic, moderate, strong, or
// enterprise.
func Preset(name string) (Policy, error) {
	switch name {
	case "basic":
		return Policy{MinLength: 6, MaxLength: 128}, nil
	case "moderate":
		return Policy{
			MinLength: 8, MaxLength: 128,
			RequireLowercase: true, RequireUppercase: true, RequireDigit: true,
		}, nil
	case "strong":
		return Policy{
			MinLength: 12, MaxLength: 128,
			RequireLowercase: true, RequireUppercase: true,
			RequireDigit: true, RequireSpecial: true,
			BlacklistWords: []string{"password", "admin", "user", "test"},
		}, nil
	case "enterprise":
		return Policy{
			MinLength: 14, MaxLength: 128,
			MinLowercase: 1, MinUppercase: 1, MinDigits: 1, MinSpecial: 1,
			BlacklistWords: []string{
				"password", "admin", "user", "test", "guest", "root", "administrator",
			},
			MaxConsecutive: 3,
		}, nil
	}
	return Policy{}, fmt.Errorf("unknown policy preset %q", name)
}
