// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package glob implements shell-style wildcard matching for repository paths.
//
// Unlike path.Match, '*' is not stopped by '/', so "src/*" matches
// "src/lib/sub/file.go". Supported syntax:
//
//	*        any run of characters, including '/'
//	?        exactly one character
//	[abc]    one character from the set; ranges like [a-z] are allowed
//	[!abc]   one character not in the set
//
// A '[' without a closing ']' matches a literal '['. Matching is case
// sensitive and always covers the whole name.
package glob

import (
	"regexp"
	"strings"
	"sync"
)

// Pattern is a compiled glob.
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

var compiled sync.Map // string -> *Pattern

// Compile translates a glob into a Pattern. Compiled patterns are cached.
func Compile(pattern string) *Pattern {
	if p, ok := compiled.Load(pattern); ok {
		return p.(*Pattern)
	}
	p := &Pattern{raw: pattern, re: regexp.MustCompile(translate(pattern))}
	compiled.Store(pattern, p)
	return p
}

// Match reports whether name matches the pattern.
func (p *Pattern) Match(name string) bool {
	return p.re.MatchString(name)
}

// String returns the original glob.
func (p *Pattern) String() string {
	return p.raw
}

// Match reports whether name matches pattern.
func Match(pattern, name string) bool {
	return Compile(pattern).Match(name)
}

// MatchAny reports whether name matches at least one of patterns.
func MatchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if Match(p, name) {
			return true
		}
	}
	return false
}

// CleanPatterns strips one pair of matching surrounding quotes from each
// pattern. Patterns forwarded through shell wrappers often arrive as "'src/*'".
func CleanPatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if len(p) >= 2 {
			first, last := p[0], p[len(p)-1]
			if (first == '\'' || first == '"') && first == last {
				p = p[1 : len(p)-1]
			}
		}
		out = append(out, p)
	}
	return out
}

// translate turns a glob into an anchored regular expression.
func translate(pat string) string {
	var b strings.Builder
	b.WriteString(`(?s)^`)

	rs := []rune(pat)
	n := len(rs)
	for i := 0; i < n; {
		c := rs[i]
		i++
		switch c {
		case '*':
			// collapse runs of '*'
			for i < n && rs[i] == '*' {
				i++
			}
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		case '[':
			j := i
			if j < n && rs[j] == '!' {
				j++
			}
			if j < n && rs[j] == ']' {
				j++
			}
			for j < n && rs[j] != ']' {
				j++
			}
			if j >= n {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(classExpr(rs[i:j]))
			i = j + 1
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString(`$`)
	return b.String()
}

// classExpr converts the body of a bracket expression (without brackets).
// Reversed ranges such as "z-a" are empty and dropped; a class left with
// nothing in it matches no character, or any character when negated.
func classExpr(body []rune) string {
	negate := false
	if len(body) > 0 && body[0] == '!' {
		negate = true
		body = body[1:]
	}

	var items []string
	for k := 0; k < len(body); k++ {
		if k+2 < len(body) && body[k+1] == '-' {
			lo, hi := body[k], body[k+2]
			k += 2
			if lo > hi {
				continue
			}
			items = append(items, escapeClassRune(lo)+"-"+escapeClassRune(hi))
			continue
		}
		items = append(items, escapeClassRune(body[k]))
	}

	if len(items) == 0 {
		if negate {
			return `.`
		}
		return `[^\x00-\x{10FFFF}]`
	}
	var b strings.Builder
	b.WriteByte('[')
	if negate {
		b.WriteByte('^')
	}
	for _, it := range items {
		b.WriteString(it)
	}
	b.WriteByte(']')
	return b.String()
}

func escapeClassRune(r rune) string {
	switch r {
	case '\\', ']', '[', '^', '-':
		return `\` + string(r)
	}
	return string(r)
}
