package merger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/merger"
)

func TestMergeZeroResults(t *testing.T) {
	assert.Equal(t, "", merger.Merge(nil))
	assert.Equal(t, "", merger.Merge([]string{}))
}

func TestMergeSingleUnfencedIsUnchanged(t *testing.T) {
	in := "Intro text\n\n# === Module: a ===\n\n# === Module: b ===\nbody\n"
	assert.Equal(t, in, merger.Merge([]string{in}))
}

func TestMergeSingleFencedRoundTrip(t *testing.T) {
	inner := "# Project\n\npackage main\n\nfunc main() {}"
	in := "```python\n" + inner + "\n```\n"

	out := merger.Merge([]string{in})
	assert.Equal(t, "```python\n"+inner+"\n```", out)
}

func TestMergeSingleFencedWithoutTag(t *testing.T) {
	out := merger.Merge([]string{"  ```\nhello\n```  "})
	assert.Equal(t, "```\nhello\n```", out)
}

func TestMergeKeepsFirstHeaderOnly(t *testing.T) {
	first := "# Repo overview\nGenerated summary.\n\n# === Module: core ===\nfunc A()\n"
	second := "# Repo overview (again)\n\n# === Module: util ===\nfunc B()\n"

	out := merger.Merge([]string{first, second})
	assert.Equal(t,
		"# Repo overview\nGenerated summary.\n\n# === Module: core ===\nfunc A()\n\n# === Module: util ===\nfunc B()",
		out)
	assert.NotContains(t, out, "(again)")
}

func TestMergeDropsEmptySectionAtSeam(t *testing.T) {
	first := "Header\n\n# === Module: core ===\nfunc A()\n\n# === Module: dangling ===\n"
	second := "# === Module: util ===\nfunc B()"

	out := merger.Merge([]string{first, second})
	assert.NotContains(t, out, "dangling")
	assert.Equal(t,
		"Header\n\n# === Module: core ===\nfunc A()\n\n\n# === Module: util ===\nfunc B()",
		out)
}

func TestMergeDropsSectionFollowedByAnotherMarker(t *testing.T) {
	first := "# === Module: a ===\n# === Module: b ===\nreal content"
	second := "package x"

	out := merger.Merge([]string{first, second})
	assert.Equal(t, "# === Module: b ===\nreal content\n\npackage x", out)
}

func TestMergeDropsTrailingSectionAtEnd(t *testing.T) {
	out := merger.Merge([]string{"package a\nbody", "package b\n# === Module: last ==="})
	assert.Equal(t, "package a\nbody\n\npackage b", out)
}

func TestMergeCleanupIsSinglePass(t *testing.T) {
	// Only the first marker sees a marker next; the second is followed by
	// content and survives even though its predecessor was dropped.
	first := "# === Module: a ===\n# === Module: b ===\ncontent"
	out := merger.Merge([]string{first, "package z"})
	assert.Contains(t, out, "# === Module: b ===")
	assert.NotContains(t, out, "# === Module: a ===")
}

func TestMergeFencedMultiple(t *testing.T) {
	first := "```markdown\nPreamble\n\npackage core\ntype A struct{}\n```"
	second := "```markdown\nRepeated preamble\n\npackage util\nfunc B()\n```"

	out := merger.Merge([]string{first, second})
	assert.Equal(t, "```markdown\nPreamble\n\npackage core\ntype A struct{}\n\npackage util\nfunc B()\n```", out)
}

func TestMergeLaterFenceTagIgnored(t *testing.T) {
	first := "package a\nx"
	second := "```go\npackage b\ny\n```"

	out := merger.Merge([]string{first, second})
	assert.Equal(t, "package a\nx\n\npackage b\ny", out)
}

func TestMergeNoMarkersUsesWholeText(t *testing.T) {
	out := merger.Merge([]string{"just prose one", "just prose two"})
	assert.Equal(t, "just prose one\n\njust prose two", out)
}

func TestSplit(t *testing.T) {
	m := merger.New()
	tests := []struct {
		name string
		in   string
		want merger.Parts
	}{
		{"module marker", "intro\n# === Module: a ===\nx", merger.Parts{Header: "intro\n", Body: "# === Module: a ===\nx"}},
		{"typescript", "intro\ndeclare module 'x' {\n}", merger.Parts{Header: "intro\n", Body: "declare module 'x' {\n}"}},
		{"java", "a\nb\npublic interface Foo {}", merger.Parts{Header: "a\nb\n", Body: "public interface Foo {}"}},
		{"csharp", "namespace App {}", merger.Parts{Body: "namespace App {}"}},
		{"cpp", "x\n#pragma once\n", merger.Parts{Header: "x\n", Body: "#pragma once\n"}},
		{"go", "summary\npackage main\n", merger.Parts{Header: "summary\n", Body: "package main\n"}},
		{"none", "no markers here\n", merger.Parts{Body: "no markers here\n"}},
		{"marker mid-line", "see the package docs\nmore", merger.Parts{Body: "see the package docs\nmore"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Split(tt.in))
		})
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantInner  string
		wantLang   string
		wantFenced bool
	}{
		{"with tag", "```python\nprint(1)\n```", "print(1)", "python", true},
		{"no tag", "```\nx\n```", "x", "", true},
		{"surrounding whitespace", "\n  ```md\n\n x \n\n```\n", "x", "md", true},
		{"unfenced", "plain text", "plain text", "", false},
		{"open only", "```go\ncode", "```go\ncode", "", false},
		{"single line", "```x```", "```x```", "", false},
		{"empty fence", "```\n```", "```\n```", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, lang, fenced := merger.StripFence(tt.in)
			assert.Equal(t, tt.wantInner, inner)
			assert.Equal(t, tt.wantLang, lang)
			assert.Equal(t, tt.wantFenced, fenced)
		})
	}
}

func TestCustomMarkers(t *testing.T) {
	m := &merger.Merger{
		Markers:       []string{"## API"},
		SectionPrefix: "## API",
		SectionFamily: "## ",
	}
	out := m.Merge([]string{"intro\n## API\nf()", "again\n## API\n## API\ng()"})
	assert.Equal(t, "intro\n\n## API\nf()\n\n## API\ng()", out)
}
