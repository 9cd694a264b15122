package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/tokenscope/internal/tokens"
)

func TestGenerateUnifiedDiff_IdenticalContent(t *testing.T) {
	content := []byte("line1\nline2\nline3\n")
	assert.Empty(t, GenerateUnifiedDiff(content, content, "old", "new"))
}

func TestGenerateUnifiedDiff_SingleLineChange(t *testing.T) {
	result := GenerateUnifiedDiff([]byte("line1\nline2\nline3\n"), []byte("line1\nmodified\nline3\n"), "old", "new")

	want := strings.Join([]string{
		"--- old",
		"+++ new",
		"@@ -1,3 +1,3 @@",
		" line1",
		"-line2",
		"+modified",
		" line3",
		"",
	}, "\n")
	assert.Equal(t, want, result)
}

func TestGenerateUnifiedDiff_MissingTrailingNewline(t *testing.T) {
	result := GenerateUnifiedDiff([]byte("a\nb"), []byte("a\nc"), "old", "new")
	assert.Contains(t, result, "@@ -1,2 +1,2 @@")
	assert.Contains(t, result, "-b\n")
	assert.Contains(t, result, "+c\n")
}

func TestGenerateUnifiedDiff_Truncates(t *testing.T) {
	var expected, actual strings.Builder
	for i := 0; i < maxDiffLines+10; i++ {
		fmt.Fprintf(&expected, "old %d\n", i)
		fmt.Fprintf(&actual, "new %d\n", i)
	}

	result := GenerateUnifiedDiff([]byte(expected.String()), []byte(actual.String()), "old", "new")
	assert.True(t, strings.HasSuffix(result, truncateMessage+"\n"))
	assert.LessOrEqual(t, strings.Count(result, "\n"), maxDiffLines+1)
}

func TestEntries(t *testing.T) {
	old := []tokens.Entry{
		{Selector: ".b", Property: "--b--Color", Value: "#fff"},
		{Selector: ".b", Property: "--b--Gap", Value: "1rem"},
		{Selector: ".b.m", Property: "--b--m--Color", Values: []string{"--x", "#000"}},
	}
	next := []tokens.Entry{
		{Selector: ".b", Property: "--b--Color", Value: "#06c"},
		{Selector: ".b.m", Property: "--b--m--Color", Values: []string{"--x", "#000"}},
		{Selector: ".b", Property: "--b--Width", Value: "2px"},
	}

	s := Entries(old, next)
	require.Len(t, s.Added, 1)
	assert.Equal(t, "--b--Width", s.Added[0].Property)
	require.Len(t, s.Removed, 1)
	assert.Equal(t, "--b--Gap", s.Removed[0].Property)
	require.Len(t, s.Changed, 1)
	assert.Equal(t, Change{Selector: ".b", Property: "--b--Color", Old: "#fff", New: "#06c"}, s.Changed[0])
	assert.Equal(t, "+1 -1 ~1", s.String())
	assert.False(t, s.Empty())
}

func TestEntriesDistinguishesSelectors(t *testing.T) {
	old := []tokens.Entry{{Selector: ".a", Property: "--p", Value: "1"}}
	next := []tokens.Entry{{Selector: ".b", Property: "--p", Value: "1"}}

	s := Entries(old, next)
	assert.Len(t, s.Added, 1)
	assert.Len(t, s.Removed, 1)
	assert.Empty(t, s.Changed)
}

func TestEntriesComparesMappingValues(t *testing.T) {
	old := []tokens.Entry{{Selector: ".a", Property: "--p", Values: []string{"--x"}}}
	next := []tokens.Entry{{Selector: ".a", Property: "--p", Values: []string{"--y"}}}

	s := Entries(old, next)
	require.Len(t, s.Changed, 1)
	assert.Equal(t, `["--x"]`, s.Changed[0].Old)
	assert.Equal(t, `["--y"]`, s.Changed[0].New)
}

func TestEntriesDistinguishesCommaInsideValue(t *testing.T) {
	old := []tokens.Entry{{Selector: ".a", Property: "--p", Values: []string{"a, b"}}}
	next := []tokens.Entry{{Selector: ".a", Property: "--p", Values: []string{"a", "b"}}}

	s := Entries(old, next)
	require.Len(t, s.Changed, 1)
	assert.Equal(t, `["a, b"]`, s.Changed[0].Old)
	assert.Equal(t, `["a","b"]`, s.Changed[0].New)
}

func TestEntriesIdentical(t *testing.T) {
	entries := []tokens.Entry{{Selector: ".a", Property: "--p", Value: "1"}}
	assert.True(t, Entries(entries, entries).Empty())
	assert.True(t, Entries(nil, nil).Empty())
}

func TestLines(t *testing.T) {
	out := Lines([]tokens.Entry{
		{Selector: ".a", Property: "--p", Value: "1rem"},
		{Selector: ".a", Property: "--m", Values: []string{"--x", "#fff"}},
	})
	assert.Equal(t, ".a --p: 1rem\n.a --m: [\"--x\",\"#fff\"]\n", string(out))
}
