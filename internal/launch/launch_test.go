package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func argv(rest ...string) []string {
	return append([]string{"marginalia"}, rest...)
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func TestResolveFilePathPolicy(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want *string
	}{
		{"no args", argv(), nil},
		{"program name only is skipped", []string{"doc.md"}, nil},
		{"first positional", argv("a.md", "b.md"), ptr("a.md")},
		{"open then path", argv("open", "notes.md"), ptr("notes.md")},
		{"open after other positionals", argv("x.md", "open", "notes.md", "y.md"), ptr("notes.md")},
		{"first open wins", argv("open", "a.md", "open", "b.md"), ptr("a.md")},
		{"open with nothing after", argv("open"), nil},
		{"open trailing does not fall back", argv("x.md", "y.md", "open"), nil},
		{"open path may be the word open", argv("open", "open"), ptr("open")},
		{"flags only", argv("--verbose", "-v"), nil},
		{"flag values are not positionals", argv("--out", "out.md"), nil},
		{"open across flags", argv("open", "--verbose", "doc.md"), ptr("doc.md")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.args)
			if tc.want == nil {
				assert.Nil(t, got.FilePath)
				return
			}
			require.NotNil(t, got.FilePath)
			assert.Equal(t, *tc.want, *got.FilePath)
		})
	}
}

func TestResolveValueFlagForms(t *testing.T) {
	spaced := Resolve(argv("--bundle-dir", "/tmp/x", "--principles", "p.md", "--out", "o.md"))
	inline := Resolve(argv("--bundle-dir=/tmp/x", "--principles=p.md", "--out=o.md"))

	for _, opts := range []Options{spaced, inline} {
		require.NotNil(t, opts.BundleDir)
		require.NotNil(t, opts.PrinciplesPath)
		require.NotNil(t, opts.OutPath)
		assert.Equal(t, "/tmp/x", *opts.BundleDir)
		assert.Equal(t, "p.md", *opts.PrinciplesPath)
		assert.Equal(t, "o.md", *opts.OutPath)
		assert.Nil(t, opts.FilePath)
	}
	assert.Equal(t, spaced, inline)
}

func TestResolveInlineEmptyValue(t *testing.T) {
	opts := Resolve(argv("--out="))
	require.NotNil(t, opts.OutPath)
	assert.Equal(t, "", *opts.OutPath)
}

func TestResolveSpacedFlagConsumesDashValue(t *testing.T) {
	opts := Resolve(argv("--out", "-", "doc.md"))
	require.NotNil(t, opts.OutPath)
	assert.Equal(t, "-", *opts.OutPath)
	assert.Equal(t, "doc.md", strOrEmpty(opts.FilePath))
}

func TestResolveTrailingFlagWithoutValue(t *testing.T) {
	for _, flag := range []string{"--out", "--bundle-dir", "--principles"} {
		t.Run(flag, func(t *testing.T) {
			var opts Options
			require.NotPanics(t, func() { opts = Resolve(argv("doc.md", flag)) })
			assert.Nil(t, opts.OutPath)
			assert.Nil(t, opts.BundleDir)
			assert.Nil(t, opts.PrinciplesPath)
			assert.Equal(t, "doc.md", strOrEmpty(opts.FilePath))
		})
	}
}

func TestResolveUnknownFlagsAreIgnored(t *testing.T) {
	base := Resolve(argv("--bundle-dir", "/b", "open", "doc.md", "--out=o.md"))
	noisy := Resolve(argv("--verbose", "--bundle-dir", "/b", "-x", "open", "--color=auto", "doc.md", "--out=o.md", "--trace"))
	assert.Equal(t, base, noisy)
}

func TestResolveUnknownFlagDoesNotConsumeValue(t *testing.T) {
	opts := Resolve(argv("--level", "debug.md"))
	assert.Equal(t, "debug.md", strOrEmpty(opts.FilePath))
}

func TestResolveLastFlagWins(t *testing.T) {
	opts := Resolve(argv("--out", "a.md", "--out=b.md"))
	assert.Equal(t, "b.md", strOrEmpty(opts.OutPath))
}

func TestResolveLookalikeFlagsAreUnknown(t *testing.T) {
	opts := Resolve(argv("--outdir", "x", "--principles-path=p.md", "--bundle-dirx=/b"))
	assert.Nil(t, opts.OutPath)
	assert.Nil(t, opts.PrinciplesPath)
	assert.Nil(t, opts.BundleDir)
	assert.Equal(t, "x", strOrEmpty(opts.FilePath))
}

func TestCloneIsDeep(t *testing.T) {
	orig := Resolve(argv("--out", "o.md", "doc.md"))
	c := orig.Clone()
	*c.OutPath = "changed"
	*c.FilePath = "changed"
	c.BundleDir = ptr("added")

	assert.Equal(t, "o.md", *orig.OutPath)
	assert.Equal(t, "doc.md", *orig.FilePath)
	assert.Nil(t, orig.BundleDir)
	assert.Nil(t, Options{}.Clone().FilePath)
}
