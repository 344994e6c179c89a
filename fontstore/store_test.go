package fontstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/npillmayer/fontsieve/introspect"
	"github.com/npillmayer/fontsieve/sched"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var errBadFont = errors.New("bad font")

// countingParser summarizes a font as its length and counts its invocations.
type countingParser struct {
	mu    sync.Mutex
	calls map[string]int
	order []string
	gate  chan struct{} // if non-nil, every parse waits for it
}

func newCountingParser() *countingParser {
	return &countingParser{calls: make(map[string]int)}
}

func (c *countingParser) parse(data []byte) (*introspect.ParsedFont, error) {
	if c.gate != nil {
		<-c.gate
	}
	c.mu.Lock()
	c.calls[string(data)]++
	c.order = append(c.order, string(data))
	c.mu.Unlock()
	if string(data) == "bad" {
		return nil, errBadFont
	}
	return &introspect.ParsedFont{TotalGlyphs: len(data)}, nil
}

func (c *countingParser) count(data string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[data]
}

func TestNormalizeName(t *testing.T) {
	for in, out := range map[string]string{
		"Open_Sans-Bold.woff2":   "Open Sans Bold",
		"Inter--Regular.TTF":     "Inter Regular",
		"font.otf":               "font",
		"My Font.woff":           "My Font",
		"_Lead_.otf":             "Lead",
		"archive.woff2.zip":      "archive.woff2.zip",
		"Roboto_Mono__Thin.woff": "Roboto Mono Thin",
	} {
		assert.Equal(t, out, NormalizeName(in), in)
	}
}

func TestExtensionFromFile(t *testing.T) {
	assert.Equal(t, "woff2", ExtensionFromFile("A.WOFF2", ""))
	assert.Equal(t, "woff", ExtensionFromFile("a.woff", "font/woff2"))
	assert.Equal(t, "ttf", ExtensionFromFile("blob", "application/x-font-ttf"))
	assert.Equal(t, "otf", ExtensionFromFile("blob", "Font/OTF"))
	assert.Equal(t, "", ExtensionFromFile("blob", "application/octet-stream"))
}

func TestAddSortsAndSkipsKnownFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.store")
	defer teardown()
	//
	st := New(sched.New(newCountingParser().parse), WithLanguage(language.German))
	added := st.Add(
		Upload{FileName: "Birne.ttf", Data: []byte("bbbb")},
		Upload{FileName: "Äpfel.woff2", Data: []byte("aa")},
		Upload{FileName: "Apfel.woff", Data: []byte("a")},
		Upload{FileName: "Apfel.otf", Data: []byte("a")},
		Upload{FileName: "Birne.ttf", Data: []byte("other")},
	)
	require.Len(t, added, 4)
	assert.Equal(t, "Birne.ttf", added[0].FileName, "added fonts are returned in upload order")
	assert.Len(t, st.Add(Upload{FileName: "Apfel.woff", Data: []byte("x")}), 0)
	//
	var names []string
	for _, f := range st.Fonts() {
		names = append(names, f.FileName)
	}
	assert.Equal(t, []string{"Apfel.otf", "Apfel.woff", "Äpfel.woff2", "Birne.ttf"}, names)
	f, err := st.Find("Birne")
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.Size)
	assert.Equal(t, "ttf", f.Extension)
	assert.NotEqual(t, Identity("Apfel.otf", []byte("a")), Identity("Apfel.woff", []byte("a")))
}

func TestParsedIsCached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.store")
	defer teardown()
	//
	parser := newCountingParser()
	st := New(sched.New(parser.parse))
	added := st.Add(Upload{FileName: "x.ttf", Data: []byte("xyz")}, Upload{FileName: "bad.ttf", Data: []byte("bad")})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := 0; i < 3; i++ {
		pf, err := st.Parsed(ctx, added[0].ID)
		require.NoError(t, err)
		assert.Equal(t, 3, pf.TotalGlyphs)
		_, err = st.Parsed(ctx, added[1].ID)
		assert.ErrorIs(t, err, errBadFont)
	}
	assert.Eventually(t, func() bool {
		st.Lock()
		defer st.Unlock()
		return len(st.pending) == 0
	}, time.Second, 10*time.Millisecond)
	_, err := st.Parsed(ctx, added[1].ID)
	assert.ErrorIs(t, err, errBadFont)
	assert.Equal(t, 1, parser.count("xyz"))
	assert.Equal(t, 1, parser.count("bad"))
	//
	_, err = st.Parsed(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownFont)
}

func TestSelectMovesParseUp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.store")
	defer teardown()
	//
	parser := newCountingParser()
	parser.gate = make(chan struct{})
	st := New(sched.New(parser.parse))
	added := st.Add(
		Upload{FileName: "a.ttf", Data: []byte("a")},
		Upload{FileName: "b.ttf", Data: []byte("b")},
		Upload{FileName: "c.ttf", Data: []byte("c")},
	)
	f, err := st.Select(added[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "c", f.Name)
	cur, ok := st.Current()
	require.True(t, ok)
	assert.Equal(t, added[2].ID, cur.ID)
	close(parser.gate)
	//
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, f := range added {
		_, err := st.Parsed(ctx, f.ID)
		require.NoError(t, err)
	}
	parser.mu.Lock()
	defer parser.mu.Unlock()
	assert.Equal(t, []string{"a", "c", "b"}, parser.order)
	//
	_, err = st.Select("nope")
	assert.ErrorIs(t, err, ErrUnknownFont)
}

func TestReport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.store")
	defer teardown()
	//
	st := New(sched.New(func([]byte) (*introspect.ParsedFont, error) {
		g := introspect.GlyphGroup{}
		for id := introspect.GlyphID(0); id < 10; id++ {
			g.Glyphs = append(g.Glyphs, introspect.Glyph{ID: id})
		}
		return &introspect.ParsedFont{TotalGlyphs: 100, Groups: []introspect.GlyphGroup{g}}, nil
	}))
	f := st.Add(Upload{FileName: "r.ttf", Data: make([]byte, 10000)})[0]
	for id := introspect.GlyphID(0); id < 4; id++ {
		f.Mask.Toggle(id)
	}
	r, err := st.Report(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, 96, r.EnabledGlyphs)
	assert.Equal(t, int64(260), r.Savings.Bytes)
}
