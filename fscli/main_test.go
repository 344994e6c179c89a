package main

import (
	"fmt"
	"testing"

	"github.com/npillmayer/fontsieve"
	"github.com/npillmayer/fontsieve/fontstore"
	"github.com/npillmayer/fontsieve/introspect"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.cli")
	defer teardown()
	//
	intp := NewIntp(nil)
	cmd, err := intp.parseCommand("select:Go  glyphs:greek:all bogus quit estimate")
	require.NoError(t, err)
	assert.Equal(t, 5, cmd.count)
	assert.Equal(t, Op{code: SELECT, arg: "Go"}, cmd.op[0])
	assert.Equal(t, Op{code: GLYPHS, arg: "greek", format: "all"}, cmd.op[1])
	assert.Equal(t, HELP, cmd.op[2].code, "unknown operations ask for help")
	assert.Equal(t, QUIT, cmd.op[3].code)
	assert.Equal(t, NOOP, cmd.op[4].code, "parsing stops at quit")
}

func TestSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.cli")
	defer teardown()
	//
	store := fontsieve.NewStore()
	store.Add(fontstore.Upload{FileName: "Go-Regular.ttf", Data: goregular.TTF})
	intp := NewIntp(store)
	cmd, err := intp.parseCommand("select:Go-Regular.ttf info groups glyphs:basic-latin toggle:A toggle:U+0042 group:latin-supplement estimate")
	require.NoError(t, err)
	err, quit := intp.execute(cmd)
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, "basic-latin", intp.group)
	//
	f, pf, err := intp.current()
	require.NoError(t, err)
	supplement, ok := pf.Group("latin-supplement")
	require.True(t, ok)
	assert.Equal(t, 2+len(supplement.Glyphs), f.Mask.DisabledCount(pf))
	a, err := findGlyph(pf, "A")
	require.NoError(t, err)
	assert.True(t, f.Mask.Disabled(a.ID))
	//
	cmd, err = intp.parseCommand("reset quit")
	require.NoError(t, err)
	err, quit = intp.execute(cmd)
	require.NoError(t, err)
	assert.True(t, quit)
	assert.Zero(t, f.Mask.DisabledCount(pf))
}

func TestFindGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsieve.cli")
	defer teardown()
	//
	pf, err := fontsieve.Introspect(goregular.TTF)
	require.NoError(t, err)
	a, err := findGlyph(pf, "A")
	require.NoError(t, err)
	assert.Equal(t, []rune{'A'}, a.CodePoints)
	b, err := findGlyph(pf, "u+00e9")
	require.NoError(t, err)
	assert.Contains(t, b.CodePoints, 'é')
	byID, err := findGlyph(pf, introspectID(a.ID))
	require.NoError(t, err)
	assert.Equal(t, a.ID, byID.ID)
	_, err = findGlyph(pf, "😀")
	assert.Error(t, err)
	_, err = findGlyph(pf, "U+ZZ")
	assert.Error(t, err)
	_, err = findGlyph(pf, "abc")
	assert.Error(t, err)
}

func introspectID(id introspect.GlyphID) string {
	return fmt.Sprintf("%d", id)
}
