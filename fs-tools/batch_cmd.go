package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/npillmayer/fontsieve"
	"github.com/npillmayer/fontsieve/fontstore"
	"github.com/npillmayer/fontsieve/subset"
	"github.com/thatisuday/commando"
)

func runBatchCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	paths := strings.Split(args["fonts"].Value, ",")
	if len(paths) == 0 || strings.TrimSpace(paths[0]) == "" {
		fatalf("at least one font is required")
	}
	timeout := time.Duration(mustFlagInt(flags["timeout"], "timeout")) * time.Second
	st := fontsieve.NewStore()
	if _, err := st.AddFiles(paths...); err != nil {
		fatalf("%v", err)
	}
	if first := optString(flags["first"], "first"); first != "" {
		f, err := st.Find(first)
		if err != nil {
			fatalf("%v", err)
		}
		if _, err = st.Select(f.ID); err != nil {
			fatalf("%v", err)
		}
		printBatchLine(st, f, timeout)
	}
	for _, f := range st.Fonts() {
		if cur, ok := st.Current(); ok && cur.ID == f.ID {
			continue
		}
		printBatchLine(st, f, timeout)
	}
}

func printBatchLine(st *fontstore.Store, f *fontstore.Font, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	pf, err := st.Parsed(ctx, f.ID)
	if err != nil {
		fmt.Printf("%-32s %-6s %9s  error: %v\n", f.Name, f.Extension, subset.FormatFileSize(f.Size), err)
		return
	}
	fmt.Printf("%-32s %-6s %9s  %5d glyphs  %s\n", f.Name, f.Extension,
		subset.FormatFileSize(f.Size), pf.TotalGlyphs, pf.Info.FullName)
}
