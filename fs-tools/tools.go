package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/fontsieve/fontdec"
	"github.com/npillmayer/fontsieve/internal/fontload"
	"github.com/npillmayer/fontsieve/introspect"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("fs-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for font introspection and subsetting estimates.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("info").
		SetDescription("Print typographic information, glyph groups and features of a font.").
		SetShortDescription("font summary").
		AddArgument("font", "font file path or system font name", "").
		AddFlag("json,j", "print the summary as JSON", commando.Bool, nil).
		AddFlag("errors,e", "print decoding issues", commando.Bool, nil).
		SetAction(runInfoCommand)

	commando.
		Register("estimate").
		SetDescription("Estimate the file size of a font subset without some glyphs.").
		SetShortDescription("subset estimate").
		AddArgument("font", "font file path or system font name", "").
		AddFlag("exclude,x", "categories to remove (e.g. emoji,greek)", commando.String, "-").
		AddFlag("glyphs,g", "code points to remove (comma/space separated, e.g. U+00E9,A)", commando.String, "-").
		AddFlag("json,j", "print the estimate as JSON", commando.Bool, nil).
		SetAction(runEstimateCommand)

	commando.
		Register("batch").
		SetDescription("Summarize a set of fonts, parsing them one at a time.").
		SetShortDescription("summarize many fonts").
		AddArgument("fonts...", "font file paths (variadic argument parts joined by comma by commando)", "").
		AddFlag("first,f", "font (name or file) to parse before all others", commando.String, "-").
		AddFlag("timeout,t", "seconds to wait for a font", commando.Int, 60).
		SetAction(runBatchCommand)

	commando.Parse(nil)
}

// mustOpenFont loads and decodes a font, exiting on failure.
func mustOpenFont(ref string) (*fontload.FontFile, *fontdec.Font) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		fatalf("font path is required")
	}
	ff, err := fontload.LoadNamed(ref)
	if err != nil {
		fatalf("cannot load font %s: %v", ref, err)
	}
	f, err := fontdec.Open(ff.Binary)
	if err != nil {
		fatalf("cannot decode font %s: %v", ref, err)
	}
	return ff, f
}

func mustSummarize(f *fontdec.Font) *introspect.ParsedFont {
	pf, err := introspect.Summarize(f)
	if err != nil {
		fatalf("cannot summarize font: %v", err)
	}
	return pf
}

func parseCodepoints(spec string) ([]rune, error) {
	parts := splitCSVSpace(spec)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// parseCodepointToken accepts "U+00E9", "0x00e9" or a single character.
func parseCodepointToken(token string) (rune, error) {
	t := strings.TrimSpace(token)
	upper := strings.ToUpper(t)
	switch {
	case strings.HasPrefix(upper, "U+"):
		t = t[2:]
	case strings.HasPrefix(upper, "0X"):
		t = t[2:]
	default:
		if r := []rune(t); len(r) == 1 {
			return r[0], nil
		}
		return 0, fmt.Errorf("invalid codepoint %q", token)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil || v > 0x10ffff {
		return 0, fmt.Errorf("invalid codepoint %q", token)
	}
	return rune(v), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// optString returns the value of a string flag, with "-" meaning unset.
func optString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	if s = strings.TrimSpace(s); s == "-" {
		return ""
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "fs-tools: "+format+"\n", args...)
	os.Exit(1)
}
