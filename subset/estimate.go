/*
Package subset estimates the effect of removing glyphs from a font.

Clients mark glyphs of a font summary as disabled in a Mask. The estimator models
glyph outline and table data as a fixed share of a font's file size and
distributes it evenly over all glyphs. Estimates are heuristics and must not be
presented as exact results of subsetting a font.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package subset

import (
	"fmt"
	"math"
)

// GlyphDataShare is the share of a font file attributed to glyph data.
const GlyphDataShare = 0.65

// Estimation is an estimated amount of glyph data.
type Estimation struct {
	Bytes int64 `json:"bytes"`
	KB    int64 `json:"kb"`
}

// Estimate returns the estimated size of the glyph data of count glyphs out of a
// font with total glyphs and a file size of fileSize bytes.
// Values are rounded half away from zero.
func Estimate(count, total int, fileSize int64) Estimation {
	if total <= 0 || fileSize <= 0 {
		return Estimation{}
	}
	bytes := math.Round(float64(count) / float64(total) * float64(fileSize) * GlyphDataShare)
	return Estimation{
		Bytes: int64(bytes),
		KB:    int64(math.Round(bytes / 1024)),
	}
}

// String formats an estimate in whole kilobytes, with a minimum of 1 KB.
func (e Estimation) String() string {
	if e.KB < 1 {
		return "1 KB"
	}
	return fmt.Sprintf("%d KB", e.KB)
}

// Percent formats the share of count in total, e.g. "~42%".
// Shares below one percent are displayed as "<1%".
func Percent(count, total int) string {
	if total <= 0 || count <= 0 {
		return "0%"
	}
	p := float64(count) / float64(total) * 100
	if p < 1 {
		return "<1%"
	}
	return fmt.Sprintf("~%d%%", int(math.Round(p)))
}

// FormatFileSize formats a size in bytes using B, KB or MB.
// KB and MB values below 10 carry one decimal.
func FormatFileSize(bytes int64) string {
	const kb, mb = 1024, 1024 * 1024
	switch {
	case bytes < kb:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mb:
		return scaled(float64(bytes)/kb, "KB")
	}
	return scaled(float64(bytes)/mb, "MB")
}

func scaled(v float64, unit string) string {
	if v >= 10 {
		return fmt.Sprintf("%d %s", int64(math.Round(v)), unit)
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}
