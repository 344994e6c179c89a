package subset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	for _, c := range []struct {
		count, total int
		size         int64
		want         Estimation
	}{
		{0, 100, 10000, Estimation{0, 0}},
		{100, 100, 10000, Estimation{6500, 6}},
		{50, 100, 10000, Estimation{3250, 3}},
		{10, 0, 10000, Estimation{0, 0}},
		{10, 100, 0, Estimation{0, 0}},
		{1, 3, 1000, Estimation{217, 0}},  // 216.67
		{1, 2, 2000, Estimation{650, 1}},  // 650 / 1024 = 0.63
		{1, 1, 1576, Estimation{1024, 1}}, // 1024.4
		{3, 4, 1048576, Estimation{511181, 499}},
	} {
		assert.Equal(t, c.want, Estimate(c.count, c.total, c.size),
			"Estimate(%d, %d, %d)", c.count, c.total, c.size)
	}
}

func TestEstimateMonotone(t *testing.T) {
	prev := Estimation{}
	for n := 0; n <= 500; n++ {
		e := Estimate(n, 500, 123456)
		assert.GreaterOrEqual(t, e.Bytes, prev.Bytes)
		assert.LessOrEqual(t, e.Bytes, int64(123456))
		prev = e
	}
}

func TestEstimationString(t *testing.T) {
	assert.Equal(t, "1 KB", Estimation{Bytes: 100}.String())
	assert.Equal(t, "1 KB", Estimation{Bytes: 1000, KB: 1}.String())
	assert.Equal(t, "42 KB", Estimation{KB: 42}.String())
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0%", Percent(0, 100))
	assert.Equal(t, "0%", Percent(5, 0))
	assert.Equal(t, "<1%", Percent(1, 1000))
	assert.Equal(t, "~50%", Percent(50, 100))
	assert.Equal(t, "~1%", Percent(1, 100))
	assert.Equal(t, "~33%", Percent(1, 3))
	assert.Equal(t, "~67%", Percent(2, 3))
	assert.Equal(t, "~100%", Percent(7, 7))
}

func TestFormatFileSize(t *testing.T) {
	for size, want := range map[int64]string{
		0:                "0 B",
		1023:             "1023 B",
		1024:             "1.0 KB",
		1536:             "1.5 KB",
		10 * 1024:        "10 KB",
		123 * 1024:       "123 KB",
		1024 * 1024:      "1.0 MB",
		5 * 1024 * 1024:  "5.0 MB",
		42 * 1024 * 1024: "42 MB",
	} {
		assert.Equal(t, want, FormatFileSize(size), "FormatFileSize(%d)", size)
	}
}
