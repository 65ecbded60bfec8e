package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestRiceScore(t *testing.T) {
	tests := []struct {
		name                              string
		reach, impact, confidence, effort *int
		want                              *float64
	}{
		{
			name:       "all factors present",
			reach:      intPtr(5),
			impact:     intPtr(6),
			confidence: intPtr(7),
			effort:     intPtr(3),
			want:       floatPtr(70),
		},
		{
			name:       "fractional result",
			reach:      intPtr(1),
			impact:     intPtr(1),
			confidence: intPtr(1),
			effort:     intPtr(4),
			want:       floatPtr(0.25),
		},
		{
			name:       "missing effort",
			reach:      intPtr(5),
			impact:     intPtr(6),
			confidence: intPtr(7),
		},
		{
			name:       "missing reach",
			impact:     intPtr(6),
			confidence: intPtr(7),
			effort:     intPtr(3),
		},
		{
			name:       "zero effort",
			reach:      intPtr(5),
			impact:     intPtr(6),
			confidence: intPtr(7),
			effort:     intPtr(0),
		},
		{
			name:       "negative factor",
			reach:      intPtr(-5),
			impact:     intPtr(6),
			confidence: intPtr(7),
			effort:     intPtr(3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RiceScore(tt.reach, tt.impact, tt.confidence, tt.effort)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestInfluenceScore(t *testing.T) {
	tests := []struct {
		name    string
		factors InfluenceFactors
		want    float64
	}{
		{
			name:    "nothing supplied",
			factors: InfluenceFactors{},
			want:    0,
		},
		{
			name: "maximum sums to exactly ten",
			factors: InfluenceFactors{
				Revenue: floatPtr(3), Kol: floatPtr(2), Reuse: floatPtr(2), Strategic: floatPtr(2), Tender: floatPtr(1),
			},
			want: 10,
		},
		{
			name: "upward adjustment still clamps at ten",
			factors: InfluenceFactors{
				Revenue: floatPtr(4), Kol: floatPtr(3), Reuse: floatPtr(2), Strategic: floatPtr(2), Tender: floatPtr(5),
			},
			want: 10,
		},
		{
			name: "partial factors",
			factors: InfluenceFactors{
				Revenue: floatPtr(2), Kol: floatPtr(1), Strategic: floatPtr(2), Tender: floatPtr(1),
			},
			want: 6,
		},
		{
			name: "non-finite values count as zero",
			factors: InfluenceFactors{
				Revenue: floatPtr(math.NaN()), Kol: floatPtr(math.Inf(1)), Reuse: floatPtr(1),
			},
			want: 1,
		},
		{
			name: "negative values floor at zero",
			factors: InfluenceFactors{
				Revenue: floatPtr(-3), Kol: floatPtr(2),
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.factors.Score())
		})
	}
}

func TestInfluenceDetailPreservesRawInputs(t *testing.T) {
	f := InfluenceFactors{Revenue: floatPtr(2), Kol: floatPtr(1), Strategic: floatPtr(2), Tender: floatPtr(1)}
	assert.Equal(t, "①2 ②1 ③0 ④2 ⑤1", f.Detail())

	over := InfluenceFactors{Revenue: floatPtr(7), Kol: floatPtr(1.5)}
	assert.Equal(t, "①7 ②1.5 ③0 ④0 ⑤0", over.Detail())
}

func TestParseDetailRoundTrip(t *testing.T) {
	parsed, err := ParseDetail("①2 ②1 ③0 ④2 ⑤1")
	require.NoError(t, err)
	require.NotNil(t, parsed.Revenue)
	assert.Equal(t, 2.0, *parsed.Revenue)
	assert.Equal(t, 6.0, parsed.Score())

	_, err = ParseDetail("①x")
	assert.Error(t, err)
}

func TestMergeKeepsUnsuppliedFactors(t *testing.T) {
	cur := InfluenceFactors{Revenue: floatPtr(3), Kol: floatPtr(2)}
	merged := cur.Merge(InfluenceFactors{Kol: floatPtr(0), Tender: floatPtr(1)})

	assert.Equal(t, 3.0, *merged.Revenue)
	assert.Equal(t, 0.0, *merged.Kol)
	assert.Equal(t, 1.0, *merged.Tender)
	assert.Nil(t, merged.Reuse)
	assert.True(t, merged.Provided())
	assert.False(t, InfluenceFactors{}.Provided())
}
