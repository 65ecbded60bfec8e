package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const MaxInfluenceScore = 10

// Upper bounds of the five sub-factors, in display order.
const (
	MaxRevenueTier  = 3
	MaxKolWeight    = 2
	MaxReuse        = 2
	MaxStrategic    = 2
	MaxTenderNeeded = 1
)

var detailMarkers = []string{"①", "②", "③", "④", "⑤"}

// InfluenceFactors are the raw customer-influence inputs. Nil means not supplied.
type InfluenceFactors struct {
	Revenue   *float64
	Kol       *float64
	Reuse     *float64
	Strategic *float64
	Tender    *float64
}

func (f InfluenceFactors) values() []*float64 {
	return []*float64{f.Revenue, f.Kol, f.Reuse, f.Strategic, f.Tender}
}

// Provided reports whether at least one factor was supplied.
func (f InfluenceFactors) Provided() bool {
	for _, v := range f.values() {
		if v != nil {
			return true
		}
	}
	return false
}

// Score sums the bounded sub-factors and clamps the total to MaxInfluenceScore.
// Missing or non-finite factors count as zero.
func (f InfluenceFactors) Score() float64 {
	bounds := []float64{MaxRevenueTier, MaxKolWeight, MaxReuse, MaxStrategic, MaxTenderNeeded}
	total := 0.0
	for i, v := range f.values() {
		total += clamp(finiteOrZero(v), 0, bounds[i])
	}
	return clamp(total, 0, MaxInfluenceScore)
}

// Detail renders the raw inputs as "①2 ②1 ③0 ④2 ⑤1".
func (f InfluenceFactors) Detail() string {
	parts := make([]string, 0, len(detailMarkers))
	for i, v := range f.values() {
		parts = append(parts, detailMarkers[i]+formatFactor(finiteOrZero(v)))
	}
	return strings.Join(parts, " ")
}

// Merge overlays the supplied factors of next onto f.
func (f InfluenceFactors) Merge(next InfluenceFactors) InfluenceFactors {
	pick := func(cur, upd *float64) *float64 {
		if upd != nil {
			return upd
		}
		return cur
	}
	return InfluenceFactors{
		Revenue:   pick(f.Revenue, next.Revenue),
		Kol:       pick(f.Kol, next.Kol),
		Reuse:     pick(f.Reuse, next.Reuse),
		Strategic: pick(f.Strategic, next.Strategic),
		Tender:    pick(f.Tender, next.Tender),
	}
}

// ParseDetail reads a detail string back into factors. Unknown segments are ignored.
func ParseDetail(detail string) (InfluenceFactors, error) {
	vals := make([]*float64, len(detailMarkers))
	for _, seg := range strings.Fields(detail) {
		for i, marker := range detailMarkers {
			if !strings.HasPrefix(seg, marker) {
				continue
			}
			n, err := strconv.ParseFloat(strings.TrimPrefix(seg, marker), 64)
			if err != nil {
				return InfluenceFactors{}, fmt.Errorf("influence detail segment %q: %w", seg, err)
			}
			vals[i] = &n
		}
	}
	return InfluenceFactors{Revenue: vals[0], Kol: vals[1], Reuse: vals[2], Strategic: vals[3], Tender: vals[4]}, nil
}

func finiteOrZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func formatFactor(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
