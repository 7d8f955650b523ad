package tiers

import "testing"

func TestTierPartitionCounts(t *testing.T) {
	counts := map[Tier]int{}
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			counts[TierOf(x, y)]++
		}
	}

	expected := map[Tier]int{
		TierOne:       1,
		TierTen:       48,
		TierCornerTen: 4,
		TierHundred:   576,
		TierViral:     740,
	}

	total := 0
	for tier, want := range expected {
		if counts[tier] != want {
			t.Errorf("tier %s: got %d slots, want %d", tier, counts[tier], want)
		}
		total += counts[tier]
	}
	if total != GridSize*GridSize {
		t.Errorf("partition covers %d slots, want %d", total, GridSize*GridSize)
	}
}

func TestTierOfCenter(t *testing.T) {
	if got := TierOf(CenterX, CenterY); got != TierOne {
		t.Errorf("center slot: got %s, want %s", got, TierOne)
	}
}

func TestTierOfCornersTakePriority(t *testing.T) {
	corners := [][2]int{{0, 0}, {0, 36}, {36, 0}, {36, 36}}
	for _, c := range corners {
		if got := TierOf(c[0], c[1]); got != TierCornerTen {
			t.Errorf("corner (%d,%d): got %s, want %s", c[0], c[1], got, TierCornerTen)
		}
	}
}

func TestTierOfBandBoundaries(t *testing.T) {
	cases := []struct {
		x, y int
		want Tier
	}{
		{19, 18, TierTen},     // distance 1
		{21, 21, TierTen},     // distance 3, outer ten ring
		{22, 18, TierHundred}, // distance 4, inner hundred ring
		{30, 18, TierHundred}, // distance 12, outer hundred ring
		{31, 18, TierViral},   // distance 13
		{18, 5, TierViral},    // distance 13 along y
	}

	for _, c := range cases {
		if got := TierOf(c.x, c.y); got != c.want {
			t.Errorf("TierOf(%d,%d): got %s, want %s", c.x, c.y, got, c.want)
		}
	}
}

func TestInGrid(t *testing.T) {
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{36, 36, true},
		{18, 18, true},
		{-1, 0, false},
		{0, -1, false},
		{37, 0, false},
		{0, 37, false},
	}
	for _, c := range cases {
		if got := InGrid(c.x, c.y); got != c.want {
			t.Errorf("InGrid(%d,%d): got %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestIsCornerOnlyExactCorners(t *testing.T) {
	count := 0
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if IsCorner(x, y) {
				count++
			}
		}
	}
	if count != 4 {
		t.Errorf("IsCorner matches %d slots, want 4", count)
	}
	if IsCorner(0, 18) || IsCorner(18, 0) {
		t.Error("edge midpoints must not count as corners")
	}
}

func TestTierIsValid(t *testing.T) {
	for _, tier := range AllTiers() {
		if !tier.IsValid() {
			t.Errorf("tier %s should be valid", tier)
		}
	}
	if Tier("platinum").IsValid() {
		t.Error("unknown tier should be invalid")
	}
}
