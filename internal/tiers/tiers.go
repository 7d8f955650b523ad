package tiers

// The grid is a fixed 37x37 square. Tiers are assigned by Chebyshev distance
// from the center slot, with the four corners carved out as their own tier.
const (
	GridSize = 37
	CenterX  = 18
	CenterY  = 18
)

type Tier string

const (
	TierOne       Tier = "one"
	TierTen       Tier = "ten"
	TierCornerTen Tier = "corner_ten"
	TierHundred   Tier = "hundred"
	TierViral     Tier = "viral"
)

// AllTiers lists every tier, center-out
func AllTiers() []Tier {
	return []Tier{TierOne, TierTen, TierCornerTen, TierHundred, TierViral}
}

func (t Tier) IsValid() bool {
	switch t {
	case TierOne, TierTen, TierCornerTen, TierHundred, TierViral:
		return true
	}
	return false
}

func (t Tier) String() string {
	return string(t)
}

// InGrid reports whether (x, y) addresses a slot
func InGrid(x, y int) bool {
	return x >= 0 && x < GridSize && y >= 0 && y < GridSize
}

// IsCorner reports whether (x, y) is one of the four fixed corner slots
func IsCorner(x, y int) bool {
	return (x == 0 || x == GridSize-1) && (y == 0 || y == GridSize-1)
}

// TierOf maps a slot coordinate to its tier. Corner detection takes priority
// over the distance bands. The hundred band runs out to Chebyshev distance 12
// so the full partition is exactly {one:1, ten:48, corner_ten:4, hundred:576,
// viral:740}.
func TierOf(x, y int) Tier {
	if IsCorner(x, y) {
		return TierCornerTen
	}

	d := chebyshev(x-CenterX, y-CenterY)
	switch {
	case d == 0:
		return TierOne
	case d <= 3:
		return TierTen
	case d <= 12:
		return TierHundred
	default:
		return TierViral
	}
}

func chebyshev(dx, dy int) int {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
