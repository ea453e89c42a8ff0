package geo

import "strings"

// Geohash encoding buckets heatmap points into cells. Nearby points share a
// prefix, so a "what's around here" question only needs the cell and its
// eight neighbors.
//
//	precision 5 → ~4.9 km × 4.9 km
//	precision 6 → ~1.2 km × 0.6 km
//	precision 7 → ~153 m × 153 m

const geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

var geohashIndex [256]int8

// Neighbor and border tables indexed by direction, then by hash parity
// (0 = even length, 1 = odd length).
var (
	neighborTable = map[string][2]string{
		"n": {"p0r21436x8zb9dcf5h7kjnmqesgutwvy", "bc01fg45238967deuvhjyznpkmstqrwx"},
		"s": {"14365h7k9dcfesgujnmqp0r2twvyx8zb", "238967debc01fg45kmstqrwxuvhjyznp"},
		"e": {"bc01fg45238967deuvhjyznpkmstqrwx", "p0r21436x8zb9dcf5h7kjnmqesgutwvy"},
		"w": {"238967debc01fg45kmstqrwxuvhjyznp", "14365h7k9dcfesgujnmqp0r2twvyx8zb"},
	}
	borderTable = map[string][2]string{
		"n": {"prxz", "bcfguvyz"},
		"s": {"028b", "0145hjnp"},
		"e": {"bcfguvyz", "prxz"},
		"w": {"0145hjnp", "028b"},
	}
)

func init() {
	for i := range geohashIndex {
		geohashIndex[i] = -1
	}
	for i := 0; i < len(geohashAlphabet); i++ {
		geohashIndex[geohashAlphabet[i]] = int8(i)
	}
}

type interval struct{ lo, hi float64 }

func (iv *interval) mid() float64 { return (iv.lo + iv.hi) / 2 }

// Encode returns the geohash of (lat, lon). Precision is clamped to [1, 12];
// a non-positive precision means 6.
func Encode(lat, lon float64, precision int) string {
	switch {
	case precision <= 0:
		precision = 6
	case precision > 12:
		precision = 12
	}

	latIv := interval{-90, 90}
	lonIv := interval{-180, 180}

	var sb strings.Builder
	sb.Grow(precision)

	evenBit := true
	for sb.Len() < precision {
		ch := 0
		for b := 4; b >= 0; b-- {
			iv, v := &latIv, lat
			if evenBit {
				iv, v = &lonIv, lon
			}
			if m := iv.mid(); v >= m {
				ch |= 1 << b
				iv.lo = m
			} else {
				iv.hi = m
			}
			evenBit = !evenBit
		}
		sb.WriteByte(geohashAlphabet[ch])
	}
	return sb.String()
}

// Decode returns the center of the cell named by hash. Characters outside
// the geohash alphabet are skipped.
func Decode(hash string) (lat, lon float64) {
	latIv := interval{-90, 90}
	lonIv := interval{-180, 180}

	evenBit := true
	for i := 0; i < len(hash); i++ {
		cd := geohashIndex[hash[i]]
		if cd < 0 {
			continue
		}
		for b := 4; b >= 0; b-- {
			iv := &latIv
			if evenBit {
				iv = &lonIv
			}
			if (cd>>b)&1 == 1 {
				iv.lo = iv.mid()
			} else {
				iv.hi = iv.mid()
			}
			evenBit = !evenBit
		}
	}
	return latIv.mid(), lonIv.mid()
}

// Neighbor returns the adjacent cell in direction "n", "s", "e" or "w".
func Neighbor(hash, direction string) string {
	if hash == "" {
		return ""
	}
	hash = strings.ToLower(hash)
	last := hash[len(hash)-1]
	parent := hash[:len(hash)-1]
	parity := len(hash) % 2

	if strings.IndexByte(borderTable[direction][parity], last) >= 0 && parent != "" {
		parent = Neighbor(parent, direction)
	}

	idx := strings.IndexByte(neighborTable[direction][parity], last)
	if idx < 0 {
		return hash
	}
	return parent + string(geohashAlphabet[idx])
}

// AllNeighbors returns the 3×3 block of cells centered on hash, center first.
func AllNeighbors(hash string) []string {
	n, s := Neighbor(hash, "n"), Neighbor(hash, "s")
	return []string{
		hash,
		n,
		s,
		Neighbor(hash, "e"),
		Neighbor(hash, "w"),
		Neighbor(n, "e"),
		Neighbor(n, "w"),
		Neighbor(s, "e"),
		Neighbor(s, "w"),
	}
}
