package zone

import "strings"

// localitySuffixes are common place-name endings. Longer forms come first
// so "puram" is stripped before "pur".
var localitySuffixes = []string{
	"puram", "pur", "nagar", "peta", "pet", "palli", "halli",
	"gudem", "wada", "abad", "ganj", "garh",
}

// Resolver matches an address to a delivery zone. The order of zones is
// significant: within a tier, the first zone in the slice wins.
type Resolver struct {
	zones []DeliveryZone
}

// NewResolver keeps the active zones in their given order.
func NewResolver(zones []DeliveryZone) *Resolver {
	active := make([]DeliveryZone, 0, len(zones))
	for _, z := range zones {
		if z.IsActive {
			active = append(active, z)
		}
	}
	return &Resolver{zones: active}
}

// Resolve evaluates the tiers exact, village, pincode and city in that
// order and returns on the first hit. Blank inputs never match.
func (r *Resolver) Resolve(zipCode, city, villageTown string) Match {
	if len(r.zones) == 0 {
		return Match{MatchType: MatchDefault}
	}

	zipCode = strings.TrimSpace(zipCode)
	city = normalize(city)
	villageTown = normalize(villageTown)

	tiers := []struct {
		kind    MatchType
		matches func(z DeliveryZone) bool
	}{
		{MatchExact, func(z DeliveryZone) bool {
			return hasZip(z, zipCode) && namesOverlap(normalize(z.Name), villageTown)
		}},
		{MatchVillage, func(z DeliveryZone) bool {
			name := normalize(z.Name)
			return namesOverlap(name, villageTown) || sameLocality(name, villageTown)
		}},
		{MatchPincode, func(z DeliveryZone) bool {
			return hasZip(z, zipCode)
		}},
		{MatchCity, func(z DeliveryZone) bool {
			return namesOverlap(normalize(z.Name), city)
		}},
	}

	for _, tier := range tiers {
		for i := range r.zones {
			if tier.matches(r.zones[i]) {
				z := r.zones[i]
				return Match{Zone: &z, MatchType: tier.kind}
			}
		}
	}

	return Match{MatchType: MatchNone}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func hasZip(z DeliveryZone, zipCode string) bool {
	if zipCode == "" {
		return false
	}
	for _, zc := range z.ZipCodes {
		if strings.TrimSpace(zc) == zipCode {
			return true
		}
	}
	return false
}

// namesOverlap is a case-insensitive equality or substring test in either
// direction. Both sides must already be normalized.
func namesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// sameLocality reports whether both names end in a recognized locality
// suffix and share the same stem, e.g. "Kotha Peta" and "Kothapet".
func sameLocality(a, b string) bool {
	stemA, okA := localityStem(a)
	stemB, okB := localityStem(b)
	return okA && okB && stemA == stemB
}

func localityStem(name string) (string, bool) {
	compact := strings.NewReplacer(" ", "", "-", "", ".", "").Replace(name)
	for _, suffix := range localitySuffixes {
		if stem, ok := strings.CutSuffix(compact, suffix); ok && stem != "" {
			return stem, true
		}
	}
	return "", false
}
