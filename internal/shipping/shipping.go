// Package shipping prices Australia-wide delivery by the total liquid volume
// of a cart. Volumes are recovered from free-text product names.
package shipping

import (
	stderrors "errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
)

// Bands are inclusive, non-overlapping and ordered by volume. Costs are AUD cents.
var Bands = []domain.ShippingBand{
	{MinVolumeML: 500, MaxVolumeML: 1000, Cost: 1825, Description: "500mL - 1L"},
	{MinVolumeML: 1500, MaxVolumeML: 3000, Cost: 2330, Description: "1.5L - 3L"},
	{MinVolumeML: 3500, MaxVolumeML: 5000, Cost: 2630, Description: "3.5L - 5L"},
}

const (
	freeShippingBelowML = 500
	maxBandedVolumeML   = 5000

	// Volumes saturate here so oversized names and quantities stay positive.
	volumeCeilingML = math.MaxInt32

	overMaxDescription  = "Over 5L (using 3.5L-5L rate)"
	freeDescription     = "Free shipping (under 500mL)"
	fallbackDescription = "Standard shipping"
)

var (
	volumeWithUnit   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(ml|l|litre|liter)`)
	volumeSpacedUnit = regexp.MustCompile(`(\d+(?:\.\d+)?)\s+(ml|l|litre|liter|millilitre|milliliter)`)
	bareInteger      = regexp.MustCompile(`(\d+)`)
)

// volumeRule returns a volume in mL and whether it matched.
type volumeRule func(name string) (int, bool)

// volumeRules are tried in order; the first match wins.
var volumeRules = []volumeRule{
	matchUnit(volumeWithUnit),
	commonBottleSizes,
	matchUnit(volumeSpacedUnit),
	bottleDescriptions,
	bareNumber,
}

// ExtractVolumeML recovers a volume in millilitres from a product name.
// It returns 0 when nothing in the name looks like a volume.
func ExtractVolumeML(productName string) int {
	name := strings.ToLower(productName)
	for _, rule := range volumeRules {
		if ml, ok := rule(name); ok {
			return ml
		}
	}
	return 0
}

func matchUnit(re *regexp.Regexp) volumeRule {
	return func(name string) (int, bool) {
		m := re.FindStringSubmatch(name)
		if m == nil {
			return 0, false
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil && !stderrors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		if isLitres(m[2]) {
			value *= 1000
		}
		if math.IsNaN(value) {
			return 0, false
		}
		if value >= volumeCeilingML {
			return volumeCeilingML, true
		}
		return int(math.Round(value)), true
	}
}

func isLitres(unit string) bool {
	if strings.HasPrefix(unit, "milli") || unit == "ml" {
		return false
	}
	return strings.HasPrefix(unit, "l")
}

func commonBottleSizes(name string) (int, bool) {
	hint := strings.Contains(name, "ml") || strings.Contains(name, "bottle")
	switch {
	case strings.Contains(name, "500") && hint:
		return 500, true
	case strings.Contains(name, "1000") && hint:
		return 1000, true
	}
	return 0, false
}

func bottleDescriptions(name string) (int, bool) {
	if !strings.Contains(name, "bottle") {
		return 0, false
	}
	switch {
	case strings.Contains(name, "small"), strings.Contains(name, "500"):
		return 500, true
	case strings.Contains(name, "large"), strings.Contains(name, "1l"), strings.Contains(name, "1000"):
		return 1000, true
	case strings.Contains(name, "medium"):
		return 750, true
	}
	return 0, false
}

func bareNumber(name string) (int, bool) {
	m := bareInteger.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 100 || n > 5000 {
		return 0, false
	}
	// Small numbers would be litres, but the range check above keeps them out.
	if n <= 10 {
		return n * 1000, true
	}
	return n, true
}

// CalculateCost sums the volume of every line and maps the total onto Bands.
// Lines whose volume cannot be parsed contribute nothing. It never fails.
func CalculateCost(lines []domain.CartLine) domain.ShippingQuote {
	quote := domain.ShippingQuote{Breakdown: []string{}}

	for _, line := range lines {
		perItem := ExtractVolumeML(line.Name)
		lineVolume := lineVolumeML(perItem, line.Quantity)
		quote.TotalVolumeML = addVolumeML(quote.TotalVolumeML, lineVolume)

		if perItem > 0 {
			quote.Breakdown = append(quote.Breakdown,
				fmt.Sprintf("%s × %d = %dmL", line.Name, line.Quantity, lineVolume))
		}
	}

	if band, ok := bandFor(quote.TotalVolumeML); ok {
		quote.Cost = band.Cost
		quote.Description = band.Description
		return quote
	}

	switch {
	case quote.TotalVolumeML > maxBandedVolumeML:
		quote.Cost = Bands[len(Bands)-1].Cost
		quote.Description = overMaxDescription
	case quote.TotalVolumeML < freeShippingBelowML:
		quote.Description = freeDescription
	default:
		// Between two bands. No rate is defined here, so nothing is charged.
		quote.Description = fallbackDescription
		quote.Unbanded = true
	}

	return quote
}

func lineVolumeML(perItem, quantity int) int {
	if perItem > 0 && quantity > 0 && quantity > volumeCeilingML/perItem {
		return volumeCeilingML
	}
	return perItem * quantity
}

func addVolumeML(total, volume int) int {
	if volume > 0 && total > volumeCeilingML-volume {
		return volumeCeilingML
	}
	return total + volume
}

func bandFor(volumeML int) (domain.ShippingBand, bool) {
	for _, band := range Bands {
		if volumeML >= band.MinVolumeML && volumeML <= band.MaxVolumeML {
			return band, true
		}
	}
	return domain.ShippingBand{}, false
}

// FormatCost renders cents as dollars, e.g. 1825 -> "$18.25".
func FormatCost(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
