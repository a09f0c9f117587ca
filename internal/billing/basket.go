package billing

type basketTier struct {
	min     int
	revenue float64
	share   float64
}

// Highest tier first. Counts of 85 or less earn nothing.
var basketTiers = []basketTier{
	{min: 101, revenue: 1000, share: 700},
	{min: 91, revenue: 600, share: 400},
	{min: 86, revenue: 300, share: 200},
}

// BasketTier maps a basket count to (office revenue, driver share). It is
// a step function with no cap above the top tier.
func BasketTier(count int) (revenue, share float64) {
	for _, t := range basketTiers {
		if count >= t.min {
			return t.revenue, t.share
		}
	}
	return 0, 0
}

// ApplyBasketTier fills basket and basketShare from the basket count when
// neither was entered by hand.
func ApplyBasketTier(t *Trip) bool {
	if t.BasketCount <= 0 || t.Basket != 0 || t.BasketShare != 0 {
		return false
	}
	t.Basket, t.BasketShare = BasketTier(t.BasketCount)
	t.Recompute()
	return t.Basket != 0
}
