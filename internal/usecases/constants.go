package usecases

// PurchaseExpiryMinutes is the SLA window: an escrowed purchase not confirmed
// within it is force-expired by the watchdog.
const PurchaseExpiryMinutes = 30

// MinPurchaseQuantity is the smallest purchase an agent must be able to cover
// to appear in the available listing.
const MinPurchaseQuantity = 1

// PricePerCoin is the platform rate in minor currency units, frozen onto each
// purchase at escrow creation.
const PricePerCoin = 500

// CommissionRatePercent of the total price is credited to the agent on
// completion.
const CommissionRatePercent = 2

// tierPurchaseLimits caps purchase quantity per identity tier. Zero means
// unlimited.
var tierPurchaseLimits = map[int]int64{
	1: 100,
	2: 1000,
	3: 0,
}

// PurchaseLimitForTier returns the maximum quantity a user of the given tier
// may buy in one purchase, 0 for unlimited.
func PurchaseLimitForTier(tier int) int64 {
	limit, ok := tierPurchaseLimits[tier]
	if !ok {
		return tierPurchaseLimits[1]
	}
	return limit
}
