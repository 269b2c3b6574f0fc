package domain

// Coins lists the accepted coin denominations, in cents. Deposits and
// product costs must be exactly one of these values.
var Coins = []int{5, 10, 20, 50, 100}

// AllowedCoin reports whether amount is an accepted denomination.
func AllowedCoin(amount int) bool {
	for _, c := range Coins {
		if amount == c {
			return true
		}
	}
	return false
}
