package binance

import (
	"github.com/KNICEX/spot-bot/internal/service/exchange"
	"github.com/shopspring/decimal"
)

// 币安 PERCENT_PRICE_BY_SIDE 过滤器会拒绝偏离市价过远的限价单
var (
	priceBandLower = decimal.RequireFromString("0.95")
	priceBandUpper = decimal.RequireFromString("1.05")

	buyReplaceRatio  = decimal.RequireFromString("0.995")
	sellReplaceRatio = decimal.RequireFromString("1.005")
)

const adjustedPricePlaces = 2

// PriceBand inclusive [current*0.95, current*1.05]
func PriceBand(current decimal.Decimal) (lower, upper decimal.Decimal) {
	return current.Mul(priceBandLower), current.Mul(priceBandUpper)
}

// AdjustLimitPrice keeps price when it sits inside the band around current,
// otherwise replaces it with current*0.995 (BUY) or current*1.005 (SELL) rounded to 2 places.
func AdjustLimitPrice(side exchange.Side, price, current decimal.Decimal) (decimal.Decimal, bool) {
	lower, upper := PriceBand(current)
	if price.GreaterThanOrEqual(lower) && price.LessThanOrEqual(upper) {
		return price, false
	}
	ratio := sellReplaceRatio
	if side == exchange.SideBuy {
		ratio = buyReplaceRatio
	}
	return current.Mul(ratio).Round(adjustedPricePlaces), true
}
