package price

import (
	"time"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
	"github.com/DjordjeVuckovic/crypto-board/pkg/utils"
)

const DefaultHorizon = 7

const priceDecimals = 2

// Project fits price = slope*i + intercept over the history index by least
// squares and extends the line horizon days past the last point. Projected
// prices are rounded to cents.
func Project(history []domain.PricePoint, horizon int) domain.PriceTrend {
	trend := domain.PriceTrend{
		History:    history,
		Projection: []domain.PricePoint{},
	}
	n := len(history)
	if n == 0 {
		return trend
	}
	if horizon < 0 {
		horizon = 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range history {
		x := float64(i)
		sumX += x
		sumY += p.Price
		sumXY += x * p.Price
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom != 0 {
		trend.Slope = (fn*sumXY - sumX*sumY) / denom
	}
	trend.Intercept = (sumY - trend.Slope*sumX) / fn

	last, err := time.Parse(dateLayout, history[n-1].Date)
	for i := 1; i <= horizon; i++ {
		x := float64(n - 1 + i)
		p := domain.PricePoint{Price: utils.RoundDecimal(trend.Slope*x+trend.Intercept, priceDecimals)}
		if err == nil {
			p.Date = last.AddDate(0, 0, i).Format(dateLayout)
		}
		trend.Projection = append(trend.Projection, p)
	}
	return trend
}
