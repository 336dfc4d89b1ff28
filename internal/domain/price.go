package domain

type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

type PriceTrend struct {
	Slope      float64      `json:"slope"`
	Intercept  float64      `json:"intercept"`
	History    []PricePoint `json:"history"`
	Projection []PricePoint `json:"projection"`
}
