package types

// TrendDirection classifies how earnings volatility moved across the
// rolling windows of a volatility trend.
type TrendDirection string

const (
	TrendImproving        TrendDirection = "improving" // volatility decreasing
	TrendDeclining        TrendDirection = "declining" // volatility increasing
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)
