package models

// Signal strength classifications as written by the scanner.
const (
	StrengthStrong   = "STRONG"
	StrengthModerate = "MODERATE"
	StrengthWeak     = "WEAK"
	StrengthNone     = "NO SIGNAL"
)

// Risk level classifications as written by the scanner.
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
	RiskUnknown  = "UNKNOWN"
)

// Signal is one detected trading opportunity. Records are immutable once
// written; the store only ever prepends them.
type Signal struct {
	Timestamp      Time               `json:"timestamp"`
	Symbol         string             `json:"symbol"`
	Address        string             `json:"address"`
	PriceUSD       float64            `json:"price_usd"`
	TotalScore     float64            `json:"total_score"`
	PopScore       float64            `json:"pop_score"`
	PopConfidence  string             `json:"pop_confidence"`
	ExpectedReturn float64            `json:"expected_return"`
	MaxDrawdown    float64            `json:"max_drawdown"`
	SignalStrength string             `json:"signal_strength"`
	RiskLevel      string             `json:"risk_level"`
	IsLocked       bool               `json:"is_locked"`
	LockPercentage float64            `json:"lock_percentage"`
	IsBundled      bool               `json:"is_bundled"`
	BundlePct      float64            `json:"bundle_percentage"`
	SecurityScore  float64            `json:"security_score"`
	BundlePenalty  float64            `json:"bundle_penalty"`
	LiquidityScore float64            `json:"liquidity_score"`
	VolumeScore    float64            `json:"volume_ratio_score"`
	MomentumScore  float64            `json:"momentum_score"`
	BuyPressure    float64            `json:"buy_pressure_score"`
	TrendScore     float64            `json:"trend_score"`
	EntryPrice     float64            `json:"entry_price"`
	StopLoss       float64            `json:"stop_loss"`
	TakeProfit1    float64            `json:"take_profit_1"`
	TakeProfit2    float64            `json:"take_profit_2"`
	TakeProfit3    float64            `json:"take_profit_3"`
	RiskReward     float64            `json:"risk_reward_ratio"`
	SecurityWarns  []string           `json:"security_warnings"`
	PopFactors     map[string]float64 `json:"pop_factors"`
	TelegramSent   bool               `json:"telegram_sent"`
}

// Scan is one evaluation attempt, whether or not it produced a Signal.
// Every Signal corresponds to exactly one Scan with IsValidSignal set.
type Scan struct {
	Timestamp      Time    `json:"timestamp"`
	Symbol         string  `json:"symbol"`
	PriceUSD       float64 `json:"price_usd"`
	TotalScore     float64 `json:"total_score"`
	PopScore       float64 `json:"pop_score"`
	SignalStrength string  `json:"signal_strength"`
	RiskLevel      string  `json:"risk_level"`
	IsValidSignal  bool    `json:"is_valid_signal"`
}
