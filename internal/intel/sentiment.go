// internal/intel/sentiment.go

package intel

import "strings"

var bullishTerms = []string{
	"bullish", "moon", "pump", "ath", "breakout", "accumulate", "buy the dip",
	"lfg", "wagmi", "send it", "up only", "undervalued", "gm",
}

var bearishTerms = []string{
	"bearish", "dump", "crash", "rekt", "rug", "rugpull", "scam", "ponzi",
	"capitulation", "overvalued", "ngmi", "exit liquidity", "dead cat",
}

// MarketSentiment scores crypto-specific sentiment on [-1, 1] by counting
// bullish and bearish terms. Zero means neutral or no signal.
func MarketSentiment(text string) float64 {
	lower := strings.ToLower(text)
	var bull, bear int
	for _, term := range bullishTerms {
		if strings.Contains(lower, term) {
			bull++
		}
	}
	for _, term := range bearishTerms {
		if strings.Contains(lower, term) {
			bear++
		}
	}
	total := bull + bear
	if total == 0 {
		return 0
	}
	return float64(bull-bear) / float64(total)
}
