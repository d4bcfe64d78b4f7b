// internal/intel/intel_test.go
package intel

import (
	"strings"
	"testing"
)

func TestDetectSignalStrengths(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name       string
		text       string
		projectID  string
		confidence float64
	}{
		{"ticker", "loading up on $BTC today", "bitcoin", 0.9},
		{"handle", "big news from @ethereum", "ethereum", 0.8},
		{"name", "Solana throughput keeps improving", "solana", 0.8},
		{"hashtag", "all in on #DOGE", "dogecoin", 0.7},
		{"alias", "eth gas fees are down", "ethereum", 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detections := e.Detect(tt.text)
			if len(detections) == 0 {
				t.Fatal("expected a detection")
			}
			found := false
			for _, d := range detections {
				if d.Project.ID == tt.projectID {
					found = true
					if d.Confidence != tt.confidence {
						t.Errorf("confidence = %v, expected %v", d.Confidence, tt.confidence)
					}
				}
			}
			if !found {
				t.Errorf("project %s not detected in %q", tt.projectID, tt.text)
			}
		})
	}
}

func TestDetectStrongestSignalWins(t *testing.T) {
	e := NewEngine()
	// Both a weak alias and a strong ticker reference the same project.
	detections := e.Detect("btc looking strong, adding $BTC")

	for _, d := range detections {
		if d.Project.ID == "bitcoin" {
			if d.Confidence != 0.9 {
				t.Errorf("confidence = %v, expected the ticker signal to win", d.Confidence)
			}
			return
		}
	}
	t.Fatal("bitcoin not detected")
}

func TestDetectCapsAtFive(t *testing.T) {
	e := NewEngine()
	text := "$BTC $ETH $SOL $DOGE $LINK $UNI $ARB"
	detections := e.Detect(text)
	if len(detections) > 5 {
		t.Errorf("expected at most 5 detections, got %d", len(detections))
	}
}

func TestDetectWordBoundaries(t *testing.T) {
	e := NewEngine()
	// "base" must not fire inside "database".
	for _, d := range e.Detect("our database is slow") {
		if d.Project.ID == "base" {
			t.Error("expected no detection inside a larger word")
		}
	}
}

func TestSuggestExcludesPresent(t *testing.T) {
	e := NewEngine()
	s := e.Suggest("already holding $BTC and tagging @Bitcoin")

	for _, ticker := range s.Tickers {
		if strings.EqualFold(ticker, "$BTC") {
			t.Error("suggested a ticker already present in the text")
		}
	}
	for _, mention := range s.Mentions {
		if strings.EqualFold(mention, "@bitcoin") {
			t.Error("suggested a mention already present in the text")
		}
	}
	if len(s.Hashtags) == 0 {
		t.Error("expected hashtag suggestions for a detected project")
	}
	if len(s.Hashtags) > 3 || len(s.Mentions) > 3 || len(s.Tickers) > 3 {
		t.Errorf("suggestions exceed cap: %+v", s)
	}
}

func TestMarketSentiment(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"bullish", "bullish, sending it to the moon", 1},
		{"bearish", "total rug, everyone got rekt", -1},
		{"mixed", "bullish long term but this dump hurts", 0},
		{"no signal", "the protocol shipped an update", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarketSentiment(tt.text); got != tt.expected {
				t.Errorf("MarketSentiment(%q) = %v, expected %v", tt.text, got, tt.expected)
			}
		})
	}
}
