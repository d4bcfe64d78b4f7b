// internal/intel/intel.go

// Package intel detects crypto projects referenced in post text and derives
// reply-enhancement suggestions from them. Detection is keyword and regex
// based; there is no market-data lookup here.
package intel

import (
	"regexp"
	"sort"
	"strings"
)

// Category groups projects by ecosystem role.
type Category string

const (
	CategoryBlockchain     Category = "blockchain"
	CategoryDeFi           Category = "defi"
	CategoryNFT            Category = "nft"
	CategoryInfrastructure Category = "infrastructure"
	CategoryExchange       Category = "exchange"
	CategoryMeme           Category = "meme"
	CategoryAI             Category = "ai"
)

// Project is one known crypto project.
type Project struct {
	ID       string
	Name     string
	Symbol   string
	Handle   string
	Hashtags []string
	Category Category
	Aliases  []string
}

// Detection is a project match with the confidence of the strongest signal
// that produced it.
type Detection struct {
	Project    Project
	Confidence float64
}

// Suggestions are reply enhancements derived from detected projects, capped
// at three entries each and excluding anything already present in the text.
type Suggestions struct {
	Mentions []string `json:"mentions,omitempty"`
	Hashtags []string `json:"hashtags,omitempty"`
	Tickers  []string `json:"tickers,omitempty"`
}

var (
	tickerPattern  = regexp.MustCompile(`\$([A-Za-z]{1,10})\b`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
)

// Engine indexes projects by symbol, handle, name, and alias.
type Engine struct {
	projects []Project
	index    map[string]int
}

// NewEngine returns an engine loaded with the built-in project registry.
func NewEngine() *Engine {
	return NewEngineWithProjects(builtinProjects())
}

// NewEngineWithProjects builds an engine over a custom registry.
func NewEngineWithProjects(projects []Project) *Engine {
	e := &Engine{projects: projects, index: make(map[string]int)}
	for i, p := range projects {
		e.indexKey(p.Symbol, i)
		e.indexKey(p.Handle, i)
		e.indexKey(p.Name, i)
		for _, alias := range p.Aliases {
			e.indexKey(alias, i)
		}
	}
	return e
}

func (e *Engine) indexKey(key string, i int) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}
	if _, exists := e.index[key]; !exists {
		e.index[key] = i
	}
}

// Detect returns up to five projects referenced in the text, strongest
// signal first. Signal strengths: $TICKER 0.9, @handle 0.8, name 0.8,
// #hashtag 0.7, bare alias 0.6.
func (e *Engine) Detect(text string) []Detection {
	lower := strings.ToLower(text)
	best := map[int]float64{}

	record := func(key string, confidence float64) {
		i, ok := e.index[strings.ToLower(key)]
		if !ok {
			return
		}
		if confidence > best[i] {
			best[i] = confidence
		}
	}

	for _, m := range tickerPattern.FindAllStringSubmatch(text, -1) {
		record(m[1], 0.9)
	}
	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		record(m[1], 0.8)
	}
	for _, m := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		record(m[1], 0.7)
	}
	for i, p := range e.projects {
		if containsToken(lower, strings.ToLower(p.Name)) {
			if 0.8 > best[i] {
				best[i] = 0.8
			}
			continue
		}
		for _, alias := range p.Aliases {
			if containsToken(lower, strings.ToLower(alias)) {
				if 0.6 > best[i] {
					best[i] = 0.6
				}
				break
			}
		}
	}

	detections := make([]Detection, 0, len(best))
	for i, confidence := range best {
		detections = append(detections, Detection{Project: e.projects[i], Confidence: confidence})
	}
	sort.SliceStable(detections, func(a, b int) bool {
		if detections[a].Confidence != detections[b].Confidence {
			return detections[a].Confidence > detections[b].Confidence
		}
		return detections[a].Project.ID < detections[b].Project.ID
	})
	if len(detections) > 5 {
		detections = detections[:5]
	}
	return detections
}

// Suggest derives reply enhancements from the projects detected in text.
func (e *Engine) Suggest(text string) Suggestions {
	s := Suggestions{}
	lowerText := strings.ToLower(text)

	for _, d := range e.Detect(text) {
		p := d.Project
		if p.Handle != "" && len(s.Mentions) < 3 {
			mention := "@" + p.Handle
			if !strings.Contains(lowerText, strings.ToLower(mention)) {
				s.Mentions = append(s.Mentions, mention)
			}
		}
		if p.Symbol != "" && len(s.Tickers) < 3 {
			ticker := "$" + p.Symbol
			if !strings.Contains(strings.ToUpper(text), strings.ToUpper(ticker)) {
				s.Tickers = append(s.Tickers, ticker)
			}
		}
		for _, tag := range p.Hashtags {
			if len(s.Hashtags) >= 3 {
				break
			}
			if !strings.Contains(lowerText, strings.ToLower(tag)) {
				s.Hashtags = append(s.Hashtags, tag)
			}
		}
	}
	return s
}

// containsToken matches whole words only, so "base" does not fire inside
// "database".
func containsToken(text, token string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], token)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(token)
		beforeOK := start == 0 || !isWordByte(text[start-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = end
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
