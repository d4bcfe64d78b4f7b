// internal/report/report.go

// Package report renders an HTML dashboard over a snapshot of extracted
// posts.
package report

import (
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/replyforge/postline/internal/extract"
)

const topN = 10

// Render writes sentiment, hashtag, and engagement charts for the posts
// to w as HTML.
func Render(w io.Writer, posts []extract.Post) error {
	if err := sentimentPie(posts).Render(w); err != nil {
		return err
	}
	if err := hashtagBar(posts).Render(w); err != nil {
		return err
	}
	return engagementBar(posts).Render(w)
}

func sentimentPie(posts []extract.Post) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Sentiment Breakdown"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	counts := make(map[extract.Sentiment]int)
	for _, p := range posts {
		counts[p.Sentiment]++
	}

	var items []opts.PieData
	for _, label := range []extract.Sentiment{extract.SentimentPositive, extract.SentimentNeutral, extract.SentimentNegative} {
		if counts[label] > 0 {
			items = append(items, opts.PieData{Name: string(label), Value: counts[label]})
		}
	}
	pie.AddSeries("Posts", items)
	return pie
}

func hashtagBar(posts []extract.Post) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Top Hashtags"}))

	counts := make(map[string]int)
	for _, p := range posts {
		for _, tag := range p.Hashtags {
			counts[tag]++
		}
	}

	keys := topKeys(counts, topN)
	var values []opts.BarData
	for _, k := range keys {
		values = append(values, opts.BarData{Value: counts[k]})
	}
	bar.SetXAxis(keys).AddSeries("Mentions", values)
	return bar
}

func engagementBar(posts []extract.Post) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Engagement by Author"}))

	totals := make(map[string]int)
	for _, p := range posts {
		if p.Username == "" {
			continue
		}
		totals[p.Username] += p.Metrics.Likes + p.Metrics.Shares + p.Metrics.Replies
	}

	keys := topKeys(totals, topN)
	var values []opts.BarData
	for _, k := range keys {
		values = append(values, opts.BarData{Value: totals[k]})
	}
	bar.SetXAxis(keys).AddSeries("Engagement", values)
	return bar
}

// topKeys returns up to n keys ordered by descending count, ties broken
// alphabetically for stable output.
func topKeys(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if counts[keys[a]] != counts[keys[b]] {
			return counts[keys[a]] > counts[keys[b]]
		}
		return keys[a] < keys[b]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
