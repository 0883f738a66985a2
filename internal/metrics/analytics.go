package metrics

import "github.com/starford/ansuz/internal/store"

// SalesPoint is one month of the sales chart.
type SalesPoint struct {
	Name    string  `json:"name" yaml:"name"`
	Sales   float64 `json:"sales" yaml:"sales"`
	Orders  int     `json:"orders" yaml:"orders"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
}

// CategoryShare is one slice of the category pie chart.
type CategoryShare struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color" yaml:"color"`
	Sales float64 `json:"sales" yaml:"sales"`
}

// TrafficPoint is one day of the traffic chart.
type TrafficPoint struct {
	Name      string `json:"name" yaml:"name"`
	Visitors  int    `json:"visitors" yaml:"visitors"`
	PageViews int    `json:"pageViews" yaml:"pageViews"`
}

// FunnelStep is one stage of the conversion funnel.
type FunnelStep struct {
	Name        string `json:"name" yaml:"name"`
	Visitors    int    `json:"visitors" yaml:"visitors"`
	Conversions int    `json:"conversions" yaml:"conversions"`
}

// Rate is the step's conversion percentage.
func (f FunnelStep) Rate() float64 {
	return Percentage(float64(f.Conversions), float64(f.Visitors))
}

// Series is the illustrative data set behind the analytics charts. It does
// not come from the live store.
type Series struct {
	Sales      []SalesPoint    `json:"sales" yaml:"sales"`
	Categories []CategoryShare `json:"categories" yaml:"categories"`
	Traffic    []TrafficPoint  `json:"traffic" yaml:"traffic"`
	Funnel     []FunnelStep    `json:"funnel" yaml:"funnel"`
}

// FunnelRow is a FunnelStep with its computed rate.
type FunnelRow struct {
	FunnelStep
	Rate float64 `json:"rate"`
}

// Funnel attaches conversion rates to every step.
func Funnel(steps []FunnelStep) []FunnelRow {
	out := make([]FunnelRow, len(steps))
	for i, s := range steps {
		out[i] = FunnelRow{FunnelStep: s, Rate: s.Rate()}
	}
	return out
}

// Totals are the headline numbers of the analytics page, taken from the store.
type Totals struct {
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
	Products int     `json:"products"`
	Users    int     `json:"users"`
	Posts    int     `json:"posts"`
}

// Analytics is the payload of the analytics page.
type Analytics struct {
	Totals     Totals          `json:"totals"`
	Sales      []SalesPoint    `json:"sales"`
	Categories []CategoryShare `json:"categories"`
	Traffic    []TrafficPoint  `json:"traffic"`
	Funnel     []FunnelRow     `json:"funnel"`
}

// BuildAnalytics combines live totals from s with the static series.
func BuildAnalytics(s store.State, series Series) Analytics {
	d := Summarize(s)
	return Analytics{
		Totals: Totals{
			Revenue:  d.TotalRevenue,
			Orders:   d.TotalOrders,
			Products: d.TotalProducts,
			Users:    d.TotalUsers,
			Posts:    d.TotalPosts,
		},
		Sales:      nonNil(series.Sales),
		Categories: nonNil(series.Categories),
		Traffic:    nonNil(series.Traffic),
		Funnel:     Funnel(series.Funnel),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
