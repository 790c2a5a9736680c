package services

import (
	"context"
	"sort"

	"travel_planner/internal/models"
	"travel_planner/internal/repositories"
)

// Series is one bar chart worth of labelled values.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type Dashboard struct {
	Trips           []models.Trip         `json:"trips"`
	TotalTrips      int                   `json:"total_trips"`
	AverageDuration *float64              `json:"average_duration"`
	AverageBudget   *float64              `json:"average_budget"`
	StatusCounts    map[models.Status]int `json:"status_counts"`
	DurationChart   *Series               `json:"duration_chart,omitempty"`
}

type TransportReport struct {
	Options         []models.Transportation `json:"options"`
	AverageDuration *float64                `json:"average_duration"`
	AveragePrice    *float64                `json:"average_price"`
	TypeCounts      map[string]int          `json:"type_counts"`
	CompanyCounts   map[string]int          `json:"company_counts"`
	TypeChart       *Series                 `json:"type_chart,omitempty"`
}

type ReportService struct {
	trips   repositories.TripRepository
	catalog repositories.CatalogRepository
}

func NewReportService(trips repositories.TripRepository, catalog repositories.CatalogRepository) *ReportService {
	return &ReportService{trips: trips, catalog: catalog}
}

func (s *ReportService) Dashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(trips), nil
}

func (s *ReportService) Transportation(ctx context.Context) (*TransportReport, error) {
	options, err := s.catalog.ListTransportation(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTransportReport(options), nil
}

// BuildDashboard summarises trips. Averages skip trips missing the value and
// are nil when nothing qualifies.
func BuildDashboard(trips []models.Trip) *Dashboard {
	d := &Dashboard{
		Trips:        trips,
		TotalTrips:   len(trips),
		StatusCounts: make(map[models.Status]int, len(models.Statuses)),
	}
	for _, st := range models.Statuses {
		d.StatusCounts[st] = 0
	}

	var durations, budgets []float64
	chart := &Series{}
	for _, t := range trips {
		d.StatusCounts[t.Status]++
		if days := t.DurationDays(); days != nil {
			durations = append(durations, float64(*days))
			chart.Labels = append(chart.Labels, t.Name)
			chart.Values = append(chart.Values, float64(*days))
		}
		if t.Budget != nil {
			budgets = append(budgets, *t.Budget)
		}
	}
	d.AverageDuration = mean(durations)
	d.AverageBudget = mean(budgets)
	if len(trips) > 1 && len(chart.Values) > 0 {
		d.DurationChart = chart
	}
	return d
}

func BuildTransportReport(options []models.Transportation) *TransportReport {
	r := &TransportReport{
		Options:       options,
		TypeCounts:    map[string]int{},
		CompanyCounts: map[string]int{},
	}
	var durations, prices []float64
	for _, o := range options {
		durations = append(durations, o.DurationHours)
		prices = append(prices, o.PriceMin)
		r.TypeCounts[o.TransportType]++
		if o.Company != "" {
			r.CompanyCounts[o.Company]++
		}
	}
	r.AverageDuration = mean(durations)
	r.AveragePrice = mean(prices)

	if len(r.TypeCounts) > 0 {
		types := make([]string, 0, len(r.TypeCounts))
		for t := range r.TypeCounts {
			types = append(types, t)
		}
		sort.Strings(types)
		chart := &Series{}
		for _, t := range types {
			chart.Labels = append(chart.Labels, t)
			chart.Values = append(chart.Values, float64(r.TypeCounts[t]))
		}
		r.TypeChart = chart
	}
	return r
}

func mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	avg := sum / float64(len(xs))
	return &avg
}
