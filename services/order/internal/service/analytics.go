package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Skotchmaster/restaurant_pos/services/order/internal/models"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/money"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/services/order/internal/transport"
)

const dateLayout = "2006-01-02"

const maxRangeDays = 366

type AnalyticsService struct {
	Repo *repo.GormRepo
	// Location is the business timezone days and hours are cut in. UTC when nil.
	Location *time.Location
}

func (s *AnalyticsService) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// ParseDay parses a YYYY-MM-DD date as midnight in the business timezone.
func (s *AnalyticsService) ParseDay(raw string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, raw, s.loc())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrValidation, raw)
	}
	return d, nil
}

func (s *AnalyticsService) dayRange(from, to time.Time) (time.Time, time.Time, error) {
	loc := s.loc()
	start := time.Date(from.In(loc).Year(), from.In(loc).Month(), from.In(loc).Day(), 0, 0, 0, 0, loc)
	last := time.Date(to.In(loc).Year(), to.In(loc).Month(), to.In(loc).Day(), 0, 0, 0, 0, loc)
	if last.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from after to", ErrValidation)
	}
	end := last.AddDate(0, 0, 1)
	if end.After(start.AddDate(0, 0, maxRangeDays)) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range longer than %d days", ErrValidation, maxRangeDays)
	}
	return start, end, nil
}

// DailyRevenue reports completed-order revenue for every day from..to
// inclusive. Days without orders are present with zero values.
func (s *AnalyticsService) DailyRevenue(ctx context.Context, from, to time.Time) ([]transport.DailyRevenue, error) {
	start, end, err := s.dayRange(from, to)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.CompletedOrders(ctx, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}

	var out []transport.DailyRevenue
	index := map[string]int{}
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		index[key] = len(out)
		out = append(out, transport.DailyRevenue{Date: key})
	}
	for _, o := range orders {
		i, ok := index[o.Datetime.In(s.loc()).Format(dateLayout)]
		if !ok {
			continue
		}
		r := &out[i]
		if r.Orders == 0 || o.PriceCents < r.Min {
			r.Min = o.PriceCents
		}
		if o.PriceCents > r.Max {
			r.Max = o.PriceCents
		}
		r.Orders++
		r.Revenue += o.PriceCents
	}
	for i := range out {
		if out[i].Orders > 0 {
			out[i].Average = out[i].Revenue / money.Cents(out[i].Orders)
		}
	}
	return out, nil
}

// HourlyRevenue splits one day's completed-order revenue into 24 buckets.
func (s *AnalyticsService) HourlyRevenue(ctx context.Context, day time.Time) ([]transport.HourlyRevenue, error) {
	start, end, err := s.dayRange(day, day)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.CompletedOrders(ctx, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}

	out := make([]transport.HourlyRevenue, 24)
	for h := range out {
		out[h].Hour = h
	}
	for _, o := range orders {
		h := o.Datetime.In(s.loc()).Hour()
		out[h].Orders++
		out[h].Revenue += o.PriceCents
	}
	return out, nil
}

// CompletionTimes summarises minutes between creation and completion for
// orders created from..to inclusive.
func (s *AnalyticsService) CompletionTimes(ctx context.Context, from, to time.Time) (*transport.CompletionStats, error) {
	start, end, err := s.dayRange(from, to)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.CompletedOrders(ctx, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	return completionStats(orders), nil
}

func completionStats(orders []models.Order) *transport.CompletionStats {
	mins := make([]float64, 0, len(orders))
	for _, o := range orders {
		if o.CompletedAt == nil {
			continue
		}
		mins = append(mins, o.CompletedAt.Sub(o.Datetime).Minutes())
	}
	stats := &transport.CompletionStats{Orders: len(mins)}
	if len(mins) == 0 {
		return stats
	}

	sort.Float64s(mins)
	var sum float64
	for _, m := range mins {
		sum += m
	}
	stats.AvgMinutes = sum / float64(len(mins))
	stats.MinMinutes = mins[0]
	stats.MaxMinutes = mins[len(mins)-1]
	stats.P50Minutes = percentile(mins, 0.5)
	stats.P90Minutes = percentile(mins, 0.9)
	return stats
}

// percentile interpolates linearly between closest ranks of sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
