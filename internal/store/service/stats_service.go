package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/repository"
)

const (
	statsCacheKey = "stats:summary"
	statsCacheTTL = 5 * time.Minute
)

// CategoryTotal is one slice of the procurement spend breakdown.
type CategoryTotal struct {
	Category  string          `json:"category"`
	Count     int             `json:"count"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

// StatsSummary feeds the dashboard charts.
type StatsSummary struct {
	InvoiceCount     int             `json:"invoiceCount"`
	ApprovedInvoices int             `json:"approvedInvoices"`
	PaidInvoices     int             `json:"paidInvoices"`
	DcCount          int             `json:"dcCount"`
	ApprovedDcs      int             `json:"approvedDcs"`
	TotalSpend       decimal.Decimal `json:"totalSpend"`
	ByCategory       []CategoryTotal `json:"byCategory"`
}

// StatsService aggregates document counts and spend, cached briefly in
// redis since the dashboard polls it.
type StatsService struct {
	invoices *repository.MaterialInvoiceRepository
	dcs      *repository.DcEntryRepository
	rdb      *redis.Client
}

func NewStatsService(invoices *repository.MaterialInvoiceRepository, dcs *repository.DcEntryRepository, rdb *redis.Client) *StatsService {
	return &StatsService{invoices: invoices, dcs: dcs, rdb: rdb}
}

// Summary computes (or serves from cache) the dashboard aggregate.
func (s *StatsService) Summary(ctx context.Context) (*StatsSummary, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey).Result(); err == nil {
			var summary StatsSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: list invoices: %w", err)
	}
	dcs, err := s.dcs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: list dc entries: %w", err)
	}

	summary := &StatsSummary{TotalSpend: decimal.Zero}
	byCategory := make(map[string]*CategoryTotal)
	var categoryOrder []string
	for _, inv := range invoices {
		summary.InvoiceCount++
		if inv.Approved {
			summary.ApprovedInvoices++
		}
		if inv.Paid {
			summary.PaidInvoices++
		}
		summary.TotalSpend = summary.TotalSpend.Add(inv.TotalCost)

		key := string(inv.MaterialCategory)
		ct, ok := byCategory[key]
		if !ok {
			ct = &CategoryTotal{Category: key, TotalCost: decimal.Zero}
			byCategory[key] = ct
			categoryOrder = append(categoryOrder, key)
		}
		ct.Count++
		ct.TotalCost = ct.TotalCost.Add(inv.TotalCost)
	}
	for _, key := range categoryOrder {
		summary.ByCategory = append(summary.ByCategory, *byCategory[key])
	}

	for _, dc := range dcs {
		summary.DcCount++
		if dc.Approved {
			summary.ApprovedDcs++
		}
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(summary); err == nil {
			s.rdb.Set(ctx, statsCacheKey, payload, statsCacheTTL)
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary after a mutation.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, statsCacheKey)
	}
}
