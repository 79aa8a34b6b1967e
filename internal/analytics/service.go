// Package analytics assembles the dashboard analytics view: aggregate stats
// over a trailing window, per-category and per-day breakdowns, and an AI
// trend summary over the most recent consultations.
package analytics

import (
	"context"
	"time"

	"github.com/saludplus/consultas-backend/internal/ai"
	"github.com/saludplus/consultas-backend/internal/consultation"
)

const (
	defaultWindowDays = 30

	// The trend summary always looks at the last 7 days, capped at 50
	// consultations, independent of the requested stats window.
	trendWindowDays = 7
	trendLimit      = 50
)

// Cache stores assembled overviews keyed by window size. A nil or failing
// cache degrades to recompute; it never fails the request.
type Cache interface {
	GetOverview(ctx context.Context, days int) (*Overview, bool)
	SetOverview(ctx context.Context, days int, ov *Overview)
}

type Overview struct {
	Stats          *consultation.OverallStats  `json:"stats"`
	CategoryStats  []consultation.CategoryStat `json:"categoryStats"`
	DailyTrends    []consultation.DailyTrend   `json:"dailyTrends"`
	TrendsAnalysis string                      `json:"trendsAnalysis"`
}

type Service struct {
	repo   *consultation.Repo
	trends ai.TrendAnalyzer
	cache  Cache
}

func NewService(repo *consultation.Repo, trends ai.TrendAnalyzer, cache Cache) *Service {
	return &Service{repo: repo, trends: trends, cache: cache}
}

func (s *Service) Overview(ctx context.Context, days int) (*Overview, error) {
	if days <= 0 {
		days = defaultWindowDays
	}

	if s.cache != nil {
		if ov, ok := s.cache.GetOverview(ctx, days); ok {
			return ov, nil
		}
	}

	now := time.Now()
	since := now.AddDate(0, 0, -days)

	stats, err := s.repo.OverallStats(ctx, since)
	if err != nil {
		return nil, err
	}

	categoryStats, err := s.repo.CategoryStats(ctx, since)
	if err != nil {
		return nil, err
	}

	dailyTrends, err := s.repo.DailyTrends(ctx, since)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.RecentConsultations(ctx, now.AddDate(0, 0, -trendWindowDays), trendLimit)
	if err != nil {
		return nil, err
	}

	trendRows := make([]ai.TrendConsultation, 0, len(recent))
	for _, c := range recent {
		trendRows = append(trendRows, ai.TrendConsultation{
			Subject:        c.Subject,
			Message:        c.Message,
			SentimentScore: c.SentimentScore,
			PriorityLevel:  c.PriorityLevel,
			CreatedAt:      c.CreatedAt,
		})
	}

	ov := &Overview{
		Stats:          stats,
		CategoryStats:  categoryStats,
		DailyTrends:    dailyTrends,
		TrendsAnalysis: s.trends.AnalyzeTrends(ctx, trendRows),
	}

	if s.cache != nil {
		s.cache.SetOverview(ctx, days, ov)
	}
	return ov, nil
}
