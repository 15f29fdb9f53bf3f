package service

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/provalab/prova-api/internal/dto"
	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/repository"
)

// recentActivityLimit caps the dashboard feed.
const recentActivityLimit = 10

// AnalyticsService aggregates submission statistics for the dashboard.
type AnalyticsService interface {
	Dashboard(ctx context.Context, owner string) (dto.DashboardStatsResponse, error)
}

type analyticsService struct {
	submissions repository.SubmissionRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAnalyticsService constructs the analytics service. The cache client may
// be nil, in which case every call recomputes.
func NewAnalyticsService(submissionRepo repository.SubmissionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		submissions: submissionRepo,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "analytics_service").Logger(),
		now:         time.Now,
	}
}

func (s *analyticsService) Dashboard(ctx context.Context, owner string) (dto.DashboardStatsResponse, error) {
	cacheKey := "analytics:dashboard:" + owner
	tracer := otel.Tracer("github.com/provalab/prova-api/internal/service/analytics")
	ctx, span := tracer.Start(ctx, "analytics.dashboard")
	span.SetAttributes(attribute.String("analytics.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.DashboardStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	submissions, err := s.submissions.List(ctx, owner, repository.SubmissionFilter{})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_submissions_failed")
		return dto.DashboardStatsResponse{}, err
	}

	stats := BuildDashboardStats(submissions, s.now())
	span.SetAttributes(attribute.Int("analytics.submission_count", stats.TotalSubmissions))

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
				span.RecordError(err)
			}
		}
	}

	return stats, nil
}

// BuildDashboardStats derives summary statistics from a submission
// collection. It is pure: repeated calls over the same input yield identical
// results, and an empty collection yields zero values without division.
func BuildDashboardStats(submissions []models.Submission, now time.Time) dto.DashboardStatsResponse {
	stats := dto.DashboardStatsResponse{
		TotalSubmissions: len(submissions),
		RecentActivity:   []dto.RecentActivityItem{},
		GeneratedAt:      now,
	}

	percentageSum := 0
	passing := 0
	for _, submission := range submissions {
		switch submission.GradingStatus {
		case models.GradingStatusGraded:
			stats.GradedSubmissions++
		case models.GradingStatusReviewed:
			stats.ReviewedSubmissions++
		}

		percentageSum += submission.Percentage
		if submission.IsPassing() {
			passing++
		}

		switch percentage := submission.Percentage; {
		case percentage >= 80:
			stats.PerformanceDistribution.Excellent++
		case percentage >= 70:
			stats.PerformanceDistribution.VeryGood++
		case percentage >= 60:
			stats.PerformanceDistribution.Good++
		case percentage >= 50:
			stats.PerformanceDistribution.Regular++
		default:
			stats.PerformanceDistribution.Insufficient++
		}
	}

	if len(submissions) > 0 {
		stats.AverageScore = int(math.Round(float64(percentageSum) / float64(len(submissions))))
		stats.PassRate = int(math.Round(float64(passing) / float64(len(submissions)) * 100))
	}

	recent := make([]models.Submission, len(submissions))
	copy(recent, submissions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].SubmittedAt.After(recent[j].SubmittedAt)
	})
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}
	for _, submission := range recent {
		stats.RecentActivity = append(stats.RecentActivity, dto.RecentActivityItem{
			ID:          submission.ID,
			StudentName: submission.StudentName,
			ExamTitle:   submission.ExamTitle,
			Percentage:  submission.Percentage,
			SubmittedAt: submission.SubmittedAt,
		})
	}

	return stats
}
