package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/provalab/prova-api/internal/models"
	"github.com/provalab/prova-api/internal/repository"
)

func gradedSubmission(id string, percentage int, submittedAt time.Time) models.Submission {
	return models.Submission{
		ID:            id,
		ExamID:        "exam-1",
		ExamTitle:     "Prova de Matemática",
		StudentName:   "Aluno " + id,
		Percentage:    percentage,
		GradingStatus: models.GradingStatusGraded,
		SubmittedAt:   submittedAt,
	}
}

func TestBuildDashboardStatsBuckets(t *testing.T) {
	base := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	submissions := []models.Submission{
		gradedSubmission("s1", 85, base),
		gradedSubmission("s2", 75, base.Add(time.Minute)),
		gradedSubmission("s3", 65, base.Add(2*time.Minute)),
		gradedSubmission("s4", 55, base.Add(3*time.Minute)),
		gradedSubmission("s5", 45, base.Add(4*time.Minute)),
	}

	stats := BuildDashboardStats(submissions, base.Add(time.Hour))

	require.Equal(t, 5, stats.TotalSubmissions)
	require.Equal(t, 1, stats.PerformanceDistribution.Excellent)
	require.Equal(t, 1, stats.PerformanceDistribution.VeryGood)
	require.Equal(t, 1, stats.PerformanceDistribution.Good)
	require.Equal(t, 1, stats.PerformanceDistribution.Regular)
	require.Equal(t, 1, stats.PerformanceDistribution.Insufficient)
	require.Equal(t, 5, stats.PerformanceDistribution.Total())
	require.Equal(t, 65, stats.AverageScore)
	require.Equal(t, 60, stats.PassRate)
	require.Equal(t, 5, stats.GradedSubmissions)
}

func TestBuildDashboardStatsBucketBoundaries(t *testing.T) {
	base := time.Now()
	stats := BuildDashboardStats([]models.Submission{
		gradedSubmission("s1", 80, base),
		gradedSubmission("s2", 70, base),
		gradedSubmission("s3", 60, base),
		gradedSubmission("s4", 50, base),
		gradedSubmission("s5", 49, base),
	}, base)

	require.Equal(t, 1, stats.PerformanceDistribution.Excellent)
	require.Equal(t, 1, stats.PerformanceDistribution.VeryGood)
	require.Equal(t, 1, stats.PerformanceDistribution.Good)
	require.Equal(t, 1, stats.PerformanceDistribution.Regular)
	require.Equal(t, 1, stats.PerformanceDistribution.Insufficient)
	// 60 is the passing floor.
	require.Equal(t, 60, stats.PassRate)
}

func TestBuildDashboardStatsEmpty(t *testing.T) {
	stats := BuildDashboardStats(nil, time.Now())

	require.Equal(t, 0, stats.TotalSubmissions)
	require.Equal(t, 0, stats.AverageScore)
	require.Equal(t, 0, stats.PassRate)
	require.NotNil(t, stats.RecentActivity)
	require.Empty(t, stats.RecentActivity)
}

func TestBuildDashboardStatsRecentActivity(t *testing.T) {
	base := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	submissions := make([]models.Submission, 0, 12)
	for i := 0; i < 12; i++ {
		submissions = append(submissions, gradedSubmission(fmt.Sprintf("s%d", i), 70, base.Add(time.Duration(i)*time.Minute)))
	}

	stats := BuildDashboardStats(submissions, base.Add(time.Hour))

	require.Len(t, stats.RecentActivity, 10)
	require.Equal(t, "s11", stats.RecentActivity[0].ID)
	require.Equal(t, "s2", stats.RecentActivity[9].ID)
}

func TestDashboardUsesCacheOnSecondCall(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	kv := newMemStore()
	submissionRepo := repository.NewSubmissionRepository(kv)
	ctx := context.Background()
	require.NoError(t, submissionRepo.Save(ctx, "teacher-1", gradedSubmission("s1", 90, time.Now())))

	svc := NewAnalyticsService(submissionRepo, client, time.Minute, zerolog.New(io.Discard))

	first, err := svc.Dashboard(ctx, "teacher-1")
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Equal(t, 1, first.TotalSubmissions)

	second, err := svc.Dashboard(ctx, "teacher-1")
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.TotalSubmissions, second.TotalSubmissions)
	require.Equal(t, first.AverageScore, second.AverageScore)
}

func TestDashboardScopedByOwner(t *testing.T) {
	kv := newMemStore()
	submissionRepo := repository.NewSubmissionRepository(kv)
	ctx := context.Background()
	require.NoError(t, submissionRepo.Save(ctx, "teacher-1", gradedSubmission("s1", 90, time.Now())))

	svc := NewAnalyticsService(submissionRepo, nil, time.Minute, zerolog.New(io.Discard))

	stats, err := svc.Dashboard(ctx, "teacher-2")
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalSubmissions)
}
