package dto

import "time"

// PerformanceDistribution partitions submissions into five fixed percentage
// buckets. Buckets are half-open except the top one, which closes at 100.
type PerformanceDistribution struct {
	Excellent    int `json:"excellent"`    // [80, 100]
	VeryGood     int `json:"very_good"`    // [70, 80)
	Good         int `json:"good"`         // [60, 70)
	Regular      int `json:"regular"`      // [50, 60)
	Insufficient int `json:"insufficient"` // [0, 50)
}

// Total sums every bucket.
func (d PerformanceDistribution) Total() int {
	return d.Excellent + d.VeryGood + d.Good + d.Regular + d.Insufficient
}

// RecentActivityItem projects a recent submission for the dashboard feed.
type RecentActivityItem struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	ExamTitle   string    `json:"exam_title"`
	Percentage  int       `json:"percentage"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// DashboardStatsResponse aggregates submission statistics for the dashboard.
type DashboardStatsResponse struct {
	TotalSubmissions        int                     `json:"total_submissions"`
	GradedSubmissions       int                     `json:"graded_submissions"`
	ReviewedSubmissions     int                     `json:"reviewed_submissions"`
	AverageScore            int                     `json:"average_score"`
	PassRate                int                     `json:"pass_rate"`
	PerformanceDistribution PerformanceDistribution `json:"performance_distribution"`
	RecentActivity          []RecentActivityItem    `json:"recent_activity"`
	GeneratedAt             time.Time               `json:"generated_at"`
	CacheHit                bool                    `json:"cache_hit"`
}
