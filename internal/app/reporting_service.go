package app

import (
	"context"
	"math"
	"sort"
	"time"

	"veridia/internal/common"
	"veridia/internal/domain/activity"
	"veridia/internal/domain/application"
	"veridia/internal/domain/position"
	"veridia/internal/domain/reporting"
	"veridia/internal/domain/user"
)

// Fixed figures the dashboards report until hiring-cycle tracking lands.
const (
	avgTimeToHireDays       = 21
	interviewConversionRate = 80
)

type ReportingService struct {
	reports      reporting.Repository
	applications application.Repository
	activities   activity.Repository
	positions    position.Repository
	users        user.Repository
}

func NewReportingService(reports reporting.Repository, applications application.Repository, activities activity.Repository, positions position.Repository, users user.Repository) *ReportingService {
	return &ReportingService{reports: reports, applications: applications, activities: activities, positions: positions, users: users}
}

type ApplicantStats struct {
	TotalApplications   int     `json:"total_applications"`
	PendingReview       int     `json:"pending_review"`
	InterviewsScheduled int     `json:"interviews_scheduled"`
	Rejected            int     `json:"rejected"`
	Accepted            int     `json:"accepted"`
	ResponseRate        float64 `json:"response_rate"`
}

func (s *ReportingService) ApplicantStats(ctx context.Context, applicantID common.UUID) (*ApplicantStats, error) {
	counts, err := s.reports.StatusCounts(ctx, &applicantID)
	if err != nil {
		return nil, err
	}
	total := sumCounts(counts)
	pending := counts[application.StatusUnderReview]
	return &ApplicantStats{
		TotalApplications:   total,
		PendingReview:       pending,
		InterviewsScheduled: counts[application.StatusInterviewScheduled],
		Rejected:            counts[application.StatusRejected],
		Accepted:            counts[application.StatusAccepted],
		ResponseRate:        rate(total-pending, total),
	}, nil
}

type DepartmentStat struct {
	Department string  `json:"department"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type AdminStats struct {
	TotalApplications       int              `json:"total_applications"`
	PendingReview           int              `json:"pending_review"`
	InterviewsScheduled     int              `json:"interviews_scheduled"`
	Accepted                int              `json:"accepted"`
	Rejected                int              `json:"rejected"`
	AvgTimeToHire           int              `json:"avg_time_to_hire"`
	AcceptanceRate          float64          `json:"acceptance_rate"`
	InterviewConversionRate int              `json:"interview_conversion_rate"`
	ActivePositions         int              `json:"active_positions"`
	DepartmentStats         []DepartmentStat `json:"department_stats"`
}

func (s *ReportingService) AdminStats(ctx context.Context) (*AdminStats, error) {
	counts, err := s.reports.StatusCounts(ctx, nil)
	if err != nil {
		return nil, err
	}
	departments, err := s.reports.DepartmentCounts(ctx)
	if err != nil {
		return nil, err
	}
	activePositions, err := s.positions.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	total := sumCounts(counts)
	stats := &AdminStats{
		TotalApplications:       total,
		PendingReview:           counts[application.StatusUnderReview],
		InterviewsScheduled:     counts[application.StatusInterviewScheduled],
		Accepted:                counts[application.StatusAccepted],
		Rejected:                counts[application.StatusRejected],
		AvgTimeToHire:           avgTimeToHireDays,
		AcceptanceRate:          rate(counts[application.StatusAccepted], total),
		InterviewConversionRate: interviewConversionRate,
		ActivePositions:         activePositions,
		DepartmentStats:         departmentStats(departments, total),
	}
	return stats, nil
}

type AnalyticsOverview struct {
	TotalApplications int     `json:"total_applications"`
	TotalApplicants   int     `json:"total_applicants"`
	AcceptanceRate    float64 `json:"acceptance_rate"`
	AvgTimeToHire     int     `json:"avg_time_to_hire"`
}

type Analytics struct {
	Overview                 AnalyticsOverview         `json:"overview"`
	ApplicationsByMonth      []reporting.MonthCount    `json:"applications_by_month"`
	ApplicationsByStatus     map[string]int            `json:"applications_by_status"`
	ApplicationsByDepartment map[string]int            `json:"applications_by_department"`
	TopPositions             []reporting.PositionCount `json:"top_positions"`
}

const topPositionsLimit = 5

func (s *ReportingService) Analytics(ctx context.Context) (*Analytics, error) {
	counts, err := s.reports.StatusCounts(ctx, nil)
	if err != nil {
		return nil, err
	}
	monthly, err := s.reports.MonthlyCounts(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.reports.DepartmentCounts(ctx)
	if err != nil {
		return nil, err
	}
	topPositions, err := s.reports.TopPositions(ctx, topPositionsLimit)
	if err != nil {
		return nil, err
	}
	applicants, err := s.users.CountByRole(ctx, user.RoleApplicant)
	if err != nil {
		return nil, err
	}

	total := sumCounts(counts)
	byStatus := make(map[string]int, len(counts))
	for status, count := range counts {
		byStatus[string(status)] = count
	}
	if monthly == nil {
		monthly = []reporting.MonthCount{}
	}
	if topPositions == nil {
		topPositions = []reporting.PositionCount{}
	}
	return &Analytics{
		Overview: AnalyticsOverview{
			TotalApplications: total,
			TotalApplicants:   applicants,
			AcceptanceRate:    rate(counts[application.StatusAccepted], total),
			AvgTimeToHire:     avgTimeToHireDays,
		},
		ApplicationsByMonth:      monthly,
		ApplicationsByStatus:     byStatus,
		ApplicationsByDepartment: departments,
		TopPositions:             topPositions,
	}, nil
}

const defaultActivityLimit = 20

func (s *ReportingService) RecentActivity(ctx context.Context, limit int) ([]activity.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	items, err := s.activities.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []activity.Activity{}
	}
	return items, nil
}

// Interview is one upcoming interview with the applicant details the admin
// calendar needs.
type Interview struct {
	InterviewID   common.UUID        `json:"interview_id"`
	ApplicationID common.UUID        `json:"application_id"`
	Applicant     InterviewApplicant `json:"applicant"`
	Position      string             `json:"position"`
	Department    string             `json:"department"`
	InterviewDate *time.Time         `json:"interview_date"`
	InterviewType string             `json:"interview_type"`
	Interviewer   string             `json:"interviewer"`
	Location      string             `json:"location"`
	Notes         string             `json:"notes,omitempty"`
}

type InterviewApplicant struct {
	UserID    common.UUID `json:"user_id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
}

func (s *ReportingService) UpcomingInterviews(ctx context.Context) ([]Interview, error) {
	apps, err := s.applications.ListUpcomingInterviews(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	interviews := make([]Interview, 0, len(apps))
	for _, app := range apps {
		item := Interview{
			InterviewID:   app.ID,
			ApplicationID: app.ID,
			Position:      app.Position,
			Department:    app.Department,
			InterviewDate: app.InterviewDate,
			InterviewType: "technical",
			Interviewer:   "TBD",
			Location:      "Office",
			Notes:         app.Notes,
		}
		if applicant, err := s.users.GetByID(ctx, app.ApplicantID); err == nil {
			item.Applicant = InterviewApplicant{
				UserID:    applicant.ID,
				FirstName: applicant.FirstName,
				LastName:  applicant.LastName,
				Email:     applicant.Email,
				Phone:     applicant.Phone,
			}
		}
		interviews = append(interviews, item)
	}
	return interviews, nil
}

func sumCounts(counts map[application.Status]int) int {
	total := 0
	for _, count := range counts {
		total += count
	}
	return total
}

// rate returns numerator/denominator as a percentage rounded to two
// decimals, and 0 when the denominator is 0.
func rate(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return round2(float64(numerator) / float64(denominator) * 100)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func departmentStats(counts map[string]int, total int) []DepartmentStat {
	stats := make([]DepartmentStat, 0, len(counts))
	for department, count := range counts {
		stats = append(stats, DepartmentStat{
			Department: department,
			Count:      count,
			Percentage: rate(count, total),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Department < stats[j].Department
	})
	return stats
}
