package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"veridia/internal/common"
	"veridia/internal/domain/activity"
	"veridia/internal/domain/application"
	"veridia/internal/domain/position"
	"veridia/internal/domain/reporting"
	"veridia/internal/domain/user"
)

type fakeReportingRepo struct {
	statusCounts      map[application.Status]int
	applicantCounts   map[common.UUID]map[application.Status]int
	departmentCounts  map[string]int
	monthlyCounts     []reporting.MonthCount
	positionCounts    []reporting.PositionCount
	requestedTopLimit int
}

func (r *fakeReportingRepo) StatusCounts(ctx context.Context, applicantID *common.UUID) (map[application.Status]int, error) {
	if applicantID != nil {
		return r.applicantCounts[*applicantID], nil
	}
	return r.statusCounts, nil
}

func (r *fakeReportingRepo) DepartmentCounts(ctx context.Context) (map[string]int, error) {
	return r.departmentCounts, nil
}

func (r *fakeReportingRepo) MonthlyCounts(ctx context.Context) ([]reporting.MonthCount, error) {
	return r.monthlyCounts, nil
}

func (r *fakeReportingRepo) TopPositions(ctx context.Context, limit int) ([]reporting.PositionCount, error) {
	r.requestedTopLimit = limit
	return r.positionCounts, nil
}

type fakeActivityRepo struct {
	mu             sync.Mutex
	items          []activity.Activity
	requestedLimit int
}

func (r *fakeActivityRepo) Create(ctx context.Context, a activity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = common.NewUUID()
	a.Timestamp = time.Now().UTC()
	r.items = append(r.items, a)
	return nil
}

func (r *fakeActivityRepo) ListRecent(ctx context.Context, limit int) ([]activity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requestedLimit = limit
	items := r.items
	if len(items) > limit {
		items = items[len(items)-limit:]
	}
	return append([]activity.Activity(nil), items...), nil
}

type fakePositionRepo struct {
	mu     sync.Mutex
	active int
	byID   map[common.UUID]*position.Position
}

func newFakePositionRepo() *fakePositionRepo {
	return &fakePositionRepo{byID: make(map[common.UUID]*position.Position)}
}

func (r *fakePositionRepo) add(p position.Position) common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID == nil {
		r.byID = make(map[common.UUID]*position.Position)
	}
	p.ID = common.NewUUID()
	r.byID[p.ID] = &p
	return p.ID
}

func (r *fakePositionRepo) Create(ctx context.Context, p position.Position) (*position.Position, error) {
	id := r.add(p)
	p.ID = id
	return &p, nil
}

func (r *fakePositionRepo) Update(ctx context.Context, p position.Position) (*position.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "position not found", nil)
	}
	stored := p
	r.byID[p.ID] = &stored
	return &p, nil
}

func (r *fakePositionRepo) GetByID(ctx context.Context, id common.UUID) (*position.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "position not found", nil)
	}
	copied := *stored
	return &copied, nil
}

func (r *fakePositionRepo) ListActive(ctx context.Context) ([]position.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []position.Position
	for _, p := range r.byID {
		if p.IsActive {
			items = append(items, *p)
		}
	}
	return items, nil
}

func (r *fakePositionRepo) ListByDepartment(ctx context.Context, departmentID common.UUID) ([]position.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []position.Position
	for _, p := range r.byID {
		if p.DepartmentID == departmentID {
			items = append(items, *p)
		}
	}
	return items, nil
}

func (r *fakePositionRepo) CountActive(ctx context.Context) (int, error) {
	return r.active, nil
}

func (r *fakePositionRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func TestApplicantStats_ResponseRate(t *testing.T) {
	applicantID := common.NewUUID()
	reports := &fakeReportingRepo{
		applicantCounts: map[common.UUID]map[application.Status]int{
			applicantID: {
				application.StatusUnderReview:        2,
				application.StatusInterviewScheduled: 1,
				application.StatusAccepted:           1,
				application.StatusRejected:           2,
			},
		},
	}
	service := NewReportingService(reports, newFakeApplicationRepo(), &fakeActivityRepo{}, &fakePositionRepo{}, newFakeUserRepo())

	stats, err := service.ApplicantStats(context.Background(), applicantID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if stats.TotalApplications != 6 {
		t.Fatalf("expected 6 applications, got %d", stats.TotalApplications)
	}
	// 4 of 6 answered: 66.67 after rounding to two decimals.
	if stats.ResponseRate != 66.67 {
		t.Fatalf("expected response rate 66.67, got %v", stats.ResponseRate)
	}
}

func TestApplicantStats_ZeroApplications(t *testing.T) {
	applicantID := common.NewUUID()
	reports := &fakeReportingRepo{applicantCounts: map[common.UUID]map[application.Status]int{}}
	service := NewReportingService(reports, newFakeApplicationRepo(), &fakeActivityRepo{}, &fakePositionRepo{}, newFakeUserRepo())

	stats, err := service.ApplicantStats(context.Background(), applicantID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if stats.TotalApplications != 0 || stats.ResponseRate != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}

func TestAdminStats_DepartmentPercentages(t *testing.T) {
	reports := &fakeReportingRepo{
		statusCounts: map[application.Status]int{
			application.StatusUnderReview: 5,
			application.StatusAccepted:    3,
			application.StatusRejected:    2,
		},
		departmentCounts: map[string]int{
			"Engineering": 6,
			"Marketing":   3,
			"Design":      1,
		},
	}
	service := NewReportingService(reports, newFakeApplicationRepo(), &fakeActivityRepo{}, &fakePositionRepo{active: 4}, newFakeUserRepo())

	stats, err := service.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if stats.TotalApplications != 10 {
		t.Fatalf("expected 10 applications, got %d", stats.TotalApplications)
	}
	if stats.AcceptanceRate != 30 {
		t.Fatalf("expected acceptance rate 30, got %v", stats.AcceptanceRate)
	}
	if stats.ActivePositions != 4 {
		t.Fatalf("expected 4 active positions, got %d", stats.ActivePositions)
	}
	if len(stats.DepartmentStats) != 3 {
		t.Fatalf("expected 3 department rows, got %d", len(stats.DepartmentStats))
	}
	if stats.DepartmentStats[0].Department != "Engineering" || stats.DepartmentStats[0].Percentage != 60 {
		t.Fatalf("expected Engineering at 60%%, got %+v", stats.DepartmentStats[0])
	}
	if stats.DepartmentStats[2].Department != "Design" || stats.DepartmentStats[2].Percentage != 10 {
		t.Fatalf("expected Design last at 10%%, got %+v", stats.DepartmentStats[2])
	}
}

func TestAnalytics_EmptySlicesNotNil(t *testing.T) {
	reports := &fakeReportingRepo{
		statusCounts:     map[application.Status]int{},
		departmentCounts: map[string]int{},
	}
	service := NewReportingService(reports, newFakeApplicationRepo(), &fakeActivityRepo{}, &fakePositionRepo{}, newFakeUserRepo())

	analytics, err := service.Analytics(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if analytics.ApplicationsByMonth == nil {
		t.Fatal("expected monthly buckets to be an empty slice, not nil")
	}
	if analytics.TopPositions == nil {
		t.Fatal("expected top positions to be an empty slice, not nil")
	}
	if analytics.Overview.AcceptanceRate != 0 {
		t.Fatalf("expected acceptance rate 0, got %v", analytics.Overview.AcceptanceRate)
	}
	if reports.requestedTopLimit != 5 {
		t.Fatalf("expected top positions limit 5, got %d", reports.requestedTopLimit)
	}
}

func TestRecentActivity_DefaultLimit(t *testing.T) {
	activities := &fakeActivityRepo{}
	service := NewReportingService(&fakeReportingRepo{}, newFakeApplicationRepo(), activities, &fakePositionRepo{}, newFakeUserRepo())

	items, err := service.RecentActivity(context.Background(), 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if items == nil {
		t.Fatal("expected empty slice, not nil")
	}
	if activities.requestedLimit != 20 {
		t.Fatalf("expected default limit 20, got %d", activities.requestedLimit)
	}
}

func TestUpcomingInterviews_AttachesApplicant(t *testing.T) {
	repo := newFakeApplicationRepo()
	users := newFakeUserRepo()
	applicantID := users.add(user.User{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "+1-555-0100",
		Role:      user.RoleApplicant,
		IsActive:  true,
	})
	created, err := repo.CreateWithAudit(context.Background(), application.Application{
		ApplicantID: applicantID,
		Position:    "Backend Engineer",
		Department:  "Engineering",
		ResumeURL:   "http://localhost:8000/media/resumes/cv.pdf",
	}, application.SubmissionAudit{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	interview := time.Now().UTC().Add(48 * time.Hour)
	if _, err := repo.UpdateStatus(context.Background(), created.ID, application.StatusChange{
		Status:        application.StatusInterviewScheduled,
		InterviewDate: &interview,
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	service := NewReportingService(&fakeReportingRepo{}, repo, &fakeActivityRepo{}, &fakePositionRepo{}, users)
	interviews, err := service.UpcomingInterviews(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(interviews) != 1 {
		t.Fatalf("expected 1 interview, got %d", len(interviews))
	}
	item := interviews[0]
	if item.ApplicationID != created.ID {
		t.Fatalf("expected application %s, got %s", created.ID, item.ApplicationID)
	}
	if item.Applicant.Email != "jane@example.com" {
		t.Fatalf("expected applicant attached, got %+v", item.Applicant)
	}
	if item.InterviewDate == nil || !item.InterviewDate.Equal(interview) {
		t.Fatalf("expected interview date %v, got %v", interview, item.InterviewDate)
	}
}
