package handlers

import (
	"net/http"
	"strings"
	"time"

	"veridia/internal/app"
	"veridia/internal/common"
	"veridia/internal/domain/application"
	"veridia/internal/http/middleware"
	"veridia/internal/http/response"
	"veridia/internal/storage"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	resumes      storage.BlobStore
	limiter      middleware.Limiter
	submitLimit  int
	submitWindow time.Duration
}

func NewApplicationHandler(applications *app.ApplicationService, resumes storage.BlobStore, limiter middleware.Limiter, submitLimit int, submitWindow time.Duration) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
		resumes:      resumes,
		limiter:      limiter,
		submitLimit:  submitLimit,
		submitWindow: submitWindow,
	}
}

const maxResumeBytes = 10 << 20

// Submit accepts a multipart form: the applicant's profile fields plus the
// resume file, which is stored first so the draft carries only its URL.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if h.limiter != nil {
		key := "submit:" + applicantID.String()
		if !h.limiter.Allow(key, h.submitLimit, h.submitWindow) {
			response.Error(w, common.NewError(common.CodeRateLimited, "submission rate limit exceeded", nil))
			return
		}
	}
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "invalid multipart form", err))
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		response.Error(w, common.NewValidationError("invalid application", map[string]string{"resume": "resume is required"}))
		return
	}
	defer file.Close()
	resumeURL, err := h.resumes.Save(r.Context(), header.Filename, file)
	if err != nil {
		response.Error(w, common.NewError(common.CodeInternal, "failed to store resume", err))
		return
	}

	form := r.MultipartForm.Value
	field := func(name string) string {
		values := form[name]
		if len(values) == 0 {
			return ""
		}
		return strings.TrimSpace(values[0])
	}
	created, err := h.applications.Submit(r.Context(), app.Draft{
		Position:       field("position"),
		Department:     field("department"),
		Experience:     field("experience"),
		CurrentCompany: field("current_company"),
		CurrentSalary:  field("current_salary"),
		ExpectedSalary: field("expected_salary"),
		NoticePeriod:   field("notice_period"),
		Availability:   field("availability"),
		Education:      field("education"),
		University:     field("university"),
		GraduationYear: field("graduation_year"),
		Skills:         field("skills"),
		LinkedinURL:    field("linkedin_url"),
		PortfolioURL:   field("portfolio_url"),
		CoverLetter:    field("cover_letter"),
		Referral:       field("referral"),
		ResumeURL:      resumeURL,
	}, applicantID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	items, err := h.applications.List(r.Context(), actorID, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	detail, err := h.applications.GetDetail(r.Context(), applicationID, actorID, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, detail)
}

type updateStatusRequest struct {
	Status        string     `json:"status"`
	InterviewDate *time.Time `json:"interview_date"`
	Notes         *string    `json:"notes"`
	Comment       string     `json:"comment"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		response.Error(w, common.NewError(common.CodeValidation, "Status is required", nil))
		return
	}
	updated, err := h.applications.Transition(r.Context(), applicationID, &actorID, application.Status(req.Status), req.InterviewDate, req.Notes, req.Comment)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWithMessage(w, http.StatusOK, "Application status updated successfully", updated)
}

type updateApplicationRequest struct {
	Notes         *string    `json:"notes"`
	InterviewDate *time.Time `json:"interview_date"`
}

func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.Update(r.Context(), applicationID, application.Update{
		Notes:         req.Notes,
		InterviewDate: req.InterviewDate,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.Delete(r.Context(), applicationID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWithMessage(w, http.StatusOK, "Application deleted", nil)
}
