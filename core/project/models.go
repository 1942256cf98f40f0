package project

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/unitrack/unitrack/core"
)

type DepartmentType string

const (
	DeptTechnology    DepartmentType = "TECHNOLOGY"
	DeptSocialScience DepartmentType = "SOCIAL_SCIENCE"
)

func (dt DepartmentType) Valid() bool {
	return dt == DeptTechnology || dt == DeptSocialScience
}

type Status string

const (
	StatusProposed   Status = "PROPOSED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusSubmitted  Status = "SUBMITTED"
	StatusCompleted  Status = "COMPLETED"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusProposed, StatusInProgress, StatusSubmitted, StatusCompleted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type MilestoneStatus string

const (
	MilestonePending   MilestoneStatus = "Pending"
	MilestoneSubmitted MilestoneStatus = "Submitted"
	MilestoneApproved  MilestoneStatus = "Approved"
)

// Milestone templates per department type; fixed at project creation and
// never recomputed afterwards.
var (
	TechMilestoneTemplate = []string{
		"Title Submission",
		"Proposal Submission",
		"Proposal Defense",
		"Deliverable 1",
		"Deliverable 1 Evaluation",
		"Deliverable 2",
		"Deliverable 2 Evaluation",
		"Final Submission",
	}

	SocialMilestoneTemplate = []string{
		"Chapter 1 - Introduction",
		"Chapter 2 - Literature Review",
		"Chapter 3 - Methodology",
		"Chapter 4 - Results & Discussion",
		"Chapter 5 - Conclusion",
		"References & Appendices",
	}
)

// MilestoneTemplate returns the template names for a department type.
func MilestoneTemplate(dt DepartmentType) []string {
	if dt == DeptTechnology {
		return TechMilestoneTemplate
	}
	return SocialMilestoneTemplate
}

type (
	Milestone struct {
		ID      string          `json:"id"`
		Name    string          `json:"name"`
		Status  MilestoneStatus `json:"status"`
		DueDate time.Time       `json:"due_date"`
	}

	Comment struct {
		ID         string    `json:"id"`
		AuthorID   string    `json:"author_id"`
		AuthorName string    `json:"author_name"`
		Text       string    `json:"text"`
		CreatedAt  time.Time `json:"created_at"`
	}

	Project struct {
		ID                 string         `json:"id"`
		Title              string         `json:"title"`
		Description        string         `json:"description"`
		Department         string         `json:"department"`
		DepartmentType     DepartmentType `json:"department_type"`
		StudentID          string         `json:"student_id"`
		StudentName        string         `json:"student_name"`
		SupervisorID       string         `json:"supervisor_id,omitempty"` // empty = unassigned
		SupervisorName     string         `json:"supervisor_name,omitempty"`
		Status             Status         `json:"status"`
		Progress           int            `json:"progress"` // 0-100
		Milestones         []Milestone    `json:"milestones"`
		Comments           []Comment      `json:"comments"`
		Abstract           string         `json:"abstract,omitempty"`
		SupervisorFeedback string         `json:"supervisor_feedback,omitempty"`
		AIFeedback         string         `json:"ai_feedback,omitempty"`
		Tags               []string       `json:"tags"`
		CreatedAt          time.Time      `json:"created_at"` // UTC
		UpdatedAt          time.Time      `json:"updated_at"` // UTC, >= CreatedAt
	}
)

func (p *Project) Unassigned() bool { return p.SupervisorID == "" }

// NewProject contains information needed to create a new Project.
// The id, timestamps and milestones are server-assigned.
type NewProject struct {
	Title          string         `json:"title" validate:"required"`
	Description    string         `json:"description"`
	Department     string         `json:"department"`
	DepartmentType DepartmentType `json:"department_type" validate:"required,departmenttype"`
	StudentID      string         `json:"student_id"`
	StudentName    string         `json:"student_name"`
	SupervisorID   string         `json:"supervisor_id"`
	SupervisorName string         `json:"supervisor_name"`
	Status         Status         `json:"status" validate:"omitempty,projectstatus"`
	Progress       int            `json:"progress" validate:"min=0,max=100"`
	Abstract       string         `json:"abstract"`
	Tags           []string       `json:"tags"`
}

func (np *NewProject) Validate(validate *validator.Validate) error {
	np.Title = core.CleanString(np.Title)
	np.Description = core.CleanString(np.Description)
	return validate.Struct(np)
}

// UpdateProject defines the partial-update contract: only non-nil fields are
// merged into the stored record; an empty patch refreshes the update
// timestamp and nothing else.
type UpdateProject struct {
	Title              *string         `json:"title"`
	Description        *string         `json:"description"`
	SupervisorID       *string         `json:"supervisor_id"`
	SupervisorName     *string         `json:"supervisor_name"`
	Status             *Status         `json:"status" validate:"omitempty,projectstatus"`
	Progress           *int            `json:"progress" validate:"omitempty,min=0,max=100"`
	Milestones         *[]Milestone    `json:"milestones"`
	Comments           *[]Comment      `json:"comments"`
	Abstract           *string         `json:"abstract"`
	SupervisorFeedback *string         `json:"supervisor_feedback"`
	AIFeedback         *string         `json:"ai_feedback"`
	Tags               *[]string       `json:"tags"`
}

func (up *UpdateProject) Validate(validate *validator.Validate) error {
	return validate.Struct(up)
}

// Apply merges the set fields of the patch over prj. Timestamps are the
// caller's responsibility.
func (up UpdateProject) Apply(prj *Project) {
	if up.Title != nil {
		prj.Title = *up.Title
	}
	if up.Description != nil {
		prj.Description = *up.Description
	}
	if up.SupervisorID != nil {
		prj.SupervisorID = *up.SupervisorID
	}
	if up.SupervisorName != nil {
		prj.SupervisorName = *up.SupervisorName
	}
	if up.Status != nil {
		prj.Status = *up.Status
	}
	if up.Progress != nil {
		prj.Progress = *up.Progress
	}
	if up.Milestones != nil {
		prj.Milestones = *up.Milestones
	}
	if up.Comments != nil {
		prj.Comments = *up.Comments
	}
	if up.Abstract != nil {
		prj.Abstract = *up.Abstract
	}
	if up.SupervisorFeedback != nil {
		prj.SupervisorFeedback = *up.SupervisorFeedback
	}
	if up.AIFeedback != nil {
		prj.AIFeedback = *up.AIFeedback
	}
	if up.Tags != nil {
		prj.Tags = *up.Tags
	}
}

// QueryFilter applies AND semantics on its set fields.
type QueryFilter struct {
	Search       string `query:"search"`
	Department   string `query:"department"`
	StudentID    string `query:"student_id"`
	SupervisorID string `query:"supervisor_id"`
	Status       Status `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Department == "" && qf.StudentID == "" &&
		qf.SupervisorID == "" && qf.Status == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Department = core.CleanString(qf.Department)
}

// Matches reports whether prj satisfies every set filter field.
// Search does a case-insensitive match on title, student or supervisor name.
func (qf *QueryFilter) Matches(prj Project) bool {
	if qf.Department != "" && prj.Department != qf.Department {
		return false
	}
	if qf.StudentID != "" && prj.StudentID != qf.StudentID {
		return false
	}
	if qf.SupervisorID != "" && prj.SupervisorID != qf.SupervisorID {
		return false
	}
	if qf.Status != "" && prj.Status != qf.Status {
		return false
	}
	if qf.Search != "" {
		if !containsFold(prj.Title, qf.Search) &&
			!containsFold(prj.StudentName, qf.Search) &&
			!containsFold(prj.SupervisorName, qf.Search) {
			return false
		}
	}
	return true
}
