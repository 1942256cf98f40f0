package task

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/unitrack/unitrack/core"
)

type Phase string

const (
	PhasePlanning       Phase = "Planning"
	PhaseDesign         Phase = "Design"
	PhaseImplementation Phase = "Implementation"
	PhaseTesting        Phase = "Testing"
	PhaseDeployment     Phase = "Deployment"
)

func (p Phase) Valid() bool {
	switch p {
	case PhasePlanning, PhaseDesign, PhaseImplementation, PhaseTesting, PhaseDeployment:
		return true
	}
	return false
}

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task belongs to a project by id only; the reference may dangle after the
// project is deleted.
type Task struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"project_id"`
	Title        string     `json:"title"`
	Phase        Phase      `json:"phase"`
	AssignedTo   string     `json:"assigned_to"`
	AssignedToID string     `json:"assigned_to_id"`
	StartDate    time.Time  `json:"start_date"`
	Deadline     time.Time  `json:"deadline"`
	Status       Status     `json:"status"`
	EndDate      *time.Time `json:"end_date,omitempty"` // set iff Status == Completed
}

// NewTask contains information needed to create a new Task.
type NewTask struct {
	ProjectID    string    `json:"project_id" validate:"required"`
	Title        string    `json:"title" validate:"required"`
	Phase        Phase     `json:"phase" validate:"required,taskphase"`
	AssignedTo   string    `json:"assigned_to"`
	AssignedToID string    `json:"assigned_to_id"`
	StartDate    time.Time `json:"start_date"`
	Deadline     time.Time `json:"deadline"`
	Status       Status    `json:"status" validate:"omitempty,taskstatus"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	return validate.Struct(nt)
}

// UpdateTask merges only its non-nil fields into the stored record.
type UpdateTask struct {
	Title        *string    `json:"title"`
	Phase        *Phase     `json:"phase" validate:"omitempty,taskphase"`
	AssignedTo   *string    `json:"assigned_to"`
	AssignedToID *string    `json:"assigned_to_id"`
	StartDate    *time.Time `json:"start_date"`
	Deadline     *time.Time `json:"deadline"`
	Status       *Status    `json:"status" validate:"omitempty,taskstatus"`
	EndDate      *time.Time `json:"end_date"`
}

func (up *UpdateTask) Validate(validate *validator.Validate) error {
	return validate.Struct(up)
}

// Apply merges the set fields of the patch over t.
func (up UpdateTask) Apply(t *Task) {
	if up.Title != nil {
		t.Title = *up.Title
	}
	if up.Phase != nil {
		t.Phase = *up.Phase
	}
	if up.AssignedTo != nil {
		t.AssignedTo = *up.AssignedTo
	}
	if up.AssignedToID != nil {
		t.AssignedToID = *up.AssignedToID
	}
	if up.StartDate != nil {
		t.StartDate = *up.StartDate
	}
	if up.Deadline != nil {
		t.Deadline = *up.Deadline
	}
	if up.Status != nil {
		t.Status = *up.Status
	}
	if up.EndDate != nil {
		t.EndDate = up.EndDate
	}
}

var (
	phaseTag  = "taskphase"
	phaseText = "must be one of Planning, Design, Implementation, Testing, Deployment"

	statusTag  = "taskstatus"
	statusText = "must be one of Pending, In Progress, Completed"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(phaseTag, func(fl validator.FieldLevel) bool {
		return Phase(fl.Field().String()).Valid()
	})
	core.RegisterCustomTranslation(validate, translator, phaseTag, phaseText)

	_ = validate.RegisterValidation(statusTag, func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}
