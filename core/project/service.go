package project

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/unitrack/unitrack/core"
	"github.com/unitrack/unitrack/core/user"
)

var ErrNotFound = errors.New("project not found")

// milestoneSpacing is the gap between consecutive template due dates.
const milestoneSpacing = 14 * 24 * time.Hour

type (
	Repository interface {
		QueryAllProjects(ctx context.Context) ([]Project, error)
		GetProjectByID(ctx context.Context, id string) (Project, error)
		// CreateProject assigns the id and inserts at the head of the
		// collection (most-recent-first display order).
		CreateProject(ctx context.Context, prj Project) (Project, error)
		// ReplaceProject swaps the stored record with the same id; ErrNotFound
		// when no such record exists.
		ReplaceProject(ctx context.Context, prj Project) (Project, error)
		// DeleteProjectsByID removes matching records; missing ids are ignored.
		DeleteProjectsByID(ctx context.Context, ids ...string) error
		// FilterProjects applies AND semantics on the set QueryFilter fields.
		FilterProjects(ctx context.Context, filter QueryFilter) ([]Project, error)
	}

	Service struct {
		repo    Repository
		usrRepo user.Repository
		mailSvc core.EmailService
		logger  core.Logger
	}
)

func NewService(repo Repository, usrRepo user.Repository, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{
		repo:    repo,
		usrRepo: usrRepo,
		mailSvc: mailSvc,
		logger:  logger,
	}
}

// Create builds the project from np, fixing the milestone template from the
// department type. The template is computed here once and never recomputed on
// later updates.
func (svc *Service) Create(ctx context.Context, np NewProject) (Project, error) {
	now := time.Now().UTC()

	status := np.Status
	if status == "" {
		status = StatusProposed
	}

	template := MilestoneTemplate(np.DepartmentType)
	milestones := make([]Milestone, len(template))
	for i, name := range template {
		milestones[i] = Milestone{
			ID:      uuid.NewString(),
			Name:    name,
			Status:  MilestonePending,
			DueDate: now.Add(time.Duration(i+1) * milestoneSpacing),
		}
	}

	prj := Project{
		Title:          np.Title,
		Description:    np.Description,
		Department:     np.Department,
		DepartmentType: np.DepartmentType,
		StudentID:      np.StudentID,
		StudentName:    np.StudentName,
		SupervisorID:   np.SupervisorID,
		SupervisorName: np.SupervisorName,
		Status:         status,
		Progress:       np.Progress,
		Milestones:     milestones,
		Comments:       []Comment{},
		Abstract:       np.Abstract,
		Tags:           np.Tags,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if prj.Tags == nil {
		prj.Tags = []string{}
	}
	return svc.repo.CreateProject(ctx, prj)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Project, error) {
	return svc.repo.QueryAllProjects(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Project, error) {
	return svc.repo.GetProjectByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Project, error) {
	return svc.repo.FilterProjects(ctx, filter)
}

// Update merges the set patch fields over the stored record and refreshes the
// update timestamp. An empty patch changes the timestamp only.
func (svc *Service) Update(ctx context.Context, id string, up UpdateProject) (Project, error) {
	prj, err := svc.repo.GetProjectByID(ctx, id)
	if err != nil {
		return Project{}, err
	}

	notify := svc.shouldNotify(prj, up)

	up.Apply(&prj)
	prj.UpdatedAt = time.Now().UTC()

	prj, err = svc.repo.ReplaceProject(ctx, prj)
	if err != nil {
		return Project{}, err
	}
	if notify {
		svc.notifyStudent(ctx, prj)
	}
	return prj, nil
}

// Delete removes the matching projects. Missing ids are silently ignored and
// owned tasks are left untouched (no cascade).
func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteProjectsByID(ctx, ids...)
}

// shouldNotify reports whether the patch sets supervisor feedback or moves the
// project to a decision status.
func (svc *Service) shouldNotify(prev Project, up UpdateProject) bool {
	if up.SupervisorFeedback != nil && *up.SupervisorFeedback != prev.SupervisorFeedback {
		return true
	}
	if up.Status != nil && *up.Status != prev.Status {
		return *up.Status == StatusApproved || *up.Status == StatusRejected
	}
	return false
}

func (svc *Service) notifyStudent(ctx context.Context, prj Project) {
	if prj.StudentID == "" {
		return
	}
	usr, err := svc.usrRepo.GetUserByID(ctx, prj.StudentID)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("project %s: cannot notify student %s: %v", prj.ID, prj.StudentID, err))
		return
	}

	body := fmt.Sprintf("Your project %q is now %s.", prj.Title, prj.Status)
	if prj.SupervisorFeedback != "" {
		body += "\n\nSupervisor feedback:\n" + prj.SupervisorFeedback
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:     "Project review update: " + prj.Title,
		TextContent: body,
	})
}
