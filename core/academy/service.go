package academy

import (
	"context"

	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/task"
	"github.com/unitrack/unitrack/core/user"
)

// studentTodoLimit caps the todo list on the student dashboard.
const studentTodoLimit = 3

type (
	Repository interface {
		QueryAllClasses(ctx context.Context) ([]ClassRoom, error)
		QueryAllTeachers(ctx context.Context) ([]Teacher, error)
		QueryAllNotices(ctx context.Context) ([]Notice, error)
	}

	// Service aggregates the per-role dashboard views out of the seeded
	// academy collections and the live project/task/user repositories.
	Service struct {
		repo    Repository
		prjRepo project.Repository
		tskRepo task.Repository
		usrRepo user.Repository
	}
)

func NewService(repo Repository, prjRepo project.Repository, tskRepo task.Repository, usrRepo user.Repository) *Service {
	return &Service{
		repo:    repo,
		prjRepo: prjRepo,
		tskRepo: tskRepo,
		usrRepo: usrRepo,
	}
}

func (svc *Service) QueryClasses(ctx context.Context) ([]ClassRoom, error) {
	return svc.repo.QueryAllClasses(ctx)
}

func (svc *Service) QueryTeachers(ctx context.Context) ([]Teacher, error) {
	return svc.repo.QueryAllTeachers(ctx)
}

func (svc *Service) QueryNotices(ctx context.Context) ([]Notice, error) {
	return svc.repo.QueryAllNotices(ctx)
}

func (svc *Service) AdminDashboard(ctx context.Context) (AdminDashboard, error) {
	classes, err := svc.repo.QueryAllClasses(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}
	teachers, err := svc.repo.QueryAllTeachers(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}
	notices, err := svc.repo.QueryAllNotices(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}
	projects, err := svc.prjRepo.QueryAllProjects(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}
	users, err := svc.usrRepo.QueryAllUsers(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	var students int
	for _, u := range users {
		if u.IsStudent() {
			students++
		}
	}

	return AdminDashboard{
		Classes:     len(classes),
		Projects:    len(projects),
		Supervisors: len(teachers),
		Students:    students,
		Notices:     notices,
	}, nil
}

// StudentDashboard lists the student's first pending tasks plus the notices.
func (svc *Service) StudentDashboard(ctx context.Context, studentID string) (StudentDashboard, error) {
	tasks, err := svc.tskRepo.QueryAllTasks(ctx)
	if err != nil {
		return StudentDashboard{}, err
	}
	notices, err := svc.repo.QueryAllNotices(ctx)
	if err != nil {
		return StudentDashboard{}, err
	}

	todo := make([]TodoItem, 0, studentTodoLimit)
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			continue
		}
		if studentID != "" && t.AssignedToID != "" && t.AssignedToID != studentID {
			continue
		}
		todo = append(todo, TodoItem{
			ID:       t.ID,
			Title:    t.Title,
			Status:   string(t.Status),
			Deadline: t.Deadline,
		})
		if len(todo) == studentTodoLimit {
			break
		}
	}

	return StudentDashboard{TodoList: todo, Notices: notices}, nil
}

func (svc *Service) TeacherDashboard(ctx context.Context, supervisorID string) (TeacherDashboard, error) {
	classes, err := svc.repo.QueryAllClasses(ctx)
	if err != nil {
		return TeacherDashboard{}, err
	}
	teachers, err := svc.repo.QueryAllTeachers(ctx)
	if err != nil {
		return TeacherDashboard{}, err
	}
	notices, err := svc.repo.QueryAllNotices(ctx)
	if err != nil {
		return TeacherDashboard{}, err
	}
	supervised, err := svc.prjRepo.FilterProjects(ctx, project.QueryFilter{SupervisorID: supervisorID})
	if err != nil {
		return TeacherDashboard{}, err
	}
	all, err := svc.prjRepo.QueryAllProjects(ctx)
	if err != nil {
		return TeacherDashboard{}, err
	}

	limit := 10
	for _, t := range teachers {
		if t.ID == supervisorID {
			limit = t.ProjectsLimit
			break
		}
	}

	return TeacherDashboard{
		ClassesExamination:       len(classes),
		ClassesSupervision:       1,
		ProjectsSupervision:      len(supervised),
		ProjectsExamination:      len(all) - len(supervised),
		ProjectsSupervisionLimit: limit,
		Notices:                  notices,
	}, nil
}
