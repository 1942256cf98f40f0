package blobdb

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/unitrack/unitrack/core/academy"
	"github.com/unitrack/unitrack/core/note"
	"github.com/unitrack/unitrack/core/project"
	"github.com/unitrack/unitrack/core/task"
	"github.com/unitrack/unitrack/core/user"
)

// DemoPassword is the password every seeded demo account accepts.
const DemoPassword = "unitrack-demo"

// SeedProjects returns the demo projects stored on first access.
func SeedProjects() []project.Project {
	now := time.Now().UTC()

	techMilestones := make([]project.Milestone, len(project.TechMilestoneTemplate))
	for i, name := range project.TechMilestoneTemplate {
		status := project.MilestonePending
		switch {
		case i < 3:
			status = project.MilestoneApproved
		case i == 3:
			status = project.MilestoneSubmitted
		}
		techMilestones[i] = project.Milestone{
			ID:      "m-p1-" + name,
			Name:    name,
			Status:  status,
			DueDate: now.Add(time.Duration(i+1) * 14 * 24 * time.Hour),
		}
	}

	socialMilestones := make([]project.Milestone, len(project.SocialMilestoneTemplate))
	for i, name := range project.SocialMilestoneTemplate {
		status := project.MilestonePending
		if i == 0 {
			status = project.MilestoneSubmitted
		}
		socialMilestones[i] = project.Milestone{
			ID:      "m-p2-" + name,
			Name:    name,
			Status:  status,
			DueDate: now.Add(time.Duration(i+1) * 30 * 24 * time.Hour),
		}
	}

	return []project.Project{
		{
			ID:             "p1",
			Title:          "AI-Driven Traffic Management System",
			Description:    "Using computer vision to optimize traffic light timings.",
			Department:     "Computer Science",
			DepartmentType: project.DeptTechnology,
			StudentID:      "u4",
			StudentName:    "John Doe",
			SupervisorID:   "u2",
			SupervisorName: "Dr. Smith",
			Status:         project.StatusInProgress,
			Progress:       45,
			Milestones:     techMilestones,
			Comments:       []project.Comment{},
			Abstract:       "This study proposes a dynamic traffic control system...",
			Tags:           []string{"AI", "Smart City", "Traffic"},
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             "p2",
			Title:          "Impact of Social Media on Teen Anxiety",
			Description:    "A quantitative study of high school students in the district.",
			Department:     "Psychology",
			DepartmentType: project.DeptSocialScience,
			StudentID:      "u5",
			StudentName:    "Jane Doe",
			SupervisorID:   "u3",
			SupervisorName: "Dr. Jones",
			Status:         project.StatusProposed,
			Progress:       10,
			Milestones:     socialMilestones,
			Comments:       []project.Comment{},
			Abstract:       "This thesis explores the correlation between screen time and anxiety levels...",
			Tags:           []string{"Mental Health", "Social Media", "Teens"},
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

// SeedUsers returns the demo accounts, one per portal role plus two extras.
func SeedUsers() ([]user.User, error) {
	now := time.Now().UTC()
	users := []user.User{
		{ID: "u1", Name: "Alice Admin", Email: "admin@uni.edu", Role: user.RoleAdmin},
		{ID: "u2", Name: "Dr. Smith", Email: "smith@uni.edu", Role: user.RoleSupervisor, Department: "Computer Science"},
		{ID: "u3", Name: "Dr. Jones", Email: "jones@uni.edu", Role: user.RoleSupervisor, Department: "Psychology"},
		{ID: "u4", Name: "John Doe", Email: "john@uni.edu", Role: user.RoleStudent, Department: "Computer Science"},
		{ID: "u5", Name: "Jane Doe", Email: "jane@uni.edu", Role: user.RoleStudent, Department: "Psychology"},
	}
	for i := range users {
		users[i].IsActive = true
		users[i].CreatedAt = now
		users[i].UpdatedAt = now
		if err := users[i].SetPassword(DemoPassword); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func SeedClasses() []academy.ClassRoom {
	return []academy.ClassRoom{
		{ID: "c1", Name: "BSCS-Morning-2024", TotalStudents: 45, TotalProjects: 12, AssignedSupervisors: 5, Program: "BSCS", Session: "2024"},
		{ID: "c2", Name: "BSIT-Evening-2024", TotalStudents: 30, TotalProjects: 8, AssignedSupervisors: 3, Program: "BSIT", Session: "2024"},
	}
}

func SeedTeachers() []academy.Teacher {
	return []academy.Teacher{
		{ID: "t1", Name: "Dr. Solomon", EmpID: "EMP001", Designation: "Professor", ProjectsLimit: 10, AssignedProjectsCount: 5},
		{ID: "t2", Name: "Prof. Azeb", EmpID: "EMP002", Designation: "Lecturer", ProjectsLimit: 8, AssignedProjectsCount: 8},
	}
}

func SeedNotices() []academy.Notice {
	now := time.Now().UTC()
	return []academy.Notice{
		{ID: "n1", Headline: "Proposal Submission Deadline", Description: "Please submit your proposals by next Friday.", ReceiverEntity: "class", ReceiverName: "BSCS-2024", CreatedAt: now},
		{ID: "n2", Headline: "Defense Schedule", Description: "Final defense will start from June 15th.", ReceiverEntity: "class", ReceiverName: "BSIT-2024", CreatedAt: now},
	}
}

// Reseed overwrites every collection with the demo dataset. Tasks and notes
// start empty.
func (db *DB) Reseed(ctx context.Context) error {
	users, err := SeedUsers()
	if err != nil {
		return errors.Wrap(err, "seeding users")
	}

	db.projectsMu.Lock()
	defer db.projectsMu.Unlock()
	db.tasksMu.Lock()
	defer db.tasksMu.Unlock()
	db.notesMu.Lock()
	defer db.notesMu.Unlock()
	db.usersMu.Lock()
	defer db.usersMu.Unlock()

	for key, save := range map[string]func() error{
		keyProjects: func() error { return saveCollection(ctx, db.store, keyProjects, SeedProjects()) },
		keyTasks:    func() error { return saveCollection(ctx, db.store, keyTasks, []task.Task{}) },
		keyNotes:    func() error { return saveCollection(ctx, db.store, keyNotes, []note.Note{}) },
		keyUsers:    func() error { return saveCollection(ctx, db.store, keyUsers, toStored(users)) },
		keyClasses:  func() error { return saveCollection(ctx, db.store, keyClasses, SeedClasses()) },
		keyTeachers: func() error { return saveCollection(ctx, db.store, keyTeachers, SeedTeachers()) },
		keyNotices:  func() error { return saveCollection(ctx, db.store, keyNotices, SeedNotices()) },
	} {
		if err := save(); err != nil {
			return errors.Wrap(err, "seeding "+key)
		}
	}
	return nil
}
