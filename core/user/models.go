package user

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/unitrack/unitrack/core"
)

// Role is the closed set of portal roles. Role checks go through the
// capability table below instead of ad-hoc string comparisons.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleStudent    Role = "STUDENT"
)

var AllRoles = []Role{RoleAdmin, RoleSupervisor, RoleStudent}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleStudent:
		return true
	}
	return false
}

// Capability names an action a role may perform.
type Capability string

const (
	CapManageUsers    Capability = "users:manage"
	CapViewProjects   Capability = "projects:view"
	CapCreateProject  Capability = "projects:create"
	CapUpdateProject  Capability = "projects:update"
	CapDeleteProject  Capability = "projects:delete"
	CapReviewProject  Capability = "projects:review"
	CapManageTasks    Capability = "tasks:manage"
	CapManageNotes    Capability = "notes:manage"
	CapViewDashboards Capability = "dashboards:view"
)

// roleCapabilities maps each role to its allowed actions; looked up once per
// request by the API middleware.
var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapManageUsers:    true,
		CapViewProjects:   true,
		CapCreateProject:  true,
		CapUpdateProject:  true,
		CapDeleteProject:  true,
		CapReviewProject:  true,
		CapManageTasks:    true,
		CapManageNotes:    true,
		CapViewDashboards: true,
	},
	RoleSupervisor: {
		CapViewProjects:   true,
		CapUpdateProject:  true,
		CapReviewProject:  true,
		CapManageTasks:    true,
		CapManageNotes:    true,
		CapViewDashboards: true,
	},
	RoleStudent: {
		CapViewProjects:   true,
		CapCreateProject:  true,
		CapUpdateProject:  true,
		CapManageTasks:    true,
		CapManageNotes:    true,
		CapViewDashboards: true,
	},
}

func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Department   string    `json:"department,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	IsActive     bool      `json:"is_active"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }
func (u *User) IsSupervisor() bool { return u.Role == RoleSupervisor }
func (u *User) IsStudent() bool    { return u.Role == RoleStudent }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Role       Role   `json:"role" validate:"required,role"`
	Department string `json:"department"`
	Password   string `json:"password" validate:"required,min=8"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	return validate.Struct(nu)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

var (
	roleTag  = "role"
	roleText = "must be one of ADMIN, SUPERVISOR, STUDENT"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, func(fl validator.FieldLevel) bool {
		return Role(fl.Field().String()).Valid()
	})
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)
}
