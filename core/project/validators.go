package project

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/unitrack/unitrack/core"
)

var (
	deptTypeTag  = "departmenttype"
	deptTypeText = "must be one of TECHNOLOGY, SOCIAL_SCIENCE"

	statusTag  = "projectstatus"
	statusText = "must be one of PROPOSED, IN_PROGRESS, SUBMITTED, COMPLETED, APPROVED, REJECTED"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(deptTypeTag, func(fl validator.FieldLevel) bool {
		return DepartmentType(fl.Field().String()).Valid()
	})
	core.RegisterCustomTranslation(validate, translator, deptTypeTag, deptTypeText)

	_ = validate.RegisterValidation(statusTag, func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
