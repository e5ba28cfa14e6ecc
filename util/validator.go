package util

import (
	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("issue_category", validateIssueCategory)
	validate.RegisterValidation("issue_priority", validateIssuePriority)
	validate.RegisterValidation("issue_status", validateIssueStatus)
}

func validateIssueCategory(fl validator.FieldLevel) bool {
	return model.IssueCategory(fl.Field().String()).Valid()
}

func validateIssuePriority(fl validator.FieldLevel) bool {
	return model.IssuePriority(fl.Field().String()).Valid()
}

func validateIssueStatus(fl validator.FieldLevel) bool {
	return model.IssueStatus(fl.Field().String()).Valid()
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
