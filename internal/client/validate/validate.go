// Package validate checks form input before it reaches the network.
// Every failure is a *common.ValidationError carrying the message shown
// to the user.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/filex"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return v
}

// messages overrides the generic text for field/tag pairs.
var messages = map[string]string{
	"email.required":       "Email is required",
	"email.email":          "Please enter a valid email address",
	"password.required":    "Password is required",
	"password.min":         "Password must be at least 6 characters",
	"company.required_if":  "Company name is required for employers",
	"resumeUrl.required":   "Resume is required",
	"employmentType.oneof": "Employment type must be one of full-time, part-time, contract, internship",
}

func translate(fe validator.FieldError) error {
	field := fe.Field()
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return common.NewValidationError(field, msg)
	}

	label := humanize(field)
	var msg string
	switch fe.Tag() {
	case "required", "required_if":
		msg = label + " is required"
	case "url":
		msg = label + " must be a valid URL"
	case "email":
		msg = label + " must be a valid email address"
	case "oneof":
		msg = fmt.Sprintf("%s must be one of %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		msg = label + " is invalid"
	}
	return common.NewValidationError(field, msg)
}

// humanize turns "companyLogoUrl" into "Company logo url".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
			r += 'a' - 'A'
		}
		if i == 0 && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Struct runs the tag rules of s and returns the first failure.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return translate(verrs[0])
	}
	return fmt.Errorf("%w: %v", common.ErrValidation, err)
}

func Register(in models.RegisterInput) error {
	return Struct(in)
}

func Login(in models.LoginInput) error {
	return Struct(in)
}

func Application(in models.ApplicationInput) error {
	return Struct(in)
}

// SalaryRange requires both bounds to be positive and ordered.
func SalaryRange(min, max int64) error {
	if min <= 0 || max <= 0 {
		return common.NewValidationError("salary", "Salary must be greater than 0")
	}
	if min > max {
		return common.NewValidationError("salary", "Minimum salary cannot exceed maximum salary")
	}
	return nil
}

// Job validates a new posting: required fields first, then the salary.
func Job(in models.JobInput) error {
	if err := Struct(in); err != nil {
		return err
	}
	return SalaryRange(in.Salary.Min, in.Salary.Max)
}

// JobPatch validates only the fields a patch sets.
func JobPatch(p models.JobPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return common.NewValidationError("title", "Title is required")
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return common.NewValidationError("description", "Description is required")
	}
	if p.Location != nil && strings.TrimSpace(*p.Location) == "" {
		return common.NewValidationError("location", "Location is required")
	}
	if p.EmploymentType != nil && !p.EmploymentType.Valid() {
		return common.NewValidationError("employmentType", messages["employmentType.oneof"])
	}
	if p.Salary != nil {
		if err := SalaryRange(p.Salary.Min, p.Salary.Max); err != nil {
			return err
		}
	}
	if p.Status != nil && *p.Status != models.JobOpen && *p.Status != models.JobClosed {
		return common.NewValidationError("status", "Status must be open or closed")
	}
	if p.CompanyLogoURL != nil && *p.CompanyLogoURL != "" {
		if err := instance().Var(*p.CompanyLogoURL, "url"); err != nil {
			return common.NewValidationError("companyLogoUrl", "Company logo url must be a valid URL")
		}
	}
	return nil
}

// Resume checks a file picked for upload.
func Resume(f filex.FileInfo) error {
	if !f.IsPDF() {
		return common.NewValidationError("resume", "Only PDF files are allowed")
	}
	if f.Size > common.MaxResumeSize {
		return common.NewValidationError("resume", "File size must not exceed 5MB")
	}
	return nil
}

// SplitTags splits a comma separated list, dropping blanks.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
