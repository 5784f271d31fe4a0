package models

import (
	"net/url"
	"strconv"
	"time"
)

type EmploymentType string

const (
	FullTime   EmploymentType = "full-time"
	PartTime   EmploymentType = "part-time"
	Contract   EmploymentType = "contract"
	Internship EmploymentType = "internship"
)

func EmploymentTypes() []EmploymentType {
	return []EmploymentType{FullTime, PartTime, Contract, Internship}
}

func (t EmploymentType) Valid() bool {
	switch t {
	case FullTime, PartTime, Contract, Internship:
		return true
	}
	return false
}

type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
)

// DefaultCurrency is used when a job form leaves the currency empty.
const DefaultCurrency = "INR"

type Company struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type Salary struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

type Job struct {
	ID             string         `json:"_id"`
	EmployerID     string         `json:"employerId"`
	Company        Company        `json:"company"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Location       string         `json:"location"`
	IsRemote       bool           `json:"isRemote"`
	Salary         Salary         `json:"salary"`
	EmploymentType EmploymentType `json:"employmentType"`
	Tags           []string       `json:"tags"`
	Status         JobStatus      `json:"status"`
	ApplicantCount int            `json:"applicantCount,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (j Job) RefID() string { return j.ID }

func (j Job) IsOpen() bool { return j.Status == JobOpen }

// JobInput is the body of a new job posting. The company name comes from
// the employer's profile on the backend.
type JobInput struct {
	Title          string         `json:"title" validate:"required"`
	Description    string         `json:"description" validate:"required"`
	Location       string         `json:"location" validate:"required"`
	IsRemote       bool           `json:"isRemote"`
	Salary         Salary         `json:"salary"`
	EmploymentType EmploymentType `json:"employmentType" validate:"required,oneof=full-time part-time contract internship"`
	Tags           []string       `json:"tags"`
	CompanyLogoURL string         `json:"companyLogoUrl,omitempty" validate:"omitempty,url"`
}

// JobPatch is a partial job update. Nil fields are left untouched. A
// non-nil Tags pointing at an empty slice clears the job's tags.
type JobPatch struct {
	Title          *string         `json:"title,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Location       *string         `json:"location,omitempty"`
	IsRemote       *bool           `json:"isRemote,omitempty"`
	Salary         *Salary         `json:"salary,omitempty"`
	EmploymentType *EmploymentType `json:"employmentType,omitempty"`
	Tags           *[]string       `json:"tags,omitempty"`
	CompanyLogoURL *string         `json:"companyLogoUrl,omitempty"`
	Status         *JobStatus      `json:"status,omitempty"`
}

// JobFilters are the search parameters of the job listing.
type JobFilters struct {
	Q              string
	Location       string
	IsRemote       *bool
	SalaryMin      int64
	EmploymentType EmploymentType
	Page           int
	Limit          int
}

// Values encodes the filters that are set. Values are passed through
// verbatim; matching is the backend's job.
func (f JobFilters) Values() url.Values {
	v := url.Values{}
	if f.Q != "" {
		v.Set("q", f.Q)
	}
	if f.Location != "" {
		v.Set("location", f.Location)
	}
	if f.IsRemote != nil {
		v.Set("isRemote", strconv.FormatBool(*f.IsRemote))
	}
	if f.SalaryMin > 0 {
		v.Set("salaryMin", strconv.FormatInt(f.SalaryMin, 10))
	}
	if f.EmploymentType != "" {
		v.Set("employmentType", string(f.EmploymentType))
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}
