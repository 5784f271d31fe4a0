package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/common"
)

// Status is the stage an application is in.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusScreening Status = "Screening"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

var allStatuses = [...]Status{StatusApplied, StatusScreening, StatusInterview, StatusOffer, StatusRejected}

// AllStatuses returns the statuses in display order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses[:])
	return out
}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range allStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", common.NewValidationError("status", fmt.Sprintf("Unknown status %q", s))
}

func (s Status) Valid() bool {
	for _, st := range allStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Index is the position of s in display order, or -1.
func (s Status) Index() int {
	for i, st := range allStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	st := Status(raw)
	if !st.Valid() {
		return fmt.Errorf("invalid application status %q", raw)
	}
	*s = st
	return nil
}

// StatusStyle is how a status is drawn. Board and table share it.
type StatusStyle struct {
	Color    string
	Category string
	ansi     string
}

var statusStyles = map[Status]StatusStyle{
	StatusApplied:   {Color: "blue", Category: "new", ansi: "\x1b[34m"},
	StatusScreening: {Color: "yellow", Category: "in review", ansi: "\x1b[33m"},
	StatusInterview: {Color: "purple", Category: "in progress", ansi: "\x1b[35m"},
	StatusOffer:     {Color: "green", Category: "positive", ansi: "\x1b[32m"},
	StatusRejected:  {Color: "red", Category: "negative", ansi: "\x1b[31m"},
}

func (s Status) Style() StatusStyle {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return StatusStyle{Color: "gray", Category: "unknown"}
}

// Badge renders s as "[Status]", wrapped in its terminal color when color
// is true.
func (s Status) Badge(color bool) string {
	b := "[" + string(s) + "]"
	st := s.Style()
	if !color || st.ansi == "" {
		return b
	}
	return st.ansi + b + "\x1b[0m"
}

// TransitionPolicy decides whether an application may move from one
// status to another. A non-nil error rejects the change.
type TransitionPolicy func(from, to Status) error

// AllowAll permits every change between known statuses.
func AllowAll(from, to Status) error {
	if !to.Valid() {
		return common.NewValidationError("status", fmt.Sprintf("Unknown status %q", to))
	}
	return nil
}

// ForwardOnly permits moves later in display order only. Offer and
// Rejected are final. Re-setting the current status is allowed.
func ForwardOnly(from, to Status) error {
	if err := AllowAll(from, to); err != nil {
		return err
	}
	if from == to || from == "" {
		return nil
	}
	if from.IsFinal() {
		return common.NewValidationError("status",
			fmt.Sprintf("Application is already %s and cannot be changed", from))
	}
	if to.Index() < from.Index() {
		return common.NewValidationError("status",
			fmt.Sprintf("Cannot move application back from %s to %s", from, to))
	}
	return nil
}

// IsFinal reports whether s conventionally ends the workflow.
func (s Status) IsFinal() bool {
	return s == StatusOffer || s == StatusRejected
}
