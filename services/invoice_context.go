package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DeviceStatus is the reason the family is being charged.
type DeviceStatus string

const (
	DeviceMissing DeviceStatus = "Missing"
	DeviceDamaged DeviceStatus = "Damaged"
)

// DeviceStatuses lists the statuses in the order the form offers them.
var DeviceStatuses = []DeviceStatus{DeviceMissing, DeviceDamaged}

// ParseDeviceStatus accepts a status name in any case.
func ParseDeviceStatus(s string) (DeviceStatus, error) {
	for _, st := range DeviceStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", newValidationError("status", fmt.Sprintf("unknown device status %q", s))
}

// Label returns the capitalized status, e.g. "Damaged".
func (s DeviceStatus) Label() string {
	lower := s.Lower()
	if lower == "" {
		return ""
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// Lower returns the status for use inside a sentence, e.g. "damaged".
func (s DeviceStatus) Lower() string {
	return strings.ToLower(string(s))
}

// InvoiceContext is the recipient and situation a letter is written for.
type InvoiceContext struct {
	StudentName string       `json:"student_name"`
	ParentName  string       `json:"parent_name"`
	Status      DeviceStatus `json:"status"`
	IssueDate   time.Time    `json:"issue_date"`
}

// Normalized returns a copy with surrounding whitespace removed from names.
func (c InvoiceContext) Normalized() InvoiceContext {
	c.StudentName = strings.TrimSpace(c.StudentName)
	c.ParentName = strings.TrimSpace(c.ParentName)
	return c
}

// Validate checks every field and reports all failures in one ValidationError.
func (c InvoiceContext) Validate() error {
	c = c.Normalized()
	err := validation.ValidateStruct(&c,
		validation.Field(&c.StudentName, validation.Required.Error("student name is required")),
		validation.Field(&c.ParentName, validation.Required.Error("parent name is required")),
		validation.Field(&c.Status,
			validation.Required.Error("device status is required"),
			validation.In(DeviceMissing, DeviceDamaged).Error("device status must be Missing or Damaged"),
		),
		validation.Field(&c.IssueDate, validation.Required.Error("issue date is required")),
	)
	return fromOzzo(err)
}

// fromOzzo converts ozzo field errors into a ValidationError.
func fromOzzo(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return internal
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	ve := &ValidationError{Fields: make(map[string]string, len(errs))}
	for field, fieldErr := range errs {
		ve.Fields[field] = fieldErr.Error()
	}
	return ve
}
