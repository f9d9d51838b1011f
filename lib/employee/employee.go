// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package employee

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Designation is the employee's role. The create form offers exactly
// the values in [Designations]; the server may return others for
// records created through different clients, and those are kept as-is.
type Designation string

const (
	DesignationHR      Designation = "HR"
	DesignationManager Designation = "Manager"
	DesignationSales   Designation = "Sales"
)

// DefaultDesignation is preselected in a fresh create form.
const DefaultDesignation = DesignationHR

// Designations lists the selectable designations in display order.
var Designations = []Designation{DesignationHR, DesignationManager, DesignationSales}

// ParseDesignation returns the designation matching value, compared
// case-insensitively.
func ParseDesignation(value string) (Designation, error) {
	for _, designation := range Designations {
		if strings.EqualFold(string(designation), value) {
			return designation, nil
		}
	}
	return "", fmt.Errorf("unknown designation %q (valid: HR, Manager, Sales)", value)
}

// Gender is the employee's gender as recorded by the form's radio
// group. The empty value means unset (legacy records, or a form
// submitted without choosing).
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Genders lists the selectable genders in display order.
var Genders = []Gender{GenderMale, GenderFemale}

// ParseGender returns the gender matching value, compared
// case-insensitively. The empty string parses to GenderUnset.
func ParseGender(value string) (Gender, error) {
	if value == "" {
		return GenderUnset, nil
	}
	for _, gender := range Genders {
		if strings.EqualFold(string(gender), value) {
			return gender, nil
		}
	}
	return "", fmt.Errorf("unknown gender %q (valid: Male, Female)", value)
}

// Image is a reference to a hosted asset. SecureURL is what the panel
// renders; the other fields are carried through for completeness.
type Image struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url,omitempty"`
	PublicID  string `json:"public_id,omitempty"`
}

// Employee is a single roster record.
type Employee struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Mobile      string      `json:"mobile"`
	Designation Designation `json:"designation"`
	Gender      Gender      `json:"gender,omitempty"`
	Courses     Courses     `json:"courses"`
	Image       *Image      `json:"image,omitempty"`

	// CreateDate is the server's ISO-8601 creation timestamp, kept as
	// the raw string: lexical order of ISO-8601 is chronological, and
	// the panel only ever shows the date portion.
	CreateDate string `json:"createDate"`
}

// DateOnly returns the date portion of CreateDate ("2024-03-01" for
// "2024-03-01T10:22:00.000Z"). Values without a "T" separator are
// returned unchanged.
func (employee Employee) DateOnly() string {
	date, _, _ := strings.Cut(employee.CreateDate, "T")
	return date
}

// ImageURL returns the secure URL of the employee's image, or the
// empty string when the record has no image.
func (employee Employee) ImageURL() string {
	if employee.Image == nil {
		return ""
	}
	return employee.Image.SecureURL
}

// UnmarshalJSON decodes a record, accepting a numeric or string id.
// Some backends use auto-increment integers, others opaque strings;
// the panel treats ids as opaque either way.
func (employee *Employee) UnmarshalJSON(data []byte) error {
	type plain Employee
	var wire struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*employee = Employee(wire.plain)

	identifier, err := decodeIdentifier(wire.ID)
	if err != nil {
		return fmt.Errorf("employee id: %w", err)
	}
	employee.ID = identifier
	return nil
}

// decodeIdentifier turns a JSON string or number into its string form.
func decodeIdentifier(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return "", err
		}
		return text, nil
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", raw)
	}
	return number.String(), nil
}
