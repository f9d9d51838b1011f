// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package employee

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Field names a sortable column of the roster table. Values match the
// JSON keys of [Employee].
type Field string

const (
	FieldID          Field = "id"
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldMobile      Field = "mobile"
	FieldDesignation Field = "designation"
	FieldGender      Field = "gender"
	FieldCourses     Field = "courses"
	FieldCreateDate  Field = "createDate"
)

// SortableFields lists the sortable columns in table order.
var SortableFields = []Field{
	FieldID,
	FieldName,
	FieldEmail,
	FieldMobile,
	FieldDesignation,
	FieldGender,
	FieldCourses,
	FieldCreateDate,
}

// Label returns the column header text for the field.
func (field Field) Label() string {
	switch field {
	case FieldID:
		return "Unique Id"
	case FieldName:
		return "Name"
	case FieldEmail:
		return "Email"
	case FieldMobile:
		return "Mobile No"
	case FieldDesignation:
		return "Designation"
	case FieldGender:
		return "Gender"
	case FieldCourses:
		return "Course"
	case FieldCreateDate:
		return "Create Date"
	default:
		return string(field)
	}
}

// ParseField returns the sortable field named by value. Accepts the
// JSON key ("createDate") case-insensitively, plus "create-date" and
// "course" as conveniences for the command line.
func ParseField(value string) (Field, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "create-date", "create_date", "date":
		return FieldCreateDate, nil
	case "course":
		return FieldCourses, nil
	}
	for _, field := range SortableFields {
		if strings.ToLower(string(field)) == normalized {
			return field, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", value)
}

// Compare orders a and b by field with a three-way comparison: -1 when
// a sorts before b, +1 when after, 0 when the keys are equal. Text
// fields compare case-insensitively. Courses compare as sets (see
// [Courses.Compare]). An unknown field compares every pair as equal,
// which leaves a stable sort's input order untouched.
func Compare(a, b Employee, field Field) int {
	if field == FieldCourses {
		return a.Courses.Compare(b.Courses)
	}
	if field == FieldID {
		return compareIDs(a.ID, b.ID)
	}
	left, right := textValue(a, field), textValue(b, field)
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	}
	return 0
}

// compareIDs orders numeric ids numerically ("9" before "10"), then
// every non-numeric id after them, in case-insensitive text order.
func compareIDs(a, b string) int {
	leftNumber, leftErr := strconv.ParseInt(a, 10, 64)
	rightNumber, rightErr := strconv.ParseInt(b, 10, 64)
	switch {
	case leftErr == nil && rightErr == nil:
		return cmp.Compare(leftNumber, rightNumber)
	case leftErr == nil:
		return -1
	case rightErr == nil:
		return 1
	}
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

// textValue returns the lowercased comparison key for a text field.
func textValue(employee Employee, field Field) string {
	var value string
	switch field {
	case FieldName:
		value = employee.Name
	case FieldEmail:
		value = employee.Email
	case FieldMobile:
		value = employee.Mobile
	case FieldDesignation:
		value = string(employee.Designation)
	case FieldGender:
		value = string(employee.Gender)
	case FieldCreateDate:
		value = employee.CreateDate
	}
	return strings.ToLower(value)
}

// DisplayValue returns the cell text the roster table shows for field.
func (employee Employee) DisplayValue(field Field) string {
	switch field {
	case FieldID:
		return employee.ID
	case FieldName:
		return employee.Name
	case FieldEmail:
		return employee.Email
	case FieldMobile:
		return employee.Mobile
	case FieldDesignation:
		return string(employee.Designation)
	case FieldGender:
		return string(employee.Gender)
	case FieldCourses:
		return employee.Courses.Joined()
	case FieldCreateDate:
		return employee.DateOnly()
	default:
		return ""
	}
}
