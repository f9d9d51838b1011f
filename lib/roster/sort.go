// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package roster

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rosterdesk/rosterdesk/lib/employee"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Flip returns the opposite direction.
func (direction Direction) Flip() Direction {
	if direction == Descending {
		return Ascending
	}
	return Descending
}

// Indicator returns the arrow the table header shows for the direction.
func (direction Direction) Indicator() string {
	if direction == Descending {
		return "▼"
	}
	return "▲"
}

// ParseDirection accepts "asc" or "desc", case-insensitively.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(value) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q (valid: asc, desc)", value)
}

// Sort is the active sort key and direction.
type Sort struct {
	Field     employee.Field
	Direction Direction
}

// DefaultSort orders by name, ascending.
var DefaultSort = Sort{Field: employee.FieldName, Direction: Ascending}

// Toggle returns the sort after the user selects field: the same field
// flips the direction; a different field becomes the key and keeps the
// current direction.
func (sort Sort) Toggle(field employee.Field) Sort {
	if field == sort.Field {
		return Sort{Field: field, Direction: sort.Direction.Flip()}
	}
	return Sort{Field: field, Direction: sort.Direction}
}

// Matches reports whether entry's name contains keyword,
// case-insensitively. The empty keyword matches everything.
func Matches(entry employee.Employee, keyword string) bool {
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(entry.Name), strings.ToLower(keyword))
}

// Filter returns the employees whose names match keyword, in input
// order. The input is not modified.
func Filter(employees []employee.Employee, keyword string) []employee.Employee {
	result := make([]employee.Employee, 0, len(employees))
	for _, entry := range employees {
		if Matches(entry, keyword) {
			result = append(result, entry)
		}
	}
	return result
}

// Ordered returns a copy of employees stably sorted by sort. Employees
// with equal keys keep their relative input order in both directions.
func Ordered(employees []employee.Employee, sort Sort) []employee.Employee {
	result := slices.Clone(employees)
	slices.SortStableFunc(result, func(a, b employee.Employee) int {
		order := employee.Compare(a, b, sort.Field)
		if sort.Direction == Descending {
			return -order
		}
		return order
	})
	return result
}

// Project filters by keyword, then orders by sort.
func Project(employees []employee.Employee, keyword string, sort Sort) []employee.Employee {
	return Ordered(Filter(employees, keyword), sort)
}
