// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package employee

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Course is a qualification offered by the create form's checkboxes.
type Course string

const (
	CourseMCA Course = "MCA"
	CourseBCA Course = "BCA"
	CourseBSc Course = "BSc"
)

// AllCourses lists the selectable courses in canonical order. Canonical
// order drives display, serialization and comparison of [Courses].
var AllCourses = []Course{CourseMCA, CourseBCA, CourseBSc}

// ParseCourse returns the course matching value, compared
// case-insensitively after trimming whitespace.
func ParseCourse(value string) (Course, error) {
	trimmed := strings.TrimSpace(value)
	for _, course := range AllCourses {
		if strings.EqualFold(string(course), trimmed) {
			return course, nil
		}
	}
	return "", fmt.Errorf("unknown course %q (valid: MCA, BCA, BSc)", value)
}

// courseRank orders courses canonically. Unknown courses (from records
// written by other clients) rank after the known ones.
func courseRank(course Course) int {
	if index := slices.Index(AllCourses, course); index >= 0 {
		return index
	}
	return len(AllCourses)
}

// Courses is a set of courses. The zero value is the empty set. Methods
// keep the slice duplicate-free and in canonical order, so two sets
// with the same members are element-wise equal.
type Courses []Course

// NewCourses builds a set from the given courses, dropping duplicates.
func NewCourses(courses ...Course) Courses {
	var set Courses
	for _, course := range courses {
		set = set.Add(course)
	}
	return set
}

// Has reports whether course is a member.
func (courses Courses) Has(course Course) bool {
	return slices.Contains(courses, course)
}

// Add returns the set with course included.
func (courses Courses) Add(course Course) Courses {
	if course == "" || courses.Has(course) {
		return courses
	}
	result := append(slices.Clone(courses), course)
	result.normalize()
	return result
}

// Remove returns the set with course excluded.
func (courses Courses) Remove(course Course) Courses {
	return slices.DeleteFunc(slices.Clone(courses), func(member Course) bool {
		return member == course
	})
}

// Sorted returns the members in canonical order.
func (courses Courses) Sorted() []Course {
	result := slices.Clone(courses)
	Courses(result).normalize()
	return result
}

// Joined renders the set as a comma-separated display string
// ("MCA,BSc"), the form the panel shows in the Course column.
func (courses Courses) Joined() string {
	parts := make([]string, 0, len(courses))
	for _, course := range courses.Sorted() {
		parts = append(parts, string(course))
	}
	return strings.Join(parts, ",")
}

// Compare orders two sets: element-wise by canonical course order,
// then by cardinality (a proper prefix sorts first). Returns -1, 0
// or +1.
func (courses Courses) Compare(other Courses) int {
	left, right := courses.Sorted(), other.Sorted()
	for index := 0; index < len(left) && index < len(right); index++ {
		leftRank, rightRank := courseRank(left[index]), courseRank(right[index])
		if leftRank != rightRank {
			if leftRank < rightRank {
				return -1
			}
			return 1
		}
		// Two unknown courses share a rank; fall back to their text.
		if cmp := strings.Compare(string(left[index]), string(right[index])); cmp != 0 {
			return cmp
		}
	}
	switch {
	case len(left) < len(right):
		return -1
	case len(left) > len(right):
		return 1
	}
	return 0
}

func (courses Courses) normalize() {
	slices.SortStableFunc(courses, func(a, b Course) int {
		if rankA, rankB := courseRank(a), courseRank(b); rankA != rankB {
			return rankA - rankB
		}
		return strings.Compare(string(a), string(b))
	})
}

// MarshalJSON always encodes a JSON array (never null).
func (courses Courses) MarshalJSON() ([]byte, error) {
	members := courses.Sorted()
	if members == nil {
		members = []Course{}
	}
	return json.Marshal(members)
}

// UnmarshalJSON accepts a JSON array of strings, or a legacy
// comma-joined string ("MCA,BCA"). Array elements that themselves
// contain commas are split too: legacy servers stored the flattened
// form inside a one-element array. Unknown course names are preserved
// rather than rejected; the server owns the record.
func (courses *Courses) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var parts []string
	switch value := raw.(type) {
	case nil:
	case string:
		parts = append(parts, strings.Split(value, ",")...)
	case []any:
		for _, element := range value {
			text, ok := element.(string)
			if !ok {
				return fmt.Errorf("courses: expected string elements, got %T", element)
			}
			parts = append(parts, strings.Split(text, ",")...)
		}
	default:
		return fmt.Errorf("courses: expected array or string, got %T", raw)
	}

	var set Courses
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		course, err := ParseCourse(trimmed)
		if err != nil {
			course = Course(trimmed)
		}
		set = set.Add(course)
	}
	*courses = set
	return nil
}
