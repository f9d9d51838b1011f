// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package employee

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestUnmarshalEmployee(t *testing.T) {
	data := []byte(`{
		"id": 42,
		"name": "Ann Lee",
		"email": "ann@example.com",
		"mobile": "5550100",
		"designation": "Manager",
		"gender": "Female",
		"courses": ["BSc", "MCA"],
		"image": {"secure_url": "https://img.example.com/ann.png"},
		"createDate": "2024-03-01T10:22:00.000Z"
	}`)

	var employee Employee
	if err := json.Unmarshal(data, &employee); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if employee.ID != "42" {
		t.Errorf("numeric id should decode to \"42\", got %q", employee.ID)
	}
	if employee.Designation != DesignationManager {
		t.Errorf("designation = %q, want Manager", employee.Designation)
	}
	if employee.Gender != GenderFemale {
		t.Errorf("gender = %q, want Female", employee.Gender)
	}
	// Courses come back in canonical order regardless of wire order.
	if !slices.Equal(employee.Courses, Courses{CourseMCA, CourseBSc}) {
		t.Errorf("courses = %v, want [MCA BSc]", employee.Courses)
	}
	if employee.ImageURL() != "https://img.example.com/ann.png" {
		t.Errorf("image url = %q", employee.ImageURL())
	}
	if employee.DateOnly() != "2024-03-01" {
		t.Errorf("date only = %q, want 2024-03-01", employee.DateOnly())
	}
}

func TestUnmarshalEmployeeStringID(t *testing.T) {
	var employee Employee
	if err := json.Unmarshal([]byte(`{"id":"65f0c1","name":"Bob"}`), &employee); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if employee.ID != "65f0c1" {
		t.Errorf("id = %q, want 65f0c1", employee.ID)
	}
	if employee.Image != nil {
		t.Errorf("missing image should decode to nil, got %+v", employee.Image)
	}
	if employee.ImageURL() != "" {
		t.Errorf("missing image should have empty url, got %q", employee.ImageURL())
	}
}

func TestUnmarshalEmployeeRejectsObjectID(t *testing.T) {
	var employee Employee
	if err := json.Unmarshal([]byte(`{"id":{"oid":1}}`), &employee); err == nil {
		t.Fatal("expected an error for an object id")
	}
}

func TestUnmarshalLegacyJoinedCourses(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Courses
	}{
		{"joined string", `"BCA,MCA"`, Courses{CourseMCA, CourseBCA}},
		{"flattened inside array", `["MCA,BSc"]`, Courses{CourseMCA, CourseBSc}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
		{"duplicates", `["MCA","mca"," MCA "]`, Courses{CourseMCA}},
		{"unknown kept", `["PhD","BCA"]`, Courses{CourseBCA, "PhD"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var courses Courses
			if err := json.Unmarshal([]byte(test.json), &courses); err != nil {
				t.Fatalf("unmarshal %s: %v", test.json, err)
			}
			if !slices.Equal(courses, test.want) {
				t.Errorf("got %v, want %v", courses, test.want)
			}
		})
	}
}

func TestCoursesMarshalIsArray(t *testing.T) {
	data, err := json.Marshal(struct {
		Courses Courses `json:"courses"`
	}{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"courses":[]}` {
		t.Errorf("empty set should encode as [], got %s", data)
	}
}

func TestCoursesSetOperations(t *testing.T) {
	courses := NewCourses(CourseBSc, CourseMCA, CourseBSc)
	if !slices.Equal(courses, Courses{CourseMCA, CourseBSc}) {
		t.Fatalf("NewCourses should dedupe and order, got %v", courses)
	}
	if courses.Joined() != "MCA,BSc" {
		t.Errorf("joined = %q, want MCA,BSc", courses.Joined())
	}

	withBCA := courses.Add(CourseBCA)
	if !slices.Equal(withBCA, Courses{CourseMCA, CourseBCA, CourseBSc}) {
		t.Errorf("add BCA = %v", withBCA)
	}
	// Add does not alias the receiver.
	if courses.Has(CourseBCA) {
		t.Error("Add mutated the original set")
	}

	withoutMCA := withBCA.Remove(CourseMCA)
	if !slices.Equal(withoutMCA, Courses{CourseBCA, CourseBSc}) {
		t.Errorf("remove MCA = %v", withoutMCA)
	}
	if !withBCA.Has(CourseMCA) {
		t.Error("Remove mutated the original set")
	}
}

func TestCoursesCompare(t *testing.T) {
	tests := []struct {
		name        string
		left, right Courses
		want        int
	}{
		{"equal", NewCourses(CourseMCA), NewCourses(CourseMCA), 0},
		{"both empty", nil, Courses{}, 0},
		{"empty first", nil, NewCourses(CourseBSc), -1},
		{"canonical order", NewCourses(CourseBCA), NewCourses(CourseMCA), 1},
		{"prefix first", NewCourses(CourseMCA), NewCourses(CourseMCA, CourseBCA), -1},
		{"element decides", NewCourses(CourseMCA, CourseBSc), NewCourses(CourseMCA, CourseBCA), 1},
		{"check order ignored", NewCourses(CourseBSc, CourseMCA), NewCourses(CourseMCA, CourseBSc), 0},
		{"unknown last", NewCourses(Course("PhD")), NewCourses(CourseBSc), 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.left.Compare(test.right); got != test.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", test.left, test.right, got, test.want)
			}
		})
	}
}

func TestCompareTextFieldsCaseInsensitive(t *testing.T) {
	bob := Employee{ID: "1", Name: "Bob"}
	ann := Employee{ID: "2", Name: "ann"}
	if Compare(ann, bob, FieldName) != -1 {
		t.Error("ann should sort before Bob when comparing case-insensitively")
	}
	if Compare(Employee{Name: "ANN"}, ann, FieldName) != 0 {
		t.Error("names differing only in case should compare equal")
	}
}

func TestCompareNumericIDs(t *testing.T) {
	nine := Employee{ID: "9"}
	ten := Employee{ID: "10"}
	if Compare(nine, ten, FieldID) != -1 {
		t.Error("numeric ids should compare numerically")
	}
	if Compare(Employee{ID: "a1"}, ten, FieldID) != 1 {
		t.Error("non-numeric ids should sort after numeric ones")
	}
	if Compare(Employee{ID: "B2"}, Employee{ID: "a1"}, FieldID) != 1 {
		t.Error("non-numeric ids should compare as case-insensitive text")
	}
}

func TestCompareMixedIDsIsTransitive(t *testing.T) {
	ids := []string{"9", "10", "1a", "a1", "007", "B2", "100", ""}
	for _, a := range ids {
		for _, b := range ids {
			ab := Compare(Employee{ID: a}, Employee{ID: b}, FieldID)
			ba := Compare(Employee{ID: b}, Employee{ID: a}, FieldID)
			if ab != -ba {
				t.Errorf("Compare(%q, %q) = %d but Compare(%q, %q) = %d", a, b, ab, b, a, ba)
			}
			for _, c := range ids {
				bc := Compare(Employee{ID: b}, Employee{ID: c}, FieldID)
				ac := Compare(Employee{ID: a}, Employee{ID: c}, FieldID)
				if ab < 0 && bc < 0 && ac >= 0 {
					t.Errorf("%q < %q < %q but Compare(%q, %q) = %d", a, b, c, a, c, ac)
				}
			}
		}
	}

	records := []Employee{{ID: "1a"}, {ID: "10"}, {ID: "9"}, {ID: "a1"}}
	slices.SortStableFunc(records, func(a, b Employee) int { return Compare(a, b, FieldID) })
	var got []string
	for _, record := range records {
		got = append(got, record.ID)
	}
	if want := []string{"9", "10", "1a", "a1"}; !slices.Equal(got, want) {
		t.Errorf("sorted ids = %v, want %v", got, want)
	}
}

func TestParseField(t *testing.T) {
	for input, want := range map[string]Field{
		"name":        FieldName,
		"createDate":  FieldCreateDate,
		"create-date": FieldCreateDate,
		"CREATEDATE":  FieldCreateDate,
		"course":      FieldCourses,
		"courses":     FieldCourses,
	} {
		got, err := ParseField(input)
		if err != nil {
			t.Errorf("ParseField(%q): %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseField(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParseField("image"); err == nil {
		t.Error("image is not sortable")
	}
}

func TestParseEnums(t *testing.T) {
	if designation, err := ParseDesignation("sales"); err != nil || designation != DesignationSales {
		t.Errorf("ParseDesignation(sales) = %q, %v", designation, err)
	}
	if _, err := ParseDesignation("Intern"); err == nil {
		t.Error("Intern is not a designation")
	}
	if gender, err := ParseGender(""); err != nil || gender != GenderUnset {
		t.Errorf("ParseGender(\"\") = %q, %v", gender, err)
	}
	if gender, err := ParseGender("male"); err != nil || gender != GenderMale {
		t.Errorf("ParseGender(male) = %q, %v", gender, err)
	}
	if _, err := ParseCourse("MBA"); err == nil {
		t.Error("MBA is not a course")
	}
}

func TestDisplayValue(t *testing.T) {
	employee := Employee{
		ID:         "7",
		Courses:    NewCourses(CourseBSc, CourseBCA),
		CreateDate: "2023-11-05T08:00:00Z",
	}
	if got := employee.DisplayValue(FieldCourses); got != "BCA,BSc" {
		t.Errorf("courses cell = %q", got)
	}
	if got := employee.DisplayValue(FieldCreateDate); got != "2023-11-05" {
		t.Errorf("date cell = %q", got)
	}
	if got := employee.DisplayValue(FieldID); got != "7" {
		t.Errorf("id cell = %q", got)
	}
}
