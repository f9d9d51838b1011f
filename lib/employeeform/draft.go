// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package employeeform

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/rosterdesk/rosterdesk/lib/employee"
	"github.com/rosterdesk/rosterdesk/lib/employeeapi"
)

// MaxImageSize bounds an image attachment read from disk.
const MaxImageSize = 16 << 20

// ErrUnknownField is returned by SetField for a name that is not an
// editable scalar field.
var ErrUnknownField = errors.New("unknown form field")

// Attachment is the image selected in the form.
type Attachment struct {
	// Name is the file's base name.
	Name string

	Data []byte

	// Digest is the hex BLAKE3-256 of Data. Two attachments with equal
	// digests carry the same bytes; the UI uses it to tell whether a
	// re-selected file actually changed.
	Digest string
}

// NewAttachment builds an attachment from a name and its bytes.
func NewAttachment(name string, data []byte) *Attachment {
	sum := blake3.Sum256(data)
	return &Attachment{
		Name:   filepath.Base(name),
		Data:   data,
		Digest: hex.EncodeToString(sum[:]),
	}
}

// ReadAttachment reads the file at path, refusing files larger than
// MaxImageSize.
func ReadAttachment(path string) (*Attachment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", path, err)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("image %s is larger than %d MiB", path, MaxImageSize>>20)
	}
	return NewAttachment(path, data), nil
}

// Draft is the create form's content. Field values are taken as typed:
// the client does no validation, and empty strings are submitted as
// empty strings. The server decides what is acceptable.
type Draft struct {
	Name        string
	Email       string
	Mobile      string
	Designation employee.Designation
	Gender      employee.Gender
	Courses     employee.Courses

	// Image is nil when no file is attached. At most one file is kept;
	// selecting another replaces it.
	Image *Attachment
}

// NewDraft returns an empty draft with the default designation.
func NewDraft() Draft {
	return Draft{Designation: employee.DefaultDesignation}
}

// SetField assigns a scalar field by its wire name: "name", "email",
// "mobile", "designation" or "gender". Values are stored verbatim.
func (draft *Draft) SetField(name string, value string) error {
	switch employee.Field(name) {
	case employee.FieldName:
		draft.Name = value
	case employee.FieldEmail:
		draft.Email = value
	case employee.FieldMobile:
		draft.Mobile = value
	case employee.FieldDesignation:
		draft.Designation = employee.Designation(value)
	case employee.FieldGender:
		draft.Gender = employee.Gender(value)
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	return nil
}

// ToggleCourse adds course to the selection when checked, removes it
// otherwise.
func (draft *Draft) ToggleCourse(course employee.Course, checked bool) {
	if checked {
		draft.Courses = draft.Courses.Add(course)
	} else {
		draft.Courses = draft.Courses.Remove(course)
	}
}

// SetImage replaces the attachment. Nil clears it.
func (draft *Draft) SetImage(attachment *Attachment) {
	draft.Image = attachment
}

// Payload converts the draft into the create call's request body.
func (draft Draft) Payload() employeeapi.NewEmployee {
	payload := employeeapi.NewEmployee{
		Name:        draft.Name,
		Email:       draft.Email,
		Mobile:      draft.Mobile,
		Designation: draft.Designation,
		Gender:      draft.Gender,
		Courses:     employee.NewCourses(draft.Courses...),
	}
	if draft.Image != nil {
		payload.Image = &employeeapi.Attachment{
			Filename: draft.Image.Name,
			Data:     draft.Image.Data,
		}
	}
	return payload
}
