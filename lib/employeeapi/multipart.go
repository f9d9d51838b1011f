// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

package employeeapi

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/rosterdesk/rosterdesk/lib/employee"
)

// NewEmployee is the payload of a create call.
type NewEmployee struct {
	Name        string
	Email       string
	Mobile      string
	Designation employee.Designation
	Gender      employee.Gender
	Courses     employee.Courses

	// Image is optional.
	Image *Attachment
}

// Attachment is a file to upload as the employee's image.
type Attachment struct {
	// Filename is the base name sent in the part's Content-Disposition.
	Filename string

	Data []byte
}

// ContentType sniffs the attachment's MIME type from its bytes.
func (attachment Attachment) ContentType() string {
	return mimetype.Detect(attachment.Data).String()
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// encodeMultipart renders draft as a multipart/form-data body. Scalar
// fields are always present, empty or not. Courses are one "courses"
// part per member in canonical order, so the server receives a list
// rather than a joined string.
func encodeMultipart(draft NewEmployee) ([]byte, string, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	fields := []struct{ name, value string }{
		{"name", draft.Name},
		{"email", draft.Email},
		{"mobile", draft.Mobile},
		{"designation", string(draft.Designation)},
		{"gender", string(draft.Gender)},
	}
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("writing %s: %w", field.name, err)
		}
	}
	for _, course := range draft.Courses.Sorted() {
		if err := writer.WriteField("courses", string(course)); err != nil {
			return nil, "", fmt.Errorf("writing courses: %w", err)
		}
	}

	if draft.Image != nil {
		filename := filepath.Base(draft.Image.Filename)
		if filename == "." || filename == string(filepath.Separator) {
			filename = "image"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(filename)))
		header.Set("Content-Type", draft.Image.ContentType())
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating image part: %w", err)
		}
		if _, err := part.Write(draft.Image.Data); err != nil {
			return nil, "", fmt.Errorf("writing image part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return buffer.Bytes(), writer.FormDataContentType(), nil
}
