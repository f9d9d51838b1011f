// Copyright 2026 The Rosterdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package apitest runs an in-memory employee API for tests. It speaks
// the same wire format as the real service: bearer authentication,
// the {success, message, employees} envelope, and multipart create
// bodies with repeated "courses" parts.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rosterdesk/rosterdesk/lib/employee"
)

// BasePath is where the fake mounts the API, matching the real service.
const BasePath = "/api/v1/employee"

// Server is a fake employee API. Safe for concurrent use: tests can
// seed or inspect state while requests are in flight.
type Server struct {
	server     *httptest.Server
	credential string

	mu        sync.Mutex
	employees []employee.Employee
	nextID    int
	now       time.Time

	// requests counts handled requests by operation ("list",
	// "create", "delete"), including refused ones.
	requests map[string]int

	// failures holds canned responses consumed one per request, by
	// operation, before normal handling.
	failures map[string][]cannedResponse
}

type cannedResponse struct {
	status int
	body   string
}

// NewServer starts a fake that accepts only the given bearer
// credential. The server is closed when the test ends.
func NewServer(t testing.TB, credential string) *Server {
	t.Helper()
	fake := &Server{
		credential: credential,
		nextID:     1,
		now:        time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		requests:   make(map[string]int),
		failures:   make(map[string][]cannedResponse),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+BasePath+"/getAllEmployee", fake.handleList)
	mux.HandleFunc("POST "+BasePath+"/createEmployee", fake.handleCreate)
	mux.HandleFunc("DELETE "+BasePath+"/deleteEmployee/{id}", fake.handleDelete)
	fake.server = httptest.NewServer(mux)
	t.Cleanup(fake.server.Close)
	return fake
}

// URL returns the API base URL to pass to employeeapi.New.
func (fake *Server) URL() string {
	return fake.server.URL + BasePath
}

// Seed appends records. Records without an id are assigned the next
// sequential one.
func (fake *Server) Seed(employees ...employee.Employee) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for _, record := range employees {
		if record.ID == "" {
			record.ID = strconv.Itoa(fake.nextID)
		}
		if number, err := strconv.Atoi(record.ID); err == nil && number >= fake.nextID {
			fake.nextID = number + 1
		}
		fake.employees = append(fake.employees, record)
	}
}

// Employees returns the stored roster.
func (fake *Server) Employees() []employee.Employee {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return slices.Clone(fake.employees)
}

// Requests returns how many requests of the operation ("list",
// "create" or "delete") were received.
func (fake *Server) Requests(operation string) int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.requests[operation]
}

// FailNext makes the next request of the operation answer with status
// and body instead of being handled. Calls queue up.
func (fake *Server) FailNext(operation string, status int, body string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.failures[operation] = append(fake.failures[operation], cannedResponse{status, body})
}

// begin counts the request, checks the credential, and consumes a
// canned failure. Returns false when the response has been written.
func (fake *Server) begin(operation string, writer http.ResponseWriter, request *http.Request) bool {
	fake.mu.Lock()
	fake.requests[operation]++
	var canned *cannedResponse
	if queue := fake.failures[operation]; len(queue) > 0 {
		canned = &queue[0]
		fake.failures[operation] = queue[1:]
	}
	fake.mu.Unlock()

	if request.Header.Get("Authorization") != "Bearer "+fake.credential {
		writeEnvelope(writer, http.StatusUnauthorized, false, "Unauthorized", nil)
		return false
	}
	if canned != nil {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(canned.status)
		writer.Write([]byte(canned.body))
		return false
	}
	return true
}

func (fake *Server) handleList(writer http.ResponseWriter, request *http.Request) {
	if !fake.begin("list", writer, request) {
		return
	}
	employees := fake.Employees()
	if employees == nil {
		employees = []employee.Employee{}
	}
	writeEnvelope(writer, http.StatusOK, true, "", employees)
}

func (fake *Server) handleCreate(writer http.ResponseWriter, request *http.Request) {
	if !fake.begin("create", writer, request) {
		return
	}
	if err := request.ParseMultipartForm(32 << 20); err != nil {
		writeEnvelope(writer, http.StatusBadRequest, false, "malformed form: "+err.Error(), nil)
		return
	}
	form := request.MultipartForm

	value := func(name string) string {
		if values := form.Value[name]; len(values) > 0 {
			return values[0]
		}
		return ""
	}
	record := employee.Employee{
		Name:        value("name"),
		Email:       value("email"),
		Mobile:      value("mobile"),
		Designation: employee.Designation(value("designation")),
		Gender:      employee.Gender(value("gender")),
	}
	for _, course := range form.Value["courses"] {
		record.Courses = record.Courses.Add(employee.Course(course))
	}
	if record.Name == "" || record.Email == "" {
		writeEnvelope(writer, http.StatusBadRequest, false, "name and email are required", nil)
		return
	}

	fake.mu.Lock()
	for _, existing := range fake.employees {
		if strings.EqualFold(existing.Email, record.Email) {
			fake.mu.Unlock()
			writeEnvelope(writer, http.StatusBadRequest, false, "duplicate email", nil)
			return
		}
	}
	record.ID = strconv.Itoa(fake.nextID)
	fake.nextID++
	record.CreateDate = fake.now.Add(time.Duration(len(fake.employees)) * time.Minute).Format("2006-01-02T15:04:05.000Z")
	if files := form.File["image"]; len(files) > 0 {
		record.Image = &employee.Image{
			SecureURL: fmt.Sprintf("https://images.example.com/%s/%s", record.ID, path.Base(files[0].Filename)),
		}
	}
	fake.employees = append(fake.employees, record)
	fake.mu.Unlock()

	writeEnvelope(writer, http.StatusCreated, true, "Employee created successfully", nil)
}

func (fake *Server) handleDelete(writer http.ResponseWriter, request *http.Request) {
	if !fake.begin("delete", writer, request) {
		return
	}
	id := request.PathValue("id")

	fake.mu.Lock()
	index := slices.IndexFunc(fake.employees, func(record employee.Employee) bool {
		return record.ID == id
	})
	if index >= 0 {
		fake.employees = slices.Delete(fake.employees, index, index+1)
	}
	fake.mu.Unlock()

	if index < 0 {
		writeEnvelope(writer, http.StatusNotFound, false, "Employee not found", nil)
		return
	}
	writeEnvelope(writer, http.StatusOK, true, "Employee deleted successfully", nil)
}

func writeEnvelope(writer http.ResponseWriter, status int, success bool, message string, employees []employee.Employee) {
	body := map[string]any{"success": success}
	if message != "" {
		body["message"] = message
	}
	if employees != nil {
		body["employees"] = employees
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(body)
}
