package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/"})
}

func TestResourceService_List(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/resources" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]Resource{{ID: 1, Name: "db", Provider: "AWS", Status: "Running"}})
	})

	resources, err := c.Resources().List(context.Background(), &ResourceListOptions{Provider: "AWS", Status: "Running"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resources) != 1 || resources[0].Name != "db" {
		t.Errorf("resources = %+v", resources)
	}
	if gotQuery != "provider=AWS&status=Running" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestResourceService_CreateAndUpdate(t *testing.T) {
	var gotMethod string
	var gotBody map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody = nil
		json.NewDecoder(r.Body).Decode(&gotBody)
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
		}
		json.NewEncoder(w).Encode(Resource{ID: 3, Name: "web", Status: "Running"})
	})

	res, err := c.Resources().Create(context.Background(), &CreateResourceRequest{
		Name: "web", Provider: "GCP", Type: "VM", Region: "us-central1",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if res.ID != 3 || gotMethod != http.MethodPost || gotBody["provider"] != "GCP" {
		t.Errorf("create: res=%+v method=%s body=%v", res, gotMethod, gotBody)
	}

	status := "Stopped"
	if _, err := c.Resources().Update(context.Background(), 3, &UpdateResourceRequest{Status: &status}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if _, sent := gotBody["name"]; sent || gotBody["status"] != "Stopped" {
		t.Errorf("update body = %v, want only status", gotBody)
	}
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		check    func(*APIError) bool
	}{
		{
			name:     "not found envelope",
			status:   http.StatusNotFound,
			body:     `{"success":false,"error":{"code":"NOT_FOUND","message":"Resource not found"}}`,
			wantCode: "NOT_FOUND",
			check:    (*APIError).IsNotFound,
		},
		{
			name:     "validation envelope",
			status:   http.StatusBadRequest,
			body:     `{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Validation failed","details":[{"field":"name"}]}}`,
			wantCode: "VALIDATION_ERROR",
			check:    (*APIError).IsValidationError,
		},
		{
			name:   "plain text body",
			status: http.StatusBadGateway,
			body:   "upstream down",
			check:  (*APIError).IsServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			err := c.Resources().Delete(context.Background(), 9)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.Code != tt.wantCode || !tt.check(apiErr) {
				t.Errorf("got %+v", apiErr)
			}
		})
	}
}

func TestLogService_ListLimit(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})

	if _, err := c.Logs().List(context.Background(), 0); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want none", gotQuery)
	}

	if _, err := c.Logs().List(context.Background(), 5); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotQuery != "limit=5" {
		t.Errorf("query = %q, want limit=5", gotQuery)
	}
}
