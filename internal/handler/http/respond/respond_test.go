package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name string
		code int
		data any
		want string
	}{
		{
			name: "object body",
			code: http.StatusOK,
			data: map[string]string{"status": "ALLOWED"},
			want: `{"status":"ALLOWED"}`,
		},
		{
			name: "nil body writes nothing",
			code: http.StatusNoContent,
			data: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSON(rec, tt.code, tt.data)

			if rec.Code != tt.code {
				t.Fatalf("code=%d want=%d", rec.Code, tt.code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.want {
				t.Fatalf("body=%q want=%q", got, tt.want)
			}
			if tt.data != nil && rec.Header().Get("Content-Type") != "application/json" {
				t.Fatalf("content type=%q", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, errors.New("userId must be a valid UUID"))

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "userId must be a valid UUID" {
		t.Fatalf("error=%q", body["error"])
	}
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name string
		code int
		err  error
		want string
	}{
		{
			name: "validation message passes through",
			code: http.StatusBadRequest,
			err:  errors.New("overrideLimit must be a positive integer"),
			want: "overrideLimit must be a positive integer",
		},
		{
			name: "internal detail replaced",
			code: http.StatusBadRequest,
			err:  errors.New("dial tcp 10.0.0.5:5432: connection refused"),
			want: "internal server error",
		},
		{
			name: "5xx always generic",
			code: http.StatusInternalServerError,
			err:  errors.New("user u1 not found"),
			want: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SafeError(rec, tt.code, tt.err)

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body["error"] != tt.want {
				t.Fatalf("error=%q want=%q", body["error"], tt.want)
			}
		})
	}
}

func TestSafeError_NilIsNoop(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusInternalServerError, nil)
	if rec.Body.Len() != 0 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
