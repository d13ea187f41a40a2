package api

import (
	"net/http"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		want     string
	}{
		{
			name: "error with details",
			apiError: &APIError{
				Code:    400,
				Message: "Bad Request",
				Details: "missing 'from' parameter",
			},
			want: "Bad Request: missing 'from' parameter",
		},
		{
			name: "error without details",
			apiError: &APIError{
				Code:    404,
				Message: "Not Found",
			},
			want: "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.apiError.Error(); got != tt.want {
				t.Errorf("APIError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	if got := BadRequestError("bad", "detail").Code; got != http.StatusBadRequest {
		t.Errorf("BadRequestError code = %d", got)
	}
	if got := NotFoundError("element", "x").Code; got != http.StatusNotFound {
		t.Errorf("NotFoundError code = %d", got)
	}
	if got := InternalError("boom", "detail").Code; got != http.StatusInternalServerError {
		t.Errorf("InternalError code = %d", got)
	}

	nf := NotFoundError("element", "service-9")
	if nf.Message != "element not found" {
		t.Errorf("NotFoundError message = %q", nf.Message)
	}
	if nf.Context["id"] != "service-9" {
		t.Errorf("NotFoundError context id = %v", nf.Context["id"])
	}
}
