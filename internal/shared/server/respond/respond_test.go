package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"curriculum-backend/resume/validate"
)

func TestValidationErrorShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/x", func(c *gin.Context) {
		var fe validate.FieldErrors
		fe.Add("template", "Template must be one of classic, modern, professional")
		fe.Add("personal_details.email", "Please enter a valid email address")
		ValidationError(c, fe)
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPut, "/x", nil))
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details struct {
				Fields []validate.FieldError `json:"fields"`
			} `json:"details"`
		} `json:"error"`
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("unexpected code %q", body.Error.Code)
	}
	if body.Error.Message != "Template must be one of classic, modern, professional" {
		t.Fatalf("expected first field message, got %q", body.Error.Message)
	}
	if len(body.Error.Details.Fields) != 2 || body.Error.Details.Fields[0].Field != "template" {
		t.Fatalf("unexpected fields %+v", body.Error.Details.Fields)
	}
	if len(body.Errors["personal_details.email"]) != 1 {
		t.Fatalf("unexpected errors map %+v", body.Errors)
	}
}

func TestAttachmentHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/pdf", func(c *gin.Context) {
		Attachment(c, "Jordan Lee.pdf", "application/pdf", []byte("%PDF-1.3"))
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/pdf", nil))
	if got := resp.Header().Get("Content-Disposition"); got != `attachment; filename="Jordan Lee.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
}
