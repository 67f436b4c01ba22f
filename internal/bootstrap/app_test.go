package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"curriculum-backend/internal/client"
	"curriculum-backend/internal/editor"
	"curriculum-backend/internal/shared/config"
	"curriculum-backend/internal/shared/server/middleware"
	"curriculum-backend/resume/forms"
	"curriculum-backend/resume/model"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	app, err := Build(config.Config{
		Env:              "dev",
		LocalStoreDir:    t.TempDir(),
		ExportRatePerMin: 2,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func call(t *testing.T, app *App, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func guest(id string) http.Header {
	return http.Header{"X-Guest-Id": []string{id}}
}

func TestHealthAndTemplatesArePublic(t *testing.T) {
	app := newTestApp(t)

	if rec := call(t, app, http.MethodGet, "/api/v1/health", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}

	rec := call(t, app, http.MethodGet, "/api/v1/resume-templates", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("templates = %d: %s", rec.Code, rec.Body.String())
	}
	var templates []struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &templates)
	if len(templates) != len(model.Templates) {
		t.Fatalf("got %d templates", len(templates))
	}

	if rec := call(t, app, http.MethodGet, "/metrics", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("metrics = %d", rec.Code)
	}
}

func TestResumesRequireIdentity(t *testing.T) {
	app := newTestApp(t)
	rec := call(t, app, http.MethodGet, "/api/v1/users/resumes", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRegisterLoginAndOwnResumes(t *testing.T) {
	app := newTestApp(t)

	rec := call(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "ada_l",
		"email":    "ada@example.com",
		"password": "correct-horse",
		"fullName": "Ada Lovelace",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register = %d: %s", rec.Code, rec.Body.String())
	}

	rec = call(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "correct-horse",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &login)
	bearer := http.Header{"Authorization": []string{"Bearer " + login.Token}}

	rec = call(t, app, http.MethodPost, "/api/v1/users/resumes", map[string]string{"title": "Mine"}, bearer)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	var created model.Document
	decodeData(t, rec, &created)

	if rec := call(t, app, http.MethodGet, "/api/v1/users/resumes/"+created.ID, nil, guest("g1")); rec.Code != http.StatusForbidden {
		t.Fatalf("guest read of another user's resume = %d", rec.Code)
	}
	if rec := call(t, app, http.MethodGet, "/api/v1/admin/users", nil, bearer); rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin admin access = %d", rec.Code)
	}
}

func TestSaveConflictAndValidation(t *testing.T) {
	app := newTestApp(t)
	h := guest("g1")

	rec := call(t, app, http.MethodPost, "/api/v1/users/resumes", map[string]string{"title": "CV"}, h)
	var doc model.Document
	decodeData(t, rec, &doc)

	body := map[string]any{"version": doc.Version, "title": "CV", "summary": "first"}
	rec = call(t, app, http.MethodPut, "/api/v1/users/resumes/"+doc.ID, body, h)
	if rec.Code != http.StatusOK {
		t.Fatalf("save = %d: %s", rec.Code, rec.Body.String())
	}

	rec = call(t, app, http.MethodPut, "/api/v1/users/resumes/"+doc.ID, body, h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("stale save = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "version_conflict") {
		t.Fatalf("missing conflict code: %s", rec.Body.String())
	}

	bad := map[string]any{"version": 2, "template": "fancy"}
	rec = call(t, app, http.MethodPut, "/api/v1/users/resumes/"+doc.ID, bad, h)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid save = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPreviewPDFAndStoredExports(t *testing.T) {
	app := newTestApp(t)
	h := guest("g1")

	rec := call(t, app, http.MethodPost, "/api/v1/users/resumes", map[string]string{"title": "CV", "template": "modern"}, h)
	var doc model.Document
	decodeData(t, rec, &doc)

	rec = call(t, app, http.MethodGet, "/api/v1/users/resumes/"+doc.ID+"/preview?width=397", nil, h)
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("preview = %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "scale(0.5)") {
		t.Fatalf("preview not scaled")
	}

	rec = call(t, app, http.MethodGet, "/api/v1/users/resumes/"+doc.ID+"/pdf", nil, h)
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Fatalf("pdf = %d", rec.Code)
	}

	rec = call(t, app, http.MethodPost, "/api/v1/users/resumes/"+doc.ID+"/exports", map[string]string{}, h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("export = %d: %s", rec.Code, rec.Body.String())
	}
	var exp struct {
		ExportID string `json:"exportId"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &exp)

	rec = call(t, app, http.MethodGet, "/api/v1/exports/"+exp.ExportID+"/download", nil, h)
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Fatalf("download = %d", rec.Code)
	}
	if rec := call(t, app, http.MethodGet, "/api/v1/exports/"+exp.ExportID+"/download", nil, guest("g2")); rec.Code != http.StatusForbidden && rec.Code != http.StatusNotFound {
		t.Fatalf("foreign download = %d", rec.Code)
	}

	// The pdf download and the stored export used up the budget of two a minute.
	rec = call(t, app, http.MethodGet, "/api/v1/users/resumes/"+doc.ID+"/pdf", nil, h)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected rate limit, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After")
	}
	live := app.EditorHandler
	if ok, _ := live.Limiter.Allow(middleware.RateLimitKey(middleware.GuestPrefix+"g1", middleware.ExportRateLimitGroup), live.ExportRule); ok {
		t.Fatalf("live exports should draw on the exhausted export budget")
	}
	if rec := call(t, app, http.MethodGet, "/api/v1/users/resumes/"+doc.ID+"/pdf", nil, guest("g3")); rec.Code == http.StatusTooManyRequests {
		t.Fatalf("rate limit should be per caller")
	}
}

func TestClientAndEditorAgainstServer(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.Router)
	defer srv.Close()

	ctx := context.Background()
	c := client.New(srv.URL, client.WithGuestID("g1"))

	created, err := c.CreateResume(ctx, "Remote", model.TemplateProfessional)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sess := editor.NewSession(created, editor.ClientStore{Client: c, ResumeID: created.ID})
	_ = sess.Apply(forms.Patch{Section: forms.SectionPersonal, Op: forms.OpSet, Field: "full_name", Value: "Grace Hopper"})
	if err := sess.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if sess.Document().Version != 2 {
		t.Fatalf("session version = %d", sess.Document().Version)
	}

	stale := editor.NewSession(created, editor.ClientStore{Client: c, ResumeID: created.ID})
	err = stale.Save(ctx)
	var se *editor.SaveError
	if !errors.As(err, &se) || se.Message != editor.MsgConflict {
		t.Fatalf("expected conflict save error, got %v", err)
	}

	pdf, name, err := c.DownloadPDF(ctx, created.ID, "")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if name != "Grace Hopper.pdf" || !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("unexpected download %q", name)
	}
}
