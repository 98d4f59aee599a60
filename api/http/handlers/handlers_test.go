package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	api "jobtion/api/http"
	"jobtion/api/http/handlers"
	"jobtion/pkg/fault"
	"jobtion/pkg/health"
	"jobtion/pkg/repository/memory"
	"jobtion/pkg/resume"
	"jobtion/pkg/state"
	"jobtion/pkg/state/memorystore"
	"jobtion/pkg/tailor"
	"jobtion/pkg/tracker"
	"jobtion/pkg/vacancy"
)

type fakeParser struct {
	doc resume.Document
	err error
}

func (f *fakeParser) Parse(_ context.Context, _ string, _ []byte) (resume.Document, error) {
	return f.doc, f.err
}

type fakeExtractor struct {
	job vacancy.JobPosting
	err error
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (vacancy.JobPosting, error) {
	return f.job, f.err
}

type fakeTailor struct {
	res tailor.Result
	err error
}

func (f *fakeTailor) Tailor(_ context.Context, _ tailor.Input) (tailor.Result, error) {
	return f.res, f.err
}

type testEnv struct {
	parser    *fakeParser
	extractor *fakeExtractor
	tailor    *fakeTailor
}

func newApp(env testEnv) *fiber.App {
	app := fiber.New()
	api.Register(app,
		handlers.NewHealthHandler(health.NewService()),
		handlers.NewResumeHandler(env.parser, 15),
		handlers.NewExtractHandler(env.extractor),
		handlers.NewTailorHandler(env.tailor),
		handlers.NewJobsHandler(tracker.NewService(memory.NewJobRepository())),
		handlers.NewStateHandler(state.NewService(memorystore.New())),
	)
	return app
}

func defaultEnv() testEnv {
	return testEnv{parser: &fakeParser{}, extractor: &fakeExtractor{}, tailor: &fakeTailor{}}
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, b
}

func errMessage(t *testing.T, body []byte) string {
	t.Helper()
	var er struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &er); err != nil {
		t.Fatalf("error body is not JSON: %s", body)
	}
	return er.Error
}

func TestHealthAndReady(t *testing.T) {
	app := newApp(defaultEnv())

	resp, _ := doJSON(t, app, http.MethodGet, "/api/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, http.MethodGet, "/api/ready", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("ready status = %d, want 200", resp.StatusCode)
	}
}

func TestParseResume_NoFile(t *testing.T) {
	app := newApp(defaultEnv())

	resp, body := doJSON(t, app, http.MethodPost, "/api/parse-resume", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if errMessage(t, body) != "no file provided" {
		t.Errorf("error = %q", errMessage(t, body))
	}
}

func TestParseResume_Upload(t *testing.T) {
	env := defaultEnv()
	env.parser.doc = resume.Document{Profile: resume.Profile{Name: "John Doe"}}
	app := newApp(env)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "resume.pdf")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("%PDF-1.4 fake"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/parse-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body %s", resp.StatusCode, b)
	}
	var doc resume.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Profile.Name != "John Doe" {
		t.Errorf("name = %q, want John Doe", doc.Profile.Name)
	}
}

func TestParseResume_EmptyExtractionIs400(t *testing.T) {
	env := defaultEnv()
	env.parser.err = fault.New(fault.ExtractionEmpty, "could not extract text from PDF")
	app := newApp(env)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "scan.pdf")
	fw.Write([]byte("%PDF-"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/parse-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if errMessage(t, b) != "could not extract text from PDF" {
		t.Errorf("error = %q", errMessage(t, b))
	}
}

func TestParseResume_PipelineFaultIs500(t *testing.T) {
	env := defaultEnv()
	env.parser.err = fault.New(fault.SynthesisUnavailable, "GROQ_API_KEY not configured")
	app := newApp(env)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "resume.pdf")
	fw.Write([]byte("%PDF-"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/parse-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}

func TestExtract_MissingURL(t *testing.T) {
	app := newApp(defaultEnv())

	resp, body := doJSON(t, app, http.MethodPost, "/api/extract", `{"url": "  "}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if errMessage(t, body) != "URL is required" {
		t.Errorf("error = %q", errMessage(t, body))
	}
}

func TestExtract_FetchFailureIs500WithSuggestion(t *testing.T) {
	env := defaultEnv()
	env.extractor.err = fault.New(fault.UpstreamFetchFailure,
		"could not fetch job posting - try pasting the job description directly")
	app := newApp(env)

	resp, body := doJSON(t, app, http.MethodPost, "/api/extract", `{"url": "https://example.com/job"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if !strings.Contains(errMessage(t, body), "try pasting the job description directly") {
		t.Errorf("error = %q", errMessage(t, body))
	}
}

func TestTailor_Validation(t *testing.T) {
	app := newApp(defaultEnv())

	resp, body := doJSON(t, app, http.MethodPost, "/api/tailor-resume", `{"jobUrl": "https://example.com"}`)
	if resp.StatusCode != http.StatusBadRequest || errMessage(t, body) != "resume data is required" {
		t.Errorf("missing resume: status=%d error=%q", resp.StatusCode, errMessage(t, body))
	}

	resp, body = doJSON(t, app, http.MethodPost, "/api/tailor-resume", `{"resume": {"profile": {"name": "x"}}}`)
	if resp.StatusCode != http.StatusBadRequest || errMessage(t, body) != "job URL or job details are required" {
		t.Errorf("missing job: status=%d error=%q", resp.StatusCode, errMessage(t, body))
	}
}

func TestJobs_CRUD(t *testing.T) {
	app := newApp(defaultEnv())

	resp, body := doJSON(t, app, http.MethodPost, "/api/jobs/", `{"title": "Go Engineer", "company": "Acme"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.StatusCode, body)
	}
	var rec tracker.JobRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Status != tracker.StatusSaved {
		t.Errorf("status = %q, want saved", rec.Status)
	}

	resp, body = doJSON(t, app, http.MethodPatch, "/api/jobs/"+rec.ID.String()+"/status", `{"status": "applied"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, http.MethodPatch, "/api/jobs/"+rec.ID.String()+"/status", `{"status": "hired"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown status: status = %d, body %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/jobs/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var recs []tracker.JobRecord
	if err := json.Unmarshal(body, &recs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(recs) != 1 || recs[0].Status != tracker.StatusApplied {
		t.Errorf("list = %+v", recs)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/jobs/"+rec.ID.String(), "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/jobs/"+rec.ID.String(), "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestJobs_BadUUID(t *testing.T) {
	app := newApp(defaultEnv())

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/jobs/not-a-uuid", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStoredResume_Lifecycle(t *testing.T) {
	app := newApp(defaultEnv())

	resp, _ := doJSON(t, app, http.MethodGet, "/api/resume", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("empty get status = %d, want 404", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPut, "/api/resume", `{"profile": {"name": "John Doe"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d", resp.StatusCode)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/resume", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	var doc resume.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Profile.Name != "John Doe" {
		t.Errorf("name = %q", doc.Profile.Name)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/resume", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
}

func TestVersions_NameRequired(t *testing.T) {
	app := newApp(defaultEnv())

	resp, body := doJSON(t, app, http.MethodPost, "/api/versions/", `{"name": " ", "resume": {}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if errMessage(t, body) != "version name is required" {
		t.Errorf("error = %q", errMessage(t, body))
	}
}

func TestVersions_SaveAndList(t *testing.T) {
	app := newApp(defaultEnv())

	resp, body := doJSON(t, app, http.MethodPost, "/api/versions/",
		`{"name": "baseline", "resume": {"profile": {"name": "John Doe"}}}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save status = %d, body %s", resp.StatusCode, body)
	}
	var v state.SavedVersion
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("decode: %v", err)
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/versions/"+v.ID.String(), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, body %s", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/versions/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var metas []state.VersionMeta
	if err := json.Unmarshal(body, &metas); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(metas) != 1 || metas[0].Name != "baseline" {
		t.Errorf("list = %+v", metas)
	}
}
