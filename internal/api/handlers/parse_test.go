package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireboard-api/internal/api/routes"
	"hireboard-api/internal/auth"
	"hireboard-api/pkg/models"
)

// stubExtractor returns canned text instead of reading a real docx archive
type stubExtractor struct {
	text    string
	err     error
	lastArg string
}

func (s *stubExtractor) ExtractText(path string) (string, error) {
	s.lastArg = path
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

type stubDocuments struct {
	url     string
	err     error
	calls   int
	lastKey string
}

func (s *stubDocuments) UploadJobDocument(userID, documentID string, data []byte) (string, error) {
	s.calls++
	s.lastKey = userID + "/" + documentID
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func newParseServer(t *testing.T, sessions auth.SessionProvider, extractor *stubExtractor, documents *stubDocuments) *echo.Echo {
	t.Helper()

	cfg := testConfig(t)
	e := echo.New()
	deps := routes.Dependencies{
		Config:     cfg,
		Sessions:   sessions,
		AuthClient: auth.NewSupabaseClient(cfg),
		Records:    &memoryStore{},
		Extractor:  extractor,
	}
	if documents != nil {
		deps.Documents = documents
	}
	routes.SetupRoutes(e, deps)
	return e
}

func doUpload(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/parse-job-file", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	req.Header.Set(echo.HeaderAuthorization, "Bearer test-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestParseJobFile(t *testing.T) {
	extractor := &stubExtractor{text: "Job Title: Senior Backend Engineer\nCompany: Acme Corp\n\nWe build things."}
	e := newParseServer(t, &stubSessions{identity: &auth.Identity{ID: "user-x"}}, extractor, nil)

	rec := doUpload(e, "fake docx bytes")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ParsedJobDescription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Senior Backend Engineer", resp.Title)
	assert.Equal(t, "Acme Corp", resp.CompanyName)
	assert.Contains(t, resp.Description, "We build things.")
	assert.Empty(t, resp.DocumentURL)

	// The handler hands the extractor a temp file, which must be gone afterwards
	require.NotEmpty(t, extractor.lastArg)
	_, err := os.Stat(extractor.lastArg)
	assert.True(t, os.IsNotExist(err))
}

func TestParseJobFileConversionFailure(t *testing.T) {
	extractor := &stubExtractor{err: fmt.Errorf("not a zip archive")}
	e := newParseServer(t, &stubSessions{identity: &auth.Identity{ID: "user-x"}}, extractor, nil)

	rec := doUpload(e, "garbage")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "conversion_failed", resp.Error)
	assert.Equal(t, "Failed to extract text", resp.Message)

	// Temp file cleanup runs on the failure path too
	_, err := os.Stat(extractor.lastArg)
	assert.True(t, os.IsNotExist(err))
}

func TestParseJobFileUnauthenticated(t *testing.T) {
	extractor := &stubExtractor{text: "irrelevant"}
	e := newParseServer(t, &stubSessions{}, extractor, nil)

	rec := doUpload(e, "fake docx bytes")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, extractor.lastArg, "unauthenticated uploads must not be converted")
}

func TestParseJobFileStoresDocument(t *testing.T) {
	extractor := &stubExtractor{text: "Role: Data Analyst"}
	documents := &stubDocuments{url: "https://cdn.example.com/job-descriptions/user-x/doc.docx"}
	e := newParseServer(t, &stubSessions{identity: &auth.Identity{ID: "user-x"}}, extractor, documents)

	rec := doUpload(e, "fake docx bytes")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ParsedJobDescription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Data Analyst", resp.Title)
	assert.Equal(t, documents.url, resp.DocumentURL)
	assert.Equal(t, 1, documents.calls)
	assert.True(t, strings.HasPrefix(documents.lastKey, "user-x/"))
}

func TestParseJobFileStorageFailureIsNotFatal(t *testing.T) {
	extractor := &stubExtractor{text: "Role: Data Analyst"}
	documents := &stubDocuments{err: fmt.Errorf("bucket unavailable")}
	e := newParseServer(t, &stubSessions{identity: &auth.Identity{ID: "user-x"}}, extractor, documents)

	rec := doUpload(e, "fake docx bytes")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ParsedJobDescription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Data Analyst", resp.Title)
	assert.Empty(t, resp.DocumentURL)
}

func TestParseJobFileRejectsOversizedChunkedBody(t *testing.T) {
	cfg := testConfig(t)
	cfg.Uploads.MaxSize = 16

	extractor := &stubExtractor{text: "irrelevant"}
	e := echo.New()
	routes.SetupRoutes(e, routes.Dependencies{
		Config:     cfg,
		Sessions:   &stubSessions{identity: &auth.Identity{ID: "user-x"}},
		AuthClient: auth.NewSupabaseClient(cfg),
		Records:    &memoryStore{},
		Extractor:  extractor,
	})

	// io.MultiReader hides the length, so the request goes out chunked with
	// no Content-Length for the middleware to check
	body := io.MultiReader(strings.NewReader(strings.Repeat("x", 64)))
	req := httptest.NewRequest(http.MethodPost, "/parse-job-file", body)
	req.Header.Set(echo.HeaderAuthorization, "Bearer test-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, extractor.lastArg, "oversized uploads must not be converted")

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "request_too_large", resp.Error)
}

func TestParseJobFileAcceptsBodyAtSizeLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Uploads.MaxSize = 16

	extractor := &stubExtractor{text: "Role: Data Analyst"}
	e := echo.New()
	routes.SetupRoutes(e, routes.Dependencies{
		Config:     cfg,
		Sessions:   &stubSessions{identity: &auth.Identity{ID: "user-x"}},
		AuthClient: auth.NewSupabaseClient(cfg),
		Records:    &memoryStore{},
		Extractor:  extractor,
	})

	body := io.MultiReader(strings.NewReader(strings.Repeat("x", 16)))
	req := httptest.NewRequest(http.MethodPost, "/parse-job-file", body)
	req.Header.Set(echo.HeaderAuthorization, "Bearer test-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ParsedJobDescription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Data Analyst", resp.Title)
}

func TestParseJobFileDefaultsOnUnstructuredText(t *testing.T) {
	extractor := &stubExtractor{text: "we are hiring someone great.\nno labels anywhere here."}
	e := newParseServer(t, &stubSessions{identity: &auth.Identity{ID: "user-x"}}, extractor, nil)

	rec := doUpload(e, "fake docx bytes")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ParsedJobDescription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Untitled Position", resp.Title)
	assert.Equal(t, "", resp.CompanyName)
}
