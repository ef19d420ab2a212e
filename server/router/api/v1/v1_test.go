package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/speaknote/remind/internal/profile"
	"github.com/speaknote/remind/plugin/extract"
	"github.com/speaknote/remind/plugin/flexdate"
	"github.com/speaknote/remind/plugin/mail"
	"github.com/speaknote/remind/plugin/nlp"
	"github.com/speaknote/remind/plugin/speech"
	storetest "github.com/speaknote/remind/store/test"
)

var testNow = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

type testHarness struct {
	service *APIV1Service
	echo    *echo.Echo
	mailer  *mail.MockSender
}

func newTestHarness(t *testing.T) *testHarness {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)

	p := &profile.Profile{
		Mode:     "dev",
		Driver:   "sqlite",
		Secret:   "test-secret",
		Timezone: "UTC",
	}

	analyzer := &nlp.MockAnalyzer{
		Result: &nlp.Analysis{
			Tokens: []nlp.Token{
				{Text: "call", Tag: "VB"},
				{Text: "john", Tag: "NNP"},
				{Text: "tomorrow", Tag: "NN"},
				{Text: "at", Tag: "IN"},
				{Text: "5pm", Tag: "CD"},
			},
			Entities: []nlp.Entity{{Text: "john", Label: nlp.LabelPerson}},
		},
	}
	extractor := extract.New(analyzer, flexdate.NewService(),
		extract.WithFallbackZone(time.UTC),
		extract.WithNow(func() time.Time { return testNow }))

	mailer := &mail.MockSender{}
	service := NewAPIV1Service(p, ts,
		WithExtractor(extractor),
		WithSpeech(&speech.MockRecognizer{Result: &speech.Transcript{
			Text:       "call john tomorrow at 5pm",
			Confidence: 0.92,
		}}),
		WithMailer(mailer),
		WithNow(func() time.Time { return testNow }),
	)

	e := echo.New()
	service.RegisterRoutes(e)

	return &testHarness{service: service, echo: e, mailer: mailer}
}

func (h *testHarness) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.echo.ServeHTTP(rec, req)
	return rec
}

func (h *testHarness) multipart(t *testing.T, path, token, field, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.echo.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin creates an account and returns a valid access token.
func (h *testHarness) registerAndLogin(t *testing.T, email string) string {
	rec := h.request(t, http.MethodPost, "/api/v1/auth/register", "", &RegisterRequest{
		Email:    email,
		Password: "password123",
		FullName: "Test User",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.request(t, http.MethodPost, "/api/v1/auth/login", "", &LoginRequest{
		Email:    email,
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	require.Equal(t, "bearer", token.TokenType)
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
