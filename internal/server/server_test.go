// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-toolkit/internal/httputil"
	"github.com/pdiddy/pdf-toolkit/internal/imaging"
	"github.com/pdiddy/pdf-toolkit/internal/logging"
	"github.com/pdiddy/pdf-toolkit/internal/pdfio"
	"github.com/pdiddy/pdf-toolkit/internal/pdftest"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

func newTestServer(t *testing.T, cfg types.ServerConfig) *Server {
	t.Helper()
	logger := logging.New(types.LogConfig{Level: "error", Format: "text"}, io.Discard)
	s, err := New(cfg, logger)
	require.NoError(t, err)
	return s
}

func defaultServer(t *testing.T) *Server {
	return newTestServer(t, types.DefaultConfig().Server)
}

// formPart is one multipart field; Data set means a file part.
type formPart struct {
	field    string
	value    string
	filename string
	data     []byte
}

func file(field, name string, data []byte) formPart {
	return formPart{field: field, filename: name, data: data}
}

func value(field, v string) formPart {
	return formPart{field: field, value: v}
}

func post(t *testing.T, s *Server, path string, parts ...formPart) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, p := range parts {
		if p.filename != "" {
			fw, err := mw.CreateFormFile(p.field, p.filename)
			require.NoError(t, err)
			_, err = fw.Write(p.data)
			require.NoError(t, err)
			continue
		}
		require.NoError(t, mw.WriteField(p.field, p.value))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func downloadName(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	_, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	return params["filename"]
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorBody {
	t.Helper()
	var body httputil.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestIndex(t *testing.T) {
	s := defaultServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	for _, action := range []string{"/api/merge", "/api/convert", "/api/split", "/api/rotate"} {
		assert.Contains(t, rec.Body.String(), `action="`+action+`"`)
	}
	assert.Contains(t, rec.Body.String(), "200 MB")
}

func TestUnknownPath(t *testing.T) {
	s := defaultServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	s := defaultServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	s := defaultServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/merge", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	assert.Equal(t, "error", errorBody(t, rec).Status)
}

func TestRequestID(t *testing.T) {
	s := defaultServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	s := defaultServer(t)
	h := s.withMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", errorBody(t, rec).Error)
}

func TestMerge(t *testing.T) {
	s := defaultServer(t)
	rec := post(t, s, "/api/merge",
		file("files", "a.pdf", pdftest.Document(t, 1)),
		file("files", "b.pdf", pdftest.Document(t, 2)),
		value("client", "Acme"),
	)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, types.ContentTypePDF, rec.Header().Get("Content-Type"))
	assert.Equal(t, "T1_Docs_Acme_2024.pdf", downloadName(t, rec))
	assert.Equal(t, "3", rec.Header().Get(HeaderPageCount))

	toc, err := pdfio.Outline(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []types.TOCEntry{{Title: "a.pdf", Page: 1}, {Title: "b.pdf", Page: 2}}, toc)
}

func TestMerge_OutputName(t *testing.T) {
	s := defaultServer(t)
	rec := post(t, s, "/api/merge",
		file("files", "a.pdf", pdftest.Document(t, 1)),
		value("output", "../../combined"),
	)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "combined.pdf", downloadName(t, rec))
}

func TestMerge_InvalidInput(t *testing.T) {
	s := defaultServer(t)
	rec := post(t, s, "/api/merge",
		file("files", "a.pdf", pdftest.Document(t, 1)),
		file("files", "notes.txt", []byte("plain text")),
	)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := errorBody(t, rec)
	assert.Equal(t, string(types.KindInvalidInput), body.Kind)
	assert.Contains(t, body.Error, "notes.txt")
}

func TestMerge_NoFiles(t *testing.T) {
	s := defaultServer(t)
	rec := post(t, s, "/api/merge", value("client", "Acme"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMerge_NotMultipart(t *testing.T) {
	s := defaultServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/merge", strings.NewReader(`{"files":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUploadTooLarge(t *testing.T) {
	cfg := types.DefaultConfig().Server
	cfg.MaxUploadBytes = 1024
	s := newTestServer(t, cfg)

	rec := post(t, s, "/api/merge", file("files", "big.pdf", bytes.Repeat([]byte("x"), 8192)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "upload too large", errorBody(t, rec).Error)
}

func TestConvert(t *testing.T) {
	s := defaultServer(t)
	rec := post(t, s, "/api/convert",
		file("files", "scan.png", pdftest.PNG(t, 40, 30, color.RGBA{R: 200, A: 255})),
		file("files", "photo.jpg", pdftest.JPEG(t, 30, 40, color.Gray{Y: 90})),
	)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "scan.pdf", downloadName(t, rec))

	sizes, err := pdfio.PageSizes(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.InDelta(t, 612, sizes[0].Width, 0.5)
	assert.InDelta(t, 792, sizes[0].Height, 0.5)
}

func TestConvert_ImageOverPixelLimit(t *testing.T) {
	t.Cleanup(func() { imaging.SetMaxPixels(imaging.DefaultMaxPixels) })
	cfg := types.DefaultConfig().Server
	cfg.MaxImagePixels = 100
	s := newTestServer(t, cfg)

	rec := post(t, s, "/api/convert", file("files", "scan.png", pdftest.PNG(t, 40, 30, color.Black)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := errorBody(t, rec)
	assert.Equal(t, string(types.KindInvalidInput), body.Kind)
	assert.Contains(t, body.Error, "scan.png")
}

func TestConvert_RejectsPDF(t *testing.T) {
	s := defaultServer(t)
	rec := post(t, s, "/api/convert", file("files", "doc.pdf", pdftest.Document(t, 1)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSplit_PlanToZip(t *testing.T) {
	s := defaultServer(t)
	rec := post(t, s, "/api/split",
		file("file", "doc.pdf", pdftest.Document(t, 10)),
		value("plan", "1-3: Part1.pdf\nnot a plan line\n7: Part2"),
	)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, types.ContentTypeZIP, rec.Header().Get("Content-Type"))
	assert.Equal(t, "split_pdfs.zip", downloadName(t, rec))
	assert.Equal(t, "2", rec.Header().Get(HeaderOutputCount))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "Part1.pdf", zr.File[0].Name)
	assert.Equal(t, "Part2.pdf", zr.File[1].Name)
}

func TestSplit_RangesSingleOutput(t *testing.T) {
	s := defaultServer(t)
	rec := post(t, s, "/api/split",
		file("file", "doc.pdf", pdftest.Document(t, 5)),
		value("ranges", "2-4"),
		value("names", "middle.pdf"),
	)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, types.ContentTypePDF, rec.Header().Get("Content-Type"))
	assert.Equal(t, "middle.pdf", downloadName(t, rec))

	n, err := pdfio.PageCount("middle.pdf", rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSplit_Errors(t *testing.T) {
	s := defaultServer(t)
	doc := pdftest.Document(t, 5)
	tests := []struct {
		name   string
		parts  []formPart
		status int
		kind   types.ErrorKind
	}{
		{"malformed", []formPart{file("file", "doc.pdf", doc), value("ranges", "3-1")}, http.StatusBadRequest, types.KindMalformedRange},
		{"no ranges", []formPart{file("file", "doc.pdf", doc)}, http.StatusBadRequest, types.KindMalformedRange},
		{"out of range", []formPart{file("file", "doc.pdf", doc), value("plan", "4-9: tail.pdf")}, http.StatusUnprocessableEntity, types.KindOutOfRange},
		{"not a pdf", []formPart{file("file", "doc.pdf", []byte("nope")), value("ranges", "1")}, http.StatusUnprocessableEntity, types.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, "/api/split", tt.parts...)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, string(tt.kind), errorBody(t, rec).Kind)
		})
	}
}

func TestRotate(t *testing.T) {
	s := defaultServer(t)
	rec := post(t, s, "/api/rotate",
		file("file", "scan.pdf", pdftest.Document(t, 3)),
		value("degrees", "90"),
		value("direction", "left"),
	)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "scan_rotated.pdf", downloadName(t, rec))
	assert.Equal(t, "3", rec.Header().Get(HeaderRotatedPages))

	rots, err := pdfio.Rotations("scan_rotated.pdf", rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []int{270, 270, 270}, rots)
}

func TestRotate_Errors(t *testing.T) {
	s := defaultServer(t)
	doc := pdftest.Document(t, 1)
	tests := []struct {
		name      string
		degrees   string
		direction string
	}{
		{"not a number", "ninety", "cw"},
		{"odd angle", "45", "cw"},
		{"bad direction", "90", "up"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, "/api/rotate",
				file("file", "doc.pdf", doc),
				value("degrees", tt.degrees),
				value("direction", tt.direction),
			)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, string(types.KindInvalidInput), errorBody(t, rec).Kind)
		})
	}
}

func TestServeAndShutdown(t *testing.T) {
	s := defaultServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	require.NoError(t, <-done)
}
