package handler_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
)

func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio420)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

type uploadFile struct {
	name string
	mime string
	data []byte
}

func multipartBody(t *testing.T, files []uploadFile, folder string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+f.name+`"`)
		header.Set("Content-Type", f.mime)
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if folder != "" {
		if err := mw.WriteField("folder", folder); err != nil {
			t.Fatalf("write folder field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

type uploadResponse struct {
	Message         string   `json:"message"`
	Files           []string `json:"files"`
	Paths           []string `json:"paths"`
	ConversionStats struct {
		TotalFiles            int  `json:"totalFiles"`
		ConvertedToAVIF       int  `json:"convertedToAVIF"`
		TotalCompressionRatio *int `json:"totalCompressionRatio"`
	} `json:"conversionStats"`
}

func TestHandleUpload_Batch(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	body, contentType := multipartBody(t, []uploadFile{
		{"one.jpg", "image/jpeg", testJPEG(t, 20, 20)},
		{"two.png", "image/png", testPNG(t, 20, 20)},
	}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/images/projects", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)

	w := app.do(t, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp uploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Files) != 2 || len(resp.Paths) != 2 {
		t.Fatalf("expected 2 files and paths, got %+v", resp)
	}
	for i, url := range resp.Files {
		if !strings.Contains(url, "/media/project-images/") {
			t.Fatalf("file %d has unexpected url %s", i, url)
		}
		if !strings.HasSuffix(resp.Paths[i], ".avif") {
			t.Fatalf("path %d should be avif, got %s", i, resp.Paths[i])
		}
	}
	if resp.ConversionStats.TotalFiles != 2 || resp.ConversionStats.ConvertedToAVIF != 2 {
		t.Fatalf("unexpected stats: %+v", resp.ConversionStats)
	}
	if resp.ConversionStats.TotalCompressionRatio == nil {
		t.Fatal("expected a compression ratio")
	}

	// The stored objects are servable straight back through /media.
	mediaReq := httptest.NewRequest(http.MethodGet,
		strings.TrimPrefix(resp.Files[0], "http://localhost:8080"), nil)
	mediaResp := app.do(t, mediaReq)
	if mediaResp.Code != http.StatusOK {
		t.Fatalf("GET stored object: expected 200, got %d", mediaResp.Code)
	}
}

func TestHandleUpload_RequiresAuth(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartBody(t, []uploadFile{
		{"one.jpg", "image/jpeg", testJPEG(t, 10, 10)},
	}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/images/projects", body)
	req.Header.Set("Content-Type", contentType)

	w := app.do(t, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestHandleUpload_UnknownKind(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	body, contentType := multipartBody(t, []uploadFile{
		{"one.jpg", "image/jpeg", testJPEG(t, 10, 10)},
	}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/images/banners", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)

	w := app.do(t, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown kind, got %d", w.Code)
	}
}

func TestHandleUpload_RejectsBadBatch(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	// Executable bytes behind an image name and type reject the batch,
	// including the valid file next to it.
	body, contentType := multipartBody(t, []uploadFile{
		{"good.jpg", "image/jpeg", testJPEG(t, 10, 10)},
		{"evil.jpg", "image/jpeg", []byte{'M', 'Z', 0x90, 0x00}},
	}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/images/projects", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)

	w := app.do(t, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if !strings.Contains(resp["error"], "evil.jpg") {
		t.Fatalf("error should name the offending file, got %q", resp["error"])
	}
}

func TestHandleUpload_EmptyBatch(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	body, contentType := multipartBody(t, nil, "unused")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/images/projects", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)

	w := app.do(t, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %d", w.Code)
	}
}

func TestHandleUpload_FolderPrefix(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	body, contentType := multipartBody(t, []uploadFile{
		{"a.png", "image/png", testPNG(t, 10, 10)},
	}, "gallery")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/images/projects", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)

	w := app.do(t, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp uploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Paths[0], "gallery/") {
		t.Fatalf("expected gallery/ prefix, got %s", resp.Paths[0])
	}
}

func TestHandleDelete(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	// Upload first so there is something to delete.
	body, contentType := multipartBody(t, []uploadFile{
		{"a.png", "image/png", testPNG(t, 10, 10)},
	}, "")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/images/projects", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	w := app.do(t, req)
	if w.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d", w.Code)
	}
	var uploaded uploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}

	payload, _ := json.Marshal(map[string]string{"imageUrl": uploaded.Files[0]})
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/images", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)

	w = app.do(t, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode delete response: %v", err)
	}
	if resp["deletedUrl"] != uploaded.Files[0] {
		t.Fatalf("expected deletedUrl %s, got %s", uploaded.Files[0], resp["deletedUrl"])
	}

	// The object is gone from the store.
	mediaReq := httptest.NewRequest(http.MethodGet,
		strings.TrimPrefix(uploaded.Files[0], "http://localhost:8080"), nil)
	if got := app.do(t, mediaReq); got.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", got.Code)
	}
}

func TestHandleDelete_UnrecoverableURL(t *testing.T) {
	app := newTestApp(t)
	cookie := app.setupAdmin(t)

	tests := []struct {
		name string
		body string
	}{
		{"external url", `{"imageUrl":"https://example.org/unrelated.png"}`},
		{"empty url", `{"imageUrl":""}`},
		{"invalid json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/admin/images", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.AddCookie(cookie)

			if w := app.do(t, req); w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}
