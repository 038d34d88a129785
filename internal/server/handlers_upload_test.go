package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, uploadType, entityID, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)

	require.NoError(t, writer.WriteField("uploadType", uploadType))
	if entityID != "" {
		require.NoError(t, writer.WriteField("entityId", entityID))
	}

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return buf, writer.FormDataContentType()
}

func TestUpload(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "user-1", "marie")

	body, contentType := multipartUpload(t, "message", "channels:general", "cat.png", "pretend-png")

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		URL string `json:"url"`
	}
	decodeBody(t, rec, &resp)
	require.True(t, strings.HasPrefix(resp.URL, "https://cdn.test/messages/general/"))
	require.True(t, strings.HasSuffix(resp.URL, "_cat.png"))
	require.Len(t, env.uploads.keys, 1)
}

func TestUploadRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "user-1", "marie")

	body, contentType := multipartUpload(t, "malware", "", "x.bin", "nope")

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, env.uploads.keys)
}

func TestUploadRequiresFile(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "user-1", "marie")

	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)
	require.NoError(t, writer.WriteField("uploadType", "server"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.AddCookie(cookie)

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
