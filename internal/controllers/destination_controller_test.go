package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/internal/services"
	"travel_planner/internal/validation"
)

func multipartRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte{0xff}, 4096))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/destinations", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func openFDs(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("no /proc/self/fd on this platform")
	}
	return len(entries)
}

func TestReadFormClosesUploadOnFieldErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctl := &DestinationController{}
	before := openFDs(t)

	for i := 0; i < 5; i++ {
		c, engine := gin.CreateTestContext(httptest.NewRecorder())
		// Zero memory forces the upload into a temp file, so an unclosed
		// handle shows up as an open descriptor.
		engine.MaxMultipartMemory = 0
		c.Request = multipartRequest(t, map[string]string{"name": "Oslo", "arrival_date": "soon"})

		in, err := ctl.readForm(c)
		assert.Nil(t, in)
		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.Fields(), "arrival_date")

		require.NoError(t, c.Request.MultipartForm.RemoveAll())
	}

	assert.Equal(t, before, openFDs(t))
}

func TestReadFormKeepsUploadOpenOnSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = multipartRequest(t, map[string]string{"name": "Oslo", "arrival_date": "2024-05-01"})

	in, err := (&DestinationController{}).readForm(c)
	require.NoError(t, err)
	require.NotNil(t, in.Image)
	assert.Equal(t, "photo.jpg", in.Image.Filename)
	closeUpload(in)
}

func TestCloseUploadWithoutImage(t *testing.T) {
	assert.NotPanics(t, func() { closeUpload(&services.DestinationInput{}) })
}
