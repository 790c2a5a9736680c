package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/internal/config"
)

func TestSetupAppliesLevel(t *testing.T) {
	s := &config.Settings{LogFile: filepath.Join(t.TempDir(), "app.log"), LogLevel: "warn"}
	w := Setup(s)
	require.NotNil(t, w)
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	s.LogLevel = "chatty"
	Setup(s)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestAccessLogSkipsProbes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(AccessLog(&buf))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/destinations", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Zero(t, buf.Len())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/destinations", nil))
	assert.Contains(t, buf.String(), "/destinations")
}
