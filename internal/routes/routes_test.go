package routes_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/internal/app"
	"travel_planner/internal/media"
	"travel_planner/internal/middleware"
	"travel_planner/internal/repositories"
	"travel_planner/internal/routes"
)

type client struct {
	t      *testing.T
	engine *gin.Engine
	images *media.Images
}

func newClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetSecret("routes-test")
	images := media.NewImages(media.NewStore(memfs.New()), media.DefaultOptions())
	svcs := app.NewServices(app.MemoryRepositories(repositories.NewMemory()), images)
	return &client{t: t, engine: routes.SetupRouter(svcs.Controllers(), routes.Options{}), images: images}
}

func (c *client) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	return w
}

func (c *client) json(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, token)
}

// form posts a multipart form, attaching a w×h JPEG as "image" when w > 0.
func (c *client) form(method, path, token string, fields map[string]string, w, h int) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(c.t, mw.WriteField(k, v))
	}
	if w > 0 {
		part, err := mw.CreateFormFile("image", "photo.jpg")
		require.NoError(c.t, err)
		require.NoError(c.t, jpeg.Encode(part, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	}
	require.NoError(c.t, mw.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, token)
}

func (c *client) signup(username string) string {
	w := c.json(http.MethodPost, "/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "long enough",
	})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	c := newClient(t)
	w := c.do(httptest.NewRequest(http.MethodGet, "/healthz", nil), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsExposeSlugCounters(t *testing.T) {
	c := newClient(t)
	token := c.signup("ana")
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusCreated, c.form(http.MethodPost, "/destinations", token, map[string]string{"name": "Rome"}, 0, 0).Code)
	}

	w := c.do(httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "travel_planner_slug_collisions_total")
}

func TestDestinationLifecycle(t *testing.T) {
	c := newClient(t)
	token := c.signup("ana")

	w := c.form(http.MethodPost, "/destinations", token, map[string]string{
		"name":           "Paris",
		"city":           "Paris",
		"country":        "France",
		"arrival_date":   "2024-05-01",
		"departure_date": "2024-05-04",
		"location":       `{"type":"Point","coordinates":[2.3522,48.8566]}`,
	}, 1600, 900)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "paris", created["slug"])
	assert.Equal(t, "Paris, France", created["full_location"])
	assert.Equal(t, "2024-05-01", created["arrival_date"])
	assert.EqualValues(t, 3, created["duration_days"])
	assert.Equal(t, true, created["has_coordinates"])
	image := created["image"].(string)
	assert.True(t, strings.HasPrefix(image, "/media/destinations/"))

	width, height, err := c.images.Store().Dimensions(strings.TrimPrefix(image, "/media/"))
	require.NoError(t, err)
	assert.Equal(t, []int{800, 450}, []int{width, height})

	w = c.form(http.MethodPost, "/destinations", token, map[string]string{"name": "Paris"}, 0, 0)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "paris-1", decode(t, w)["slug"])

	w = c.do(httptest.NewRequest(http.MethodGet, "/destinations/slug/paris", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	id := decode(t, w)["id"].(float64)

	w = c.do(httptest.NewRequest(http.MethodGet, "/destinations?search=par&order_by=name", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["count"])

	w = c.do(httptest.NewRequest(http.MethodGet, "/destinations/geojson", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["features"], 1)

	w = c.do(httptest.NewRequest(http.MethodDelete, "/destinations/"+jsonID(id), nil), token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	files, err := c.images.Store().List(media.Dir)
	require.NoError(t, err)
	assert.Empty(t, files)

	w = c.do(httptest.NewRequest(http.MethodGet, "/destinations/"+jsonID(id), nil), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDestinationValidationErrors(t *testing.T) {
	c := newClient(t)
	token := c.signup("ana")

	w := c.form(http.MethodPost, "/destinations", token, map[string]string{
		"name":           "Backwards",
		"arrival_date":   "2024-05-04",
		"departure_date": "2024-05-01",
		"longitude":      "10",
	}, 0, 0)
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]interface{})
	assert.Contains(t, fields, "departure_date")
	assert.Contains(t, fields, "latitude")

	w = c.form(http.MethodPost, "/destinations", token, map[string]string{"name": "X", "arrival_date": "May 1st"}, 0, 0)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "arrival_date")
}

func TestDestinationWritesNeedAuth(t *testing.T) {
	c := newClient(t)
	w := c.form(http.MethodPost, "/destinations", "", map[string]string{"name": "Paris"}, 0, 0)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTripsAreScopedToOwner(t *testing.T) {
	c := newClient(t)
	ana := c.signup("ana")
	bo := c.signup("bo")

	w := c.json(http.MethodPost, "/trips", ana, map[string]interface{}{
		"name":       "Summer",
		"start_date": "2024-07-01",
		"end_date":   "2024-07-10",
		"budget":     1200,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	trip := decode(t, w)
	assert.Equal(t, "draft", trip["status"])
	path := "/trips/" + jsonID(trip["id"].(float64))

	assert.Equal(t, http.StatusOK, c.do(httptest.NewRequest(http.MethodGet, path, nil), ana).Code)
	assert.Equal(t, http.StatusForbidden, c.do(httptest.NewRequest(http.MethodGet, path, nil), bo).Code)

	w = c.json(http.MethodPost, "/trips", ana, map[string]interface{}{"status": "archived"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "status")

	w = c.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), ana)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode(t, w)
	assert.EqualValues(t, 1, dash["total_trips"])
	assert.EqualValues(t, 9, dash["average_duration"])
}

func TestItineraryScheduling(t *testing.T) {
	c := newClient(t)
	token := c.signup("ana")

	id := func(w *httptest.ResponseRecorder) string {
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return jsonID(decode(t, w)["id"].(float64))
	}
	country := id(c.json(http.MethodPost, "/catalog/countries", token, map[string]string{"name": "Japan", "code": "JP", "currency": "JPY"}))
	kyoto := id(c.json(http.MethodPost, "/catalog/cities", token, map[string]interface{}{"name": "Kyoto", "country_id": atoi(country)}))
	dest := id(c.form(http.MethodPost, "/destinations", token, map[string]string{"name": "Kyoto"}, 0, 0))
	temple := id(c.json(http.MethodPost, "/catalog/activities", token, map[string]interface{}{
		"name": "Kinkaku-ji", "category": "attraction", "city_id": atoi(kyoto), "destination_id": atoi(dest),
	}))

	it := id(c.json(http.MethodPost, "/itineraries", token, map[string]interface{}{
		"title": "Kansai", "start_date": "2024-04-01", "end_date": "2024-04-05", "cities": []int{atoi(kyoto)},
	}))

	entry := map[string]interface{}{"activity_id": atoi(temple), "day_number": 1, "start_time": "09:00", "end_time": "11:00"}
	w := c.json(http.MethodPost, "/itineraries/"+it+"/activities", token, entry)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = c.json(http.MethodPost, "/itineraries/"+it+"/activities", token, entry)
	assert.Equal(t, http.StatusConflict, w.Code)

	stop := map[string]interface{}{"city_id": atoi(kyoto), "arrival_date": "2024-04-01", "departure_date": "2024-04-03"}
	require.Equal(t, http.StatusCreated, c.json(http.MethodPost, "/itineraries/"+it+"/cities", token, stop).Code)
	stop["arrival_date"], stop["departure_date"] = "2024-04-03", "2024-04-05"
	w = c.json(http.MethodPost, "/itineraries/"+it+"/cities", token, stop)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "arrival_date")

	w = c.do(httptest.NewRequest(http.MethodGet, "/itineraries/"+it, nil), token)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.EqualValues(t, 5, got["total_days"])
	assert.Len(t, got["activities"], 1)
	assert.Len(t, got["cities"], 2)

	w = c.do(httptest.NewRequest(http.MethodGet, "/cities/autocomplete?q=ky", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kyoto")
}
