package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"travel_planner/internal/geo"
	"travel_planner/internal/media"
	"travel_planner/internal/models"
	"travel_planner/internal/services"
	"travel_planner/internal/validation"
)

type DestinationController struct {
	svc    *services.DestinationService
	images *media.Images
}

func NewDestinationController(svc *services.DestinationService) *DestinationController {
	return &DestinationController{svc: svc, images: svc.Images()}
}

type destinationResponse struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	City           string          `json:"city"`
	Country        string          `json:"country"`
	FullLocation   string          `json:"full_location"`
	TripID         *uint           `json:"trip_id"`
	ArrivalDate    string          `json:"arrival_date,omitempty"`
	DepartureDate  string          `json:"departure_date,omitempty"`
	DurationDays   *int            `json:"duration_days"`
	Longitude      *float64        `json:"longitude"`
	Latitude       *float64        `json:"latitude"`
	HasCoordinates bool            `json:"has_coordinates"`
	Geometry       *gjson.Geometry `json:"geometry,omitempty"`
	Image          string          `json:"image,omitempty"`
	Description    string          `json:"description"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Warnings       []string        `json:"warnings,omitempty"`
}

func (ctl *DestinationController) render(d models.Destination) destinationResponse {
	resp := destinationResponse{
		ID:             d.ID,
		Name:           d.Name,
		Slug:           d.Slug,
		City:           d.City,
		Country:        d.Country,
		FullLocation:   d.FullLocation(),
		TripID:         d.TripID,
		ArrivalDate:    models.FormatDate(d.ArrivalDate),
		DepartureDate:  models.FormatDate(d.DepartureDate),
		DurationDays:   d.DurationDays(),
		Longitude:      d.Longitude,
		Latitude:       d.Latitude,
		HasCoordinates: d.HasCoordinates(),
		Image:          ctl.images.URL(d.ImagePath),
		Description:    d.Description,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	// Geometry is decorative; a failure leaves it out.
	if g, err := geo.DestinationGeometry(d); err == nil {
		resp.Geometry = g
	}
	return resp
}

// List handles GET /destinations?search=&order_by=&direction=&page=
func (ctl *DestinationController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	desc := strings.EqualFold(c.Query("direction"), "desc")

	result, err := ctl.svc.List(c.Request.Context(), c.Query("search"), c.Query("order_by"), desc, page)
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]destinationResponse, 0, len(result.Items))
	for _, d := range result.Items {
		items = append(items, ctl.render(d))
	}
	c.JSON(http.StatusOK, gin.H{
		"results":     items,
		"count":       result.Total,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages(),
	})
}

func (ctl *DestinationController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	d, err := ctl.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctl.render(*d))
}

func (ctl *DestinationController) GetBySlug(c *gin.Context) {
	d, err := ctl.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ctl.render(*d))
}

func (ctl *DestinationController) GeoJSON(c *gin.Context) {
	list, err := ctl.svc.ListGeo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, geo.Destinations(list))
}

func (ctl *DestinationController) Create(c *gin.Context) {
	in, err := ctl.readForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeUpload(in)
	res, err := ctl.svc.Create(c.Request.Context(), *in)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := ctl.render(*res.Destination)
	resp.Warnings = res.Warnings
	c.JSON(http.StatusCreated, resp)
}

func (ctl *DestinationController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	in, err := ctl.readForm(c)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closeUpload(in)
	res, err := ctl.svc.Update(c.Request.Context(), id, *in)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := ctl.render(*res.Destination)
	resp.Warnings = res.Warnings
	c.JSON(http.StatusOK, resp)
}

func (ctl *DestinationController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// readForm parses a multipart or urlencoded destination form. Coordinates
// come either as longitude/latitude fields or as a GeoJSON point in
// "location".
func (ctl *DestinationController) readForm(c *gin.Context) (*services.DestinationInput, error) {
	var errs validation.Errors
	in := &services.DestinationInput{
		Name:          c.PostForm("name"),
		City:          c.PostForm("city"),
		Country:       c.PostForm("country"),
		Slug:          c.PostForm("slug"),
		Description:   c.PostForm("description"),
		TripID:        parseUint("trip_id", c.PostForm("trip_id"), &errs),
		ArrivalDate:   parseDate("arrival_date", c.PostForm("arrival_date"), &errs),
		DepartureDate: parseDate("departure_date", c.PostForm("departure_date"), &errs),
		Longitude:     parseFloat("longitude", c.PostForm("longitude"), &errs),
		Latitude:      parseFloat("latitude", c.PostForm("latitude"), &errs),
	}
	in.ClearImage, _ = strconv.ParseBool(c.PostForm("clear_image"))

	if raw := strings.TrimSpace(c.PostForm("location")); raw != "" {
		lon, lat, err := geo.ParsePoint(raw)
		if err != nil {
			errs.Add("location", "enter a GeoJSON point")
		} else {
			in.Longitude, in.Latitude = &lon, &lat
		}
	}

	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		in.Image = &services.Upload{Filename: fh.Filename, Content: f}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		errs.Add("image", "could not read upload")
	}

	if len(errs) > 0 {
		closeUpload(in)
		return nil, errs
	}
	return in, nil
}

func closeUpload(in *services.DestinationInput) {
	if in.Image == nil {
		return
	}
	if cl, ok := in.Image.Content.(io.Closer); ok {
		cl.Close()
	}
}
