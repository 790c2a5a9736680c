package controllers

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"travel_planner/internal/middleware"
	"travel_planner/internal/models"
	"travel_planner/internal/repositories"
	"travel_planner/internal/services"
	"travel_planner/internal/validation"
)

func init() {
	// Report binding failures under the json/form key rather than the Go
	// field name.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.Split(f.Tag.Get(tag), ",")[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	}
}

// respondError maps service and repository errors onto status codes.
func respondError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verrs.Fields()})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrDuplicateActivity),
		errors.Is(err, repositories.ErrDuplicateUser),
		errors.Is(err, repositories.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindError turns a gin binding failure into field errors.
func bindError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return validation.Errors{{Field: "body", Message: err.Error()}}
	}
	var errs validation.Errors
	for _, fe := range ves {
		switch fe.Tag() {
		case "required":
			errs.Add(fe.Field(), "this field is required")
		case "email":
			errs.Add(fe.Field(), "enter a valid email address")
		case "oneof":
			errs.Add(fe.Field(), "must be one of: %s", fe.Param())
		case "max":
			errs.Add(fe.Field(), "must be at most %s characters", fe.Param())
		case "min":
			errs.Add(fe.Field(), "must be at least %s", fe.Param())
		default:
			errs.Add(fe.Field(), "failed the %q check", fe.Tag())
		}
	}
	return errs
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (uint, bool) {
	id, err := middleware.UserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return 0, false
	}
	return id, true
}

// parseDate reads an optional YYYY-MM-DD value.
func parseDate(field, v string, errs *validation.Errors) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	t, err := time.Parse(models.DateLayout, v)
	if err != nil {
		errs.Add(field, "enter a valid date (YYYY-MM-DD)")
		return nil
	}
	return &t
}

func parseFloat(field, v string, errs *validation.Errors) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		errs.Add(field, "enter a number")
		return nil
	}
	return &f
}

func parseUint(field, v string, errs *validation.Errors) *uint {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		errs.Add(field, "enter a whole number")
		return nil
	}
	u := uint(n)
	return &u
}
