package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	apperrors "landmark-catalog/internal/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CoordinatesPayload and LandmarkPayload use pointers so that a missing
// field can be told apart from its zero value.
type CoordinatesPayload struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lng *float64 `json:"lng" validate:"required"`
}

type LandmarkPayload struct {
	ID          *string             `json:"id" validate:"required"`
	Name        *string             `json:"name" validate:"required"`
	Description *string             `json:"description" validate:"required"`
	AddedAt     *string             `json:"addedAt" validate:"required"`
	Rating      *int                `json:"rating" validate:"required"`
	Location    *string             `json:"location" validate:"required"`
	Coordinates *CoordinatesPayload `json:"coordinates" validate:"required"`
	Photo       *string             `json:"photo" validate:"required"`
	IsChecked   *bool               `json:"isChecked" validate:"required"`
}

// rawLandmark holds each field undecoded so that every field can be
// converted, and reported, on its own.
type rawLandmark struct {
	ID          json.RawMessage `json:"id"`
	Name        json.RawMessage `json:"name"`
	Description json.RawMessage `json:"description"`
	AddedAt     json.RawMessage `json:"addedAt"`
	Rating      json.RawMessage `json:"rating"`
	Location    json.RawMessage `json:"location"`
	Coordinates json.RawMessage `json:"coordinates"`
	Photo       json.RawMessage `json:"photo"`
	IsChecked   json.RawMessage `json:"isChecked"`
}

type rawCoordinates struct {
	Lat json.RawMessage `json:"lat"`
	Lng json.RawMessage `json:"lng"`
}

// DecodeLandmarkPayload reads a landmark from r and checks that every field
// is present and has a usable value. Numbers and booleans are coerced from
// their usual textual forms: "5" and 5.0 are a valid rating, "51.5" a valid
// latitude, "true" or 1 a valid isChecked. All problems found are reported
// together in an *errors.ValidationError.
func DecodeLandmarkPayload(r io.Reader) (*LandmarkPayload, error) {
	verr := apperrors.NewValidationError()

	var raw rawLandmark
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			verr.Add([]string{"body"}, "field required", "missing")
		case errors.As(err, &typeErr):
			verr.Add([]string{"body"}, "Input should be a valid object", "model_attributes_type")
		default:
			verr.Add([]string{"body"}, "invalid JSON: "+err.Error(), "json_invalid")
		}
		return nil, verr
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		verr.Add([]string{"body"}, "invalid JSON: unexpected data after the top-level value", "json_invalid")
		return nil, verr
	}

	p := LandmarkPayload{
		ID:          decodeString(raw.ID, "id", verr),
		Name:        decodeString(raw.Name, "name", verr),
		Description: decodeString(raw.Description, "description", verr),
		AddedAt:     decodeString(raw.AddedAt, "addedAt", verr),
		Rating:      decodeInt(raw.Rating, "rating", verr),
		Location:    decodeString(raw.Location, "location", verr),
		Coordinates: decodeCoordinates(raw.Coordinates, verr),
		Photo:       decodeString(raw.Photo, "photo", verr),
		IsChecked:   decodeBool(raw.IsChecked, "isChecked", verr),
	}

	// Fields that failed to convert are nil and would also be reported as
	// missing; keep only the conversion error for them.
	if err := p.Validate(); err != nil {
		var fieldsErr *apperrors.ValidationError
		if !errors.As(err, &fieldsErr) {
			return nil, err
		}
		for _, f := range fieldsErr.Fields {
			if !hasLoc(verr, f.Loc) {
				verr.Fields = append(verr.Fields, f)
			}
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return &p, nil
}

// Validate reports every required field that is missing.
func (p *LandmarkPayload) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := apperrors.NewValidationError()
	for _, fe := range fieldErrs {
		// Namespace is "LandmarkPayload.coordinates.lat"; drop the type name.
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		msg, typ := "field required", "missing"
		if fe.Tag() != "required" {
			msg, typ = "failed on "+fe.Tag(), fe.Tag()
		}
		verr.Add(bodyLoc(path), msg, typ)
	}
	return verr
}

// ToLandmark converts a validated payload. It must only be called after
// Validate succeeded.
func (p *LandmarkPayload) ToLandmark() Landmark {
	return Landmark{
		ID:          *p.ID,
		Name:        *p.Name,
		Description: *p.Description,
		AddedAt:     *p.AddedAt,
		Rating:      *p.Rating,
		Location:    *p.Location,
		Coordinates: Coordinates{Lat: *p.Coordinates.Lat, Lng: *p.Coordinates.Lng},
		Photo:       *p.Photo,
		IsChecked:   *p.IsChecked,
	}
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// scalar decodes a JSON value keeping numbers as json.Number.
func scalar(raw json.RawMessage) interface{} {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// numericText returns the text of a JSON number or string.
func numericText(raw json.RawMessage) (string, bool) {
	switch v := scalar(raw).(type) {
	case json.Number:
		return v.String(), true
	case string:
		return strings.TrimSpace(v), true
	}
	return "", false
}

func decodeString(raw json.RawMessage, path string, verr *apperrors.ValidationError) *string {
	if isAbsent(raw) {
		return nil
	}
	s, ok := scalar(raw).(string)
	if !ok {
		verr.Add(bodyLoc(path), "Input should be a valid string", "string_type")
		return nil
	}
	return &s
}

func decodeInt(raw json.RawMessage, path string, verr *apperrors.ValidationError) *int {
	if isAbsent(raw) {
		return nil
	}
	if text, ok := numericText(raw); ok {
		if n, err := strconv.Atoi(text); err == nil {
			return &n
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) && math.Abs(f) < 1<<63 {
			if f != math.Trunc(f) {
				verr.Add(bodyLoc(path), "Input should be a valid integer, got a number with a fractional part", "int_from_float")
				return nil
			}
			n := int(f)
			return &n
		}
	}
	verr.Add(bodyLoc(path), "Input should be a valid integer", "int_parsing")
	return nil
}

func decodeFloat(raw json.RawMessage, path string, verr *apperrors.ValidationError) *float64 {
	if isAbsent(raw) {
		return nil
	}
	if text, ok := numericText(raw); ok {
		if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return &f
		}
	}
	verr.Add(bodyLoc(path), "Input should be a valid number", "float_parsing")
	return nil
}

func decodeBool(raw json.RawMessage, path string, verr *apperrors.ValidationError) *bool {
	if isAbsent(raw) {
		return nil
	}
	var b, ok bool
	switch v := scalar(raw).(type) {
	case bool:
		b, ok = v, true
	case json.Number:
		if f, err := v.Float64(); err == nil && (f == 0 || f == 1) {
			b, ok = f == 1, true
		}
	case string:
		switch strings.ToLower(v) {
		case "1", "true", "t", "yes", "y", "on":
			b, ok = true, true
		case "0", "false", "f", "no", "n", "off":
			b, ok = false, true
		}
	}
	if !ok {
		verr.Add(bodyLoc(path), "Input should be a valid boolean", "bool_parsing")
		return nil
	}
	return &b
}

func decodeCoordinates(raw json.RawMessage, verr *apperrors.ValidationError) *CoordinatesPayload {
	if isAbsent(raw) {
		return nil
	}
	var rc rawCoordinates
	if err := json.Unmarshal(raw, &rc); err != nil {
		verr.Add(bodyLoc("coordinates"), "Input should be a valid object", "model_type")
		return nil
	}
	return &CoordinatesPayload{
		Lat: decodeFloat(rc.Lat, "coordinates.lat", verr),
		Lng: decodeFloat(rc.Lng, "coordinates.lng", verr),
	}
}

func bodyLoc(path string) []string {
	return append([]string{"body"}, strings.Split(path, ".")...)
}

func hasLoc(verr *apperrors.ValidationError, loc []string) bool {
	for _, f := range verr.Fields {
		if strings.Join(f.Loc, ".") == strings.Join(loc, ".") {
			return true
		}
	}
	return false
}
