package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// BindJSON decodes the body into out and answers 400/413 itself on failure.
// Schema rules are not applied here; request types carry `validate` tags
// checked by the domain package.
func BindJSON(ctx *gin.Context, out any) bool {
	err := ctx.ShouldBindJSON(out)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		RespondError(ctx, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body is too large", nil)
		return false
	}

	RespondBadRequest(ctx, "Invalid request body", describeBindError(err, out))

	return false
}

func describeBindError(err error, out any) gin.H {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.Is(err, io.EOF):
		return gin.H{"json": "empty_body"}

	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return gin.H{"json": "invalid_json_syntax"}

	case errors.As(err, &typeErr) && typeErr.Field == "":
		// the top-level value itself was not an object
		return gin.H{"json": "invalid_json_shape", "reason": "body must be a JSON object"}

	case errors.As(err, &typeErr):
		field := jsonFieldName(out, typeErr.Field)

		return gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []user.FieldError{{
				Field:   field,
				Rule:    "type",
				Message: "must be of type " + jsonKind(typeErr.Type),
			}},
		}
	}

	return gin.H{"reason": err.Error()}
}

// jsonFieldName maps the Go field encoding/json reports back to its json
// tag. User requests are flat, so only the first path element matters.
func jsonFieldName(out any, goField string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(goField), ".")

	t := reflect.TypeOf(out)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return name
	}

	sf, ok := t.FieldByName(name)
	if !ok {
		return name
	}

	tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return sf.Name
	}

	return tag
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}
