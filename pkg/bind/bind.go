// Package bind decodes request bodies into structs and validates them.
//
// JSON handles API bodies; Form handles the admin's url-encoded and
// multipart form submissions, mapping form fields onto struct fields by
// their json tag so one input struct serves both content types.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/veyralabs/veyra/config"
	"github.com/veyralabs/veyra/pkg/validate"
)

// formParseMemory is the in-memory budget for multipart parsing; larger
// uploads spill to temp files.
const formParseMemory = 8 << 20 // 8 MB

func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", "4194304"), 10, 64)
	if err != nil || n <= 0 {
		return 4 << 20
	}
	return n
}

// JSON decodes r.Body as JSON into dest and validates it.
// Returns (errs, nil) on validation failure and (nil, err) on malformed or
// oversized bodies.
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	errs := validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// Form populates dest from the request's form fields (multipart or
// url-encoded) and validates it. Field lookup uses the struct's json tag.
// Malformed numeric inputs surface as field-level validation errors rather
// than a hard failure, matching how form frameworks report them.
func Form(r *http.Request, dest interface{}) (map[string]string, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind: Form needs a struct pointer, got %T", dest)
	}
	rv = rv.Elem()
	rt := rv.Type()

	errs := make(map[string]string)

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		name := jsonFieldName(field)
		if name == "" || !r.Form.Has(name) {
			continue
		}
		raw := strings.TrimSpace(r.FormValue(name))

		if err := setField(rv.Field(i), raw); err != nil {
			errs[name] = fmt.Sprintf("The %s field must be a %s.", name, kindWord(field.Type))
		}
	}

	if len(errs) > 0 {
		return errs, nil
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

func parseForm(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(formParseMemory); err != nil {
			return fmt.Errorf("bind: parse multipart form: %w", err)
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("bind: parse form: %w", err)
	}
	return nil
}

func setField(v reflect.Value, raw string) error {
	switch v.Kind() {
	case reflect.Ptr:
		// An empty submission leaves the pointer nil so validation can tell
		// an absent field apart from a zero value.
		if raw == "" {
			return nil
		}
		elem := reflect.New(v.Type().Elem())
		if err := setField(elem.Elem(), raw); err != nil {
			return err
		}
		v.Set(elem)
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		switch strings.ToLower(raw) {
		case "1", "true", "on", "yes":
			v.SetBool(true)
		case "0", "false", "off", "no", "":
			v.SetBool(false)
		default:
			return fmt.Errorf("not a boolean: %q", raw)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", v.Kind())
	}
	return nil
}

func kindWord(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	default:
		return "whole number"
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "-" {
		return ""
	}
	if name == "" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}
