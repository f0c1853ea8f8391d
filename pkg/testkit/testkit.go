// Package testkit holds the shared helpers the package tests are built on:
// throwaway databases, temp-dir storage disks, image fixtures, and multipart
// request builders.
package testkit

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/veyralabs/veyra/pkg/storage"
)

// NewDB opens a throwaway SQLite database in a temp directory and migrates
// the given models into it. Each call gets its own database file, so tests
// stay isolated.
func NewDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open test database")

	if len(models) > 0 {
		require.NoError(t, db.AutoMigrate(models...), "migrate test models")
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// TempDisk returns a local Disk rooted in a fresh temp directory.
func TempDisk(t *testing.T) storage.Disk {
	t.Helper()
	return storage.NewLocalDisk(t.TempDir())
}

// PNG renders a solid-color PNG of the given dimensions.
func PNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img), "encode png fixture")
	return buf.Bytes()
}

// JPEG renders a solid-color JPEG of the given dimensions.
func JPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8((x + y) % 256), B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}), "encode jpeg fixture")
	return buf.Bytes()
}

// FormBuilder assembles multipart/form-data request bodies.
type FormBuilder struct {
	t   *testing.T
	buf bytes.Buffer
	mw  *multipart.Writer
}

// NewForm starts a multipart form body.
func NewForm(t *testing.T) *FormBuilder {
	t.Helper()
	fb := &FormBuilder{t: t}
	fb.mw = multipart.NewWriter(&fb.buf)
	return fb
}

// Field adds a plain form field.
func (fb *FormBuilder) Field(name, value string) *FormBuilder {
	require.NoError(fb.t, fb.mw.WriteField(name, value))
	return fb
}

// File adds a file part with the given filename and contents.
func (fb *FormBuilder) File(field, filename string, data []byte) *FormBuilder {
	part, err := fb.mw.CreateFormFile(field, filename)
	require.NoError(fb.t, err)
	_, err = part.Write(data)
	require.NoError(fb.t, err)
	return fb
}

// Request finalizes the body and builds an *http.Request with the right
// Content-Type boundary header.
func (fb *FormBuilder) Request(method, target string) *http.Request {
	require.NoError(fb.t, fb.mw.Close())
	req := httptest.NewRequest(method, target, &fb.buf)
	req.Header.Set("Content-Type", fb.mw.FormDataContentType())
	return req
}

// Do runs an http.Handler against a request and records the response.
func Do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
