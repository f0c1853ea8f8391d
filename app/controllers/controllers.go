// Package controllers is the HTTP edge of the admin surface. Controllers
// parse the form, call the matching service, and translate the result into a
// JSON error or a flash-message redirect back to the listing page.
package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/veyralabs/veyra/app/repositories"
	"github.com/veyralabs/veyra/app/services"
	"github.com/veyralabs/veyra/pkg/ctx"
	"github.com/veyralabs/veyra/pkg/logger"
	"github.com/veyralabs/veyra/pkg/router"
	"github.com/veyralabs/veyra/pkg/session"
)

// flashAndRedirect queues a status message for the next page load and sends
// the admin back to the named listing route.
func flashAndRedirect(c *ctx.Context, message, routeName string) {
	sess := session.FromCtx(c.R)
	sess.Flash("status", message)
	if err := sess.Save(c.W); err != nil {
		logger.WithCtx(c.R.Context()).Warn("session save failed", "error", err)
	}
	c.Redirect(http.StatusFound, router.MustURL(routeName, nil))
}

// respondServiceError maps a service failure onto the right HTTP response.
func respondServiceError(c *ctx.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.ValidationError(verr.Fields)
	case errors.Is(err, repositories.ErrSlugTaken):
		c.ValidationError(map[string]string{"slug": "The slug has already been taken."})
	case errors.Is(err, repositories.ErrNotFound):
		c.NotFound("Record not found")
	default:
		logger.WithCtx(c.R.Context()).Error("catalog operation failed", "error", err)
		c.Error(http.StatusInternalServerError, "Something went wrong")
	}
}

// readUpload reads one uploaded file fully into a services.Upload.
// A nil header (field absent) yields nil.
func readUpload(c *ctx.Context, fh *multipart.FileHeader) (*services.Upload, error) {
	if fh == nil {
		return nil, nil
	}
	data, err := c.ReadFile(fh)
	if err != nil {
		return nil, err
	}
	return &services.Upload{Name: fh.Filename, Data: data}, nil
}

// readUploads reads a set of gallery files in submission order.
func readUploads(c *ctx.Context, fhs []*multipart.FileHeader) ([]services.Upload, error) {
	var uploads []services.Upload
	for _, fh := range fhs {
		data, err := c.ReadFile(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, services.Upload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}
