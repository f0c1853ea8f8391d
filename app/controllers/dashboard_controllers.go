package controllers

import (
	"net/http"

	"github.com/veyralabs/veyra/app/services"
	"github.com/veyralabs/veyra/pkg/ctx"
	"github.com/veyralabs/veyra/pkg/session"
)

// DashboardController serves the admin landing screen.
type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController() *DashboardController {
	return &DashboardController{service: services.NewDashboardService()}
}

func NewDashboardControllerWith(s *services.DashboardService) *DashboardController {
	return &DashboardController{service: s}
}

// Index returns the catalog counts plus any flash message queued by the last
// mutation, so the page the admin lands on can show "… added successfully!".
func (ct *DashboardController) Index(c *ctx.Context) {
	stats, err := ct.service.Stats()
	if err != nil {
		c.Error(http.StatusInternalServerError, "Something went wrong")
		return
	}

	out := map[string]interface{}{"stats": stats}

	sess := session.FromCtx(c.R)
	if status, ok := sess.GetFlash("status"); ok {
		out["status"] = status
		_ = sess.Save(c.W)
	}

	c.Success(out)
}
