package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gotrs-io/helpdesk-console/internal/load"
	"github.com/gotrs-io/helpdesk-console/internal/views"
)

// handleDashboard renders the dashboard. It has no follow-up requests, so
// the view lives only for this request.
func (s *Server) handleDashboard(c *gin.Context) {
	d := views.NewDashboard(s.analytics, s.requestLogger(c))
	defer d.Unmount()

	_ = d.Load(c.Request.Context())
	snap := d.Snapshot()

	s.renderer.HTML(c, http.StatusOK, "dashboard.html", s.page(c, "Dashboard", gin.H{
		"dashboard": gin.H{
			"Loaded":       snap.State == load.StateReady,
			"Error":        snap.Error,
			"Cards":        snap.Cards,
			"Weekly":       snap.Weekly,
			"Distribution": snap.Distribution,
			"AvgHours":     snap.Analytics.AverageResolutionTimeHours,
		},
	}))
}
