package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	headerHXRequest  = "HX-Request"
	headerHXRedirect = "HX-Redirect"
	headerHXRetarget = "HX-Retarget"
	headerHXReswap   = "HX-Reswap"

	flashTarget = "#flash"
)

func isHTMX(c *gin.Context) bool {
	return c.GetHeader(headerHXRequest) == "true"
}

// viewGone answers a request for a view that is no longer mounted. htmx
// follows HX-Redirect regardless of status, which remounts the page.
func viewGone(c *gin.Context, page string) {
	if isHTMX(c) {
		c.Header(headerHXRedirect, page)
		c.Status(http.StatusGone)
		c.Abort()
		return
	}
	c.Redirect(http.StatusSeeOther, page)
	c.Abort()
}

// flashError renders the error banner into the page's flash area instead
// of the element the request targeted.
func (s *Server) flashError(c *gin.Context, code int, message string) {
	if !isHTMX(c) {
		c.JSON(code, gin.H{"success": false, "error": message})
		return
	}
	c.Header(headerHXRetarget, flashTarget)
	c.Header(headerHXReswap, "innerHTML")
	// htmx only swaps 2xx responses; the status is carried in the banner.
	s.renderer.HTML(c, http.StatusOK, "partials/error_banner.html", gin.H{"message": message, "status": code})
}
