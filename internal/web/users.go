package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gotrs-io/helpdesk-console/internal/load"
	"github.com/gotrs-io/helpdesk-console/internal/views"
)

const usersKind = "users"

type userHandler func(c *gin.Context, v *views.UserList)

func (s *Server) withUserList(h userHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := views.Lookup[*views.UserList](s.registry, c.Param("view"))
		if !ok {
			viewGone(c, "/users")
			return
		}
		h(c, v)
	}
}

func (s *Server) handleUsersPage(c *gin.Context) {
	v := views.NewUserList(s.users, s.requestLogger(c))
	v.SetSearch(c.Query("q"))
	_ = v.Load(c.Request.Context())
	id := s.registry.Mount(usersKind, v)

	snap := v.Snapshot()
	s.renderer.HTML(c, http.StatusOK, "users.html", s.page(c, "Users", gin.H{
		"view_id": id,
		"search":  snap.Search,
		"panel":   presentUserPanel(snap),
	}))
}

func (s *Server) renderUserPanel(c *gin.Context, v *views.UserList) {
	s.renderer.HTML(c, http.StatusOK, "partials/user_panel.html", gin.H{
		"view_id": c.Param("view"),
		"panel":   presentUserPanel(v.Snapshot()),
	})
}

func (s *Server) handleUserList(c *gin.Context, v *views.UserList) {
	if q, ok := c.GetQuery("q"); ok {
		v.SetSearch(q)
	}
	s.renderUserPanel(c, v)
}

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

func (s *Server) handleUserToggle(c *gin.Context, v *views.UserList) {
	id, ok := parseUserID(c)
	if !ok {
		s.flashError(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	if _, err := v.ToggleStatus(c.Request.Context(), id); errors.Is(err, load.ErrUnmounted) {
		viewGone(c, "/users")
		return
	}
	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/users")
		return
	}
	s.renderUserPanel(c, v)
}

func (s *Server) handleUserEdit(c *gin.Context, v *views.UserList) {
	id, ok := parseUserID(c)
	if !ok {
		s.flashError(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	user, err := v.Edit(id)
	if err != nil {
		s.flashError(c, http.StatusNotFound, "User not found")
		return
	}
	if !isHTMX(c) {
		c.JSON(http.StatusAccepted, gin.H{"success": true, "user": user})
		return
	}
	c.Header(headerHXRetarget, flashTarget)
	c.Header(headerHXReswap, "innerHTML")
	s.renderer.HTML(c, http.StatusOK, "partials/notice.html", gin.H{
		"message": fmt.Sprintf("Editing %s is not available yet.", user.Name),
	})
}
