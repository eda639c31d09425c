package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gotrs-io/helpdesk-console/internal/load"
	"github.com/gotrs-io/helpdesk-console/internal/models"
	"github.com/gotrs-io/helpdesk-console/internal/views"
)

const ticketsKind = "tickets"

type ticketHandler func(c *gin.Context, v *views.TicketList)

// withTicketList resolves the :view parameter to a mounted ticket list.
func (s *Server) withTicketList(h ticketHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := views.Lookup[*views.TicketList](s.registry, c.Param("view"))
		if !ok {
			viewGone(c, "/tickets")
			return
		}
		h(c, v)
	}
}

func applyTicketQuery(c *gin.Context, v *views.TicketList) {
	if status, ok := c.GetQuery("status"); ok {
		v.SetFilter(views.ParseStatusFilter(status))
	}
	if q, ok := c.GetQuery("q"); ok {
		v.SetSearch(q)
	}
}

func (s *Server) handleTicketsPage(c *gin.Context) {
	v := views.NewTicketList(s.tickets, s.cfg.Views.DefaultReporterID, s.requestLogger(c))
	applyTicketQuery(c, v)
	_ = v.Load(c.Request.Context())
	id := s.registry.Mount(ticketsKind, v)

	snap := v.Snapshot()
	s.renderer.HTML(c, http.StatusOK, "tickets.html", s.page(c, "Tickets", gin.H{
		"view_id": id,
		"filters": filterOptions(snap.Filter),
		"search":  snap.Search,
		"panel":   presentTicketPanel(snap, s.now()),
	}))
}

func (s *Server) renderTicketPanel(c *gin.Context, id string, v *views.TicketList) {
	s.renderer.HTML(c, http.StatusOK, "partials/ticket_panel.html", gin.H{
		"view_id": id,
		"panel":   presentTicketPanel(v.Snapshot(), s.now()),
	})
}

func (s *Server) handleTicketList(c *gin.Context, v *views.TicketList) {
	applyTicketQuery(c, v)
	s.renderTicketPanel(c, c.Param("view"), v)
}

func (s *Server) handleTicketStatus(c *gin.Context, v *views.TicketList) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		s.flashError(c, http.StatusBadRequest, "Invalid ticket id")
		return
	}
	status := c.PostForm("status")
	if !models.TicketStatus(status).Valid() {
		s.flashError(c, http.StatusBadRequest, fmt.Sprintf("Unknown status %q", status))
		return
	}

	// Failures land in the view's action error and show in the panel.
	if _, err := v.ChangeStatus(c.Request.Context(), id, status); errors.Is(err, load.ErrUnmounted) {
		viewGone(c, "/tickets")
		return
	}
	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, "/tickets")
		return
	}
	s.renderTicketPanel(c, c.Param("view"), v)
}

func (s *Server) handleFormOpen(c *gin.Context, v *views.TicketList) {
	v.OpenForm()
	s.renderTicketPanel(c, c.Param("view"), v)
}

func (s *Server) handleFormSubmit(c *gin.Context, v *views.TicketList) {
	form := v.Form()
	form.SetFields(
		c.PostForm("title"),
		c.PostForm("description"),
		models.TicketType(c.PostForm("type")),
		models.Priority(c.PostForm("priority")),
	)

	ticket, err := v.SubmitForm(c.Request.Context())
	switch {
	case errors.Is(err, load.ErrUnmounted):
		viewGone(c, "/tickets")
		return
	case errors.Is(err, views.ErrSubmitting):
		s.flashError(c, http.StatusConflict, "A ticket is already being created")
		return
	case errors.Is(err, views.ErrFormClosed):
		s.flashError(c, http.StatusConflict, "The ticket form is closed")
		return
	case err == nil:
		log := s.requestLogger(c)
		log.Info().Int64("ticket_id", ticket.ID).Msg("ticket created")
	}
	// Other failures are kept in the form and rendered in the modal.
	s.renderTicketPanel(c, c.Param("view"), v)
}

func (s *Server) handleFormCancel(c *gin.Context, v *views.TicketList) {
	if err := v.CloseForm(); err != nil {
		s.flashError(c, http.StatusConflict, "A ticket is already being created")
		return
	}
	s.renderTicketPanel(c, c.Param("view"), v)
}

func (s *Server) handleFormPreview(c *gin.Context, _ *views.TicketList) {
	s.renderer.HTML(c, http.StatusOK, "partials/preview.html", gin.H{
		"preview": s.markup.HTML(c.PostForm("description")),
	})
}

func (s *Server) handleExport(c *gin.Context, v *views.TicketList) {
	applyTicketQuery(c, v)
	tickets := v.Filtered()

	name := fmt.Sprintf("tickets-%s.xlsx", s.now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := writeTicketsXLSX(c.Writer, tickets, time.UTC); err != nil {
		log := s.requestLogger(c)
		log.Error().Err(err).Msg("export tickets")
		_ = c.Error(err)
	}
}
