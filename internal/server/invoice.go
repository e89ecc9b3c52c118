package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/billfold/billfold/internal/cache"
	invoicedomain "github.com/billfold/billfold/internal/invoice/domain"
)

func (s *Server) ListInvoices(c *gin.Context) {
	invoices, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	outcome := s.invoiceSvc.Create(c.Request.Context(), formDraft(c))
	s.renderMutation(c, outcome, true)
}

func (s *Server) UpdateInvoice(c *gin.Context) {
	id, ok := invoiceIDParam(c)
	if !ok {
		return
	}

	outcome := s.invoiceSvc.Update(c.Request.Context(), id, formDraft(c))
	s.renderMutation(c, outcome, true)
}

func (s *Server) DeleteInvoice(c *gin.Context) {
	id, ok := invoiceIDParam(c)
	if !ok {
		return
	}

	outcome := s.invoiceSvc.Delete(c.Request.Context(), id)
	s.renderMutation(c, outcome, false)
}

// renderMutation translates the three-way outcome to the wire. On
// success create and update navigate back to the listing view; delete
// is invoked from the listing itself, so it just acknowledges.
func (s *Server) renderMutation(c *gin.Context, outcome invoicedomain.MutationOutcome, navigate bool) {
	switch {
	case outcome.Succeeded():
		if navigate {
			c.Redirect(http.StatusSeeOther, cache.ListingPath)
			return
		}
		c.Status(http.StatusNoContent)
	case outcome.ValidationFailed():
		c.JSON(http.StatusBadRequest, outcome)
	default:
		c.JSON(http.StatusInternalServerError, outcome)
	}
}

// formDraft collects the submitted form as an untyped field bag. The
// schema decides which keys matter.
func formDraft(c *gin.Context) invoicedomain.Draft {
	draft := invoicedomain.Draft{}

	if err := c.Request.ParseForm(); err == nil {
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				draft[key] = values[0]
			}
		}
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for key, values := range form.Value {
			if len(values) > 0 {
				draft[key] = values[0]
			}
		}
	}

	return draft
}

func invoiceIDParam(c *gin.Context) (snowflake.ID, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := snowflake.ParseString(raw)
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return 0, false
	}
	return id, true
}
