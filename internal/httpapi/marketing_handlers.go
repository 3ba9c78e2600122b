package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/marketing"
)

type subscribeRequest struct {
	Email string `json:"email"`
}

func (s *Server) subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedbackJSON(c, s.deps.Newsletter.Subscribe(c.Request.Context(), req.Email))
}

func (s *Server) sendInquiry(c *gin.Context) {
	var req domain.Inquiry
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedbackJSON(c, s.deps.Contact.Submit(c.Request.Context(), req))
}

func feedbackJSON(c *gin.Context, fb marketing.Feedback) {
	status := http.StatusOK
	switch fb.Status {
	case marketing.StatusInvalid:
		status = http.StatusUnprocessableEntity
	case marketing.StatusFailed:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"status": fb.Status, "message": fb.Message})
}
