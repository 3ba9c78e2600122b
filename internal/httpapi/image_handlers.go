package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/imagegen"
)

// imageRequest carries the reference image base64 encoded, as encoding/json does for []byte.
type imageRequest struct {
	Prompt            string           `json:"prompt"`
	AspectRatio       string           `json:"aspectRatio"`
	Size              domain.ImageSize `json:"size"`
	ReferenceImage    []byte           `json:"referenceImage"`
	ReferenceMIMEType string           `json:"referenceMimeType"`
}

type imageResponse struct {
	Image    []byte `json:"image"`
	MIMEType string `json:"mimeType"`
}

func (s *Server) generateImage(c *gin.Context) {
	if s.deps.Images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": imagegen.UserMessage(imagegen.ErrNoKey)})
		return
	}

	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := domain.ImageRequest{
		Prompt:      req.Prompt,
		AspectRatio: req.AspectRatio,
		Size:        req.Size,
	}
	if req.ReferenceImage != nil {
		in.Reference = &domain.Image{Data: req.ReferenceImage, MIMEType: req.ReferenceMIMEType}
	}

	img, err := s.deps.Images.Generate(c.Request.Context(), in)
	if err != nil {
		c.JSON(imageStatus(err), gin.H{"error": imagegen.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, imageResponse{Image: img.Data, MIMEType: img.MIMEType})
}

func imageStatus(err error) int {
	switch {
	case errors.Is(err, imagegen.ErrEmptyPrompt),
		errors.Is(err, imagegen.ErrInvalidSize),
		errors.Is(err, imagegen.ErrNoReference):
		return http.StatusBadRequest
	case errors.Is(err, imagegen.ErrKeyExpired), errors.Is(err, imagegen.ErrNoKey):
		return http.StatusUnauthorized
	case errors.Is(err, imagegen.ErrNoImage):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
