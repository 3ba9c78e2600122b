package imagegen

import (
	"context"
	"fmt"

	"github.com/nikolayk812/zini-storefront/internal/domain"
	"github.com/nikolayk812/zini-storefront/internal/port"
	"google.golang.org/genai"
)

const (
	GenerateModel = "gemini-3-pro-image-preview"
	EditModel     = "gemini-2.5-flash-image"
)

type apiKeySource interface {
	APIKey() string
}

type geminiModel struct {
	keys apiKeySource
}

// NewGemini builds a fresh client per call so a re-selected key takes effect immediately.
func NewGemini(keys apiKeySource) port.ImageModel {
	return &geminiModel{keys: keys}
}

func (m *geminiModel) GenerateImage(ctx context.Context, req domain.ImageRequest) (domain.Image, error) {
	key := m.keys.APIKey()
	if key == "" {
		return domain.Image{}, ErrNoKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return domain.Image{}, fmt.Errorf("genai.NewClient: %w", err)
	}

	model := GenerateModel
	var parts []*genai.Part
	config := &genai.GenerateContentConfig{}

	if req.Reference != nil {
		model = EditModel
		parts = append(parts, genai.NewPartFromBytes(req.Reference.Data, req.Reference.MIMEType))
	} else {
		config.ImageConfig = &genai.ImageConfig{
			AspectRatio: req.AspectRatio,
			ImageSize:   string(req.Size),
		}
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return domain.Image{}, fmt.Errorf("client.Models.GenerateContent: %w", err)
	}

	return firstInlineImage(resp), nil
}

func firstInlineImage(resp *genai.GenerateContentResponse) domain.Image {
	if resp == nil || len(resp.Candidates) == 0 {
		return domain.Image{}
	}

	content := resp.Candidates[0].Content
	if content == nil {
		return domain.Image{}
	}

	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return domain.Image{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}
		}
	}

	return domain.Image{}
}
