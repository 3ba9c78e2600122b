package domain

type ImageSize string

const (
	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
	ImageSize4K ImageSize = "4K"
)

const DefaultAspectRatio = "1:1"

type Image struct {
	Data     []byte
	MIMEType string
}

// ImageRequest with a Reference edits that image; without one it generates from the prompt alone.
type ImageRequest struct {
	Prompt      string
	Reference   *Image
	AspectRatio string
	Size        ImageSize
}
