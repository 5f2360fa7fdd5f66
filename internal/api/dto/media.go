package dto

type MediaUploadDTO struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Mime         string `json:"mime"`
	Size         int64  `json:"size"`
	Original     string `json:"original"`
}
