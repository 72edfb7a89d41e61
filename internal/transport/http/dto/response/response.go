package response

import (
	"photofolio/internal/domain/models"
)

// Response общий конверт успешного ответа
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func SuccessResponse() Response {
	return Response{Success: true}
}

func Error(err string) ErrorResponse {
	return ErrorResponse{Success: false, Error: err}
}

func ErrorResponseWithDetails(err, details string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   err,
		Details: details,
	}
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Folder   string `json:"folder"`
}

type MetadataSavedResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Folder      string `json:"folder"`
	MetadataURL string `json:"metadataUrl"`
	PublicID    string `json:"publicId"`
}

type MetadataResponse struct {
	Success  bool         `json:"success"`
	Metadata models.Event `json:"metadata"`
}

type FolderImagesResponse struct {
	Success bool                  `json:"success"`
	Folder  string                `json:"folder"`
	Images  []models.GalleryImage `json:"images"`
	Count   int                   `json:"count"`
}

type FoldersResponse struct {
	Success bool     `json:"success"`
	Folders []string `json:"folders"`
	Count   int      `json:"count"`
}

type TokenResponse struct {
	Success bool `json:"success"`
	models.TokenPair
}

type EventsResponse struct {
	Success     bool               `json:"success"`
	Events      []models.EventView `json:"events"`
	Count       int                `json:"count"`
	Placeholder bool               `json:"placeholder"`
}

type EventResponse struct {
	Success bool                  `json:"success"`
	Event   models.Event          `json:"event"`
	Images  []models.GalleryImage `json:"images"`
}

type EventCreatedResponse struct {
	Success     bool   `json:"success"`
	Folder      string `json:"folder"`
	MetadataURL string `json:"metadataUrl"`
	PublicID    string `json:"publicId"`
}
