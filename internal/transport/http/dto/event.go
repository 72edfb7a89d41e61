package dto

import "photofolio/internal/domain/models"

// EventFieldsInput описательные поля события и флаги разделов сайта
type EventFieldsInput struct {
	Title            string `json:"title" validate:"max=200"`
	Excerpt          string `json:"excerpt" validate:"max=500"`
	Description      string `json:"description"`
	Category         string `json:"category" validate:"omitempty,oneof=Wedding Pre-Wedding Portrait Event"`
	Date             string `json:"date"`
	EventDate        string `json:"eventDate"`
	Location         string `json:"location"`
	CoverImage       string `json:"coverImage"`
	AddToBlogs       bool   `json:"addToBlogs"`
	AddToLibrary     bool   `json:"addToLibrary"`
	AddToRecentWorks bool   `json:"addToRecentWorks"`
}

func (in EventFieldsInput) ToDomain() models.EventFields {
	return models.EventFields{
		Title:            in.Title,
		Excerpt:          in.Excerpt,
		Description:      in.Description,
		Category:         models.Category(in.Category),
		Date:             in.Date,
		EventDate:        in.EventDate,
		Location:         in.Location,
		CoverImage:       in.CoverImage,
		AddToBlogs:       in.AddToBlogs,
		AddToLibrary:     in.AddToLibrary,
		AddToRecentWorks: in.AddToRecentWorks,
	}
}

// MetadataInput полная запись события для POST /api/metadata
type MetadataInput struct {
	FolderName string `json:"folderName" validate:"required"`
	EventFieldsInput
}

// CreateEventInput форма создания события: поля плюс уже загруженные изображения галереи.
// Порядок обязательных проверок задает сервис, поэтому здесь нет тегов required.
type CreateEventInput struct {
	FolderName string `json:"folderName"`
	EventFieldsInput
	GalleryImages []string `json:"galleryImages"`
}

func (in CreateEventInput) ToDomain() models.EventUpload {
	return models.EventUpload{
		FolderName:    in.FolderName,
		Fields:        in.EventFieldsInput.ToDomain(),
		GalleryImages: in.GalleryImages,
	}
}

type UpdateStatsInput struct {
	FolderName string `json:"folderName" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=likes views"`
	// nil означает увеличение
	Increment *bool `json:"increment"`
}

func (in UpdateStatsInput) Up() bool {
	return in.Increment == nil || *in.Increment
}
