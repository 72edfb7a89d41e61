package dto

type DeleteMediaInput struct {
	PublicID string `json:"publicId" validate:"required"`
}
