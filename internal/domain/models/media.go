package models

import "time"

// GalleryImage изображение внутри папки события, как его описывает хранилище
type GalleryImage struct {
	URL       string    `json:"url"`
	PublicID  string    `json:"publicId"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadResult результат загрузки объекта в хранилище
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Folder   string `json:"folder"`
}
