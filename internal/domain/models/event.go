package models

import (
	"strings"
	"time"
)

// MetadataObjectName зарезервированное имя объекта с метаданными события внутри папки
const MetadataObjectName = "metadata.json"

// DefaultFolder используется, когда папка для загрузки не указана
const DefaultFolder = "events"

type Category string

const (
	CategoryWedding    Category = "Wedding"
	CategoryPreWedding Category = "Pre-Wedding"
	CategoryPortrait   Category = "Portrait"
	CategoryEvent      Category = "Event"
)

func Categories() []Category {
	return []Category{CategoryWedding, CategoryPreWedding, CategoryPortrait, CategoryEvent}
}

func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}

	return false
}

// EventFields описательные поля события и флаги маршрутизации
type EventFields struct {
	Title            string   `json:"title" validate:"max=200"`
	Excerpt          string   `json:"excerpt" validate:"max=500"`
	Description      string   `json:"description"`
	Category         Category `json:"category" validate:"omitempty,oneof=Wedding Pre-Wedding Portrait Event"`
	Date             string   `json:"date"`
	EventDate        string   `json:"eventDate"`
	Location         string   `json:"location"`
	CoverImage       string   `json:"coverImage"`
	AddToBlogs       bool     `json:"addToBlogs"`
	AddToLibrary     bool     `json:"addToLibrary"`
	AddToRecentWorks bool     `json:"addToRecentWorks"`
}

// Event содержимое metadata.json одного события
type Event struct {
	FolderName string `json:"folderName"`
	EventFields
	Likes     int       `json:"likes"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Revision  int64     `json:"revision"`
}

// CleanFolderName trims the caller-supplied folder name.
func CleanFolderName(name string) string {
	return strings.TrimSpace(name)
}

type Surface string

const (
	SurfaceBlogs       Surface = "blogs"
	SurfaceRecentWorks Surface = "recent-works"
	SurfaceLibrary     Surface = "library"
)

func ParseSurface(s string) (Surface, bool) {
	switch Surface(s) {
	case SurfaceBlogs, SurfaceRecentWorks, SurfaceLibrary:
		return Surface(s), true
	}

	return "", false
}

// Includes reports whether the event's routing flag admits it to the surface.
func (s Surface) Includes(e Event) bool {
	switch s {
	case SurfaceBlogs:
		return e.AddToBlogs
	case SurfaceRecentWorks:
		return e.AddToRecentWorks
	case SurfaceLibrary:
		return e.AddToLibrary
	}

	return false
}

type Counter string

const (
	CounterLikes Counter = "likes"
	CounterViews Counter = "views"
)

func (c Counter) Valid() bool {
	return c == CounterLikes || c == CounterViews
}

// Apply changes exactly one counter by one and returns its new value; counters never go below zero.
func (c Counter) Apply(e *Event, up bool) int {
	field := &e.Likes
	if c == CounterViews {
		field = &e.Views
	}

	if up {
		*field++
	} else if *field > 0 {
		*field--
	}

	return *field
}

// EventUpload входные данные формы создания события
type EventUpload struct {
	FolderName    string
	Fields        EventFields
	GalleryImages []string
}

// EventView событие вместе с изображениями папки для страниц сайта
type EventView struct {
	Event
	Images []GalleryImage `json:"images,omitempty"`
}

// Listing результат выборки событий для одной страницы сайта
type Listing struct {
	Events      []EventView `json:"events"`
	Placeholder bool        `json:"placeholder"`
}
