package forms

import "github.com/aretw0/clubforms/pkg/schema"

// GalleryItem is a picture shown in the club gallery.
type GalleryItem struct {
	ID    int    `json:"id" mapstructure:"id"`
	Title string `json:"title" mapstructure:"title"`
	Src   string `json:"src" mapstructure:"src"`
}

// BlogImage is a picture embedded in a blog post.
type BlogImage struct {
	ID    int    `json:"id" mapstructure:"id"`
	Title string `json:"title" mapstructure:"title"`
	Src   string `json:"src" mapstructure:"src"`
}

func imageRecord() *schema.ObjectType {
	return schema.Object(
		schema.Key("id", schema.Int()),
		schema.Key("title", schema.String()),
		schema.Key("src", schema.String()),
	)
}

var (
	GalleryItemSchema = imageRecord()
	BlogImageSchema   = imageRecord()
)

var GalleryItemForm = &Form[GalleryItem]{
	ID:          GalleryItemID,
	Description: "Gallery picture",
	Schema:      GalleryItemSchema,
}

var BlogImageForm = &Form[BlogImage]{
	ID:          BlogImageID,
	Description: "Blog picture",
	Schema:      BlogImageSchema,
}
