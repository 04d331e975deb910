package post

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreatePostRequest is the multipart creation form. The cover file
// travels separately; readTime arrives as a JSON string field
// (`{"value":5,"unit":"minutes"}`) and is parsed after validation.
type CreatePostRequest struct {
	Category string `json:"category" form:"category"`
	Title    string `json:"title" form:"title"`
	ReadTime string `json:"readTime" form:"readTime"`
	Author   string `json:"author" form:"author"`
	Content  string `json:"content" form:"content"`
}

func validReadTimeJSON(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	var rt ReadTime
	if err := json.Unmarshal([]byte(s), &rt); err != nil {
		return validation.NewError("validation_read_time", "readTime must be a JSON object with value and unit")
	}
	if rt.Value <= 0 || rt.Unit == "" {
		return validation.NewError("validation_read_time", "readTime requires a positive value and a unit")
	}
	return nil
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.Required.Error("category is required")),
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.ReadTime,
			validation.Required.Error("readTime is required"),
			validation.By(validReadTimeJSON),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author ID is required"),
			is.UUIDv4.Error("author must be a valid id"),
		),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

// ParsedReadTime is only valid after Validate has passed.
func (r CreatePostRequest) ParsedReadTime() ReadTime {
	var rt ReadTime
	_ = json.Unmarshal([]byte(r.ReadTime), &rt)
	return rt
}

// UpdatePostRequest replaces every mutable field of the post. There is
// deliberately no ownership check on this operation: any authenticated
// caller may update any post, exactly as the API has always behaved.
type UpdatePostRequest struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Cover    *string  `json:"cover"`
	ReadTime ReadTime `json:"readTime"`
	Author   string   `json:"author"`
	Content  string   `json:"content"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.Required.Error("category is required")),
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Author,
			validation.Required.Error("author ID is required"),
			is.UUIDv4.Error("author must be a valid id"),
		),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

// AddCommentRequest appends a comment to a post. The commenting user id
// is part of the payload, mirroring the consuming client.
type AddCommentRequest struct {
	Text string `json:"text"`
	User string `json:"user"`
}

func (r AddCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required.Error("text is required")),
		validation.Field(&r.User,
			validation.Required.Error("user is required"),
			is.UUIDv4.Error("user must be a valid id"),
		),
	)
}

// EditCommentRequest replaces only the comment text. The consuming
// client sends the replacement under "content", unlike the "text"
// field used on creation.
type EditCommentRequest struct {
	Text string `json:"content"`
}

func (r EditCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required.Error("content is required")),
	)
}

// ListResponse is the paginated listing shape.
type ListResponse struct {
	Page           int        `json:"page"`
	PerPage        int        `json:"perPage"`
	TotalPages     int        `json:"totalPages"`
	TotalResources int        `json:"totalResources"`
	Data           []PostView `json:"data"`
}
