package models

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/stevenshelley58-afk/redner-vault/internal/status"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type CreateProjectRequest struct {
	Name        string `json:"name"`
	ProjectType string `json:"project_type"`
	Brief       string `json:"brief"`
	DueDate     string `json:"due_date"`
}

func (r CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 160)),
		validation.Field(&r.Brief, validation.Length(0, 8000)),
		validation.Field(&r.DueDate, validation.Date("2006-01-02")),
	)
}

type CreateNoteRequest struct {
	Body       string `json:"body"`
	AuthorName string `json:"author_name"`
}

func (r CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Body, validation.Required.Error("Note body is required")),
		validation.Field(&r.AuthorName, validation.Length(0, 160)),
	)
}

type CreateImageRequest struct {
	Title      string `json:"title"`
	PreviewURL string `json:"preview_url"`
	OutputURL  string `json:"output_url"`
}

type CreateVersionRequest struct {
	OutputURL  string `json:"output_url"`
	PreviewURL string `json:"preview_url"`
	Notes      string `json:"notes"`
}

func (r CreateVersionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OutputURL, validation.Required.Error("output_url is required")),
	)
}

type UpdateImageStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateImageStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required.Error("Invalid image status"),
			validation.By(func(value interface{}) error {
				if s, _ := value.(string); !status.ValidImageStatus(s) {
					return validation.NewError("validation_image_status", "Invalid image status")
				}
				return nil
			}),
		),
	)
}

type CreateCommentRequest struct {
	Body          string `json:"body"`
	VersionNumber int    `json:"version_number"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Body, validation.Required.Error("Comment is required")),
		validation.Field(&r.VersionNumber, validation.Required.Error("version_number is required"), validation.Min(1).Error("version_number is required")),
	)
}

// ContactRequest deliberately validates with a single generic failure message;
// Website is the honeypot field.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Website string `json:"website"`
}

func (r ContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 80)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), validation.Match(emailRegex)),
		validation.Field(&r.Message, validation.Required, validation.Length(10, 2000)),
	)
}
