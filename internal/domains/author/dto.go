package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const birthDateLayout = "2006-01-02"

// notInFuture validates a "YYYY-MM-DD" birth date string.
func notInFuture(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required rule reports the empty case
	}

	date, err := time.Parse(birthDateLayout, s)
	if err != nil {
		return validation.NewError("validation_birth_date", "birth date must be in YYYY-MM-DD format")
	}
	if date.After(time.Now()) {
		return validation.NewError("validation_birth_date_future", "birth date cannot be in the future")
	}
	return nil
}

// RegisterRequest carries the registration form fields. The avatar file
// travels separately as multipart content and is resolved to a URL
// before the service sees it.
type RegisterRequest struct {
	Name      string `json:"name" form:"name"`
	Surname   string `json:"surname" form:"surname"`
	Email     string `json:"email" form:"email"`
	BirthDate string `json:"birth_date" form:"birth_date"`
	Password  string `json:"password" form:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Surname, validation.Required.Error("surname is required")),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.BirthDate,
			validation.Required.Error("birth date is required"),
			validation.By(notInFuture),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be at least 8 characters"),
		),
	)
}

// ParsedBirthDate is only valid after Validate has passed.
func (r RegisterRequest) ParsedBirthDate() time.Time {
	date, _ := time.Parse(birthDateLayout, r.BirthDate)
	return date
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse echoes the token in the body; the handler also sets it
// in the Authorization response header.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Author  Author `json:"author"`
}

// UpdateProfileRequest merges the provided fields into the target
// author. Zero-valued fields are left untouched.
type UpdateProfileRequest struct {
	Name      string  `json:"name"`
	Surname   string  `json:"surname"`
	Email     string  `json:"email"`
	BirthDate string  `json:"birth_date"`
	Avatar    *string `json:"avatar"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.When(r.Email != "", is.Email.Error("invalid email format"))),
		validation.Field(&r.BirthDate, validation.By(notInFuture)),
	)
}
