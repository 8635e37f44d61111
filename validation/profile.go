package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Qualifications is the fixed list a profile must pick from.
var Qualifications = []string{
	"High School (10th)",
	"Higher Secondary (12th)",
	"Diploma",
	"B.Tech / B.E.",
	"B.Sc / BCA",
	"M.Tech / M.E.",
	"M.Sc / MCA",
	"Other",
}

const MaxResumeSize = 5 * 1024 * 1024 // 5MB

var acceptedResumeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type ProfileInput struct {
	Name          string `json:"name" validate:"required,min=2,max=100,personname"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"required,indianmobile"`
	Qualification string `json:"qualification" validate:"required,qualification"`
	College       string `json:"college" validate:"omitempty,max=200"`
}

var (
	nameRegex  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\s'-]*$`)
	phoneRegex = regexp.MustCompile(`^[6-9]\d{9}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return nameRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("indianmobile", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("qualification", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, q := range Qualifications {
			if q == value {
				return true
			}
		}
		return false
	})
	return v
}

var fieldMessages = map[string]string{
	"Name.required":               "Name must be at least 2 characters",
	"Name.min":                    "Name must be at least 2 characters",
	"Name.max":                    "Name must be less than 100 characters",
	"Name.personname":             "Name can only contain letters, spaces, hyphens and apostrophes",
	"Email.email":                 "Invalid email address",
	"Phone.required":              "Please enter a valid 10-digit Indian phone number",
	"Phone.indianmobile":          "Please enter a valid 10-digit Indian phone number",
	"Qualification.required":      "Please select your qualification",
	"Qualification.qualification": "Please select your qualification",
	"College.max":                 "College name is too long",
}

var fieldKeys = map[string]string{
	"Name":          "name",
	"Email":         "email",
	"Phone":         "phone",
	"Qualification": "qualification",
	"College":       "college",
}

// ValidateProfile sanitizes every string field, then validates the result. It
// returns the sanitized input and a map of field key to the first violated
// rule's message for that field. An empty map means the profile is acceptable.
func ValidateProfile(in ProfileInput) (ProfileInput, map[string]string) {
	in.Name = Sanitize(in.Name)
	in.Email = Sanitize(in.Email)
	in.Phone = Sanitize(in.Phone)
	in.Qualification = Sanitize(in.Qualification)
	in.College = Sanitize(in.College)

	err := validate.Struct(in)
	if err == nil {
		return in, map[string]string{}
	}

	problems := map[string]string{}
	for _, fe := range err.(validator.ValidationErrors) {
		key, ok := fieldKeys[fe.Field()]
		if !ok {
			key = fe.Field()
		}
		if _, seen := problems[key]; seen {
			continue
		}
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", key)
		}
		problems[key] = msg
	}
	return in, problems
}

// ValidateResume checks an optional resume attachment. Enforced here, before
// the draft ever holds the file, so oversized or non-document uploads never
// reach the storage gateway.
func ValidateResume(filename, contentType string, size int64) error {
	if size > MaxResumeSize {
		return fmt.Errorf("file size must be less than 5MB")
	}
	for _, t := range acceptedResumeTypes {
		if t == contentType {
			return nil
		}
	}
	return fmt.Errorf("only PDF and DOC/DOCX files are accepted")
}
