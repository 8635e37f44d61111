package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ProfileInput {
	return ProfileInput{
		Name:          "Asha Verma",
		Email:         "asha@example.com",
		Phone:         "9876543210",
		Qualification: "B.Tech / B.E.",
		College:       "NIT Trichy",
	}
}

func TestValidateProfileAcceptsValidInput(t *testing.T) {
	out, problems := ValidateProfile(validInput())

	assert.Empty(t, problems)
	assert.Equal(t, "Asha Verma", out.Name)
}

func TestValidateProfileSanitizesBeforeValidating(t *testing.T) {
	in := validInput()
	in.Name = "  <b>Asha</b> Verma  "
	in.College = "<script>alert(1)</script>NIT Trichy"

	out, problems := ValidateProfile(in)

	assert.Empty(t, problems)
	assert.Equal(t, "Asha Verma", out.Name)
	assert.Equal(t, "alert(1)NIT Trichy", out.College)
}

func TestValidateProfileEmailAndCollegeAreOptional(t *testing.T) {
	in := validInput()
	in.Email = ""
	in.College = ""

	_, problems := ValidateProfile(in)

	assert.Empty(t, problems)
}

func TestValidateProfileRejectsBadFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*ProfileInput)
		field   string
		message string
	}{
		{
			name:    "short name",
			mutate:  func(in *ProfileInput) { in.Name = "A" },
			field:   "name",
			message: "Name must be at least 2 characters",
		},
		{
			name:    "name with digits",
			mutate:  func(in *ProfileInput) { in.Name = "Asha42" },
			field:   "name",
			message: "Name can only contain letters, spaces, hyphens and apostrophes",
		},
		{
			name:    "overlong name",
			mutate:  func(in *ProfileInput) { in.Name = strings.Repeat("a", 101) },
			field:   "name",
			message: "Name must be less than 100 characters",
		},
		{
			name:    "bad email",
			mutate:  func(in *ProfileInput) { in.Email = "not-an-email" },
			field:   "email",
			message: "Invalid email address",
		},
		{
			name:    "phone too long",
			mutate:  func(in *ProfileInput) { in.Phone = "98765432100" },
			field:   "phone",
			message: "Please enter a valid 10-digit Indian phone number",
		},
		{
			name:    "phone with bad leading digit",
			mutate:  func(in *ProfileInput) { in.Phone = "1876543210" },
			field:   "phone",
			message: "Please enter a valid 10-digit Indian phone number",
		},
		{
			name:    "missing qualification",
			mutate:  func(in *ProfileInput) { in.Qualification = "" },
			field:   "qualification",
			message: "Please select your qualification",
		},
		{
			name:    "qualification off the list",
			mutate:  func(in *ProfileInput) { in.Qualification = "PhD" },
			field:   "qualification",
			message: "Please select your qualification",
		},
		{
			name:    "overlong college",
			mutate:  func(in *ProfileInput) { in.College = strings.Repeat("c", 201) },
			field:   "college",
			message: "College name is too long",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, problems := ValidateProfile(in)

			require.Len(t, problems, 1)
			assert.Equal(t, tc.message, problems[tc.field])
		})
	}
}

func TestValidateProfileReportsOneMessagePerField(t *testing.T) {
	in := validInput()
	in.Phone = "123"

	_, problems := ValidateProfile(in)

	require.Contains(t, problems, "phone")
	assert.Equal(t, "Please enter a valid 10-digit Indian phone number", problems["phone"])
}

func TestValidateResume(t *testing.T) {
	assert.NoError(t, ValidateResume("cv.pdf", "application/pdf", 1024))
	assert.NoError(t, ValidateResume("cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", MaxResumeSize))

	err := ValidateResume("cv.pdf", "application/pdf", MaxResumeSize+1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5MB")

	err = ValidateResume("cv.png", "image/png", 1024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PDF")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "hello", Sanitize("  <p>hello</p> "))
	assert.Equal(t, "", Sanitize("<br/>"))
	assert.Equal(t, "a b", Sanitize("a <span class=\"x\">b</span>"))
}
