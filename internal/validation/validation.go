package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Content length limits
const (
	MaxNameLength        = 50
	MaxPostLength        = 1000
	MaxCommentLength     = 500
	MaxReportTitleLength = 120
	MaxReportBodyLength  = 2000
	MinAge               = 5
	MaxAge               = 120
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if utf8.RuneCountInString(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ValidationError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", MaxNameLength)}
	}
	return nil
}

// ValidateAge checks if a player age is plausible
func ValidateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return ValidationError{Field: "age", Message: fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge)}
	}
	return nil
}

// ValidatePostContent checks a feed post body
func ValidatePostContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ValidationError{Field: "content", Message: "post content is required"}
	}
	if utf8.RuneCountInString(content) > MaxPostLength {
		return ValidationError{Field: "content", Message: fmt.Sprintf("post must be at most %d characters", MaxPostLength)}
	}
	return nil
}

// ValidateCommentContent checks a comment body
func ValidateCommentContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ValidationError{Field: "comment", Message: "comment is required"}
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return ValidationError{Field: "comment", Message: fmt.Sprintf("comment must be at most %d characters", MaxCommentLength)}
	}
	return nil
}

// ValidateReport checks a new issue report's user-entered fields
func ValidateReport(title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > MaxReportTitleLength {
		return ValidationError{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", MaxReportTitleLength)}
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return ValidationError{Field: "description", Message: "description is required"}
	}
	if utf8.RuneCountInString(description) > MaxReportBodyLength {
		return ValidationError{Field: "description", Message: fmt.Sprintf("description must be at most %d characters", MaxReportBodyLength)}
	}
	return nil
}
