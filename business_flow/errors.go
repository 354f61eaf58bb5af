// Package businessflow contains the core business logic and use cases for brand marketing workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Auth-related errors
	ErrInvalidCaptcha    = errors.New("invalid captcha answer")
	ErrCaptchaExpired    = errors.New("captcha challenge expired")
	ErrIncorrectPassword = errors.New("incorrect password")

	// Brand-related errors
	ErrBrandNotConfigured = errors.New("brand profile is not configured")
	ErrBrandNameRequired  = errors.New("brand name is required")
	ErrWebsiteURLRequired = errors.New("website URL is required")
	ErrInvalidWebsiteURL  = errors.New("website URL is invalid")
	ErrEmptyWebsiteText   = errors.New("no readable text found on website")

	// ICP persona errors
	ErrICPPersonaNotFound      = errors.New("ICP persona not found")
	ErrICPPersonaAlreadyExists = errors.New("ICP persona already exists")
	ErrPersonaFieldsRequired   = errors.New("name, role, goals and challenges are all required")

	// Market data import errors
	ErrUnsupportedFileFormat = errors.New("unsupported file format")
	ErrEmptyImportFile       = errors.New("import file contains no rows")
	ErrMissingColumns        = errors.New("import file is missing required columns")
	ErrInvalidDomainType     = errors.New("invalid domain type")
	ErrEmptyDomainValue      = errors.New("domain value is empty")
	ErrInvalidNumericValue   = errors.New("numeric value could not be parsed")
	ErrEmptyRequiredCell     = errors.New("required cell is empty")

	// Recommendation pipeline errors
	ErrNoICPPersonas           = errors.New("no ICP personas defined")
	ErrEmptyCompletionResponse = errors.New("model returned an empty response")
	ErrSchemaParse             = errors.New("model response did not match the expected schema")
	ErrMissingSelectedActions  = errors.New("model response is missing the selected_actions field")
	ErrNoActionsSelected       = errors.New("model selected no actions")
	ErrInvalidActionID         = errors.New("model selected an unknown action id")
	ErrMissingExamples         = errors.New("model response is missing the examples field")
	ErrNoExamplesGenerated     = errors.New("model generated no examples")
	ErrSessionNotFound         = errors.New("recommendation session not found")
	ErrCacheNotAvailable       = errors.New("cache not available")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsInvalidCaptcha(err error) bool {
	return errors.Is(err, ErrInvalidCaptcha)
}

func IsCaptchaExpired(err error) bool {
	return errors.Is(err, ErrCaptchaExpired)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsBrandNotConfigured(err error) bool {
	return errors.Is(err, ErrBrandNotConfigured)
}

func IsBrandNameRequired(err error) bool {
	return errors.Is(err, ErrBrandNameRequired)
}

func IsWebsiteURLRequired(err error) bool {
	return errors.Is(err, ErrWebsiteURLRequired)
}

func IsInvalidWebsiteURL(err error) bool {
	return errors.Is(err, ErrInvalidWebsiteURL)
}

func IsEmptyWebsiteText(err error) bool {
	return errors.Is(err, ErrEmptyWebsiteText)
}

func IsICPPersonaNotFound(err error) bool {
	return errors.Is(err, ErrICPPersonaNotFound)
}

func IsICPPersonaAlreadyExists(err error) bool {
	return errors.Is(err, ErrICPPersonaAlreadyExists)
}

func IsPersonaFieldsRequired(err error) bool {
	return errors.Is(err, ErrPersonaFieldsRequired)
}

func IsUnsupportedFileFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFileFormat)
}

func IsEmptyImportFile(err error) bool {
	return errors.Is(err, ErrEmptyImportFile)
}

func IsMissingColumns(err error) bool {
	return errors.Is(err, ErrMissingColumns)
}

func IsInvalidDomainType(err error) bool {
	return errors.Is(err, ErrInvalidDomainType)
}

func IsEmptyDomainValue(err error) bool {
	return errors.Is(err, ErrEmptyDomainValue)
}

func IsInvalidNumericValue(err error) bool {
	return errors.Is(err, ErrInvalidNumericValue)
}

func IsEmptyRequiredCell(err error) bool {
	return errors.Is(err, ErrEmptyRequiredCell)
}

func IsNoICPPersonas(err error) bool {
	return errors.Is(err, ErrNoICPPersonas)
}

func IsEmptyCompletionResponse(err error) bool {
	return errors.Is(err, ErrEmptyCompletionResponse)
}

func IsSchemaParse(err error) bool {
	return errors.Is(err, ErrSchemaParse)
}

func IsMissingSelectedActions(err error) bool {
	return errors.Is(err, ErrMissingSelectedActions)
}

func IsNoActionsSelected(err error) bool {
	return errors.Is(err, ErrNoActionsSelected)
}

func IsInvalidActionID(err error) bool {
	return errors.Is(err, ErrInvalidActionID)
}

func IsMissingExamples(err error) bool {
	return errors.Is(err, ErrMissingExamples)
}

func IsNoExamplesGenerated(err error) bool {
	return errors.Is(err, ErrNoExamplesGenerated)
}

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsCacheNotAvailable(err error) bool {
	return errors.Is(err, ErrCacheNotAvailable)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}
