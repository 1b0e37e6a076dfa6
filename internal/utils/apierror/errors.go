package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

// APIError is the uniform failure envelope of the service:
// {"result": false, "error_type": ..., "error_message": ...}.
type APIError struct {
	Result       bool   `json:"result"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
	Status       int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

// Error type tags are stable and part of the API contract.
const (
	TypeNotFound   = "ValueError"
	TypeForbidden  = "PermissionError"
	TypeConflict   = "IntegrityError"
	TypeValidation = "ValidationError"
	TypeInternal   = "InternalError"
)

var (
	InternalServerError = NewSimple(http.StatusInternalServerError, TypeInternal, "Internal server error")
	MalformedJSONError  = NewSimple(http.StatusBadRequest, TypeValidation, "Malformed JSON body")
	InvalidIDError      = NewSimple(http.StatusUnprocessableEntity, TypeValidation, "The provided ID is invalid, IDs are usually int > 0")

	MissingAPIKeyError = NewSimple(http.StatusUnprocessableEntity, TypeValidation, "api-key header is required")
	MissingFileError   = NewSimple(http.StatusUnprocessableEntity, TypeValidation, "file field is required")

	NoSuchTweetError = NewSimple(http.StatusNotFound, TypeNotFound, "No such tweet")
	NoSuchUserError  = NewSimple(http.StatusNotFound, TypeNotFound, "No such user")

	NotTweetAuthorError = NewSimple(http.StatusForbidden, TypeForbidden, "You are not author of the tweet")

	AlreadyLikedError     = NewSimple(http.StatusBadRequest, TypeConflict, "You already liked this tweet")
	NotLikedError         = NewSimple(http.StatusBadRequest, TypeConflict, "You didn't like this tweet")
	AlreadyFollowingError = NewSimple(http.StatusBadRequest, TypeConflict, "You already follower this user")
	NotFollowingError     = NewSimple(http.StatusBadRequest, TypeConflict, "You didn't followers this user")
)

// FromValidationError flattens validator failures into one 422 envelope.
func FromValidationError(err error) *APIError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return NewSimple(http.StatusUnprocessableEntity, TypeValidation, "Invalid request body")
	}

	problems := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems = append(problems, field+" is required")
		case "max":
			problems = append(problems, field+" is too long, max: "+fe.Param())
		case "min":
			problems = append(problems, field+" is too short, min: "+fe.Param())
		case "gt":
			problems = append(problems, field+" must be greater than "+fe.Param())
		default:
			problems = append(problems, field+" has an invalid value")
		}
	}

	return NewSimple(http.StatusUnprocessableEntity, TypeValidation, strings.Join(problems, "; "))
}

func NewSimple(status int, errType, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Result: false, ErrorType: errType, ErrorMessage: msg, Status: status}
}

// NewInvalidParamTypeError reports a path parameter that failed coercion.
// Uncoercible parameters are a validation failure, so this is a 422 like any
// other malformed input.
func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusUnprocessableEntity, TypeValidation,
		"Parameter '%s' has invalid type, expected: %s", name, dataType)
}
