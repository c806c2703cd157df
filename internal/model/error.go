package model

import "fmt"

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrorKind is the stable numeric code reported to API callers.
type ErrorKind int

const (
	KindUndefined ErrorKind = iota
	KindQuery
	KindParamsValidation
	KindNoPermissions
	KindVKAccessDenied
	KindNeedHigherRole
	KindHaveImmunity
	KindStateDiverged
)

var defaultErrorMessages = map[ErrorKind]string{
	KindUndefined:        "Unknown error",
	KindQuery:            "Database query failed",
	KindParamsValidation: "Request parameters are invalid",
	KindNoPermissions:    "Not enough rights to call this method",
	KindVKAccessDenied:   "VK denied access to this action",
	KindNeedHigherRole:   "Your role is lower than the role of the target member",
	KindHaveImmunity:     "Target member has immunity from punishments",
	KindStateDiverged:    "Action was executed but chat member state was not updated",
}

// AppError is the closed set of failures a moderation action can end with.
type AppError struct {
	Kind    ErrorKind `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Code() int {
	return int(e.Kind)
}

// Is matches on kind only, so errors.Is(err, &AppError{Kind: KindQuery}) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newAppError(kind ErrorKind, message string) *AppError {
	if message == "" {
		message = defaultErrorMessages[kind]
	}
	return &AppError{Kind: kind, Message: message}
}

func NewQueryError(message string) *AppError {
	return newAppError(KindQuery, message)
}

func NewParamsValidationError(message string) *AppError {
	return newAppError(KindParamsValidation, message)
}

func NewNoPermissions() *AppError {
	return newAppError(KindNoPermissions, "")
}

func NewVKAccessDenied(message string) *AppError {
	return newAppError(KindVKAccessDenied, message)
}

func NewNeedHigherRole() *AppError {
	return newAppError(KindNeedHigherRole, "")
}

func NewHaveImmunity() *AppError {
	return newAppError(KindHaveImmunity, "")
}

// NewStateDiverged reports that the external side effect happened but the
// follow-up persistence did not. cause is kept for errors.As/Unwrap.
func NewStateDiverged(cause error) *AppError {
	e := newAppError(KindStateDiverged, "")
	e.Err = cause
	return e
}
