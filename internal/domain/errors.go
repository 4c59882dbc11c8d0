package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrImageNotFound      = errors.New("image not found")
	ErrModelNotFound      = errors.New("model not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrQualityNotFound    = errors.New("quality metrics not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)
