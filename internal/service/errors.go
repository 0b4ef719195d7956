package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrInvalidID            = errors.New("Improper id")
	ErrInvalidIdentity      = errors.New("Invalid identity")
	ErrInvalidRequestInfo   = errors.New("Improper or missing request parameters")
	ErrImproperEmailAddress = errors.New("Improper email address")
	ErrImproperPassword     = errors.New("Improper password")
	ErrEmailAddressTaken    = errors.New("Email address already registered")
	ErrCredentialNotFound   = errors.New("Login credentials record not found")
	ErrTokenNotMatch        = errors.New("Email verification tokens not match")
	ErrActivateNotAllowed   = errors.New("Request for activating member cannot be fulfilled")
	ErrMemberNotFound       = errors.New("Member not found")
	ErrMemberSuspended      = errors.New("Method not allowed due to member suspended or deactivated")
	ErrPostingNotAllowed    = errors.New("Method not allowed due to posting not allowed for this member")
	ErrCommentingNotAllowed = errors.New("Method not allowed due to commenting not allowed for this member")
	ErrPermissionDenied     = errors.New("Method not allowed for this member")
	ErrPostNotFound         = errors.New("Post not found")
	ErrCommentNotFound      = errors.New("Comment not found")
	ErrTopicNotFound        = errors.New("Topic not found")
	ErrNoticeNotFound       = errors.New("Notice not found")
	ErrContentTooLong       = errors.New("Content exceeds length limit")
	ErrFileNotSupported     = errors.New("File type not supported")
	ErrFileTooLarge         = errors.New("File exceeds size limit")
	UnExpectedError         = errors.New("Attempt failed due to an unexpected error")
)

var ErrorMap = map[error]int{
	ErrInvalidID:            BadRequest,
	ErrInvalidIdentity:      BadRequest,
	ErrInvalidRequestInfo:   BadRequest,
	ErrImproperEmailAddress: BadRequest,
	ErrImproperPassword:     BadRequest,
	ErrEmailAddressTaken:    BadRequest,
	ErrCredentialNotFound:   NotFound,
	ErrTokenNotMatch:        NotFound,
	ErrActivateNotAllowed:   Forbidden,
	ErrMemberNotFound:       NotFound,
	ErrMemberSuspended:      Forbidden,
	ErrPostingNotAllowed:    Forbidden,
	ErrCommentingNotAllowed: Forbidden,
	ErrPermissionDenied:     Forbidden,
	ErrPostNotFound:         NotFound,
	ErrCommentNotFound:      NotFound,
	ErrTopicNotFound:        NotFound,
	ErrNoticeNotFound:       NotFound,
	ErrContentTooLong:       BadRequest,
	ErrFileNotSupported:     BadRequest,
	ErrFileTooLarge:         BadRequest,
	UnExpectedError:         InternalServerError,
}
