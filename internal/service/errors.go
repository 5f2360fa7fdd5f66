package service

import (
	"errors"
	"net/http"
)

const (
	CodeMissingFields      = "MISSING_FIELDS"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeRecipeNotFound     = "RECIPE_NOT_FOUND"
	CodeNotOwner           = "NOT_OWNER"
	CodeCommentNotFound    = "COMMENT_NOT_FOUND"
	CodeFamilyNotFound     = "FAMILY_NOT_FOUND"
	CodeNotAMember         = "NOT_A_MEMBER"
	CodeNotAdmin           = "NOT_ADMIN"
	CodeAdminCannotLeave   = "ADMIN_CANNOT_LEAVE"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeAlreadyMember      = "ALREADY_MEMBER"
	CodeDuplicateInvite    = "DUPLICATE_INVITATION"
	CodeInviteNotFound     = "INVITATION_NOT_FOUND"
	CodeVoteNotFound       = "VOTE_NOT_FOUND_OR_EXPIRED"
	CodeOptionNotFound     = "OPTION_NOT_FOUND"
	CodeProgressNotFound   = "PROGRESS_NOT_FOUND"
	CodeUnsupportedFile    = "UNSUPPORTED_FILE"
	CodeInternalError      = "INTERNAL_ERROR"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email is already registered")
	ErrUsernameExists     = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid request input")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrNotOwner           = errors.New("only the author can modify this recipe")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrFamilyNotFound     = errors.New("family not found")
	ErrNotAMember         = errors.New("user is not a member of this family")
	ErrNotAdmin           = errors.New("only the family admin can perform this action")
	ErrAdminCannotLeave   = errors.New("admin cannot leave the family, delete it instead")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyMember      = errors.New("user is already a member of this family")
	ErrDuplicateInvite    = errors.New("a pending invitation already exists for this user")
	ErrInviteNotFound     = errors.New("invitation not found or already handled")
	ErrVoteNotFound       = errors.New("vote not found or has expired")
	ErrOptionNotFound     = errors.New("vote option not found")
	ErrProgressNotFound   = errors.New("no cooking progress found for this recipe")
	ErrUnsupportedFile    = errors.New("unsupported file type")
	UnExpectedError       = errors.New("internal server error")
)

// ErrorMeta 业务错误对应的 HTTP 状态码和机器可读错误码
type ErrorMeta struct {
	Status int
	Code   string
}

var ErrorMap = map[error]ErrorMeta{
	ErrMissingFields:      {http.StatusBadRequest, CodeMissingFields},
	ErrInvalidEmail:       {http.StatusBadRequest, CodeInvalidEmail},
	ErrWeakPassword:       {http.StatusBadRequest, CodeWeakPassword},
	ErrEmailExists:        {http.StatusConflict, CodeEmailExists},
	ErrUsernameExists:     {http.StatusConflict, CodeUsernameExists},
	ErrInvalidCredentials: {http.StatusUnauthorized, CodeInvalidCredentials},
	ErrInvalidInput:       {http.StatusBadRequest, CodeInvalidInput},
	ErrRecipeNotFound:     {http.StatusNotFound, CodeRecipeNotFound},
	ErrNotOwner:           {http.StatusForbidden, CodeNotOwner},
	ErrCommentNotFound:    {http.StatusNotFound, CodeCommentNotFound},
	ErrFamilyNotFound:     {http.StatusNotFound, CodeFamilyNotFound},
	ErrNotAMember:         {http.StatusForbidden, CodeNotAMember},
	ErrNotAdmin:           {http.StatusForbidden, CodeNotAdmin},
	ErrAdminCannotLeave:   {http.StatusBadRequest, CodeAdminCannotLeave},
	ErrUserNotFound:       {http.StatusNotFound, CodeUserNotFound},
	ErrAlreadyMember:      {http.StatusConflict, CodeAlreadyMember},
	ErrDuplicateInvite:    {http.StatusConflict, CodeDuplicateInvite},
	ErrInviteNotFound:     {http.StatusNotFound, CodeInviteNotFound},
	ErrVoteNotFound:       {http.StatusNotFound, CodeVoteNotFound},
	ErrOptionNotFound:     {http.StatusNotFound, CodeOptionNotFound},
	ErrProgressNotFound:   {http.StatusNotFound, CodeProgressNotFound},
	ErrUnsupportedFile:    {http.StatusBadRequest, CodeUnsupportedFile},
	UnExpectedError:       {http.StatusInternalServerError, CodeInternalError},
}
