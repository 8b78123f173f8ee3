package service

import "errors"

// Domain errors surfaced by the service layer. Handlers map these onto the
// HTTP error taxonomy with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("resource not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrRoleExists         = errors.New("role name already exists")
	ErrRoleInUse          = errors.New("role is referenced by users")
	ErrPermissionNotFound = errors.New("one or more permission ids do not exist")
	ErrRoleNotFound       = errors.New("role does not exist")

	// ErrNoRole is reported by the self-service permission listing when the
	// account carries no role. The authorization gate never surfaces it: there
	// a missing role is simply an empty permission set.
	ErrNoRole = errors.New("user has no role assigned")

	ErrUserHasClasses = errors.New("user still instructs classes")
	ErrTrainingInUse  = errors.New("training is referenced by classes")
	ErrStudentInUse   = errors.New("student is referenced by enrollments or certificates")

	ErrNotEnrolled      = errors.New("student is not enrolled in the class")
	ErrLessonNotInClass = errors.New("lesson does not belong to the class")

	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedFileType = errors.New("file type is not allowed")

	ErrCampaignClosed   = errors.New("campaign is not accepting donations")
	ErrCampaignNotFound = errors.New("campaign does not exist")
	ErrNotCampaignOwner = errors.New("campaign belongs to another user")
)
