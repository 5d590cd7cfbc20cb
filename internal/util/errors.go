package util

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInstructorNotFound     = errors.New("instructor not found")
	ErrLearnerNotFound        = errors.New("learner not found")
	ErrLearnerExists          = errors.New("user is already registered as a learner")
	ErrCourseNotFound         = errors.New("course not found")
	ErrLessonNotFound         = errors.New("lesson not found")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrEnrollmentNotFound     = errors.New("enrollment not found")
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrQuestionWithoutChoices = errors.New("question has no choices")
	ErrChoiceNotFound         = errors.New("choice not found")
	ErrChoiceNotInCourse      = errors.New("choice does not belong to the enrolled course")
	ErrInvalidRating          = errors.New("rating must be between 0 and 5")
	ErrInvalidMode            = errors.New("invalid course mode")
	ErrInvalidOccupation      = errors.New("invalid occupation")
)
