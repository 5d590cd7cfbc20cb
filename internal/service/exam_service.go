package service

import (
	"context"
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/util"
	"online_course_backend/pkg/logger"
	"online_course_backend/pkg/monitoring"
	"online_course_backend/pkg/tracing"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type ExamService struct {
	Courses     *repository.CourseRepository
	Enrollments *repository.EnrollmentRepository
	Questions   *repository.QuestionRepository
	Submissions *repository.SubmissionRepository

	mu             sync.RWMutex
	passPercentage float64
}

func NewExamService(
	courses *repository.CourseRepository,
	enrollments *repository.EnrollmentRepository,
	questions *repository.QuestionRepository,
	submissions *repository.SubmissionRepository,
	passPercentage float64,
) *ExamService {
	return &ExamService{
		Courses:        courses,
		Enrollments:    enrollments,
		Questions:      questions,
		Submissions:    submissions,
		passPercentage: passPercentage,
	}
}

// ExamResult 一次提交的整卷评分
type ExamResult struct {
	SubmissionID      string          `json:"submissionId"`
	EnrollmentID      uint            `json:"enrollmentId"`
	CourseID          uint            `json:"courseId"`
	Questions         []QuestionScore `json:"questions"`
	SelectedChoiceIDs []uint          `json:"selectedChoiceIds"`
	TotalPoints       float64         `json:"totalPoints"`
	PossiblePoints    int             `json:"possiblePoints"`
	Grade             float64         `json:"grade"` // 0-100
	Passed            bool            `json:"passed"`
}

func (s *ExamService) PassPercentage() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.passPercentage
}

// SetPassPercentage 配置热更新时调用
func (s *ExamService) SetPassPercentage(p float64) {
	s.mu.Lock()
	s.passPercentage = p
	s.mu.Unlock()
}

// Submit 记录一次考试提交，所有选项必须属于该选课记录对应课程的题目
func (s *ExamService) Submit(enrollmentID uint, choiceIDs []uint) (*model.Submission, error) {
	enrollment, err := s.Enrollments.FindByID(enrollmentID)
	if err != nil {
		return nil, notFound(err, util.ErrEnrollmentNotFound)
	}

	selected, err := s.resolveChoices(enrollment.CourseID, choiceIDs)
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{EnrollmentID: enrollment.ID, Choices: selected}
	if err := s.Submissions.Create(submission); err != nil {
		return nil, err
	}

	logger.Log.Info("exam submitted",
		zap.String("submissionId", submission.ID),
		zap.Uint("enrollmentId", enrollment.ID),
		zap.Int("choices", len(selected)),
	)
	return submission, nil
}

// Resubmit 替换已有提交的选项集合
func (s *ExamService) Resubmit(submissionID string, choiceIDs []uint) (*model.Submission, error) {
	submission, err := s.Submissions.FindByID(submissionID)
	if err != nil {
		return nil, notFound(err, util.ErrSubmissionNotFound)
	}
	if submission.Enrollment == nil {
		return nil, util.ErrEnrollmentNotFound
	}

	selected, err := s.resolveChoices(submission.Enrollment.CourseID, choiceIDs)
	if err != nil {
		return nil, err
	}

	submission.Enrollment = nil
	if err := s.Submissions.ReplaceChoices(submission, selected); err != nil {
		return nil, err
	}
	submission.Choices = selected

	logger.Log.Info("exam resubmitted",
		zap.String("submissionId", submission.ID),
		zap.Int("choices", len(selected)),
	)
	return submission, nil
}

func (s *ExamService) DeleteSubmission(submissionID string) error {
	if _, err := s.Submissions.FindByID(submissionID); err != nil {
		return notFound(err, util.ErrSubmissionNotFound)
	}
	return s.Submissions.Delete(submissionID)
}

// resolveChoices 去重后加载选项，校验全部存在且属于 courseID
func (s *ExamService) resolveChoices(courseID uint, choiceIDs []uint) ([]model.Choice, error) {
	ids := make([]uint, 0, len(choiceIDs))
	seen := make(map[uint]bool, len(choiceIDs))
	for _, id := range choiceIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	choices, err := s.Questions.FindChoicesByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(choices) != len(ids) {
		return nil, util.ErrChoiceNotFound
	}

	selected := make([]model.Choice, 0, len(choices))
	for _, c := range choices {
		if c.Question == nil || c.Question.Lesson == nil || c.Question.Lesson.CourseID != courseID {
			return nil, util.ErrChoiceNotInCourse
		}
		c.Question = nil
		selected = append(selected, c)
	}
	return selected, nil
}

// GradeSubmission 对课程内每道题调用 ScoreQuestion 并汇总。
// 任意题目没有选项时整次评分失败。
func (s *ExamService) GradeSubmission(ctx context.Context, submissionID string) (*ExamResult, error) {
	_, span := tracing.Tracer.Start(ctx, "ExamService.GradeSubmission")
	defer span.End()
	span.SetAttributes(attribute.String("submission.id", submissionID))

	result, err := s.grade(submissionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("course.id", int64(result.CourseID)),
		attribute.Float64("exam.grade", result.Grade),
		attribute.Bool("exam.passed", result.Passed),
	)
	monitoring.ObserveExam(result.Grade, result.Passed)
	return result, nil
}

func (s *ExamService) grade(submissionID string) (*ExamResult, error) {
	submission, err := s.Submissions.FindByID(submissionID)
	if err != nil {
		return nil, notFound(err, util.ErrSubmissionNotFound)
	}
	if submission.Enrollment == nil {
		return nil, util.ErrEnrollmentNotFound
	}

	course, err := s.Courses.FindWithQuestions(submission.Enrollment.CourseID)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}

	result := &ExamResult{
		SubmissionID:      submission.ID,
		EnrollmentID:      submission.EnrollmentID,
		CourseID:          course.ID,
		SelectedChoiceIDs: submission.ChoiceIDs(),
	}

	for _, lesson := range course.Lessons {
		for i := range lesson.Questions {
			q := &lesson.Questions[i]
			score, err := ScoreQuestion(q, submission.Choices)
			if err != nil {
				logger.Log.Error("grading aborted",
					zap.String("submissionId", submission.ID),
					zap.Uint("questionId", q.ID),
					zap.Error(err),
				)
				return nil, err
			}
			result.Questions = append(result.Questions, score)
			result.TotalPoints += score.Points
			result.PossiblePoints += score.MaxGrade
		}
	}

	if result.PossiblePoints > 0 {
		result.Grade = result.TotalPoints / float64(result.PossiblePoints) * 100
	}
	result.Passed = result.Grade > s.PassPercentage()

	logger.Log.Info("exam graded",
		zap.String("submissionId", submission.ID),
		zap.Uint("courseId", course.ID),
		zap.Float64("points", result.TotalPoints),
		zap.Int("possible", result.PossiblePoints),
		zap.Float64("grade", result.Grade),
		zap.Bool("passed", result.Passed),
	)
	return result, nil
}

func (s *ExamService) ListSubmissions(enrollmentID uint) ([]model.Submission, error) {
	if _, err := s.Enrollments.FindByID(enrollmentID); err != nil {
		return nil, notFound(err, util.ErrEnrollmentNotFound)
	}
	return s.Submissions.ListByEnrollment(enrollmentID)
}
