package service

import (
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/util"
	"online_course_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

const DefaultQuestionGrade = 1

type CourseService struct {
	Courses     *repository.CourseRepository
	Lessons     *repository.LessonRepository
	Questions   *repository.QuestionRepository
	People      *repository.PeopleRepository
	Enrollments *repository.EnrollmentRepository
}

func NewCourseService(
	courses *repository.CourseRepository,
	lessons *repository.LessonRepository,
	questions *repository.QuestionRepository,
	people *repository.PeopleRepository,
	enrollments *repository.EnrollmentRepository,
) *CourseService {
	return &CourseService{
		Courses:     courses,
		Lessons:     lessons,
		Questions:   questions,
		People:      people,
		Enrollments: enrollments,
	}
}

type CourseRequest struct {
	Name        string     `json:"name"`
	Image       string     `json:"image"`
	Description string     `json:"description"`
	PubDate     *time.Time `json:"pubDate"`
}

type LessonRequest struct {
	Title   string `json:"title"`
	Order   int    `json:"order"`
	Content string `json:"content"`
}

type ChoiceRequest struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionRequest struct {
	Text    string          `json:"text"`
	Grade   *int            `json:"grade"`
	Choices []ChoiceRequest `json:"choices" binding:"required"`
}

func (s *CourseService) CreateCourse(req CourseRequest) (*model.Course, error) {
	course := model.NewCourse(req.Name, req.Description)
	course.Image = req.Image
	course.PubDate = req.PubDate

	if err := s.Courses.Create(course); err != nil {
		return nil, err
	}
	logger.Log.Info("course created", zap.Uint("courseId", course.ID), zap.String("name", course.Name))
	return course, nil
}

func (s *CourseService) AddInstructor(courseID, instructorID uint) error {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return notFound(err, util.ErrCourseNotFound)
	}
	instructor, err := s.People.FindInstructorByID(instructorID)
	if err != nil {
		return notFound(err, util.ErrInstructorNotFound)
	}
	instructor.User = nil
	return s.Courses.AddInstructor(course, instructor)
}

func (s *CourseService) AddLesson(courseID uint, req LessonRequest) (*model.Lesson, error) {
	if _, err := s.Courses.FindByID(courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}

	lesson := model.NewLesson(courseID, req.Title, req.Order, req.Content)
	if err := s.Lessons.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// AddQuestion 题目与选项一并创建；没有选项的题目无法评分，直接拒绝
func (s *CourseService) AddQuestion(lessonID uint, req QuestionRequest) (*model.Question, error) {
	if len(req.Choices) == 0 {
		return nil, util.ErrQuestionWithoutChoices
	}
	if _, err := s.Lessons.FindByID(lessonID); err != nil {
		return nil, notFound(err, util.ErrLessonNotFound)
	}

	grade := DefaultQuestionGrade
	if req.Grade != nil {
		grade = *req.Grade
	}

	q := model.NewQuestion(lessonID, req.Text, grade)
	for _, c := range req.Choices {
		q.Choices = append(q.Choices, *model.NewChoice(0, c.Text, c.IsCorrect))
	}

	if err := s.Questions.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *CourseService) AddChoice(questionID uint, req ChoiceRequest) (*model.Choice, error) {
	if _, err := s.Questions.FindQuestionByID(questionID); err != nil {
		return nil, notFound(err, util.ErrQuestionNotFound)
	}
	choice := model.NewChoice(questionID, req.Text, req.IsCorrect)
	if err := s.Questions.CreateChoice(choice); err != nil {
		return nil, err
	}
	return choice, nil
}

// RemoveChoice 不允许删除题目的最后一个选项
func (s *CourseService) RemoveChoice(questionID, choiceID uint) error {
	q, err := s.Questions.FindQuestionByID(questionID)
	if err != nil {
		return notFound(err, util.ErrQuestionNotFound)
	}
	found := false
	for _, c := range q.Choices {
		if c.ID == choiceID {
			found = true
			break
		}
	}
	if !found {
		return util.ErrChoiceNotFound
	}

	count, err := s.Questions.CountChoices(questionID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return util.ErrQuestionWithoutChoices
	}
	return s.Questions.DeleteChoice(choiceID)
}

// GetCourseDetail 返回课程、讲师与课时；userID 为 0 表示匿名访问
func (s *CourseService) GetCourseDetail(courseID, userID uint) (*model.Course, error) {
	course, err := s.Courses.FindWithInstructors(courseID)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	if userID != 0 {
		if e, err := s.Enrollments.FindByUserAndCourse(userID, courseID); err == nil && e != nil {
			course.IsEnrolled = true
		}
	}
	return course, nil
}

func (s *CourseService) ListCourses(page, limit int, userID uint) ([]model.Course, int64, error) {
	page, limit = util.NormalizePage(page, limit)
	courses, total, err := s.Courses.List(page, limit)
	if err != nil {
		return nil, 0, err
	}
	if userID == 0 || len(courses) == 0 {
		return courses, total, nil
	}

	enrolled, err := s.Enrollments.CourseIDsForUser(userID)
	if err != nil {
		return nil, 0, err
	}
	set := make(map[uint]bool, len(enrolled))
	for _, id := range enrolled {
		set[id] = true
	}
	for i := range courses {
		courses[i].IsEnrolled = set[courses[i].ID]
	}
	return courses, total, nil
}

func (s *CourseService) DeleteCourse(courseID uint) error {
	if _, err := s.Courses.FindByID(courseID); err != nil {
		return notFound(err, util.ErrCourseNotFound)
	}
	if err := s.Courses.Delete(courseID); err != nil {
		logger.Log.Error("delete course failed", zap.Uint("courseId", courseID), zap.Error(err))
		return err
	}
	return nil
}

func (s *CourseService) DeleteLesson(lessonID uint) error {
	if _, err := s.Lessons.FindByID(lessonID); err != nil {
		return notFound(err, util.ErrLessonNotFound)
	}
	return s.Lessons.Delete(lessonID)
}

// UpdateCourse 只覆盖请求中的非零字段
func (s *CourseService) UpdateCourse(courseID uint, req CourseRequest) (*model.Course, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	if req.Name != "" {
		course.Name = req.Name
	}
	if req.Image != "" {
		course.Image = req.Image
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.PubDate != nil {
		course.PubDate = req.PubDate
	}
	if err := s.Courses.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ListInstructors(courseID uint) ([]*model.Instructor, error) {
	if _, err := s.Courses.FindByID(courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	return s.Courses.ListInstructors(courseID)
}

func (s *CourseService) ListLessons(courseID uint) ([]model.Lesson, error) {
	if _, err := s.Courses.FindByID(courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	return s.Lessons.ListByCourse(courseID)
}

// UpdateLesson 标题与内容为空时保留原值，Order 总是覆盖
func (s *CourseService) UpdateLesson(lessonID uint, req LessonRequest) (*model.Lesson, error) {
	lesson, err := s.Lessons.FindByID(lessonID)
	if err != nil {
		return nil, notFound(err, util.ErrLessonNotFound)
	}
	if req.Title != "" {
		lesson.Title = req.Title
	}
	if req.Content != "" {
		lesson.Content = req.Content
	}
	lesson.Order = req.Order
	lesson.Course = nil
	if err := s.Lessons.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) ListQuestions(lessonID uint) ([]model.Question, error) {
	if _, err := s.Lessons.FindByID(lessonID); err != nil {
		return nil, notFound(err, util.ErrLessonNotFound)
	}
	return s.Questions.ListByLesson(lessonID)
}

// UpdateQuestion 修改题干与分值，选项通过 AddChoice/UpdateChoice/RemoveChoice 维护
func (s *CourseService) UpdateQuestion(questionID uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.Questions.FindQuestionByID(questionID)
	if err != nil {
		return nil, notFound(err, util.ErrQuestionNotFound)
	}
	if req.Text != "" {
		q.QuestionText = req.Text
	}
	if req.Grade != nil {
		q.Grade = *req.Grade
	}
	if err := s.Questions.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *CourseService) DeleteQuestion(questionID uint) error {
	if _, err := s.Questions.FindQuestionByID(questionID); err != nil {
		return notFound(err, util.ErrQuestionNotFound)
	}
	return s.Questions.DeleteQuestion(questionID)
}

func (s *CourseService) UpdateChoice(choiceID uint, req ChoiceRequest) (*model.Choice, error) {
	found, err := s.Questions.FindChoicesByIDs([]uint{choiceID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, util.ErrChoiceNotFound
	}
	choice := found[0]
	if req.Text != "" {
		choice.ChoiceText = req.Text
	}
	choice.IsCorrect = req.IsCorrect
	choice.Question = nil
	if err := s.Questions.UpdateChoice(&choice); err != nil {
		return nil, err
	}
	return &choice, nil
}
