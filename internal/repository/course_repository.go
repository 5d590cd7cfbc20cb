package repository

import (
	"online_course_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindWithInstructors(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructors.User").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc, id asc")
		}).
		First(&course, id).Error
	return &course, err
}

// FindWithQuestions 预加载 课程 -> 课时 -> 题目 -> 选项，用于整卷评分
func (r *CourseRepository) FindWithQuestions(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc, id asc")
		}).
		Preload("Lessons.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Preload("Lessons.Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Omit("Instructors", "Lessons", "Enrollments").Save(course).Error
}

func (r *CourseRepository) List(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64
	query := r.DB.Model(&model.Course{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("pub_date desc, id desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

// AddInstructor course 必须是已加载的完整记录，关联写入会触发课程的保存钩子
func (r *CourseRepository) AddInstructor(course *model.Course, instructor *model.Instructor) error {
	return r.DB.Model(course).Omit("Instructors.*").Association("Instructors").Append(instructor)
}

func (r *CourseRepository) ListInstructors(courseID uint) ([]*model.Instructor, error) {
	var instructors []*model.Instructor
	err := r.DB.Preload("User").
		Joins("JOIN course_instructors ci ON ci.instructor_id = instructors.id").
		Where("ci.course_id = ?", courseID).
		Order("instructors.id asc").
		Find(&instructors).Error
	return instructors, err
}

func (r *CourseRepository) IncrementEnrollment(tx *gorm.DB, courseID uint) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Model(&model.Course{}).
		Where("id = ?", courseID).
		UpdateColumn("total_enrollment", gorm.Expr("total_enrollment + ?", 1)).Error
}

// Delete 级联删除课时、题目、选项、选课记录与提交
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&model.Lesson{}).Where("course_id = ?", id).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if err := deleteLessons(tx, lessonIDs); err != nil {
			return err
		}

		var enrollmentIDs []uint
		if err := tx.Model(&model.Enrollment{}).Where("course_id = ?", id).Pluck("id", &enrollmentIDs).Error; err != nil {
			return err
		}
		if len(enrollmentIDs) > 0 {
			if err := tx.Where("enrollment_id IN ?", enrollmentIDs).Delete(&model.Submission{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", enrollmentIDs).Delete(&model.Enrollment{}).Error; err != nil {
				return err
			}
		}

		course := &model.Course{BaseModel: model.BaseModel{ID: id}}
		if err := tx.Model(course).Association("Instructors").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, id).Error
	})
}
