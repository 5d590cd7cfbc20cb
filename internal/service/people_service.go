package service

import (
	"errors"
	"online_course_backend/internal/model"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/util"

	"gorm.io/gorm"
)

type PeopleService struct {
	Users  *repository.UserRepository
	People *repository.PeopleRepository
}

func NewPeopleService(users *repository.UserRepository, people *repository.PeopleRepository) *PeopleService {
	return &PeopleService{Users: users, People: people}
}

type InstructorRequest struct {
	UserID        uint  `json:"userId" binding:"required"`
	FullTime      *bool `json:"fullTime"`
	TotalLearners int   `json:"totalLearners"`
}

type LearnerRequest struct {
	UserID     uint             `json:"userId" binding:"required"`
	Occupation model.Occupation `json:"occupation"`
	SocialLink string           `json:"socialLink"`
}

func (s *PeopleService) RegisterInstructor(req InstructorRequest) (*model.Instructor, error) {
	if _, err := s.Users.FindByID(req.UserID); err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}

	instructor := model.NewInstructor(req.UserID, req.TotalLearners)
	if req.FullTime != nil {
		instructor.FullTime = *req.FullTime
	}
	if err := s.People.CreateInstructor(instructor); err != nil {
		return nil, err
	}
	return instructor, nil
}

func (s *PeopleService) RegisterLearner(req LearnerRequest) (*model.Learner, error) {
	if _, err := s.Users.FindByID(req.UserID); err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}

	existing, err := s.People.FindLearnerByUserID(req.UserID)
	if err == nil && existing != nil {
		return nil, util.ErrLearnerExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	learner := model.NewLearner(req.UserID)
	if req.Occupation != "" {
		if !req.Occupation.Valid() {
			return nil, util.ErrInvalidOccupation
		}
		learner.Occupation = req.Occupation
	}
	learner.SocialLink = req.SocialLink

	if err := s.People.CreateLearner(learner); err != nil {
		return nil, err
	}
	return learner, nil
}

func (s *PeopleService) ChangeOccupation(learnerID uint, occupation model.Occupation) (*model.Learner, error) {
	if !occupation.Valid() {
		return nil, util.ErrInvalidOccupation
	}
	learner, err := s.People.FindLearnerByID(learnerID)
	if err != nil {
		return nil, notFound(err, util.ErrLearnerNotFound)
	}
	learner.Occupation = occupation
	if err := s.People.UpdateLearner(learner); err != nil {
		return nil, err
	}
	return learner, nil
}

// UpdateInstructor nil 字段保持不变
func (s *PeopleService) UpdateInstructor(instructorID uint, fullTime *bool, totalLearners *int) (*model.Instructor, error) {
	instructor, err := s.People.FindInstructorByID(instructorID)
	if err != nil {
		return nil, notFound(err, util.ErrInstructorNotFound)
	}
	if fullTime != nil {
		instructor.FullTime = *fullTime
	}
	if totalLearners != nil {
		instructor.TotalLearners = *totalLearners
	}
	if err := s.People.UpdateInstructor(instructor); err != nil {
		return nil, err
	}
	return instructor, nil
}

func (s *PeopleService) FindUser(username string) (*model.User, error) {
	user, err := s.Users.FindByUsername(username)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	return user, nil
}
