package service

import (
	"context"
	"errors"
	"math"
	"online_course_backend/internal/model"
	"online_course_backend/internal/util"
	"testing"
)

func enroll(t *testing.T, f *fixture, username string, courseID uint) *model.Enrollment {
	t.Helper()
	u := f.user(t, username)
	e, _, err := f.enrollmentSvc.Enroll(u.ID, courseID, model.ModeHonor)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	return e
}

func TestGradeSubmissionFullCredit(t *testing.T) {
	f := newFixture(t)
	course, q1, q2 := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	sub, err := f.examSvc.Submit(e.ID, []uint{q1.Choices[0].ID, q2.Choices[1].ID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	res, err := f.examSvc.GradeSubmission(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("GradeSubmission: %v", err)
	}
	if res.PossiblePoints != 15 || res.TotalPoints != 15 {
		t.Fatalf("points: want=15/15 got=%v/%d", res.TotalPoints, res.PossiblePoints)
	}
	if res.Grade != 100 || !res.Passed {
		t.Fatalf("grade: want=100 passed got=%v passed=%t", res.Grade, res.Passed)
	}
	if len(res.Questions) != 2 || res.Questions[0].QuestionID != q1.ID {
		t.Fatalf("per-question scores: %+v", res.Questions)
	}
	if res.CourseID != course.ID || res.EnrollmentID != e.ID {
		t.Fatalf("result ids: %+v", res)
	}
}

func TestGradeSubmissionPartialCreditFails(t *testing.T) {
	f := newFixture(t)
	course, q1, q2 := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	sub, err := f.examSvc.Submit(e.ID, []uint{q1.Choices[0].ID, q1.Choices[1].ID, q2.Choices[1].ID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	res, err := f.examSvc.GradeSubmission(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("GradeSubmission: %v", err)
	}

	wantPoints := 2.0/3.0*10 + 5
	if math.Abs(res.TotalPoints-wantPoints) > 1e-9 {
		t.Fatalf("total points: want=%v got=%v", wantPoints, res.TotalPoints)
	}
	if res.Questions[0].Correct != 2 || res.Questions[0].Total != 3 {
		t.Fatalf("q1 agreement: %+v", res.Questions[0])
	}
	if res.Passed {
		t.Fatalf("grade %.2f should not pass at 80", res.Grade)
	}
}

func TestGradeSubmissionEmptySelection(t *testing.T) {
	f := newFixture(t)
	course, _, _ := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	sub, err := f.examSvc.Submit(e.ID, nil)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	res, err := f.examSvc.GradeSubmission(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("GradeSubmission: %v", err)
	}
	if res.TotalPoints != 0 || res.Grade != 0 || res.Passed {
		t.Fatalf("empty selection: %+v", res)
	}
	for _, q := range res.Questions {
		if q.Correct != 0 {
			t.Fatalf("no agreement credit without a correct pick: %+v", q)
		}
	}
}

func TestPassPercentageCanChange(t *testing.T) {
	f := newFixture(t)
	course, q1, _ := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	// q1 full credit, q2 untouched: 10/15
	sub, err := f.examSvc.Submit(e.ID, []uint{q1.Choices[0].ID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	res, err := f.examSvc.GradeSubmission(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("GradeSubmission: %v", err)
	}
	if res.Passed {
		t.Fatalf("%.2f should fail at 80", res.Grade)
	}

	f.examSvc.SetPassPercentage(60)
	if f.examSvc.PassPercentage() != 60 {
		t.Fatalf("PassPercentage: got=%v", f.examSvc.PassPercentage())
	}
	res, err = f.examSvc.GradeSubmission(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("GradeSubmission: %v", err)
	}
	if !res.Passed {
		t.Fatalf("%.2f should pass at 60", res.Grade)
	}
}

func TestSubmitRejectsChoicesFromOtherCourse(t *testing.T) {
	f := newFixture(t)
	course, _, _ := f.examCourse(t)
	_, otherQ, _ := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	_, err := f.examSvc.Submit(e.ID, []uint{otherQ.Choices[0].ID})
	if !errors.Is(err, util.ErrChoiceNotInCourse) {
		t.Fatalf("want ErrChoiceNotInCourse, got %v", err)
	}
}

func TestSubmitRejectsUnknownChoice(t *testing.T) {
	f := newFixture(t)
	course, q1, _ := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	_, err := f.examSvc.Submit(e.ID, []uint{q1.Choices[0].ID, 9999})
	if !errors.Is(err, util.ErrChoiceNotFound) {
		t.Fatalf("want ErrChoiceNotFound, got %v", err)
	}
}

func TestSubmitDeduplicatesChoices(t *testing.T) {
	f := newFixture(t)
	course, q1, _ := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	sub, err := f.examSvc.Submit(e.ID, []uint{q1.Choices[0].ID, q1.Choices[0].ID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	loaded, err := f.submissions.FindByID(sub.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(loaded.Choices) != 1 {
		t.Fatalf("want 1 stored choice, got %d", len(loaded.Choices))
	}
}

func TestSubmitUnknownEnrollment(t *testing.T) {
	f := newFixture(t)
	if _, err := f.examSvc.Submit(42, nil); !errors.Is(err, util.ErrEnrollmentNotFound) {
		t.Fatalf("want ErrEnrollmentNotFound, got %v", err)
	}
}

func TestGradeUnknownSubmission(t *testing.T) {
	f := newFixture(t)
	_, err := f.examSvc.GradeSubmission(context.Background(), model.GenerateUUID())
	if !errors.Is(err, util.ErrSubmissionNotFound) {
		t.Fatalf("want ErrSubmissionNotFound, got %v", err)
	}
}

func TestGradeFailsForQuestionWithoutChoices(t *testing.T) {
	f := newFixture(t)
	course, q1, _ := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	// a question without choices can only come from bypassing the course service
	bare := model.NewQuestion(q1.LessonID, "Broken", 3)
	if err := f.questions.CreateQuestion(bare); err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	sub, err := f.examSvc.Submit(e.ID, []uint{q1.Choices[0].ID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	_, err = f.examSvc.GradeSubmission(context.Background(), sub.ID)
	if !errors.Is(err, util.ErrQuestionWithoutChoices) {
		t.Fatalf("want ErrQuestionWithoutChoices, got %v", err)
	}
}

func TestGradeIgnoresDeletedLessons(t *testing.T) {
	f := newFixture(t)
	course, q1, q2 := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	extra, err := f.courseSvc.AddLesson(course.ID, LessonRequest{Title: "Extra", Order: 2})
	if err != nil {
		t.Fatalf("AddLesson: %v", err)
	}
	if _, err := f.courseSvc.AddQuestion(extra.ID, QuestionRequest{
		Text:    "Extra",
		Grade:   intPtr(100),
		Choices: []ChoiceRequest{{Text: "yes", IsCorrect: true}},
	}); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	if err := f.courseSvc.DeleteLesson(extra.ID); err != nil {
		t.Fatalf("DeleteLesson: %v", err)
	}

	sub, err := f.examSvc.Submit(e.ID, []uint{q1.Choices[0].ID, q2.Choices[1].ID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	res, err := f.examSvc.GradeSubmission(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("GradeSubmission: %v", err)
	}
	if res.PossiblePoints != 15 {
		t.Fatalf("deleted lesson must not count: possible=%d", res.PossiblePoints)
	}
}

func TestListSubmissions(t *testing.T) {
	f := newFixture(t)
	course, q1, _ := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	for i := 0; i < 2; i++ {
		if _, err := f.examSvc.Submit(e.ID, []uint{q1.Choices[i].ID}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	subs, err := f.examSvc.ListSubmissions(e.ID)
	if err != nil {
		t.Fatalf("ListSubmissions: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("want 2 submissions, got %d", len(subs))
	}
}

func TestResubmitReplacesChoices(t *testing.T) {
	f := newFixture(t)
	course, q1, q2 := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	sub, err := f.examSvc.Submit(e.ID, []uint{q1.Choices[1].ID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := f.examSvc.Resubmit(sub.ID, []uint{q1.Choices[0].ID, q2.Choices[1].ID}); err != nil {
		t.Fatalf("Resubmit: %v", err)
	}

	res, err := f.examSvc.GradeSubmission(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("GradeSubmission: %v", err)
	}
	if res.Grade != 100 {
		t.Fatalf("grade after resubmit: want=100 got=%v", res.Grade)
	}

	_, other, _ := f.examCourse(t)
	if _, err := f.examSvc.Resubmit(sub.ID, []uint{other.Choices[0].ID}); !errors.Is(err, util.ErrChoiceNotInCourse) {
		t.Fatalf("want ErrChoiceNotInCourse, got %v", err)
	}
}

func TestDeleteSubmission(t *testing.T) {
	f := newFixture(t)
	course, q1, _ := f.examCourse(t)
	e := enroll(t, f, "ada", course.ID)

	sub, err := f.examSvc.Submit(e.ID, []uint{q1.Choices[0].ID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := f.examSvc.DeleteSubmission(sub.ID); err != nil {
		t.Fatalf("DeleteSubmission: %v", err)
	}
	if _, err := f.examSvc.GradeSubmission(context.Background(), sub.ID); !errors.Is(err, util.ErrSubmissionNotFound) {
		t.Fatalf("want ErrSubmissionNotFound, got %v", err)
	}
	if err := f.examSvc.DeleteSubmission(sub.ID); !errors.Is(err, util.ErrSubmissionNotFound) {
		t.Fatalf("second delete: want ErrSubmissionNotFound, got %v", err)
	}
}
