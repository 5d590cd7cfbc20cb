package service

import (
	"fmt"
	"online_course_backend/internal/model"
	"online_course_backend/internal/util"
	"online_course_backend/pkg/logger"

	"go.uber.org/zap"
)

// QuestionScore 单题得分
type QuestionScore struct {
	QuestionID uint    `json:"questionId"`
	Correct    int     `json:"correct"` // 判定一致的选项数
	Total      int     `json:"total"`
	Points     float64 `json:"points"`
	MaxGrade   int     `json:"maxGrade"`
}

func (s QuestionScore) Percentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// ScoreQuestion 按逐项一致计分：选中的正确项与未选的错误项各记一分，
// 得分 = 一致数 / 选项总数 * 题目分值。
// 所选选项中没有任何属于本题的正确项时直接记 0 分，不再逐项比较。
// question.Choices 必须已加载；选项为空属于配置错误，返回 ErrQuestionWithoutChoices。
func ScoreQuestion(question *model.Question, selected []model.Choice) (QuestionScore, error) {
	totalItems := len(question.Choices)
	if totalItems == 0 {
		return QuestionScore{}, fmt.Errorf("%w: question %d", util.ErrQuestionWithoutChoices, question.ID)
	}

	picked := make(map[uint]struct{}, len(selected))
	selectedCorrect := 0
	for _, c := range selected {
		if _, dup := picked[c.ID]; dup {
			continue
		}
		picked[c.ID] = struct{}{}
		if c.QuestionID == question.ID && c.IsCorrect {
			selectedCorrect++
		}
	}

	correct := 0
	if selectedCorrect > 0 {
		for _, choice := range question.Choices {
			_, isSelected := picked[choice.ID]
			if choice.IsCorrect && isSelected {
				correct++
			} else if !choice.IsCorrect && !isSelected {
				correct++
			}
		}
	}

	percentage := float64(correct) / float64(totalItems)
	points := percentage * float64(question.Grade)

	logger.Log.Debug("question scored",
		zap.Uint("questionId", question.ID),
		zap.Int("correct", correct),
		zap.Int("total", totalItems),
		zap.Float64("percentage", percentage),
		zap.Float64("points", points),
		zap.Int("grade", question.Grade),
	)

	return QuestionScore{
		QuestionID: question.ID,
		Correct:    correct,
		Total:      totalItems,
		Points:     points,
		MaxGrade:   question.Grade,
	}, nil
}
