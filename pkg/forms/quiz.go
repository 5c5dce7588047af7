package forms

import (
	"fmt"

	"github.com/aretw0/clubforms/pkg/schema"
)

// QuizQuestion is either an MCQQuizQuestion or a TextQuizQuestion.
type QuizQuestion interface {
	Kind() QuestionType
	Common() QuizQuestionBase
}

// QuizQuestionBase holds the fields shared by every quiz question.
type QuizQuestionBase struct {
	ID           int          `json:"id" mapstructure:"id"`
	QuestionType QuestionType `json:"questionType" mapstructure:"questionType"`
	Question     string       `json:"question" mapstructure:"question"`
	Image        *string      `json:"image,omitempty" mapstructure:"image"`
	Points       float64      `json:"points" mapstructure:"points"`
}

// MCQQuizQuestion offers 2 to 5 options; Answer is a positive option number.
type MCQQuizQuestion struct {
	QuizQuestionBase `mapstructure:",squash"`
	Options          []string `json:"options" mapstructure:"options"`
	Answer           int      `json:"answer" mapstructure:"answer"`
}

func (q MCQQuizQuestion) Kind() QuestionType        { return MCQ }
func (q MCQQuizQuestion) Common() QuizQuestionBase { return q.QuizQuestionBase }

// TextQuizQuestion expects a non-empty free text answer.
type TextQuizQuestion struct {
	QuizQuestionBase `mapstructure:",squash"`
	Answer           string `json:"answer" mapstructure:"answer"`
}

func (q TextQuizQuestion) Kind() QuestionType        { return Text }
func (q TextQuizQuestion) Common() QuizQuestionBase { return q.QuizQuestionBase }

// QuizAnswer is a participant's answer to one quiz question.
// Whether Answer matches the question's kind is left to the caller.
type QuizAnswer struct {
	QuestionID int    `json:"questionId" mapstructure:"questionId"`
	Answer     Answer `json:"answer" mapstructure:"answer"`
}

// quizImage accepts any string; the empty string normalizes to absent.
func quizImage() schema.Type {
	return schema.Optional(schema.Or(
		schema.Transform(schema.String(), func(v any) any {
			if v == "" {
				return schema.Absent
			}
			return v
		}),
		schema.String(schema.URL()),
	))
}

var quizQuestionBase = schema.Object(
	schema.Key("id", schema.Int()),
	schema.Key("question", schema.String(schema.MinLength(1).WithMessage("Question cannot be empty"))),
	schema.Key("image", quizImage()),
	schema.Key("points", schema.Number(schema.Positive())),
)

// QuizQuestionSchema dispatches on questionType.
var QuizQuestionSchema = schema.DiscriminatedUnion("questionType",
	quizQuestionBase.Extend(
		schema.Key("questionType", schema.Literal(string(MCQ))),
		schema.Key("options", schema.Slice(schema.String(),
			schema.ItemsBetween(2, 5).WithMessage("Only 2-5 options are allowed"))),
		schema.Key("answer", schema.Int(schema.Positive())),
	),
	quizQuestionBase.Extend(
		schema.Key("questionType", schema.Literal(string(Text))),
		schema.Key("answer", schema.String(schema.MinLength(1).WithMessage("Answer cannot be empty"))),
	),
)

// QuizAnswerSchema accepts a positive option number or a string answer.
var QuizAnswerSchema = schema.Object(
	schema.Key("questionId", schema.Int()),
	schema.Key("answer", answerShape()),
)

var QuizQuestionForm = &Form[QuizQuestion]{
	ID:          QuizQuestionID,
	Description: "Quiz question, MCQ or TEXT",
	Schema:      QuizQuestionSchema,
	decode:      decodeQuizQuestion,
}

var QuizAnswerForm = &Form[QuizAnswer]{
	ID:          QuizAnswerID,
	Description: "Answer to a quiz question",
	Schema:      QuizAnswerSchema,
}

func decodeQuizQuestion(m map[string]any) (QuizQuestion, error) {
	tag, _ := m["questionType"].(string)
	switch QuestionType(tag) {
	case MCQ:
		q, err := decodeInto[MCQQuizQuestion](m)
		if err != nil {
			return nil, err
		}
		return q, nil
	case Text:
		q, err := decodeInto[TextQuizQuestion](m)
		if err != nil {
			return nil, err
		}
		return q, nil
	default:
		return nil, fmt.Errorf("unknown question type %q", tag)
	}
}
