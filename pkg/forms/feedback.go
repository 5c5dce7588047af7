package forms

import (
	"fmt"

	"github.com/aretw0/clubforms/pkg/schema"
)

// Dispatch selects how FeedbackQuestion resolves its variants.
type Dispatch string

const (
	// DispatchFallback tries the MCQ shape, then the TEXT shape. When both
	// fail, an MCQ record that only broke its checks reports those; any other
	// record reports the TEXT shape's issues.
	DispatchFallback Dispatch = "fallback"
	// DispatchTagged reads questionType first and checks the matching shape
	// only, like QuizQuestion.
	DispatchTagged Dispatch = "tagged"
)

// ParseDispatch converts a configuration value to a Dispatch.
// The empty string selects DispatchFallback.
func ParseDispatch(s string) (Dispatch, error) {
	switch Dispatch(s) {
	case "", DispatchFallback:
		return DispatchFallback, nil
	case DispatchTagged:
		return DispatchTagged, nil
	default:
		return "", fmt.Errorf("unsupported feedback dispatch %q (want %q or %q)", s, DispatchFallback, DispatchTagged)
	}
}

// FeedbackQuestion is either an MCQFeedbackQuestion or a TextFeedbackQuestion.
type FeedbackQuestion interface {
	Kind() QuestionType
	Common() FeedbackQuestionBase
}

// FeedbackQuestionBase holds the fields shared by every feedback question.
// Unlike quiz questions, Question may be empty and Image must be a URL.
type FeedbackQuestionBase struct {
	ID           int          `json:"id" mapstructure:"id"`
	QuestionType QuestionType `json:"questionType" mapstructure:"questionType"`
	Question     string       `json:"question" mapstructure:"question"`
	Image        *string      `json:"image,omitempty" mapstructure:"image"`
}

// MCQFeedbackQuestion offers at least five options.
type MCQFeedbackQuestion struct {
	FeedbackQuestionBase `mapstructure:",squash"`
	Options              []string `json:"options" mapstructure:"options"`
	Answer               int      `json:"answer" mapstructure:"answer"`
}

func (q MCQFeedbackQuestion) Kind() QuestionType            { return MCQ }
func (q MCQFeedbackQuestion) Common() FeedbackQuestionBase { return q.FeedbackQuestionBase }

// TextFeedbackQuestion carries a free text answer, possibly empty.
type TextFeedbackQuestion struct {
	FeedbackQuestionBase `mapstructure:",squash"`
	Answer               string `json:"answer" mapstructure:"answer"`
}

func (q TextFeedbackQuestion) Kind() QuestionType            { return Text }
func (q TextFeedbackQuestion) Common() FeedbackQuestionBase { return q.FeedbackQuestionBase }

// FeedbackAnswer has the same shape as QuizAnswer.
type FeedbackAnswer struct {
	QuestionID int    `json:"questionId" mapstructure:"questionId"`
	Answer     Answer `json:"answer" mapstructure:"answer"`
}

var feedbackQuestionBase = schema.Object(
	schema.Key("id", schema.Int()),
	schema.Key("question", schema.String()),
	schema.Key("image", schema.Optional(schema.String(schema.URL()))),
)

var (
	feedbackMCQ = feedbackQuestionBase.Extend(
		schema.Key("questionType", schema.Literal(string(MCQ))),
		schema.Key("options", schema.Slice(schema.String(),
			schema.MinItems(5).WithMessage("At least 5 options are required"))),
		schema.Key("answer", schema.Int(schema.Positive())),
	)
	feedbackText = feedbackQuestionBase.Extend(
		schema.Key("questionType", schema.Literal(string(Text))),
		schema.Key("answer", schema.String()),
	)
)

// FeedbackQuestionSchema resolves by trial: MCQ first, then TEXT.
var FeedbackQuestionSchema = schema.Or(feedbackMCQ, feedbackText)

// TaggedFeedbackQuestionSchema dispatches on questionType.
var TaggedFeedbackQuestionSchema = schema.DiscriminatedUnion("questionType", feedbackMCQ, feedbackText)

var FeedbackAnswerSchema = schema.Object(
	schema.Key("questionId", schema.Int()),
	schema.Key("answer", answerShape()),
)

var FeedbackQuestionForm = &Form[FeedbackQuestion]{
	ID:          FeedbackQuestionID,
	Description: "Feedback question, MCQ or TEXT",
	Schema:      FeedbackQuestionSchema,
	decode:      decodeFeedbackQuestion,
}

var TaggedFeedbackQuestionForm = &Form[FeedbackQuestion]{
	ID:          FeedbackQuestionID,
	Description: "Feedback question, MCQ or TEXT",
	Schema:      TaggedFeedbackQuestionSchema,
	decode:      decodeFeedbackQuestion,
}

var FeedbackAnswerForm = &Form[FeedbackAnswer]{
	ID:          FeedbackAnswerID,
	Description: "Answer to a feedback question",
	Schema:      FeedbackAnswerSchema,
}

// FeedbackQuestionFormFor returns the feedback question form for d.
func FeedbackQuestionFormFor(d Dispatch) *Form[FeedbackQuestion] {
	if d == DispatchTagged {
		return TaggedFeedbackQuestionForm
	}
	return FeedbackQuestionForm
}

func decodeFeedbackQuestion(m map[string]any) (FeedbackQuestion, error) {
	tag, _ := m["questionType"].(string)
	switch QuestionType(tag) {
	case MCQ:
		q, err := decodeInto[MCQFeedbackQuestion](m)
		if err != nil {
			return nil, err
		}
		return q, nil
	case Text:
		q, err := decodeInto[TextFeedbackQuestion](m)
		if err != nil {
			return nil, err
		}
		return q, nil
	default:
		return nil, fmt.Errorf("unknown question type %q", tag)
	}
}
