package forms

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/aretw0/clubforms/pkg/registry"
	"github.com/aretw0/clubforms/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

// QuestionType discriminates question and answer records.
type QuestionType string

const (
	MCQ  QuestionType = "MCQ"
	Text QuestionType = "TEXT"
)

// Schema IDs understood by the default registry.
const (
	QuizQuestionID     = "quiz-question"
	QuizAnswerID       = "quiz-answer"
	FeedbackQuestionID = "feedback-question"
	FeedbackAnswerID   = "feedback-answer"
	GalleryItemID      = "gallery-item"
	BlogImageID        = "blog-image"
	GetUserID          = "get-user"
	EditUserID         = "edit-user"
	EditUserImageID    = "edit-user-image"
	AddUserLinkID      = "add-user-link"
	DeleteUserLinkID   = "delete-user-link"
	ClubRegistrationID = "club-registration"
)

// Form binds a schema to the Go record it decodes into.
type Form[T any] struct {
	ID          string
	Description string
	Schema      schema.Type
	decode      func(map[string]any) (T, error)
}

// Parse validates raw and decodes the normalized value into T.
// A nil raw value is treated as absent input.
func (f *Form[T]) Parse(raw any) (T, error) {
	var zero T
	if raw == nil {
		raw = schema.Absent
	}
	value, err := schema.Validate(f.Schema, raw)
	if err != nil {
		return zero, err
	}
	m, _ := value.(map[string]any)
	return f.decodeMap(m)
}

func (f *Form[T]) decodeMap(m map[string]any) (T, error) {
	if f.decode != nil {
		return f.decode(m)
	}
	return decodeInto[T](m)
}

// Entry adapts the form for registration.
func (f *Form[T]) Entry() registry.Entry {
	return registry.Entry{
		ID:          f.ID,
		Description: f.Description,
		Schema:      f.Schema,
		Decode: func(value any) (any, error) {
			m, _ := value.(map[string]any)
			return f.decodeMap(m)
		},
	}
}

func decodeInto[T any](m map[string]any) (T, error) {
	var out T
	if m == nil {
		return out, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(answerHook),
		Result:     &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(m); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}

// Answer holds either a chosen option number or free text.
type Answer struct {
	Option int
	Text   string
	IsText bool
}

// OptionAnswer creates an answer choosing option n.
func OptionAnswer(n int) Answer { return Answer{Option: n} }

// TextAnswer creates a free text answer.
func TextAnswer(s string) Answer { return Answer{Text: s, IsText: true} }

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.IsText {
		return json.Marshal(a.Text)
	}
	return json.Marshal(a.Option)
}

func (a Answer) String() string {
	if a.IsText {
		return a.Text
	}
	return fmt.Sprintf("option %d", a.Option)
}

var answerType = reflect.TypeOf(Answer{})

func answerHook(from, to reflect.Type, data any) (any, error) {
	if to != answerType {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return OptionAnswer(v), nil
	case string:
		return TextAnswer(v), nil
	default:
		return nil, fmt.Errorf("answer must be an int or a string, got %T", data)
	}
}

// answerShape accepts a positive integer or any string.
func answerShape() schema.Type {
	return schema.Or(schema.Int(schema.Positive()), schema.String())
}
