package forms_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/clubforms/pkg/forms"
	"github.com/aretw0/clubforms/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcqQuestion(options int) map[string]any {
	opts := make([]any, options)
	for i := range opts {
		opts[i] = fmt.Sprintf("option %d", i+1)
	}
	return map[string]any{
		"questionType": "MCQ",
		"id":           1,
		"question":     "Pick one",
		"points":       10,
		"options":      opts,
		"answer":       1,
	}
}

func TestQuizQuestion_MCQEndToEnd(t *testing.T) {
	raw := map[string]any{
		"questionType": "MCQ",
		"id":           1,
		"question":     "2+2?",
		"points":       10,
		"options":      []any{"3", "4"},
		"answer":       2,
	}

	q, err := forms.QuizQuestionForm.Parse(raw)
	require.NoError(t, err)

	mcq, ok := q.(forms.MCQQuizQuestion)
	require.True(t, ok, "got %T", q)
	assert.Equal(t, forms.MCQ, mcq.Kind())
	assert.Equal(t, 1, mcq.ID)
	assert.Equal(t, "2+2?", mcq.Question)
	assert.Equal(t, 10.0, mcq.Points)
	assert.Equal(t, []string{"3", "4"}, mcq.Options)
	assert.Equal(t, 2, mcq.Answer)
	assert.Nil(t, mcq.Image)
}

func TestQuizQuestion_OptionBounds(t *testing.T) {
	for n := 0; n <= 7; n++ {
		_, err := schema.Validate(forms.QuizQuestionSchema, mcqQuestion(n))
		if n >= 2 && n <= 5 {
			assert.NoError(t, err, "options=%d", n)
			continue
		}
		issues := schema.Issues(err)
		require.Len(t, issues, 1, "options=%d", n)
		assert.Equal(t, schema.Path{"options"}, issues[0].Path)
		assert.Equal(t, schema.CodeConstraintViolation, issues[0].Code)
		assert.Equal(t, "Only 2-5 options are allowed", issues[0].Message)
	}
}

func TestQuizQuestion_ValidEqualsInputModuloImage(t *testing.T) {
	raw := mcqQuestion(4)
	raw["image"] = "https://cdn.club.dev/q1.png"

	out, err := schema.Validate(forms.QuizQuestionSchema, raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"questionType": "MCQ",
		"id":           1,
		"question":     "Pick one",
		"image":        "https://cdn.club.dev/q1.png",
		"points":       10.0,
		"options":      raw["options"],
		"answer":       1,
	}, out)
}

func TestQuizQuestion_TextEmptyQuestion(t *testing.T) {
	raw := map[string]any{"questionType": "TEXT", "id": 2, "question": "", "points": 5, "answer": "x"}

	_, err := forms.QuizQuestionForm.Parse(raw)
	issues := schema.Issues(err)
	require.Len(t, issues, 1)
	assert.Equal(t, schema.Path{"question"}, issues[0].Path)
	assert.Equal(t, schema.CodeConstraintViolation, issues[0].Code)
	assert.Equal(t, "Question cannot be empty", issues[0].Message)
}

func TestQuizQuestion_Text(t *testing.T) {
	raw := map[string]any{
		"questionType": "TEXT",
		"id":           3,
		"question":     "Capital of France?",
		"points":       2.5,
		"answer":       "Paris",
		"options":      "ignored for TEXT",
	}

	q, err := forms.QuizQuestionForm.Parse(raw)
	require.NoError(t, err)
	text, ok := q.(forms.TextQuizQuestion)
	require.True(t, ok, "got %T", q)
	assert.Equal(t, "Paris", text.Answer)
	assert.Equal(t, 2.5, text.Common().Points)

	raw["answer"] = ""
	_, err = forms.QuizQuestionForm.Parse(raw)
	require.Error(t, err)
	assert.Equal(t, "Answer cannot be empty", schema.Issues(err)[0].Message)
}

func TestQuizQuestion_ImageNormalization(t *testing.T) {
	tests := []struct {
		name      string
		image     any
		wantImage any
		wantErr   bool
	}{
		{"empty becomes absent", "", nil, false},
		{"url kept", "https://club.dev/a.png", "https://club.dev/a.png", false},
		{"any string kept", "uploads/a.png", "uploads/a.png", false},
		{"number rejected", 5, nil, true},
		{"null rejected", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := mcqQuestion(2)
			raw["image"] = tt.image

			out, err := schema.Validate(forms.QuizQuestionSchema, raw)
			if tt.wantErr {
				issues := schema.Issues(err)
				require.Len(t, issues, 1)
				assert.Equal(t, schema.Path{"image"}, issues[0].Path)
				return
			}
			require.NoError(t, err)
			image, present := out.(map[string]any)["image"]
			if tt.wantImage == nil {
				assert.False(t, present)
				return
			}
			assert.Equal(t, tt.wantImage, image)
		})
	}

	q, err := forms.QuizQuestionForm.Parse(mcqQuestion(2))
	require.NoError(t, err)
	assert.Nil(t, q.Common().Image)
}

func TestQuizQuestion_Idempotent(t *testing.T) {
	raw := mcqQuestion(3)
	raw["image"] = ""
	raw["extra"] = "dropped"

	first, err := schema.Validate(forms.QuizQuestionSchema, raw)
	require.NoError(t, err)
	second, err := schema.Validate(forms.QuizQuestionSchema, first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuizQuestion_UnknownDiscriminant(t *testing.T) {
	raw := mcqQuestion(9)
	raw["questionType"] = "ESSAY"
	raw["id"] = "bad"

	_, err := forms.QuizQuestionForm.Parse(raw)
	issues := schema.Issues(err)
	require.Len(t, issues, 1, "other branch errors are not reported")
	assert.Equal(t, schema.CodeUnknownDiscriminant, issues[0].Code)
	assert.Equal(t, schema.Path{"questionType"}, issues[0].Path)
}

func TestQuizQuestion_AllFieldErrors(t *testing.T) {
	raw := map[string]any{
		"questionType": "MCQ",
		"id":           1.5,
		"question":     "",
		"points":       0,
		"options":      []any{"only"},
		"answer":       -1,
	}

	_, err := forms.QuizQuestionForm.Parse(raw)
	issues := schema.Issues(err)
	require.Len(t, issues, 5)
	paths := make([]string, len(issues))
	for i, issue := range issues {
		paths[i] = issue.Path.String()
	}
	assert.Equal(t, []string{"id", "question", "points", "options", "answer"}, paths)
	assert.Equal(t, schema.CodeTypeMismatch, issues[0].Code)
}

func TestQuizAnswer(t *testing.T) {
	tests := []struct {
		name    string
		answer  any
		want     forms.Answer
		wantErr  bool
		wantCode schema.Code
	}{
		{"option", 2, forms.OptionAnswer(2), false, ""},
		{"option from json", 3.0, forms.OptionAnswer(3), false, ""},
		{"text", "Paris", forms.TextAnswer("Paris"), false, ""},
		{"empty text", "", forms.TextAnswer(""), false, ""},
		{"zero", 0, forms.Answer{}, true, schema.CodeConstraintViolation},
		{"negative", -4, forms.Answer{}, true, schema.CodeConstraintViolation},
		{"fraction", 1.5, forms.Answer{}, true, schema.CodeTypeMismatch},
		{"bool", true, forms.Answer{}, true, schema.CodeTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := forms.QuizAnswerForm.Parse(map[string]any{"questionId": 7, "answer": tt.answer})
			if tt.wantErr {
				issues := schema.Issues(err)
				require.Len(t, issues, 1)
				assert.Equal(t, schema.Path{"answer"}, issues[0].Path)
				assert.Equal(t, tt.wantCode, issues[0].Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 7, a.QuestionID)
			assert.Equal(t, tt.want, a.Answer)
		})
	}
}

func TestAnswer_JSON(t *testing.T) {
	b, err := forms.OptionAnswer(2).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "2", string(b))

	b, err = forms.TextAnswer("yes").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"yes"`, string(b))
}
