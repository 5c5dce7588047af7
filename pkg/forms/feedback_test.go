package forms_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/clubforms/pkg/forms"
	"github.com/aretw0/clubforms/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedbackMCQ(options int) map[string]any {
	opts := make([]any, options)
	for i := range opts {
		opts[i] = fmt.Sprintf("rating %d", i+1)
	}
	return map[string]any{
		"questionType": "MCQ",
		"id":           4,
		"question":     "How was the session?",
		"options":      opts,
		"answer":       3,
	}
}

func TestFeedbackQuestion_OptionMinimum(t *testing.T) {
	for n := 0; n <= 8; n++ {
		q, err := forms.TaggedFeedbackQuestionForm.Parse(feedbackMCQ(n))
		if n >= 5 {
			require.NoError(t, err, "options=%d", n)
			assert.Len(t, q.(forms.MCQFeedbackQuestion).Options, n)
			continue
		}
		issues := schema.Issues(err)
		require.Len(t, issues, 1, "options=%d", n)
		assert.Equal(t, schema.Path{"options"}, issues[0].Path)
		assert.Equal(t, "At least 5 options are required", issues[0].Message)
	}
}

func TestFeedbackQuestion_FallbackReportsOptionShortfall(t *testing.T) {
	// The MCQ shape fits apart from the option count, so its issue wins over
	// the TEXT shape's literal and answer mismatches.
	_, err := forms.FeedbackQuestionForm.Parse(feedbackMCQ(4))

	issues := schema.Issues(err)
	require.Len(t, issues, 1)
	assert.Equal(t, schema.Path{"options"}, issues[0].Path)
	assert.Equal(t, schema.CodeConstraintViolation, issues[0].Code)
	assert.Equal(t, "At least 5 options are required", issues[0].Message)

	raw := feedbackMCQ(5)
	raw["answer"] = 0
	_, err = forms.FeedbackQuestionForm.Parse(raw)
	issues = schema.Issues(err)
	require.Len(t, issues, 1)
	assert.Equal(t, schema.Path{"answer"}, issues[0].Path)
	assert.Equal(t, "Number must be greater than 0", issues[0].Message)
}

func TestFeedbackQuestion_FallbackReportsTextBranch(t *testing.T) {
	// A string answer breaks the MCQ shape itself, so only the TEXT shape's
	// issues surface and the option shortfall goes unreported.
	raw := feedbackMCQ(4)
	raw["answer"] = "three"

	_, err := forms.FeedbackQuestionForm.Parse(raw)
	require.Error(t, err)
	report := err.(*schema.Report)
	assert.True(t, report.Has(schema.CodeConstraintViolation, "questionType"))
	assert.False(t, report.Has(schema.CodeConstraintViolation, "options"))
}

func TestFeedbackQuestion_TaggedReportsMCQBranch(t *testing.T) {
	_, err := forms.TaggedFeedbackQuestionForm.Parse(feedbackMCQ(4))

	issues := schema.Issues(err)
	require.Len(t, issues, 1)
	assert.Equal(t, "At least 5 options are required", issues[0].Message)
}

func TestFeedbackQuestion_BothDispatchesAgreeOnValidInput(t *testing.T) {
	inputs := []map[string]any{
		feedbackMCQ(5),
		{"questionType": "TEXT", "id": 9, "question": "", "answer": ""},
		{"questionType": "TEXT", "id": 9, "question": "Anything else?", "answer": "More snacks", "image": "https://club.dev/x.png"},
	}

	for i, raw := range inputs {
		fallback, err := forms.FeedbackQuestionForm.Parse(raw)
		require.NoError(t, err, "input %d", i)
		tagged, err := forms.TaggedFeedbackQuestionForm.Parse(raw)
		require.NoError(t, err, "input %d", i)
		assert.Equal(t, fallback, tagged, "input %d", i)
	}
}

func TestFeedbackQuestion_Text(t *testing.T) {
	q, err := forms.FeedbackQuestionForm.Parse(map[string]any{
		"questionType": "TEXT", "id": 2, "question": "", "answer": "",
	})
	require.NoError(t, err)

	text, ok := q.(forms.TextFeedbackQuestion)
	require.True(t, ok, "got %T", q)
	assert.Equal(t, forms.Text, text.Kind())
	assert.Empty(t, text.Question)
	assert.Empty(t, text.Answer)
	assert.Nil(t, text.Image)
}

func TestFeedbackQuestion_ImageMustBeURL(t *testing.T) {
	tests := []struct {
		name    string
		image   any
		wantErr bool
	}{
		{"absent", schema.Absent, false},
		{"url", "https://club.dev/q.png", false},
		{"empty string", "", true},
		{"relative path", "uploads/q.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := feedbackMCQ(5)
			if !schema.IsAbsent(tt.image) {
				raw["image"] = tt.image
			}
			for _, form := range []*forms.Form[forms.FeedbackQuestion]{forms.FeedbackQuestionForm, forms.TaggedFeedbackQuestionForm} {
				q, err := form.Parse(raw)
				if !tt.wantErr {
					require.NoError(t, err)
					if s, ok := tt.image.(string); ok {
						require.NotNil(t, q.Common().Image)
						assert.Equal(t, s, *q.Common().Image)
					}
					continue
				}
				require.Error(t, err)
				assert.True(t, err.(*schema.Report).Has(schema.CodeConstraintViolation, "image"))
			}
		})
	}
}

func TestFeedbackQuestion_UnknownTag(t *testing.T) {
	raw := feedbackMCQ(5)
	raw["questionType"] = "RATING"

	_, err := forms.TaggedFeedbackQuestionForm.Parse(raw)
	issues := schema.Issues(err)
	require.Len(t, issues, 1)
	assert.Equal(t, schema.CodeUnknownDiscriminant, issues[0].Code)

	_, err = forms.FeedbackQuestionForm.Parse(raw)
	require.Error(t, err)
	assert.True(t, err.(*schema.Report).Has(schema.CodeConstraintViolation, "questionType"))
}

func TestFeedbackAnswer(t *testing.T) {
	a, err := forms.FeedbackAnswerForm.Parse(map[string]any{"questionId": 4, "answer": 5})
	require.NoError(t, err)
	assert.Equal(t, forms.FeedbackAnswer{QuestionID: 4, Answer: forms.OptionAnswer(5)}, a)

	a, err = forms.FeedbackAnswerForm.Parse(map[string]any{"questionId": 4, "answer": "great"})
	require.NoError(t, err)
	assert.Equal(t, forms.TextAnswer("great"), a.Answer)

	_, err = forms.FeedbackAnswerForm.Parse(map[string]any{"answer": "great"})
	require.Error(t, err)
	assert.True(t, err.(*schema.Report).Has(schema.CodeMissingField, "questionId"))
}

func TestParseDispatch(t *testing.T) {
	tests := []struct {
		in      string
		want    forms.Dispatch
		wantErr bool
	}{
		{"", forms.DispatchFallback, false},
		{"fallback", forms.DispatchFallback, false},
		{"tagged", forms.DispatchTagged, false},
		{"first-match", "", true},
	}
	for _, tt := range tests {
		got, err := forms.ParseDispatch(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	assert.Same(t, forms.FeedbackQuestionForm, forms.FeedbackQuestionFormFor(forms.DispatchFallback))
	assert.Same(t, forms.TaggedFeedbackQuestionForm, forms.FeedbackQuestionFormFor(forms.DispatchTagged))
}
