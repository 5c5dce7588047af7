/*
Package clubforms validates the records exchanged by a student club's web
platform: quiz and feedback questions, answers, gallery and blog images,
profile edits and membership applications.

Every form is a declarative schema. Validation is total: any input yields
either a normalized record or a report listing every problem, each with the
path of the offending field and a human readable message. Unknown keys are
dropped from the normalized record.

# Usage

	res, err := clubforms.Validate(forms.QuizQuestionID, map[string]any{
		"questionType": "MCQ",
		"id":           1,
		"question":     "2+2?",
		"points":       10,
		"options":      []any{"3", "4"},
		"answer":       2,
	})
	if report, ok := err.(*schema.Report); ok {
		for _, issue := range report.Issues {
			fmt.Println(issue.Path, issue.Message)
		}
	}
	q := res.Record.(forms.MCQQuizQuestion)

New builds a registry with logging, metrics and custom hooks attached. The
same registry backs the clubforms CLI, its HTTP server and its MCP tools.
*/
package clubforms
