package forms

import "github.com/aretw0/clubforms/pkg/registry"

type options struct {
	dispatch Dispatch
}

// Option configures Register.
type Option func(*options)

// WithFeedbackDispatch selects how feedback questions resolve their variant.
// The default is DispatchFallback.
func WithFeedbackDispatch(d Dispatch) Option {
	return func(o *options) {
		o.dispatch = d
	}
}

// Register adds every club form to r.
func Register(r *registry.Registry, opts ...Option) {
	o := options{dispatch: DispatchFallback}
	for _, opt := range opts {
		opt(&o)
	}

	entries := []registry.Entry{
		QuizQuestionForm.Entry(),
		QuizAnswerForm.Entry(),
		FeedbackQuestionFormFor(o.dispatch).Entry(),
		FeedbackAnswerForm.Entry(),
		GalleryItemForm.Entry(),
		BlogImageForm.Entry(),
		GetUserForm.Entry(),
		EditUserForm.Entry(),
		EditUserImageForm.Entry(),
		AddUserLinkForm.Entry(),
		DeleteUserLinkForm.Entry(),
		ClubRegistrationForm.Entry(),
	}
	for _, e := range entries {
		r.Register(e)
	}
}

// NewRegistry returns a registry holding every club form.
func NewRegistry(opts ...Option) *registry.Registry {
	r := registry.New()
	Register(r, opts...)
	return r
}
