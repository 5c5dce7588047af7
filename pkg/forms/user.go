package forms

import "github.com/aretw0/clubforms/pkg/schema"

// GetUser selects a profile. A nil UserID means the caller's own profile.
type GetUser struct {
	UserID *float64 `json:"userId,omitempty" mapstructure:"userId"`
}

// EditUser updates profile details.
type EditUser struct {
	ID       int     `json:"id" mapstructure:"id"`
	Name     string  `json:"name" mapstructure:"name"`
	Email    string  `json:"email" mapstructure:"email"`
	BranchID string  `json:"branchId" mapstructure:"branchId"`
	Bio      *string `json:"bio,omitempty" mapstructure:"bio"`
	Phone    string  `json:"phone" mapstructure:"phone"`
}

// EditUserImage replaces the profile picture.
type EditUserImage struct {
	Image string `json:"image" mapstructure:"image"`
}

// AddUserLink attaches a named link to a profile.
type AddUserLink struct {
	LinkName string `json:"linkName" mapstructure:"linkName"`
	URL      string `json:"url" mapstructure:"url"`
}

// DeleteUserLink removes a profile link.
type DeleteUserLink struct {
	LinkID string `json:"linkId" mapstructure:"linkId"`
}

// GetUserSchema accepts no input at all. When given, userId must be a
// number; NaN, which unparsable numeric inputs produce, drops the field.
var GetUserSchema = schema.Optional(schema.Object(
	schema.Key("userId", schema.Or(
		schema.Number(),
		schema.Transform(schema.NaN(), func(any) any { return schema.Absent }),
	)),
))

var EditUserSchema = schema.Object(
	schema.Key("id", schema.Int()),
	schema.Key("name", schema.String()),
	schema.Key("email", schema.String(schema.Email().WithMessage("Email is required"))),
	schema.Key("branchId", schema.String(schema.MinLength(1).WithMessage("Please select a branch"))),
	schema.Key("bio", schema.Optional(schema.String())),
	schema.Key("phone", schema.String()),
)

var EditUserImageSchema = schema.Object(
	schema.Key("image", schema.String()),
)

var AddUserLinkSchema = schema.Object(
	schema.Key("linkName", schema.String(schema.MinLength(3).WithMessage("Name must be at least 3 characters"))),
	schema.Key("url", schema.String(schema.URL())),
)

var DeleteUserLinkSchema = schema.Object(
	schema.Key("linkId", schema.String()),
)

var GetUserForm = &Form[GetUser]{
	ID:          GetUserID,
	Description: "Profile lookup",
	Schema:      GetUserSchema,
}

var EditUserForm = &Form[EditUser]{
	ID:          EditUserID,
	Description: "Profile update",
	Schema:      EditUserSchema,
}

var EditUserImageForm = &Form[EditUserImage]{
	ID:          EditUserImageID,
	Description: "Profile picture update",
	Schema:      EditUserImageSchema,
}

var AddUserLinkForm = &Form[AddUserLink]{
	ID:          AddUserLinkID,
	Description: "New profile link",
	Schema:      AddUserLinkSchema,
}

var DeleteUserLinkForm = &Form[DeleteUserLink]{
	ID:          DeleteUserLinkID,
	Description: "Profile link removal",
	Schema:      DeleteUserLinkSchema,
}
