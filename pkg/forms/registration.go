package forms

import "github.com/aretw0/clubforms/pkg/schema"

// ClubRegistration is a membership application. Profile fields are copied
// from the member's account; the remaining fields are free text answers and
// the membership payment reference.
type ClubRegistration struct {
	Name         string `json:"name" mapstructure:"name"`
	Email        string `json:"email" mapstructure:"email"`
	Phone        string `json:"phone" mapstructure:"phone"`
	Branch       string `json:"branch" mapstructure:"branch"`
	Year         string `json:"year" mapstructure:"year"`
	ReasonToJoin string `json:"reasonToJoin" mapstructure:"reasonToJoin"`
	Expectations string `json:"expectations" mapstructure:"expectations"`
	Contribution string `json:"contribution" mapstructure:"contribution"`
	PaymentID    string `json:"paymentId" mapstructure:"paymentId"`
}

var ClubRegistrationSchema = schema.Object(
	schema.Key("name", schema.String()),
	schema.Key("email", schema.String()),
	schema.Key("phone", schema.String()),
	schema.Key("branch", schema.String()),
	schema.Key("year", schema.String()),
	schema.Key("reasonToJoin", schema.String()),
	schema.Key("expectations", schema.String()),
	schema.Key("contribution", schema.String()),
	schema.Key("paymentId", schema.String()),
)

var ClubRegistrationForm = &Form[ClubRegistration]{
	ID:          ClubRegistrationID,
	Description: "Club membership application",
	Schema:      ClubRegistrationSchema,
}
