package forms_test

import (
	"math"
	"testing"

	"github.com/aretw0/clubforms/pkg/forms"
	"github.com/aretw0/clubforms/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	id, fraction := 12.0, 1.5

	tests := []struct {
		name    string
		raw     any
		want    forms.GetUser
		wantErr bool
	}{
		{"no input", nil, forms.GetUser{}, false},
		{"user id", map[string]any{"userId": 12}, forms.GetUser{UserID: &id}, false},
		{"user id from json", map[string]any{"userId": 12.0}, forms.GetUser{UserID: &id}, false},
		{"fractional id", map[string]any{"userId": 1.5}, forms.GetUser{UserID: &fraction}, false},
		{"nan drops the id", map[string]any{"userId": math.NaN()}, forms.GetUser{}, false},
		{"missing id", map[string]any{}, forms.GetUser{}, true},
		{"string id", map[string]any{"userId": "12"}, forms.GetUser{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := forms.GetUserForm.Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, schema.Path{"userId"}, schema.Issues(err)[0].Path)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func validEditUser() map[string]any {
	return map[string]any{
		"id":       3,
		"name":     "Asha",
		"email":    "asha@club.dev",
		"branchId": "cse",
		"phone":    "9999999999",
	}
}

func TestEditUser(t *testing.T) {
	u, err := forms.EditUserForm.Parse(validEditUser())
	require.NoError(t, err)
	assert.Equal(t, forms.EditUser{ID: 3, Name: "Asha", Email: "asha@club.dev", BranchID: "cse", Phone: "9999999999"}, u)

	raw := validEditUser()
	raw["bio"] = "Robotics lead"
	u, err = forms.EditUserForm.Parse(raw)
	require.NoError(t, err)
	require.NotNil(t, u.Bio)
	assert.Equal(t, "Robotics lead", *u.Bio)
}

func TestEditUser_Messages(t *testing.T) {
	raw := validEditUser()
	raw["email"] = "not-an-email"
	raw["branchId"] = ""

	_, err := forms.EditUserForm.Parse(raw)
	require.Error(t, err)

	fields := err.(*schema.Report).Fields()
	assert.Equal(t, map[string][]string{
		"email":    {"Email is required"},
		"branchId": {"Please select a branch"},
	}, fields)
}

func TestAddUserLink(t *testing.T) {
	link, err := forms.AddUserLinkForm.Parse(map[string]any{"linkName": "GitHub", "url": "https://github.com/asha"})
	require.NoError(t, err)
	assert.Equal(t, forms.AddUserLink{LinkName: "GitHub", URL: "https://github.com/asha"}, link)

	_, err = forms.AddUserLinkForm.Parse(map[string]any{"linkName": "ab", "url": "not-a-url"})
	issues := schema.Issues(err)
	require.Len(t, issues, 2)
	assert.Equal(t, schema.Path{"linkName"}, issues[0].Path)
	assert.Equal(t, "Name must be at least 3 characters", issues[0].Message)
	assert.Equal(t, schema.Path{"url"}, issues[1].Path)
	assert.Equal(t, "url", issues[1].Rule)
}

func TestSimpleRecords(t *testing.T) {
	img, err := forms.EditUserImageForm.Parse(map[string]any{"image": "https://cdn.club.dev/me.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.club.dev/me.png", img.Image)

	del, err := forms.DeleteUserLinkForm.Parse(map[string]any{"linkId": "lnk_1"})
	require.NoError(t, err)
	assert.Equal(t, "lnk_1", del.LinkID)

	item, err := forms.GalleryItemForm.Parse(map[string]any{"id": 1, "title": "Hackathon", "src": "/g/1.jpg"})
	require.NoError(t, err)
	assert.Equal(t, forms.GalleryItem{ID: 1, Title: "Hackathon", Src: "/g/1.jpg"}, item)

	_, err = forms.BlogImageForm.Parse(map[string]any{"id": "1", "title": "Cover"})
	issues := schema.Issues(err)
	require.Len(t, issues, 2)
	assert.Equal(t, schema.CodeTypeMismatch, issues[0].Code)
	assert.Equal(t, schema.CodeMissingField, issues[1].Code)
}

func TestClubRegistration(t *testing.T) {
	raw := map[string]any{
		"name":         "Asha",
		"email":        "asha@club.dev",
		"phone":        "9999999999",
		"branch":       "CSE",
		"year":         "2",
		"reasonToJoin": "Build robots",
		"expectations": "Workshops",
		"contribution": "Design",
		"paymentId":    "pay_123",
	}

	reg, err := forms.ClubRegistrationForm.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "pay_123", reg.PaymentID)
	assert.Equal(t, "Build robots", reg.ReasonToJoin)

	delete(raw, "paymentId")
	_, err = forms.ClubRegistrationForm.Parse(raw)
	require.Error(t, err)
	assert.True(t, err.(*schema.Report).Has(schema.CodeMissingField, "paymentId"))
}
