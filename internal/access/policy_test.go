package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediatrack/media-billboard/internal/model"
)

func TestCategoriesForAge(t *testing.T) {
	cases := []struct {
		name string
		age  int
		want []model.AgeCategory
	}{
		{"below minimum", 2, nil},
		{"minimum", 3, []model.AgeCategory{model.CategoryKids}},
		{"child", 10, []model.AgeCategory{model.CategoryKids}},
		{"last child year", 12, []model.AgeCategory{model.CategoryKids}},
		{"first teen year", 13, []model.AgeCategory{model.CategoryKids, model.CategoryTeen}},
		{"last teen year", 17, []model.AgeCategory{model.CategoryKids, model.CategoryTeen}},
		{"first adult year", 18, []model.AgeCategory{model.CategoryKids, model.CategoryTeen, model.CategoryAdult, model.CategoryAll}},
		{"maximum", 120, []model.AgeCategory{model.CategoryKids, model.CategoryTeen, model.CategoryAdult, model.CategoryAll}},
		{"above maximum", 121, nil},
		{"negative", -1, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CategoriesForAge(tc.age))
		})
	}
}

func TestGuestIdentity(t *testing.T) {
	g := Guest()
	assert.True(t, g.Guest)
	assert.Equal(t, []model.AgeCategory{model.CategoryKids}, g.Allowed)
	assert.True(t, g.CanAccess(model.CategoryKids))
	assert.False(t, g.CanAccess(model.CategoryTeen))
	assert.False(t, g.CanAccess(model.CategoryAll))
}

func TestCheckRead(t *testing.T) {
	teen := Identity{UserID: 7, Age: 15, Allowed: CategoriesForAge(15)}

	// No explicit category requested: results will be filtered, not denied.
	require.NoError(t, CheckRead(teen, ""))

	require.NoError(t, CheckRead(teen, model.CategoryKids))
	require.NoError(t, CheckRead(teen, model.CategoryTeen))
	assert.ErrorIs(t, CheckRead(teen, model.CategoryAdult), ErrDenied)
	assert.ErrorIs(t, CheckRead(teen, model.CategoryAll), ErrDenied)

	assert.ErrorIs(t, CheckRead(Guest(), model.CategoryTeen), ErrDenied)
	require.NoError(t, CheckRead(Guest(), model.CategoryKids))
}

func TestCheckWrite(t *testing.T) {
	adult := Identity{UserID: 3, Age: 30, Allowed: CategoriesForAge(30)}
	kid := Identity{UserID: 4, Age: 9, Allowed: CategoriesForAge(9)}

	require.NoError(t, CheckWrite(adult, model.CategoryAdult))
	require.NoError(t, CheckWrite(adult, model.CategoryAll))
	require.NoError(t, CheckWrite(kid, model.CategoryKids))
	assert.ErrorIs(t, CheckWrite(kid, model.CategoryTeen), ErrDenied)

	// Guests can never write, not even kids content.
	assert.ErrorIs(t, CheckWrite(Guest(), model.CategoryKids), ErrDenied)
}
