package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veyralabs/veyra/app/services"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Nike Air", "nike-air"},
		{"  Leading & Trailing!  ", "leading-trailing"},
		{"Multiple---dashes", "multiple-dashes"},
		{"Ünïcode Stays Out", "n-code-stays-out"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER CASE 42", "upper-case-42"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, services.Slugify(tc.in), "input %q", tc.in)
	}
}
