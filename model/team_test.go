// model/team_test.go
package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pingwise/clinic-api/model"
)

func TestDeriveInitials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Elena Vasquez", "EV"},
		{"Maria del Carmen", "MD"},
		{"cher", "C"},
		{"", ""},
		{"  spaced   out  ", "SO"},
		{"émile zola", "ÉZ"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, model.DeriveInitials(tc.name), "name %q", tc.name)
	}
}
