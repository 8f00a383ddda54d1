package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"title":"A"}`, `{"title":"A"}`},
		{"prose around", "Here is the plan:\n{\"title\":\"A\",\"slides\":[]}\nHope this helps!", `{"title":"A","slides":[]}`},
		{"json fence", "```json\n{\"title\":\"B\"}\n```", `{"title":"B"}`},
		{"fence preferred", "note {x} then\n```json\n{\"title\":\"C\"}\n```", `{"title":"C"}`},
		{"braces in strings", `{"title":"a } b { c","n":{"k":"}"}}`, `{"title":"a } b { c","n":{"k":"}"}}`},
		{"escaped quote", `{"title":"say \"}\" now"}`, `{"title":"say \"}\" now"}`},
		{"unclosed fence", "```json\n{\"title\":\"D\"}", `{"title":"D"}`},
		{"skips unbalanced prefix", "{ oops\n", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tc.in)
			if tc.want == "" {
				require.ErrorIs(t, err, ErrNoJSONObject)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, string(got))
		})
	}
}
