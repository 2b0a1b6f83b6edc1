package slug

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Sydney Web Co":             "sydney-web-co",
		"  Acme & Sons Pty. Ltd.  ": "acme-sons-pty-ltd",
		"Café Crème":                "cafe-creme",
		"already-a--slug":           "already-a-slug",
		"--leading and trailing--":  "leading-and-trailing",
		"100% Aussie":               "100-aussie",
		"!!!":                       "",
	}
	for in, want := range cases {
		require.Equal(t, want, Make(in), in)
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"acme": true, "acme-2": true}
	got, err := Unique("acme", func(s string) (bool, error) { return taken[s], nil })
	require.NoError(t, err)
	require.Equal(t, "acme-3", got)

	_, err = Unique("acme", func(string) (bool, error) { return false, errors.New("boom") })
	require.Error(t, err)
}
