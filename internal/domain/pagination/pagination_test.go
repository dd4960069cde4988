package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   Page
		def  int
		want Page
	}{
		{Page{}, 20, Page{Page: 1, Limit: 20}},
		{Page{Page: 3, Limit: 10}, 20, Page{Page: 3, Limit: 10}},
		{Page{Page: -1, Limit: 1000}, 50, Page{Page: 1, Limit: MaxLimit}},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.in.Normalize(c.def))
	}
	require.Equal(t, 20, Page{Page: 3, Limit: 10}.Offset())
}
