package gamelist_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"deal_radar/internal/domain"
	"deal_radar/internal/infrastructure/gamelist"
	"deal_radar/pkg/errcodes"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		games []string
		code  string
	}{
		{
			name:  "Trims and skips blank lines",
			input: "  Hades \n\n\tCeleste\r\n   \nHollow Knight",
			games: []string{"Hades", "Celeste", "Hollow Knight"},
		},
		{
			name:  "Skips comments",
			input: "# wishlist\nHades\n  # later\nCeleste\n",
			games: []string{"Hades", "Celeste"},
		},
		{
			name:  "Keeps duplicates in order",
			input: "Hades\nCeleste\nHades",
			games: []string{"Hades", "Celeste", "Hades"},
		},
		{
			name:  "Strips byte order mark",
			input: "\ufeffHades\r\nCeleste\r\n",
			games: []string{"Hades", "Celeste"},
		},
		{
			name:  "Byte order mark before comment",
			input: "\ufeff# wishlist\nHades\n",
			games: []string{"Hades"},
		},
		{
			name:  "Empty",
			input: "\n   \n# nothing yet\n",
			code:  string(errcodes.GameListEmpty),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			games, err := gamelist.Parse(strings.NewReader(tc.input))
			if tc.code != "" {
				rq.Error(err)
				code, ok := domain.GetCode(err)
				rq.True(ok)
				rq.Equal(tc.code, string(code))

				return
			}

			rq.NoError(err)
			rq.Equal(tc.games, games)
		})
	}
}

func TestFileGames(t *testing.T) {
	rq := require.New(t)

	path := filepath.Join(t.TempDir(), "games.txt")
	rq.NoError(os.WriteFile(path, []byte("Hades\n\nCeleste\n"), 0o600))

	games, err := gamelist.NewFile(path).Games(context.Background())
	rq.NoError(err)
	rq.Equal([]string{"Hades", "Celeste"}, games)
}

func TestFileGamesMissing(t *testing.T) {
	rq := require.New(t)

	_, err := gamelist.NewFile(filepath.Join(t.TempDir(), "absent.txt")).Games(context.Background())
	rq.Error(err)
	rq.True(domain.HasCode(err, errcodes.GameListMissing))
	rq.True(domain.IsConfigurationError(err))
}

func TestStatic(t *testing.T) {
	rq := require.New(t)

	games, err := gamelist.Static{"Hades"}.Games(context.Background())
	rq.NoError(err)
	rq.Equal([]string{"Hades"}, games)

	_, err = gamelist.Static{}.Games(context.Background())
	rq.True(domain.HasCode(err, errcodes.GameListEmpty))
}
