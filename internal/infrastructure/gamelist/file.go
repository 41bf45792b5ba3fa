package gamelist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/samber/lo"

	"deal_radar/internal/domain"
	"deal_radar/pkg/errcodes"
)

// File reads the tracked games from a newline-delimited text file on every
// pass, so edits are picked up without a restart.
type File struct {
	path string
}

func NewFile(path string) File {
	return File{path: path}
}

func (f File) Games(ctx context.Context) ([]string, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.WrapError(err, errcodes.GameListMissing, "games file not found: "+f.path)
	}

	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	games, err := Parse(file)
	if err != nil {
		return nil, err
	}

	logger(ctx).Debug("game list loaded", "path", f.path, "count", len(games))

	return games, nil
}

// Parse returns the non-empty trimmed lines of r in order. Lines starting
// with # are comments.
func Parse(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Err: %w", err)
	}

	games := lo.FilterMap(lines, func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != "" && !strings.HasPrefix(line, "#")
	})

	if len(games) == 0 {
		return nil, domain.NewError(errcodes.GameListEmpty, "no games listed")
	}

	return games, nil
}

// Static serves a fixed in-memory list.
type Static []string

func (s Static) Games(context.Context) ([]string, error) {
	if len(s) == 0 {
		return nil, domain.NewError(errcodes.GameListEmpty, "no games listed")
	}

	return s, nil
}
