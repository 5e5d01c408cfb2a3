package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"snakes_server/logic"
)

// DirLayouts reads stage layouts from stage_<id>.txt files. Stages are numbered from 0 without gaps; the
// first missing file ends the list.
type DirLayouts struct {
	Dir   string
	count int
}

func NewDirLayouts(dir string) *DirLayouts {
	d := &DirLayouts{Dir: dir}
	for {
		if _, err := os.Stat(d.path(d.count)); err != nil {
			break
		}
		d.count++
	}
	return d
}

func (d *DirLayouts) path(id int) string {
	return filepath.Join(d.Dir, fmt.Sprintf("stage_%d.txt", id))
}

func (d *DirLayouts) Count() int {
	return d.count
}

// Layout returns the rows of a stage file. Trailing blank lines are dropped.
func (d *DirLayouts) Layout(id int) ([]string, error) {
	data, err := os.ReadFile(d.path(id))
	if err != nil {
		return nil, errors.Wrapf(logic.ErrContent, "level layout %d not found: %v", id, err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
