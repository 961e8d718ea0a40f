package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ClassesFileName is the class list looked up inside an image directory.
const ClassesFileName = "classes.txt"

// Classes maps class indices to display names. The zero value has no names
// and falls back to the decimal index.
type Classes struct {
	path  string
	names []string
}

// NewClasses builds a registry from names, dropping blank entries.
func NewClasses(names []string) *Classes {
	return &Classes{names: lo.Filter(lo.Map(names, func(n string, _ int) string {
		return strings.TrimSpace(n)
	}), func(n string, _ int) bool { return n != "" })}
}

// LoadClasses reads one class name per line; blank lines are skipped.
func LoadClasses(path string) (*Classes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load classes: %w", err)
	}
	defer f.Close()
	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		names = append(names, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("load classes: %w", err)
	}
	c := NewClasses(names)
	c.path = path
	return c, nil
}

// FindClassesFile returns the classes file inside dir, or "" when there is none.
func FindClassesFile(dir string) (string, error) {
	path := filepath.Join(dir, ClassesFileName)
	st, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if st.IsDir() {
		return "", nil
	}
	return path, nil
}

// Path is the file the registry was loaded from.
func (c *Classes) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Len is the number of named classes.
func (c *Classes) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Names returns a copy of the names in index order.
func (c *Classes) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Name returns the display name for class i.
func (c *Classes) Name(i int) string {
	if c != nil && i >= 0 && i < len(c.names) {
		return c.names[i]
	}
	return strconv.Itoa(i)
}

// Index returns the class index for name, accepting plain integers.
func (c *Classes) Index(name string) (int, bool) {
	name = strings.TrimSpace(name)
	if c != nil {
		if i := lo.IndexOf(c.names, name); i >= 0 {
			return i, true
		}
	}
	if i, err := strconv.Atoi(name); err == nil && i >= 0 {
		return i, true
	}
	return 0, false
}
