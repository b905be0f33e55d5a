package wlkit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/wlkit/wlkit/internal/debug"
)

// Cursor names a pointer shape the backend can show.
type Cursor uint8

const (
	CursorArrow Cursor = iota
	CursorIBeam
	CursorCrosshair
	CursorPointer
	CursorOpenHand
	CursorNotAllowed
	CursorResizeLeftRight
	CursorResizeUpDown
)

// themeName returns the XCursor theme entry for the cursor.
func (c Cursor) themeName() string {
	switch c {
	case CursorIBeam:
		return "xterm"
	case CursorCrosshair:
		return "crosshair"
	case CursorPointer:
		return "hand2"
	case CursorOpenHand:
		return "hand1"
	case CursorNotAllowed:
		return "crossed_circle"
	case CursorResizeLeftRight:
		return "sb_h_double_arrow"
	case CursorResizeUpDown:
		return "sb_v_double_arrow"
	default:
		return "left_ptr"
	}
}

func (c Cursor) String() string { return c.themeName() }

// cursorEntry is a resolved cursor: the theme entry name plus the on-disk
// XCursor file it came from, if any was found.
type cursorEntry struct {
	name string
	path string
}

// cursorCache resolves Cursor values against an XCursor theme and keeps the
// results in a small LRU, so repeated SetCursor calls during pointer motion
// do not hit the filesystem.
type cursorCache struct {
	theme string
	size  int
	cache *lru.Cache
}

const cursorCacheSize = 32

func newCursorCache(theme string, size int) (*cursorCache, error) {
	cache, err := lru.New(cursorCacheSize)
	if err != nil {
		return nil, fmt.Errorf("cursor cache: %w", err)
	}
	return &cursorCache{theme: theme, size: size, cache: cache}, nil
}

// resolve returns the theme entry for cursor, consulting the LRU first.
// A cursor with no on-disk file still resolves to its entry name; the
// compositor side falls back to the default theme.
func (cc *cursorCache) resolve(cursor Cursor) cursorEntry {
	name := cursor.themeName()
	if v, ok := cc.cache.Get(name); ok {
		return v.(cursorEntry)
	}
	entry := cursorEntry{name: name, path: cc.locate(name)}
	cc.cache.Add(name, entry)
	return entry
}

// locate searches the usual XCursor directories for the named cursor in the
// configured theme. Returns "" when the theme does not provide it.
func (cc *cursorCache) locate(name string) string {
	for _, dir := range cursorSearchPath() {
		p := filepath.Join(dir, cc.theme, "cursors", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	debug.Log("cursor: no file for %q in theme %q", name, cc.theme)
	return ""
}

func cursorSearchPath() []string {
	if env := os.Getenv("XCURSOR_PATH"); env != "" {
		return strings.Split(env, ":")
	}
	dirs := []string{"/usr/share/icons", "/usr/local/share/icons"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append([]string{filepath.Join(home, ".icons")}, dirs...)
	}
	return dirs
}
