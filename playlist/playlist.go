// Package playlist writes resolved streams as an extended M3U playlist.
package playlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/simud-cli/simud/filesystem"
	"github.com/simud-cli/simud/source"
)

// Header opens every playlist.
const Header = "#EXTM3U\n"

// Write emits the header and one entry per stream with a URL. Names are written verbatim.
func Write(w io.Writer, streams []*source.Stream) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(Header); err != nil {
		return err
	}

	for _, s := range streams {
		if !s.Playable() {
			continue
		}

		if _, err := fmt.Fprintf(bw, "#EXTINF:-1 tvg-name=\"%s\",%s\n%s\n", s.Name, s.Name, s.URL); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Save writes the playlist to path, replacing any previous file in one step.
func Save(path string, streams []*source.Stream) error {
	var buf bytes.Buffer
	if err := Write(&buf, streams); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := filesystem.API().MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create playlist directory: %w", err)
		}
	}

	if err := filesystem.WriteAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write playlist %s: %w", path, err)
	}

	return nil
}

// Count reports how many entries Write would emit.
func Count(streams []*source.Stream) (n int) {
	for _, s := range streams {
		if s.Playable() {
			n++
		}
	}
	return n
}
