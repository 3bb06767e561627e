// Package export writes decoded scan tables into a per-run session
// directory as CSV, for downstream plotting and analysis tools.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tracklab/cpsa/pkg/cpsa"
)

var frameColumns = []string{
	"number", "x_position", "y_position", "num_tracks",
	"focus", "x_position_index", "y_position_index",
}

var trackColumns = []string{
	"frame_number", "d", "x", "y", "e", "c", "a",
}

// Session is one export run: a fresh directory named
// <prefix>_<YYYYMMDD_HHMMSS>_<short run id>.
type Session struct {
	ID  string
	Dir string
}

// NewSession creates the session directory under baseDir.
func NewSession(baseDir, prefix string) (*Session, error) {
	id := uuid.New().String()[:8]
	name := fmt.Sprintf("%s_%s_%s", prefix, time.Now().Format("20060102_150405"), id)
	dir := filepath.Join(baseDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create session dir %s: %w", dir, err)
	}
	return &Session{ID: id, Dir: dir}, nil
}

// WriteScan exports the frame table, the track table, and the trailer text.
func (s *Session) WriteScan(data *cpsa.ScanData) error {
	if err := s.WriteFrames(data.Frames); err != nil {
		return err
	}
	if err := s.WriteTracks(data.Tracks); err != nil {
		return err
	}
	return s.WriteTrailer(data.Trailer)
}

// WriteFrames writes frames.csv.
func (s *Session) WriteFrames(frames []cpsa.Frame) error {
	return s.writeCSV("frames.csv", frameColumns, len(frames), func(i int) []string {
		f := frames[i]
		return []string{
			itoa32(f.Number),
			ftoa(f.XPosition),
			ftoa(f.YPosition),
			itoa32(f.NumTracks),
			ftoa(f.Focus),
			itoa32(f.XPositionIndex),
			itoa32(f.YPositionIndex),
		}
	})
}

// WriteTracks writes tracks.csv.
func (s *Session) WriteTracks(tracks []cpsa.Track) error {
	return s.writeCSV("tracks.csv", trackColumns, len(tracks), func(i int) []string {
		t := tracks[i]
		return []string{
			itoa32(t.FrameNumber),
			ftoa(t.D),
			ftoa(t.X),
			ftoa(t.Y),
			strconv.Itoa(int(t.E)),
			strconv.Itoa(int(t.C)),
			strconv.Itoa(int(t.A)),
		}
	})
}

// WriteTrailer writes trailer.txt, skipping the file when there is none.
func (s *Session) WriteTrailer(trailer string) error {
	if trailer == "" {
		return nil
	}
	path := filepath.Join(s.Dir, "trailer.txt")
	if err := os.WriteFile(path, []byte(trailer), 0644); err != nil {
		return fmt.Errorf("write trailer: %w", err)
	}
	return nil
}

func (s *Session) writeCSV(name string, header []string, n int, row func(i int) []string) error {
	path := filepath.Join(s.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv create %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriterSize(f, 256*1024)
	cw := csv.NewWriter(bw)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv write header %s: %w", name, err)
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return fmt.Errorf("csv write row %s: %w", name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush %s: %w", name, err)
	}
	return bw.Flush()
}

func itoa32(v int32) string { return strconv.FormatInt(int64(v), 10) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
