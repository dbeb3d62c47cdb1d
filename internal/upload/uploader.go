/*
Package upload implements the question-paper intake component.

An Uploader accepts files from a drop or a picker selection, validates each
one against the configured size and type limits, keeps the accepted list, and
owns a preview handle for every accepted image. Handles are released when the
file is removed and when the Uploader is closed.
*/
package upload

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const (
	DefaultMaxFiles    = 10
	DefaultMaxSizeInMB = 5

	bytesPerMB = 1024 * 1024
)

// File is an incoming file with its declared MIME type.
type File struct {
	Name string
	Type string
	Size int64
	Data []byte
}

// FileMetadata describes an accepted file. Preview is empty for non-images.
type FileMetadata struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	Preview string `json:"preview,omitempty"`
}

// Options configures an Uploader. Zero values take the defaults.
type Options struct {
	MaxFiles    int
	MaxSizeInMB float64

	// AcceptedFileTypes is an allow-list of MIME types. Empty accepts any type.
	AcceptedFileTypes []string

	// OnFilesChange receives the full list after every accept or removal.
	OnFilesChange func(files []FileMetadata)

	Logger *zap.Logger
}

// State is the drag state of the drop zone.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Uploader holds the accepted files and their preview handles.
type Uploader struct {
	opts     Options
	previews PreviewStore
	logger   *zap.Logger

	mu      sync.Mutex
	files   []FileMetadata
	state   State
	lastErr *ValidationError
	closed  bool
}

// New creates an Uploader. previews may be nil, in which case no preview
// handles are created.
func New(opts Options, previews PreviewStore) *Uploader {
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = DefaultMaxFiles
	}
	if opts.MaxSizeInMB <= 0 {
		opts.MaxSizeInMB = DefaultMaxSizeInMB
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Uploader{
		opts:     opts,
		previews: previews,
		logger:   logger,
	}
}

// DragEnter marks the drop zone as dragging.
func (u *Uploader) DragEnter() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state = StateDragging
}

// DragLeave returns the drop zone to idle.
func (u *Uploader) DragLeave() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state = StateIdle
}

// State returns the current drag state.
func (u *Uploader) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Drop ends a drag and accepts the dropped files.
func (u *Uploader) Drop(files []File) (int, error) {
	u.DragLeave()
	return u.Add(files)
}

// Select accepts files chosen with the file picker.
func (u *Uploader) Select(files []File) (int, error) {
	return u.Add(files)
}

// Add validates a batch and appends the valid files.
//
// A batch that would push the list past MaxFiles is rejected whole. Otherwise
// each file is checked on its own: invalid files are skipped and valid ones
// accepted. The returned error, also kept in Err, is the last failure of the
// batch; a batch clears the previous failure. It returns the number of files
// accepted.
func (u *Uploader) Add(files []File) (int, error) {
	u.mu.Lock()

	if u.closed {
		u.mu.Unlock()
		return 0, ErrClosed
	}

	u.lastErr = nil

	if len(u.files)+len(files) > u.opts.MaxFiles {
		u.lastErr = tooManyFiles(u.opts.MaxFiles)
		u.mu.Unlock()
		return 0, u.lastErr
	}

	var accepted []FileMetadata
	for _, f := range files {
		if verr := u.validate(f); verr != nil {
			u.lastErr = verr
			continue
		}
		accepted = append(accepted, u.accept(f))
	}

	var snapshot []FileMetadata
	if len(accepted) > 0 {
		u.files = append(u.files, accepted...)
		snapshot = slices.Clone(u.files)
	}
	lastErr := u.lastErr
	u.mu.Unlock()

	if snapshot != nil {
		u.notify(snapshot)
	}
	if lastErr != nil {
		return len(accepted), lastErr
	}
	return len(accepted), nil
}

// Remove drops the file at index and releases its preview handle.
func (u *Uploader) Remove(index int) error {
	u.mu.Lock()

	if u.closed {
		u.mu.Unlock()
		return ErrClosed
	}
	if index < 0 || index >= len(u.files) {
		u.mu.Unlock()
		return fmt.Errorf("no file at index %d (have %d)", index, len(u.files))
	}

	removed := u.files[index]
	u.files = slices.Delete(u.files, index, index+1)
	u.release(removed)
	snapshot := slices.Clone(u.files)
	u.mu.Unlock()

	u.notify(snapshot)
	return nil
}

// Files returns a copy of the accepted files in acceptance order.
func (u *Uploader) Files() []FileMetadata {
	u.mu.Lock()
	defer u.mu.Unlock()
	return slices.Clone(u.files)
}

// Err returns the message of the latest validation failure, or "".
func (u *Uploader) Err() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.lastErr == nil {
		return ""
	}
	return u.lastErr.Message
}

// MaxFiles returns the effective file limit.
func (u *Uploader) MaxFiles() int {
	return u.opts.MaxFiles
}

// Close releases every preview handle and empties the list.
// Calling Close more than once is safe.
func (u *Uploader) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return nil
	}
	for _, f := range u.files {
		u.release(f)
	}
	u.files = nil
	u.closed = true
	return nil
}

func (u *Uploader) validate(f File) *ValidationError {
	if float64(f.Size) > u.opts.MaxSizeInMB*bytesPerMB {
		return tooLarge(f.Name, u.opts.MaxSizeInMB)
	}
	if len(u.opts.AcceptedFileTypes) > 0 && !slices.Contains(u.opts.AcceptedFileTypes, f.Type) {
		return unsupportedType(f.Name)
	}
	return nil
}

// accept builds the metadata for f, acquiring a preview handle for images.
func (u *Uploader) accept(f File) FileMetadata {
	meta := FileMetadata{Name: f.Name, Type: f.Type, Size: f.Size}
	if u.previews == nil || !strings.HasPrefix(f.Type, "image/") {
		return meta
	}

	handle, err := u.previews.Create(f)
	if err != nil {
		u.logger.Warn("failed to create preview", zap.String("file", f.Name), zap.Error(err))
		return meta
	}
	meta.Preview = handle
	return meta
}

func (u *Uploader) release(f FileMetadata) {
	if f.Preview != "" && u.previews != nil {
		u.previews.Revoke(f.Preview)
	}
}

func (u *Uploader) notify(files []FileMetadata) {
	if u.opts.OnFilesChange != nil {
		u.opts.OnFilesChange(files)
	}
}

// FormatFileSize renders a byte count as "512 B", "1.5 KB" or "2.00 MB".
func FormatFileSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < bytesPerMB:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(size)/bytesPerMB)
	}
}
