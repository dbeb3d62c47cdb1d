package cli

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khanglvm/edu-ai/internal/config"
	"github.com/khanglvm/edu-ai/internal/upload"
)

// sniffLen is how much of a file http.DetectContentType looks at.
const sniffLen = 512

// NewUploadCmd creates the 'upload' command, which validates question papers
// against the intake limits.
func NewUploadCmd(app *App) *cobra.Command {
	var (
		maxFiles   int
		maxSizeMB  float64
		accept     []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Validate question-paper files against the upload limits",
		Long: `Check files against the maximum count, the size limit and the accepted
MIME types, the same way the drop zone does. Limits default to the
"uploads" section of the configuration.`,
		Example: `  edu-ai upload paper1.pdf scan.png
  edu-ai upload *.jpg --max-size 2 --accept image/jpeg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config()
			if err != nil {
				return err
			}

			settings := *cfg.Uploads
			flags := cmd.Flags()
			if flags.Changed("max-files") {
				settings.MaxFiles = maxFiles
			}
			if flags.Changed("max-size") {
				settings.MaxSizeInMB = maxSizeMB
			}
			if flags.Changed("accept") {
				settings.AcceptedFileTypes = accept
			}
			if err := config.ValidateUploads(&settings); err != nil {
				return err
			}

			logger := app.Logger()
			u := upload.New(upload.Options{
				MaxFiles:          settings.MaxFiles,
				MaxSizeInMB:       settings.MaxSizeInMB,
				AcceptedFileTypes: settings.AcceptedFileTypes,
				OnFilesChange: func(files []upload.FileMetadata) {
					logger.Debug("upload list changed", zap.Int("files", len(files)))
				},
				Logger: logger,
			}, upload.NewMemoryPreviews())
			defer u.Close()

			limit := settings.MaxSizeInMB
			if limit <= 0 {
				limit = upload.DefaultMaxSizeInMB
			}

			files := make([]upload.File, 0, len(args))
			for _, path := range args {
				f, err := readUploadFile(path, int64(limit*1024*1024))
				if err != nil {
					return err
				}
				files = append(files, f)
			}

			accepted, addErr := u.Select(files)
			out := cmd.OutOrStdout()

			if jsonOutput {
				if err := printJSON(out, u.Files()); err != nil {
					return err
				}
			} else {
				printUploads(out, u.Files())
			}

			if addErr != nil {
				if accepted == 0 {
					return addErr
				}
				errOut := cmd.ErrOrStderr()
				fmt.Fprintln(errOut, colorRed(errOut, "⚠ "+u.Err()))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxFiles, "max-files", upload.DefaultMaxFiles, "Maximum number of files")
	cmd.Flags().Float64Var(&maxSizeMB, "max-size", upload.DefaultMaxSizeInMB, "Maximum size per file in MB")
	cmd.Flags().StringSliceVar(&accept, "accept", nil, "Accepted MIME types (comma-separated, empty accepts all)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output accepted files as JSON")

	return cmd
}

// readUploadFile stats path and detects its MIME type. Contents are loaded
// only for images within maxBytes, since only those get a preview.
func readUploadFile(path string, maxBytes int64) (upload.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return upload.File{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if info.IsDir() {
		return upload.File{}, fmt.Errorf("%s is a directory", path)
	}

	f := upload.File{
		Name: filepath.Base(path),
		Size: info.Size(),
	}

	typ, err := detectType(path)
	if err != nil {
		return upload.File{}, err
	}
	f.Type = typ

	if strings.HasPrefix(typ, "image/") && f.Size <= maxBytes {
		data, err := os.ReadFile(path)
		if err != nil {
			return upload.File{}, fmt.Errorf("cannot read %s: %w", path, err)
		}
		f.Data = data
	}
	return f, nil
}

// detectType uses the file extension, falling back to content sniffing.
// Parameters such as "; charset=utf-8" are stripped.
func detectType(path string) (string, error) {
	typ := mime.TypeByExtension(filepath.Ext(path))
	if typ == "" {
		fh, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("cannot read %s: %w", path, err)
		}
		defer fh.Close()

		buf := make([]byte, sniffLen)
		n, err := io.ReadFull(fh, buf)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return "", fmt.Errorf("cannot read %s: %w", path, err)
		}
		typ = http.DetectContentType(buf[:n])
	}

	mediaType, _, err := mime.ParseMediaType(typ)
	if err != nil {
		return typ, nil
	}
	return mediaType, nil
}

func printUploads(w io.Writer, files []upload.FileMetadata) {
	if len(files) == 0 {
		fmt.Fprintln(w, "No files accepted.")
		return
	}

	fmt.Fprintf(w, "Accepted files (%d):\n\n", len(files))
	for _, f := range files {
		fmt.Fprintf(w, "  %s %s  %s  %s\n", colorGreen(w, "✓"), f.Name, f.Type, upload.FormatFileSize(f.Size))
	}
}
