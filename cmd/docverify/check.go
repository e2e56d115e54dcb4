package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"docverify/internal/model"
	"docverify/internal/service"
	"docverify/internal/verification"
)

// errChecksFailed makes the command exit non-zero without repeating per-file output.
var errChecksFailed = errors.New("one or more documents failed verification")

type checkResult struct {
	Path    string                     `json:"path"`
	Verdict *model.VerificationVerdict `json:"verdict,omitempty"`
	Error   string                     `json:"error,omitempty"`
}

func newCheckCmd() *cobra.Command {
	var (
		contentType string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Run the verification pipeline on local files",
		Long: `Run the verification pipeline on local files.

The content type comes from --type, or from the file extension when --type
is omitted. The pipeline trusts it as given, exactly like the HTTP service.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewVerificationService(verification.New(), nil, slog.Default())

			results := make([]checkResult, 0, len(args))
			failed := false
			for _, path := range args {
				res := checkFile(cmd, svc, path, contentType)
				if res.Error != "" || !res.Verdict.Valid {
					failed = true
				}
				results = append(results, res)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					printResult(cmd.OutOrStdout(), r)
				}
			}

			if failed {
				return errChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&contentType, "type", "t", "", "Declared content type (default: guessed from extension)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}

func checkFile(cmd *cobra.Command, svc service.VerificationService, path, contentType string) checkResult {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return checkResult{Path: path, Error: err.Error()}
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, verification.MaxSizeBytes+1))
	if err != nil {
		return checkResult{Path: path, Error: err.Error()}
	}

	if contentType == "" {
		contentType = guessContentType(path)
	}

	res, err := svc.Verify(cmd.Context(), content, filepath.Base(path), contentType)
	if err != nil {
		return checkResult{Path: path, Error: err.Error()}
	}
	return checkResult{Path: path, Verdict: res.Verdict}
}

// guessContentType maps a file extension to a media type without parameters.
func guessContentType(path string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

func printResult(w io.Writer, r checkResult) {
	switch {
	case r.Error != "":
		fmt.Fprintf(w, "REJECTED  %s: %s\n", r.Path, r.Error)
	case r.Verdict.Valid:
		fmt.Fprintf(w, "VALID     %s  sha256=%s\n", r.Path, r.Verdict.Metadata.SHA256)
	default:
		fmt.Fprintf(w, "INVALID   %s  sha256=%s  reason=%s\n", r.Path, r.Verdict.Metadata.SHA256, *r.Verdict.Reason)
	}
}
