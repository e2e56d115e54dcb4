package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docverify/internal/client"
)

func newSubmitCmd() *cobra.Command {
	var (
		baseURL     string
		apiKey      string
		contentType string
	)

	cmd := &cobra.Command{
		Use:   "submit <file>",
		Short: "Upload a file to a running verification service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiKey == "" {
				apiKey = os.Getenv("VERIFICATION_API_KEY")
			}
			if apiKey == "" {
				return errors.New("an API key is required (--api-key or VERIFICATION_API_KEY)")
			}

			path := args[0]
			f, err := os.Open(filepath.Clean(path))
			if err != nil {
				return err
			}
			defer f.Close()

			if contentType == "" {
				contentType = guessContentType(path)
			}

			v, err := client.New(baseURL, apiKey).Verify(cmd.Context(), filepath.Base(path), contentType, f)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(v); err != nil {
				return err
			}
			if !v.Valid {
				return errChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the verification service")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (default: $VERIFICATION_API_KEY)")
	cmd.Flags().StringVarP(&contentType, "type", "t", "", "Declared content type (default: guessed from extension)")
	return cmd
}
