package main

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"credd/internal/di"
	"credd/internal/models"
)

var scanReq models.AnalyzeRequest

var scanCmd = &cobra.Command{
	Use:   "scan [text]",
	Short: "Score a single piece of content and print the result as JSON",
	Long: `Scan runs the full pipeline once. The content is taken from the
arguments, or from stdin when none are given.

Example:
  credd scan "SHOCKING: doctors don't want you to know this"
  cat post.txt | credd scan --domain example.com`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanReq.ContentType, "type", models.ContentTypeText, "content type: text, image, video or mixed")
	scanCmd.Flags().StringVar(&scanReq.SourceDomain, "domain", "", "domain the content was found on")
	scanCmd.Flags().StringVar(&scanReq.SourceApp, "app", "cli", "submitting application")
	scanCmd.Flags().StringVar(&scanReq.UserHash, "user", "", "opaque user id hash")
}

func runScan(cmd *cobra.Command, args []string) error {
	content := strings.Join(args, " ")
	if content == "" {
		raw, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), 1<<20))
		if err != nil {
			return err
		}
		content = string(raw)
	}

	tk, cleanup, err := di.InitToolkit(&flags)
	if err != nil {
		return err
	}
	defer cleanup()
	defer tk.Logger.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	req := scanReq
	req.Content = content
	result, err := tk.Analyzer.Analyze(ctx, &req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
