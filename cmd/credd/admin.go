package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"credd/internal/di"
	"credd/internal/fingerprint"
	"credd/internal/models"
	"credd/internal/storage"
)

var (
	fakeFingerprint string
	fakeContentType string
	fakeChecker     string
	sourceBias      string
)

var fakesCmd = &cobra.Command{
	Use:   "fakes",
	Short: "Manage the known-fakes registry",
}

var fakesAddCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Register content, or a raw fingerprint, as confirmed misinformation",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fp := fakeFingerprint
		if fp == "" {
			if len(args) == 0 {
				return fmt.Errorf("either content or --fingerprint is required")
			}
			fp = fingerprint.Compute(args[0])
		}

		tk, cleanup, err := di.InitToolkit(&flags)
		if err != nil {
			return err
		}
		defer cleanup()
		defer tk.Logger.Close()

		rec, err := tk.KnownFakes.Register(cmd.Context(), fp, fakeContentType, fakeChecker)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registered %s (checker=%s, reports=%d)\n", rec.Fingerprint, rec.FactChecker, rec.ReportCount)
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage per-domain credibility ratings",
}

var sourcesSetCmd = &cobra.Command{
	Use:   "set <domain> <credibility>",
	Short: "Create or replace the rating of a domain (credibility in [0,1])",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		credibility, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("credibility: %w", err)
		}

		tk, cleanup, err := di.InitToolkit(&flags)
		if err != nil {
			return err
		}
		defer cleanup()
		defer tk.Logger.Close()

		rec := &models.SourceCredibilityRecord{
			Domain:      storage.NormalizeDomain(args[0]),
			Credibility: credibility,
			Bias:        models.Bias(sourceBias),
			LastUpdated: time.Now().UTC(),
		}
		if err := tk.Sources.Upsert(cmd.Context(), rec); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s rated %.2f\n", rec.Domain, rec.Credibility)
		return nil
	},
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every rated domain",
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, cleanup, err := di.InitToolkit(&flags)
		if err != nil {
			return err
		}
		defer cleanup()
		defer tk.Logger.Close()

		recs, err := tk.Sources.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, r := range recs {
			fmt.Fprintf(cmd.OutOrStdout(), "%-32s %.2f %s\n", r.Domain, r.Credibility, r.Bias)
		}
		return nil
	},
}

func init() {
	fakesAddCmd.Flags().StringVar(&fakeFingerprint, "fingerprint", "", "register a precomputed 64-char fingerprint")
	fakesAddCmd.Flags().StringVar(&fakeContentType, "type", models.ContentTypeText, "content type")
	fakesAddCmd.Flags().StringVar(&fakeChecker, "checker", "", "fact-checking organization")
	_ = fakesAddCmd.MarkFlagRequired("checker")
	fakesCmd.AddCommand(fakesAddCmd)

	sourcesSetCmd.Flags().StringVar(&sourceBias, "bias", string(models.BiasUnknown), "left, center, right or unknown")
	sourcesCmd.AddCommand(sourcesSetCmd, sourcesListCmd)

	rootCmd.AddCommand(fakesCmd, sourcesCmd)
}
