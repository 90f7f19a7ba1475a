package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"launchpad/pkg/db"
	"launchpad/pkg/mulearn"
	gos3 "launchpad/pkg/s3"
	"launchpad/services/report"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "launchpadctl",
		Short:         "Operator utility for the Launchpad hiring services",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newReportsCommand())
	cmd.AddCommand(newLeaderboardCommand())
	cmd.AddCommand(newHealthCommand())
	return cmd
}

// resolveConfig merges the optional yaml config file with flag and env
// overrides; flags win, then env, then file.
func resolveConfig(configPath, api, bucket, token string) (report.FileConfig, error) {
	cfg, err := report.LoadFile(configPath)
	if err != nil {
		return report.FileConfig{}, err
	}

	if api != "" {
		cfg.APIBaseURL = api
	}
	if bucket != "" {
		cfg.Bucket = bucket
	}
	if token != "" {
		cfg.Token = token
	} else if cfg.Token == "" {
		cfg.Token = os.Getenv("MULEARN_TOKEN")
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://mulearn.org/api/v1"
	}
	return cfg, nil
}

func newReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Report export operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newReportsExportCommand())
	cmd.AddCommand(newReportsSummaryCommand())
	return cmd
}

func newReportsExportCommand() *cobra.Command {
	var (
		configPath string
		api        string
		bucket     string
		token      string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export hire requests as a compressed CSV to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := resolveConfig(configPath, api, bucket, token)
			if err != nil {
				return err
			}

			upstream, err := mulearn.New(cfg.APIBaseURL)
			if err != nil {
				return err
			}
			s3Client, err := gos3.NewClientFromEnv()
			if err != nil {
				return fmt.Errorf("s3 client: %w", err)
			}

			exportCfg := report.ExportConfig{
				Token:    cfg.Token,
				Status:   status,
				Bucket:   cfg.Bucket,
				Upstream: upstream,
				S3:       s3Client,
				Stdout:   os.Stdout,
			}

			if cfg.DBDSN != "" {
				pool, err := db.Open(ctx, cfg.DBDSN)
				if err != nil {
					return fmt.Errorf("open database: %w", err)
				}
				defer pool.Close()
				exportCfg.Pool = pool
			}

			result, err := report.ExportHireRequests(ctx, exportCfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "download: %s\n", result.URL)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to launchpadctl yaml config")
	cmd.Flags().StringVar(&api, "api", "", "Upstream API base URL")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Destination S3 bucket")
	cmd.Flags().StringVar(&token, "token", "", "Upstream access token (defaults to MULEARN_TOKEN)")
	cmd.Flags().StringVar(&status, "status", "", "Optional status filter (invited, interview_scheduled, accepted, rejected)")
	return cmd
}

func newReportsSummaryCommand() *cobra.Command {
	var (
		configPath string
		api        string
		token      string
		jobID      string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a plain-text hire activity recap for one job",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := resolveConfig(configPath, api, "", token)
			if err != nil {
				return err
			}

			upstream, err := mulearn.New(cfg.APIBaseURL)
			if err != nil {
				return err
			}

			requests, err := upstream.ListHireRequests(ctx, cfg.Token, "")
			if err != nil {
				return err
			}

			out, err := report.HireSummary(jobID, requests, nil)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to launchpadctl yaml config")
	cmd.Flags().StringVar(&api, "api", "", "Upstream API base URL")
	cmd.Flags().StringVar(&token, "token", "", "Upstream access token (defaults to MULEARN_TOKEN)")
	cmd.Flags().StringVar(&jobID, "job", "", "Job id to summarise")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func newLeaderboardCommand() *cobra.Command {
	var (
		configPath string
		api        string
		page       int
		perPage    int
		search     string
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print a page of the Launchpad leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := resolveConfig(configPath, api, "", "")
			if err != nil {
				return err
			}

			upstream, err := mulearn.New(cfg.APIBaseURL)
			if err != nil {
				return err
			}

			out, err := report.LeaderboardDigest(ctx, report.DigestConfig{
				Query:    mulearn.LeaderboardQuery{Page: page, PerPage: perPage, Search: search},
				Upstream: upstream,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to launchpadctl yaml config")
	cmd.Flags().StringVar(&api, "api", "", "Upstream API base URL")
	cmd.Flags().IntVar(&page, "page", 1, "Page index")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "Rows per page")
	cmd.Flags().StringVar(&search, "search", "", "Name search (minimum 3 characters)")
	return cmd
}

func newHealthCommand() *cobra.Command {
	var gatewayURL string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check gateway readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			client := &http.Client{Timeout: 10 * time.Second}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, gatewayURL+"/readyz", nil)
			if err != nil {
				return err
			}

			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			fmt.Fprintf(os.Stdout, "%s %s\n", resp.Status, string(body))
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("gateway not ready")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gatewayURL, "gateway", "http://localhost:8080", "Gateway base URL")
	return cmd
}
