// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/canonical/permission-service/internal/types"
	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query and export the audit trail",
}

var (
	auditTenantID string
	auditAction   string
	auditActorID  string
	auditLevel    string
	auditFrom     string
	auditTo       string
	auditPage     uint64
	auditSize     uint64
	exportFormat  string
)

func auditQueryValues() url.Values {
	query := url.Values{}
	if auditTenantID != "" {
		query.Set("tenant_id", auditTenantID)
	}
	if auditAction != "" {
		query.Set("action", auditAction)
	}
	if auditActorID != "" {
		query.Set("actor_id", auditActorID)
	}
	if auditLevel != "" {
		query.Set("level", auditLevel)
	}
	if auditFrom != "" {
		query.Set("from", auditFrom)
	}
	if auditTo != "" {
		query.Set("to", auditTo)
	}
	return query
}

var queryAuditCmd = &cobra.Command{
	Use:   "query",
	Short: "List audit entries matching the filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()

		query := auditQueryValues()
		query.Set("page", strconv.FormatUint(auditPage, 10))
		query.Set("size", strconv.FormatUint(auditSize, 10))

		var resp struct {
			Entries []*types.AuditEntry `json:"entries"`
		}
		if err := client.do(http.MethodGet, "/api/v0/audit", query, nil, &resp); err != nil {
			return fmt.Errorf("failed to query audit log: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CREATED_AT\tLEVEL\tACTION\tACTOR\tRESOURCE\tSUCCESS")
		for _, e := range resp.Entries {
			resource := "-"
			if e.ResourceType != "" {
				resource = e.ResourceType + "/" + e.ResourceID
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%v\n", e.CreatedAt.Format(time.RFC3339), e.Level, e.Action, e.ActorID, resource, e.Success)
		}
		w.Flush()
		return nil
	},
}

var exportAuditCmd = &cobra.Command{
	Use:   "export",
	Short: "Stream matching audit entries to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()

		query := auditQueryValues()
		query.Set("format", exportFormat)

		body, err := client.raw("/api/v0/audit/export", query)
		if err != nil {
			return fmt.Errorf("failed to export audit log: %w", err)
		}
		defer body.Close()

		if _, err := io.Copy(os.Stdout, body); err != nil {
			return fmt.Errorf("export stream interrupted: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(queryAuditCmd)
	auditCmd.AddCommand(exportAuditCmd)

	auditCmd.PersistentFlags().StringVar(&auditTenantID, "tenant", "", "Filter by tenant ID")
	auditCmd.PersistentFlags().StringVar(&auditAction, "action", "", "Filter by action")
	auditCmd.PersistentFlags().StringVar(&auditActorID, "actor", "", "Filter by actor ID")
	auditCmd.PersistentFlags().StringVar(&auditLevel, "level", "", "Filter by level (info, warning, critical, security)")
	auditCmd.PersistentFlags().StringVar(&auditFrom, "from", "", "RFC3339 lower bound on created_at")
	auditCmd.PersistentFlags().StringVar(&auditTo, "to", "", "RFC3339 upper bound on created_at")

	queryAuditCmd.Flags().Uint64Var(&auditPage, "page", 0, "Page number")
	queryAuditCmd.Flags().Uint64Var(&auditSize, "size", 50, "Page size")
	exportAuditCmd.Flags().StringVar(&exportFormat, "format", "jsonl", "Export format (jsonl or csv)")
}
