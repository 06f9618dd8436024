// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/canonical/permission-service/internal/types"
	"github.com/canonical/permission-service/pkg/permission"
	"github.com/spf13/cobra"
)

var permCmd = &cobra.Command{
	Use:   "perm",
	Short: "Evaluate and manage resource permissions",
}

var (
	permTenantID string
	permSubject  string
	grantInherit bool
	grantExpires string
)

var checkPermCmd = &cobra.Command{
	Use:   "check [resource_type] [resource_id] [capabilities]",
	Short: "Evaluate a capability set against a resource",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()

		req := permission.EvaluateRequest{
			UserID:       permSubject,
			ResourceType: args[0],
			ResourceID:   args[1],
			Required:     args[2],
		}
		var resp permission.EvaluateResponse
		if err := client.do(http.MethodPost, fmt.Sprintf("/api/v0/tenants/%s/evaluate", permTenantID), nil, req, &resp); err != nil {
			return fmt.Errorf("failed to evaluate: %w", err)
		}

		verdict := "DENIED"
		if resp.Allowed {
			verdict = "ALLOWED"
		}
		fmt.Printf("%s (source: %s, effective: %s)\n", verdict, resp.Source, strings.Join(resp.Labels, "|"))
		return nil
	},
}

var grantPermCmd = &cobra.Command{
	Use:   "grant [resource_type] [resource_id] [grantee_type] [grantee_id] [capabilities]",
	Short: "Grant a capability set on a resource",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()

		req := permission.GrantRequest{
			ResourceType: args[0],
			ResourceID:   args[1],
			GranteeType:  args[2],
			GranteeID:    args[3],
			Permissions:  args[4],
			Inherit:      grantInherit,
		}
		if grantExpires != "" {
			req.ExpiresAt = &grantExpires
		}

		var created types.Grant
		if err := client.do(http.MethodPost, fmt.Sprintf("/api/v0/tenants/%s/grants", permTenantID), nil, req, &created); err != nil {
			return fmt.Errorf("failed to grant: %w", err)
		}

		fmt.Printf("Grant created: %s (%s on %s/%s for %s %s)\n", created.ID, created.Permissions, created.ResourceType, created.ResourceID, created.GranteeType, created.GranteeID)
		return nil
	},
}

var revokePermCmd = &cobra.Command{
	Use:   "revoke [resource_type] [resource_id] [grantee_type] [grantee_id]",
	Short: "Revoke a grant from a resource",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()

		query := url.Values{}
		query.Set("resource_type", args[0])
		query.Set("resource_id", args[1])
		query.Set("grantee_type", args[2])
		query.Set("grantee_id", args[3])
		if err := client.do(http.MethodDelete, fmt.Sprintf("/api/v0/tenants/%s/grants", permTenantID), query, nil, nil); err != nil {
			return fmt.Errorf("failed to revoke: %w", err)
		}

		fmt.Printf("Grant revoked: %s %s on %s/%s\n", args[2], args[3], args[0], args[1])
		return nil
	},
}

var listPermCmd = &cobra.Command{
	Use:   "list [resource_type] [resource_id]",
	Short: "List the live grants on a resource",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient()

		query := url.Values{}
		query.Set("resource_type", args[0])
		query.Set("resource_id", args[1])
		var resp struct {
			Grants []*types.Grant `json:"grants"`
		}
		if err := client.do(http.MethodGet, fmt.Sprintf("/api/v0/tenants/%s/permissions", permTenantID), query, nil, &resp); err != nil {
			return fmt.Errorf("failed to list grants: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "GRANTEE_TYPE\tGRANTEE_ID\tPERMISSIONS\tINHERIT\tEXPIRES_AT")
		for _, g := range resp.Grants {
			expires := "-"
			if g.ExpiresAt != nil {
				expires = g.ExpiresAt.String()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n", g.GranteeType, g.GranteeID, g.Permissions, g.Inherit, expires)
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(permCmd)
	permCmd.AddCommand(checkPermCmd)
	permCmd.AddCommand(grantPermCmd)
	permCmd.AddCommand(revokePermCmd)
	permCmd.AddCommand(listPermCmd)

	permCmd.PersistentFlags().StringVar(&permTenantID, "tenant", "", "Tenant ID")
	permCmd.MarkPersistentFlagRequired("tenant")

	checkPermCmd.Flags().StringVar(&permSubject, "subject", "", "Evaluate for this user instead of the caller")
	grantPermCmd.Flags().BoolVar(&grantInherit, "inherit", false, "Apply the grant to descendant resources")
	grantPermCmd.Flags().StringVar(&grantExpires, "expires-at", "", "RFC3339 expiry timestamp")
}
