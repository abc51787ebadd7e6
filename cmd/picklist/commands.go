package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"picklist/internal/config"
	"picklist/internal/orders"
	"picklist/internal/picklist"
	"picklist/internal/pipeline"
	"picklist/internal/sku"
)

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh every storefront and replace the stored open orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Require("SHIPPING_API_KEY", a.cfg.ShippingAPIKey); err != nil {
				return err
			}
			if err := a.cfg.Require("SHIPPING_API_SECRET", a.cfg.ShippingAPISecret); err != nil {
				return err
			}
			catalog, err := config.LoadCatalog(a.cfg.StoresFile)
			if err != nil {
				return err
			}

			svc := orders.NewSyncService(a.db, orders.NewClient(a.cfg), catalog, a.cfg, a.logger)
			run, err := svc.Sync(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sync complete trace=%s stores=%d orders=%d items=%d rejected=%d mismatched=%d\n",
				run.TraceID, run.Stores, run.Orders, run.Items, run.Rejected, run.Mismatch)
			return nil
		},
	}
}

func newPickListCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "picklist",
		Short: "Print the pick list for the stored open orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			aggregates, err := a.db.AggregateQuantities()
			if err != nil {
				return err
			}
			lastSync, err := a.db.LastSync()
			if err != nil {
				return err
			}

			lines := picklist.Build(aggregates)
			if out != "" {
				if err := pipeline.ExportPickListXLSX(lines, lastSync, out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "pick list exported: %s (%d lines)\n", out, len(lines))
				return nil
			}
			return pipeline.RenderPickList(cmd.OutOrStdout(), lines, lastSync)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write an .xlsx file instead of printing")
	return cmd
}

func newOrdersCmd(a *app) *cobra.Command {
	var store string
	var export bool
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List the open line items of one storefront",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.db.ListStoreItems(store)
			if err != nil {
				return err
			}
			if !export {
				return pipeline.RenderStoreItems(cmd.OutOrStdout(), store, rows)
			}

			name := fmt.Sprintf("%s_%s.xlsx", pipeline.SafeFileName(store), time.Now().Format("20060102_150405"))
			path := filepath.Join(a.cfg.OutputDir, name)
			if err := pipeline.ExportStoreItemsXLSX(rows, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "orders exported: %s (%d rows)\n", path, len(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&store, "store", "", "storefront name as written in the stores file")
	cmd.Flags().BoolVar(&export, "xlsx", false, "export to OUTPUT_DIR instead of printing")
	_ = cmd.MarkFlagRequired("store")
	return cmd
}

func newNotesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage warehouse notes",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <text>",
			Short: "Add a note",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				note, err := a.db.AddNote(strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "note %d added\n", note.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List notes, oldest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				notes, err := a.db.ListNotes()
				if err != nil {
					return err
				}
				for _, note := range notes {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", note.ID, note.CreatedAt, note.Note)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a note",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid note id %q", args[0])
				}
				if err := a.db.DeleteNote(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "note %d deleted\n", id)
				return nil
			},
		},
	)
	return cmd
}

func newNormalizeCmd(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "normalize [sku]",
		Short: "Show the canonical form of a SKU",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var revisions map[string]string
			if catalog, err := config.LoadCatalog(a.cfg.StoresFile); err == nil {
				revisions = catalog.Revisions
			} else {
				a.logger.Debug("stores file not loaded, using built-in revisions")
			}

			var raw *string
			if len(args) == 1 {
				raw = &args[0]
			}
			n := sku.New(sku.WithRevisions(revisions), sku.WithMismatchHook(func(m sku.Mismatch) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s has %d tokens, no %s layout matches\n", m.SKU, m.Tokens, m.Brand)
			}))
			fmt.Fprintln(cmd.OutOrStdout(), n.Normalize(raw, description))
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "line item description, used when the SKU is missing")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the last sync and recent sync runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lastSync, err := a.db.LastSync()
			if err != nil {
				return err
			}
			ordersCount, itemsCount, err := a.db.CountOrders()
			if err != nil {
				return err
			}
			runs, err := a.db.ListSyncRuns(limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "last sync: %s\n", pipeline.FormatLastSync(lastSync))
			fmt.Fprintf(w, "open orders: %d (%d line items)\n", ordersCount, itemsCount)
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\torders=%d items=%d rejected=%d mismatched=%d elapsed=%dms\n",
					run.CreatedAt, run.TraceID, run.Orders, run.Items, run.Rejected, run.Mismatch, run.ElapsedMs)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "number of recent sync runs to show")
	return cmd
}
