package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/traindeck/traindeck/pkg/storage"
	"gopkg.in/yaml.v3"
)

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Inspect the local submission log",
}

var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List submitted apps",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		store, err := storage.NewBoltStore(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open submission log: %v", err)
		}
		defer store.Close()

		recs, err := store.ListApps()
		if err != nil {
			return fmt.Errorf("failed to list apps: %v", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTATUS\tROLES\tSUBMITTED")
		for _, rec := range recs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				rec.ID, rec.Name, rec.Status, len(rec.App.Roles),
				rec.SubmittedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

var appDescribeCmd = &cobra.Command{
	Use:   "describe ID",
	Short: "Show a submitted app in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		store, err := storage.NewBoltStore(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open submission log: %v", err)
		}
		defer store.Close()

		rec, err := store.GetApp(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:        %s\n", rec.ID)
		fmt.Printf("Name:      %s\n", rec.Name)
		fmt.Printf("Status:    %s\n", rec.Status)
		fmt.Printf("Submitted: %s\n", rec.SubmittedAt.Format("2006-01-02 15:04:05 MST"))
		fmt.Println("Roles:")
		for i := range rec.App.Roles {
			out, err := yaml.Marshal(rec.App.Roles[i].Encode())
			if err != nil {
				return fmt.Errorf("failed to render role: %v", err)
			}
			fmt.Printf("---\n%s", out)
		}
		return nil
	},
}

var appDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove an app from the submission log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		store, err := storage.NewBoltStore(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open submission log: %v", err)
		}
		defer store.Close()

		if err := store.DeleteApp(args[0]); err != nil {
			return fmt.Errorf("failed to delete app: %v", err)
		}
		fmt.Printf("✓ Deleted: %s\n", args[0])
		return nil
	},
}

func init() {
	appCmd.AddCommand(appListCmd)
	appCmd.AddCommand(appDescribeCmd)
	appCmd.AddCommand(appDeleteCmd)
	rootCmd.AddCommand(appCmd)
}
