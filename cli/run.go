package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ka2n/postview/api"
	"github.com/ka2n/postview/api/controller"
	"github.com/ka2n/postview/api/datasource"
	"github.com/ka2n/postview/api/sourceimpl"
	"github.com/ka2n/postview/api/sourceresolver"
	"github.com/ka2n/postview/log"
	"github.com/ka2n/postview/mcp"
	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure/v2"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	urlFlag     string
	sourceFlag  = sourceKindFlag{Value: datasource.KindRemote}
	fixtureFlag string
	printFlag   bool
	browserFlag bool

	// Root command
	rootCmd = &cobra.Command{
		Use:           "postview",
		Short:         "View a list of posts fetched from a data source",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `postview fetches a list of posts once and shows their titles.

The data source is chosen when the program starts:
1. remote (default): GET a JSON array from --url
2. static: built-in records, or records loaded from --fixture

When stdout is not a terminal, or with --print, the titles are printed
instead of opening the interactive list.`,
		Args: cobra.NoArgs,
		RunE: runRoot,
	}

	// Version command
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print detailed version information about postview",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "postview version %s\n", api.Version)
			if api.VersionCommit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", api.VersionCommit)
			}
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&urlFlag, "url", "u", sourceimpl.DefaultURL, "URL of the JSON feed for the remote source")
	rootCmd.Flags().VarP(&sourceFlag, "source", "s", "Data source to inject (remote, static)")
	rootCmd.Flags().StringVar(&fixtureFlag, "fixture", "", "JSON file of records for the static source")
	rootCmd.Flags().BoolVarP(&printFlag, "print", "p", false, "Print titles instead of opening the list view")
	rootCmd.Flags().BoolVarP(&browserFlag, "browser", "b", false, "Open the feed URL in browser")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcp.Command())
}

// Run executes the main CLI functionality
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if fixtureFlag != "" && sourceFlag.Value != datasource.KindStatic {
		return failure.New(InvalidArguments,
			failure.Message("--fixture requires --source static"),
		)
	}

	if browserFlag {
		if sourceFlag.Value != datasource.KindRemote {
			return failure.New(InvalidArguments,
				failure.Message("--browser requires the remote source"),
			)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Opening feed in browser: %s\n", urlFlag)
		if err := browser.OpenURL(urlFlag); err != nil {
			return failure.Wrap(err)
		}
		return nil
	}

	ds, err := sourceresolver.DataSource(sourceresolver.Options{
		Kind:    sourceFlag.Value,
		URL:     urlFlag,
		Fixture: fixtureFlag,
	})
	if err != nil {
		return failure.Wrap(err)
	}

	log.Debug("Data source ready", "source", sourceFlag.Value)

	if printFlag || !isatty.IsTerminal(os.Stdout.Fd()) {
		return printRecords(cmd.Context(), cmd.OutOrStdout(), ds, isatty.IsTerminal(os.Stdout.Fd()))
	}

	queue := newUIQueue()
	ctrl := controller.New(cmd.Context(), ds, controller.WithDispatcher(queue.Dispatch))
	defer ctrl.Close()

	if err := RunListView(ctrl, queue); err != nil {
		return failure.Wrap(err)
	}
	return nil
}

// printRecords waits for the single fetch and writes the titles to w
func printRecords(ctx context.Context, w io.Writer, ds datasource.DataSource, styled bool) error {
	ctrl := controller.New(ctx, ds)
	defer ctrl.Close()

	select {
	case <-ctrl.Done():
	case <-ctx.Done():
		return failure.Wrap(ctx.Err())
	}

	if err := ctrl.Err(); err != nil {
		log.Warn("No posts fetched", "error", err)
	}

	out, err := RenderText(ctrl.Items(), 100, styled)
	if err != nil {
		return failure.Wrap(err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return failure.Wrap(err)
	}
	return nil
}
