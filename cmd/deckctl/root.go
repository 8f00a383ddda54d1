package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

type rootOptions struct {
	verbose bool
	log     *logger.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{log: logger.Nop()}
	root := &cobra.Command{
		Use:           "deckctl",
		Short:         "Render slide plans into presentation files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				return nil
			}
			log, err := logger.New("development")
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			opts.log = log
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline steps to stderr")
	root.AddCommand(newRenderCmd(opts), newNormalizeCmd())
	return root
}

// readPlan loads a plan file, or stdin when path is "-".
func readPlan(cmd *cobra.Command, path string) (plan.Plan, plan.Report, error) {
	var (
		data []byte
		err  error
	)
	switch strings.TrimSpace(path) {
	case "":
		return plan.Plan{}, plan.Report{}, fmt.Errorf("--plan is required")
	case "-":
		data, err = io.ReadAll(cmd.InOrStdin())
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return plan.Plan{}, plan.Report{}, fmt.Errorf("read plan: %w", err)
	}
	raw, err := plan.Decode(data)
	if err != nil {
		return plan.Plan{}, plan.Report{}, fmt.Errorf("parse plan: %w", err)
	}
	p, rep := plan.Normalize(raw)
	return p, rep, nil
}

func printReport(w io.Writer, rep plan.Report) {
	for _, s := range rep.Strings() {
		fmt.Fprintln(w, "repaired:", s)
	}
}

func newNormalizeCmd() *cobra.Command {
	var planPath string
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Print the repaired plan as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, rep, err := readPlan(cmd, planPath)
			if err != nil {
				return err
			}
			compact, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("encode plan: %w", err)
			}
			var out bytes.Buffer
			if err := json.Indent(&out, compact, "", "  "); err != nil {
				return fmt.Errorf("encode plan: %w", err)
			}
			out.WriteByte('\n')
			if _, err := cmd.OutOrStdout().Write(out.Bytes()); err != nil {
				return err
			}
			printReport(cmd.ErrOrStderr(), rep)
			return nil
		},
	}
	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "plan JSON file, or - for stdin")
	return cmd
}
