package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/prodplan/config"
	"github.com/kilianp07/prodplan/core/model"
	"github.com/kilianp07/prodplan/core/production"
	"github.com/kilianp07/prodplan/infra/logger"
	"github.com/kilianp07/prodplan/pkg/export"
)

var (
	payloadPath string
	strictLoad  bool
	format      string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a production plan from a payload file",
	Long:  "Reads a production plan request (\"-\" for stdin) and prints the plan as JSON or CSV.",
	RunE:  planPayload,
}

func init() {
	planCmd.Flags().StringVarP(&payloadPath, "file", "f", "-", "request payload")
	planCmd.Flags().StringVarP(&format, "output", "o", export.FormatJSON, "output format (json or csv)")
	planCmd.Flags().BoolVar(&strictLoad, "strict", false, "fail when the load cannot be met")
	rootCmd.AddCommand(planCmd)
}

func planPayload(cmd *cobra.Command, args []string) error {
	strict := strictLoad
	if cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := logger.SetLevel(cfg.Logging.Level); err != nil {
			return err
		}
		strict = strict || cfg.Planner.StrictLoad
	}

	var in io.Reader = cmd.InOrStdin()
	if payloadPath != "-" {
		f, err := os.Open(payloadPath)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		in = f
	}
	req, err := model.DecodeRequest(in)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := req.Validate(); err != nil {
		return err
	}
	res, err := production.NewPlanner(logger.New("planner"), production.WithStrictLoad(strict)).Compute(req)
	if err != nil {
		return err
	}
	return export.Write(cmd.OutOrStdout(), format, res.Plan())
}
