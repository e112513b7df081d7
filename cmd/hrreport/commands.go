package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/seu-repo/lapeco-hr/internal/bootstrap"
	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/observability/telemetry"
	"github.com/seu-repo/lapeco-hr/internal/ports"
	"github.com/seu-repo/lapeco-hr/pkg/config"
)

type cli struct {
	configPath string
	verbose    bool
	timeout    time.Duration

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "hrreport",
		Short:         "Generate Lapeco HR reports from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: configs/config.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 2*time.Minute, "overall deadline for the command")

	root.AddCommand(c.listCmd(), c.generateCmd(), c.attachmentCmd(), c.importPayrollCmd())
	return root
}

func (c *cli) setup() error {
	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return err
	}

	logging := cfg.Logging
	logging.Format = "console"
	logging.Output = "stderr"
	logging.Level = "warn"
	if c.verbose {
		logging.Level = "debug"
	}
	log, err := telemetry.NewLogger(logging)
	if err != nil {
		return err
	}

	c.cfg, c.log = cfg, log
	return nil
}

func (c *cli) container(ctx context.Context) (*bootstrap.Container, error) {
	return bootstrap.New(ctx, c.cfg, bootstrap.Options{SkipQueue: true}, c.log)
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the report catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := bootstrap.Catalog(c.cfg.Reports.CatalogPath)
			if err != nil {
				return err
			}
			return printCatalog(cmd.OutOrStdout(), catalog)
		},
	}
}

func (c *cli) generateCmd() *cobra.Command {
	var (
		params []string
		as     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate <report-id>",
		Short: "Generate a report and write it to a file",
		Example: `  hrreport generate attendance_summary --param startDate=2024-02-01 --param endDate=2024-02-15
  hrreport generate payroll_history --as E-0007 -o history.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := parseParams(params)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			container, err := c.container(ctx)
			if err != nil {
				return err
			}
			defer container.Close()

			return runGenerate(ctx, container.Reports, domain.GenerationRequest{
				ReportID:  domain.ReportID(args[0]),
				Params:    raw,
				Requester: as,
			}, output, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "report parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&as, "as", "", "employee ID the report runs for")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout, default: generated filename)`)
	return cmd
}

func (c *cli) attachmentCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "attachment <leave-id>",
		Short: "Download the document attached to a leave request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			container, err := c.container(ctx)
			if err != nil {
				return err
			}
			defer container.Close()

			blob, err := container.Reports.RetrieveAttachment(ctx, args[0])
			if err != nil {
				return err
			}
			return writeOutput(output, blob.Filename, blob.Data, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout)`)
	return cmd
}

// payrollImport is the YAML layout accepted by import-payroll.
type payrollImport struct {
	Runs []struct {
		ID      string `yaml:"id"`
		Period  string `yaml:"period"`
		PayDate string `yaml:"pay_date"`
		Records []struct {
			EmployeeID string  `yaml:"employee_id"`
			Gross      float64 `yaml:"gross_pay"`
			Deductions float64 `yaml:"total_deductions"`
			Net        float64 `yaml:"net_pay"`
			Status     string  `yaml:"status"`
		} `yaml:"records"`
	} `yaml:"runs"`
}

func (c *cli) importPayrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-payroll <file.yaml>",
		Short: `Import payroll runs whose period is a "<start> to <end>" label`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := readPayrollImport(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			container, err := c.container(ctx)
			if err != nil {
				return err
			}
			defer container.Close()

			for _, run := range runs {
				if _, err := container.Payroll.ImportRun(ctx, run.id, run.label, run.payDate, run.records); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d records)\n", run.id, len(run.records))
			}
			return nil
		},
	}
}

type importedRun struct {
	id      string
	label   string
	payDate time.Time
	records []domain.PayrollRecord
}

func readPayrollImport(path string) ([]importedRun, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f payrollImport
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	runs := make([]importedRun, 0, len(f.Runs))
	for _, r := range f.Runs {
		if r.ID == "" {
			return nil, fmt.Errorf("parse %s: run without id", path)
		}
		payDate, err := time.Parse("2006-01-02", r.PayDate)
		if err != nil {
			return nil, fmt.Errorf("run %s: pay_date: %w", r.ID, err)
		}
		if _, err := domain.ParsePayPeriodLabel(r.Period); err != nil {
			return nil, err
		}

		run := importedRun{id: r.ID, label: r.Period, payDate: payDate}
		for _, rec := range r.Records {
			run.records = append(run.records, domain.PayrollRecord{
				EmployeeID: rec.EmployeeID,
				GrossPay:   rec.Gross,
				Deductions: rec.Deductions,
				NetPay:     rec.Net,
				PaidStatus: rec.Status,
			})
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", p)
		}
		params[k] = v
	}
	return params, nil
}

func runGenerate(ctx context.Context, reports ports.ReportService, req domain.GenerationRequest, output string, stdout io.Writer) error {
	result, err := reports.Generate(ctx, req)
	if err != nil {
		return err
	}
	return writeOutput(output, result.Filename, result.Data, stdout)
}

func writeOutput(output, filename string, data []byte, stdout io.Writer) error {
	if output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if output == "" {
		output = filepath.Base(filename)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", output, len(data))
	return nil
}

func printCatalog(w io.Writer, catalog []domain.ReportMeta) error {
	list := append([]domain.ReportMeta(nil), catalog...)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Category != list[j].Category {
			return list[i].Category < list[j].Category
		}
		return list[i].ID < list[j].ID
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tPARAMS\tTITLE")
	for _, m := range list {
		params := string(m.Params)
		if params == "" {
			params = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Category, params, m.Title)
	}
	return tw.Flush()
}
