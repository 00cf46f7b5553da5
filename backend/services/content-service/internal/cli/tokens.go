package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"sitecms/backend/services/content-service/internal/cache"
	"sitecms/backend/services/content-service/internal/contrast"
	"sitecms/backend/services/content-service/internal/repository"
	"sitecms/backend/services/content-service/internal/service"
)

// ContrastService checks and corrects token text colours.
type ContrastService interface {
	ContrastReport(ctx context.Context) ([]contrast.Report, error)
	FixContrast(ctx context.Context) ([]contrast.Report, error)
}

func newTokensCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Inspect design tokens",
	}

	var fix, asJSON bool
	contrastCmd := &cobra.Command{
		Use:   "contrast",
		Short: "Check WCAG contrast of every colour token",
		Long: "Computes the contrast ratio of each token against white and the foreground colour and " +
			"reports tokens whose stored optimal text colour is not the better choice. With --fix the " +
			"better choice is written back.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rt.open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			styles := repository.NewStyleRepository(db)
			tokens := repository.NewTokenRepository(db)
			styleCache := cache.NewStyleCache(repository.NewSnapshotLoader(styles, tokens), nil, rt.logger)
			svc := service.NewContentService(styles, tokens, styleCache, nil, rt.logger)
			if fix {
				bus, closeBus := rt.publisher(cmd.Context())
				defer closeBus()
				if bus != nil {
					svc.WithPublisher(bus)
				}
			}
			return runContrast(cmd.Context(), svc, fix, asJSON, rt.out)
		},
	}
	contrastCmd.Flags().BoolVar(&fix, "fix", false, "store the better text colour for mismatching tokens")
	contrastCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	cmd.AddCommand(contrastCmd)
	return cmd
}

func runContrast(ctx context.Context, svc ContrastService, fix, asJSON bool, out io.Writer) error {
	reports, err := svc.ContrastReport(ctx)
	if err != nil {
		return err
	}

	var fixed []contrast.Report
	if fix {
		if fixed, err = svc.FixContrast(ctx); err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"reports": reports, "fixed": fixed})
	}

	fmt.Fprintln(out, renderReports(reports))
	mismatches := contrast.Mismatches(reports)
	switch {
	case fix:
		fmt.Fprintf(out, "%d token(s) corrected\n", len(fixed))
	case len(mismatches) > 0:
		fmt.Fprintf(out, "%d token(s) need a different text colour, rerun with --fix\n", len(mismatches))
	default:
		fmt.Fprintln(out, "all tokens use the better text colour")
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	sepStyle    = lipgloss.NewStyle().Faint(true)
)

func renderReports(reports []contrast.Report) string {
	headers := []string{"TOKEN", "WHITE", "FOREGROUND", "BEST", "STORED", "AA"}
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		if r.Error != "" {
			rows = append(rows, []string{r.Token, "-", "-", "-", string(r.Stored), failStyle.Render("invalid")})
			continue
		}
		aa := passStyle.Render("pass")
		if !r.PassesAA {
			aa = failStyle.Render("fail")
		}
		stored := string(r.Stored)
		if r.Mismatch {
			stored = failStyle.Render(stored)
		}
		rows = append(rows, []string{
			r.Token,
			strconv.FormatFloat(r.RatioWhite, 'f', 2, 64),
			strconv.FormatFloat(r.RatioForeground, 'f', 2, 64),
			string(r.Best),
			stored,
			aa,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string, style lipgloss.Style) {
		for i, cell := range cells {
			sb.WriteString(style.Width(widths[i] + 2).Render(cell))
			if i < len(cells)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}
	writeRow(headers, headerStyle)
	for _, row := range rows {
		writeRow(row, cellStyle)
	}
	return strings.TrimRight(sb.String(), "\n")
}
