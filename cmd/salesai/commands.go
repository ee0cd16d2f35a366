package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/salesai/backend/internal/assistant"
	"github.com/salesai/backend/internal/client"
	"github.com/salesai/backend/internal/domain"
	"github.com/salesai/backend/internal/report"
	"github.com/salesai/backend/internal/tui"
	"github.com/salesai/backend/internal/usecase"
	"github.com/spf13/cobra"
)

var (
	analyzeForm      domain.CustomerFormData
	analyzeSolutions bool
	outputJSON       bool
	painPoints       []string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive form",
	RunE:  runTUI,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Generate an analysis report for a company",
	Long: `Validates the form, enriches it from the company catalog and asks the
backend for a report.

Example:
  salesai analyze --company 台積 --industry 半導體 --solutions`,
	RunE: runAnalyze,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend catalog solutions for pain points",
	Long: `Example:
  salesai recommend --pain-point 資料分散在各系統 --pain-point 決策速度慢`,
	RunE: runRecommend,
}

var companiesCmd = &cobra.Command{
	Use:   "companies [query]",
	Short: "Search the company catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCompanies,
}

var solutionCmd = &cobra.Command{
	Use:   "solution [id]",
	Short: "Show one catalog solution",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolution,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeForm.CompanyName, "company", "", "Company name (required)")
	f.StringVar(&analyzeForm.Industry, "industry", "", "Industry (required)")
	f.StringVar(&analyzeForm.Website, "website", "", "Company website")
	f.StringVar(&analyzeForm.CompanyID, "company-id", "", "Tax id or other identifier")
	f.StringVar(&analyzeForm.RawData, "raw", "", "Free-form notes about the company")
	f.BoolVar(&analyzeSolutions, "solutions", false, "Also search recommended solutions")
	f.BoolVar(&outputJSON, "json", false, "Print JSON instead of rendered Markdown")

	recommendCmd.Flags().StringArrayVarP(&painPoints, "pain-point", "p", nil, "Customer pain point (repeatable)")
	recommendCmd.Flags().BoolVar(&outputJSON, "json", false, "Print JSON instead of rendered Markdown")
	_ = recommendCmd.MarkFlagRequired("pain-point")
}

func runTUI(cmd *cobra.Command, args []string) error {
	renderer, err := report.NewTerminalRenderer(100, glamourStyle)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return tui.Run(cmd.Context(), newController(), cat.Industries, renderer)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeForm.Industry != "" && !cat.IsIndustry(analyzeForm.Industry) {
		log.WithField("industry", analyzeForm.Industry).Warn("industry is not in the catalog list")
	}

	ctrl := newController()
	for _, edit := range formEdits(analyzeForm) {
		ctrl.EditField(edit.Field, edit.Value)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if err := ctrl.Submit(ctx); err != nil {
		return err
	}

	if analyzeSolutions {
		// a failed search is shown inline; the report is still printed
		_ = ctrl.SearchSolutions(ctx)
	}

	s := ctrl.State()
	r := s.VisibleReport()
	if outputJSON {
		out := struct {
			Form      domain.CustomerFormData            `json:"form"`
			Report    *domain.AnalysisReport             `json:"report"`
			Solutions []domain.RecommendedSystexSolution `json:"solutions,omitempty"`
		}{s.Form, r, s.Solutions}
		return printJSON(cmd, out)
	}

	md := report.Markdown(r)
	if s.SolutionsSearched {
		md += "\n" + report.SolutionsMarkdown(s.Solutions)
	}
	if err := printMarkdown(cmd, md); err != nil {
		return err
	}
	if s.SolutionsError != "" {
		cmd.PrintErrln(s.SolutionsError)
	}
	return nil
}

// formEdits returns the edits that fill form, company name first since
// editing it clears the other fields
func formEdits(form domain.CustomerFormData) []assistant.EditField {
	return []assistant.EditField{
		{Field: domain.FieldCompanyName, Value: form.CompanyName},
		{Field: domain.FieldIndustry, Value: form.Industry},
		{Field: domain.FieldWebsite, Value: form.Website},
		{Field: domain.FieldCompanyID, Value: form.CompanyID},
		{Field: domain.FieldRawData, Value: form.RawData},
	}
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	api := client.New(apiURL, client.WithLogger(log))
	result, err := api.RecommendSolutions(ctx, painPoints)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd, result.Solutions)
	}
	return printMarkdown(cmd, report.SolutionsMarkdown(result.Solutions))
}

func runCompanies(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	api := client.New(apiURL, client.WithLogger(log))
	companies, err := api.Companies(ctx, query)
	if err != nil {
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) {
			return err
		}
		// backend reachable but failing: fall back to the bundled catalog
		log.WithError(err).Warn("companies lookup failed, using bundled catalog")
		companies = usecase.MatchCompanies(query, cat.Companies)
	}

	for _, c := range companies {
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-10s %s\n", c.Name, c.CompanyID, c.Industry)
	}
	return nil
}

func runSolution(cmd *cobra.Command, args []string) error {
	sol, ok := cat.SolutionByID(strings.TrimSpace(args[0]))
	if !ok {
		return fmt.Errorf("unknown solution id %q", args[0])
	}
	return printMarkdown(cmd, report.SolutionsMarkdown([]domain.RecommendedSystexSolution{{SystexSolution: sol}}))
}

func printMarkdown(cmd *cobra.Command, md string) error {
	renderer, err := report.NewTerminalRenderer(100, glamourStyle)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
