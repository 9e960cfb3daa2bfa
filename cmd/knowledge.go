// ABOUTME: Knowledge-base commands: categories, guides, reading, search, links
// ABOUTME: All reads are public and honor the language flag or saved preference

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jambosec/jambosec-cli/internal/api"
)

var (
	guidesCategory       string
	searchLimit          int
	guideFeedbackComment string
)

var knowledgeCmd = &cobra.Command{
	Use:     "knowledge",
	Aliases: []string{"kb"},
	Short:   "Browse the knowledge base",
}

var knowledgeCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List guide categories",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runKnowledgeCategories(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var knowledgeGuidesCmd = &cobra.Command{
	Use:   "guides",
	Short: "List guides, optionally filtered by category",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runKnowledgeGuides(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var knowledgeReadCmd = &cobra.Command{
	Use:   "read <slug>",
	Short: "Read a guide",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runKnowledgeRead(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var knowledgeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the knowledge base",
	Long: `Search the knowledge base. When nothing matches, an AI-generated
suggestion is requested instead.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runKnowledgeSearch(ctx, os.Stdout, strings.Join(args, " "))
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var knowledgeFeedbackCmd = &cobra.Command{
	Use:   "feedback <slug> <helpful|not_helpful>",
	Short: "Rate a guide",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runKnowledgeFeedback(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var knowledgeLinksCmd = &cobra.Command{
	Use:   "links",
	Short: "List curated external resources",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runKnowledgeLinks(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(knowledgeCmd)
	knowledgeCmd.AddCommand(knowledgeCategoriesCmd)
	knowledgeCmd.AddCommand(knowledgeGuidesCmd)
	knowledgeCmd.AddCommand(knowledgeReadCmd)
	knowledgeCmd.AddCommand(knowledgeSearchCmd)
	knowledgeCmd.AddCommand(knowledgeFeedbackCmd)
	knowledgeCmd.AddCommand(knowledgeLinksCmd)

	knowledgeGuidesCmd.Flags().StringVar(&guidesCategory, "category", "", "Filter by category slug")
	knowledgeSearchCmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum number of results")
	knowledgeFeedbackCmd.Flags().StringVar(&guideFeedbackComment, "comment", "", "Optional comment")
}

// runKnowledgeCategories lists categories and returns exit code
func runKnowledgeCategories(ctx context.Context, w io.Writer) int {
	client := newClient()
	categories, err := client.Categories(ctx, string(GetLang()))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(categories, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	for _, c := range categories {
		fmt.Fprintf(w, "%-24s %s\n", c.Slug, c.Title)
	}
	return 0
}

// runKnowledgeGuides lists guides and returns exit code
func runKnowledgeGuides(ctx context.Context, w io.Writer) int {
	client := newClient()
	guides, err := client.Guides(ctx, api.GuideQuery{
		Category: guidesCategory,
		Lang:     string(GetLang()),
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(guides, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	for _, g := range guides {
		fmt.Fprintf(w, "%-32s %s\n", g.Slug, g.Title)
	}
	return 0
}

// runKnowledgeRead prints a full guide and returns exit code
func runKnowledgeRead(ctx context.Context, w io.Writer, slug string) int {
	client := newClient()
	detail, err := client.Guide(ctx, slug, string(GetLang()))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// Mirror the TUI's recently-viewed behavior, best effort
	_ = newSettings().AddRecentGuide(detail.Slug, detail.Title)

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(detail, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s\n\n%s\n", detail.Title, detail.Body)
	if len(detail.Tags) > 0 {
		fmt.Fprintf(w, "\nTags: %s\n", strings.Join(detail.Tags, ", "))
	}
	return 0
}

// runKnowledgeSearch searches and returns exit code
func runKnowledgeSearch(ctx context.Context, w io.Writer, query string) int {
	client := newClient()
	lang := string(GetLang())

	results, err := client.Search(ctx, query, searchLimit, lang)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if len(results) > 0 {
		if IsJSONOutput() {
			data, _ := json.MarshalIndent(results, "", "  ")
			fmt.Fprintln(w, string(data))
			return 0
		}
		for _, r := range results {
			fmt.Fprintf(w, "%.2f  %s (%s)\n      %s\n", r.Score, r.DocumentTitle, r.DocumentSlug, r.Text)
		}
		return 0
	}

	// No hits: fall back to an AI suggestion
	suggestion, err := client.Suggest(ctx, query, nil, lang)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(suggestion, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s\n\n%s\n", suggestion.Title, suggestion.Content)
	return 0
}

// runKnowledgeFeedback rates a guide and returns exit code
func runKnowledgeFeedback(ctx context.Context, w io.Writer, slug, rating string) int {
	if rating != "helpful" && rating != "not_helpful" {
		fmt.Fprintln(w, "Error: rating must be 'helpful' or 'not_helpful'")
		return 2
	}

	client := newClient()
	if err := client.GuideFeedback(ctx, slug, rating, guideFeedbackComment); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Feedback recorded")
	return 0
}

// runKnowledgeLinks lists external resources and returns exit code
func runKnowledgeLinks(ctx context.Context, w io.Writer) int {
	client := newClient()
	links, err := client.Links(ctx, string(GetLang()))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(links, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	for _, l := range links {
		fmt.Fprintf(w, "%-32s %s\n", l.Label, l.URL)
	}
	return 0
}
