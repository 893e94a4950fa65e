package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/report"
	"github.com/charlie0129/unitconv/pkg/types"
	"github.com/charlie0129/unitconv/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func getVersion() (clientVersion, daemonVersion string, err error) {
	daemonVersion, err = apiClient.GetVersion()
	return version.Version, daemonVersion, err
}

func NewCategoriesCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "categories",
		Short:   "List conversion categories",
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := apiClient.GetCategories()
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}
			if output != "text" {
				return printStructured(cmd, output, cats)
			}
			for _, c := range cats {
				cmd.Printf("%s %s\n", c.Icon, bold("%s", c.Name))
				for _, conv := range c.Conversions {
					cmd.Printf("  %s\n", conv)
				}
			}
			return nil
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

func NewConversionsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "conversions [category]",
		Short:   "List the conversions of a category",
		GroupID: gBasic,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			convs, err := apiClient.GetConversions(args[0])
			if err != nil {
				return fmt.Errorf("failed to get conversions: %w", err)
			}
			if output != "text" {
				return printStructured(cmd, output, convs)
			}
			for _, c := range convs {
				cmd.Printf("  %-7s %s\n", c.Key, c.Label)
			}
			return nil
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

func NewConvertCommand() *cobra.Command {
	var (
		category string
		history  bool
		favorite bool
		output   string
	)

	cmd := &cobra.Command{
		Use:     "convert [conversion] [value]",
		Short:   "Convert a value",
		GroupID: gBasic,
		Example: `  unitconv convert "Kilometers to Miles" 10
  unitconv convert km-mi 10 --history
  unitconv convert c-f -- -40`,
		Long: `Convert a value.

The conversion is either its label (e.g. "Celsius to Fahrenheit") or its
short key (e.g. c-f), see 'unitconv conversions'. --history and --favorite
record the result in the current session.

Put negative values after "--" so they are not taken as flags.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseFloatArg(args[1:], "value")
			if err != nil {
				return err
			}

			req := types.ConvertRequest{
				Category:   category,
				Conversion: args[0],
				Value:      &value,
				History:    history,
				Favorite:   favorite,
			}
			if history || favorite {
				req.Session, err = currentSession()
				if err != nil {
					return err
				}
			}

			resp, err := apiClient.Convert(req)
			if err != nil {
				return fmt.Errorf("failed to convert: %w", err)
			}
			if output != "text" {
				return printStructured(cmd, output, resp)
			}

			cmd.Println(bold("%s", resp.Entry))
			if history {
				cmd.Println("Added to history.")
			}
			if resp.Notice != nil {
				printNotice(cmd, *resp.Notice)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&category, "category", "c", "", "only accept conversions of this category")
	f.BoolVar(&history, "history", false, "add the result to the history of the current session")
	f.BoolVar(&favorite, "favorite", false, "add the result to the favorites of the current session")
	addOutputFlag(cmd, &output)

	return cmd
}

func NewReferenceCommand() *cobra.Command {
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:     "reference [category]",
		Short:   "Show the quick reference of a category",
		GroupID: gBasic,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := apiClient.GetReference(args[0])
			if err != nil {
				return fmt.Errorf("failed to get quick reference: %w", err)
			}

			if asMarkdown {
				return report.WriteReference(cmd.OutOrStdout(), catalog.Default(), ref.Category)
			}

			cmd.Println(bold("%s %s quick reference:", ref.Category.Icon(), ref.Category))
			for _, l := range ref.Lines {
				cmd.Printf("  %s\n", l)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "print the reference as markdown")

	return cmd
}

func NewFactCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "fact",
		Short:   "Print a random fun fact about units",
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fact, err := apiClient.GetFunFact()
			if err != nil {
				return fmt.Errorf("failed to get a fun fact: %w", err)
			}
			cmd.Println(color.New(color.Italic).Sprint("💡 Did you know? " + strings.TrimSpace(fact)))
			return nil
		},
	}
}
