package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewFavoriteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorite",
		Aliases: []string{"favorites", "fav"},
		Short:   "Manage the favorites of the current session",
		GroupID: gSession,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add [entry]",
			Short: "Add an entry to the favorites",
			Long: `Add an entry to the favorites.

Entries are compared literally, adding an entry that is already a favorite
only prints a warning. To add a fresh conversion use
'unitconv convert ... --favorite'.`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := currentSession()
				if err != nil {
					return err
				}
				n, err := apiClient.AddFavorite(id, args[0])
				if err != nil {
					return err
				}
				printNotice(cmd, n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the favorites",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				id, err := currentSession()
				if err != nil {
					return err
				}
				favs, err := apiClient.GetFavorites(id)
				if err != nil {
					return fmt.Errorf("failed to get favorites: %w", err)
				}
				printEntries(cmd, "Favorites:", favs)
				return nil
			},
		},
	)

	return cmd
}

func NewThemeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "theme",
		Short:   "Show the theme of the current session",
		GroupID: gSession,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := currentSession()
			if err != nil {
				return err
			}
			theme, err := apiClient.GetTheme(id)
			if err != nil {
				return fmt.Errorf("failed to get theme: %w", err)
			}
			cmd.Println(theme)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between the light and dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := currentSession()
			if err != nil {
				return err
			}
			theme, err := apiClient.ToggleTheme(id)
			if err != nil {
				return fmt.Errorf("failed to toggle theme: %w", err)
			}
			cmd.Printf("Theme is now %s\n", bold("%s", theme))
			return nil
		},
	})

	return cmd
}

func NewFeedbackCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "feedback [text]",
		Short:   "Send feedback",
		GroupID: gSession,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := currentSession()
			if err != nil {
				return err
			}
			n, err := apiClient.SubmitFeedback(id, strings.Join(args, " "))
			if err != nil {
				return err
			}
			printNotice(cmd, n)
			return nil
		},
	}
}
