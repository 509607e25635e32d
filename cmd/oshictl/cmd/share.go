package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/okian/oshichecker/internal/domain/catalog"
	"github.com/okian/oshichecker/internal/domain/locale"
	"github.com/okian/oshichecker/internal/domain/result"
	"github.com/okian/oshichecker/internal/domain/share"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	shareLocale  string
	shareCatalog string
	shareBaseURL string
	shareJSON    bool
)

//nolint:gochecknoglobals // Cobra boilerplate
var shareCmd = &cobra.Command{
	Use:   "share <member-id>...",
	Short: "Render the share text for a ranking of catalog members",
	Long: `share resolves the ranked member ids against the catalog and prints the
localized share text followed by the X compose URL.`,
	Example: "  oshictl share --locale ko yuna mina haru",
	RunE:    runShare,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(shareCmd)

	shareCmd.Flags().StringVarP(&shareLocale, "locale", "l", string(locale.Default), "Share text locale (ja, ko, en)")
	shareCmd.Flags().StringVar(&shareCatalog, "catalog", "", "Member catalog YAML (default is the embedded catalog)")
	shareCmd.Flags().StringVar(&shareBaseURL, "base-url", share.DefaultBaseURL, "Site URL the share text links to")
	shareCmd.Flags().BoolVar(&shareJSON, "json", false, "Print text and intent URL as JSON")
}

func runShare(cmd *cobra.Command, args []string) (err error) {
	l, err := locale.Parse(shareLocale)
	if err != nil {
		err = errors.Wrap(err, "invalid locale")
		return err
	}

	c, err := loadCatalog(shareCatalog)
	if err != nil {
		return err
	}

	b := result.NewBuilder(c, nil, share.NewTextBuilder(shareBaseURL), 0)
	s, err := b.ShareText(l, args)
	if err != nil {
		err = errors.Wrap(err, "failed to render share text")
		return err
	}

	if shareJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		err = enc.Encode(s)
		if err != nil {
			err = errors.Wrap(err, "failed to write share")
		}
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", s.Text, s.IntentURL)
	if err != nil {
		err = errors.Wrap(err, "failed to write share")
	}
	return err
}

func loadCatalog(path string) (c *catalog.Catalog, err error) {
	if path == "" {
		c, err = catalog.Default()
		if err != nil {
			err = errors.Wrap(err, "failed to load embedded catalog")
		}
		return c, err
	}
	c, err = catalog.Load(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to load catalog %s", path)
	}
	return c, err
}
