// Package main contains the CLI front end for the encoder. It uses
// cobra for subcommand dispatch, the same way the teacher's cmd/smf
// does, but the encoder library itself never prints anything: this
// file is the only place in the module allowed to write to stdout or
// stderr.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"tabjson"
	"tabjson/internal/config"
	"tabjson/internal/ddlschema"
	"tabjson/internal/dbsource"
)

type encodeFlags struct {
	profile string
}

type queryFlags struct {
	dsn     string
	ddlFile string
	sql     string
	profile string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "tabjson",
		Short: "Streaming JSON encoder for tabular data",
	}

	rootCmd.AddCommand(encodeCmd())
	rootCmd.AddCommand(queryCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func encodeCmd() *cobra.Command {
	flags := &encodeFlags{}
	cmd := &cobra.Command{
		Use:   "encode <profile.toml>",
		Short: "Encode a literal TOML table using the profile's options",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			flags.profile = args[0]
			return runEncode(flags)
		},
	}
	return cmd
}

func runEncode(flags *encodeFlags) error {
	p, err := config.LoadFile(flags.profile)
	if err != nil {
		return err
	}
	if p.Table == nil {
		return fmt.Errorf("tabjson: profile %q has no [table] to encode", flags.profile)
	}

	out, err := tabjson.MarshalToString(p.Table, profileOptions(p)...)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func queryCmd() *cobra.Command {
	flags := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a SQL query against a live MySQL table and encode the result",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runQuery(flags)
		},
	}
	cmd.Flags().StringVar(&flags.dsn, "dsn", "", "MySQL DSN")
	cmd.Flags().StringVar(&flags.ddlFile, "ddl", "", "File containing the table's CREATE TABLE statement")
	cmd.Flags().StringVar(&flags.sql, "sql", "", "SQL query to run")
	cmd.Flags().StringVar(&flags.profile, "profile", "", "Optional TOML encoder options profile")
	_ = cmd.MarkFlagRequired("dsn")
	_ = cmd.MarkFlagRequired("ddl")
	_ = cmd.MarkFlagRequired("sql")
	return cmd
}

func runQuery(flags *queryFlags) error {
	ddl, err := os.ReadFile(flags.ddlFile)
	if err != nil {
		return fmt.Errorf("tabjson: read ddl file: %w", err)
	}

	schema, err := ddlschema.NewParser().Parse(string(ddl))
	if err != nil {
		return err
	}

	db, err := sql.Open("mysql", flags.dsn)
	if err != nil {
		return fmt.Errorf("tabjson: open db: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	tbl, err := dbsource.Query(ctx, db, flags.sql, schema)
	if err != nil {
		return err
	}

	var opts []tabjson.Option
	if flags.profile != "" {
		p, err := config.LoadFile(flags.profile)
		if err != nil {
			return err
		}
		opts = profileOptions(p)
	}

	out, err := tabjson.MarshalToString(tbl, opts...)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// profileOptions converts a loaded config.Profile into Marshal
// options, skipping zero-value fields so an empty [options] table
// leaves the encoder's own defaults in place.
func profileOptions(p *config.Profile) []tabjson.Option {
	var opts []tabjson.Option
	if p.Orient != "" {
		opts = append(opts, tabjson.WithOrient(p.Orient))
	}
	if p.DateUnit != "" {
		opts = append(opts, tabjson.WithDateUnit(p.DateUnit))
	}
	if p.DoublePrecision != 0 {
		opts = append(opts, tabjson.WithDoublePrecision(p.DoublePrecision))
	}
	opts = append(opts,
		tabjson.WithISODates(p.ISODates),
		tabjson.WithEnsureASCII(p.EnsureASCII),
		tabjson.WithEncodeHTMLChars(p.EncodeHTMLChars),
	)
	return opts
}
