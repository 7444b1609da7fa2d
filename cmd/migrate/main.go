package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"fyyur/internal/migrations"
)

var dbURL string

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the fyyur database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if dbURL == "" {
			dbURL = os.Getenv("DATABASE_URL")
		}
		if dbURL == "" {
			return errors.New("database url is required: pass --db or set DATABASE_URL")
		}
		return nil
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
			if err := migrations.Up(ctx, db); err != nil {
				return err
			}
			return printVersion(ctx, cmd, db)
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
			if err := migrations.Down(ctx, db); err != nil {
				return err
			}
			cmd.Println("schema rolled back")
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
			return printVersion(ctx, cmd, db)
		})
	},
}

func init() {
	_ = godotenv.Load("config/local.env")

	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	rootCmd.AddCommand(upCmd, downCmd, versionCmd)
}

func withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return fn(ctx, db)
}

func printVersion(ctx context.Context, cmd *cobra.Command, db *sql.DB) error {
	version, dirty, err := migrations.Version(ctx, db)
	if err != nil {
		return err
	}
	switch {
	case version == 0:
		cmd.Println("no migrations applied")
	case dirty:
		cmd.Printf("schema version %d (dirty)\n", version)
	default:
		cmd.Printf("schema version %d\n", version)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
