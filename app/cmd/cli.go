package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/paoluke/tienda/app/configs"
	"github.com/paoluke/tienda/app/db/seeders"
	"github.com/paoluke/tienda/app/helpers"
	"github.com/paoluke/tienda/app/models/migrations"
	"github.com/paoluke/tienda/app/repositories"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"
)

func seedRepositories(db *gorm.DB) seeders.Repositories {
	return seeders.Repositories{
		Categories: repositories.NewCategoryRepository(db),
		Products:   repositories.NewProductRepository(db),
		Config:     repositories.NewConfigRepository(db),
	}
}

func RunCli() {
	cmd := &cli.Command{
		Name:  "tienda",
		Usage: "PaoLUKE storefront and back-office",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Load a yaml catalog, or generate fake products with --count",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "yaml catalog to load"},
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 30, Usage: "fake products to generate when no file is given"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					repos := seedRepositories(db)

					path := c.String("file")
					if path == "" {
						return seeders.SeedFake(ctx, repos, c.Int("count"))
					}

					f, err := os.Open(path)
					if err != nil {
						return fmt.Errorf("failed to open catalog: %w", err)
					}
					defer f.Close()

					catalog, err := seeders.LoadCatalog(f)
					if err != nil {
						return err
					}
					if err := seeders.Seed(ctx, repos, catalog); err != nil {
						return err
					}
					log.Println("✅ Seed complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "env-file", Usage: "also write the keys to this file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(c.String("env-file")); err != nil {
						return err
					}
					log.Println("✅ Key generation complete.")
					return nil
				},
			},
			{
				Name:      "hash-password",
				Usage:     "Print the bcrypt hash to use as ADMIN_PASSWORD_HASH",
				ArgsUsage: "<password>",
				Action: func(ctx context.Context, c *cli.Command) error {
					password := c.Args().First()
					if password == "" {
						return fmt.Errorf("missing password argument")
					}
					hash, err := helpers.HashPassword(password)
					if err != nil {
						return err
					}
					fmt.Println(hash)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
