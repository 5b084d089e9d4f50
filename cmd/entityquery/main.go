/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"reflect"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/suparena/entityquery"
	"github.com/suparena/entityquery/config"
	"github.com/suparena/entityquery/datastore"
	"github.com/suparena/entityquery/datastore/cql"
	"github.com/suparena/entityquery/datastore/ddb"
	"github.com/suparena/entityquery/log"
	"github.com/suparena/entityquery/registry"
)

// Row is a result row keyed by column name
type Row = map[string]any

var (
	configFlag   = flag.String("config", "entityquery.yaml", "Path to the YAML configuration")
	envFlag      = flag.String("env", ".env", "Optional .env file loaded before the configuration")
	queryFlag    = flag.String("query", "", "Base query, without token predicate or LIMIT")
	idColumnFlag = flag.String("id-column", "id", "Identifier column pages are resumed from")
	idTypeFlag   = flag.String("id-type", "string", "Go type of the identifier: string or int")
	pageSizeFlag = flag.Int("page-size", 0, "Rows per page (default from configuration)")
	tokenFlag    = flag.String("token", "", "Continuation token printed by a previous run")
	allFlag      = flag.Bool("all", false, "Follow continuation tokens until the last page")
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		fmt.Println(entityquery.GetVersionInfo().String())
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "entityquery: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout, stderr io.Writer) error {
	cfg, err := config.Load(*configFlag, *envFlag)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}
	if err := registerRow(*idColumnFlag, *idTypeFlag); err != nil {
		return err
	}

	gw, query, cleanup, err := openGateway(ctx, cfg, logger, *queryFlag)
	if err != nil {
		return err
	}
	defer cleanup()

	repo := entityquery.NewRepository[Row](gw,
		entityquery.WithLogger(logger),
		entityquery.WithPagination(cfg.Pagination),
	)

	out := json.NewEncoder(stdout)
	token := *tokenFlag
	for {
		page, err := repo.Page(ctx, token, *pageSizeFlag, query)
		if err != nil {
			return err
		}
		for _, row := range page.Rows {
			if err := out.Encode(row); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}

		next, ok := page.NextPage()
		if !ok {
			return nil
		}
		if token, err = next.Encode(); err != nil {
			return err
		}
		if !*allFlag {
			fmt.Fprintf(stderr, "next token: %s\n", token)
			return nil
		}
	}
}

func newLogger(cfg config.Log, out io.Writer) (log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(level)
	return log.NewWithLogger(base, "entityquery"), nil
}

// registerRow registers Row with the identifier column given on the command line.
// Numeric identifiers are normalized to int64, since stores decode numbers into
// different Go types.
func registerRow(column, idType string) error {
	var typ reflect.Type
	read := func(r Row) any { return r[column] }

	switch idType {
	case "string":
		typ = reflect.TypeOf("")
	case "int":
		typ = reflect.TypeOf(int64(0))
		read = func(r Row) any {
			v := reflect.ValueOf(r[column])
			if v.IsValid() && v.CanConvert(typ) {
				return v.Convert(typ).Interface()
			}
			return r[column]
		}
	default:
		return fmt.Errorf("unsupported identifier type %q, expected string or int", idType)
	}

	registry.RegisterEntity(registry.Entity[Row]{
		Name: "row",
		ID: &registry.Identifier[Row]{
			Columns: []string{column},
			Type:    typ,
			Read:    read,
		},
	})
	return nil
}

// openGateway returns the gateway for the configured store, the query to run and a
// function releasing the store connection.
func openGateway(ctx context.Context, cfg *config.Config, logger log.Logger, query string) (datastore.Gateway[Row], string, func(), error) {
	switch cfg.Store.Type {
	case config.StoreCassandra:
		if query == "" {
			return nil, "", nil, fmt.Errorf("-query is required for %s", cfg.Store.Type)
		}
		session, err := cql.NewCassandraSession(cfg.Store.Cassandra)
		if err != nil {
			return nil, "", nil, err
		}
		return cql.NewCassandraDataStore[Row](session).WithLogger(logger), query, session.Close, nil

	case config.StoreDynamoDB:
		client, err := ddb.NewDynamoDBClient(ctx, cfg.Store.DynamoDB)
		if err != nil {
			return nil, "", nil, err
		}
		store := ddb.NewDynamodbDataStore[Row](client, cfg.Store.DynamoDB.Table).WithLogger(logger)
		if query == "" {
			if store.TableName() == "" {
				return nil, "", nil, fmt.Errorf("-query or store.dynamodb.table is required")
			}
			query = store.SelectAll().Query
		}
		return store, query, func() {}, nil

	default:
		return nil, "", nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}
