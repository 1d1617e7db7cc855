package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/conf"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

type Data struct {
	db     *sql.DB
	driver string
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	if c == nil || c.Database == nil {
		return nil, nil, fmt.Errorf("data: database config is required")
	}
	driver := c.Database.Driver
	if driver == "" {
		driver = driverSQLite
	}
	if driver != driverPostgres && driver != driverSQLite {
		return nil, nil, fmt.Errorf("data: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, c.Database.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	// 内存库每个连接都是独立的数据库
	if driver == driverSQLite && strings.Contains(c.Database.Source, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &Data{db: db, driver: driver}
	if err := d.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		db.Close()
	}
	return d, cleanup, nil
}

func (d *Data) initSchema(ctx context.Context) error {
	idColumn := "id SERIAL PRIMARY KEY"
	if d.driver == driverSQLite {
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS monthly_reports (
			` + idColumn + `,
			owner_id BIGINT NOT NULL,
			report_month TEXT NOT NULL,
			current_phase TEXT NOT NULL DEFAULT '',
			family_status TEXT NOT NULL DEFAULT '',
			total_work_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			coding_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			meeting_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			sales_emails_sent INTEGER NOT NULL DEFAULT 0,
			sales_replies INTEGER NOT NULL DEFAULT 0,
			sales_meetings INTEGER NOT NULL DEFAULT 0,
			received_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			narrative TEXT NOT NULL DEFAULT '',
			narrative_source TEXT NOT NULL DEFAULT '',
			good_points TEXT NOT NULL DEFAULT '',
			challenges TEXT NOT NULL DEFAULT '',
			next_month_goals TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_monthly_reports_owner_month
			ON monthly_reports (owner_id, report_month)`,
	}

	for _, query := range queries {
		if _, err := d.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// rebind 将 ? 占位符转换为 postgres 的 $n
func (d *Data) rebind(query string) string {
	if d.driver != driverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
