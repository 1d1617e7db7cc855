package data

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/lib/pq"

	"github.com/iWorld-y/monthly_report/app/monthly_report/internal/biz"
)

const reportColumns = `id, owner_id, report_month, current_phase, family_status,
	total_work_hours, coding_hours, meeting_hours,
	sales_emails_sent, sales_replies, sales_meetings, received_amount,
	narrative, narrative_source, good_points, challenges, next_month_goals,
	created_at, updated_at`

const insertReport = `INSERT INTO monthly_reports (
	owner_id, report_month, current_phase, family_status,
	total_work_hours, coding_hours, meeting_hours,
	sales_emails_sent, sales_replies, sales_meetings, received_amount,
	narrative, narrative_source, good_points, challenges, next_month_goals,
	created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const upsertSuffix = `
ON CONFLICT (owner_id, report_month) DO UPDATE SET
	current_phase = excluded.current_phase,
	family_status = excluded.family_status,
	total_work_hours = excluded.total_work_hours,
	coding_hours = excluded.coding_hours,
	meeting_hours = excluded.meeting_hours,
	sales_emails_sent = excluded.sales_emails_sent,
	sales_replies = excluded.sales_replies,
	sales_meetings = excluded.sales_meetings,
	received_amount = excluded.received_amount,
	narrative = excluded.narrative,
	narrative_source = excluded.narrative_source,
	good_points = excluded.good_points,
	challenges = excluded.challenges,
	next_month_goals = excluded.next_month_goals,
	updated_at = excluded.updated_at`

type reportRepo struct {
	data *Data
	log  *log.Helper
	now  func() time.Time
}

func NewReportRepo(data *Data, logger log.Logger) biz.ReportRepo {
	return &reportRepo{
		data: data,
		log:  log.NewHelper(logger),
		now:  time.Now,
	}
}

func (r *reportRepo) Upsert(ctx context.Context, rep *biz.Report) (*biz.Report, error) {
	now := r.now().UnixMilli()
	row := r.data.db.QueryRowContext(ctx,
		r.data.rebind(insertReport+upsertSuffix+"\nRETURNING "+reportColumns),
		insertArgs(rep, now)...)
	return scanReport(row)
}

func (r *reportRepo) Create(ctx context.Context, rep *biz.Report) (*biz.Report, error) {
	now := r.now().UnixMilli()
	row := r.data.db.QueryRowContext(ctx,
		r.data.rebind(insertReport+"\nRETURNING "+reportColumns),
		insertArgs(rep, now)...)
	out, err := scanReport(row)
	if isUniqueViolation(err) {
		return nil, biz.ErrReportExists
	}
	return out, err
}

func (r *reportRepo) Update(ctx context.Context, rep *biz.Report) (*biz.Report, error) {
	row := r.data.db.QueryRowContext(ctx, r.data.rebind(`UPDATE monthly_reports SET
		current_phase = ?, family_status = ?,
		total_work_hours = ?, coding_hours = ?, meeting_hours = ?,
		sales_emails_sent = ?, sales_replies = ?, sales_meetings = ?, received_amount = ?,
		narrative = ?, narrative_source = ?, good_points = ?, challenges = ?, next_month_goals = ?,
		updated_at = ?
		WHERE id = ? AND owner_id = ?
		RETURNING `+reportColumns),
		rep.CurrentPhase, rep.FamilyStatus,
		rep.TotalWorkHours, rep.CodingHours, rep.MeetingHours,
		rep.SalesEmailsSent, rep.SalesReplies, rep.SalesMeetings, rep.ReceivedAmount,
		rep.Narrative, string(rep.NarrativeSource), rep.GoodPoints, rep.Challenges, rep.NextMonthGoals,
		r.now().UnixMilli(),
		rep.ID, rep.OwnerID,
	)
	return scanReport(row)
}

func (r *reportRepo) Get(ctx context.Context, ownerID, id int64) (*biz.Report, error) {
	row := r.data.db.QueryRowContext(ctx,
		r.data.rebind(`SELECT `+reportColumns+` FROM monthly_reports WHERE id = ? AND owner_id = ?`),
		id, ownerID)
	return scanReport(row)
}

func (r *reportRepo) List(ctx context.Context, ownerID int64, page, size int) ([]*biz.Report, int, error) {
	var total int
	if err := r.data.db.QueryRowContext(ctx,
		r.data.rebind(`SELECT COUNT(*) FROM monthly_reports WHERE owner_id = ?`), ownerID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.data.db.QueryContext(ctx,
		r.data.rebind(`SELECT `+reportColumns+` FROM monthly_reports WHERE owner_id = ?
			ORDER BY report_month DESC, id DESC LIMIT ? OFFSET ?`),
		ownerID, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*biz.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *reportRepo) Delete(ctx context.Context, ownerID, id int64) error {
	res, err := r.data.db.ExecContext(ctx,
		r.data.rebind(`DELETE FROM monthly_reports WHERE id = ? AND owner_id = ?`), id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return biz.ErrReportNotFound
	}
	return nil
}

func insertArgs(rep *biz.Report, now int64) []interface{} {
	return []interface{}{
		rep.OwnerID, rep.ReportMonth, rep.CurrentPhase, rep.FamilyStatus,
		rep.TotalWorkHours, rep.CodingHours, rep.MeetingHours,
		rep.SalesEmailsSent, rep.SalesReplies, rep.SalesMeetings, rep.ReceivedAmount,
		rep.Narrative, string(rep.NarrativeSource), rep.GoodPoints, rep.Challenges, rep.NextMonthGoals,
		now, now,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(s scanner) (*biz.Report, error) {
	var (
		rep                  biz.Report
		source               string
		createdAt, updatedAt int64
	)
	err := s.Scan(
		&rep.ID, &rep.OwnerID, &rep.ReportMonth, &rep.CurrentPhase, &rep.FamilyStatus,
		&rep.TotalWorkHours, &rep.CodingHours, &rep.MeetingHours,
		&rep.SalesEmailsSent, &rep.SalesReplies, &rep.SalesMeetings, &rep.ReceivedAmount,
		&rep.Narrative, &source, &rep.GoodPoints, &rep.Challenges, &rep.NextMonthGoals,
		&createdAt, &updatedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, biz.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	rep.NarrativeSource = biz.NarrativeSource(source)
	rep.CreatedAt = time.UnixMilli(createdAt)
	rep.UpdatedAt = time.UnixMilli(updatedAt)
	return &rep, nil
}

// isUniqueViolation 兼容 postgres 与 sqlite 的唯一约束错误
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
