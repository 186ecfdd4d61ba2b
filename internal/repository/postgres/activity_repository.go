package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"veridia/internal/common"
	"veridia/internal/domain/activity"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, a activity.Activity) error {
	a.ID = common.NewUUID()
	metadata := a.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	payload, err := json.Marshal(metadata)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to encode activity metadata", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO activities (id, action, description, applicant_id, application_id, changed_by, occurred_at, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, now(), $7)`,
		a.ID, a.Action, a.Description, nullableUUID(a.ApplicantID), nullableUUID(a.ApplicationID), nullableUUID(a.ChangedBy), payload)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to create activity", err)
	}
	return nil
}

func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]activity.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, action, description, applicant_id, application_id, changed_by, occurred_at, metadata
		FROM activities ORDER BY occurred_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list activities", err)
	}
	defer rows.Close()
	var items []activity.Activity
	for rows.Next() {
		var a activity.Activity
		var applicantID, applicationID, changedBy sql.NullString
		var metadata []byte
		if err := rows.Scan(&a.ID, &a.Action, &a.Description, &applicantID, &applicationID, &changedBy, &a.Timestamp, &metadata); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan activity", err)
		}
		a.ApplicantID = uuidFromNull(applicantID)
		a.ApplicationID = uuidFromNull(applicationID)
		a.ChangedBy = uuidFromNull(changedBy)
		a.Metadata = map[string]string{}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
				return nil, common.NewError(common.CodeInternal, "failed to decode activity metadata", err)
			}
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
