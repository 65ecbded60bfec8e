package export

import (
	"bytes"
	"testing"
	"time"

	"rnd-intake-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteRequests(t *testing.T) {
	revenue := int64(120000)
	rice := 70.0
	req := &entity.Request{
		Id:               uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		Title:            "Low-dose mode",
		CustomerName:     "Seoul Clinic",
		ProductArea:      entity.ProductAreaCArm,
		Category:         entity.CategoryCustomization,
		CurrentStage:     entity.StageReview,
		CurrentStatus:    entity.DefaultStatus,
		ImportanceFlag:   entity.ImportanceMust,
		ExpectedRevenue:  &revenue,
		RiceScore:        &rice,
		CreatedByUserId:  "u-1",
		SubmittedAt:      time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		CustomerDeadline: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRequests(&buf, []Row{{
		Request:  req,
		Keywords: []string{"dose", "ui"},
		RDGroups: []string{"SW"},
	}}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Low-dose mode", rows[1][1])
	assert.Equal(t, "REVIEW", rows[1][5])
	assert.Equal(t, "120000", rows[1][8])
	assert.Equal(t, "70", rows[1][9])
	assert.Equal(t, "dose, ui", rows[1][11])
	assert.Equal(t, "2025-06-30", rows[1][14])
	assert.Equal(t, "u-1", rows[1][15])
}

func TestWriteRequests_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRequests(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
