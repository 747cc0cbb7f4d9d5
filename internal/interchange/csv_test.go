package interchange_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saubh/planwise/internal/domain/project"
	"github.com/saubh/planwise/internal/interchange"
	"github.com/saubh/planwise/internal/sqlite"
)

func TestExportFormat(t *testing.T) {
	created := time.UnixMilli(1700000000000)
	modified := time.UnixMilli(1700000100000)

	var buf bytes.Buffer
	err := interchange.Export(&buf, []project.Project{{
		ID:               3,
		ClientName:       "Acme Corp",
		PhoneNumber:      "9876543210",
		Description:      `Site "refresh"`,
		TotalPayment:     1000,
		AdvancePayment:   200.5,
		IsCompleted:      true,
		IsPaid:           false,
		CreationDate:     created,
		LastModifiedDate: modified,
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, interchange.Header, lines[0])
	require.Equal(t,
		`3,"Acme Corp",9876543210,"Site ""refresh""",1000,200.5,true,false,1700000000000,1700000100000`,
		lines[1])
}

func TestParseRoundTrip(t *testing.T) {
	original := []project.Project{
		{
			ID:               1,
			ClientName:       "Acme, Inc.",
			PhoneNumber:      "9876543210",
			Description:      "Quoted \"words\" and, commas",
			TotalPayment:     50000,
			AdvancePayment:   12500,
			IsPaid:           true,
			CreationDate:     time.UnixMilli(1700000000000),
			LastModifiedDate: time.UnixMilli(1700000100000),
		},
		{
			ID:               2,
			ClientName:       "Bright Homes",
			TotalPayment:     750,
			CreationDate:     time.UnixMilli(1700000200000),
			LastModifiedDate: time.UnixMilli(1700000200000),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, interchange.Export(&buf, original))

	parsed, skipped, err := interchange.Parse(&buf)
	require.NoError(t, err)
	require.Zero(t, skipped)
	require.Len(t, parsed, 2)

	require.Equal(t, "Acme, Inc.", parsed[0].ClientName)
	require.Equal(t, "Quoted \"words\" and, commas", parsed[0].Description)
	require.Equal(t, 50000.0, parsed[0].TotalPayment)
	require.Equal(t, 12500.0, parsed[0].AdvancePayment)
	require.True(t, parsed[0].IsPaid)
	require.Equal(t, int64(1700000000000), parsed[0].CreationDate.UnixMilli())

	require.Equal(t, "Bright Homes", parsed[1].ClientName)
	require.False(t, parsed[1].IsPaid)
}

func TestParseSkipsMalformedRows(t *testing.T) {
	input := interchange.Header + "\n" +
		`1,"Acme",98765,"ok",1000,200,false,false,1700000000000,1700000000000` + "\n" +
		`2,"Broken",98765,"bad total",not-a-number,200,false,false,1700000000000,1700000000000` + "\n" +
		`3,"Short row",98765` + "\n" +
		`4,"Bright",91234,"ok",500,0,true,true,1700000000000,1700000000000` + "\n"

	parsed, skipped, err := interchange.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, skipped)
	require.Len(t, parsed, 2)
	require.Equal(t, "Acme", parsed[0].ClientName)
	require.Equal(t, "Bright", parsed[1].ClientName)
}

func TestParseRejectsUnknownHeader(t *testing.T) {
	_, _, err := interchange.Parse(strings.NewReader("Name,Phone\nAcme,98765\n"))
	require.Error(t, err)
}

func TestParseEmptyInput(t *testing.T) {
	parsed, skipped, err := interchange.Parse(strings.NewReader(""))
	require.NoError(t, err)
	require.Zero(t, skipped)
	require.Empty(t, parsed)
}

func TestImporterAssignsFreshIDs(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	svc := project.NewService(sqlite.NewProjectRepository(db), nil)
	require.NoError(t, svc.Load(ctx))

	input := interchange.Header + "\n" +
		`900,"Acme",98765,"imported",1000,200,false,false,1700000000000,1700000000000` + "\n" +
		`901,"Bright",91234,"imported",500,0,true,true,1700000000000,1700000000000` + "\n"

	importer := interchange.NewImporter(svc, nil)
	result, err := importer.Import(ctx, strings.NewReader(input))
	require.NoError(t, err)
	require.NotEmpty(t, result.BatchID)
	require.Equal(t, 2, result.Imported)
	require.Zero(t, result.Skipped)

	list := svc.Projects()
	require.Len(t, list, 2)
	// Imported ids are discarded; the store assigns its own.
	for _, p := range list {
		require.Less(t, p.ID, int64(900))
	}
}
