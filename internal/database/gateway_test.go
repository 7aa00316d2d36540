package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/vehicle-service-management/internal/database"
	"github.com/iliyamo/vehicle-service-management/internal/testutil"
)

func TestGateway_ExecCommitsAndQueryReads(t *testing.T) {
	db, gw := testutil.NewDB(t)
	ctx := context.Background()

	n, err := gw.Exec(ctx, "INSERT INTO Customer (Customer_ID, Name, Address, Phone_No) VALUES (?,?,?,?)", 1, "Asha", "MG Road", "999")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, testutil.CountRows(t, db, "Customer"))

	var names []string
	err = gw.Query(ctx, "SELECT Name FROM Customer", nil, func(rows *sql.Rows) error {
		var s string
		if err := rows.Scan(&s); err != nil {
			return err
		}
		names = append(names, s)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Asha"}, names)
}

func TestGateway_ReleasesConnectionOnFailure(t *testing.T) {
	db, gw := testutil.NewDB(t)
	ctx := context.Background()

	_, err := gw.Exec(ctx, "INSERT INTO No_Such_Table VALUES (1)")
	require.Error(t, err)

	assert.Equal(t, 0, db.Stats().InUse)
	assert.Equal(t, 0, db.Stats().Idle, "connections are never pooled")
}

func TestGateway_InTxRollsBack(t *testing.T) {
	db, gw := testutil.NewDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := gw.InTx(ctx, func(q database.Queryer) error {
		if _, err := q.ExecContext(ctx, "INSERT INTO Customer (Customer_ID, Name) VALUES (1, 'A')"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, testutil.CountRows(t, db, "Customer"))

	err = gw.InTx(ctx, func(q database.Queryer) error {
		_, err := q.ExecContext(ctx, "INSERT INTO Customer (Customer_ID, Name) VALUES (1, 'A')")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CountRows(t, db, "Customer"))
}

func TestBootstrap_IsRepeatable(t *testing.T) {
	_, gw := testutil.NewDB(t)
	assert.NoError(t, database.Bootstrap(context.Background(), gw))
}

func TestStoreDerivesLineAndServiceTotals(t *testing.T) {
	db, _ := testutil.NewDB(t)

	testutil.MustExec(t, db, "INSERT INTO Service_Record (Service_ID, Total_Cost) VALUES (1, 0)")
	testutil.MustExec(t, db, "INSERT INTO Service_Parts (Service_ID, Part_ID, Quantity_Used, Unit_Price) VALUES (1, 1, 2, 10.0)")
	testutil.MustExec(t, db, "INSERT INTO Service_Parts (Service_ID, Part_ID, Quantity_Used, Unit_Price) VALUES (1, 2, 1, 5.0)")

	var line float64
	require.NoError(t, db.QueryRow("SELECT Total_Part_Cost FROM Service_Parts WHERE Part_ID = 1").Scan(&line))
	assert.Equal(t, 20.0, line)

	var total float64
	require.NoError(t, db.QueryRow("SELECT Total_Cost FROM Service_Record WHERE Service_ID = 1").Scan(&total))
	assert.Equal(t, 25.0, total)

	testutil.MustExec(t, db, "DELETE FROM Service_Parts WHERE Part_ID = 2")
	require.NoError(t, db.QueryRow("SELECT Total_Cost FROM Service_Record WHERE Service_ID = 1").Scan(&total))
	assert.Equal(t, 20.0, total)
}
